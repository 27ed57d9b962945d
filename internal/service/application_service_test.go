package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/loan-intake/internal/config"
	"github.com/segyhp/loan-intake/internal/domain"
	customError "github.com/segyhp/loan-intake/pkg/errors"
)

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *domain.LoanApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) List(ctx context.Context, status string, limit int) ([]*domain.ApplicationSummary, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ApplicationSummary), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id int64, status string, comment *string) (bool, error) {
	args := m.Called(ctx, id, status, comment)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepository) ListStalePending(ctx context.Context, cutoff time.Time) ([]*domain.ApplicationSummary, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ApplicationSummary), args.Error(1)
}

func (m *MockApplicationRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Business.DefaultInterestRate = "12.0"
	cfg.Business.DefaultListLimit = 50
	cfg.Business.ListCacheTTL = "30s"
	cfg.Business.StalePendingDays = 3
	return cfg
}

func TestCreate_Success(t *testing.T) {
	mockRepo := &MockApplicationRepository{}
	service := NewApplicationService(mockRepo, nil, testConfig())

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(app *domain.LoanApplication) bool {
		return app.Status == domain.ApplicationStatusPending &&
			app.MonthlyPayment.Equal(decimal.RequireFromString("8884.88"))
	})).Run(func(args mock.Arguments) {
		app := args.Get(1).(*domain.LoanApplication)
		app.ID = 7
		app.ApplicationNumber = "APP-2025-000007"
	}).Return(nil)

	request := &domain.CreateApplicationRequest{
		FirstName:      "Ivan",
		LastName:       "Petrov",
		Phone:          "+79001234567",
		Email:          "ivan@example.com",
		LoanAmount:     decimal.NewFromInt(100000),
		LoanTermMonths: 12,
	}

	response, err := service.Create(context.Background(), request)
	require.NoError(t, err)

	assert.True(t, response.Success)
	assert.Equal(t, int64(7), response.ApplicationID)
	assert.Equal(t, "APP-2025-000007", response.ApplicationNumber)
	assert.True(t, response.Payments.MonthlyPayment.Equal(decimal.RequireFromString("8884.88")))

	mockRepo.AssertExpectations(t)
}

func TestCreate_DefaultsInterestRate(t *testing.T) {
	mockRepo := &MockApplicationRepository{}
	service := NewApplicationService(mockRepo, nil, testConfig())

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(app *domain.LoanApplication) bool {
		return app.InterestRate.Equal(decimal.RequireFromString("12.0"))
	})).Return(nil)

	request := &domain.CreateApplicationRequest{
		FirstName:      "Ivan",
		LastName:       "Petrov",
		Phone:          "+79001234567",
		Email:          "ivan@example.com",
		LoanAmount:     decimal.NewFromInt(100000),
		LoanTermMonths: 12,
		// InterestRate omitted
	}

	_, err := service.Create(context.Background(), request)
	require.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestCreate_InvalidTerms(t *testing.T) {
	mockRepo := &MockApplicationRepository{}
	service := NewApplicationService(mockRepo, nil, testConfig())

	request := &domain.CreateApplicationRequest{
		FirstName:      "Ivan",
		LastName:       "Petrov",
		Phone:          "+79001234567",
		Email:          "ivan@example.com",
		LoanAmount:     decimal.NewFromInt(-5),
		LoanTermMonths: 12,
	}

	_, err := service.Create(context.Background(), request)
	require.Error(t, err)

	var appErr *customError.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, customError.ErrCodeValidation, appErr.Code)

	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreate_PersistenceFailure(t *testing.T) {
	mockRepo := &MockApplicationRepository{}
	service := NewApplicationService(mockRepo, nil, testConfig())

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	request := &domain.CreateApplicationRequest{
		FirstName:      "Ivan",
		LastName:       "Petrov",
		Phone:          "+79001234567",
		Email:          "ivan@example.com",
		LoanAmount:     decimal.NewFromInt(100000),
		LoanTermMonths: 12,
	}

	_, err := service.Create(context.Background(), request)
	require.Error(t, err)

	var appErr *customError.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, customError.ErrCodeDatabaseError, appErr.Code)
}

func TestList_PassesFilterAndDefaultLimit(t *testing.T) {
	mockRepo := &MockApplicationRepository{}
	service := NewApplicationService(mockRepo, nil, testConfig())

	summaries := []*domain.ApplicationSummary{
		{ID: 2, ApplicationNumber: "APP-2025-000002", Status: "approved"},
		{ID: 1, ApplicationNumber: "APP-2025-000001", Status: "approved"},
	}

	mockRepo.On("List", mock.Anything, "approved", 50).Return(summaries, nil)

	response, err := service.List(context.Background(), "approved", 0)
	require.NoError(t, err)

	assert.Equal(t, 2, response.Count)
	assert.Equal(t, summaries, response.Applications)

	mockRepo.AssertExpectations(t)
}

func TestUpdateStatus_UnknownIDIsNotAnError(t *testing.T) {
	mockRepo := &MockApplicationRepository{}
	service := NewApplicationService(mockRepo, nil, testConfig())

	mockRepo.On("UpdateStatus", mock.Anything, int64(9999), "approved", (*string)(nil)).Return(false, nil)

	updated, err := service.UpdateStatus(context.Background(), &domain.UpdateStatusRequest{
		ID:     9999,
		Status: "approved",
	})

	require.NoError(t, err)
	assert.False(t, updated)
}

func TestUpdateStatus_Success(t *testing.T) {
	mockRepo := &MockApplicationRepository{}
	service := NewApplicationService(mockRepo, nil, testConfig())

	comment := "docs verified"
	mockRepo.On("UpdateStatus", mock.Anything, int64(7), "approved", &comment).Return(true, nil)

	updated, err := service.UpdateStatus(context.Background(), &domain.UpdateStatusRequest{
		ID:      7,
		Status:  "approved",
		Comment: &comment,
	})

	require.NoError(t, err)
	assert.True(t, updated)

	mockRepo.AssertExpectations(t)
}
