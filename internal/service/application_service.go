package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/segyhp/loan-intake/internal/config"
	"github.com/segyhp/loan-intake/internal/domain"
	"github.com/segyhp/loan-intake/internal/repository"
	"github.com/segyhp/loan-intake/pkg/annuity"
	customError "github.com/segyhp/loan-intake/pkg/errors"
)

type ApplicationService struct {
	repo   repository.ApplicationRepository
	redis  *redis.Client
	config *config.Config
}

func NewApplicationService(
	repo repository.ApplicationRepository,
	redis *redis.Client,
	config *config.Config,
) *ApplicationService {
	return &ApplicationService{
		repo:   repo,
		redis:  redis,
		config: config,
	}
}

// Create computes the payment schedule for the requested terms and persists a
// new application in the initial pending state. The stored payment figures are
// always recomputed here, never taken from the request.
func (s *ApplicationService) Create(ctx context.Context, request *domain.CreateApplicationRequest) (*domain.CreateApplicationResponse, error) {
	rate := s.config.GetDefaultInterestRate()
	if request.InterestRate != nil {
		rate = *request.InterestRate
	}

	schedule, err := annuity.Compute(request.LoanAmount, request.LoanTermMonths, rate)
	if err != nil {
		return nil, err
	}

	app := &domain.LoanApplication{
		FirstName:      request.FirstName,
		LastName:       request.LastName,
		Phone:          request.Phone,
		Email:          request.Email,
		LoanAmount:     request.LoanAmount,
		LoanTermMonths: request.LoanTermMonths,
		InterestRate:   rate,
		LoanPurpose:    request.LoanPurpose,
		EmploymentType: request.EmploymentType,
		MonthlyPayment: schedule.MonthlyPayment,
		TotalPayment:   schedule.TotalPayment,
		Overpayment:    schedule.Overpayment,
		Status:         domain.ApplicationStatusPending,
	}
	if request.MonthlyIncome != nil {
		app.MonthlyIncome = decimal.NewNullDecimal(*request.MonthlyIncome)
	}

	if err = s.repo.Create(ctx, app); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.CreateApplicationResponse{
		Success:           true,
		ApplicationID:     app.ID,
		ApplicationNumber: app.ApplicationNumber,
		Payments:          schedule,
	}, nil
}

// List returns applications newest-first, optionally filtered by status.
// Results are cached briefly in Redis; the cache is best-effort and listing
// proceeds against the database when it is unavailable.
func (s *ApplicationService) List(ctx context.Context, status string, limit int) (*domain.ListApplicationsResponse, error) {
	if limit <= 0 {
		limit = s.config.Business.DefaultListLimit
	}

	cacheKey := fmt.Sprintf("applications:%s:%d", status, limit)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var response domain.ListApplicationsResponse
			if err = json.Unmarshal(cached, &response); err == nil {
				return &response, nil
			}
		}
	}

	summaries, err := s.repo.List(ctx, status, limit)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	response := &domain.ListApplicationsResponse{
		Applications: summaries,
		Count:        len(summaries),
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(response); err == nil {
			if err = s.redis.Set(ctx, cacheKey, encoded, s.config.GetListCacheTTL()).Err(); err != nil {
				log.Printf("Failed to cache application list: %v", err)
			}
		}
	}

	return response, nil
}

// UpdateStatus moves an application to a new status with an optional manager
// comment. An unknown id is not an error: the result is simply false.
func (s *ApplicationService) UpdateStatus(ctx context.Context, request *domain.UpdateStatusRequest) (bool, error) {
	updated, err := s.repo.UpdateStatus(ctx, request.ID, request.Status, request.Comment)
	if err != nil {
		return false, customError.WrapDatabaseError(err)
	}

	return updated, nil
}

// ListStalePending returns pending applications older than the configured
// threshold. Used by the scheduler's follow-up report.
func (s *ApplicationService) ListStalePending(ctx context.Context) ([]*domain.ApplicationSummary, error) {
	cutoff := time.Now().AddDate(0, 0, -s.config.Business.StalePendingDays)

	summaries, err := s.repo.ListStalePending(ctx, cutoff)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return summaries, nil
}

// CountByStatus returns how many applications sit in each status
func (s *ApplicationService) CountByStatus(ctx context.Context) (map[string]int, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return counts, nil
}
