package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/segyhp/loan-intake/pkg/annuity"
)

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// The intake frontend expects money as JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// LoanApplication represents a loan application entity. Applicant identity
// and loan terms are immutable after creation; only status, manager_comment,
// processed_at and updated_at change afterwards.
type LoanApplication struct {
	ID                int64               `json:"id" db:"id"`
	ApplicationNumber string              `json:"application_number" db:"application_number"`
	FirstName         string              `json:"first_name" db:"first_name"`
	LastName          string              `json:"last_name" db:"last_name"`
	Phone             string              `json:"phone" db:"phone"`
	Email             string              `json:"email" db:"email"`
	LoanAmount        decimal.Decimal     `json:"loan_amount" db:"loan_amount"`
	LoanTermMonths    int                 `json:"loan_term_months" db:"loan_term_months"`
	InterestRate      decimal.Decimal     `json:"interest_rate" db:"interest_rate"`
	LoanPurpose       *string             `json:"loan_purpose" db:"loan_purpose"`
	MonthlyIncome     decimal.NullDecimal `json:"monthly_income" db:"monthly_income"`
	EmploymentType    *string             `json:"employment_type" db:"employment_type"`
	MonthlyPayment    decimal.Decimal     `json:"monthly_payment" db:"monthly_payment"`
	TotalPayment      decimal.Decimal     `json:"total_payment" db:"total_payment"`
	Overpayment       decimal.Decimal     `json:"overpayment" db:"overpayment"`
	Status            string              `json:"status" db:"status"`
	ManagerComment    *string             `json:"manager_comment" db:"manager_comment"`
	CreatedAt         time.Time           `json:"created_at" db:"created_at"`
	ProcessedAt       *time.Time          `json:"processed_at" db:"processed_at"`
	UpdatedAt         time.Time           `json:"updated_at" db:"updated_at"`
}

// ApplicationSummary is the listing projection of an application
type ApplicationSummary struct {
	ID                int64           `json:"id" db:"id"`
	ApplicationNumber string          `json:"application_number" db:"application_number"`
	FirstName         string          `json:"first_name" db:"first_name"`
	LastName          string          `json:"last_name" db:"last_name"`
	Phone             string          `json:"phone" db:"phone"`
	Email             string          `json:"email" db:"email"`
	LoanAmount        decimal.Decimal `json:"loan_amount" db:"loan_amount"`
	LoanTermMonths    int             `json:"loan_term_months" db:"loan_term_months"`
	MonthlyPayment    decimal.Decimal `json:"monthly_payment" db:"monthly_payment"`
	Status            string          `json:"status" db:"status"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	ProcessedAt       *time.Time      `json:"processed_at" db:"processed_at"`
}

// DTOs for requests and responses

type CreateApplicationRequest struct {
	FirstName      string           `json:"first_name" validate:"required"`
	LastName       string           `json:"last_name" validate:"required"`
	Phone          string           `json:"phone" validate:"required"`
	Email          string           `json:"email" validate:"required"`
	LoanAmount     decimal.Decimal  `json:"loan_amount" validate:"required"`
	LoanTermMonths int              `json:"loan_term_months" validate:"required,gt=0"`
	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty"`
	LoanPurpose    *string          `json:"loan_purpose,omitempty"`
	MonthlyIncome  *decimal.Decimal `json:"monthly_income,omitempty"`
	EmploymentType *string          `json:"employment_type,omitempty"`
}

type CreateApplicationResponse struct {
	Success           bool              `json:"success"`
	ApplicationID     int64             `json:"application_id"`
	ApplicationNumber string            `json:"application_number"`
	Payments          *annuity.Schedule `json:"payments"`
}

type ListApplicationsResponse struct {
	Applications []*ApplicationSummary `json:"applications"`
	Count        int                   `json:"count"`
}

type UpdateStatusRequest struct {
	ID      int64   `json:"id" validate:"required"`
	Status  string  `json:"status" validate:"required"`
	Comment *string `json:"comment,omitempty"`
}

type UpdateStatusResponse struct {
	Success bool `json:"success"`
}
