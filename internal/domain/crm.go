package domain

import "github.com/shopspring/decimal"

// LeadSubmissionRequest carries a computed application into the CRM. The
// camelCase field names are fixed by the intake frontend contract.
type LeadSubmissionRequest struct {
	FullName       string          `json:"fullName" validate:"required"`
	Phone          string          `json:"phone" validate:"required"`
	Email          string          `json:"email" validate:"required"`
	LoanAmount     decimal.Decimal `json:"loanAmount" validate:"required"`
	LoanTerm       int             `json:"loanTerm" validate:"required,gt=0"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalPayment   decimal.Decimal `json:"totalPayment"`
	Income         decimal.Decimal `json:"income"`
}

type LeadSubmissionResponse struct {
	Success   bool   `json:"success"`
	LeadID    int64  `json:"lead_id"`
	ContactID int64  `json:"contact_id"`
	Message   string `json:"message"`
}
