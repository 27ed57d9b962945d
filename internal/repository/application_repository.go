package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/segyhp/loan-intake/internal/domain"
)

type applicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// FormatApplicationNumber renders the human-facing application number,
// e.g. APP-2025-000042.
func FormatApplicationNumber(year int, sequence int64) string {
	return fmt.Sprintf("APP-%d-%06d", year, sequence)
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.LoanApplication) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Bump the per-year counter atomically. Concurrent creations serialize
	// on the counter row, so numbers stay unique and gap-free within a year.
	counterQuery := `
		INSERT INTO application_counters (year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_value = application_counters.last_value + 1
		RETURNING last_value
	`

	now := time.Now()
	year := now.Year()

	var sequence int64
	if err = tx.GetContext(ctx, &sequence, counterQuery, year); err != nil {
		return err
	}

	app.ApplicationNumber = FormatApplicationNumber(year, sequence)
	app.CreatedAt = now
	app.UpdatedAt = now

	insertQuery := `
		INSERT INTO loan_applications (
			application_number, first_name, last_name, phone, email,
			loan_amount, loan_term_months, interest_rate, loan_purpose,
			monthly_income, employment_type, monthly_payment,
			total_payment, overpayment, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING id
	`

	if err = tx.GetContext(ctx, &app.ID, insertQuery,
		app.ApplicationNumber,
		app.FirstName,
		app.LastName,
		app.Phone,
		app.Email,
		app.LoanAmount,
		app.LoanTermMonths,
		app.InterestRate,
		app.LoanPurpose,
		app.MonthlyIncome,
		app.EmploymentType,
		app.MonthlyPayment,
		app.TotalPayment,
		app.Overpayment,
		app.Status,
		app.CreatedAt,
		app.UpdatedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}

const summaryColumns = `
	id, application_number, first_name, last_name, phone, email,
	loan_amount, loan_term_months, monthly_payment, status,
	created_at, processed_at
`

func (r *applicationRepository) List(ctx context.Context, status string, limit int) ([]*domain.ApplicationSummary, error) {
	summaries := make([]*domain.ApplicationSummary, 0, limit)

	if status != "" {
		query := `
			SELECT ` + summaryColumns + `
			FROM loan_applications
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2
		`
		if err := r.db.SelectContext(ctx, &summaries, query, status, limit); err != nil {
			return nil, err
		}
		return summaries, nil
	}

	query := `
		SELECT ` + summaryColumns + `
		FROM loan_applications
		ORDER BY created_at DESC
		LIMIT $1
	`
	if err := r.db.SelectContext(ctx, &summaries, query, limit); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id int64, status string, comment *string) (bool, error) {
	query := `
		UPDATE loan_applications
		SET status = $2, manager_comment = $3, processed_at = $4, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, comment, time.Now())
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *applicationRepository) ListStalePending(ctx context.Context, cutoff time.Time) ([]*domain.ApplicationSummary, error) {
	query := `
		SELECT ` + summaryColumns + `
		FROM loan_applications
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at
	`

	var summaries []*domain.ApplicationSummary
	if err := r.db.SelectContext(ctx, &summaries, query, domain.ApplicationStatusPending, cutoff); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *applicationRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT status, COUNT(*) AS count
		FROM loan_applications
		GROUP BY status
	`

	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
