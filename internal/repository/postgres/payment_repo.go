// internal/repository/postgres/payment_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aquafarm-service/internal/domain/billing"
	xerrors "aquafarm-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a pending payment. The unique index on
// transaction_reference is the ledger's only replay defense; a duplicate
// maps to ErrDuplicateReference.
func (r *PaymentRepository) Create(ctx context.Context, p *billing.PaymentRecord) error {
	query := `
		INSERT INTO payments (
			user_id, plan_id, plan_label, months, amount,
			transaction_reference, coupon_code, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		p.UserID, p.PlanID, p.PlanLabel, p.Months, p.Amount,
		p.TransactionReference, p.CouponCode, p.Status,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateReference
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

const paymentColumns = `
	id, user_id, plan_id, plan_label, months, amount,
	transaction_reference, coupon_code, status, reviewed_at, created_at
`

func scanPayment(row pgx.Row) (*billing.PaymentRecord, error) {
	var p billing.PaymentRecord
	err := row.Scan(
		&p.ID, &p.UserID, &p.PlanID, &p.PlanLabel, &p.Months, &p.Amount,
		&p.TransactionReference, &p.CouponCode, &p.Status, &p.ReviewedAt, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	return &p, nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*billing.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRow(ctx, query, id))
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64) ([]*billing.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *PaymentRepository) ListByStatus(ctx context.Context, status billing.PaymentStatus) ([]*billing.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE status = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, status)
}

func (r *PaymentRepository) list(ctx context.Context, query string, arg interface{}) ([]*billing.PaymentRecord, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*billing.PaymentRecord
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// UpdateReview records the terminal review outcome. Only pending rows are
// eligible; reviewing an already-reviewed payment affects no rows.
func (r *PaymentRepository) UpdateReview(ctx context.Context, id int64, status billing.PaymentStatus, months int, reviewedAt time.Time) error {
	query := `
		UPDATE payments
		SET status = $2, months = $3, reviewed_at = $4
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := r.db.Exec(ctx, query, id, status, months, reviewedAt)
	if err != nil {
		return fmt.Errorf("failed to update payment review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
