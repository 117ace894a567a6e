// internal/repository/postgres/coupon_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"aquafarm-service/internal/domain/billing"
	xerrors "aquafarm-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CouponRepository struct {
	db *pgxpool.Pool
}

func NewCouponRepository(db *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) Create(ctx context.Context, c *billing.Coupon) error {
	query := `
		INSERT INTO coupons (code, discount_percent, active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, c.Code, c.DiscountPercent, c.Active).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

func (r *CouponRepository) List(ctx context.Context) ([]*billing.Coupon, error) {
	query := `SELECT id, code, discount_percent, active, created_at FROM coupons ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	var coupons []*billing.Coupon
	for rows.Next() {
		var c billing.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.DiscountPercent, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, &c)
	}
	return coupons, rows.Err()
}

// FindActiveByCode matches an active coupon by exact code. Codes are stored
// uppercase; callers normalize before lookup.
func (r *CouponRepository) FindActiveByCode(ctx context.Context, code string) (*billing.Coupon, error) {
	query := `SELECT id, code, discount_percent, active, created_at FROM coupons WHERE code = $1 AND active = TRUE`

	var c billing.Coupon
	err := r.db.QueryRow(ctx, query, code).Scan(&c.ID, &c.Code, &c.DiscountPercent, &c.Active, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find coupon: %w", err)
	}
	return &c, nil
}

func (r *CouponRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
