// internal/repository/postgres/sale_repo.go
package postgres

import (
	"context"
	"fmt"

	"aquafarm-service/internal/domain/sale"
	xerrors "aquafarm-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SaleRepository struct {
	db *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	query := `
		INSERT INTO sales (user_id, pond_id, product, weight_kg, price_per_kg, total, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		s.UserID, s.PondID, s.Product, s.WeightKg, s.PricePerKg, s.Total, s.Date,
	).Scan(&s.ID, &s.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

func (r *SaleRepository) ListByUser(ctx context.Context, userID int64) ([]*sale.Sale, error) {
	query := `
		SELECT id, user_id, pond_id, product, weight_kg, price_per_kg, total, date, created_at
		FROM sales
		WHERE user_id = $1
		ORDER BY date DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	var sales []*sale.Sale
	for rows.Next() {
		var s sale.Sale
		if err := rows.Scan(&s.ID, &s.UserID, &s.PondID, &s.Product, &s.WeightKg, &s.PricePerKg, &s.Total, &s.Date, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}

func (r *SaleRepository) TotalRevenue(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0) FROM sales WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to total revenue: %w", err)
	}
	return total, nil
}

func (r *SaleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
