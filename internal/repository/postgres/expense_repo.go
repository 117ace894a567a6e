// internal/repository/postgres/expense_repo.go
package postgres

import (
	"context"
	"fmt"

	"aquafarm-service/internal/domain/expense"
	xerrors "aquafarm-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ExpenseRepository struct {
	db *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (user_id, pond_id, category, amount, note, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		e.UserID, e.PondID, e.Category, e.Amount, e.Note, e.Date,
	).Scan(&e.ID, &e.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) ListByUser(ctx context.Context, userID int64) ([]*expense.Expense, error) {
	query := `
		SELECT id, user_id, pond_id, category, amount, note, date, created_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY date DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense
	for rows.Next() {
		var e expense.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.PondID, &e.Category, &e.Amount, &e.Note, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, &e)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) TotalsByCategory(ctx context.Context, userID int64) ([]expense.CategoryTotal, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1
		GROUP BY category
		ORDER BY category
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to total expenses: %w", err)
	}
	defer rows.Close()

	var totals []expense.CategoryTotal
	for rows.Next() {
		var t expense.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan expense total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
