// internal/repository/postgres/inventory_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"aquafarm-service/internal/domain/inventory"
	xerrors "aquafarm-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InventoryRepository struct {
	db *pgxpool.Pool
}

func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

const itemColumns = `
	id, user_id, name, type, quantity, unit, low_stock_threshold, created_at, updated_at
`

func scanItem(row pgx.Row) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	err := row.Scan(
		&item.ID, &item.UserID, &item.Name, &item.Type, &item.Quantity,
		&item.Unit, &item.LowStockThreshold, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan inventory item: %w", err)
	}
	return &item, nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, id int64) (*inventory.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	return scanItem(r.db.QueryRow(ctx, query, id))
}

func (r *InventoryRepository) FindByUserAndName(ctx context.Context, userID int64, name string) (*inventory.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE user_id = $1 AND name = $2`
	return scanItem(r.db.QueryRow(ctx, query, userID, name))
}

func (r *InventoryRepository) ListByUser(ctx context.Context, userID int64) ([]*inventory.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE user_id = $1 ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	var items []*inventory.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *InventoryRepository) Create(ctx context.Context, item *inventory.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (user_id, name, type, quantity, unit, low_stock_threshold)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		item.UserID, item.Name, item.Type, item.Quantity, item.Unit, item.LowStockThreshold,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

// AdjustQuantity applies a signed delta to the stored quantity. No floor is
// enforced here; the stock coordinator pre-checks decrements.
func (r *InventoryRepository) AdjustQuantity(ctx context.Context, id int64, delta float64) error {
	query := `UPDATE inventory_items SET quantity = quantity + $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *InventoryRepository) UpdateSettings(ctx context.Context, id int64, typ, unit *string, threshold *float64) error {
	query := `
		UPDATE inventory_items
		SET type = COALESCE($2, type),
		    unit = COALESCE($3, unit),
		    low_stock_threshold = COALESCE($4, low_stock_threshold),
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, typ, unit, threshold)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
