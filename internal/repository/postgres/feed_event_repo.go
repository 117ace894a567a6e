// internal/repository/postgres/feed_event_repo.go
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

// FeedEventRepository persists the immutable purchase and application
// history records.
type FeedEventRepository struct {
	db *pgxpool.Pool
}

func NewFeedEventRepository(db *pgxpool.Pool) *FeedEventRepository {
	return &FeedEventRepository{db: db}
}

func (r *FeedEventRepository) CreatePurchase(ctx context.Context, p *inventory.FeedPurchase) error {
	query := `
		INSERT INTO feed_purchases (
			reference, user_id, pond_id, feed_name, bags, kg_per_bag,
			price_per_bag, total_weight, total_price, purchased_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		p.Reference, p.UserID, p.PondID, p.FeedName, p.Bags, p.KgPerBag,
		p.PricePerBag, p.TotalWeight, p.TotalPrice, p.PurchasedAt,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create feed purchase: %w", err)
	}
	return nil
}

func (r *FeedEventRepository) ListPurchasesByUser(ctx context.Context, userID int64) ([]*inventory.FeedPurchase, error) {
	query := `
		SELECT id, reference, user_id, pond_id, feed_name, bags, kg_per_bag,
		       price_per_bag, total_weight, total_price, purchased_at, created_at
		FROM feed_purchases
		WHERE user_id = $1
		ORDER BY purchased_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*inventory.FeedPurchase
	for rows.Next() {
		var p inventory.FeedPurchase
		err := rows.Scan(
			&p.ID, &p.Reference, &p.UserID, &p.PondID, &p.FeedName, &p.Bags, &p.KgPerBag,
			&p.PricePerBag, &p.TotalWeight, &p.TotalPrice, &p.PurchasedAt, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed purchase: %w", err)
		}
		purchases = append(purchases, &p)
	}
	return purchases, rows.Err()
}

func (r *FeedEventRepository) FindPurchaseByID(ctx context.Context, id int64) (*inventory.FeedPurchase, error) {
	query := `
		SELECT id, reference, user_id, pond_id, feed_name, bags, kg_per_bag,
		       price_per_bag, total_weight, total_price, purchased_at, created_at
		FROM feed_purchases
		WHERE id = $1
	`

	var p inventory.FeedPurchase
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Reference, &p.UserID, &p.PondID, &p.FeedName, &p.Bags, &p.KgPerBag,
		&p.PricePerBag, &p.TotalWeight, &p.TotalPrice, &p.PurchasedAt, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find feed purchase: %w", err)
	}
	return &p, nil
}

// DeletePurchase removes the purchase row only. The inventory increment and
// the linked expense entry are not reversed.
func (r *FeedEventRepository) DeletePurchase(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM feed_purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete feed purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *FeedEventRepository) CreateApplication(ctx context.Context, a *inventory.FeedApplication) error {
	query := `
		INSERT INTO feed_applications (
			reference, user_id, pond_id, inventory_item_id, amount_kg, applied_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		a.Reference, a.UserID, a.PondID, a.InventoryItemID, a.AmountKg, a.AppliedAt,
	).Scan(&a.ID, &a.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create feed application: %w", err)
	}
	return nil
}

func (r *FeedEventRepository) ListApplicationsByPond(ctx context.Context, pondID int64) ([]*inventory.FeedApplication, error) {
	query := `
		SELECT id, reference, user_id, pond_id, inventory_item_id, amount_kg, applied_at, created_at
		FROM feed_applications
		WHERE pond_id = $1
		ORDER BY applied_at DESC
	`

	rows, err := r.db.Query(ctx, query, pondID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed applications: %w", err)
	}
	defer rows.Close()

	var apps []*inventory.FeedApplication
	for rows.Next() {
		var a inventory.FeedApplication
		err := rows.Scan(
			&a.ID, &a.Reference, &a.UserID, &a.PondID, &a.InventoryItemID,
			&a.AmountKg, &a.AppliedAt, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed application: %w", err)
		}
		apps = append(apps, &a)
	}
	return apps, rows.Err()
}
