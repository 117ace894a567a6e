// internal/repository/postgres/catalog_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aquafarm-service/internal/domain/billing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository stores the plan catalog as a single JSONB document in a
// one-row table. The document is read whole and replaced whole; concurrent
// edits are last-write-wins.
type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Get(ctx context.Context) (*billing.Catalog, error) {
	query := `SELECT document, updated_at FROM plan_catalog WHERE id = 1`

	var doc []byte
	var updatedAt time.Time
	err := r.db.QueryRow(ctx, query).Scan(&doc, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Absent document means an empty catalog, not an error.
		return &billing.Catalog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read plan catalog: %w", err)
	}

	var plans []billing.Plan
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &plans); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan catalog: %w", err)
		}
	}

	return &billing.Catalog{Plans: plans, UpdatedAt: updatedAt}, nil
}

func (r *CatalogRepository) Replace(ctx context.Context, c *billing.Catalog) error {
	doc, err := json.Marshal(c.Plans)
	if err != nil {
		return fmt.Errorf("failed to marshal plan catalog: %w", err)
	}

	query := `
		INSERT INTO plan_catalog (id, document, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET document = $1, updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, doc); err != nil {
		return fmt.Errorf("failed to replace plan catalog: %w", err)
	}
	return nil
}
