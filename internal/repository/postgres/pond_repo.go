// internal/repository/postgres/pond_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"aquafarm-service/internal/domain/pond"
	xerrors "aquafarm-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PondRepository struct {
	db *pgxpool.Pool
}

func NewPondRepository(db *pgxpool.Pool) *PondRepository {
	return &PondRepository{db: db}
}

func (r *PondRepository) Create(ctx context.Context, p *pond.Pond) error {
	query := `
		INSERT INTO ponds (user_id, name, area_sq_m, species, stocked_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		p.UserID, p.Name, p.AreaSqM, p.Species, p.StockedCount,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create pond: %w", err)
	}
	return nil
}

func (r *PondRepository) FindByID(ctx context.Context, id int64) (*pond.Pond, error) {
	query := `
		SELECT id, user_id, name, area_sq_m, species, stocked_count, created_at, updated_at
		FROM ponds
		WHERE id = $1
	`

	var p pond.Pond
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Name, &p.AreaSqM, &p.Species, &p.StockedCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pond: %w", err)
	}
	return &p, nil
}

func (r *PondRepository) ListByUser(ctx context.Context, userID int64) ([]*pond.Pond, error) {
	query := `
		SELECT id, user_id, name, area_sq_m, species, stocked_count, created_at, updated_at
		FROM ponds
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ponds: %w", err)
	}
	defer rows.Close()

	var ponds []*pond.Pond
	for rows.Next() {
		var p pond.Pond
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.AreaSqM, &p.Species, &p.StockedCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pond: %w", err)
		}
		ponds = append(ponds, &p)
	}
	return ponds, rows.Err()
}

func (r *PondRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM ponds WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ponds: %w", err)
	}
	return count, nil
}

func (r *PondRepository) Update(ctx context.Context, id int64, req *pond.UpdatePondRequest) error {
	query := `
		UPDATE ponds
		SET name = COALESCE($2, name),
		    area_sq_m = COALESCE($3, area_sq_m),
		    species = COALESCE($4, species),
		    stocked_count = COALESCE($5, stocked_count),
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, req.Name, req.AreaSqM, req.Species, req.StockedCount)
	if err != nil {
		return fmt.Errorf("failed to update pond: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *PondRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ponds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pond: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
