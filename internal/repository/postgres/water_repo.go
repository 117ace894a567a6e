// internal/repository/postgres/water_repo.go
package postgres

import (
	"context"
	"fmt"

	"aquafarm-service/internal/domain/water"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type WaterRepository struct {
	db *pgxpool.Pool
}

func NewWaterRepository(db *pgxpool.Pool) *WaterRepository {
	return &WaterRepository{db: db}
}

func (r *WaterRepository) Create(ctx context.Context, reading *water.Reading) error {
	query := `
		INSERT INTO water_readings (
			user_id, pond_id, ph, temp_c, dissolved_oxygen, ammonia, flags, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7::text[], $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		reading.UserID, reading.PondID, reading.PH, reading.TempC,
		reading.DissolvedOxygen, reading.Ammonia, pq.Array(reading.Flags), reading.RecordedAt,
	).Scan(&reading.ID, &reading.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create water reading: %w", err)
	}
	return nil
}

func (r *WaterRepository) ListByPond(ctx context.Context, pondID int64, limit int) ([]*water.Reading, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		SELECT id, user_id, pond_id, ph, temp_c, dissolved_oxygen, ammonia, flags, recorded_at, created_at
		FROM water_readings
		WHERE pond_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`

	return r.list(ctx, query, pondID, limit)
}

// ListFlagged returns readings whose flag list overlaps the given parameter
// names.
func (r *WaterRepository) ListFlagged(ctx context.Context, userID int64, params []string) ([]*water.Reading, error) {
	query := `
		SELECT id, user_id, pond_id, ph, temp_c, dissolved_oxygen, ammonia, flags, recorded_at, created_at
		FROM water_readings
		WHERE user_id = $1 AND flags && $2::text[]
		ORDER BY recorded_at DESC
	`

	return r.list(ctx, query, userID, pq.Array(params))
}

func (r *WaterRepository) list(ctx context.Context, query string, args ...interface{}) ([]*water.Reading, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list water readings: %w", err)
	}
	defer rows.Close()

	var readings []*water.Reading
	for rows.Next() {
		var reading water.Reading
		err := rows.Scan(
			&reading.ID, &reading.UserID, &reading.PondID, &reading.PH, &reading.TempC,
			&reading.DissolvedOxygen, &reading.Ammonia, &reading.Flags, &reading.RecordedAt, &reading.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan water reading: %w", err)
		}
		readings = append(readings, &reading)
	}
	return readings, rows.Err()
}
