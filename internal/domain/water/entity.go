// internal/domain/water/entity.go
package water

import (
	"context"
	"time"
)

// Reading is one water-quality measurement for a pond. Flags lists the
// parameter names the reading was flagged for (e.g. "ph", "ammonia").
type Reading struct {
	ID              int64     `json:"id" db:"id"`
	UserID          int64     `json:"user_id" db:"user_id"`
	PondID          int64     `json:"pond_id" db:"pond_id"`
	PH              float64   `json:"ph" db:"ph"`
	TempC           float64   `json:"temp_c" db:"temp_c"`
	DissolvedOxygen float64   `json:"dissolved_oxygen" db:"dissolved_oxygen"`
	Ammonia         float64   `json:"ammonia" db:"ammonia"`
	Flags           []string  `json:"flags,omitempty" db:"flags"`
	RecordedAt      time.Time `json:"recorded_at" db:"recorded_at"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type CreateReadingRequest struct {
	PondID          int64     `json:"pond_id" binding:"required"`
	PH              float64   `json:"ph" binding:"required"`
	TempC           float64   `json:"temp_c" binding:"required"`
	DissolvedOxygen float64   `json:"dissolved_oxygen" binding:"required"`
	Ammonia         float64   `json:"ammonia"`
	RecordedAt      time.Time `json:"recorded_at" binding:"required"`
}

type Repository interface {
	Create(ctx context.Context, r *Reading) error
	ListByPond(ctx context.Context, pondID int64, limit int) ([]*Reading, error)
	// ListFlagged returns readings flagged for any of the given parameters.
	ListFlagged(ctx context.Context, userID int64, params []string) ([]*Reading, error)
}
