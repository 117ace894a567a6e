// internal/domain/sale/entity.go
package sale

import (
	"context"
	"database/sql"
	"time"
)

type Sale struct {
	ID         int64         `json:"id" db:"id"`
	UserID     int64         `json:"user_id" db:"user_id"`
	PondID     sql.NullInt64 `json:"pond_id,omitempty" db:"pond_id"`
	Product    string        `json:"product" db:"product"`
	WeightKg   float64       `json:"weight_kg" db:"weight_kg"`
	PricePerKg float64       `json:"price_per_kg" db:"price_per_kg"`
	Total      float64       `json:"total" db:"total"`
	Date       time.Time     `json:"date" db:"date"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}

type CreateSaleRequest struct {
	PondID     *int64    `json:"pond_id"`
	Product    string    `json:"product" binding:"required"`
	WeightKg   float64   `json:"weight_kg" binding:"required,gt=0"`
	PricePerKg float64   `json:"price_per_kg" binding:"required,gt=0"`
	Date       time.Time `json:"date" binding:"required"`
}

type Repository interface {
	Create(ctx context.Context, s *Sale) error
	ListByUser(ctx context.Context, userID int64) ([]*Sale, error)
	TotalRevenue(ctx context.Context, userID int64) (float64, error)
	Delete(ctx context.Context, id int64) error
}
