// internal/domain/pond/entity.go
package pond

import "time"

type Pond struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	AreaSqM      float64   `json:"area_sq_m" db:"area_sq_m"`
	Species      string    `json:"species" db:"species"`
	StockedCount int       `json:"stocked_count" db:"stocked_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type CreatePondRequest struct {
	Name         string  `json:"name" binding:"required"`
	AreaSqM      float64 `json:"area_sq_m" binding:"required,gt=0"`
	Species      string  `json:"species"`
	StockedCount int     `json:"stocked_count"`
}

type UpdatePondRequest struct {
	Name         *string  `json:"name"`
	AreaSqM      *float64 `json:"area_sq_m"`
	Species      *string  `json:"species"`
	StockedCount *int     `json:"stocked_count"`
}
