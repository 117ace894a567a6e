// internal/domain/expense/entity.go
package expense

import (
	"context"
	"database/sql"
	"time"
)

const CategoryFeed = "feed"

type Expense struct {
	ID        int64         `json:"id" db:"id"`
	UserID    int64         `json:"user_id" db:"user_id"`
	PondID    sql.NullInt64 `json:"pond_id,omitempty" db:"pond_id"`
	Category  string        `json:"category" db:"category"`
	Amount    float64       `json:"amount" db:"amount"`
	Note      string        `json:"note,omitempty" db:"note"`
	Date      time.Time     `json:"date" db:"date"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}

type CreateExpenseRequest struct {
	PondID   *int64    `json:"pond_id"`
	Category string    `json:"category" binding:"required"`
	Amount   float64   `json:"amount" binding:"required,gt=0"`
	Note     string    `json:"note"`
	Date     time.Time `json:"date" binding:"required"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type Repository interface {
	Create(ctx context.Context, e *Expense) error
	ListByUser(ctx context.Context, userID int64) ([]*Expense, error)
	TotalsByCategory(ctx context.Context, userID int64) ([]CategoryTotal, error)
	Delete(ctx context.Context, id int64) error
}
