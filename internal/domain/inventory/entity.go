// internal/domain/inventory/entity.go
package inventory

import (
	"database/sql"
	"time"
)

// DefaultLowStockThreshold is applied when a purchase creates a new item.
const DefaultLowStockThreshold = 50

// InventoryItem is one stocked good for one user. Quantity must never go
// negative; the store does not enforce that, the stock coordinator does.
type InventoryItem struct {
	ID                int64     `json:"id" db:"id"`
	UserID            int64     `json:"user_id" db:"user_id"`
	Name              string    `json:"name" db:"name"`
	Type              string    `json:"type" db:"type"`
	Quantity          float64   `json:"quantity" db:"quantity"`
	Unit              string    `json:"unit" db:"unit"`
	LowStockThreshold float64   `json:"low_stock_threshold" db:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// IsLowStock reports whether the item has fallen to or below its threshold.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

// FeedPurchase is an immutable purchase event. Deleting one does not reverse
// the inventory increment or the linked expense entry.
type FeedPurchase struct {
	ID          int64         `json:"id" db:"id"`
	Reference   string        `json:"reference" db:"reference"`
	UserID      int64         `json:"user_id" db:"user_id"`
	PondID      sql.NullInt64 `json:"pond_id,omitempty" db:"pond_id"`
	FeedName    string        `json:"feed_name" db:"feed_name"`
	Bags        int           `json:"bags" db:"bags"`
	KgPerBag    float64       `json:"kg_per_bag" db:"kg_per_bag"`
	PricePerBag float64       `json:"price_per_bag" db:"price_per_bag"`
	TotalWeight float64       `json:"total_weight" db:"total_weight"`
	TotalPrice  float64       `json:"total_price" db:"total_price"`
	PurchasedAt time.Time     `json:"purchased_at" db:"purchased_at"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// FeedApplication is an immutable application event recorded before the
// matched inventory decrement is issued.
type FeedApplication struct {
	ID              int64     `json:"id" db:"id"`
	Reference       string    `json:"reference" db:"reference"`
	UserID          int64     `json:"user_id" db:"user_id"`
	PondID          int64     `json:"pond_id" db:"pond_id"`
	InventoryItemID int64     `json:"inventory_item_id" db:"inventory_item_id"`
	AmountKg        float64   `json:"amount_kg" db:"amount_kg"`
	AppliedAt       time.Time `json:"applied_at" db:"applied_at"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
