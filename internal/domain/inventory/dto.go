// internal/domain/inventory/dto.go
package inventory

import "time"

type PurchaseFeedRequest struct {
	PondID      *int64    `json:"pond_id"`
	FeedName    string    `json:"feed_name" binding:"required"`
	Bags        int       `json:"bags" binding:"required,gt=0"`
	KgPerBag    float64   `json:"kg_per_bag" binding:"required,gt=0"`
	PricePerBag float64   `json:"price_per_bag" binding:"required,gt=0"`
	Date        time.Time `json:"date" binding:"required"`
}

type ApplyFeedRequest struct {
	PondID          int64   `json:"pond_id" binding:"required"`
	InventoryItemID int64   `json:"inventory_item_id" binding:"required"`
	AmountKg        float64 `json:"amount_kg" binding:"required,gt=0"`
}

type UpdateItemRequest struct {
	Type              *string  `json:"type"`
	Unit              *string  `json:"unit"`
	LowStockThreshold *float64 `json:"low_stock_threshold"`
}
