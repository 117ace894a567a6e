// internal/domain/inventory/repository.go
package inventory

import "context"

type ItemRepository interface {
	FindByID(ctx context.Context, id int64) (*InventoryItem, error)
	FindByUserAndName(ctx context.Context, userID int64, name string) (*InventoryItem, error)
	ListByUser(ctx context.Context, userID int64) ([]*InventoryItem, error)
	Create(ctx context.Context, item *InventoryItem) error
	// AdjustQuantity adds delta (which may be negative) to the stored
	// quantity. It is a plain single-row update; callers pre-check
	// sufficiency before issuing decrements.
	AdjustQuantity(ctx context.Context, id int64, delta float64) error
	UpdateSettings(ctx context.Context, id int64, typ, unit *string, threshold *float64) error
	Delete(ctx context.Context, id int64) error
}

type EventRepository interface {
	CreatePurchase(ctx context.Context, p *FeedPurchase) error
	ListPurchasesByUser(ctx context.Context, userID int64) ([]*FeedPurchase, error)
	FindPurchaseByID(ctx context.Context, id int64) (*FeedPurchase, error)
	DeletePurchase(ctx context.Context, id int64) error

	CreateApplication(ctx context.Context, a *FeedApplication) error
	ListApplicationsByPond(ctx context.Context, pondID int64) ([]*FeedApplication, error)
}
