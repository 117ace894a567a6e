// internal/service/stock/stock_service.go
package stock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aquafarm-service/internal/domain/expense"
	"aquafarm-service/internal/domain/inventory"
	xerrors "aquafarm-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Service is the stock-consistency coordinator: it sequences the
// multi-table writes behind feed purchases and feed applications. The store
// gives no transaction across the event history, the inventory row and the
// expense ledger, so each flow is an ordered best-effort chain. A step
// failure aborts the remaining steps but never undoes the committed prefix;
// the *xerrors.SequenceError tells the caller exactly how far the chain got.
type Service struct {
	itemRepo    inventory.ItemRepository
	eventRepo   inventory.EventRepository
	expenseRepo expense.Repository
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(
	itemRepo inventory.ItemRepository,
	eventRepo inventory.EventRepository,
	expenseRepo expense.Repository,
	logger *zap.Logger,
) *Service {
	return &Service{
		itemRepo:    itemRepo,
		eventRepo:   eventRepo,
		expenseRepo: expenseRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// ApplyFeed records a feed application and decrements the matching
// inventory item. Sufficiency is checked by reading the current quantity
// immediately before the writes; two sessions applying concurrently can
// race past that check, which is accepted. The decrement is never allowed
// to start when the read shows insufficient stock, so a single session can
// not drive the quantity negative.
func (s *Service) ApplyFeed(ctx context.Context, userID int64, req *inventory.ApplyFeedRequest) (*inventory.FeedApplication, error) {
	if req.AmountKg <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", xerrors.ErrValidation)
	}

	item, err := s.itemRepo.FindByID(ctx, req.InventoryItemID)
	if err != nil {
		return nil, fmt.Errorf("inventory item %d: %w", req.InventoryItemID, err)
	}
	if item.UserID != userID {
		return nil, xerrors.ErrForbidden
	}

	if item.Quantity < req.AmountKg {
		return nil, fmt.Errorf("have %.2f %s of %q, need %.2f: %w",
			item.Quantity, item.Unit, item.Name, req.AmountKg, xerrors.ErrInsufficientStock)
	}

	app := &inventory.FeedApplication{
		Reference:       "APP-" + ulid.Make().String(),
		UserID:          userID,
		PondID:          req.PondID,
		InventoryItemID: item.ID,
		AmountKg:        req.AmountKg,
		AppliedAt:       s.now(),
	}

	if err := s.eventRepo.CreateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to record feed application: %w", err)
	}

	if err := s.itemRepo.AdjustQuantity(ctx, item.ID, -req.AmountKg); err != nil {
		// The event is recorded but stock was not decremented: available
		// stock is now over-stated until an operator reconciles it.
		s.logger.Error("feed application recorded but stock not decremented",
			zap.String("reference", app.Reference),
			zap.Int64("inventory_item_id", item.ID),
			zap.Float64("amount_kg", req.AmountKg),
			zap.Error(err))
		return app, &xerrors.SequenceError{
			Op:        "apply_feed",
			Completed: []string{"application_insert"},
			Step:      "inventory_decrement",
			Err:       err,
		}
	}

	s.logger.Info("feed applied",
		zap.String("reference", app.Reference),
		zap.Int64("pond_id", req.PondID),
		zap.Int64("inventory_item_id", item.ID),
		zap.Float64("amount_kg", req.AmountKg))

	return app, nil
}

// PurchaseFeed records a purchase and fans out its side effects: inventory
// upsert, then an expense-ledger entry. Identical calls are never deduped -
// each produces its own purchase row, increment and expense entry.
func (s *Service) PurchaseFeed(ctx context.Context, userID int64, req *inventory.PurchaseFeedRequest) (*inventory.FeedPurchase, error) {
	totalWeight := float64(req.Bags) * req.KgPerBag
	totalPrice := float64(req.Bags) * req.PricePerBag

	purchase := &inventory.FeedPurchase{
		Reference:   "PUR-" + ulid.Make().String(),
		UserID:      userID,
		FeedName:    req.FeedName,
		Bags:        req.Bags,
		KgPerBag:    req.KgPerBag,
		PricePerBag: req.PricePerBag,
		TotalWeight: totalWeight,
		TotalPrice:  totalPrice,
		PurchasedAt: req.Date,
	}
	if req.PondID != nil {
		purchase.PondID.Int64 = *req.PondID
		purchase.PondID.Valid = true
	}

	if err := s.eventRepo.CreatePurchase(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to record feed purchase: %w", err)
	}

	if err := s.upsertInventory(ctx, userID, req.FeedName, totalWeight); err != nil {
		s.logger.Error("purchase recorded but inventory not updated",
			zap.String("reference", purchase.Reference),
			zap.Error(err))
		return purchase, &xerrors.SequenceError{
			Op:        "purchase_feed",
			Completed: []string{"purchase_insert"},
			Step:      "inventory_upsert",
			Err:       err,
		}
	}

	entry := &expense.Expense{
		UserID:   userID,
		PondID:   purchase.PondID,
		Category: expense.CategoryFeed,
		Amount:   totalPrice,
		Note:     fmt.Sprintf("%d bags of %s", req.Bags, req.FeedName),
		Date:     req.Date,
	}
	if err := s.expenseRepo.Create(ctx, entry); err != nil {
		s.logger.Error("purchase recorded but expense entry not created",
			zap.String("reference", purchase.Reference),
			zap.Error(err))
		return purchase, &xerrors.SequenceError{
			Op:        "purchase_feed",
			Completed: []string{"purchase_insert", "inventory_upsert"},
			Step:      "expense_insert",
			Err:       err,
		}
	}

	s.logger.Info("feed purchased",
		zap.String("reference", purchase.Reference),
		zap.String("feed_name", req.FeedName),
		zap.Float64("total_weight", totalWeight),
		zap.Float64("total_price", totalPrice))

	return purchase, nil
}

// upsertInventory increments an existing item by weight or creates a new
// one carrying the default low-stock threshold.
func (s *Service) upsertInventory(ctx context.Context, userID int64, name string, weight float64) error {
	item, err := s.itemRepo.FindByUserAndName(ctx, userID, name)
	switch {
	case err == nil:
		return s.itemRepo.AdjustQuantity(ctx, item.ID, weight)
	case errors.Is(err, xerrors.ErrNotFound):
		return s.itemRepo.Create(ctx, &inventory.InventoryItem{
			UserID:            userID,
			Name:              name,
			Type:              "feed",
			Quantity:          weight,
			Unit:              "kg",
			LowStockThreshold: inventory.DefaultLowStockThreshold,
		})
	default:
		return err
	}
}

// DeletePurchase removes the purchase record only. The inventory increment
// and the expense entry it spawned are deliberately left in place.
func (s *Service) DeletePurchase(ctx context.Context, userID, purchaseID int64) error {
	purchase, err := s.eventRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return fmt.Errorf("purchase %d: %w", purchaseID, err)
	}
	if purchase.UserID != userID {
		return xerrors.ErrForbidden
	}
	return s.eventRepo.DeletePurchase(ctx, purchaseID)
}

func (s *Service) ListInventory(ctx context.Context, userID int64) ([]*inventory.InventoryItem, error) {
	return s.itemRepo.ListByUser(ctx, userID)
}

// ListLowStock returns items at or below their low-stock threshold.
func (s *Service) ListLowStock(ctx context.Context, userID int64) ([]*inventory.InventoryItem, error) {
	items, err := s.itemRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var low []*inventory.InventoryItem
	for _, item := range items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low, nil
}

func (s *Service) ListPurchases(ctx context.Context, userID int64) ([]*inventory.FeedPurchase, error) {
	return s.eventRepo.ListPurchasesByUser(ctx, userID)
}

func (s *Service) ListApplications(ctx context.Context, pondID int64) ([]*inventory.FeedApplication, error) {
	return s.eventRepo.ListApplicationsByPond(ctx, pondID)
}

func (s *Service) UpdateItem(ctx context.Context, userID, itemID int64, req *inventory.UpdateItemRequest) error {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("inventory item %d: %w", itemID, err)
	}
	if item.UserID != userID {
		return xerrors.ErrForbidden
	}
	return s.itemRepo.UpdateSettings(ctx, itemID, req.Type, req.Unit, req.LowStockThreshold)
}

func (s *Service) DeleteItem(ctx context.Context, userID, itemID int64) error {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("inventory item %d: %w", itemID, err)
	}
	if item.UserID != userID {
		return xerrors.ErrForbidden
	}
	return s.itemRepo.Delete(ctx, itemID)
}
