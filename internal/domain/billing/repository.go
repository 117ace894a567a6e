// internal/domain/billing/repository.go
package billing

import (
	"context"
	"time"
)

type PaymentRepository interface {
	// Create inserts a PENDING payment. Returns
	// xerrors.ErrDuplicateReference when the transaction reference already
	// exists in the ledger.
	Create(ctx context.Context, p *PaymentRecord) error
	FindByID(ctx context.Context, id int64) (*PaymentRecord, error)
	ListByUser(ctx context.Context, userID int64) ([]*PaymentRecord, error)
	ListByStatus(ctx context.Context, status PaymentStatus) ([]*PaymentRecord, error)
	// UpdateReview sets the terminal review outcome and the (possibly
	// overridden) months on a payment row.
	UpdateReview(ctx context.Context, id int64, status PaymentStatus, months int, reviewedAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

type CatalogRepository interface {
	// Get reads the whole plan document. An absent document is an empty
	// catalog, not an error.
	Get(ctx context.Context) (*Catalog, error)
	// Replace overwrites the whole stored document (last write wins).
	Replace(ctx context.Context, c *Catalog) error
}

type CouponRepository interface {
	// Create inserts a coupon; codes are unique, duplicates return
	// xerrors.ErrDuplicateEntry.
	Create(ctx context.Context, c *Coupon) error
	List(ctx context.Context) ([]*Coupon, error)
	// FindActiveByCode looks up an active coupon by exact (uppercase) code.
	FindActiveByCode(ctx context.Context, code string) (*Coupon, error)
	Delete(ctx context.Context, id int64) error
}
