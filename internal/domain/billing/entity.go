// internal/domain/billing/entity.go
package billing

import (
	"database/sql"
	"time"
)

// Plan is one purchasable subscription tier. The catalog is stored as a
// single document and edited whole; IDs are unique within the document.
type Plan struct {
	ID        int     `json:"id"`
	Label     string  `json:"label"`
	Price     float64 `json:"price"`
	PondQuota int     `json:"pond_quota"`
}

// Catalog is the whole-document view of the plan set. Reads and writes go
// through the catalog repository as one value; concurrent admin edits are
// last-write-wins.
type Catalog struct {
	Plans     []Plan    `json:"plans"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NextPlanID returns max(existing ids)+1, or 1 for an empty catalog.
func (c *Catalog) NextPlanID() int {
	next := 1
	for _, p := range c.Plans {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

// FindPlan returns the plan with the given id, or nil.
func (c *Catalog) FindPlan(id int) *Plan {
	for i := range c.Plans {
		if c.Plans[i].ID == id {
			return &c.Plans[i]
		}
	}
	return nil
}

type Coupon struct {
	ID              int64     `json:"id" db:"id"`
	Code            string    `json:"code" db:"code"` // stored uppercase
	DiscountPercent float64   `json:"discount_percent" db:"discount_percent"`
	Active          bool      `json:"active" db:"active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// PaymentRecord is an append-mostly ledger row. transaction_reference is the
// external gateway identifier and is unique across all records; that
// uniqueness is the only replay defense.
type PaymentRecord struct {
	ID                   int64         `json:"id" db:"id"`
	UserID               int64         `json:"user_id" db:"user_id"`
	PlanID               int           `json:"plan_id" db:"plan_id"`
	PlanLabel            string        `json:"plan_label" db:"plan_label"`
	Months               int           `json:"months" db:"months"`
	Amount               float64       `json:"amount" db:"amount"`
	TransactionReference string        `json:"transaction_reference" db:"transaction_reference"`
	CouponCode           string        `json:"coupon_code,omitempty" db:"coupon_code"`
	Status               PaymentStatus `json:"status" db:"status"`
	ReviewedAt           sql.NullTime  `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt            time.Time     `json:"created_at" db:"created_at"`
}

// PaymentQuote is the priced result of plan selection. Pure computation;
// nothing is persisted until the user submits a payment against it.
type PaymentQuote struct {
	PlanID          int     `json:"plan_id"`
	PlanLabel       string  `json:"plan_label"`
	Months          int     `json:"months"`
	PlanPrice       float64 `json:"plan_price"`
	DiscountPercent float64 `json:"discount_percent"`
	CouponCode      string  `json:"coupon_code,omitempty"`
	Total           float64 `json:"total"`
}
