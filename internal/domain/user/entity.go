// internal/domain/user/entity.go
package user

import (
	"database/sql"
	"time"
)

type Role string

const (
	RoleFarmer Role = "farmer"
	RoleAdmin  Role = "admin"
)

type SubscriptionStatus string

const (
	StatusExpired SubscriptionStatus = "expired"
	StatusPending SubscriptionStatus = "pending"
	StatusActive  SubscriptionStatus = "active"
)

// UnlimitedPonds is the sentinel quota meaning no pond limit.
const UnlimitedPonds = 999

type User struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	FullName     string `json:"full_name" db:"full_name"`
	Phone        string `json:"phone,omitempty" db:"phone"`
	Role         Role   `json:"role" db:"role"`

	// Entitlement fields, mutated only by payment submission and admin review.
	SubscriptionStatus SubscriptionStatus `json:"subscription_status" db:"subscription_status"`
	ExpiryDate         sql.NullTime       `json:"expiry_date,omitempty" db:"expiry_date"`
	MaxPonds           int                `json:"max_ponds" db:"max_ponds"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EffectiveStatus derives the entitlement status at read time. The stored
// enum may be stale: there is no background expiry sweep, so an ACTIVE row
// whose expiry has passed is reported as expired here.
func (u *User) EffectiveStatus(now time.Time) SubscriptionStatus {
	if u.SubscriptionStatus == StatusActive {
		if !u.ExpiryDate.Valid || !u.ExpiryDate.Time.After(now) {
			return StatusExpired
		}
	}
	return u.SubscriptionStatus
}

// HasUnlimitedPonds reports whether the sentinel quota is set.
func (u *User) HasUnlimitedPonds() bool {
	return u.MaxPonds >= UnlimitedPonds
}
