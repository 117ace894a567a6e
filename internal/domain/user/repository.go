// internal/domain/user/repository.go
package user

import (
	"context"
	"database/sql"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdateProfile(ctx context.Context, id int64, fullName, phone *string) error
	Delete(ctx context.Context, id int64) error

	// Entitlement writes. Each is a single-row update; the workflow engine
	// sequences them without transactional wrapping.
	UpdateSubscriptionStatus(ctx context.Context, id int64, status SubscriptionStatus) error
	UpdateEntitlement(ctx context.Context, id int64, status SubscriptionStatus, expiry sql.NullTime, maxPonds int) error
}
