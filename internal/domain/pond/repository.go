// internal/domain/pond/repository.go
package pond

import "context"

type Repository interface {
	Create(ctx context.Context, p *Pond) error
	FindByID(ctx context.Context, id int64) (*Pond, error)
	ListByUser(ctx context.Context, userID int64) ([]*Pond, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Update(ctx context.Context, id int64, req *UpdatePondRequest) error
	Delete(ctx context.Context, id int64) error
}
