// internal/service/pond/pond_service.go
package pond

import (
	"context"
	"fmt"
	"time"

	"aquafarm-service/internal/domain/pond"
	"aquafarm-service/internal/domain/user"
	xerrors "aquafarm-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Service is the one place the pond quota entitlement is enforced.
type Service struct {
	pondRepo pond.Repository
	userRepo user.Repository
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(pondRepo pond.Repository, userRepo user.Repository, logger *zap.Logger) *Service {
	return &Service{
		pondRepo: pondRepo,
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Create adds a pond if the user's effective entitlement allows another
// one. The stored status enum may be stale; expiry is derived here at read
// time.
func (s *Service) Create(ctx context.Context, userID int64, req *pond.CreatePondRequest) (*pond.Pond, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}

	if u.Role != user.RoleAdmin && u.EffectiveStatus(s.now()) != user.StatusActive {
		return nil, fmt.Errorf("subscription is not active: %w", xerrors.ErrForbidden)
	}

	if !u.HasUnlimitedPonds() {
		count, err := s.pondRepo.CountByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to count ponds: %w", err)
		}
		if count >= u.MaxPonds {
			return nil, fmt.Errorf("pond quota of %d reached: %w", u.MaxPonds, xerrors.ErrForbidden)
		}
	}

	p := &pond.Pond{
		UserID:       userID,
		Name:         req.Name,
		AreaSqM:      req.AreaSqM,
		Species:      req.Species,
		StockedCount: req.StockedCount,
	}
	if err := s.pondRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("pond created",
		zap.Int64("pond_id", p.ID),
		zap.Int64("user_id", userID),
		zap.String("name", p.Name))

	return p, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]*pond.Pond, error) {
	return s.pondRepo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, pondID int64) (*pond.Pond, error) {
	p, err := s.pondRepo.FindByID(ctx, pondID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, xerrors.ErrForbidden
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, userID, pondID int64, req *pond.UpdatePondRequest) error {
	if _, err := s.Get(ctx, userID, pondID); err != nil {
		return err
	}
	return s.pondRepo.Update(ctx, pondID, req)
}

func (s *Service) Delete(ctx context.Context, userID, pondID int64) error {
	if _, err := s.Get(ctx, userID, pondID); err != nil {
		return err
	}
	return s.pondRepo.Delete(ctx, pondID)
}
