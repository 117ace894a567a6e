// internal/service/catalog/catalog_service.go
package catalog

import (
	"context"
	"fmt"
	"strings"

	"aquafarm-service/internal/domain/billing"
	xerrors "aquafarm-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Service manages the plan catalog and the coupon registry. The catalog is
// one mutable document edited whole: every mutation reads the current
// document, changes it in memory, and replaces it. Two admin sessions
// editing at once race with last-write-wins semantics; that is accepted.
type Service struct {
	catalogRepo billing.CatalogRepository
	couponRepo  billing.CouponRepository
	logger      *zap.Logger
}

func NewService(catalogRepo billing.CatalogRepository, couponRepo billing.CouponRepository, logger *zap.Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		couponRepo:  couponRepo,
		logger:      logger,
	}
}

func (s *Service) GetCatalog(ctx context.Context) (*billing.Catalog, error) {
	return s.catalogRepo.Get(ctx)
}

// AddPlan appends a plan to the catalog document. IDs are assigned as
// max(existing)+1, starting from 1 for an empty catalog.
func (s *Service) AddPlan(ctx context.Context, req *billing.AddPlanRequest) (*billing.Plan, error) {
	catalog, err := s.catalogRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan catalog: %w", err)
	}

	plan := billing.Plan{
		ID:        catalog.NextPlanID(),
		Label:     req.Label,
		Price:     req.Price,
		PondQuota: req.PondQuota,
	}
	catalog.Plans = append(catalog.Plans, plan)

	if err := s.catalogRepo.Replace(ctx, catalog); err != nil {
		return nil, fmt.Errorf("failed to persist plan catalog: %w", err)
	}

	s.logger.Info("plan added",
		zap.Int("plan_id", plan.ID),
		zap.String("label", plan.Label),
		zap.Float64("price", plan.Price),
		zap.Int("pond_quota", plan.PondQuota))

	return &plan, nil
}

func (s *Service) UpdatePlan(ctx context.Context, id int, req *billing.UpdatePlanRequest) (*billing.Plan, error) {
	catalog, err := s.catalogRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan catalog: %w", err)
	}

	plan := catalog.FindPlan(id)
	if plan == nil {
		return nil, fmt.Errorf("plan %d: %w", id, xerrors.ErrNotFound)
	}

	if req.Label != nil {
		plan.Label = *req.Label
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.PondQuota != nil {
		plan.PondQuota = *req.PondQuota
	}

	if err := s.catalogRepo.Replace(ctx, catalog); err != nil {
		return nil, fmt.Errorf("failed to persist plan catalog: %w", err)
	}

	return plan, nil
}

func (s *Service) RemovePlan(ctx context.Context, id int) error {
	catalog, err := s.catalogRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read plan catalog: %w", err)
	}

	kept := catalog.Plans[:0]
	found := false
	for _, p := range catalog.Plans {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("plan %d: %w", id, xerrors.ErrNotFound)
	}
	catalog.Plans = kept

	if err := s.catalogRepo.Replace(ctx, catalog); err != nil {
		return fmt.Errorf("failed to persist plan catalog: %w", err)
	}

	s.logger.Info("plan removed", zap.Int("plan_id", id))
	return nil
}

// AddCoupon registers a coupon. Codes are uppercased before storage so that
// lookups are case-insensitive.
func (s *Service) AddCoupon(ctx context.Context, req *billing.AddCouponRequest) (*billing.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, fmt.Errorf("coupon code is required: %w", xerrors.ErrValidation)
	}

	coupon := &billing.Coupon{
		Code:            code,
		DiscountPercent: req.DiscountPercent,
		Active:          true,
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}

	s.logger.Info("coupon added",
		zap.String("code", coupon.Code),
		zap.Float64("discount_percent", coupon.DiscountPercent))

	return coupon, nil
}

func (s *Service) ListCoupons(ctx context.Context) ([]*billing.Coupon, error) {
	return s.couponRepo.List(ctx)
}

func (s *Service) DeleteCoupon(ctx context.Context, id int64) error {
	return s.couponRepo.Delete(ctx, id)
}
