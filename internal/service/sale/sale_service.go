// internal/service/sale/sale_service.go
package sale

import (
	"context"

	"aquafarm-service/internal/domain/sale"

	"go.uber.org/zap"
)

type Service struct {
	repo   sale.Repository
	logger *zap.Logger
}

func NewService(repo sale.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, userID int64, req *sale.CreateSaleRequest) (*sale.Sale, error) {
	rec := &sale.Sale{
		UserID:     userID,
		Product:    req.Product,
		WeightKg:   req.WeightKg,
		PricePerKg: req.PricePerKg,
		Total:      req.WeightKg * req.PricePerKg,
		Date:       req.Date,
	}
	if req.PondID != nil {
		rec.PondID.Int64 = *req.PondID
		rec.PondID.Valid = true
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.Int64("sale_id", rec.ID),
		zap.String("product", rec.Product),
		zap.Float64("total", rec.Total))

	return rec, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]*sale.Sale, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) TotalRevenue(ctx context.Context, userID int64) (float64, error) {
	return s.repo.TotalRevenue(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
