// internal/service/expense/expense_service.go
package expense

import (
	"context"

	"aquafarm-service/internal/domain/expense"

	"go.uber.org/zap"
)

type Service struct {
	repo   expense.Repository
	logger *zap.Logger
}

func NewService(repo expense.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, userID int64, req *expense.CreateExpenseRequest) (*expense.Expense, error) {
	e := &expense.Expense{
		UserID:   userID,
		Category: req.Category,
		Amount:   req.Amount,
		Note:     req.Note,
		Date:     req.Date,
	}
	if req.PondID != nil {
		e.PondID.Int64 = *req.PondID
		e.PondID.Valid = true
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("expense recorded",
		zap.Int64("expense_id", e.ID),
		zap.String("category", e.Category),
		zap.Float64("amount", e.Amount))

	return e, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]*expense.Expense, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) TotalsByCategory(ctx context.Context, userID int64) ([]expense.CategoryTotal, error) {
	return s.repo.TotalsByCategory(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
