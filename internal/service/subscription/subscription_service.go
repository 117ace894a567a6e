// internal/service/subscription/subscription_service.go
package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"aquafarm-service/internal/domain/billing"
	"aquafarm-service/internal/domain/user"
	xerrors "aquafarm-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// fallbackPondQuota is granted when a payment's plan was removed from the
// catalog between submission and approval.
const fallbackPondQuota = 1

// Notifier pushes payment-review outcomes to the affected user. Delivery is
// best effort; failures are logged, never propagated.
type Notifier interface {
	NotifyPaymentReview(userID, paymentID int64, status billing.PaymentStatus)
}

// Service orchestrates the plan-selection -> payment-submission ->
// admin-review entitlement workflow. The store offers no transaction
// spanning the payment ledger and the user entitlement, so every multi-write
// operation here is an ordered chain; a mid-chain failure surfaces as a
// *xerrors.SequenceError naming the committed prefix.
type Service struct {
	userRepo    user.Repository
	paymentRepo billing.PaymentRepository
	catalogRepo billing.CatalogRepository
	couponRepo  billing.CouponRepository
	notifier    Notifier
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(
	userRepo user.Repository,
	paymentRepo billing.PaymentRepository,
	catalogRepo billing.CatalogRepository,
	couponRepo billing.CouponRepository,
	notifier Notifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		catalogRepo: catalogRepo,
		couponRepo:  couponRepo,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// SelectPlan prices a plan selection. Pure computation over catalog and
// coupon state; nothing is written. Months is used as given - range
// validation is owned by the caller.
func (s *Service) SelectPlan(ctx context.Context, planID, months int, couponCode string) (*billing.PaymentQuote, error) {
	catalog, err := s.catalogRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan catalog: %w", err)
	}

	plan := catalog.FindPlan(planID)
	if plan == nil {
		return nil, fmt.Errorf("plan %d: %w", planID, xerrors.ErrNotFound)
	}

	quote := &billing.PaymentQuote{
		PlanID:    plan.ID,
		PlanLabel: plan.Label,
		Months:    months,
		PlanPrice: plan.Price,
	}

	if couponCode != "" {
		code := strings.ToUpper(strings.TrimSpace(couponCode))
		coupon, err := s.couponRepo.FindActiveByCode(ctx, code)
		switch {
		case err == nil:
			quote.DiscountPercent = coupon.DiscountPercent
			quote.CouponCode = coupon.Code
		case errors.Is(err, xerrors.ErrNotFound):
			// Absent or inactive coupon means no discount, not an error.
		default:
			s.logger.Warn("coupon lookup failed, pricing without discount",
				zap.String("code", code), zap.Error(err))
		}
	}

	quote.Total = plan.Price * float64(months) * (1 - quote.DiscountPercent/100)
	return quote, nil
}

// SubmitPayment appends a pending payment to the ledger and marks the
// user's entitlement pending. Two independent writes: if the entitlement
// update fails after the insert, the pending payment stays in the ledger
// and the error reports the completed prefix.
func (s *Service) SubmitPayment(ctx context.Context, userID int64, quote *billing.PaymentQuote, txRef string) (*billing.PaymentRecord, error) {
	txRef = strings.TrimSpace(txRef)
	if txRef == "" {
		return nil, fmt.Errorf("transaction reference is required: %w", xerrors.ErrValidation)
	}
	if quote == nil {
		return nil, fmt.Errorf("payment quote is required: %w", xerrors.ErrValidation)
	}

	payment := &billing.PaymentRecord{
		UserID:               userID,
		PlanID:               quote.PlanID,
		PlanLabel:            quote.PlanLabel,
		Months:               quote.Months,
		Amount:               quote.Total,
		TransactionReference: txRef,
		CouponCode:           quote.CouponCode,
		Status:               billing.PaymentPending,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, xerrors.ErrDuplicateReference) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if err := s.userRepo.UpdateSubscriptionStatus(ctx, userID, user.StatusPending); err != nil {
		s.logger.Error("payment recorded but entitlement status not updated",
			zap.Int64("payment_id", payment.ID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return payment, &xerrors.SequenceError{
			Op:        "submit_payment",
			Completed: []string{"payment_insert"},
			Step:      "entitlement_status_update",
			Err:       err,
		}
	}

	s.logger.Info("payment submitted",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("user_id", userID),
		zap.Int("plan_id", payment.PlanID),
		zap.Float64("amount", payment.Amount))

	return payment, nil
}

// ApprovePayment marks a pending payment approved and grants the
// entitlement it purchased. The admin may override the duration. Ordered
// chain: payment update, plan lookup, entitlement update. A failure before
// the payment update leaves everything untouched and safe to retry; a
// failure after it leaves the payment approved with a stale entitlement,
// reported for manual retry - there is no automatic rollback.
func (s *Service) ApprovePayment(ctx context.Context, paymentID int64, months int) error {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("payment %d: %w", paymentID, err)
	}
	if payment.Status != billing.PaymentPending {
		return fmt.Errorf("payment %d already %s: %w", paymentID, payment.Status, xerrors.ErrValidation)
	}

	now := s.now()
	if err := s.paymentRepo.UpdateReview(ctx, paymentID, billing.PaymentApproved, months, now); err != nil {
		return fmt.Errorf("failed to approve payment: %w", err)
	}

	expiry := sql.NullTime{Time: now.AddDate(0, months, 0), Valid: true}

	maxPonds := fallbackPondQuota
	catalog, err := s.catalogRepo.Get(ctx)
	if err != nil {
		s.logger.Error("payment approved but plan lookup failed",
			zap.Int64("payment_id", paymentID), zap.Error(err))
		return &xerrors.SequenceError{
			Op:        "approve_payment",
			Completed: []string{"payment_update"},
			Step:      "plan_lookup",
			Err:       err,
		}
	}
	if plan := catalog.FindPlan(payment.PlanID); plan != nil {
		maxPonds = plan.PondQuota
	} else {
		s.logger.Warn("plan removed since submission, granting fallback quota",
			zap.Int64("payment_id", paymentID), zap.Int("plan_id", payment.PlanID))
	}

	if err := s.userRepo.UpdateEntitlement(ctx, payment.UserID, user.StatusActive, expiry, maxPonds); err != nil {
		s.logger.Error("payment approved but entitlement not updated",
			zap.Int64("payment_id", paymentID),
			zap.Int64("user_id", payment.UserID),
			zap.Error(err))
		return &xerrors.SequenceError{
			Op:        "approve_payment",
			Completed: []string{"payment_update", "plan_lookup"},
			Step:      "entitlement_update",
			Err:       err,
		}
	}

	s.logger.Info("payment approved",
		zap.Int64("payment_id", paymentID),
		zap.Int64("user_id", payment.UserID),
		zap.Int("months", months),
		zap.Int("max_ponds", maxPonds),
		zap.Time("expiry", expiry.Time))

	if s.notifier != nil {
		s.notifier.NotifyPaymentReview(payment.UserID, paymentID, billing.PaymentApproved)
	}

	return nil
}

// RejectPayment closes a pending payment without touching the entitlement.
// A user left pending by rejection stays pending until they resubmit.
func (s *Service) RejectPayment(ctx context.Context, paymentID int64) error {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("payment %d: %w", paymentID, err)
	}
	if payment.Status != billing.PaymentPending {
		return fmt.Errorf("payment %d already %s: %w", paymentID, payment.Status, xerrors.ErrValidation)
	}

	if err := s.paymentRepo.UpdateReview(ctx, paymentID, billing.PaymentRejected, payment.Months, s.now()); err != nil {
		return fmt.Errorf("failed to reject payment: %w", err)
	}

	s.logger.Info("payment rejected",
		zap.Int64("payment_id", paymentID),
		zap.Int64("user_id", payment.UserID))

	if s.notifier != nil {
		s.notifier.NotifyPaymentReview(payment.UserID, paymentID, billing.PaymentRejected)
	}

	return nil
}

// ListUserPayments returns the user's payment history, newest first.
func (s *Service) ListUserPayments(ctx context.Context, userID int64) ([]*billing.PaymentRecord, error) {
	return s.paymentRepo.ListByUser(ctx, userID)
}

// ListPendingPayments returns the admin review queue, oldest first.
func (s *Service) ListPendingPayments(ctx context.Context) ([]*billing.PaymentRecord, error) {
	return s.paymentRepo.ListByStatus(ctx, billing.PaymentPending)
}

// DeletePayment hard-deletes a ledger row. No cascade is simulated.
func (s *Service) DeletePayment(ctx context.Context, paymentID int64) error {
	return s.paymentRepo.Delete(ctx, paymentID)
}

// DeleteUser hard-deletes a user. Any cascade beyond what the store's
// foreign keys perform is out of scope.
func (s *Service) DeleteUser(ctx context.Context, userID int64) error {
	return s.userRepo.Delete(ctx, userID)
}

// ListUsers returns all users for the admin surface.
func (s *Service) ListUsers(ctx context.Context) ([]*user.User, error) {
	return s.userRepo.List(ctx)
}
