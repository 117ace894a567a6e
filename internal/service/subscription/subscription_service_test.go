// internal/service/subscription/subscription_service_test.go
package subscription

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"aquafarm-service/internal/domain/billing"
	"aquafarm-service/internal/domain/user"
	xerrors "aquafarm-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---------- in-memory fakes ----------

type fakeUserRepo struct {
	users        map[int64]*user.User
	statusErr    error
	entitleErr   error
	statusCalls  int
	entitleCalls int
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]*user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	u.ID = int64(len(r.users) + 1)
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*user.User, error) {
	var out []*user.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id int64, fullName, phone *string) error {
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) UpdateSubscriptionStatus(ctx context.Context, id int64, status user.SubscriptionStatus) error {
	r.statusCalls++
	if r.statusErr != nil {
		return r.statusErr
	}
	u, ok := r.users[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	u.SubscriptionStatus = status
	return nil
}

func (r *fakeUserRepo) UpdateEntitlement(ctx context.Context, id int64, status user.SubscriptionStatus, expiry sql.NullTime, maxPonds int) error {
	r.entitleCalls++
	if r.entitleErr != nil {
		return r.entitleErr
	}
	u, ok := r.users[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	u.SubscriptionStatus = status
	u.ExpiryDate = expiry
	u.MaxPonds = maxPonds
	return nil
}

type fakePaymentRepo struct {
	payments map[int64]*billing.PaymentRecord
	byRef    map[string]bool
	nextID   int64
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments: make(map[int64]*billing.PaymentRecord),
		byRef:    make(map[string]bool),
	}
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *billing.PaymentRecord) error {
	if r.byRef[p.TransactionReference] {
		return xerrors.ErrDuplicateReference
	}
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	cp := *p
	r.payments[p.ID] = &cp
	r.byRef[p.TransactionReference] = true
	return nil
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id int64) (*billing.PaymentRecord, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) ListByUser(ctx context.Context, userID int64) ([]*billing.PaymentRecord, error) {
	var out []*billing.PaymentRecord
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ListByStatus(ctx context.Context, status billing.PaymentStatus) ([]*billing.PaymentRecord, error) {
	var out []*billing.PaymentRecord
	for _, p := range r.payments {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) UpdateReview(ctx context.Context, id int64, status billing.PaymentStatus, months int, reviewedAt time.Time) error {
	p, ok := r.payments[id]
	if !ok || p.Status != billing.PaymentPending {
		return xerrors.ErrNotFound
	}
	p.Status = status
	p.Months = months
	p.ReviewedAt = sql.NullTime{Time: reviewedAt, Valid: true}
	return nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.payments[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.payments, id)
	return nil
}

type fakeCatalogRepo struct {
	catalog *billing.Catalog
	getErr  error
}

func (r *fakeCatalogRepo) Get(ctx context.Context) (*billing.Catalog, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.catalog == nil {
		return &billing.Catalog{}, nil
	}
	return r.catalog, nil
}

func (r *fakeCatalogRepo) Replace(ctx context.Context, c *billing.Catalog) error {
	r.catalog = c
	return nil
}

type fakeCouponRepo struct {
	coupons map[string]*billing.Coupon
	findErr error
}

func (r *fakeCouponRepo) Create(ctx context.Context, c *billing.Coupon) error {
	if r.coupons == nil {
		r.coupons = make(map[string]*billing.Coupon)
	}
	if _, ok := r.coupons[c.Code]; ok {
		return xerrors.ErrDuplicateEntry
	}
	r.coupons[c.Code] = c
	return nil
}

func (r *fakeCouponRepo) List(ctx context.Context) ([]*billing.Coupon, error) {
	var out []*billing.Coupon
	for _, c := range r.coupons {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCouponRepo) FindActiveByCode(ctx context.Context, code string) (*billing.Coupon, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	c, ok := r.coupons[code]
	if !ok || !c.Active {
		return nil, xerrors.ErrNotFound
	}
	return c, nil
}

func (r *fakeCouponRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeNotifier struct {
	userIDs    []int64
	paymentIDs []int64
	statuses   []billing.PaymentStatus
}

func (n *fakeNotifier) NotifyPaymentReview(userID, paymentID int64, status billing.PaymentStatus) {
	n.userIDs = append(n.userIDs, userID)
	n.paymentIDs = append(n.paymentIDs, paymentID)
	n.statuses = append(n.statuses, status)
}

// ---------- fixtures ----------

func standardCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{catalog: &billing.Catalog{Plans: []billing.Plan{
		{ID: 1, Label: "Starter", Price: 50, PondQuota: 2},
		{ID: 2, Label: "Standard", Price: 150, PondQuota: 5},
		{ID: 3, Label: "Unlimited", Price: 400, PondQuota: 999},
	}}}
}

type fixture struct {
	svc      *Service
	users    *fakeUserRepo
	payments *fakePaymentRepo
	catalog  *fakeCatalogRepo
	coupons  *fakeCouponRepo
	notifier *fakeNotifier
	now      time.Time
}

func newFixture(users ...*user.User) *fixture {
	f := &fixture{
		users:    newFakeUserRepo(users...),
		payments: newFakePaymentRepo(),
		catalog:  standardCatalog(),
		coupons:  &fakeCouponRepo{coupons: make(map[string]*billing.Coupon)},
		notifier: &fakeNotifier{},
		now:      time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(f.users, f.payments, f.catalog, f.coupons, f.notifier, zap.NewNop())
	f.svc.now = func() time.Time { return f.now }
	return f
}

func farmer(id int64) *user.User {
	return &user.User{
		ID:                 id,
		Email:              "farmer@example.com",
		Role:               user.RoleFarmer,
		SubscriptionStatus: user.StatusExpired,
	}
}

// ---------- SelectPlan ----------

func TestSelectPlanWithoutCoupon(t *testing.T) {
	f := newFixture()

	quote, err := f.svc.SelectPlan(context.Background(), 2, 2, "")
	require.NoError(t, err)

	assert.Equal(t, 2, quote.PlanID)
	assert.Equal(t, "Standard", quote.PlanLabel)
	assert.Equal(t, 2, quote.Months)
	assert.InDelta(t, 300.0, quote.Total, 0.001)
	assert.Zero(t, quote.DiscountPercent)
}

func TestSelectPlanAppliesCouponCaseInsensitively(t *testing.T) {
	f := newFixture()
	f.coupons.coupons["SAVE20"] = &billing.Coupon{Code: "SAVE20", DiscountPercent: 20, Active: true}

	quote, err := f.svc.SelectPlan(context.Background(), 2, 2, "save20")
	require.NoError(t, err)

	assert.Equal(t, "SAVE20", quote.CouponCode)
	assert.InDelta(t, 20.0, quote.DiscountPercent, 0.001)
	assert.InDelta(t, 240.0, quote.Total, 0.001)
}

func TestSelectPlanUnknownCouponPricesFull(t *testing.T) {
	f := newFixture()

	quote, err := f.svc.SelectPlan(context.Background(), 2, 3, "NOPE")
	require.NoError(t, err)

	assert.Empty(t, quote.CouponCode)
	assert.InDelta(t, 450.0, quote.Total, 0.001)
}

func TestSelectPlanCouponLookupFailurePricesFull(t *testing.T) {
	f := newFixture()
	f.coupons.findErr = errors.New("store down")

	quote, err := f.svc.SelectPlan(context.Background(), 1, 1, "SAVE20")
	require.NoError(t, err)

	assert.Empty(t, quote.CouponCode)
	assert.InDelta(t, 50.0, quote.Total, 0.001)
}

func TestSelectPlanUnknownPlan(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SelectPlan(context.Background(), 42, 1, "")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

// ---------- SubmitPayment ----------

func TestSubmitPaymentMarksEntitlementPending(t *testing.T) {
	f := newFixture(farmer(7))

	quote, err := f.svc.SelectPlan(context.Background(), 2, 2, "")
	require.NoError(t, err)

	payment, err := f.svc.SubmitPayment(context.Background(), 7, quote, "MPESA-001")
	require.NoError(t, err)

	assert.Equal(t, billing.PaymentPending, payment.Status)
	assert.Equal(t, "MPESA-001", payment.TransactionReference)
	assert.InDelta(t, 300.0, payment.Amount, 0.001)
	assert.Equal(t, user.StatusPending, f.users.users[7].SubscriptionStatus)
}

func TestSubmitPaymentRequiresReference(t *testing.T) {
	f := newFixture(farmer(7))

	_, err := f.svc.SubmitPayment(context.Background(), 7, &billing.PaymentQuote{PlanID: 1, Months: 1}, "  ")
	assert.ErrorIs(t, err, xerrors.ErrValidation)
	assert.Zero(t, f.users.statusCalls)
}

func TestSubmitPaymentDuplicateReference(t *testing.T) {
	f := newFixture(farmer(7))
	quote := &billing.PaymentQuote{PlanID: 2, PlanLabel: "Standard", Months: 1, Total: 150}

	_, err := f.svc.SubmitPayment(context.Background(), 7, quote, "MPESA-001")
	require.NoError(t, err)

	_, err = f.svc.SubmitPayment(context.Background(), 7, quote, "MPESA-001")
	assert.ErrorIs(t, err, xerrors.ErrDuplicateReference)

	// The replayed submission must not touch the entitlement again.
	assert.Equal(t, 1, f.users.statusCalls)
	assert.Len(t, f.payments.payments, 1)
}

func TestSubmitPaymentEntitlementFailureReportsSequence(t *testing.T) {
	f := newFixture(farmer(7))
	f.users.statusErr = errors.New("row lock timeout")
	quote := &billing.PaymentQuote{PlanID: 2, PlanLabel: "Standard", Months: 1, Total: 150}

	payment, err := f.svc.SubmitPayment(context.Background(), 7, quote, "MPESA-002")
	require.Error(t, err)
	require.NotNil(t, payment)

	var seqErr *xerrors.SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Equal(t, "submit_payment", seqErr.Op)
	assert.Equal(t, []string{"payment_insert"}, seqErr.Completed)
	assert.Equal(t, "entitlement_status_update", seqErr.Step)

	// The payment row stays committed.
	assert.Len(t, f.payments.payments, 1)
}

// ---------- ApprovePayment ----------

func submitPending(t *testing.T, f *fixture, userID int64, planID int) *billing.PaymentRecord {
	t.Helper()
	quote, err := f.svc.SelectPlan(context.Background(), planID, 2, "")
	require.NoError(t, err)
	payment, err := f.svc.SubmitPayment(context.Background(), userID, quote, "REF-"+quote.PlanLabel)
	require.NoError(t, err)
	return payment
}

func TestApprovePaymentGrantsEntitlement(t *testing.T) {
	f := newFixture(farmer(7))
	payment := submitPending(t, f, 7, 2)

	require.NoError(t, f.svc.ApprovePayment(context.Background(), payment.ID, 3))

	stored := f.payments.payments[payment.ID]
	assert.Equal(t, billing.PaymentApproved, stored.Status)
	assert.Equal(t, 3, stored.Months)

	u := f.users.users[7]
	assert.Equal(t, user.StatusActive, u.SubscriptionStatus)
	assert.Equal(t, 5, u.MaxPonds)
	require.True(t, u.ExpiryDate.Valid)
	assert.Equal(t, f.now.AddDate(0, 3, 0), u.ExpiryDate.Time)

	require.Len(t, f.notifier.statuses, 1)
	assert.Equal(t, billing.PaymentApproved, f.notifier.statuses[0])
	assert.Equal(t, payment.ID, f.notifier.paymentIDs[0])
}

func TestApprovePaymentRemovedPlanGrantsFallbackQuota(t *testing.T) {
	f := newFixture(farmer(7))
	payment := submitPending(t, f, 7, 2)

	f.catalog.catalog = &billing.Catalog{}

	require.NoError(t, f.svc.ApprovePayment(context.Background(), payment.ID, 2))

	u := f.users.users[7]
	assert.Equal(t, user.StatusActive, u.SubscriptionStatus)
	assert.Equal(t, 1, u.MaxPonds)
}

func TestApprovePaymentAlreadyReviewed(t *testing.T) {
	f := newFixture(farmer(7))
	payment := submitPending(t, f, 7, 2)

	require.NoError(t, f.svc.ApprovePayment(context.Background(), payment.ID, 2))

	err := f.svc.ApprovePayment(context.Background(), payment.ID, 2)
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestApprovePaymentUnknownID(t *testing.T) {
	f := newFixture(farmer(7))

	err := f.svc.ApprovePayment(context.Background(), 99, 2)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestApprovePaymentPlanLookupFailureReportsSequence(t *testing.T) {
	f := newFixture(farmer(7))
	payment := submitPending(t, f, 7, 2)
	f.catalog.getErr = errors.New("store down")

	err := f.svc.ApprovePayment(context.Background(), payment.ID, 2)

	var seqErr *xerrors.SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Equal(t, "approve_payment", seqErr.Op)
	assert.Equal(t, []string{"payment_update"}, seqErr.Completed)
	assert.Equal(t, "plan_lookup", seqErr.Step)

	// The payment update stays committed even though the chain broke.
	assert.Equal(t, billing.PaymentApproved, f.payments.payments[payment.ID].Status)
}

func TestApprovePaymentEntitlementFailureReportsSequence(t *testing.T) {
	f := newFixture(farmer(7))
	payment := submitPending(t, f, 7, 2)
	f.users.entitleErr = errors.New("row lock timeout")

	err := f.svc.ApprovePayment(context.Background(), payment.ID, 2)

	var seqErr *xerrors.SequenceError
	require.ErrorAs(t, err, &seqErr)
	assert.Equal(t, []string{"payment_update", "plan_lookup"}, seqErr.Completed)
	assert.Equal(t, "entitlement_update", seqErr.Step)

	assert.Equal(t, billing.PaymentApproved, f.payments.payments[payment.ID].Status)
	assert.Equal(t, user.StatusPending, f.users.users[7].SubscriptionStatus)
	assert.Empty(t, f.notifier.statuses)
}

// ---------- RejectPayment ----------

func TestRejectPaymentLeavesEntitlementPending(t *testing.T) {
	f := newFixture(farmer(7))
	payment := submitPending(t, f, 7, 2)

	require.NoError(t, f.svc.RejectPayment(context.Background(), payment.ID))

	assert.Equal(t, billing.PaymentRejected, f.payments.payments[payment.ID].Status)
	// Rejection never reverts the entitlement; the user stays pending
	// until they resubmit.
	assert.Equal(t, user.StatusPending, f.users.users[7].SubscriptionStatus)

	require.Len(t, f.notifier.statuses, 1)
	assert.Equal(t, billing.PaymentRejected, f.notifier.statuses[0])
}

func TestRejectPaymentAlreadyReviewed(t *testing.T) {
	f := newFixture(farmer(7))
	payment := submitPending(t, f, 7, 2)

	require.NoError(t, f.svc.RejectPayment(context.Background(), payment.ID))

	err := f.svc.RejectPayment(context.Background(), payment.ID)
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

// ---------- DeletePayment ----------

func TestDeletePaymentRemovesLedgerRowOnly(t *testing.T) {
	f := newFixture(farmer(7))
	payment := submitPending(t, f, 7, 2)
	require.NoError(t, f.svc.ApprovePayment(context.Background(), payment.ID, 2))

	require.NoError(t, f.svc.DeletePayment(context.Background(), payment.ID))

	_, err := f.payments.FindByID(context.Background(), payment.ID)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	// The entitlement granted at approval is untouched by the delete.
	assert.Equal(t, user.StatusActive, f.users.users[7].SubscriptionStatus)
	assert.Equal(t, 5, f.users.users[7].MaxPonds)
}
