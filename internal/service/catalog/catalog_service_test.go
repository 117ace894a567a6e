// internal/service/catalog/catalog_service_test.go
package catalog

import (
	"context"
	"testing"

	"aquafarm-service/internal/domain/billing"
	xerrors "aquafarm-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCatalogRepo struct {
	catalog *billing.Catalog
}

func (r *fakeCatalogRepo) Get(ctx context.Context) (*billing.Catalog, error) {
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
	nextID  int64
}

func (r *fakeCouponRepo) Create(ctx context.Context, c *billing.Coupon) error {
	if r.coupons == nil {
		r.coupons = make(map[string]*billing.Coupon)
	}
	if _, ok := r.coupons[c.Code]; ok {
		return xerrors.ErrDuplicateEntry
	}
	r.nextID++
	c.ID = r.nextID
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
	c, ok := r.coupons[code]
	if !ok || !c.Active {
		return nil, xerrors.ErrNotFound
	}
	return c, nil
}

func (r *fakeCouponRepo) Delete(ctx context.Context, id int64) error {
	for code, c := range r.coupons {
		if c.ID == id {
			delete(r.coupons, code)
			return nil
		}
	}
	return xerrors.ErrNotFound
}

func newService(repo *fakeCatalogRepo) (*Service, *fakeCouponRepo) {
	coupons := &fakeCouponRepo{}
	return NewService(repo, coupons, zap.NewNop()), coupons
}

func TestAddPlanEmptyCatalogStartsAtOne(t *testing.T) {
	repo := &fakeCatalogRepo{}
	svc, _ := newService(repo)

	plan, err := svc.AddPlan(context.Background(), &billing.AddPlanRequest{
		Label: "Starter", Price: 50, PondQuota: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, plan.ID)
	require.Len(t, repo.catalog.Plans, 1)
}

func TestAddPlanAssignsMaxPlusOne(t *testing.T) {
	repo := &fakeCatalogRepo{catalog: &billing.Catalog{Plans: []billing.Plan{
		{ID: 1, Label: "Starter", Price: 50, PondQuota: 2},
		{ID: 5, Label: "Standard", Price: 150, PondQuota: 5},
	}}}
	svc, _ := newService(repo)

	plan, err := svc.AddPlan(context.Background(), &billing.AddPlanRequest{
		Label: "Unlimited", Price: 400, PondQuota: 999,
	})
	require.NoError(t, err)

	// IDs grow from the max, never reusing a freed slot below it.
	assert.Equal(t, 6, plan.ID)
}

func TestUpdatePlanPatchesOnlyGivenFields(t *testing.T) {
	repo := &fakeCatalogRepo{catalog: &billing.Catalog{Plans: []billing.Plan{
		{ID: 1, Label: "Starter", Price: 50, PondQuota: 2},
	}}}
	svc, _ := newService(repo)

	price := 75.0
	plan, err := svc.UpdatePlan(context.Background(), 1, &billing.UpdatePlanRequest{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, "Starter", plan.Label)
	assert.InDelta(t, 75.0, plan.Price, 0.001)
	assert.Equal(t, 2, plan.PondQuota)
}

func TestUpdatePlanUnknownID(t *testing.T) {
	svc, _ := newService(&fakeCatalogRepo{})

	price := 75.0
	_, err := svc.UpdatePlan(context.Background(), 9, &billing.UpdatePlanRequest{Price: &price})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestRemovePlan(t *testing.T) {
	repo := &fakeCatalogRepo{catalog: &billing.Catalog{Plans: []billing.Plan{
		{ID: 1, Label: "Starter", Price: 50, PondQuota: 2},
		{ID: 2, Label: "Standard", Price: 150, PondQuota: 5},
	}}}
	svc, _ := newService(repo)

	require.NoError(t, svc.RemovePlan(context.Background(), 1))

	require.Len(t, repo.catalog.Plans, 1)
	assert.Equal(t, 2, repo.catalog.Plans[0].ID)

	err := svc.RemovePlan(context.Background(), 1)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestAddCouponUppercasesCode(t *testing.T) {
	svc, coupons := newService(&fakeCatalogRepo{})

	coupon, err := svc.AddCoupon(context.Background(), &billing.AddCouponRequest{
		Code: "  save20 ", DiscountPercent: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, "SAVE20", coupon.Code)
	assert.True(t, coupon.Active)
	_, ok := coupons.coupons["SAVE20"]
	assert.True(t, ok)
}

func TestAddCouponRejectsEmptyCode(t *testing.T) {
	svc, _ := newService(&fakeCatalogRepo{})

	_, err := svc.AddCoupon(context.Background(), &billing.AddCouponRequest{Code: "   ", DiscountPercent: 20})
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestAddCouponDuplicateCode(t *testing.T) {
	svc, _ := newService(&fakeCatalogRepo{})

	_, err := svc.AddCoupon(context.Background(), &billing.AddCouponRequest{Code: "SAVE20", DiscountPercent: 20})
	require.NoError(t, err)

	_, err = svc.AddCoupon(context.Background(), &billing.AddCouponRequest{Code: "save20", DiscountPercent: 10})
	assert.ErrorIs(t, err, xerrors.ErrDuplicateEntry)
}
