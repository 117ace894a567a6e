// internal/service/pond/pond_service_test.go
package pond

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"aquafarm-service/internal/domain/pond"
	"aquafarm-service/internal/domain/user"
	xerrors "aquafarm-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePondRepo struct {
	ponds  map[int64]*pond.Pond
	nextID int64
}

func newFakePondRepo() *fakePondRepo {
	return &fakePondRepo{ponds: make(map[int64]*pond.Pond)}
}

func (r *fakePondRepo) Create(ctx context.Context, p *pond.Pond) error {
	r.nextID++
	p.ID = r.nextID
	r.ponds[p.ID] = p
	return nil
}

func (r *fakePondRepo) FindByID(ctx context.Context, id int64) (*pond.Pond, error) {
	p, ok := r.ponds[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return p, nil
}

func (r *fakePondRepo) ListByUser(ctx context.Context, userID int64) ([]*pond.Pond, error) {
	var out []*pond.Pond
	for _, p := range r.ponds {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePondRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	n := 0
	for _, p := range r.ponds {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakePondRepo) Update(ctx context.Context, id int64, req *pond.UpdatePondRequest) error {
	p, ok := r.ponds[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	return nil
}

func (r *fakePondRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.ponds[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.ponds, id)
	return nil
}

type fakeUserRepo struct {
	users map[int64]*user.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, xerrors.ErrNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*user.User, error) { return nil, nil }

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id int64, fullName, phone *string) error {
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error { return nil }

func (r *fakeUserRepo) UpdateSubscriptionStatus(ctx context.Context, id int64, status user.SubscriptionStatus) error {
	return nil
}

func (r *fakeUserRepo) UpdateEntitlement(ctx context.Context, id int64, status user.SubscriptionStatus, expiry sql.NullTime, maxPonds int) error {
	return nil
}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func activeFarmer(id int64, maxPonds int) *user.User {
	return &user.User{
		ID:                 id,
		Role:               user.RoleFarmer,
		SubscriptionStatus: user.StatusActive,
		ExpiryDate:         sql.NullTime{Time: testNow.AddDate(0, 1, 0), Valid: true},
		MaxPonds:           maxPonds,
	}
}

func newService(users ...*user.User) (*Service, *fakePondRepo) {
	userRepo := &fakeUserRepo{users: make(map[int64]*user.User)}
	for _, u := range users {
		userRepo.users[u.ID] = u
	}
	pondRepo := newFakePondRepo()
	svc := NewService(pondRepo, userRepo, zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc, pondRepo
}

func createReq(name string) *pond.CreatePondRequest {
	return &pond.CreatePondRequest{Name: name, AreaSqM: 200, Species: "tilapia", StockedCount: 500}
}

func TestCreatePondWithinQuota(t *testing.T) {
	svc, repo := newService(activeFarmer(7, 2))

	p, err := svc.Create(context.Background(), 7, createReq("Pond A"))
	require.NoError(t, err)

	assert.Equal(t, int64(7), p.UserID)
	assert.Len(t, repo.ponds, 1)
}

func TestCreatePondQuotaReached(t *testing.T) {
	svc, _ := newService(activeFarmer(7, 2))

	_, err := svc.Create(context.Background(), 7, createReq("Pond A"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 7, createReq("Pond B"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 7, createReq("Pond C"))
	assert.ErrorIs(t, err, xerrors.ErrForbidden)
}

func TestCreatePondUnlimitedQuotaSentinel(t *testing.T) {
	svc, _ := newService(activeFarmer(7, user.UnlimitedPonds))

	for i := 0; i < 25; i++ {
		_, err := svc.Create(context.Background(), 7, createReq("Pond"))
		require.NoError(t, err)
	}
}

func TestCreatePondExpiredEntitlementBlocked(t *testing.T) {
	u := activeFarmer(7, 5)
	// Stored status is still ACTIVE but the expiry has passed; the stale
	// enum must not grant access.
	u.ExpiryDate = sql.NullTime{Time: testNow.AddDate(0, -1, 0), Valid: true}
	svc, _ := newService(u)

	_, err := svc.Create(context.Background(), 7, createReq("Pond A"))
	assert.ErrorIs(t, err, xerrors.ErrForbidden)
}

func TestCreatePondPendingEntitlementBlocked(t *testing.T) {
	u := activeFarmer(7, 5)
	u.SubscriptionStatus = user.StatusPending
	svc, _ := newService(u)

	_, err := svc.Create(context.Background(), 7, createReq("Pond A"))
	assert.ErrorIs(t, err, xerrors.ErrForbidden)
}

func TestCreatePondAdminBypassesEntitlement(t *testing.T) {
	admin := &user.User{ID: 1, Role: user.RoleAdmin, SubscriptionStatus: user.StatusExpired, MaxPonds: user.UnlimitedPonds}
	svc, _ := newService(admin)

	_, err := svc.Create(context.Background(), 1, createReq("Pond A"))
	assert.NoError(t, err)
}

func TestGetPondRejectsForeignOwner(t *testing.T) {
	svc, repo := newService(activeFarmer(7, 5))
	repo.ponds[9] = &pond.Pond{ID: 9, UserID: 8, Name: "Not yours"}
	repo.nextID = 9

	_, err := svc.Get(context.Background(), 7, 9)
	assert.ErrorIs(t, err, xerrors.ErrForbidden)
}

func TestUpdateAndDeletePondOwnership(t *testing.T) {
	svc, repo := newService(activeFarmer(7, 5))

	p, err := svc.Create(context.Background(), 7, createReq("Pond A"))
	require.NoError(t, err)

	name := "Pond A2"
	require.NoError(t, svc.Update(context.Background(), 7, p.ID, &pond.UpdatePondRequest{Name: &name}))
	assert.Equal(t, "Pond A2", repo.ponds[p.ID].Name)

	err = svc.Delete(context.Background(), 8, p.ID)
	assert.ErrorIs(t, err, xerrors.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), 7, p.ID))
	assert.Empty(t, repo.ponds)
}
