package cats

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cat-registry/internal/platform/apierror"
	"cat-registry/internal/platform/patch"
	"cat-registry/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	seq   int
	order []string
	byID  map[string]Cat
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Cat{}}
}

func (r *testRepo) Create(ctx context.Context, c Cat) (Cat, error) {
	r.seq++
	c.ID = fmt.Sprintf("c%d", r.seq)
	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	return c, nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Cat, error) {
	c, ok := r.byID[id]
	if !ok {
		return Cat{}, ErrNotFound
	}
	return c, nil
}

func (r *testRepo) list(keep func(Cat) bool) []Cat {
	out := make([]Cat, 0)
	for _, id := range r.order {
		if c, ok := r.byID[id]; ok && keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func (r *testRepo) List(ctx context.Context) ([]Cat, error) {
	return r.list(func(Cat) bool { return true }), nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerID string) ([]Cat, error) {
	return r.list(func(c Cat) bool { return c.Owner == ownerID }), nil
}

func (r *testRepo) ListWithin(ctx context.Context, box BoundingBox) ([]Cat, error) {
	return r.list(func(c Cat) bool { return box.Contains(c.Location) }), nil
}

func (r *testRepo) Update(ctx context.Context, c Cat) (Cat, error) {
	if _, ok := r.byID[c.ID]; !ok {
		return Cat{}, ErrNotFound
	}
	c.Revision++
	r.byID[c.ID] = c
	return c, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	n := 0
	for id, c := range r.byID {
		if c.Owner == ownerID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

type knownOwners map[string]bool

func (k knownOwners) Exists(ctx context.Context, id string) (bool, error) {
	return k[id], nil
}

var (
	u1       = auth.Claims{UserID: "U1", Role: auth.RoleUser}
	u2       = auth.Claims{UserID: "U2", Role: auth.RoleUser}
	adminU   = auth.Claims{UserID: "A1", Role: auth.RoleAdmin}
	helsinki = Point{Lon: 24.9, Lat: 60.2}
)

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	return NewService(repo, knownOwners{"U1": true, "U2": true, "A1": true}), repo
}

func milo() CreateInput {
	loc := helsinki
	return CreateInput{
		Name:      "Milo",
		Weight:    4.2,
		Birthdate: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
		Location:  &loc,
	}
}

func messageOf(t *testing.T, err error) (int, string) {
	t.Helper()
	var ae *apierror.Error
	require.True(t, errors.As(err, &ae), "expected *apierror.Error, got %v", err)
	return ae.StatusCode, ae.Message
}

func TestCreate_DefaultsOwnerToCaller(t *testing.T) {
	svc, _ := newTestService()

	c, err := svc.Create(context.Background(), u1, milo())
	require.NoError(t, err)
	assert.Equal(t, "U1", c.Owner)
	assert.NotEmpty(t, c.ID)
}

func TestCreate_OtherOwnerRequiresAdmin(t *testing.T) {
	svc, repo := newTestService()

	in := milo()
	in.Owner = "U2"
	_, err := svc.Create(context.Background(), u1, in)
	status, msg := messageOf(t, err)
	assert.Equal(t, 401, status)
	assert.Equal(t, "Not authorized", msg)
	assert.Empty(t, repo.byID)

	in.Owner = "U1"
	c, err := svc.Create(context.Background(), u1, in)
	require.NoError(t, err)
	assert.Equal(t, "U1", c.Owner)

	in.Owner = "U2"
	c, err = svc.Create(context.Background(), adminU, in)
	require.NoError(t, err)
	assert.Equal(t, "U2", c.Owner)
}

func TestCreate_Errors(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), auth.Claims{}, milo())
	assert.True(t, errors.Is(err, apierror.ErrUnauthorized))

	in := milo()
	in.Owner = "ghost"
	_, err = svc.Create(context.Background(), adminU, in)
	status, msg := messageOf(t, err)
	assert.Equal(t, 400, status)
	assert.Equal(t, "owner does not exist", msg)

	in = milo()
	in.Weight = 0
	_, err = svc.Create(context.Background(), u1, in)
	assert.True(t, errors.Is(err, apierror.ErrBadRequest))

	in = milo()
	in.Location = nil
	_, err = svc.Create(context.Background(), u1, in)
	assert.True(t, errors.Is(err, apierror.ErrBadRequest))

	in = milo()
	in.Birthdate = time.Time{}
	_, err = svc.Create(context.Background(), u1, in)
	assert.True(t, errors.Is(err, apierror.ErrBadRequest))
}

func TestMiloScenario(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, u1, milo())
	require.NoError(t, err)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milo", got.Name)

	_, err = svc.Delete(ctx, c.ID, u2)
	status, msg := messageOf(t, err)
	assert.Equal(t, 401, status)
	assert.Equal(t, "Not authorized", msg)

	_, err = svc.Delete(ctx, c.ID, u1)
	require.NoError(t, err)

	_, err = svc.Get(ctx, c.ID)
	status, msg = messageOf(t, err)
	assert.Equal(t, 404, status)
	assert.Equal(t, "No cat found", msg)
}

func TestUpdate_NotFoundBeforeAuthorization(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), "missing", UpdateInput{}, auth.Claims{})
	status, msg := messageOf(t, err)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Cat not found", msg)
}

func TestUpdate_OwnerOnlyPartial(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	c, err := svc.Create(ctx, u1, milo())
	require.NoError(t, err)

	_, err = svc.Update(ctx, c.ID, UpdateInput{Weight: patch.Value(5.0)}, u2)
	assert.True(t, errors.Is(err, apierror.ErrUnauthorized))

	got, err := svc.Update(ctx, c.ID, UpdateInput{Weight: patch.Value(5.0)}, u1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Weight)
	assert.Equal(t, "Milo", got.Name)
	assert.Equal(t, helsinki, got.Location)

	_, err = svc.Update(ctx, c.ID, UpdateInput{Owner: patch.Value("U2")}, u1)
	assert.True(t, errors.Is(err, apierror.ErrBadRequest))

	_, err = svc.Update(ctx, c.ID, UpdateInput{Name: patch.Null[string]()}, u1)
	assert.True(t, errors.Is(err, apierror.ErrBadRequest))
}

func TestUpdate_NullFilenameClearsImage(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	in := milo()
	in.Filename = "milo.jpg"
	c, err := svc.Create(ctx, u1, in)
	require.NoError(t, err)

	got, err := svc.Update(ctx, c.ID, UpdateInput{Filename: patch.Null[string]()}, u1)
	require.NoError(t, err)
	assert.Empty(t, got.Filename)
}

func TestUpdateAsAdmin_ReassignsOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	c, err := svc.Create(ctx, u1, milo())
	require.NoError(t, err)

	_, err = svc.UpdateAsAdmin(ctx, c.ID, UpdateInput{Owner: patch.Value("U2")}, u1)
	assert.True(t, errors.Is(err, apierror.ErrUnauthorized))

	_, err = svc.UpdateAsAdmin(ctx, c.ID, UpdateInput{Owner: patch.Value("ghost")}, adminU)
	assert.True(t, errors.Is(err, apierror.ErrBadRequest))

	got, err := svc.UpdateAsAdmin(ctx, c.ID, UpdateInput{Owner: patch.Value("U2")}, adminU)
	require.NoError(t, err)
	assert.Equal(t, "U2", got.Owner)
}

func TestDeleteAsAdmin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	c, err := svc.Create(ctx, u1, milo())
	require.NoError(t, err)

	_, err = svc.DeleteAsAdmin(ctx, c.ID, u1)
	assert.True(t, errors.Is(err, apierror.ErrUnauthorized))

	got, err := svc.DeleteAsAdmin(ctx, c.ID, adminU)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}

func TestListByOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, u1, milo())
	require.NoError(t, err)
	_, err = svc.Create(ctx, u2, milo())
	require.NoError(t, err)

	mine, err := svc.ListByOwner(ctx, u1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "U1", mine[0].Owner)

	_, err = svc.ListByOwner(ctx, auth.Claims{})
	assert.True(t, errors.Is(err, apierror.ErrUnauthorized))
}

func TestListWithin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	inside, err := svc.Create(ctx, u1, milo())
	require.NoError(t, err)

	far := milo()
	loc := Point{Lon: -58.4, Lat: -34.6}
	far.Location = &loc
	_, err = svc.Create(ctx, u1, far)
	require.NoError(t, err)

	got, err := svc.ListWithin(ctx, Point{Lon: 25, Lat: 61}, Point{Lon: 24, Lat: 60})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inside.ID, got[0].ID)
}

func TestDeleteByOwner(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	_, _ = svc.Create(ctx, u1, milo())
	_, _ = svc.Create(ctx, u1, milo())
	_, _ = svc.Create(ctx, u2, milo())

	n, err := svc.DeleteByOwner(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, repo.byID, 1)
}
