package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"cat-registry/internal/domain/cats"
	"cat-registry/internal/domain/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MONGO_TEST_URI=mongodb://localhost:27017 go test ./internal/adapters/storage/mongodb
func openTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()
	client, db, err := Connect(ctx, uri, "cat_registry_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestMongo_CatsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	ur := NewUsersRepo(db)
	cr := NewCatsRepo(db)

	u, err := ur.Create(ctx, users.User{UserName: "ana", Email: "ana@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	bd := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	c, err := cr.Create(ctx, cats.Cat{Name: "Milo", Weight: 4.2, Filename: "milo.jpg", Birthdate: bd, Location: cats.Point{Lon: 24.9, Lat: 60.2}, Owner: u.ID})
	require.NoError(t, err)

	got, err := cr.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	// el revision marker se guarda como __v
	raw := bson.M{}
	require.NoError(t, db.Collection(catsCollection).FindOne(ctx, bson.M{}).Decode(&raw))
	assert.Contains(t, raw, "__v")
	assert.Contains(t, raw, "cat_name")

	got.Filename = ""
	updated, err := cr.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Revision)
	assert.Empty(t, updated.Filename)

	box := cats.NewBoundingBox(cats.Point{Lon: 25, Lat: 61}, cats.Point{Lon: 24, Lat: 60})
	within, err := cr.ListWithin(ctx, box)
	require.NoError(t, err)
	assert.Len(t, within, 1)

	_, err = cr.GetByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, cats.ErrNotFound)

	n, err := cr.DeleteByOwner(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMongo_UsersDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	ur := NewUsersRepo(db)

	_, err := ur.Create(ctx, users.User{UserName: "ana", Email: "ana@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = ur.Create(ctx, users.User{UserName: "otra", Email: "ANA@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, users.ErrDuplicateEmail)
}
