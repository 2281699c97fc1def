package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cat-registry/internal/domain/users"
	"cat-registry/internal/ports/auth"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	UserName string             `bson:"user_name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
	Role     string             `bson:"role"`
	Revision int                `bson:"__v"`
}

func (d userDoc) toDomain() users.User {
	return users.User{
		ID:           d.ID.Hex(),
		UserName:     d.UserName,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         auth.Role(d.Role),
		Revision:     d.Revision,
	}
}

type UsersRepo struct {
	coll *mongo.Collection
}

func NewUsersRepo(db *mongo.Database) *UsersRepo {
	return &UsersRepo{coll: db.Collection(usersCollection)}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	role := u.Role
	if role == "" {
		role = auth.RoleUser
	}
	doc := userDoc{
		ID:       primitive.NewObjectID(),
		UserName: u.UserName,
		Email:    strings.ToLower(u.Email),
		Password: u.PasswordHash,
		Role:     string(role),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return users.User{}, userWriteErr(err)
	}
	return doc.toDomain(), nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	oid, ok := objectID(strings.TrimSpace(id))
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	out := make([]users.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) (users.User, error) {
	oid, ok := objectID(u.ID)
	if !ok {
		return users.User{}, users.ErrNotFound
	}

	// role no se toca desde acá
	update := bson.M{
		"$set": bson.M{
			"user_name": u.UserName,
			"email":     strings.ToLower(u.Email),
			"password":  u.PasswordHash,
		},
		"$inc": bson.M{"__v": 1},
	}

	var doc userDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, userWriteErr(err)
	}
	return doc.toDomain(), nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return users.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) findOne(ctx context.Context, filter bson.M) (users.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func userWriteErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return users.ErrDuplicateEmail
	}
	return fmt.Errorf("write user: %w", err)
}
