package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cat-registry/internal/domain/cats"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type geoPoint struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

type catDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"cat_name"`
	Weight    float64            `bson:"weight"`
	Filename  string             `bson:"filename,omitempty"`
	Birthdate time.Time          `bson:"birthdate"`
	Location  geoPoint           `bson:"location"`
	Owner     primitive.ObjectID `bson:"owner"`
	Revision  int                `bson:"__v"`
}

func (d catDoc) toDomain() cats.Cat {
	var loc cats.Point
	if len(d.Location.Coordinates) == 2 {
		loc = cats.Point{Lon: d.Location.Coordinates[0], Lat: d.Location.Coordinates[1]}
	}
	return cats.Cat{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Weight:    d.Weight,
		Filename:  d.Filename,
		Birthdate: d.Birthdate.UTC(),
		Location:  loc,
		Owner:     d.Owner.Hex(),
		Revision:  d.Revision,
	}
}

type CatsRepo struct {
	coll *mongo.Collection
}

func NewCatsRepo(db *mongo.Database) *CatsRepo {
	return &CatsRepo{coll: db.Collection(catsCollection)}
}

func (r *CatsRepo) Create(ctx context.Context, c cats.Cat) (cats.Cat, error) {
	owner, ok := objectID(c.Owner)
	if !ok {
		return cats.Cat{}, cats.ErrUnknownOwner
	}
	doc := catDoc{
		ID:        primitive.NewObjectID(),
		Name:      c.Name,
		Weight:    c.Weight,
		Filename:  c.Filename,
		Birthdate: c.Birthdate,
		Location:  geoPoint{Type: cats.GeoJSONPoint, Coordinates: c.Location.Coordinates()},
		Owner:     owner,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return cats.Cat{}, fmt.Errorf("insert cat: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CatsRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	oid, ok := objectID(strings.TrimSpace(id))
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	var doc catDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return cats.Cat{}, cats.ErrNotFound
	}
	if err != nil {
		return cats.Cat{}, fmt.Errorf("get cat %s: %w", id, err)
	}
	return doc.toDomain(), nil
}

func (r *CatsRepo) List(ctx context.Context) ([]cats.Cat, error) {
	return r.find(ctx, bson.M{})
}

func (r *CatsRepo) ListByOwner(ctx context.Context, ownerID string) ([]cats.Cat, error) {
	owner, ok := objectID(ownerID)
	if !ok {
		return []cats.Cat{}, nil
	}
	return r.find(ctx, bson.M{"owner": owner})
}

// ListWithin usa $geoWithin/$box sobre el par [lon, lat].
func (r *CatsRepo) ListWithin(ctx context.Context, box cats.BoundingBox) ([]cats.Cat, error) {
	out, err := r.find(ctx, bson.M{
		"location.coordinates": bson.M{
			"$geoWithin": bson.M{
				"$box": bson.A{
					bson.A{box.BottomLeft.Lon, box.BottomLeft.Lat},
					bson.A{box.TopRight.Lon, box.TopRight.Lat},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("cats within %s: %w", box, err)
	}
	return out, nil
}

func (r *CatsRepo) Update(ctx context.Context, c cats.Cat) (cats.Cat, error) {
	oid, ok := objectID(c.ID)
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	owner, ok := objectID(c.Owner)
	if !ok {
		return cats.Cat{}, cats.ErrUnknownOwner
	}

	set := bson.M{
		"cat_name":  c.Name,
		"weight":    c.Weight,
		"birthdate": c.Birthdate,
		"location":  geoPoint{Type: cats.GeoJSONPoint, Coordinates: c.Location.Coordinates()},
		"owner":     owner,
	}
	update := bson.M{"$set": set, "$inc": bson.M{"__v": 1}}
	if c.Filename == "" {
		update["$unset"] = bson.M{"filename": ""}
	} else {
		set["filename"] = c.Filename
	}

	var doc catDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return cats.Cat{}, cats.ErrNotFound
	}
	if err != nil {
		return cats.Cat{}, fmt.Errorf("update cat %s: %w", c.ID, err)
	}
	return doc.toDomain(), nil
}

func (r *CatsRepo) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return cats.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete cat %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return cats.ErrNotFound
	}
	return nil
}

func (r *CatsRepo) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	owner, ok := objectID(ownerID)
	if !ok {
		return 0, nil
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"owner": owner})
	if err != nil {
		return 0, fmt.Errorf("delete cats of %s: %w", ownerID, err)
	}
	return int(res.DeletedCount), nil
}

func (r *CatsRepo) find(ctx context.Context, filter bson.M) ([]cats.Cat, error) {
	// _id de ObjectID crece con el tiempo de inserción
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find cats: %w", err)
	}
	defer cur.Close(ctx)

	var docs []catDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cats: %w", err)
	}
	out := make([]cats.Cat, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
