package cats

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("cat not found")
	// ErrUnknownOwner lo devuelven stores con integridad referencial (FK en Postgres).
	ErrUnknownOwner = errors.New("cat owner does not exist")
)

// Repository es el document store de gatos. Create asigna ID y Revision.
type Repository interface {
	Create(ctx context.Context, c Cat) (Cat, error)
	GetByID(ctx context.Context, id string) (Cat, error)
	List(ctx context.Context) ([]Cat, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Cat, error)
	ListWithin(ctx context.Context, box BoundingBox) ([]Cat, error)
	Update(ctx context.Context, c Cat) (Cat, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) (int, error)
}
