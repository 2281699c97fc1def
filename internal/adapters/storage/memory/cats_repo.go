package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"cat-registry/internal/domain/cats"

	"github.com/google/uuid"
)

type catRepo struct {
	mu   sync.RWMutex
	seq  int64
	byID map[string]storedCat
}

// storedCat guarda el orden de inserción para listados estables.
type storedCat struct {
	cat cats.Cat
	seq int64
}

func NewCatRepo() cats.Repository {
	return &catRepo{
		byID: make(map[string]storedCat),
	}
}

func (r *catRepo) Create(ctx context.Context, c cats.Cat) (cats.Cat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = uuid.NewString()
	c.Revision = 0
	r.seq++
	r.byID[c.ID] = storedCat{cat: c, seq: r.seq}
	return c, nil
}

func (r *catRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	return s.cat, nil
}

func (r *catRepo) List(ctx context.Context) ([]cats.Cat, error) {
	return r.filter(func(cats.Cat) bool { return true }), nil
}

func (r *catRepo) ListByOwner(ctx context.Context, ownerID string) ([]cats.Cat, error) {
	return r.filter(func(c cats.Cat) bool { return c.Owner == ownerID }), nil
}

func (r *catRepo) ListWithin(ctx context.Context, box cats.BoundingBox) ([]cats.Cat, error) {
	return r.filter(func(c cats.Cat) bool { return box.Contains(c.Location) }), nil
}

func (r *catRepo) Update(ctx context.Context, c cats.Cat) (cats.Cat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[c.ID]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	c.Revision = s.cat.Revision + 1
	r.byID[c.ID] = storedCat{cat: c, seq: s.seq}
	return c, nil
}

func (r *catRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return cats.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *catRepo) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.byID {
		if s.cat.Owner == ownerID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func (r *catRepo) filter(keep func(cats.Cat) bool) []cats.Cat {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]storedCat, 0)
	for _, s := range r.byID {
		if keep(s.cat) {
			matched = append(matched, s)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })

	out := make([]cats.Cat, 0, len(matched))
	for _, s := range matched {
		out = append(out, s.cat)
	}
	return out
}
