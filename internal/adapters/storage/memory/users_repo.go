package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"cat-registry/internal/domain/users"

	"github.com/google/uuid"
)

type userRepo struct {
	mu      sync.RWMutex
	seq     int64
	byID    map[string]storedUser
	byEmail map[string]string
}

type storedUser struct {
	user users.User
	seq  int64
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID:    make(map[string]storedUser),
		byEmail: make(map[string]string),
	}
}

func (r *userRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(u.Email)
	if _, taken := r.byEmail[key]; taken {
		return users.User{}, users.ErrDuplicateEmail
	}

	u.ID = uuid.NewString()
	u.Revision = 0
	r.seq++
	r.byID[u.ID] = storedUser{user: u, seq: r.seq}
	r.byEmail[key] = u.ID
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return s.user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return r.byID[id].user, nil
}

func (r *userRepo) List(ctx context.Context) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]storedUser, 0, len(r.byID))
	for _, s := range r.byID {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })

	out := make([]users.User, 0, len(all))
	for _, s := range all {
		out = append(out, s.user)
	}
	return out, nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[u.ID]
	if !ok {
		return users.User{}, users.ErrNotFound
	}

	oldKey, newKey := emailKey(s.user.Email), emailKey(u.Email)
	if oldKey != newKey {
		if _, taken := r.byEmail[newKey]; taken {
			return users.User{}, users.ErrDuplicateEmail
		}
		delete(r.byEmail, oldKey)
		r.byEmail[newKey] = u.ID
	}

	u.Revision = s.user.Revision + 1
	r.byID[u.ID] = storedUser{user: u, seq: s.seq}
	return u, nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return users.ErrNotFound
	}
	delete(r.byEmail, emailKey(s.user.Email))
	delete(r.byID, id)
	return nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
