package cats

import (
	"context"
	"errors"
	"strings"
	"time"

	"cat-registry/internal/platform/apierror"
	"cat-registry/internal/platform/patch"
	"cat-registry/internal/platform/validation"
	"cat-registry/internal/ports/auth"
)

const (
	msgNoCat         = "No cat found"
	msgCatNotFound   = "Cat not found"
	msgNotAuthorized = "Not authorized"
)

// OwnerLookup evita importar el paquete users (rompe ciclos).
type OwnerLookup interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

type Service struct {
	repo   Repository
	owners OwnerLookup
}

// NewService recibe el store explícitamente; owners puede ser nil si el store
// ya valida la referencia (FK).
func NewService(repo Repository, owners OwnerLookup) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
	}
}

type CreateInput struct {
	Name      string    `json:"name" validate:"required"`
	Weight    float64   `json:"weight" validate:"required,gt=0"`
	Filename  string    `json:"filename"`
	Birthdate time.Time `json:"birthdate"`
	Location  *Point    `json:"location"`
	Owner     string    `json:"owner"`
}

// UpdateInput es un update parcial: campos no enviados (Set=false) no se tocan.
type UpdateInput struct {
	Name      patch.Field[string]
	Weight    patch.Field[float64]
	Filename  patch.Field[string]
	Birthdate patch.Field[time.Time]
	Location  patch.Field[Point]
	Owner     patch.Field[string]
}

func (s *Service) Get(ctx context.Context, id string) (Cat, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Cat{}, storeErr(err, msgNoCat)
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]Cat, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return items, nil
}

// ListByOwner usa la identidad del caller, nunca un parámetro del request.
func (s *Service) ListByOwner(ctx context.Context, caller auth.Claims) ([]Cat, error) {
	if !caller.Authenticated() {
		return nil, apierror.Unauthorized(msgNotAuthorized)
	}
	items, err := s.repo.ListByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return items, nil
}

func (s *Service) ListWithin(ctx context.Context, topRight, bottomLeft Point) ([]Cat, error) {
	items, err := s.repo.ListWithin(ctx, NewBoundingBox(topRight, bottomLeft))
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return items, nil
}

// Create: el owner viene en el payload o, si falta, es el caller.
// Solo un admin puede crear gatos a nombre de otro usuario.
func (s *Service) Create(ctx context.Context, caller auth.Claims, in CreateInput) (Cat, error) {
	if !caller.Authenticated() {
		return Cat{}, apierror.Unauthorized(msgNotAuthorized)
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Owner = strings.TrimSpace(in.Owner)
	if in.Owner == "" {
		in.Owner = caller.UserID
	}
	if in.Owner != caller.UserID && !caller.IsAdmin() {
		return Cat{}, apierror.Unauthorized(msgNotAuthorized)
	}
	if err := validation.Struct(in); err != nil {
		return Cat{}, err
	}
	if in.Birthdate.IsZero() {
		return Cat{}, apierror.BadRequest("birthdate is required")
	}
	if in.Location == nil {
		return Cat{}, apierror.BadRequest("location is required")
	}
	if err := s.checkOwner(ctx, in.Owner); err != nil {
		return Cat{}, err
	}

	c, err := s.repo.Create(ctx, Cat{
		Name:      in.Name,
		Weight:    in.Weight,
		Filename:  strings.TrimSpace(in.Filename),
		Birthdate: in.Birthdate,
		Location:  *in.Location,
		Owner:     in.Owner,
	})
	if err != nil {
		if errors.Is(err, ErrUnknownOwner) {
			return Cat{}, apierror.BadRequest("owner does not exist")
		}
		return Cat{}, apierror.Internal(err)
	}
	return c, nil
}

// Update: solo el owner. No permite cambiar el owner (eso es UpdateAsAdmin).
func (s *Service) Update(ctx context.Context, id string, in UpdateInput, caller auth.Claims) (Cat, error) {
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Cat{}, storeErr(err, msgCatNotFound)
	}
	if !isOwner(current, caller) {
		return Cat{}, apierror.Unauthorized(msgNotAuthorized)
	}
	if owner, ok := in.Owner.Get(); ok && strings.TrimSpace(owner) != current.Owner {
		return Cat{}, apierror.BadRequest("owner can only be changed by an admin")
	}
	return s.apply(ctx, current, in)
}

// UpdateAsAdmin saltea ownership pero exige rol admin; puede reasignar owner.
func (s *Service) UpdateAsAdmin(ctx context.Context, id string, in UpdateInput, caller auth.Claims) (Cat, error) {
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Cat{}, storeErr(err, msgCatNotFound)
	}
	if !caller.IsAdmin() {
		return Cat{}, apierror.Unauthorized(msgNotAuthorized)
	}
	return s.apply(ctx, current, in)
}

func (s *Service) Delete(ctx context.Context, id string, caller auth.Claims) (Cat, error) {
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Cat{}, storeErr(err, msgCatNotFound)
	}
	if !isOwner(current, caller) {
		return Cat{}, apierror.Unauthorized(msgNotAuthorized)
	}
	return s.remove(ctx, current)
}

// DeleteAsAdmin: cualquier gato, sin importar el owner, si el caller es admin.
func (s *Service) DeleteAsAdmin(ctx context.Context, id string, caller auth.Claims) (Cat, error) {
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Cat{}, storeErr(err, msgCatNotFound)
	}
	if !caller.IsAdmin() {
		return Cat{}, apierror.Unauthorized(msgNotAuthorized)
	}
	return s.remove(ctx, current)
}

// DeleteByOwner borra todos los gatos de un usuario (cascada al borrar el user).
func (s *Service) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return 0, nil
	}
	n, err := s.repo.DeleteByOwner(ctx, ownerID)
	if err != nil {
		return 0, apierror.Internal(err)
	}
	return n, nil
}

func (s *Service) remove(ctx context.Context, c Cat) (Cat, error) {
	if err := s.repo.Delete(ctx, c.ID); err != nil {
		return Cat{}, storeErr(err, msgCatNotFound)
	}
	return c, nil
}

func (s *Service) apply(ctx context.Context, c Cat, in UpdateInput) (Cat, error) {
	if in.Name.Set {
		name, _ := in.Name.Get()
		name = strings.TrimSpace(name)
		if name == "" {
			return Cat{}, apierror.BadRequest("name is required")
		}
		c.Name = name
	}
	if in.Weight.Set {
		w, ok := in.Weight.Get()
		if !ok || w <= 0 {
			return Cat{}, apierror.BadRequest("weight must be gt 0")
		}
		c.Weight = w
	}
	if in.Filename.Set {
		// null limpia la imagen
		f, _ := in.Filename.Get()
		c.Filename = strings.TrimSpace(f)
	}
	if in.Birthdate.Set {
		bd, ok := in.Birthdate.Get()
		if !ok || bd.IsZero() {
			return Cat{}, apierror.BadRequest("birthdate is required")
		}
		c.Birthdate = bd
	}
	if in.Location.Set {
		loc, ok := in.Location.Get()
		if !ok {
			return Cat{}, apierror.BadRequest("location is required")
		}
		c.Location = loc
	}
	if in.Owner.Set {
		owner, _ := in.Owner.Get()
		owner = strings.TrimSpace(owner)
		if owner == "" {
			return Cat{}, apierror.BadRequest("owner is required")
		}
		if owner != c.Owner {
			if err := s.checkOwner(ctx, owner); err != nil {
				return Cat{}, err
			}
		}
		c.Owner = owner
	}

	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		if errors.Is(err, ErrUnknownOwner) {
			return Cat{}, apierror.BadRequest("owner does not exist")
		}
		return Cat{}, storeErr(err, msgCatNotFound)
	}
	return updated, nil
}

func (s *Service) checkOwner(ctx context.Context, ownerID string) error {
	if s.owners == nil {
		return nil
	}
	ok, err := s.owners.Exists(ctx, ownerID)
	if err != nil {
		return apierror.Internal(err)
	}
	if !ok {
		return apierror.BadRequest("owner does not exist")
	}
	return nil
}

// Ownership: igualdad de string sobre el id canónico.
func isOwner(c Cat, caller auth.Claims) bool {
	return caller.Authenticated() && c.Owner == caller.UserID
}

func storeErr(err error, notFoundMsg string) error {
	if errors.Is(err, ErrNotFound) {
		return &apierror.Error{Message: notFoundMsg, StatusCode: apierror.ErrNotFound.StatusCode, Err: err}
	}
	return apierror.Internal(err)
}
