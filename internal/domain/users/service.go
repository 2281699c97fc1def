package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cat-registry/internal/platform/apierror"
	"cat-registry/internal/platform/patch"
	"cat-registry/internal/platform/validation"
	"cat-registry/internal/ports/auth"

	"golang.org/x/crypto/bcrypt"
)

const (
	msgNoUser          = "No user found"
	msgUserNotFound    = "User not found"
	msgNotAuthorized   = "Not authorized"
	msgTokenNotValid   = "token not valid"
	msgBadCredentials  = "Incorrect username/password"
	msgDuplicateEmail  = "email already registered"
	msgPasswordTooLong = "password must be at most 72 bytes"

	bcryptCost = 10
)

// CatsRemover borra los gatos de un usuario al eliminarlo.
type CatsRemover interface {
	DeleteByOwner(ctx context.Context, ownerID string) (int, error)
}

type Service struct {
	repo   Repository
	cats   CatsRemover
	tokens auth.TokenIssuer
}

// NewService: cats y tokens son opcionales (nil desactiva la cascada y el login).
func NewService(repo Repository, cats CatsRemover, tokens auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		cats:   cats,
		tokens: tokens,
	}
}

type CreateInput struct {
	UserName string `json:"user_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateInput es parcial. Role no existe acá: no se cambia por la API.
type UpdateInput struct {
	UserName patch.Field[string]
	Email    patch.Field[string]
	Password patch.Field[string]
}

type LoginResult struct {
	Token string
	User  Public
}

func (s *Service) Get(ctx context.Context, id string) (Public, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Public{}, storeErr(err, msgNoUser)
	}
	return u.Public(), nil
}

func (s *Service) List(ctx context.Context) ([]Public, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	out := make([]Public, 0, len(items))
	for _, u := range items {
		out = append(out, u.Public())
	}
	return out, nil
}

// Create siempre persiste role=user y devuelve el registro releído del store.
func (s *Service) Create(ctx context.Context, in CreateInput) (Public, error) {
	in.UserName = strings.TrimSpace(in.UserName)
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return Public{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return Public{}, apierror.Internal(err)
	}

	created, err := s.repo.Create(ctx, User{
		UserName:     in.UserName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         auth.RoleUser,
	})
	if err != nil {
		return Public{}, storeErr(err, msgNoUser)
	}

	stored, err := s.repo.GetByID(ctx, created.ID)
	if err != nil {
		return Public{}, apierror.Internal(fmt.Errorf("re-read created user %s: %w", created.ID, err))
	}
	return stored.Public(), nil
}

// Update por id: solo admin.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput, caller auth.Claims) (Public, error) {
	if !caller.IsAdmin() {
		return Public{}, apierror.Unauthorized(msgNotAuthorized)
	}
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Public{}, storeErr(err, msgNoUser)
	}
	return s.apply(ctx, current, in, msgNoUser)
}

// Delete por id: solo admin. Borra también los gatos del usuario.
func (s *Service) Delete(ctx context.Context, id string, caller auth.Claims) (Public, error) {
	if !caller.IsAdmin() {
		return Public{}, apierror.Unauthorized(msgNotAuthorized)
	}
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Public{}, storeErr(err, msgNoUser)
	}
	return s.remove(ctx, current, msgNoUser)
}

// UpdateCurrent actualiza al caller; el id sale del token.
func (s *Service) UpdateCurrent(ctx context.Context, in UpdateInput, caller auth.Claims) (Public, error) {
	if !caller.Authenticated() {
		return Public{}, apierror.Unauthorized(msgNotAuthorized)
	}
	current, err := s.repo.GetByID(ctx, caller.UserID)
	if err != nil {
		return Public{}, storeErr(err, msgUserNotFound)
	}
	return s.apply(ctx, current, in, msgUserNotFound)
}

func (s *Service) DeleteCurrent(ctx context.Context, caller auth.Claims) (Public, error) {
	if !caller.Authenticated() {
		return Public{}, apierror.Unauthorized(msgNotAuthorized)
	}
	current, err := s.repo.GetByID(ctx, caller.UserID)
	if err != nil {
		return Public{}, storeErr(err, msgUserNotFound)
	}
	return s.remove(ctx, current, msgUserNotFound)
}

// CheckToken no toca el store: devuelve la identidad tal cual llegó.
func (s *Service) CheckToken(caller auth.Claims) (auth.Claims, error) {
	if !caller.Authenticated() {
		return auth.Claims{}, apierror.Forbidden(msgTokenNotValid)
	}
	return caller, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if s.tokens == nil {
		return LoginResult{}, apierror.NotFound("login is not enabled")
	}

	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return LoginResult{}, apierror.Unauthorized(msgBadCredentials)
	}
	if err != nil {
		return LoginResult{}, apierror.Internal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, apierror.Unauthorized(msgBadCredentials)
	}

	token, err := s.tokens.Issue(ctx, auth.Claims{
		UserID:   u.ID,
		UserName: u.UserName,
		Email:    u.Email,
		Role:     roleOrDefault(u.Role),
	})
	if err != nil {
		return LoginResult{}, apierror.Internal(err)
	}
	return LoginResult{Token: token, User: u.Public()}, nil
}

func (s *Service) apply(ctx context.Context, u User, in UpdateInput, notFoundMsg string) (Public, error) {
	if in.UserName.Set {
		name, _ := in.UserName.Get()
		name = strings.TrimSpace(name)
		if name == "" {
			return Public{}, apierror.BadRequest("user_name is required")
		}
		u.UserName = name
	}
	if in.Email.Set {
		email, _ := in.Email.Get()
		email = normalizeEmail(email)
		if err := validation.Var("email", email, "required,email"); err != nil {
			return Public{}, err
		}
		u.Email = email
	}
	if in.Password.Set {
		pw, ok := in.Password.Get()
		if !ok || pw == "" {
			return Public{}, apierror.BadRequest("password is required")
		}
		hash, err := hashPassword(pw)
		if err != nil {
			return Public{}, apierror.Internal(err)
		}
		u.PasswordHash = hash
	}

	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		return Public{}, storeErr(err, notFoundMsg)
	}
	return updated.Public(), nil
}

func (s *Service) remove(ctx context.Context, u User, notFoundMsg string) (Public, error) {
	if s.cats != nil {
		if _, err := s.cats.DeleteByOwner(ctx, u.ID); err != nil {
			return Public{}, apierror.Internal(fmt.Errorf("delete cats of %s: %w", u.ID, err))
		}
	}
	if err := s.repo.Delete(ctx, u.ID); err != nil {
		return Public{}, storeErr(err, notFoundMsg)
	}
	return u.Public(), nil
}

// hashPassword devuelve un 400 si pw supera el límite de bcrypt (72 bytes).
func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apierror.BadRequest(msgPasswordTooLong)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func roleOrDefault(r auth.Role) auth.Role {
	if r == auth.RoleAdmin {
		return auth.RoleAdmin
	}
	return auth.RoleUser
}

func storeErr(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return &apierror.Error{Message: notFoundMsg, StatusCode: apierror.ErrNotFound.StatusCode, Err: err}
	case errors.Is(err, ErrDuplicateEmail):
		return &apierror.Error{Message: msgDuplicateEmail, StatusCode: apierror.ErrConflict.StatusCode, Err: err}
	default:
		return apierror.Internal(err)
	}
}
