package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cat-registry/internal/domain/users"
	"cat-registry/internal/ports/auth"

	"github.com/google/uuid"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `id, user_name, email, password_hash, role, revision`

func (r *UsersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	u.ID = uuid.NewString()
	u.Revision = 0
	if u.Role == "" {
		u.Role = auth.RoleUser
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		u.ID,
		u.UserName,
		u.Email,
		u.PasswordHash,
		string(u.Role),
		u.Revision,
	)
	if err != nil {
		return users.User{}, userWriteErr(err)
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, strings.TrimSpace(email))
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET
			user_name = $2,
			email = $3,
			password_hash = $4,
			revision = revision + 1
		WHERE id = $1
		RETURNING role, revision
	`,
		u.ID,
		u.UserName,
		u.Email,
		u.PasswordHash,
	)
	var role string
	if err := row.Scan(&role, &u.Revision); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, userWriteErr(err)
	}
	u.Role = auth.Role(role)
	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) getOne(ctx context.Context, q string, arg string) (users.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, q, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(s scanner) (users.User, error) {
	var u users.User
	var role string
	err := s.Scan(&u.ID, &u.UserName, &u.Email, &u.PasswordHash, &role, &u.Revision)
	u.Role = auth.Role(role)
	return u, err
}

func userWriteErr(err error) error {
	if pgCode(err) == codeUniqueViolation {
		return users.ErrDuplicateEmail
	}
	return fmt.Errorf("write user: %w", err)
}
