package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cat-registry/internal/domain/cats"

	"github.com/google/uuid"
)

type CatsRepo struct {
	db *sql.DB
}

func NewCatsRepo(db *sql.DB) *CatsRepo {
	return &CatsRepo{db: db}
}

const catColumns = `id, name, weight, filename, birthdate, lon, lat, owner_id, revision`

func (r *CatsRepo) Create(ctx context.Context, c cats.Cat) (cats.Cat, error) {
	c.ID = uuid.NewString()
	c.Revision = 0

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cats (`+catColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		c.ID,
		c.Name,
		c.Weight,
		c.Filename,
		c.Birthdate,
		c.Location.Lon,
		c.Location.Lat,
		c.Owner,
		c.Revision,
	)
	if err != nil {
		return cats.Cat{}, catWriteErr(err)
	}
	return c, nil
}

func (r *CatsRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return cats.Cat{}, cats.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+catColumns+` FROM cats WHERE id = $1`, id)
	c, err := scanCat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return cats.Cat{}, cats.ErrNotFound
	}
	if err != nil {
		return cats.Cat{}, fmt.Errorf("get cat %s: %w", id, err)
	}
	return c, nil
}

func (r *CatsRepo) List(ctx context.Context) ([]cats.Cat, error) {
	return r.query(ctx, `SELECT `+catColumns+` FROM cats ORDER BY seq`)
}

func (r *CatsRepo) ListByOwner(ctx context.Context, ownerID string) ([]cats.Cat, error) {
	return r.query(ctx, `SELECT `+catColumns+` FROM cats WHERE owner_id = $1 ORDER BY seq`, ownerID)
}

// ListWithin: bordes inclusivos (BETWEEN).
func (r *CatsRepo) ListWithin(ctx context.Context, box cats.BoundingBox) ([]cats.Cat, error) {
	out, err := r.query(ctx, `
		SELECT `+catColumns+` FROM cats
		WHERE lon BETWEEN $1 AND $2
		  AND lat BETWEEN $3 AND $4
		ORDER BY seq
	`,
		box.BottomLeft.Lon, box.TopRight.Lon,
		box.BottomLeft.Lat, box.TopRight.Lat,
	)
	if err != nil {
		return nil, fmt.Errorf("cats within %s: %w", box, err)
	}
	return out, nil
}

func (r *CatsRepo) Update(ctx context.Context, c cats.Cat) (cats.Cat, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE cats
		SET
			name = $2,
			weight = $3,
			filename = $4,
			birthdate = $5,
			lon = $6,
			lat = $7,
			owner_id = $8,
			revision = revision + 1
		WHERE id = $1
		RETURNING revision
	`,
		c.ID,
		c.Name,
		c.Weight,
		c.Filename,
		c.Birthdate,
		c.Location.Lon,
		c.Location.Lat,
		c.Owner,
	)
	if err := row.Scan(&c.Revision); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cats.Cat{}, cats.ErrNotFound
		}
		return cats.Cat{}, catWriteErr(err)
	}
	return c, nil
}

func (r *CatsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cats WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cat %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cats.ErrNotFound
	}
	return nil
}

func (r *CatsRepo) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cats WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete cats of %s: %w", ownerID, err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *CatsRepo) query(ctx context.Context, q string, args ...any) ([]cats.Cat, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query cats: %w", err)
	}
	defer rows.Close()

	out := make([]cats.Cat, 0)
	for rows.Next() {
		c, err := scanCat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cat: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCat(s scanner) (cats.Cat, error) {
	var c cats.Cat
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Weight,
		&c.Filename,
		&c.Birthdate,
		&c.Location.Lon,
		&c.Location.Lat,
		&c.Owner,
		&c.Revision,
	)
	if err == nil {
		c.Birthdate = c.Birthdate.UTC()
	}
	return c, err
}

func catWriteErr(err error) error {
	if pgCode(err) == codeForeignKeyViolation {
		return cats.ErrUnknownOwner
	}
	return fmt.Errorf("write cat: %w", err)
}
