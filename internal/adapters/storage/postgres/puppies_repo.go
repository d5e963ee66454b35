package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"puppy-store/internal/domain/puppies"
)

// PuppiesRepo guarda el dataset con una columna position que fija el orden keyset.
type PuppiesRepo struct {
	db *sql.DB
}

func NewPuppiesRepo(db *sql.DB) *PuppiesRepo {
	return &PuppiesRepo{db: db}
}

// Seed sincroniza la tabla con el dataset de arranque: sin cambios si coincide,
// reemplazo completo (misma transacción) si difiere. Devuelve cuántos insertó.
func (r *PuppiesRepo) Seed(ctx context.Context, all []puppies.Puppy) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	// dos instancias arrancando a la vez no deben intercalar el reemplazo
	if _, err := tx.ExecContext(ctx, `LOCK TABLE puppies IN EXCLUSIVE MODE`); err != nil {
		return 0, fmt.Errorf("lock puppies: %w", err)
	}

	stored, err := loadAll(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("read stored dataset: %w", err)
	}
	if puppies.SameDataset(stored, all) {
		return 0, tx.Commit()
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM puppies`); err != nil {
		return 0, fmt.Errorf("clear stored dataset: %w", err)
	}

	for i, p := range all {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO puppies (
				position, id, name, description,
				image_url, age, location
			) VALUES ($1,$2,$3,$4,$5,$6,$7)
		`,
			i+1,
			p.ID,
			p.Name,
			p.Description,
			toNullString(p.ImageURL),
			toNullFloat(p.Age),
			toNullString(p.Location),
		)
		if err != nil {
			return 0, fmt.Errorf("seed %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(all), nil
}

func loadAll(ctx context.Context, tx *sql.Tx) ([]puppies.Puppy, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, name, description, image_url, age, location
		FROM puppies
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []puppies.Puppy
	for rows.Next() {
		p, err := scanPuppy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PuppiesRepo) PageAfter(ctx context.Context, cursor string, limit int) (puppies.Page, error) {
	if limit <= 0 {
		limit = puppies.DefaultLimit
	}

	// Cursor desconocido => COALESCE a 0 => arranca desde el principio.
	// Pedimos limit+1 para saber si quedan registros.
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, image_url, age, location
		FROM puppies
		WHERE position > COALESCE((SELECT position FROM puppies WHERE id = $1), 0)
		ORDER BY position ASC
		LIMIT $2
	`, strings.TrimSpace(cursor), limit+1)
	if err != nil {
		return puppies.Page{}, err
	}
	defer rows.Close()

	out := make([]puppies.Puppy, 0, limit)
	for rows.Next() {
		p, err := scanPuppy(rows)
		if err != nil {
			return puppies.Page{}, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return puppies.Page{}, err
	}

	page := puppies.Page{Data: out}
	if len(out) > limit {
		page.Data = out[:limit]
		page.NextCursor = out[limit-1].ID
	}
	return page, nil
}

func (r *PuppiesRepo) GetByID(ctx context.Context, id string) (puppies.Puppy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return puppies.Puppy{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, image_url, age, location
		FROM puppies
		WHERE id = $1
	`, id)

	p, err := scanPuppy(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return puppies.Puppy{}, ErrNotFound
		}
		return puppies.Puppy{}, err
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPuppy(s scanner) (puppies.Puppy, error) {
	var p puppies.Puppy
	var img, loc sql.NullString
	var age sql.NullFloat64

	if err := s.Scan(&p.ID, &p.Name, &p.Description, &img, &age, &loc); err != nil {
		return puppies.Puppy{}, err
	}

	p.ImageURL = img.String
	p.Location = loc.String
	if age.Valid {
		a := age.Float64
		p.Age = &a
	}
	return p, nil
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
