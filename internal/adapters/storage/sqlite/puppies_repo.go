package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"puppy-store/internal/domain/puppies"
)

// PuppiesRepo es la variante sqlite del repo postgres (mismo schema, placeholders ?).
type PuppiesRepo struct {
	db *sql.DB
}

func NewPuppiesRepo(db *sql.DB) *PuppiesRepo {
	return &PuppiesRepo{db: db}
}

// Seed deja la tabla igual al dataset cargado. Si lo guardado ya coincide no toca
// nada; si difiere lo reemplaza completo en una sola transacción.
// Devuelve cuántos registros insertó (0 = sin cambios).
func (r *PuppiesRepo) Seed(ctx context.Context, all []puppies.Puppy) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

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

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO puppies (position, id, name, description, image_url, age, location)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, p := range all {
		var img, loc sql.NullString
		var age sql.NullFloat64
		if p.ImageURL != "" {
			img = sql.NullString{String: p.ImageURL, Valid: true}
		}
		if p.Location != "" {
			loc = sql.NullString{String: p.Location, Valid: true}
		}
		if p.Age != nil {
			age = sql.NullFloat64{Float64: *p.Age, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx, i+1, p.ID, p.Name, p.Description, img, age, loc); err != nil {
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

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, image_url, age, location
		FROM puppies
		WHERE position > COALESCE((SELECT position FROM puppies WHERE id = ?), 0)
		ORDER BY position ASC
		LIMIT ?
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
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, image_url, age, location
		FROM puppies
		WHERE id = ?
	`, strings.TrimSpace(id))

	p, err := scanPuppy(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return puppies.Puppy{}, puppies.ErrNotFound
		}
		return puppies.Puppy{}, err
	}
	return p, nil
}

func scanPuppy(s interface{ Scan(dest ...any) error }) (puppies.Puppy, error) {
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
