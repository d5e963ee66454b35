package puppies

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("puppy not found")
)

// Repository es el dataset ordenado. El orden de inserción es el orden keyset.
type Repository interface {
	// PageAfter devuelve hasta limit registros a partir del siguiente a cursor.
	// Un cursor vacío o desconocido empieza en la posición 0.
	PageAfter(ctx context.Context, cursor string, limit int) (Page, error)
	GetByID(ctx context.Context, id string) (Puppy, error)
}

// Paginate aplica la paginación keyset sobre el dataset completo en memoria.
// NextCursor sólo se setea si quedan registros después del slice devuelto.
func Paginate(all []Puppy, cursor string, limit int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := 0
	if cursor != "" {
		for i, p := range all {
			if p.ID == cursor {
				start = i + 1
				break
			}
		}
	}
	if start > len(all) {
		start = len(all)
	}

	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	out := make([]Puppy, end-start)
	copy(out, all[start:end])

	page := Page{Data: out}
	if start+limit < len(all) {
		page.NextCursor = out[len(out)-1].ID
	}
	return page
}
