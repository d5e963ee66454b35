package memory

import (
	"context"
	"errors"
	"strings"

	"puppy-store/internal/domain/puppies"
)

var (
	ErrNotFound = puppies.ErrNotFound
)

// puppyRepo mantiene el dataset en el orden de carga.
// Se arma en NewPuppyRepo y nunca se muta después, por eso no lleva lock.
type puppyRepo struct {
	all  []puppies.Puppy
	byID map[string]int
}

func NewPuppyRepo(all []puppies.Puppy) (puppies.Repository, error) {
	r := &puppyRepo{
		all:  make([]puppies.Puppy, 0, len(all)),
		byID: make(map[string]int, len(all)),
	}

	for _, p := range all {
		if strings.TrimSpace(p.ID) == "" {
			return nil, errors.New("puppy id required")
		}
		if _, exists := r.byID[p.ID]; exists {
			return nil, errors.New("puppy already exists: " + p.ID)
		}
		r.byID[p.ID] = len(r.all)
		r.all = append(r.all, p)
	}

	return r, nil
}

func (r *puppyRepo) PageAfter(ctx context.Context, cursor string, limit int) (puppies.Page, error) {
	return puppies.Paginate(r.all, cursor, limit), nil
}

func (r *puppyRepo) GetByID(ctx context.Context, id string) (puppies.Puppy, error) {
	i, ok := r.byID[id]
	if !ok {
		return puppies.Puppy{}, ErrNotFound
	}
	return r.all[i], nil
}
