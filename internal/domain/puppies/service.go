package puppies

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const DefaultDelay = 700 * time.Millisecond

// RetrievalMessage es el único mensaje de error visible para el usuario.
const RetrievalMessage = "Failed to load puppies. Please try again."

var (
	ErrRetrievalFailed = errors.New(RetrievalMessage)
)

type Options struct {
	// Delay artificial de cada fetch (éxito o falla). 0 = sin delay.
	Delay time.Duration
	// SimulateError: si está encendido, FetchPage falla con ErrRetrievalFailed.
	SimulateError *Switch
	// SimulateEmpty: todas las páginas salen vacías.
	SimulateEmpty bool
}

type Service struct {
	repo  Repository
	opts  Options
	sleep func(ctx context.Context, d time.Duration) error
}

func NewService(repo Repository, opts Options) *Service {
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	return &Service{
		repo:  repo,
		opts:  opts,
		sleep: sleepCtx,
	}
}

// ErrorSwitch expone el switch inyectado (para rutas debug y la TUI). Puede ser nil.
func (s *Service) ErrorSwitch() *Switch {
	return s.opts.SimulateError
}

// FetchPage simula la llamada de red: espera Delay y luego devuelve la página
// o ErrRetrievalFailed si el switch está encendido.
func (s *Service) FetchPage(ctx context.Context, req PageRequest) (Page, error) {
	req = req.normalized()

	if err := s.sleep(ctx, s.opts.Delay); err != nil {
		return Page{}, err
	}

	if s.opts.SimulateError.Enabled() {
		return Page{}, ErrRetrievalFailed
	}
	if s.opts.SimulateEmpty {
		return Page{Data: []Puppy{}}, nil
	}

	page, err := s.repo.PageAfter(ctx, req.Cursor, req.Limit)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}
	if page.Data == nil {
		page.Data = []Puppy{}
	}
	return page, nil
}

// FindByID resuelve el detalle. Un id inexistente es found=false, no un error.
func (s *Service) FindByID(ctx context.Context, id string) (Puppy, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Puppy{}, false, nil
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Puppy{}, false, nil
		}
		return Puppy{}, false, err
	}
	return p, true, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
