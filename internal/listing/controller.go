// Package listing implementa el estado de la grilla de cachorros:
// carga inicial, refresh y "load more" paginado por cursor.
//
// Estados: idle -> loading -> success | empty | error.
// Cada fetch lleva un número de generación; sólo la generación más reciente
// puede modificar el estado. Los fetches superados se cancelan y su resultado
// se descarta.
package listing

import (
	"context"
	"errors"
	"sync"

	"puppy-store/internal/domain/puppies"
	"puppy-store/internal/platform/logger"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateEmpty   State = "empty"
	StateError   State = "error"
)

const (
	genericMessage  = "Something went wrong."
	loadMoreMessage = "Couldn't load more puppies."
)

// Fetcher es la fuente de páginas: el Service en proceso o el cliente HTTP.
type Fetcher interface {
	FetchPage(ctx context.Context, req puppies.PageRequest) (puppies.Page, error)
}

// Snapshot es una copia inmutable del estado. Version crece con cada mutación;
// los consumidores que reciben snapshots desde varias goroutines se quedan con la mayor.
type Snapshot struct {
	Version uint64

	State      State
	Items      []puppies.Puppy
	NextCursor string
	Err        string

	Refreshing  bool
	LoadingMore bool
	// LoadMoreErr es el aviso "no se pudo cargar más"; no cambia State.
	LoadMoreErr string
}

// Exhausted: la lista está completa y LoadMore ya no hace nada.
func (s Snapshot) Exhausted() bool {
	return s.State == StateSuccess && s.NextCursor == ""
}

type Options struct {
	PageSize int
	OnChange func(Snapshot)
	Logger   logger.Logger
}

type fetchKind int

const (
	kindReset fetchKind = iota // carga inicial, retry o refresh
	kindMore
)

type Controller struct {
	fetcher Fetcher
	opts    Options
	log     logger.Logger

	mu       sync.Mutex
	snap     Snapshot
	gen      uint64
	resetGen uint64 // generación del reset en vuelo; 0 = ninguno
	cancels  map[uint64]context.CancelFunc
	closed   bool

	wg sync.WaitGroup
}

func New(fetcher Fetcher, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = puppies.DefaultLimit
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Controller{
		fetcher: fetcher,
		opts:    opts,
		log:     log.With(map[string]any{"component": "listing"}),
		snap:    Snapshot{State: StateIdle},
		cancels: make(map[uint64]context.CancelFunc),
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Start dispara la carga inicial. Sólo desde idle.
func (c *Controller) Start(ctx context.Context) bool {
	return c.reset(ctx, func(s State) bool { return s == StateIdle }, false)
}

// Retry vuelve a cargar la primera página. Sólo desde error.
func (c *Controller) Retry(ctx context.Context) bool {
	return c.reset(ctx, func(s State) bool { return s == StateError }, false)
}

// Refresh reemplaza la lista con una primera página nueva. Desde success o empty;
// el estado se mantiene (Refreshing=true) hasta que llega el resultado.
func (c *Controller) Refresh(ctx context.Context) bool {
	return c.reset(ctx, func(s State) bool { return s == StateSuccess || s == StateEmpty }, true)
}

func (c *Controller) reset(ctx context.Context, allowed func(State) bool, refresh bool) bool {
	c.mu.Lock()
	if c.closed || !allowed(c.snap.State) {
		c.mu.Unlock()
		return false
	}

	if refresh {
		c.snap.Refreshing = true
	} else {
		c.snap.State = StateLoading
		c.snap.Err = ""
	}
	// cualquier load-more en vuelo queda superado
	c.snap.LoadingMore = false

	gen := c.issueLocked(ctx, kindReset, "")
	c.resetGen = gen
	snap := c.bumpLocked()
	c.mu.Unlock()

	c.log.Debug("list reset issued", map[string]any{"gen": gen, "refresh": refresh})
	c.notify(snap)
	return true
}

// LoadMore agrega la página siguiente. No-op (false) si no hay cursor, si ya hay
// un load-more en vuelo, si hay un reset en vuelo o si el estado no es success.
func (c *Controller) LoadMore(ctx context.Context) bool {
	c.mu.Lock()
	if c.closed ||
		c.snap.State != StateSuccess ||
		c.snap.NextCursor == "" ||
		c.snap.LoadingMore ||
		c.resetGen != 0 {
		c.mu.Unlock()
		return false
	}

	c.snap.LoadingMore = true
	c.snap.LoadMoreErr = ""
	gen := c.issueLocked(ctx, kindMore, c.snap.NextCursor)
	snap := c.bumpLocked()
	c.mu.Unlock()

	c.log.Debug("load more issued", map[string]any{"gen": gen, "cursor": snap.NextCursor})
	c.notify(snap)
	return true
}

// Wait bloquea hasta que no quede ningún fetch en vuelo.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancela los fetches en vuelo y descarta sus resultados.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.gen++
	c.cancelAllLocked()
	c.mu.Unlock()

	c.wg.Wait()
}

// issueLocked lanza un fetch con una generación nueva y cancela los anteriores.
func (c *Controller) issueLocked(ctx context.Context, kind fetchKind, cursor string) uint64 {
	c.cancelAllLocked()

	c.gen++
	gen := c.gen

	fctx, cancel := context.WithCancel(ctx)
	c.cancels[gen] = cancel

	req := puppies.PageRequest{Cursor: cursor, Limit: c.opts.PageSize}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		page, err := c.fetcher.FetchPage(fctx, req)
		c.complete(gen, kind, page, err)
	}()

	return gen
}

func (c *Controller) cancelAllLocked() {
	for g, cancel := range c.cancels {
		cancel()
		delete(c.cancels, g)
	}
}

func (c *Controller) complete(gen uint64, kind fetchKind, page puppies.Page, err error) {
	c.mu.Lock()
	if cancel, ok := c.cancels[gen]; ok {
		cancel()
		delete(c.cancels, gen)
	}

	if gen != c.gen {
		c.mu.Unlock()
		c.log.Debug("stale fetch discarded", map[string]any{"gen": gen})
		return
	}

	switch kind {
	case kindReset:
		c.resetGen = 0
		c.snap.Refreshing = false
		c.snap.LoadMoreErr = ""

		switch {
		case err != nil:
			c.snap.State = StateError
			c.snap.Err = userMessage(err)
			c.snap.Items = nil
			c.snap.NextCursor = ""
		case len(page.Data) == 0:
			c.snap.State = StateEmpty
			c.snap.Err = ""
			c.snap.Items = nil
			c.snap.NextCursor = ""
		default:
			c.snap.State = StateSuccess
			c.snap.Err = ""
			c.snap.Items = append([]puppies.Puppy(nil), page.Data...)
			c.snap.NextCursor = page.NextCursor
		}

	case kindMore:
		c.snap.LoadingMore = false
		if err != nil {
			c.snap.LoadMoreErr = loadMoreMessage
			c.log.Warn("load more failed", map[string]any{"gen": gen, "error": err.Error()})
			break
		}
		c.snap.Items = append(c.snap.Items, page.Data...)
		c.snap.NextCursor = page.NextCursor
	}

	snap := c.bumpLocked()
	c.mu.Unlock()

	c.log.Debug("fetch applied", map[string]any{
		"gen":   gen,
		"state": string(snap.State),
		"items": len(snap.Items),
	})
	c.notify(snap)
}

func (c *Controller) bumpLocked() Snapshot {
	c.snap.Version++
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := c.snap
	s.Items = append([]puppies.Puppy(nil), c.snap.Items...)
	return s
}

func (c *Controller) notify(s Snapshot) {
	if c.opts.OnChange != nil {
		c.opts.OnChange(s)
	}
}

func userMessage(err error) string {
	if errors.Is(err, puppies.ErrRetrievalFailed) {
		return puppies.RetrievalMessage
	}
	return genericMessage
}
