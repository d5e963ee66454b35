// Package tui es la versión de terminal de la grilla de cachorros y su detalle.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"puppy-store/internal/domain/puppies"
	"puppy-store/internal/listing"
	"puppy-store/internal/platform/logger"
)

const columns = 2

// Lookup resuelve el detalle por id (Service en proceso o cliente HTTP).
type Lookup interface {
	FindByID(ctx context.Context, id string) (puppies.Puppy, bool, error)
}

// ErrorToggle enciende/apaga la simulación de error. Opcional.
type ErrorToggle interface {
	SetSimulateError(ctx context.Context, enabled bool) error
	SimulateError(ctx context.Context) (bool, error)
}

// LocalToggle adapta el switch del Service en proceso.
type LocalToggle struct {
	Switch *puppies.Switch
}

func (t LocalToggle) SetSimulateError(_ context.Context, enabled bool) error {
	t.Switch.Set(enabled)
	return nil
}

func (t LocalToggle) SimulateError(context.Context) (bool, error) {
	return t.Switch.Enabled(), nil
}

type Deps struct {
	Fetcher  listing.Fetcher
	Lookup   Lookup
	Toggle   ErrorToggle
	PageSize int
	Logger   logger.Logger
}

type screen int

const (
	screenList screen = iota
	screenDetail
)

type detailState struct {
	id      string
	loading bool
	puppy   puppies.Puppy
	found   bool
	err     string
}

type Model struct {
	ctx    context.Context
	ctrl   *listing.Controller
	feed   *snapshotFeed
	lookup Lookup
	toggle ErrorToggle

	snap     listing.Snapshot
	selected int
	offset   int // primera fila visible

	screen screen
	detail detailState

	errorSim bool
	status   string

	keys keyMap
	help help.Model

	width  int
	height int
}

func New(ctx context.Context, deps Deps) Model {
	feed := newSnapshotFeed()
	ctrl := listing.New(deps.Fetcher, listing.Options{
		PageSize: deps.PageSize,
		OnChange: feed.push,
		Logger:   deps.Logger,
	})

	return Model{
		ctx:    ctx,
		ctrl:   ctrl,
		feed:   feed,
		lookup: deps.Lookup,
		toggle: deps.Toggle,
		snap:   ctrl.Snapshot(),
		keys:   newKeyMap(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
}

// Close cancela los fetches en vuelo. Llamar después de que termine el programa.
func (m Model) Close() {
	m.ctrl.Close()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		startCmd(m.ctx, m.ctrl),
		waitForSnapshot(m.feed),
		readToggleCmd(m.ctx, m.toggle),
	)
}

// snapshotFeed guarda sólo el snapshot más reciente; la TUI no necesita los intermedios.
type snapshotFeed struct {
	ch chan listing.Snapshot
}

func newSnapshotFeed() *snapshotFeed {
	return &snapshotFeed{ch: make(chan listing.Snapshot, 1)}
}

func (f *snapshotFeed) push(s listing.Snapshot) {
	for {
		select {
		case f.ch <- s:
			return
		default:
		}
		// descartar el viejo y reintentar
		select {
		case old := <-f.ch:
			if old.Version > s.Version {
				s = old
			}
		default:
		}
	}
}

// -------------------------
// Messages / Commands
// -------------------------

type snapshotMsg listing.Snapshot

type detailMsg struct {
	id    string
	puppy puppies.Puppy
	found bool
	err   error
}

type toggleMsg struct {
	enabled bool
	err     error
}

func waitForSnapshot(f *snapshotFeed) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-f.ch)
	}
}

func startCmd(ctx context.Context, ctrl *listing.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.Start(ctx)
		return nil
	}
}

func lookupCmd(ctx context.Context, lookup Lookup, id string) tea.Cmd {
	return func() tea.Msg {
		if lookup == nil {
			return detailMsg{id: id}
		}
		p, found, err := lookup.FindByID(ctx, id)
		return detailMsg{id: id, puppy: p, found: found, err: err}
	}
}

func readToggleCmd(ctx context.Context, t ErrorToggle) tea.Cmd {
	if t == nil {
		return nil
	}
	return func() tea.Msg {
		on, err := t.SimulateError(ctx)
		return toggleMsg{enabled: on, err: err}
	}
}

func setToggleCmd(ctx context.Context, t ErrorToggle, enabled bool) tea.Cmd {
	if t == nil {
		return nil
	}
	return func() tea.Msg {
		if err := t.SetSimulateError(ctx, enabled); err != nil {
			return toggleMsg{enabled: !enabled, err: err}
		}
		return toggleMsg{enabled: enabled}
	}
}

// retryCmd apaga la simulación de error (como el botón Retry) y reintenta.
func retryCmd(ctx context.Context, ctrl *listing.Controller, t ErrorToggle) tea.Cmd {
	return func() tea.Msg {
		var msg tea.Msg
		if t != nil {
			err := t.SetSimulateError(ctx, false)
			msg = toggleMsg{enabled: err != nil, err: err}
		}
		ctrl.Retry(ctx)
		return msg
	}
}
