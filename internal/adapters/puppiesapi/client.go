// Package puppiesapi consume la API HTTP de puppies. Implementa listing.Fetcher
// y la lookup de detalle para clientes remotos (la TUI con API_URL).
package puppiesapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"puppy-store/internal/domain/puppies"
	"puppy-store/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("puppies api not configured")
)

type Client struct {
	http *httpclient.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrNotConfigured
	}
	hc, err := httpclient.New(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

type puppyDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Age         *float64 `json:"age"`
	Location    string   `json:"location"`
}

type pageDTO struct {
	Data       []puppyDTO `json:"data"`
	NextCursor string     `json:"nextCursor"`
}

// FetchPage: cualquier falla de la API (red o no-2xx) es ErrRetrievalFailed,
// salvo la cancelación del contexto.
func (c *Client) FetchPage(ctx context.Context, req puppies.PageRequest) (puppies.Page, error) {
	q := url.Values{}
	if req.Cursor != "" {
		q.Set("cursor", req.Cursor)
	}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}

	var out pageDTO
	if err := c.http.GetJSON(ctx, "/puppies", q, &out); err != nil {
		if ctx.Err() != nil {
			return puppies.Page{}, ctx.Err()
		}
		return puppies.Page{}, fmt.Errorf("%w (%v)", puppies.ErrRetrievalFailed, err)
	}

	page := puppies.Page{
		Data:       make([]puppies.Puppy, 0, len(out.Data)),
		NextCursor: out.NextCursor,
	}
	for _, d := range out.Data {
		page.Data = append(page.Data, fromDTO(d))
	}
	return page, nil
}

// FindByID: 404 => found=false.
func (c *Client) FindByID(ctx context.Context, id string) (puppies.Puppy, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return puppies.Puppy{}, false, nil
	}

	var out puppyDTO
	err := c.http.GetJSON(ctx, "/puppies/"+url.PathEscape(id), nil, &out)
	if err != nil {
		if httpclient.StatusOf(err) == http.StatusNotFound {
			return puppies.Puppy{}, false, nil
		}
		return puppies.Puppy{}, false, err
	}
	return fromDTO(out), true, nil
}

// SetSimulateError usa la ruta debug del server (requiere DEBUG_ROUTES=true allá).
func (c *Client) SetSimulateError(ctx context.Context, enabled bool) error {
	return c.http.DoJSON(ctx, http.MethodPut, "/debug/simulate-error", map[string]bool{"enabled": enabled}, nil)
}

// SimulateError consulta el estado del switch remoto.
func (c *Client) SimulateError(ctx context.Context) (bool, error) {
	var out struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.http.GetJSON(ctx, "/debug/simulate-error", nil, &out); err != nil {
		return false, err
	}
	return out.Enabled, nil
}

func fromDTO(d puppyDTO) puppies.Puppy {
	return puppies.Puppy{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Age:         d.Age,
		Location:    d.Location,
	}
}
