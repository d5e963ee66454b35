package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second
	maxBody        = 1 << 20
)

// Client es un cliente JSON contra una API base (p.ej. http://localhost:8080).
type Client struct {
	HTTP *http.Client
	base *url.URL // nil = sólo URLs absolutas
}

// New crea un Client. baseURL vacío está permitido (sólo URLs absolutas).
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{HTTP: &http.Client{Timeout: timeout}}

	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}
	u, err := url.ParseRequestURI(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	// con barra final, ResolveReference conserva el prefijo de path
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c.base = u
	return c, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: status=%d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += " body=" + e.Body
	}
	return msg
}

// StatusOf devuelve el status de un *HTTPError (0 si err no lo es).
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// GetJSON hace GET path?query y decodifica la respuesta en out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.DoJSON(ctx, http.MethodGet, path, nil, out)
}

// DoJSON manda in como body JSON (si no es nil) y decodifica la respuesta en out
// (si no es nil). Retorna *HTTPError si el status no es 2xx.
func (c *Client) DoJSON(ctx context.Context, method, pathOrURL string, in any, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	req, err := c.newRequest(ctx, method, pathOrURL, in)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	return decode(resp, out)
}

func (c *Client) newRequest(ctx context.Context, method, pathOrURL string, in any) (*http.Request, error) {
	u, err := c.resolve(pathOrURL)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func decode(resp *http.Response, out any) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			Method:     resp.Request.Method,
			Path:       resp.Request.URL.Path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

// resolve acepta URLs absolutas o paths relativos a la base ("/puppies" y "puppies" son iguales).
func (c *Client) resolve(pathOrURL string) (*url.URL, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return nil, errors.New("httpclient: empty url")
	}

	ref, err := url.Parse(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("httpclient: parse url: %w", err)
	}
	if ref.IsAbs() {
		return ref, nil
	}
	if c.base == nil {
		return nil, errors.New("httpclient: relative path requires a base url")
	}

	ref.Path = strings.TrimPrefix(ref.Path, "/")
	if ref.RawPath != "" {
		ref.RawPath = strings.TrimPrefix(ref.RawPath, "/")
	}
	return c.base.ResolveReference(ref), nil
}
