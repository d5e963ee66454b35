package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestClient_GetJSONAndHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if r.URL.Query().Get("cursor") != "pup-12" {
				http.Error(w, "missing cursor", http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{"value":"yes"}`))
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer ts.Close()

	c, err := New(ts.URL+"/", time.Second)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var out struct {
		Value string `json:"value"`
	}
	if err := c.GetJSON(context.Background(), "ok", url.Values{"cursor": {"pup-12"}}, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Value != "yes" {
		t.Fatalf("expected yes, got %q", out.Value)
	}

	err = c.GetJSON(context.Background(), "/missing", nil, &out)
	if StatusOf(err) != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
	if he, ok := err.(*HTTPError); !ok || he.Body != "nope" {
		t.Fatalf("expected body nope, got %#v", err)
	}
}

func TestClient_Resolve(t *testing.T) {
	c, _ := New("", 0)
	if _, err := c.resolve("/puppies"); err == nil {
		t.Fatalf("expected error for relative path without base url")
	}
	if u, err := c.resolve("https://example.com/x"); err != nil || u.String() != "https://example.com/x" {
		t.Fatalf("expected absolute url passthrough, got %v err=%v", u, err)
	}
	if _, err := New("::bad", 0); err == nil {
		t.Fatalf("expected invalid base url error")
	}

	cases := []struct {
		base, path, want string
	}{
		{"http://localhost:8080", "/puppies", "http://localhost:8080/puppies"},
		{"http://localhost:8080/", "puppies?cursor=pup-12", "http://localhost:8080/puppies?cursor=pup-12"},
		{"http://host/api", "/puppies/pup-1", "http://host/api/puppies/pup-1"},
		{"http://host/api/", "/puppies/a%2Fb", "http://host/api/puppies/a%2Fb"},
	}
	for _, tc := range cases {
		c, err := New(tc.base, 0)
		if err != nil {
			t.Fatalf("new %q: %v", tc.base, err)
		}
		u, err := c.resolve(tc.path)
		if err != nil || u.String() != tc.want {
			t.Fatalf("%s + %s: expected %s, got %v err=%v", tc.base, tc.path, tc.want, u, err)
		}
	}
}

func TestHTTPError_Message(t *testing.T) {
	err := &HTTPError{Method: http.MethodGet, Path: "/puppies", StatusCode: 503, Body: "Failed to load puppies. Please try again."}
	want := "GET /puppies: status=503 body=Failed to load puppies. Please try again."
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
