package tavily

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(newTestLogger(t), Config{
		BaseURL: srv.URL,
		APIKey:  "test-key",
	})
	if err != nil {
		t.Fatalf("init client: %v", err)
	}
	return c
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()
	if _, err := NewClient(newTestLogger(t), Config{}); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestSearchReturnsSnippets(t *testing.T) {
	t.Parallel()
	var captured map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"title": "a", "url": "https://a", "content": "first snippet", "score": 0.9},
				{"title": "b", "url": "https://b", "content": "  ", "score": 0.5},
				{"title": "c", "url": "https://c", "content": "second snippet", "score": 0.4},
			},
		})
	})

	got, err := c.Search(context.Background(), "soda environmental impact")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"first snippet", "second snippet"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	if captured["query"] != "soda environmental impact" {
		t.Fatalf("unexpected query sent: %v", captured["query"])
	}
	if captured["api_key"] != "test-key" {
		t.Fatal("api key not sent in body")
	}
}

func TestSearchHTTPError(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	})

	_, err := c.Search(context.Background(), "anything")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.HTTPStatusCode() != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", httpErr.HTTPStatusCode())
	}
}

func TestSearchNoResults(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	})

	got, err := c.Search(context.Background(), "obscure query")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no snippets, got %v", got)
	}
}
