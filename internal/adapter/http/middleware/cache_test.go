package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeCache struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getFn != nil {
		return f.getFn(ctx, key)
	}
	return nil, errors.New("miss")
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if f.setFn != nil {
		return f.setFn(ctx, key, value, ttl)
	}
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	return nil
}

func TestCacheMiddleware_ServesCachedResponse(t *testing.T) {
	var requestedKey string
	cache := &fakeCache{
		getFn: func(ctx context.Context, key string) ([]byte, error) {
			requestedKey = key
			return []byte(`[{"id":"a"}]`), nil
		},
	}
	mw := NewCacheMiddleware(cache, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts?budget_id=b-1&limit=20", nil)
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be called on a cache hit")
	})).ServeHTTP(rr, req)

	if rr.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("expected X-Cache header to be set")
	}
	if got := rr.Body.String(); got != `[{"id":"a"}]` {
		t.Fatalf("unexpected cached body: %s", got)
	}
	if requestedKey != "/api/v1/accounts?budget_id=b-1&limit=20" {
		t.Fatalf("expected key to include query parameters, got %q", requestedKey)
	}
}

func TestCacheMiddleware_StoresResponseOnMiss(t *testing.T) {
	var storedBody []byte
	var storedTTL time.Duration
	cache := &fakeCache{
		setFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			storedBody = append([]byte(nil), value...)
			storedTTL = ttl
			return nil
		},
	}
	mw := NewCacheMiddleware(cache, 30*time.Second)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})).ServeHTTP(rr, req)

	if string(storedBody) != `[]` {
		t.Fatalf("expected response body to be stored, got %s", string(storedBody))
	}
	if storedTTL != 30*time.Second {
		t.Fatalf("expected configured TTL to be used, got %s", storedTTL)
	}
}

func TestCacheMiddleware_SkipsNonGetRequests(t *testing.T) {
	cache := &fakeCache{
		getFn: func(ctx context.Context, key string) ([]byte, error) {
			t.Fatalf("cache should not be consulted for POST requests")
			return nil, nil
		},
	}
	mw := NewCacheMiddleware(cache, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString(`{}`))
	rr := httptest.NewRecorder()

	called := false
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if !called {
		t.Fatalf("expected next handler to be called")
	}
}

func TestCacheMiddleware_DoesNotStoreErrorResponses(t *testing.T) {
	var stored bool
	cache := &fakeCache{
		setFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			stored = true
			return nil
		},
	}
	mw := NewCacheMiddleware(cache, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})).ServeHTTP(rr, req)

	if stored {
		t.Fatalf("expected error responses not to be cached")
	}
}
