package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/iho/budgeteer/internal/usecase"
)

// CacheMiddleware serves repeated GET requests from Redis for a short
// window. Keys include the full request URI, so pagination and filter
// parameters get separate entries.
type CacheMiddleware struct {
	cache usecase.Cache
	ttl   time.Duration
}

// NewCacheMiddleware creates a new CacheMiddleware.
func NewCacheMiddleware(cache usecase.Cache, ttl time.Duration) *CacheMiddleware {
	if ttl == 0 {
		ttl = 10 * time.Second
	}
	return &CacheMiddleware{cache: cache, ttl: ttl}
}

// Wrap wraps an http.Handler with response caching.
func (m *CacheMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.RequestURI()

		if cached, err := m.cache.Get(r.Context(), key); err == nil && len(cached) > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Write(cached)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode == http.StatusOK {
			m.cache.Set(r.Context(), key, recorder.body.Bytes(), m.ttl)
		}
	})
}
