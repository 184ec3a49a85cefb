package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestRequestIDGenerated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := RequestID()(func(c echo.Context) error {
		seen, _ = c.Get(RequestIDKey).(string)
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if seen == "" {
		t.Fatal("expected a generated request id on the context")
	}
	if got := rec.Header().Get(HeaderRequestID); got != seen {
		t.Fatalf("response header = %q, context id = %q", got, seen)
	}
}

func TestRequestIDHonorsIncomingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "upstream-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequestID()(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if got := rec.Header().Get(HeaderRequestID); got != "upstream-id" {
		t.Fatalf("expected upstream id to be echoed, got %q", got)
	}
}

func TestTokenBucketExhaustionAndRefill(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	b := newTokenBucket(1, 2, now)

	if ok, _ := b.take(now); !ok {
		t.Fatal("burst of 2 should allow the first request")
	}
	if ok, _ := b.take(now); !ok {
		t.Fatal("burst of 2 should allow the second request")
	}
	ok, retryAfter := b.take(now)
	if ok {
		t.Fatal("third immediate request should be rejected")
	}
	if retryAfter < 1 {
		t.Fatalf("retryAfter = %d, want at least one second", retryAfter)
	}

	// One second at 1 rps refills exactly one token.
	now = now.Add(time.Second)
	if ok, _ := b.take(now); !ok {
		t.Fatal("bucket should refill after a second")
	}
	if ok, _ := b.take(now); ok {
		t.Fatal("refill should not exceed elapsed time")
	}
}

func TestRateLimiterStoreEvictsIdleBuckets(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1}, now)

	store.bucketFor("10.0.0.1", now)
	store.bucketFor("10.0.0.2", now)
	if len(store.buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(store.buckets))
	}

	// Keep one caller active past the idle TTL, then trigger a sweep.
	later := now.Add(bucketIdleTTL)
	store.bucketFor("10.0.0.1", later).take(later)

	sweep := later.Add(sweepInterval)
	store.bucketFor("10.0.0.3", sweep)

	if _, ok := store.buckets["10.0.0.2"]; ok {
		t.Error("idle bucket should have been evicted")
	}
	if _, ok := store.buckets["10.0.0.1"]; !ok {
		t.Error("active bucket should survive the sweep")
	}
}

func TestRateLimitReturns429(t *testing.T) {
	e := echo.New()
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	newCtx := func() (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	c, _ := newCtx()
	if err := h(c); err != nil {
		t.Fatalf("first request should pass: %v", err)
	}

	c, _ = newCtx()
	err := h(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: want 429 HTTPError, got %v", err)
	}
	if got := c.Response().Header().Get("Retry-After"); got == "" {
		t.Fatal("expected Retry-After header on rejection")
	}
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	logger := newTestLogger()
	h := Recovery(logger)(func(c echo.Context) error { panic("boom") })
	err := h(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusInternalServerError {
		t.Fatalf("want 500 HTTPError, got %v", err)
	}
}
