package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	perr "openscout/internal/platform/errors"
)

func newTestClient(baseURL string, retries int) *Client {
	c := NewClient(Options{BaseURL: baseURL, MaxRetries: retries, RetryBase: time.Millisecond})
	c.sleep = func(time.Duration) {}
	return c
}

func TestInvoke_OK(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != completePath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var in completeRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		gotPrompt = in.Prompt
		_ = json.NewEncoder(w).Encode(completeResponse{Text: `{"score": 72}`})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 1)
	out, err := c.Invoke(context.Background(), "rate this person")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if out != `{"score": 72}` {
		t.Fatalf("out = %q", out)
	}
	if gotPrompt != "rate this person" {
		t.Fatalf("prompt = %q", gotPrompt)
	}
}

func TestInvoke_RetriesTransientThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(completeResponse{Text: "ok"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 5)
	out, err := c.Invoke(context.Background(), "p")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if out != "ok" || calls.Load() != 3 {
		t.Fatalf("out=%q calls=%d", out, calls.Load())
	}
}

func TestInvoke_ExhaustedRetriesIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 2)
	_, err := c.Invoke(context.Background(), "p")
	if err == nil {
		t.Fatal("expected error")
	}
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("code = %v, want unavailable", perr.CodeOf(err))
	}
}

func TestInvoke_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 1)
	_, err := c.Invoke(context.Background(), "p")
	if !perr.IsCode(err, perr.ErrorCodeTooManyRequests) {
		t.Fatalf("code = %v, want too many requests", perr.CodeOf(err))
	}
}

func TestInvoke_ClientErrorDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 5)
	_, err := c.Invoke(context.Background(), "p")
	if err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestInvoke_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	c := newTestClient(srv.URL, 1)
	_, err := c.Invoke(ctx, "p")
	if err == nil {
		t.Fatal("expected error")
	}
	if ctx.Err() == nil {
		t.Fatal("context should be cancelled")
	}
}

func TestRetryAfter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	h := http.Header{}
	if d := retryAfter(h, now); d != 0 {
		t.Fatalf("empty header = %v", d)
	}
	h.Set("Retry-After", "7")
	if d := retryAfter(h, now); d != 7*time.Second {
		t.Fatalf("seconds form = %v", d)
	}
	h.Set("Retry-After", now.Add(30*time.Second).Format(http.TimeFormat))
	if d := retryAfter(h, now); d != 30*time.Second {
		t.Fatalf("date form = %v", d)
	}
}
