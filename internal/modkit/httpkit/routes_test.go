package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "openscout/internal/platform/net/http"
)

func newRouter() Router { return phttp.AdaptChi(chi.NewRouter()) }

func tagHeader(name string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Stack", name)
			next.ServeHTTP(w, r)
		})
	}
}

func get(t *testing.T, r Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMountUnderPrefix(t *testing.T) {
	r := newRouter()
	MountUnder(r, "/candidates", []Middleware{tagHeader("cand")}, func(sub Router) {
		GetJSON(sub, "/ping", func(Request) (any, error) { return "pong", nil })
	})

	rec := get(t, r, "/candidates/ping")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Stack") != "cand" {
		t.Fatal("middleware did not run on the sub router")
	}

	// middleware stays scoped to the prefix
	r2 := newRouter()
	MountUnder(r2, "/scoped", []Middleware{tagHeader("s")}, func(sub Router) {
		GetJSON(sub, "/in", func(Request) (any, error) { return nil, nil })
	})
	GetJSON(r2, "/out", func(Request) (any, error) { return nil, nil })

	if rec := get(t, r2, "/out"); rec.Header().Get("X-Stack") != "" {
		t.Fatal("middleware leaked outside its prefix")
	}
}

func TestMountUnderEmptyPrefix(t *testing.T) {
	r := newRouter()
	MountUnder(r, "", []Middleware{tagHeader("root")}, func(sub Router) {
		GetJSON(sub, "/here", func(Request) (any, error) { return nil, nil })
	})

	rec := get(t, r, "/here")
	if rec.Code != http.StatusOK || rec.Header().Get("X-Stack") != "root" {
		t.Fatalf("status = %d, header = %q", rec.Code, rec.Header().Get("X-Stack"))
	}
}

func TestMountAPIV1(t *testing.T) {
	r := newRouter()
	MountAPIV1(r, nil, func(api Router) {
		GetJSON(api, "/healthz", func(Request) (any, error) { return map[string]string{"status": "ok"}, nil })
	})

	if rec := get(t, r, "/api/v1/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec := get(t, r, "/healthz"); rec.Code != http.StatusNotFound {
		t.Fatalf("unprefixed path should 404, got %d", rec.Code)
	}
}
