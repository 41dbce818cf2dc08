package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func serve(t *testing.T, deps Deps, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := buildRouter(nil, deps)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(t, Deps{}, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	cases := []struct {
		name string
		deps Deps
		want int
	}{
		{"no store", Deps{}, http.StatusServiceUnavailable},
		{"store down", Deps{Store: stubPinger{err: errors.New("dial tcp: refused")}}, http.StatusServiceUnavailable},
		{"store up", Deps{Store: stubPinger{}}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, tc.deps, "/readyz")
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("chatshop_events_total 1\n"))
	})

	rec := serve(t, Deps{Metrics: metrics}, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "chatshop_events_total") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	rec = serve(t, Deps{}, "/metrics")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a metrics handler, got %d", rec.Code)
	}
}
