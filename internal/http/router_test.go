package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	appdashboard "github.com/preston-bernstein/mlb-travel-picks/internal/app/dashboard"
	"github.com/preston-bernstein/mlb-travel-picks/internal/dashboard"
	"github.com/preston-bernstein/mlb-travel-picks/internal/http/handlers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/store"
	"github.com/preston-bernstein/mlb-travel-picks/internal/testutil"
)

func newRouter(admin *handlers.AdminHandler) http.Handler {
	svc := appdashboard.NewService(store.NewMemoryStore())
	a := testutil.Team("A", "Team A")
	b := testutil.Team("B", "Team B")
	svc.Replace(dashboard.Build(dashboard.Inputs{
		Date:     "2024-05-02",
		Buckets:  testutil.Buckets(testutil.NewGame("g1", "2024-05-02", "Park A", a, b)),
		Strategy: dashboard.Strategy{LookbackDays: 7},
	}, nil))
	return NewRouter(handlers.NewHandler(svc, nil, nil), admin)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newRouter(nil)

	paths := []string{
		"/health",
		"/ready",
		"/trends",
		"/trends/games",
		"/picks",
		"/picks/travel",
		"/picks/sweep",
		"/picks/weak-team",
		"/picks/krate",
		"/picks/outs",
		"/games",
		"/backtests",
	}
	for _, path := range paths {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("route %s expected 200, got %d", path, rr.Code)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := newRouter(nil)

	for _, path := range []string{"/does-not-exist", "/admin/refresh"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rr.Code)
		}
	}
}

func TestRouterMountsAdminRoutes(t *testing.T) {
	router := newRouter(handlers.NewAdminHandler(nil, nil, "secret", nil, nil))

	for _, path := range []string{"/admin/refresh", "/admin/snapshots"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, nil))
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without token, got %d", path, rr.Code)
		}
	}
}
