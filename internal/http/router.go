package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/mlb-travel-picks/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. admin may be nil, in which
// case the maintenance endpoints are not mounted.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/trends", handler.Trends)
	mux.HandleFunc("/trends/games", handler.TrendGames)
	mux.HandleFunc("/picks", handler.Picks)
	mux.HandleFunc("/picks/travel", handler.TravelPicks)
	mux.HandleFunc("/picks/sweep", handler.SweepPicks)
	mux.HandleFunc("/picks/weak-team", handler.WeakTeamPicks)
	mux.HandleFunc("/picks/krate", handler.KRatePicks)
	mux.HandleFunc("/picks/outs", handler.OutsPicks)
	mux.HandleFunc("/games", handler.Games)
	mux.HandleFunc("/backtests", handler.Backtests)
	if admin != nil {
		mux.HandleFunc("/admin/refresh", admin.Refresh)
		mux.HandleFunc("/admin/snapshots", admin.RefreshSnapshots)
	}
	return mux
}
