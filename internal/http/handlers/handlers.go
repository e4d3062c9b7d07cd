package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"

	appdashboard "github.com/preston-bernstein/mlb-travel-picks/internal/app/dashboard"
	"github.com/preston-bernstein/mlb-travel-picks/internal/http/requestutil"
	"github.com/preston-bernstein/mlb-travel-picks/internal/outs"
	"github.com/preston-bernstein/mlb-travel-picks/internal/poller"
	"github.com/preston-bernstein/mlb-travel-picks/internal/travel"
	"github.com/preston-bernstein/mlb-travel-picks/internal/trends"
)

// Handler serves the read API over the current dashboard snapshot.
type Handler struct {
	svc      *appdashboard.Service
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the
// service is always reported ready.
func NewHandler(svc *appdashboard.Service, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether a snapshot has been built and refreshes are succeeding.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]any{"status": "ready", "refresh": status}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Trends returns the per-label aggregates and matchup comparisons.
func (h *Handler) Trends(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serve(w, r, func() (any, error) { return h.svc.Trends() })
}

// TrendGames returns the completed games behind a trend.
// Query: type=<travel label>, comparison=<"A vs B">, team=<team id>.
func (h *Handler) TrendGames(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serve(w, r, func() (any, error) {
		q := r.URL.Query()
		f := trends.Filter{
			Comparison: strings.TrimSpace(q.Get("comparison")),
			TeamID:     strings.TrimSpace(q.Get("team")),
		}
		if raw := strings.TrimSpace(q.Get("type")); raw != "" {
			label, err := travel.ParseLabel(raw)
			if err != nil {
				return nil, badRequest(err)
			}
			f.Label = &label
		}
		gs, err := h.svc.TrendGames(f)
		if errors.Is(err, trends.ErrUntrackedLabel) || errors.Is(err, trends.ErrUnknownMatchup) {
			return nil, badRequest(err)
		}
		if err != nil {
			return nil, err
		}
		return map[string]any{"count": len(gs), "games": gs}, nil
	})
}

// Picks returns every pick list.
func (h *Handler) Picks(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serve(w, r, func() (any, error) { return h.svc.Picks() })
}

// TravelPicks returns the travel-advantage picks.
func (h *Handler) TravelPicks(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serve(w, r, func() (any, error) {
		p, err := h.svc.Picks()
		return pickList(p.Date, p.Travel), err
	})
}

// SweepPicks returns the fade-the-sweep picks.
func (h *Handler) SweepPicks(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serve(w, r, func() (any, error) {
		p, err := h.svc.Picks()
		return pickList(p.Date, p.Sweep), err
	})
}

// WeakTeamPicks returns the weak-team run-line fades.
func (h *Handler) WeakTeamPicks(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serve(w, r, func() (any, error) {
		p, err := h.svc.Picks()
		return pickList(p.Date, p.WeakTeam), err
	})
}

// KRatePicks returns the strikeout-rate under opportunities.
func (h *Handler) KRatePicks(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serve(w, r, func() (any, error) {
		p, err := h.svc.Picks()
		return pickList(p.Date, p.KRate), err
	})
}

// OutsPicks returns the starter outs projections. With ?bets=true only the
// projections that take a side are listed.
func (h *Handler) OutsPicks(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serve(w, r, func() (any, error) {
		betsOnly := false
		if raw := strings.TrimSpace(r.URL.Query().Get("bets")); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, badRequest(fmt.Errorf("invalid bets flag %q", raw))
			}
			betsOnly = v
		}
		p, err := h.svc.Picks()
		if err != nil {
			return nil, err
		}
		list := p.Outs
		if betsOnly {
			list = []outs.Projection{}
			for _, proj := range p.Outs {
				if proj.IsBet() {
					list = append(list, proj)
				}
			}
		}
		return pickList(p.Date, list), nil
	})
}

// Games returns the classified games for ?date=, defaulting to the snapshot date.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serve(w, r, func() (any, error) {
		date, err := requestutil.DateParam(r, "date")
		if err != nil {
			return nil, badRequest(err)
		}
		date, gs, err := h.svc.Games(date)
		if err != nil {
			return nil, err
		}
		return map[string]any{"date": date, "games": gs}, nil
	})
}

// Backtests returns the season replays of the fade strategies.
func (h *Handler) Backtests(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serve(w, r, func() (any, error) { return h.svc.Backtests() })
}

func pickList[T any](date string, list []T) map[string]any {
	return map[string]any{"date": date, "count": len(list), "picks": list}
}

type requestError struct{ err error }

func (e requestError) Error() string { return e.err.Error() }

func badRequest(err error) error { return requestError{err: err} }

// serve runs a GET query and maps its error to a status code.
func (h *Handler) serve(w nethttp.ResponseWriter, r *nethttp.Request, fn func() (any, error)) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	payload, err := fn()
	var reqErr requestError
	switch {
	case err == nil:
		writeJSON(w, nethttp.StatusOK, payload, logger)
	case errors.As(err, &reqErr):
		writeError(w, r, nethttp.StatusBadRequest, reqErr.Error(), logger)
	case errors.Is(err, appdashboard.ErrNotReady):
		writeError(w, r, nethttp.StatusServiceUnavailable, err.Error(), logger)
	default:
		writeError(w, r, nethttp.StatusInternalServerError, "internal error", logger)
	}
}
