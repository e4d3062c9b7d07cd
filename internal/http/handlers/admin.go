package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/http/requestutil"
	"github.com/preston-bernstein/mlb-travel-picks/internal/logging"
	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
)

// Refresher rebuilds the dashboard on demand.
type Refresher interface {
	RefreshNow(ctx context.Context) error
}

// SnapshotRefresher refetches a range of schedule snapshots.
type SnapshotRefresher interface {
	Refresh(ctx context.Context, start, end string) (int, error)
}

// maxSnapshotSpan bounds one admin snapshot refresh.
const maxSnapshotSpan = 62

// AdminHandler exposes bearer-token guarded maintenance endpoints.
type AdminHandler struct {
	refresher Refresher
	snapshots SnapshotRefresher
	token     string
	logger    *slog.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewAdminHandler constructs an AdminHandler. snapshots may be nil when the
// on-disk cache is disabled.
func NewAdminHandler(refresher Refresher, snapshots SnapshotRefresher, token string, loc *time.Location, logger *slog.Logger) *AdminHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AdminHandler{
		refresher: refresher,
		snapshots: snapshots,
		token:     token,
		logger:    logger,
		loc:       loc,
		now:       time.Now,
	}
}

// Refresh runs a refresh cycle immediately and reports its outcome.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", logger)
		return
	}

	start := time.Now()
	if err := h.refresher.RefreshNow(r.Context()); err != nil {
		logging.Warn(logger, "admin refresh failed", "err", err)
		writeError(w, r, http.StatusBadGateway, "refresh failed", logger)
		return
	}
	logging.Info(logger, "admin refresh complete", logging.FieldDurationMS, time.Since(start).Milliseconds())
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"durationMs": time.Since(start).Milliseconds(),
	}, logger)
}

// RefreshSnapshots refetches schedule snapshots for ?start=&end= (both
// default to today).
func (h *AdminHandler) RefreshSnapshots(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.snapshots == nil {
		writeError(w, r, http.StatusServiceUnavailable, "snapshot cache not configured", logger)
		return
	}

	start, err := requestutil.DateParam(r, "start")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	end, err := requestutil.DateParam(r, "end")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	today := timeutil.Today(h.now(), h.loc)
	if start == "" {
		start = today
	}
	if end == "" {
		end = today
	}
	span, _ := timeutil.DaysBetween(start, end)
	if span < 0 || span >= maxSnapshotSpan {
		writeError(w, r, http.StatusBadRequest, "invalid date range", logger)
		return
	}

	n, err := h.snapshots.Refresh(r.Context(), start, end)
	if err != nil {
		logging.Warn(logger, "admin snapshot refresh failed", "start", start, "end", end, logging.FieldCount, n, "err", err)
		writeError(w, r, http.StatusBadGateway, "failed to fetch schedule", logger)
		return
	}
	logging.Info(logger, "admin snapshots written", "start", start, "end", end, logging.FieldCount, n)
	writeJSON(w, http.StatusOK, map[string]any{
		"start":     start,
		"end":       end,
		"snapshots": n,
		"status":    "ok",
	}, logger)
}

func (h *AdminHandler) guard(w http.ResponseWriter, r *http.Request) bool {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return false
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			logging.FieldPath, r.URL.Path,
			"client_ip", requestutil.ClientIP(r),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return false
	}
	return true
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := requestutil.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
