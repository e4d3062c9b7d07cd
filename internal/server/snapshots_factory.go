package server

import (
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/config"
	"github.com/preston-bernstein/mlb-travel-picks/internal/http/handlers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/providers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/snapshots"
)

type snapshotComponents struct {
	archive *snapshots.Archive
	syncer  *snapshots.Syncer
	// refresher is nil when the on-disk cache is disabled.
	refresher handlers.SnapshotRefresher
}

// buildSnapshots wires the on-disk schedule cache. When sync is disabled the
// archive passes every window straight through to the provider.
func buildSnapshots(cfg config.Config, provider providers.ScheduleProvider, loc *time.Location, logger *slog.Logger) snapshotComponents {
	if !cfg.Snapshots.Enabled {
		return snapshotComponents{archive: snapshots.NewArchive(provider, nil, nil, loc, logger)}
	}

	basePath := cfg.Snapshots.SnapshotFolder
	writer := snapshots.NewWriter(basePath, cfg.Snapshots.RetentionDays)
	archive := snapshots.NewArchive(provider, snapshots.NewFSStore(basePath), writer, loc, logger)
	syncer := snapshots.NewSyncer(archive, snapshots.SyncConfig{
		Enabled:     true,
		Schedule:    cfg.Snapshots.Schedule,
		RefreshDays: cfg.Snapshots.RefreshDays,
		SeasonStart: cfg.SeasonStart,
	}, loc, logger)

	return snapshotComponents{
		archive:   archive,
		syncer:    syncer,
		refresher: archive,
	}
}
