package config

// SnapshotSyncConfig controls the on-disk schedule cache and its scheduled backfill.
type SnapshotSyncConfig struct {
	Enabled        bool
	Schedule       string // cron expression with a seconds field
	RefreshDays    int
	RetentionDays  int
	SnapshotFolder string
}

func loadSnapshotSync() SnapshotSyncConfig {
	return SnapshotSyncConfig{
		Enabled:        boolEnvOrDefault(envSnapshotSync, defaultSnapshotSync),
		Schedule:       envOrDefault(envSnapshotSchedule, defaultSnapshotSchedule),
		RefreshDays:    intEnvOrDefault(envSnapshotRefresh, defaultSnapshotRefresh),
		RetentionDays:  intEnvOrDefault(envSnapshotRetain, defaultSnapshotRetain),
		SnapshotFolder: envOrDefault(envSnapshotFolder, defaultSnapshotFolder),
	}
}
