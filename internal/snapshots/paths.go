package snapshots

import (
	"fmt"
	"path/filepath"
)

const scheduleDir = "schedule"

// BucketPath builds the path to the schedule snapshot for a given date.
func BucketPath(basePath, date string) string {
	return filepath.Join(basePath, scheduleDir, fmt.Sprintf("%s.json", date))
}

func manifestPath(basePath string) string {
	return filepath.Join(basePath, "manifest.json")
}
