package snapshots

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
)

// Store defines how cached schedule days are loaded.
type Store interface {
	LoadBucket(date string) (games.DateBucket, error)
	Has(date string) bool
}

// FSStore loads schedule snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadBucket reads the snapshot for date (YYYY-MM-DD).
// Files live at {basePath}/schedule/{date}.json.
func (s *FSStore) LoadBucket(date string) (games.DateBucket, error) {
	if s == nil {
		return games.DateBucket{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return games.DateBucket{}, errors.New("snapshot date required")
	}
	f, err := os.Open(BucketPath(s.basePath, date))
	if err != nil {
		return games.DateBucket{}, err
	}
	defer f.Close()

	var bucket games.DateBucket
	if err := json.NewDecoder(f).Decode(&bucket); err != nil {
		return games.DateBucket{}, err
	}
	if bucket.Date == "" {
		bucket.Date = date
	}
	return games.NewDateBucket(bucket.Date, bucket.Games), nil
}

// Has reports whether a snapshot file exists for date.
func (s *FSStore) Has(date string) bool {
	if s == nil || s.basePath == "" || date == "" {
		return false
	}
	_, err := os.Stat(BucketPath(s.basePath, date))
	return err == nil
}
