package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nate-sepich/strava-gh-viz/internal/id"
)

// File stores one JSON file per user under dir. The user identifier is
// slugged into a filesystem-safe key.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(userID string) string {
	return filepath.Join(f.dir, id.Key(userID)+".json")
}

func (f *File) Save(ctx context.Context, userID string, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	// Write-then-rename keeps the replace atomic for readers.
	tmp, err := os.CreateTemp(f.dir, "token-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()           //nolint:errcheck
		os.Remove(tmp.Name()) //nolint:errcheck
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := os.Rename(tmp.Name(), f.path(userID)); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func (f *File) Load(ctx context.Context, userID string) (Record, bool, error) {
	b, err := os.ReadFile(f.path(userID))
	if os.IsNotExist(err) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return Record{}, false, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return rec, true, nil
}
