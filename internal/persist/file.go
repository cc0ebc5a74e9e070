package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// File persists the projection as a single JSON document. The snapshot holds
// a bearer token, so the file is created user-readable only.
type File struct {
	path   string
	logger *zap.Logger
}

// NewFile builds a File persister writing to path.
func NewFile(path string, logger *zap.Logger) *File {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &File{path: path, logger: logger}
}

func (f *File) Save(p Projection) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot. A missing or unparseable file yields ok=false so
// the store starts from the default empty state.
func (f *File) Load() (Projection, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Projection{}, false, nil
		}
		return Projection{}, false, fmt.Errorf("read snapshot: %w", err)
	}
	var p Projection
	if err := json.Unmarshal(data, &p); err != nil {
		f.logger.Warn("discarding corrupt snapshot", zap.String("path", f.path), zap.Error(err))
		return Projection{}, false, nil
	}
	return p, true, nil
}
