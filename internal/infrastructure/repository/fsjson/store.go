package fsjson

import (
	"os"
	"path/filepath"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

// Store persists every repository over flat JSON files. The league data is
// small enough (a few MB per season) that whole-document reads and writes
// are simpler and safer than anything incremental.
type Store struct {
	layout Layout
}

func NewStore(dataDir string) *Store {
	return &Store{layout: NewLayout(dataDir)}
}

func (s *Store) Layout() Layout {
	return s.layout
}

func (s *Store) readJSON(path string, target any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return crerr.Wrapf(err, "read %s", path)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode %s", path)
	}
	return nil
}

// writeJSON writes with two-space indentation so the files stay diffable and
// readable alongside documents written by older tooling.
func (s *Store) writeJSON(path string, value any) error {
	raw, err := sonic.MarshalIndent(value, "", "  ")
	if err != nil {
		return crerr.Wrapf(err, "encode %s", path)
	}
	return s.writeRaw(path, raw)
}

func (s *Store) writeRaw(path string, raw []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return crerr.Wrapf(err, "create directory for %s", path)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return crerr.Wrapf(err, "write %s", path)
	}
	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, crerr.Wrapf(err, "stat %s", path)
}
