package game

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Garsondee/Boiling-Point/internal/logger"
)

// NoCheckpoint marks a progress record with no activated checkpoint.
const NoCheckpoint = -1

// Progress is the state carried between sessions.
type Progress struct {
	ActiveCheckpoint int `msgpack:"active_checkpoint"`
}

// ProgressStore persists Progress as a msgpack file.
type ProgressStore struct {
	path string
	log  *logrus.Entry
}

// NewProgressStore returns a store backed by path. An empty path disables
// persistence: Load returns a fresh record and Save is a no-op. A nil log
// drops the store's messages.
func NewProgressStore(path string, log *logrus.Entry) *ProgressStore {
	if log == nil {
		log = logger.Discard()
	}
	return &ProgressStore{path: path, log: log}
}

// Path returns the backing file.
func (ps *ProgressStore) Path() string { return ps.path }

// Load reads the saved record. A missing file is a fresh start, not an error.
func (ps *ProgressStore) Load() (Progress, error) {
	fresh := Progress{ActiveCheckpoint: NoCheckpoint}
	if ps.path == "" {
		return fresh, nil
	}
	data, err := os.ReadFile(ps.path)
	if errors.Is(err, os.ErrNotExist) {
		return fresh, nil
	}
	if err != nil {
		return fresh, fmt.Errorf("read progress %s: %w", ps.path, err)
	}
	p := fresh
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return fresh, fmt.Errorf("decode progress %s: %w", ps.path, err)
	}
	return p, nil
}

// Save replaces the saved record. A failed save leaves the previous file as it was.
func (ps *ProgressStore) Save(p Progress) error {
	if ps.path == "" {
		return nil
	}
	data, err := msgpack.Marshal(&p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := writeFileAtomic(ps.path, data); err != nil {
		ps.log.WithError(err).WithField("path", ps.path).Warn("progress save failed, previous save kept")
		return err
	}
	ps.log.WithFields(logrus.Fields{
		"path":       ps.path,
		"checkpoint": p.ActiveCheckpoint,
	}).Info("progress saved")
	return nil
}
