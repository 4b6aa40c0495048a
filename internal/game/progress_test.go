package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestProgressStore_MissingFileIsFresh(t *testing.T) {
	ps := NewProgressStore(filepath.Join(t.TempDir(), "progress.sav"), nil)
	p, err := ps.Load()
	require.NoError(t, err)
	assert.Equal(t, NoCheckpoint, p.ActiveCheckpoint)
}

func TestProgressStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.sav")
	ps := NewProgressStore(path, nil)
	require.NoError(t, ps.Save(Progress{ActiveCheckpoint: 3}))
	require.NoError(t, ps.Save(Progress{ActiveCheckpoint: 4}))

	p, err := NewProgressStore(path, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, 4, p.ActiveCheckpoint)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestProgressStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.sav")
	require.NoError(t, os.WriteFile(path, []byte{0xc1}, 0o644))
	p, err := NewProgressStore(path, nil).Load()
	assert.Error(t, err)
	assert.Equal(t, NoCheckpoint, p.ActiveCheckpoint)
}

func TestProgressStore_FailedSaveKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "progress.sav")
	ps := NewProgressStore(path, nil)
	require.NoError(t, ps.Save(Progress{ActiveCheckpoint: 2}))

	bad := NewProgressStore(filepath.Join(dir, "missing", "progress.sav"), nil)
	assert.Error(t, bad.Save(Progress{ActiveCheckpoint: 9}))

	p, err := ps.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, p.ActiveCheckpoint)
}

func TestProgressStore_EmptyPathDisabled(t *testing.T) {
	ps := NewProgressStore("", nil)
	assert.NoError(t, ps.Save(Progress{ActiveCheckpoint: 1}))
	p, err := ps.Load()
	require.NoError(t, err)
	assert.Equal(t, NoCheckpoint, p.ActiveCheckpoint)
}

func TestProgressStore_RecordWithoutCheckpointLoadsAsNone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.sav")
	data, err := msgpack.Marshal(map[string]any{})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p, err := NewProgressStore(path, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, NoCheckpoint, p.ActiveCheckpoint)
}

func TestProgressStore_LogsToInjectedEntry(t *testing.T) {
	log, hook := test.NewNullLogger()
	ps := NewProgressStore(filepath.Join(t.TempDir(), "progress.sav"), logrus.NewEntry(log))
	require.NoError(t, ps.Save(Progress{ActiveCheckpoint: 4}))

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "progress saved", last.Message)
	assert.Equal(t, 4, last.Data["checkpoint"])
}
