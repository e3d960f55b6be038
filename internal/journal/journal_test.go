package journal_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/errors"
	"codeberg.org/mutker/hwcaps/internal/feature"
	"codeberg.org/mutker/hwcaps/internal/journal"
	"codeberg.org/mutker/hwcaps/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) journal.Config {
	t.Helper()
	dir := t.TempDir()
	return journal.Config{
		DBPath:       filepath.Join(dir, "journal.db"),
		BackupDir:    filepath.Join(dir, "backups"),
		BatchSize:    4,
		BatchTimeout: 0,
		Enabled:      true,
	}
}

func TestDisabledJournalIsNoop(t *testing.T) {
	rec, err := journal.NewService(journal.DefaultConfig(), logger.Nop())
	require.NoError(t, err)

	require.NoError(t, rec.Record(context.Background(), journal.NewEntry(feature.KeySwap, journal.OpSetEnabled, true, true)))
	entries, err := rec.Entries(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, rec.Close())
}

func TestConfigValidate(t *testing.T) {
	cfg := journal.DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Enabled = true
	cfg.DBPath = ""
	err := cfg.Validate()
	assert.True(t, errors.HasCode(err, journal.ErrInvalidDBPath))

	cfg.DBPath = "/tmp/x.db"
	cfg.BatchSize = -1
	assert.Error(t, cfg.Validate())
}

func TestRecordAndReadBack(t *testing.T) {
	rec, err := journal.NewService(testConfig(t), logger.Nop())
	require.NoError(t, err)
	defer rec.Close()

	ctx := context.Background()
	first := journal.NewEntry(feature.DisplayColorCalibration, journal.OpSetCalibration, []int{255, 128, 0}, true)
	second := journal.NewEntry(feature.DisplayModes, journal.OpSetDisplayMode, backend.DisplayMode{ID: 2, Name: "vivid"}, false)
	second.Timestamp = first.Timestamp.Add(1)

	require.NoError(t, rec.Record(ctx, first))
	require.NoError(t, rec.Record(ctx, second))

	// buffered entries are flushed before reading
	entries, err := rec.Entries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, feature.DisplayModes, entries[0].Feature)
	assert.Equal(t, journal.OpSetDisplayMode, entries[0].Operation)
	assert.False(t, entries[0].Success)

	var mode backend.DisplayMode
	require.NoError(t, entries[0].Decode(&mode))
	assert.Equal(t, backend.DisplayMode{ID: 2, Name: "vivid"}, mode)

	assert.Equal(t, first.ID, entries[1].ID)
	assert.True(t, entries[1].Success)
	var rgb []int
	require.NoError(t, entries[1].Decode(&rgb))
	assert.Equal(t, []int{255, 128, 0}, rgb)
}

func TestEntriesLimit(t *testing.T) {
	rec, err := journal.NewService(testConfig(t), logger.Nop())
	require.NoError(t, err)
	defer rec.Close()

	ctx := context.Background()
	base := journal.NewEntry(feature.KeySwap, journal.OpSetEnabled, false, true).Timestamp
	for i := 0; i < 6; i++ {
		e := journal.NewEntry(feature.KeySwap, journal.OpSetEnabled, i%2 == 0, true)
		e.Timestamp = base.Add(time.Duration(i) * time.Millisecond)
		require.NoError(t, rec.Record(ctx, e))
	}

	entries, err := rec.Entries(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Timestamp.After(entries[1].Timestamp))
	assert.Equal(t, false, entries[0].Value)
}

func TestRecordNilEntry(t *testing.T) {
	rec, err := journal.NewService(testConfig(t), logger.Nop())
	require.NoError(t, err)
	defer rec.Close()

	err = rec.Record(context.Background(), nil)
	assert.True(t, errors.HasCode(err, journal.ErrInvalidEntry))
}

func TestRecordCancelledContext(t *testing.T) {
	rec, err := journal.NewService(testConfig(t), logger.Nop())
	require.NoError(t, err)
	defer rec.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = rec.Record(ctx, journal.NewEntry(feature.KeySwap, journal.OpSetEnabled, true, true))
	assert.True(t, errors.HasCode(err, journal.ErrOperationTimeout))
}

func TestCloseFlushesBuffer(t *testing.T) {
	cfg := testConfig(t)
	rec, err := journal.NewService(cfg, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, rec.Record(context.Background(), journal.NewEntry(feature.KeySwap, journal.OpSetEnabled, true, true)))
	require.NoError(t, rec.Close())
	require.NoError(t, rec.Close())

	reopened, err := journal.NewService(cfg, logger.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.Entries(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSchemaMismatchBacksUp(t *testing.T) {
	cfg := testConfig(t)

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE schema_versions (version INTEGER PRIMARY KEY, applied_at TEXT NOT NULL);
		INSERT INTO schema_versions VALUES (99, datetime('now'));`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	rec, err := journal.NewService(cfg, logger.Nop())
	require.NoError(t, err)
	defer rec.Close()

	backups, err := os.ReadDir(cfg.BackupDir)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Contains(t, backups[0].Name(), "journal_v99_")

	db, err = sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()
	version, err := journal.GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, journal.SchemaVersion, version)
}
