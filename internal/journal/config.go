package journal

import (
	"time"

	"codeberg.org/mutker/hwcaps/internal/errors"
)

const (
	defaultDirPerm      = 0o755
	defaultDBPath       = "/var/lib/hwcaps/journal.db"
	defaultBackupDir    = "/var/lib/hwcaps/backups"
	defaultBatchSize    = 16
	defaultBatchTimeout = 5
)

type Config struct {
	DBPath    string
	BackupDir string
	// BatchSize is the number of entries buffered before a flush; 0 or 1
	// writes every entry immediately
	BatchSize int
	// BatchTimeout is the background flush interval in seconds; 0 disables
	// the flusher
	BatchTimeout int
	Enabled      bool
}

func DefaultConfig() Config {
	return Config{
		DBPath:       defaultDBPath,
		BackupDir:    defaultBackupDir,
		BatchSize:    defaultBatchSize,
		BatchTimeout: defaultBatchTimeout,
		Enabled:      false,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if !c.Enabled {
		return nil
	}
	if c.DBPath == "" {
		return errFactory.New(ErrInvalidDBPath)
	}
	if c.BatchSize < 0 || c.BatchTimeout < 0 {
		return errFactory.WithData(ErrInvalidConfig, struct {
			BatchSize    int
			BatchTimeout int
		}{
			BatchSize:    c.BatchSize,
			BatchTimeout: c.BatchTimeout,
		})
	}
	return nil
}

func (c Config) flushInterval() time.Duration {
	return time.Duration(c.BatchTimeout) * time.Second
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
