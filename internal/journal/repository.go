package journal

import (
	"database/sql"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/mutker/hwcaps/internal/errors"
	"codeberg.org/mutker/hwcaps/internal/feature"
	"codeberg.org/mutker/hwcaps/internal/logger"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const (
	// bufferedBatches bounds how many batches are kept while flushes fail
	bufferedBatches = 8
	retryDelay      = time.Second
)

type repository struct {
	db            *sql.DB
	logger        logger.Logger
	cfg           Config
	mu            sync.Mutex
	buffer        []*Entry
	retryAfter    time.Time
	flushTicker   *time.Ticker
	shutdownChan  chan struct{}
	flushDoneChan chan struct{}
	closeOnce     sync.Once
}

func NewRepository(cfg Config, log logger.Logger) (Repository, error) {
	errFactory := errors.New()

	if log == nil {
		log = logger.Nop()
	}
	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.DBPath,
			Error: err.Error(),
		})
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal=WAL&_auto_vacuum=2")
	if err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "open_database",
			Error: err.Error(),
		})
	}

	backupDir := cfg.BackupDir
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(cfg.DBPath), "backups")
	}
	if err := ValidateAndUpdateSchema(db, backupDir, log); err != nil {
		db.Close()
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "schema_version",
			Error: err.Error(),
		})
	}

	log.Info().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Int("batch_size", cfg.BatchSize).
		Int("batch_timeout", cfg.BatchTimeout).
		Msg("Journal repository initialized")

	repo := &repository{
		db:            db,
		logger:        log,
		cfg:           cfg,
		buffer:        make([]*Entry, 0, max(cfg.BatchSize, 1)),
		shutdownChan:  make(chan struct{}),
		flushDoneChan: make(chan struct{}),
	}

	if cfg.BatchSize > 1 && cfg.BatchTimeout > 0 {
		repo.flushTicker = time.NewTicker(cfg.flushInterval())
		go repo.flusher()
	} else {
		close(repo.flushDoneChan)
	}

	return repo, nil
}

func (r *repository) Record(entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffer = append(r.buffer, entry)

	if len(r.buffer) < r.cfg.BatchSize || time.Now().Before(r.retryAfter) {
		r.trim()
		return nil
	}

	return r.flush()
}

func (r *repository) bufferLimit() int {
	return max(r.cfg.BatchSize, 1) * bufferedBatches
}

// trim drops the oldest entries beyond the buffer limit. Callers hold r.mu.
func (r *repository) trim() {
	excess := len(r.buffer) - r.bufferLimit()
	if excess <= 0 {
		return
	}

	r.logger.Warn().
		Int("dropped", excess).
		Str("oldest", r.buffer[0].ID.String()).
		Msg("Journal buffer full, dropping oldest entries")
	kept := copy(r.buffer, r.buffer[excess:])
	clear(r.buffer[kept:])
	r.buffer = r.buffer[:kept]
}

// Entries flushes pending entries and reads back the newest ones.
func (r *repository) Entries(limit int) ([]*Entry, error) {
	errFactory := errors.New()

	r.mu.Lock()
	err := r.flush()
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = math.MaxInt32
	}

	rows, err := r.db.Query(selectEntriesSQL, limit)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageAccess, err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var (
			id        string
			timestamp int64
			featureID int64
			operation string
			raw       []byte
			success   int
		)
		if err := rows.Scan(&id, &timestamp, &featureID, &operation, &raw, &success); err != nil {
			return nil, errFactory.Wrap(ErrStorageAccess, err)
		}

		entryID, err := uuid.Parse(id)
		if err != nil {
			return nil, errFactory.WithData(ErrStorageAccess, id)
		}
		value, err := decodeValue(raw)
		if err != nil {
			return nil, errFactory.Wrap(ErrDecodeValue, err)
		}

		entries = append(entries, &Entry{
			ID:        entryID,
			Timestamp: time.Unix(0, timestamp).UTC(),
			Feature:   feature.ID(featureID),
			Operation: Operation(operation),
			Value:     value,
			Raw:       raw,
			Success:   success == 1,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errFactory.Wrap(ErrStorageAccess, err)
	}

	return entries, nil
}

func (r *repository) Close() error {
	var closeErr error

	r.closeOnce.Do(func() {
		close(r.shutdownChan)
		if r.flushTicker != nil {
			r.flushTicker.Stop()
		}
		<-r.flushDoneChan

		// without a flusher the buffer is drained here
		r.mu.Lock()
		if err := r.flush(); err != nil {
			r.logger.Warn().Err(err).Msg("Failed to flush journal on close")
		}
		r.mu.Unlock()

		if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
			closeErr = errors.New().WithData(ErrStorageClose, struct {
				Phase string
				Error string
			}{
				Phase: "checkpoint_wal",
				Error: err.Error(),
			})
			r.db.Close()
			return
		}

		if err := r.db.Close(); err != nil {
			closeErr = errors.New().WithData(ErrStorageClose, struct {
				Phase string
				Error string
			}{
				Phase: "close_database",
				Error: err.Error(),
			})
			return
		}

		r.logger.Info().Msg("Journal repository closed gracefully")
	})

	return closeErr
}

func (r *repository) flusher() {
	defer close(r.flushDoneChan)

	for {
		select {
		case <-r.flushTicker.C:
			r.mu.Lock()
			if err := r.flush(); err != nil {
				r.logger.Warn().Err(err).Msg("Background journal flush failed")
			}
			r.mu.Unlock()
		case <-r.shutdownChan:
			return
		}
	}
}

// flush writes the buffer in one transaction. Callers hold r.mu. On
// failure the entries stay buffered for the next attempt, bounded by
// bufferLimit, and size-triggered flushes pause for retryDelay.
func (r *repository) flush() error {
	if err := r.writeBuffer(); err != nil {
		r.retryAfter = time.Now().Add(retryDelay)
		r.trim()
		return err
	}
	r.retryAfter = time.Time{}
	return nil
}

func (r *repository) writeBuffer() error {
	if len(r.buffer) == 0 {
		return nil
	}

	errFactory := errors.New()

	tx, err := r.db.Begin()
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to begin transaction")
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	stmt, err := tx.Prepare(insertEntrySQL)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to prepare statement")
		if err := tx.Rollback(); err != nil {
			r.logger.Error().Err(err).Msg("Failed to roll back transaction")
		}
		return errFactory.Wrap(ErrTransactionFailed, err)
	}
	defer stmt.Close()

	for _, entry := range r.buffer {
		raw, err := encodeValue(entry.Value)
		if err != nil {
			// an unencodable value is stored without a payload
			r.logger.Warn().Err(err).Str("operation", string(entry.Operation)).Msg("Failed to encode journal value")
			raw = nil
		}

		if _, err := stmt.Exec(
			entry.ID.String(),
			entry.Timestamp.UnixNano(),
			int64(entry.Feature),
			string(entry.Operation),
			raw,
			boolToInt(entry.Success),
		); err != nil {
			r.logger.Error().Err(err).Msg("Failed to execute insert")
			if err := tx.Rollback(); err != nil {
				r.logger.Error().Err(err).Msg("Failed to roll back transaction")
			}
			return errFactory.Wrap(ErrTransactionFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error().Err(err).Msg("Failed to commit transaction")
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	r.logger.Debug().Int("records", len(r.buffer)).Msg("Flushed journal to database")
	r.buffer = r.buffer[:0]

	return nil
}
