// Package journal records every mutating hardware call in a local sqlite
// database.
package journal

import (
	"context"

	"codeberg.org/mutker/hwcaps/internal/errors"
	"codeberg.org/mutker/hwcaps/internal/logger"
)

type service struct {
	repo Repository
	cfg  Config
}

type noopRecorder struct{}

// NewService opens the journal described by cfg. A disabled journal is a
// no-op recorder.
func NewService(cfg Config, log logger.Logger) (Recorder, error) {
	errFactory := errors.New()

	if log == nil {
		log = logger.Nop()
	}
	log = log.With("journal")

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		log.Debug().Msg("Journal disabled, using no-op recorder")
		return Noop(), nil
	}

	repo, err := NewRepository(cfg, log)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to create journal repository")
		return nil, err
	}

	log.Debug().
		Str("db_path", cfg.DBPath).
		Bool("enabled", cfg.Enabled).
		Msg("Journal initialized successfully")

	return &service{
		repo: repo,
		cfg:  cfg,
	}, nil
}

// Noop returns a recorder that discards entries.
func Noop() Recorder {
	return noopRecorder{}
}

func (s *service) Record(ctx context.Context, entry *Entry) error {
	errFactory := errors.New()

	if entry == nil {
		return errFactory.New(ErrInvalidEntry)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		if err := s.repo.Record(entry); err != nil {
			return errFactory.Wrap(ErrRecordFailed, err)
		}
	}

	return nil
}

func (s *service) Entries(ctx context.Context, limit int) ([]*Entry, error) {
	select {
	case <-ctx.Done():
		return nil, errors.New().Wrap(ErrOperationTimeout, ctx.Err())
	default:
		return s.repo.Entries(limit)
	}
}

func (s *service) Close() error {
	if err := s.repo.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}
	return nil
}

func (noopRecorder) Record(context.Context, *Entry) error { return nil }

func (noopRecorder) Entries(context.Context, int) ([]*Entry, error) { return nil, nil }

func (noopRecorder) Close() error { return nil }
