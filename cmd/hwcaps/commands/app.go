package commands

import (
	"codeberg.org/mutker/hwcaps/internal/access"
	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/config"
	"codeberg.org/mutker/hwcaps/internal/feature"
	"codeberg.org/mutker/hwcaps/internal/hardware"
	"codeberg.org/mutker/hwcaps/internal/journal"
	"codeberg.org/mutker/hwcaps/internal/legacy"
	"codeberg.org/mutker/hwcaps/internal/logger"
	"codeberg.org/mutker/hwcaps/internal/pid"
	"codeberg.org/mutker/hwcaps/internal/sim"
)

// app is everything one invocation works with.
type app struct {
	cfg     *config.Config
	log     logger.Logger
	source  *sim.Source
	legacy  *legacy.Hardware
	journal journal.Recorder
	manager *hardware.Manager
}

func newApp(cfg *config.Config, log logger.Logger) (*app, error) {
	var profile *sim.Profile
	if cfg.Profile != "" {
		p, err := sim.LoadProfile(cfg.Profile)
		if err != nil {
			return nil, err
		}
		profile = p
	}

	source, err := sim.NewSource(profile)
	if err != nil {
		return nil, err
	}

	rec, err := journal.NewService(journal.Config{
		DBPath:       cfg.JournalDB,
		BackupDir:    cfg.JournalBackupDir,
		BatchSize:    cfg.JournalBatchSize,
		BatchTimeout: cfg.JournalBatchTimeout,
		Enabled:      cfg.Journal,
	}, log)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		source:  source,
		journal: rec,
	}

	var bulk backend.BulkService
	if cfg.HardwareAbstraction {
		a.legacy = legacy.NewHardware(legacy.NewMemoryTransformer(), cfg.AcceleratedTransform, log)
		if profile != nil {
			a.restoreLegacy(profile.Legacy)
		}
		bulk = legacy.NewService(a.legacy, access.AllowAll, log)
	}

	a.manager = hardware.NewFromContext(hardware.Context{
		Source:              source,
		Bulk:                bulk,
		Mappings:            cfg.DisplayModeMappings,
		FilterModes:         cfg.FilterDisplayModes,
		Authorizer:          access.AllowAll,
		Journal:             rec,
		Logger:              log,
		HardwareAbstraction: cfg.HardwareAbstraction,
	})

	return a, nil
}

func (a *app) restoreLegacy(state *sim.LegacyState) {
	if state == nil {
		return
	}
	if state.Calibration != nil {
		if _, err := a.legacy.SetDisplayColorCalibration(state.Calibration[:]); err != nil {
			a.log.Warn().Err(err).Msg("Failed to restore legacy calibration")
		}
	}
	if state.ReadingEnhancement {
		if _, err := a.legacy.Set(feature.ReadingEnhancement, true); err != nil {
			a.log.Warn().Err(err).Msg("Failed to restore reading enhancement")
		}
	}
}

// persist writes backend state back to the profile file.
func (a *app) persist() error {
	if a.cfg.Profile == "" {
		return nil
	}

	p := a.source.Profile()
	if a.legacy != nil {
		if mask, _ := a.legacy.SupportedFeatures(); mask != 0 {
			state := &sim.LegacyState{}
			if arr, _ := a.legacy.DisplayColorCalibration(); len(arr) >= 3 {
				state.Calibration = &[3]int{arr[0], arr[1], arr[2]}
			}
			state.ReadingEnhancement, _ = a.legacy.Get(feature.ReadingEnhancement)
			p.Legacy = state
		}
	}

	return p.Save(a.cfg.Profile)
}

func (a *app) close() {
	if err := a.journal.Close(); err != nil {
		a.log.Warn().Err(err).Msg("Failed to close journal")
	}
}

// mutate runs fn while holding the pid lock and saves the profile after.
func (a *app) mutate(fn func() error) error {
	path := pid.DefaultPath()
	if err := pid.Write(path); err != nil {
		return err
	}
	defer func() {
		if err := pid.Remove(path); err != nil {
			a.log.Warn().Err(err).Msg("Failed to remove pid file")
		}
	}()

	if err := fn(); err != nil {
		return err
	}
	return a.persist()
}
