package hardware

import (
	"sync"

	"codeberg.org/mutker/hwcaps/internal/access"
	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/journal"
	"codeberg.org/mutker/hwcaps/internal/logger"
	"codeberg.org/mutker/hwcaps/internal/resolver"
	"codeberg.org/mutker/hwcaps/internal/transform"
)

// Context carries what the process-wide Manager is built from.
type Context struct {
	Source backend.Source
	Bulk   backend.BulkService
	// Mappings are "name:renamed" display mode entries
	Mappings    []string
	FilterModes bool
	Authorizer  access.Checker
	Journal     journal.Recorder
	Logger      logger.Logger
	// HardwareAbstraction declares that the platform ships the bulk service
	HardwareAbstraction bool
}

var (
	instance     *Manager
	instanceOnce sync.Once
)

// Instance returns the process-wide Manager, building it from ctx on the
// first call. Later contexts are ignored.
func Instance(ctx Context) *Manager {
	instanceOnce.Do(func() {
		instance = NewFromContext(ctx)
	})
	return instance
}

// NewFromContext builds a Manager with its own resolver.
func NewFromContext(ctx Context) *Manager {
	log := ctx.Logger
	if log == nil {
		log = logger.Nop()
	}

	if ctx.HardwareAbstraction && ctx.Bulk == nil {
		log.Error().Msg("Unable to get hardware abstraction service")
	}

	table, rejected := transform.ParseModeMappings(ctx.Mappings)
	for _, entry := range rejected {
		log.Warn().Str("entry", entry).Msg("Ignoring malformed display mode mapping")
	}

	return New(
		resolver.New(ctx.Source, ctx.Bulk, log),
		WithModeMapping(transform.NewModeMapping(table, ctx.FilterModes)),
		WithAuthorizer(ctx.Authorizer),
		WithJournal(ctx.Journal),
		WithLogger(log),
	)
}
