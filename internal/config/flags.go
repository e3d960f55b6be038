package config

import "github.com/spf13/pflag"

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"log-level":             keyLogLevel,
	"profile":               keyProfile,
	"display-mode-mapping":  keyDisplayModeMappings,
	"filter-display-modes":  keyFilterDisplayModes,
	"accelerated-transform": keyAcceleratedTransform,
	"hardware-abstraction":  keyHardwareAbstraction,
	"journal":               keyJournal,
	"journal-db":            keyJournalDB,
	"journal-backup-dir":    keyJournalBackupDir,
	"journal-batch-size":    keyJournalBatchSize,
	"journal-batch-timeout": keyJournalBatchTimeout,
}

// RegisterFlags adds every configuration flag to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(flagConfig, "", "Configuration file (default "+defaultConfigPath+")")
	fs.String("log-level", DefaultLogLevel, "Log level: debug, info, warning, error")
	fs.String("profile", "", "YAML device profile for the simulated vendor backends")
	fs.StringSlice("display-mode-mapping", nil, "Display mode rename as name:renamed (repeatable)")
	fs.Bool("filter-display-modes", false, "Hide display modes without a mapping")
	fs.Bool("accelerated-transform", defaultAcceleratedTransform, "Display pipeline supports accelerated color transforms")
	fs.Bool("hardware-abstraction", defaultHardwareAbstraction, "Platform provides the bulk hardware service")
	fs.Bool("journal", false, "Record hardware writes in the journal")
	fs.String("journal-db", defaultJournalDB, "Journal database path")
	fs.String("journal-backup-dir", defaultJournalBackupDir, "Directory for journal backups")
	fs.Int("journal-batch-size", defaultJournalBatchSize, "Journal entries buffered before a flush")
	fs.Int("journal-batch-timeout", defaultJournalBatchTimeout, "Seconds between background journal flushes")
}

// WithFlags binds flags registered by RegisterFlags; flags set on the
// command line override the file and the environment
func WithFlags(fs *pflag.FlagSet) Option {
	return func(o *options) error {
		o.flags = fs
		if fs == nil {
			return nil
		}
		if f := fs.Lookup(flagConfig); f != nil && f.Changed && o.configPath == "" {
			o.configPath = f.Value.String()
		}
		return nil
	}
}
