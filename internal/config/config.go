// Package config loads hwcaps settings from a file, the environment and
// command-line flags.
package config

import (
	"os"
	"strings"

	"codeberg.org/mutker/hwcaps/internal/errors"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = string(LogLevelWarning)

	defaultEnvPrefix            = "HWCAPS"
	defaultConfigPath           = "/etc/hwcaps.toml"
	defaultAcceleratedTransform = true
	defaultHardwareAbstraction  = true
	defaultJournalDB            = "/var/lib/hwcaps/journal.db"
	defaultJournalBackupDir     = "/var/lib/hwcaps/backups"
	defaultJournalBatchSize     = 16
	defaultJournalBatchTimeout  = 5

	flagConfig = "config"

	keyLogLevel             = "log_level"
	keyProfile              = "profile"
	keyDisplayModeMappings  = "display_mode_mappings"
	keyFilterDisplayModes   = "filter_display_modes"
	keyAcceleratedTransform = "accelerated_transform"
	keyHardwareAbstraction  = "hardware_abstraction"
	keyJournal              = "journal"
	keyJournalDB            = "journal_db"
	keyJournalBackupDir     = "journal_backup_dir"
	keyJournalBatchSize     = "journal_batch_size"
	keyJournalBatchTimeout  = "journal_batch_timeout"
)

type Config struct {
	LogLevel             string   `mapstructure:"log_level"`
	Profile              string   `mapstructure:"profile"`
	DisplayModeMappings  []string `mapstructure:"display_mode_mappings"`
	FilterDisplayModes   bool     `mapstructure:"filter_display_modes"`
	AcceleratedTransform bool     `mapstructure:"accelerated_transform"`
	HardwareAbstraction  bool     `mapstructure:"hardware_abstraction"`
	Journal              bool     `mapstructure:"journal"`
	JournalDB            string   `mapstructure:"journal_db"`
	JournalBackupDir     string   `mapstructure:"journal_backup_dir"`
	JournalBatchSize     int      `mapstructure:"journal_batch_size"`
	JournalBatchTimeout  int      `mapstructure:"journal_batch_timeout"`
	// ConfigFile is the file the values were read from, if any
	ConfigFile string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyLogLevel, DefaultLogLevel)
	v.SetDefault(keyProfile, "")
	v.SetDefault(keyDisplayModeMappings, []string{})
	v.SetDefault(keyFilterDisplayModes, false)
	v.SetDefault(keyAcceleratedTransform, defaultAcceleratedTransform)
	v.SetDefault(keyHardwareAbstraction, defaultHardwareAbstraction)
	v.SetDefault(keyJournal, false)
	v.SetDefault(keyJournalDB, defaultJournalDB)
	v.SetDefault(keyJournalBackupDir, defaultJournalBackupDir)
	v.SetDefault(keyJournalBatchSize, defaultJournalBatchSize)
	v.SetDefault(keyJournalBatchTimeout, defaultJournalBatchTimeout)
}

// Load reads the configuration. The file is taken from WithConfigFile or
// the --config flag, then $HWCAPS_CONFIG, then /etc/hwcaps.toml if it
// exists. Environment variables (HWCAPS_LOG_LEVEL, ...) override the file
// and flags set on the command line override both.
func Load(opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := &options{envPrefix: defaultEnvPrefix}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if o.flags != nil {
		for name, key := range flagKeys {
			f := o.flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errFactory.Wrap(errors.ErrBindFlags, err)
			}
		}
	}

	path := o.configPath
	if path == "" {
		path = os.Getenv(o.envPrefix + "_CONFIG")
	}
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}
	if c.Journal && c.JournalDB == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "journal enabled without journal_db")
	}
	if c.JournalBatchSize < 0 || c.JournalBatchTimeout < 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "journal batch settings must not be negative")
	}
	return nil
}
