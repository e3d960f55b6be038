package commands

import (
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/mutker/hwcaps/internal/config"
	"codeberg.org/mutker/hwcaps/internal/errors"
	"codeberg.org/mutker/hwcaps/internal/logger"
	"codeberg.org/mutker/hwcaps/internal/printer"
	"github.com/spf13/cobra"
)

var versionString = "dev"

// NewRootCmd builds the hwcaps command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hwcaps",
		Short: "hwcaps - query and control optional device hardware features",
		Long: `hwcaps drives optional device hardware features such as display
calibration, color balance, picture adjustment, display modes, touchscreen
gestures and boolean toggles like key swap or sunlight enhancement.

Each feature is served by its per-feature vendor backend when the device has
one, otherwise by the bulk hardware service when it advertises the feature.`,
		Version: versionString,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newFeaturesCmd(),
		newSupportedCmd(),
		newGetCmd(),
		newSetCmd(),
		newCalibrationCmd(),
		newModesCmd(),
		newBalanceCmd(),
		newPictureCmd(),
		newGesturesCmd(),
		newJournalCmd(),
	)

	return rootCmd
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// run loads configuration, builds the app and runs fn with it.
func run(fn func(a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.WithFlags(cmd.Flags()))
		if err != nil {
			return fail(err)
		}
		if err := logger.Init(cfg.LogLevel, logger.IsService()); err != nil {
			return fail(err)
		}
		logger.Debug().Str("config_file", cfg.ConfigFile).Msg("Config loaded")

		a, err := newApp(cfg, logger.Default())
		if err != nil {
			return fail(err)
		}
		defer a.close()

		if err := fn(a, args); err != nil {
			return fail(err)
		}
		return nil
	}
}

// fail prints err and returns the short form for cobra.
func fail(err error) error {
	switch {
	case errors.HasCode(err, errors.ErrInvalidArgument):
		return printer.Error("Invalid argument", err.Error(), []string{"Run 'hwcaps features' to list feature names"})
	case errors.HasCode(err, errors.ErrPermissionDenied):
		return printer.Error("Permission denied", err.Error(), nil)
	case errors.HasCode(err, errors.ErrAlreadyRunning):
		return printer.Error("Another hwcaps invocation is running", err.Error(), []string{"Wait for it to finish and retry"})
	case errors.HasCode(err, errors.ErrInvalidLogLevel), errors.HasCode(err, errors.ErrInvalidConfig), errors.HasCode(err, errors.ErrReadConfig):
		return printer.Error("Invalid configuration", err.Error(), nil)
	default:
		return printer.Error("Command failed", err.Error(), nil)
	}
}

func invalidArgument(format string, a ...any) error {
	return errors.New().WithMessage(errors.ErrInvalidArgument, fmt.Sprintf(format, a...))
}

func parseState(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "enable", "enabled":
		return true, nil
	case "off", "false", "0", "disable", "disabled":
		return false, nil
	default:
		return false, invalidArgument("%q is not on or off", s)
	}
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, invalidArgument("%q is not an integer", arg)
		}
		out[i] = v
	}
	return out, nil
}

// result reports a write outcome.
func result(ok bool, what string) {
	if ok {
		printer.Success("%s\n", what)
		return
	}
	printer.Warning("%s failed or is not supported on this device\n", what)
}
