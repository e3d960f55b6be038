package commands

import (
	"strings"

	"codeberg.org/mutker/hwcaps/internal/feature"
	"codeberg.org/mutker/hwcaps/internal/printer"
	"github.com/spf13/cobra"
)

func newFeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List every feature and whether this device supports it",
		Args:  cobra.NoArgs,
		RunE: run(func(a *app, _ []string) error {
			for _, id := range feature.All() {
				supported, err := a.manager.IsSupported(id)
				if err != nil {
					return err
				}
				kind, _ := feature.KindOf(id)
				state := "-"
				if supported {
					state = "supported"
				}
				printer.Printf("%-26s %-19s %s\n", id.Short(), kind, state)
			}

			mask, err := a.manager.SupportedFeatures()
			if err != nil {
				return err
			}
			printer.Println()
			printer.Field("mask", strings.ToLower(mask.String()))
			return nil
		}),
	}
}

func newSupportedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "supported NAME",
		Short: "Report whether a feature is supported",
		Long: `Report whether a feature is supported. NAME is either a symbolic
FEATURE_* name or a short name such as key-swap.`,
		Args: cobra.ExactArgs(1),
		RunE: run(func(a *app, args []string) error {
			var (
				supported bool
				err       error
			)
			if strings.HasPrefix(args[0], "FEATURE_") {
				supported, err = a.manager.IsSupportedName(args[0])
			} else {
				var id feature.ID
				if id, err = feature.Parse(args[0]); err == nil {
					supported, err = a.manager.IsSupported(id)
				}
			}
			if err != nil {
				return err
			}
			printer.Printf("%t\n", supported)
			return nil
		}),
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show whether a boolean feature is enabled",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(a *app, args []string) error {
			id, err := feature.Parse(args[0])
			if err != nil {
				return err
			}
			enabled, err := a.manager.Get(id)
			if err != nil {
				return err
			}
			printer.Printf("%t\n", enabled)
			return nil
		}),
	}
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME on|off",
		Short: "Enable or disable a boolean feature",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(a *app, args []string) error {
			id, err := feature.Parse(args[0])
			if err != nil {
				return err
			}
			enable, err := parseState(args[1])
			if err != nil {
				return err
			}
			return a.mutate(func() error {
				ok, err := a.manager.Set(id, enable)
				if err != nil {
					return err
				}
				result(ok, "set "+id.Short())
				return nil
			})
		}),
	}
}
