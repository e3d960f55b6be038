package commands

import (
	"strconv"

	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/printer"
	"github.com/spf13/cobra"
)

func printMode(label string, mode *backend.DisplayMode) {
	if mode == nil {
		printer.Field(label, "none")
		return
	}
	printer.Field(label, mode.String())
}

func newModesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modes",
		Short: "Display modes",
	}

	var makeDefault bool
	setCmd := &cobra.Command{
		Use:   "set ID",
		Short: "Activate a display mode by id",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(a *app, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return invalidArgument("%q is not a mode id", args[0])
			}
			return a.mutate(func() error {
				ok, err := a.manager.SetDisplayMode(backend.DisplayMode{ID: id}, makeDefault)
				if err != nil {
					return err
				}
				result(ok, "set display mode "+args[0])
				return nil
			})
		}),
	}
	setCmd.Flags().BoolVar(&makeDefault, "default", false, "Also make the mode the boot default")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List display modes",
			Args:  cobra.NoArgs,
			RunE: run(func(a *app, _ []string) error {
				modes, err := a.manager.DisplayModes()
				if err != nil {
					return err
				}
				if modes == nil {
					printer.Warning("display modes are not supported\n")
					return nil
				}
				for _, mode := range modes {
					printer.Printf("%d\t%s\n", mode.ID, mode.Name)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "current",
			Short: "Show the active display mode",
			Args:  cobra.NoArgs,
			RunE: run(func(a *app, _ []string) error {
				mode, err := a.manager.CurrentDisplayMode()
				if err != nil {
					return err
				}
				printMode("current", mode)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "default",
			Short: "Show the default display mode",
			Args:  cobra.NoArgs,
			RunE: run(func(a *app, _ []string) error {
				mode, err := a.manager.DefaultDisplayMode()
				if err != nil {
					return err
				}
				printMode("default", mode)
				return nil
			}),
		},
		setCmd,
	)

	return cmd
}
