package commands

import (
	"codeberg.org/mutker/hwcaps/internal/printer"
	"github.com/spf13/cobra"
)

func newBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Color balance",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "range",
			Short: "Show the color balance range",
			Args:  cobra.NoArgs,
			RunE: run(func(a *app, _ []string) error {
				r, err := a.manager.ColorBalanceRange()
				if err != nil {
					return err
				}
				printer.Field("lower", r.Lower)
				printer.Field("upper", r.Upper)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "get",
			Short: "Show the color balance",
			Args:  cobra.NoArgs,
			RunE: run(func(a *app, _ []string) error {
				v, err := a.manager.ColorBalance()
				if err != nil {
					return err
				}
				printer.Printf("%d\n", v)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "set VALUE",
			Short: "Set the color balance",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(a *app, args []string) error {
				values, err := parseInts(args)
				if err != nil {
					return err
				}
				return a.mutate(func() error {
					ok, err := a.manager.SetColorBalance(values[0])
					if err != nil {
						return err
					}
					result(ok, "set color balance")
					return nil
				})
			}),
		},
	)

	return cmd
}
