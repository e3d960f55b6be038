package commands

import (
	"codeberg.org/mutker/hwcaps/internal/printer"
	"github.com/spf13/cobra"
)

func newCalibrationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibration",
		Short: "Display color calibration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show the current red, green and blue calibration",
			Args:  cobra.NoArgs,
			RunE: run(func(a *app, _ []string) error {
				rgb, err := a.manager.DisplayColorCalibration()
				if err != nil {
					return err
				}
				if rgb == nil {
					printer.Warning("display color calibration is not supported\n")
					return nil
				}
				printer.Field("red", rgb[0])
				printer.Field("green", rgb[1])
				printer.Field("blue", rgb[2])
				return nil
			}),
		},
		&cobra.Command{
			Use:   "range",
			Short: "Show the calibration bounds",
			Args:  cobra.NoArgs,
			RunE: run(func(a *app, _ []string) error {
				lo, err := a.manager.DisplayColorCalibrationMin()
				if err != nil {
					return err
				}
				hi, err := a.manager.DisplayColorCalibrationMax()
				if err != nil {
					return err
				}
				printer.Field("min", lo)
				printer.Field("max", hi)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "set R G B",
			Short: "Set the calibration; values are clamped into the device range",
			Args:  cobra.ExactArgs(3),
			RunE: run(func(a *app, args []string) error {
				rgb, err := parseInts(args)
				if err != nil {
					return err
				}
				return a.mutate(func() error {
					ok, err := a.manager.SetDisplayColorCalibration(rgb)
					if err != nil {
						return err
					}
					result(ok, "set calibration")
					return nil
				})
			}),
		},
	)

	return cmd
}
