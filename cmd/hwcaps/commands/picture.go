package commands

import (
	"strconv"

	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/printer"
	"codeberg.org/mutker/hwcaps/internal/transform"
	"github.com/spf13/cobra"
)

var rangeNames = []string{"hue", "saturation", "intensity", "contrast", "saturation_threshold"}

func printHSIC(h *backend.HSIC) {
	if h == nil {
		printer.Warning("picture adjustment is not supported\n")
		return
	}
	printer.Field("hue", h.Hue)
	printer.Field("saturation", h.Saturation)
	printer.Field("intensity", h.Intensity)
	printer.Field("contrast", h.Contrast)
	printer.Field("saturation_threshold", h.SaturationThreshold)
}

func parseHSIC(args []string) (backend.HSIC, error) {
	values := make([]float32, 5)
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			return backend.HSIC{}, invalidArgument("%q is not a number", arg)
		}
		values[i] = float32(v)
	}
	return backend.HSIC{
		Hue:                 values[0],
		Saturation:          values[1],
		Intensity:           values[2],
		Contrast:            values[3],
		SaturationThreshold: values[4],
	}, nil
}

func newPictureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "picture",
		Short: "Picture adjustment (hue, saturation, intensity, contrast)",
	}

	var clamp bool
	setCmd := &cobra.Command{
		Use:   "set HUE SATURATION INTENSITY CONTRAST [SATURATION_THRESHOLD]",
		Short: "Set the picture adjustment",
		Long: `Set the picture adjustment. Values are sent as given unless --clamp is
passed, in which case each one is first moved into the device range.`,
		Args: cobra.RangeArgs(4, 5),
		RunE: run(func(a *app, args []string) error {
			hsic, err := parseHSIC(args)
			if err != nil {
				return err
			}
			return a.mutate(func() error {
				if clamp {
					ranges, err := a.manager.PictureAdjustmentRanges()
					if err != nil {
						return err
					}
					if len(ranges) == len(rangeNames) {
						hsic = transform.ClampHSIC(hsic, backend.PictureAdjustmentRanges{
							Hue:                 ranges[0],
							Saturation:          ranges[1],
							Intensity:           ranges[2],
							Contrast:            ranges[3],
							SaturationThreshold: ranges[4],
						})
					}
				}

				ok, err := a.manager.SetPictureAdjustment(hsic)
				if err != nil {
					return err
				}
				result(ok, "set picture adjustment")
				return nil
			})
		}),
	}
	setCmd.Flags().BoolVar(&clamp, "clamp", false, "Clamp values into the device ranges before writing")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show the current picture adjustment",
			Args:  cobra.NoArgs,
			RunE: run(func(a *app, _ []string) error {
				h, err := a.manager.PictureAdjustment()
				if err != nil {
					return err
				}
				printHSIC(h)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "default",
			Short: "Show the default picture adjustment",
			Args:  cobra.NoArgs,
			RunE: run(func(a *app, _ []string) error {
				h, err := a.manager.DefaultPictureAdjustment()
				if err != nil {
					return err
				}
				printHSIC(h)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "ranges",
			Short: "Show the valid range of each component",
			Args:  cobra.NoArgs,
			RunE: run(func(a *app, _ []string) error {
				ranges, err := a.manager.PictureAdjustmentRanges()
				if err != nil {
					return err
				}
				if len(ranges) == 0 {
					printer.Warning("picture adjustment is not supported\n")
					return nil
				}
				for i, r := range ranges {
					printer.Field(rangeNames[i], strconv.FormatFloat(float64(r.Lower), 'g', -1, 32)+" .. "+
						strconv.FormatFloat(float64(r.Upper), 'g', -1, 32))
				}
				return nil
			}),
		},
		setCmd,
	)

	return cmd
}
