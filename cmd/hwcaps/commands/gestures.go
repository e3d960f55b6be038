package commands

import (
	"strconv"

	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/printer"
	"github.com/spf13/cobra"
)

func newGesturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gestures",
		Short: "Touchscreen gestures",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List touchscreen gestures",
			Args:  cobra.NoArgs,
			RunE: run(func(a *app, _ []string) error {
				gestures, err := a.manager.TouchscreenGestures()
				if err != nil {
					return err
				}
				if gestures == nil {
					printer.Warning("touchscreen gestures are not supported\n")
					return nil
				}
				for _, g := range gestures {
					state := "off"
					if g.Enabled {
						state = "on"
					}
					printer.Printf("%d\t%-16s key=%d\t%s\n", g.ID, g.Name, g.KeyCode, state)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "set ID on|off",
			Short: "Enable or disable a gesture",
			Args:  cobra.ExactArgs(2),
			RunE: run(func(a *app, args []string) error {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return invalidArgument("%q is not a gesture id", args[0])
				}
				enable, err := parseState(args[1])
				if err != nil {
					return err
				}

				gesture := backend.TouchscreenGesture{ID: id}
				gestures, err := a.manager.TouchscreenGestures()
				if err != nil {
					return err
				}
				for _, g := range gestures {
					if g.ID == id {
						gesture = g
						break
					}
				}

				return a.mutate(func() error {
					ok, err := a.manager.SetTouchscreenGestureEnabled(gesture, enable)
					if err != nil {
						return err
					}
					result(ok, "set gesture "+args[0])
					return nil
				})
			}),
		},
	)

	return cmd
}
