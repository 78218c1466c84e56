package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func wrapCmd(a *app) *cobra.Command {
	var width float64

	cmd := &cobra.Command{
		Use:   "wrap <label>",
		Short: "Wrap a single label and print one line per row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, release, err := a.wrapper()
			if err != nil {
				return err
			}
			defer release()

			lines, err := w.Wrap(args[0], width)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&width, "width", "w", 0, "矩形宽度（像素）")
	_ = cmd.MarkFlagRequired("width")
	return cmd
}
