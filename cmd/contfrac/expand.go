package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand VALUE",
	Short: "Print the continued fraction of a value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := parseOperand(args[0], opts...)
		if err != nil {
			return err
		}
		n, err := cmd.Flags().GetInt("terms")
		if err != nil {
			return err
		}
		if n <= 0 {
			n = settings.RenderTerms
		}
		s, err := x.Render(n)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	expandCmd.Flags().Int("terms", 0, "coefficients to show (default from --render-terms)")
	rootCmd.AddCommand(expandCmd)
}
