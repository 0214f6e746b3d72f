package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare X Y",
	Short: "Print whether X is less than, equal to, or greater than Y",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := parseOperand(args[0], opts...)
		if err != nil {
			return err
		}
		y, err := parseOperand(args[1], opts...)
		if err != nil {
			return err
		}
		c, err := x.Cmp(y)
		if err != nil {
			return err
		}
		rel := map[int]string{-1: "<", 0: "=", 1: ">"}[c]
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", args[0], rel, args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
