package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbolino/contfrac"
	"github.com/kbolino/contfrac/rational"
)

var sbCmd = &cobra.Command{
	Use:   "sb",
	Short: "Convert between rationals and Stern-Brocot paths",
}

var sbEncodeCmd = &cobra.Command{
	Use:   "encode P/Q",
	Short: "Print the Stern-Brocot path of a positive rational",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := rational.Parse(args[0])
		if err != nil {
			return err
		}
		s, err := contfrac.EncodeSternBrocot(r)
		if err != nil {
			return err
		}
		if s == "" {
			s = "(root)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

var sbDecodeCmd = &cobra.Command{
	Use:   "decode PATH",
	Short: "Print the rational at the end of a path of L and R moves",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		r, err := contfrac.DecodeSternBrocot(path)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), r)
		return nil
	},
}

func init() {
	sbCmd.AddCommand(sbEncodeCmd, sbDecodeCmd)
	rootCmd.AddCommand(sbCmd)
}
