package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval OPERAND [OPERATOR OPERAND]...",
	Short: "Evaluate arithmetic from left to right",
	Long: `Evaluates operands joined by +, -, * (or x) and /, strictly from left to
right. For example:

  contfrac eval 254/100 x sqrt:2 - 1 / 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		z, err := evaluate(args, opts...)
		if err != nil {
			return err
		}
		s, err := z.Render(settings.RenderTerms)
		if err != nil {
			return err
		}
		logger.Debug("evaluated", "args", args)
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}
