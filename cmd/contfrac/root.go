package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kbolino/contfrac"
	"github.com/kbolino/contfrac/internal/config"
	"github.com/kbolino/contfrac/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "contfrac",
	Short: "contfrac does exact arithmetic on continued fractions",
	Long: `contfrac expands numbers into continued fractions and combines them with
Gosper's algorithm, without rounding intermediate values.

Operands are rationals ("254/100", "3", "2.54"), or approximations of reals
written "float:1.5" or "sqrt:2".`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// settings resolved from the config file and flags before each command runs
var (
	settings = config.Default()
	opts     []contfrac.Option
	logger   = logging.NewNop()
)

// Execute runs the command line, printing any error and exiting with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML file with default settings")
	rootCmd.PersistentFlags().Int("max-terms", contfrac.DefaultMaxTerms, "coefficients kept when expanding a float")
	rootCmd.PersistentFlags().Int("render-terms", contfrac.DefaultRenderTerms, "coefficients shown in results")
	rootCmd.PersistentFlags().Int("limit", contfrac.DefaultLimit, "coefficients read before giving up on a question")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
}

func setup(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd.Flags(), &cfg); err != nil {
		return err
	}
	level, ok := logging.ParseLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	settings = cfg
	logger = logging.New(level)
	opts = append(cfg.Options(), contfrac.WithLogger(logger))
	logger.Debug("settings", slog.Int("max_terms", cfg.MaxTerms), slog.Int("limit", cfg.Limit))
	return nil
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"max-terms", &cfg.MaxTerms},
		{"render-terms", &cfg.RenderTerms},
		{"limit", &cfg.Limit},
	}
	for _, f := range ints {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetInt(f.name)
		if err != nil {
			return fmt.Errorf("flag --%s: %w", f.name, err)
		}
		*f.dst = v
	}
	if flags.Changed("log-level") {
		v, err := flags.GetString("log-level")
		if err != nil {
			return fmt.Errorf("flag --log-level: %w", err)
		}
		cfg.LogLevel = v
	}
	return nil
}
