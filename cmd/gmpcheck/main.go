// Package main provides the CLI entry point for gmpcheck.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/gmpcheck-go/internal/config"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/output"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/parser"
)

var (
	configPath   string
	outputPath   string
	format       string
	pretty       bool
	autoDetect   bool
	noDatePolicy string
	workers      int
	logLevel     string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gmpcheck [target-file] [database-file]",
		Short: "Check a product list against a GMP certificate database",
		Long: `gmpcheck reads a target list of products and a GMP certificate database
(CSV or Excel, headers anywhere in the first rows) and reports for every
product whether a valid certificate exists.`,
		Args:          cobra.ExactArgs(2),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&format, "format", "", "Output format: table, json, csv, xlsx")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().BoolVar(&autoDetect, "auto-detect", false, "Detect which file is the target list and which the database")
	rootCmd.Flags().StringVar(&noDatePolicy, "no-date-policy", "", "Status of validity text without a date: unknown, active")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Goroutines used for matching")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Explicit flags win over config
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("output") {
		cfg.Output.Path = outputPath
	}
	if flags.Changed("auto-detect") {
		cfg.AutoDetectRoles = autoDetect
	}
	if flags.Changed("no-date-policy") {
		cfg.NoDatePolicy = noDatePolicy
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	opts := optionsFromConfig(cfg, log)
	report, err := gmpcheck.CheckFiles(args[0], args[1], opts)
	if err != nil {
		return fmt.Errorf("cross-check failed: %w", err)
	}

	for _, w := range report.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}

	data, err := render(report, cfg.Output.Format)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	// Write output
	if cfg.Output.Path != "" {
		if err := os.WriteFile(cfg.Output.Path, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func optionsFromConfig(cfg *config.Config, log logrus.FieldLogger) gmpcheck.Options {
	opts := gmpcheck.DefaultOptions()
	opts.NoDatePolicy = parser.NoDatePolicy(cfg.NoDatePolicy)
	opts.HeaderScanRows = cfg.HeaderScanRows
	opts.Workers = cfg.Workers
	opts.Logger = log
	if cfg.AutoDetectRoles {
		opts.Roles = gmpcheck.RolesAuto
	}
	return opts
}

func newLogger(cfg config.LogConfig, w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(level)
	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log, nil
}

func render(report *models.Report, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case config.FormatJSON:
		var data []byte
		data, err = output.ToJSON(report, pretty)
		buf.Write(data)
		buf.WriteByte('\n')
	case config.FormatCSV:
		err = output.WriteCSV(&buf, report.Verdicts)
	case config.FormatXLSX:
		err = output.WriteXLSX(&buf, report.Verdicts)
	default:
		err = output.WriteTable(&buf, report)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
