// Package main provides the CLI entry point for actas-go.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/siati/actas-go/pkg/actas"
	"github.com/siati/actas-go/pkg/actas/config"
	"github.com/siati/actas-go/pkg/actas/template"
)

var (
	configPath   string
	verbose      bool
	templatePath string
	outputDir    string
	only         []string
	dryRun       bool
	dateStamp    bool
	outputPath   string
	pretty       bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "actas",
		Short: "Generate equipment hand-over receipts from OCS Inventory",
		Long: `actas reads every named device from an OCS Inventory database, together
with its monitors, keyboards and pointing devices, and writes one hand-over
receipt per user from an Excel template.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "actas.yaml", "Configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging, including SQL statements")

	rootCmd.AddCommand(newGenerateCmd(), newInspectCmd(), newInitCmd())
	return rootCmd
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write one receipt per device",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template path (overrides config)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory (overrides config)")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Only generate receipts for these usernames")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the equipment rows instead of writing files")
	cmd.Flags().BoolVar(&dateStamp, "date-stamp", false, "Append the current date to every filename")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print dry-run JSON output")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if templatePath != "" {
		cfg.Template = templatePath
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if dateStamp {
		cfg.Output.DateInFilename = true
	}

	logger, err := actas.NewLogger(cfg.Logging, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := actas.DefaultOptions()
	opts.Only = only
	opts.DryRun = dryRun
	opts.Debug = verbose

	summary, err := actas.Generate(ctx, cfg, logger, opts)
	if err != nil {
		if errors.Is(err, actas.ErrNoDevices) {
			logger.Warn("no data to process")
		} else {
			logger.Error("run aborted", zap.Error(err))
		}
		return err
	}

	if dryRun {
		return printJSON(cmd, summary.Planned)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d receipts written to %s (%d failed, %d rows dropped)\n",
		len(summary.Written), cfg.Output.Dir, len(summary.Failed), summary.DroppedRows)
	return nil
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [template.xlsx]",
		Short: "List the non-empty cells and print areas of a template",
		Long: `inspect prints the cell layout of a receipt template as JSON so the
coordinates in the layout section of the configuration can be filled in.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInspect,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		path = cfg.Template
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}

	report, err := template.Inspect(path)
	if err != nil {
		return fmt.Errorf("inspection failed: %w", err)
	}

	if outputPath != "" {
		data, err := marshal(report)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	return printJSON(cmd, report)
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config already exists: %s", configPath)
			}
			if err := config.DefaultConfig().Save(configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
			return nil
		},
	}
}

func marshal(v interface{}) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := marshal(v)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
