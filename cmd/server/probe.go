package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/star-print/internal/platform/printer"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check that the configured printer accepts connections",
	Long: `Dial the configured printer once, without printing anything, and exit
with status 0 if it accepted the connection or 1 if it did not.`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Dial errors are reported on stdout; structured logs would only repeat them.
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	connector, err := printer.NewConnector(cfg.Printer, quiet)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(contextOrBackground(cmd.Context()), cfg.Printer.ConnectTimeout)
	defer cancel()

	if err := connector.Probe(ctx); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "printer %s not available\n", connector.Address())
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "printer %s available\n", connector.Address())
	return nil
}
