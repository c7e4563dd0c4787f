package main

import (
	"github.com/phrazzld/star-print/internal/config"
	"github.com/spf13/cobra"
)

var (
	// configPath is the --config flag value.
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "star-print",
	Short: "HTTP bridge to a network ESC/POS receipt printer",
	Long: `star-print accepts print jobs over HTTP (text, base64 images and barcodes)
and forwards each one to a receipt printer listening on a raw TCP port.

Settings are read from the environment (printer_ip, printer_port, web_port,
enable_debug, ...) and optionally from a config file given with --config.
Running without a subcommand starts the server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a JSON, YAML or TOML config file (environment variables take precedence)")
}

func loadConfig() (*config.Config, error) {
	return config.Load(config.WithConfigFile(configPath))
}
