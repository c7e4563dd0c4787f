package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/star-print/internal/config"
	"github.com/phrazzld/star-print/internal/platform/metrics"
	"github.com/phrazzld/star-print/internal/platform/printer"
	"github.com/phrazzld/star-print/internal/service"
)

// application holds the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	metrics      *metrics.Metrics
	connector    *printer.Connector
	printService service.PrintService
}

// newApplication wires the printer connector, metrics and print service for
// cfg. Nothing is dialed until the first request.
func newApplication(cfg *config.Config, logger *slog.Logger, opts ...printer.Option) (*application, error) {
	connector, err := printer.NewConnector(cfg.Printer, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create printer connector: %w", err)
	}

	m := metrics.New()

	printService, err := service.NewPrintService(
		service.NewConnectorAdapter(connector),
		logger,
		service.WithMaxImageWidth(cfg.Printer.MaxImageWidth),
		service.WithMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create print service: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       logger,
		metrics:      m,
		connector:    connector,
		printService: printService,
	}, nil
}
