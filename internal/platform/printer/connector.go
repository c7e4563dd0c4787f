// Package printer talks to a network ESC/POS printer over raw TCP.
//
// A Connector dials the configured address for every job. The returned
// Connection is owned by a single caller and must be closed by it.
package printer

import (
	"context"
	"log/slog"
	"net"

	"github.com/phrazzld/star-print/internal/config"
	"github.com/phrazzld/star-print/internal/domain"
	"github.com/phrazzld/star-print/internal/escpos"
)

// Dialer opens network connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Option configures a Connector.
type Option func(*Connector)

// WithDialer replaces the TCP dialer, mainly for tests.
func WithDialer(d Dialer) Option {
	return func(c *Connector) {
		c.dialer = d
	}
}

// Connector creates connections to one printer.
type Connector struct {
	cfg     config.PrinterConfig
	cutMode escpos.CutMode
	barcode escpos.BarcodeOptions
	dialer  Dialer
	logger  *slog.Logger
}

// NewConnector returns a Connector for the printer described by cfg.
func NewConnector(cfg config.PrinterConfig, logger *slog.Logger, opts ...Option) (*Connector, error) {
	cutMode, err := escpos.ParseCutMode(cfg.CutMode)
	if err != nil {
		return nil, err
	}
	barcode, err := barcodeOptions(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Connector{
		cfg:     cfg,
		cutMode: cutMode,
		barcode: barcode,
		dialer:  &net.Dialer{Timeout: cfg.ConnectTimeout},
		logger:  logger.With("component", "printer"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// barcodeOptions applies the configured barcode geometry over the defaults.
// Zero values keep the default.
func barcodeOptions(cfg config.PrinterConfig) (escpos.BarcodeOptions, error) {
	opts := escpos.DefaultBarcodeOptions()
	if cfg.BarcodeHeight > 0 {
		opts.Height = cfg.BarcodeHeight
	}
	if cfg.BarcodeWidth > 0 {
		opts.Width = cfg.BarcodeWidth
	}
	hri, err := escpos.ParseHRIPosition(cfg.BarcodeHRI)
	if err != nil {
		return opts, err
	}
	opts.HRI = hri
	return opts, nil
}

// Address returns the printer's host:port.
func (c *Connector) Address() string {
	return c.cfg.Address()
}

// Acquire connects to the printer and initializes it with ESC @.
//
// Any failure is returned as a *domain.UnavailableError, which matches
// domain.ErrPrinterUnavailable.
func (c *Connector) Acquire(ctx context.Context) (*Connection, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}

	pc := &Connection{
		conn:         conn,
		writeTimeout: c.cfg.WriteTimeout,
		cutFeedLines: c.cfg.CutFeedLines,
		cutMode:      c.cutMode,
		barcode:      c.barcode,
	}
	pc.w = newWriter(conn)

	if err := pc.send("initialize", escpos.Initialize()); err != nil {
		_ = pc.Close()
		c.logger.ErrorContext(ctx, "failed to initialize printer",
			"address", c.Address(),
			"error", err)
		return nil, &domain.UnavailableError{Address: c.Address(), Err: err}
	}

	c.logger.DebugContext(ctx, "connected to printer", "address", c.Address())
	return pc, nil
}

// Probe checks that the printer accepts connections without sending it
// anything.
func (c *Connector) Probe(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}

func (c *Connector) dial(ctx context.Context) (net.Conn, error) {
	addr := c.Address()

	if c.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.ConnectTimeout)
		defer cancel()
	}

	conn, err := c.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to connect to printer",
			"address", addr,
			"timeout", c.cfg.ConnectTimeout,
			"error", err)
		return nil, &domain.UnavailableError{Address: addr, Err: err}
	}
	return conn, nil
}
