package service

import (
	"context"

	"github.com/phrazzld/star-print/internal/platform/printer"
)

// NewConnectorAdapter allows a *printer.Connector to be used where a
// Connector is expected.
func NewConnectorAdapter(connector *printer.Connector) Connector {
	return &connectorAdapter{connector: connector}
}

type connectorAdapter struct {
	connector *printer.Connector
}

// Acquire implements Connector.Acquire
func (a *connectorAdapter) Acquire(ctx context.Context) (Printer, error) {
	conn, err := a.connector.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Probe implements Connector.Probe
func (a *connectorAdapter) Probe(ctx context.Context) error {
	return a.connector.Probe(ctx)
}
