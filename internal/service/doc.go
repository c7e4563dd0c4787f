// Package service contains the print use cases. Each operation runs one job
// against a freshly acquired printer connection: emit the content, cut the
// paper, and close the connection on every path.
//
// The service depends on the Connector and Printer interfaces rather than on
// the TCP implementation in internal/platform/printer, which is plugged in
// through NewConnectorAdapter.
package service
