// Package domain contains the print job entities and the error kinds shared
// by the service and API layers. It has no knowledge of HTTP or of the
// printer wire protocol.
package domain
