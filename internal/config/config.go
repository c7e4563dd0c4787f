package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
// Groups are squashed so every key lives at the top level.
type Config struct {
	Printer PrinterConfig `mapstructure:",squash"`
	Server  ServerConfig  `mapstructure:",squash"`
}

// PrinterConfig contains the printer address and job formatting settings.
type PrinterConfig struct {
	IP             string        `mapstructure:"printer_ip" validate:"required,hostname_rfc1123|ip"`
	Port           int           `mapstructure:"printer_port" validate:"gt=0,lt=65536"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" validate:"gt=0"`
	// WriteTimeout bounds each transmission. Zero disables the deadline.
	WriteTimeout  time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	MaxImageWidth int           `mapstructure:"max_image_width" validate:"gt=0,lte=65535"`
	CutFeedLines  int           `mapstructure:"cut_feed_lines" validate:"gte=0,lte=255"`
	CutMode       string        `mapstructure:"cut_mode" validate:"oneof=full partial"`
	// MaxImagePixels caps width*height of a decoded image payload.
	MaxImagePixels int `mapstructure:"max_image_pixels" validate:"gt=0"`

	BarcodeHeight int    `mapstructure:"barcode_height" validate:"gte=1,lte=255"`
	BarcodeWidth  int    `mapstructure:"barcode_width" validate:"gte=2,lte=6"`
	BarcodeHRI    string `mapstructure:"barcode_hri" validate:"oneof=none above below both"`
}

// Address returns the printer's host:port.
func (c PrinterConfig) Address() string {
	return net.JoinHostPort(c.IP, strconv.Itoa(c.Port))
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port int `mapstructure:"web_port" validate:"gt=0,lt=65536"`
	// EnableDebug is kept as text; only "true" in any case turns debug on.
	EnableDebug     string        `mapstructure:"enable_debug"`
	MaxRequestBytes int64         `mapstructure:"max_request_bytes" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// Debug reports whether debug logging and request logging are enabled.
func (c ServerConfig) Debug() bool {
	return strings.EqualFold(c.EnableDebug, "true")
}

// ListenAddr returns the address the HTTP server binds, on all interfaces.
func (c ServerConfig) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}
