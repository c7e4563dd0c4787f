package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Default values applied before the config file and environment are read.
const (
	DefaultPrinterIP       = "192.168.1.100"
	DefaultPrinterPort     = 9100
	DefaultWebPort         = 5000
	DefaultEnableDebug     = "False"
	DefaultConnectTimeout  = "10s"
	DefaultWriteTimeout    = "30s"
	DefaultMaxImageWidth   = 576
	DefaultCutFeedLines    = 6
	DefaultCutMode         = "full"
	DefaultMaxRequestBytes = 10 << 20
	DefaultBarcodeHeight   = 64
	DefaultBarcodeWidth    = 3
	DefaultBarcodeHRI      = "below"
	DefaultShutdownTimeout = "10s"

	// DefaultMaxImagePixels matches the decompression bomb limit of common
	// imaging libraries (2 * 89478485).
	DefaultMaxImagePixels = 178956970
)

var defaults = map[string]any{
	"printer_ip":        DefaultPrinterIP,
	"printer_port":      DefaultPrinterPort,
	"web_port":          DefaultWebPort,
	"enable_debug":      DefaultEnableDebug,
	"connect_timeout":   DefaultConnectTimeout,
	"write_timeout":     DefaultWriteTimeout,
	"max_image_width":   DefaultMaxImageWidth,
	"cut_feed_lines":    DefaultCutFeedLines,
	"cut_mode":          DefaultCutMode,
	"max_request_bytes": DefaultMaxRequestBytes,
	"max_image_pixels":  DefaultMaxImagePixels,
	"barcode_height":    DefaultBarcodeHeight,
	"barcode_width":     DefaultBarcodeWidth,
	"barcode_hri":       DefaultBarcodeHRI,
	"shutdown_timeout":  DefaultShutdownTimeout,
}

type loadOptions struct {
	configFile string
}

// Option customizes Load.
type Option func(*loadOptions)

// WithConfigFile reads path before the environment. The format follows the
// file extension (json, yaml, toml). An empty path is ignored.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// Load resolves the configuration from defaults, an optional config file and
// environment variables, in increasing order of precedence.
//
// Each key is read from the environment under its own lower-case name first
// and its upper-case name second, so both PRINTER_IP and printer_ip work.
// Values that do not parse and values that fail validation are errors.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key, key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", o.configFile, err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.DecodeHookFuncType(boolToString),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg.Printer.CutMode = strings.ToLower(strings.TrimSpace(cfg.Printer.CutMode))
	cfg.Printer.BarcodeHRI = strings.ToLower(strings.TrimSpace(cfg.Printer.BarcodeHRI))

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

// boolToString keeps JSON booleans such as "enable_debug": true readable as
// "true" rather than the "1" weak decoding would produce.
func boolToString(from, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.Bool && to.Kind() == reflect.String {
		return strconv.FormatBool(data.(bool)), nil
	}
	return data, nil
}
