package escpos

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrUnknownSymbology is returned for a barcode type the encoder does not know.
	ErrUnknownSymbology = errors.New("unknown barcode symbology")

	// ErrInvalidBarcodeData is returned when the data cannot be encoded in
	// the requested symbology.
	ErrInvalidBarcodeData = errors.New("invalid barcode data")
)

// HRIPosition selects where GS H prints the human readable interpretation.
type HRIPosition byte

// HRI positions.
const (
	HRINone  HRIPosition = 0
	HRIAbove HRIPosition = 1
	HRIBelow HRIPosition = 2
	HRIBoth  HRIPosition = 3
)

// ParseHRIPosition parses "none", "above", "below" or "both". The empty
// string selects HRIBelow.
func ParseHRIPosition(s string) (HRIPosition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return HRINone, nil
	case "above":
		return HRIAbove, nil
	case "", "below":
		return HRIBelow, nil
	case "both":
		return HRIBoth, nil
	default:
		return HRINone, fmt.Errorf("unknown HRI position %q", s)
	}
}

// BarcodeOptions controls barcode geometry.
type BarcodeOptions struct {
	// Height in dots, 1-255.
	Height int
	// Width is the module width, 2-6.
	Width int
	HRI   HRIPosition
	// FontB selects font B for the HRI text instead of font A.
	FontB  bool
	Center bool
}

// DefaultBarcodeOptions returns a centered, 64 dot high barcode with module
// width 3 and the HRI text below in font A.
func DefaultBarcodeOptions() BarcodeOptions {
	return BarcodeOptions{
		Height: 64,
		Width:  3,
		HRI:    HRIBelow,
		Center: true,
	}
}

type symbology struct {
	name string
	// functionA is the GS k m value for the NUL terminated form, or -1 when
	// the symbology is only reachable through the length prefixed form.
	functionA int
	functionB byte
	minLen    int
	maxLen    int
	pattern   *regexp.Regexp
}

var symbologies = map[string]symbology{
	"UPC-A":   {name: "UPC-A", functionA: 0, functionB: 65, minLen: 11, maxLen: 12, pattern: regexp.MustCompile(`^[0-9]{11,12}$`)},
	"UPC-E":   {name: "UPC-E", functionA: 1, functionB: 66, minLen: 7, maxLen: 12, pattern: regexp.MustCompile(`^([0-9]{7,8}|[0-9]{11,12})$`)},
	"EAN13":   {name: "EAN13", functionA: 2, functionB: 67, minLen: 12, maxLen: 13, pattern: regexp.MustCompile(`^[0-9]{12,13}$`)},
	"EAN8":    {name: "EAN8", functionA: 3, functionB: 68, minLen: 7, maxLen: 8, pattern: regexp.MustCompile(`^[0-9]{7,8}$`)},
	"CODE39":  {name: "CODE39", functionA: 4, functionB: 69, minLen: 1, maxLen: 255, pattern: regexp.MustCompile(`^([0-9A-Z $%+\-./]+|\*[0-9A-Z $%+\-./]+\*)$`)},
	"ITF":     {name: "ITF", functionA: 5, functionB: 70, minLen: 2, maxLen: 255, pattern: regexp.MustCompile(`^([0-9]{2})+$`)},
	"NW7":     {name: "NW7", functionA: 6, functionB: 71, minLen: 3, maxLen: 255, pattern: regexp.MustCompile(`^[A-Da-d][0-9$+\-./:]+[A-Da-d]$`)},
	"CODE93":  {name: "CODE93", functionA: -1, functionB: 72, minLen: 1, maxLen: 255, pattern: regexp.MustCompile(`^[\x00-\x7F]+$`)},
	"CODE128": {name: "CODE128", functionA: -1, functionB: 73, minLen: 2, maxLen: 255, pattern: regexp.MustCompile(`^\{[A-C][\x00-\x7F]+$`)},
}

var symbologyAliases = map[string]string{
	"UPCA":     "UPC-A",
	"UPCE":     "UPC-E",
	"EAN-13":   "EAN13",
	"JAN13":    "EAN13",
	"EAN-8":    "EAN8",
	"JAN8":     "EAN8",
	"CODE-39":  "CODE39",
	"CODABAR":  "NW7",
	"CODE-93":  "CODE93",
	"CODE-128": "CODE128",
}

// Symbologies lists the canonical names of the supported barcode types.
func Symbologies() []string {
	return []string{"UPC-A", "UPC-E", "EAN13", "EAN8", "CODE39", "ITF", "NW7", "CODE93", "CODE128"}
}

func lookupSymbology(name string) (symbology, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if alias, ok := symbologyAliases[key]; ok {
		key = alias
	}
	sym, ok := symbologies[key]
	if !ok {
		return symbology{}, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnknownSymbology, name, strings.Join(Symbologies(), ", "))
	}
	return sym, nil
}

// normalizeData applies the symbology specific rewrites before validation.
// CODE128 data without an explicit code set prefix is sent in code set B.
func normalizeData(sym symbology, data string) string {
	if sym.name == "CODE128" && !strings.HasPrefix(data, "{") {
		return "{B" + data
	}
	return data
}

func validateData(sym symbology, data string) error {
	if n := len(data); n < sym.minLen || n > sym.maxLen {
		return fmt.Errorf("%w: %s requires %d to %d characters, got %d",
			ErrInvalidBarcodeData, sym.name, sym.minLen, sym.maxLen, n)
	}
	if !sym.pattern.MatchString(data) {
		return fmt.Errorf("%w: %q is not valid %s data", ErrInvalidBarcodeData, data, sym.name)
	}
	return nil
}

// Barcode returns the commands that print data as the named symbology with
// the given options. The error wraps ErrUnknownSymbology or
// ErrInvalidBarcodeData. Symbologies available in the NUL terminated GS k form
// use it; CODE93 and CODE128 use the length prefixed form.
func Barcode(data, symbologyName string, opts BarcodeOptions) ([]byte, error) {
	sym, err := lookupSymbology(symbologyName)
	if err != nil {
		return nil, err
	}
	data = normalizeData(sym, data)
	if err := validateData(sym, data); err != nil {
		return nil, err
	}

	font := byte(0)
	if opts.FontB {
		font = 1
	}

	out := make([]byte, 0, len(data)+24)
	if opts.Center {
		out = append(out, Align(AlignCenter)...)
	}
	out = append(out,
		GS, 'h', clampByte(opts.Height),
		GS, 'w', clampByte(opts.Width),
		GS, 'f', font,
		GS, 'H', byte(opts.HRI),
	)
	if sym.functionA >= 0 {
		out = append(out, GS, 'k', byte(sym.functionA))
		out = append(out, data...)
		out = append(out, NUL)
	} else {
		out = append(out, GS, 'k', sym.functionB, byte(len(data)))
		out = append(out, data...)
	}
	if opts.Center {
		out = append(out, Align(AlignLeft)...)
	}
	return out, nil
}
