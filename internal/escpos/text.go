package escpos

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// codePagePC437 is the ESC t table number of code page 437, the power-on
// default of nearly every ESC/POS printer.
const codePagePC437 byte = 0

// Text selects code page 437 and returns s encoded for it. Runes with no
// CP437 equivalent are replaced by the code page's substitution byte.
func Text(s string) ([]byte, error) {
	enc := encoding.ReplaceUnsupported(charmap.CodePage437.NewEncoder())
	body, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode text for code page 437: %w", err)
	}
	out := make([]byte, 0, len(body)+3)
	out = append(out, ESC, 't', codePagePC437)
	return append(out, body...), nil
}
