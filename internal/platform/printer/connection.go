package printer

import (
	"bufio"
	"image"
	"net"
	"sync"
	"time"

	"github.com/phrazzld/star-print/internal/domain"
	"github.com/phrazzld/star-print/internal/escpos"
)

// Connection is an open session with the printer. It is not safe for
// concurrent use.
type Connection struct {
	conn         net.Conn
	w            *bufio.Writer
	writeTimeout time.Duration
	cutFeedLines int
	cutMode      escpos.CutMode
	barcode      escpos.BarcodeOptions

	closeOnce sync.Once
	closeErr  error
}

func newWriter(conn net.Conn) *bufio.Writer {
	return bufio.NewWriterSize(conn, 16<<10)
}

// Text prints s using code page 437.
func (c *Connection) Text(s string) error {
	payload, err := escpos.Text(s)
	if err != nil {
		return domain.NewTransmissionError("text", err)
	}
	return c.send("text", payload)
}

// Image prints img as a dithered raster. The caller sizes it to the paper.
func (c *Connection) Image(img image.Image) error {
	return c.send("image", escpos.Raster(img))
}

// Barcode prints data as the named symbology. An unknown symbology or data
// the symbology cannot encode fails the job as a *domain.TransmissionError
// carrying the encoder's message; nothing is sent for it.
func (c *Connection) Barcode(data, symbology string) error {
	payload, err := escpos.Barcode(data, symbology, c.barcode)
	if err != nil {
		return domain.NewTransmissionError("barcode", err)
	}
	return c.send("barcode", payload)
}

// Cut feeds the paper past the cutter and cuts it.
func (c *Connection) Cut() error {
	return c.send("cut", escpos.Cut(c.cutFeedLines, c.cutMode))
}

// Close closes the socket. Calling it more than once is safe.
func (c *Connection) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// send writes payload and flushes it, bounded by the write timeout.
func (c *Connection) send(op string, payload []byte) error {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return domain.NewTransmissionError(op, err)
		}
	}
	if _, err := c.w.Write(payload); err != nil {
		return domain.NewTransmissionError(op, err)
	}
	if err := c.w.Flush(); err != nil {
		return domain.NewTransmissionError(op, err)
	}
	return nil
}
