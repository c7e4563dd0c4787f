package printer_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"net"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/star-print/internal/config"
	"github.com/phrazzld/star-print/internal/domain"
	"github.com/phrazzld/star-print/internal/escpos"
	"github.com/phrazzld/star-print/internal/platform/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPrinter accepts TCP connections and records everything each one sends
// until it is closed.
type stubPrinter struct {
	ln       net.Listener
	received chan []byte
}

func newStubPrinter(t *testing.T) *stubPrinter {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &stubPrinter{ln: ln, received: make(chan []byte, 8)}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				data, _ := io.ReadAll(conn)
				s.received <- data
			}()
		}
	}()
	t.Cleanup(func() { ln.Close() })
	return s
}

func (s *stubPrinter) config() config.PrinterConfig {
	return testConfig(s.ln.Addr().(*net.TCPAddr).Port)
}

func (s *stubPrinter) next(t *testing.T) []byte {
	t.Helper()
	select {
	case data := <-s.received:
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("stub printer received no connection")
		return nil
	}
}

func testConfig(port int) config.PrinterConfig {
	return config.PrinterConfig{
		IP:             "127.0.0.1",
		Port:           port,
		ConnectTimeout: time.Second,
		WriteTimeout:   time.Second,
		MaxImageWidth:  576,
		CutFeedLines:   6,
		CutMode:        "full",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newConnector(t *testing.T, cfg config.PrinterConfig, opts ...printer.Option) *printer.Connector {
	t.Helper()
	c, err := printer.NewConnector(cfg, discardLogger(), opts...)
	require.NoError(t, err)
	return c
}

func TestConnectionTextAndCut(t *testing.T) {
	stub := newStubPrinter(t)
	connector := newConnector(t, stub.config())

	conn, err := connector.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, conn.Text("Hello\n"))
	require.NoError(t, conn.Cut())
	require.NoError(t, conn.Close())

	var want []byte
	want = append(want, 0x1B, '@')
	want = append(want, 0x1B, 't', 0)
	want = append(want, "Hello\n"...)
	want = append(want, 0x1B, 'd', 6, 0x1D, 'V', 0)
	assert.Equal(t, want, stub.next(t))
}

func TestConnectionPartialCut(t *testing.T) {
	stub := newStubPrinter(t)
	cfg := stub.config()
	cfg.CutMode = "partial"
	cfg.CutFeedLines = 3
	connector := newConnector(t, cfg)

	conn, err := connector.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, conn.Cut())
	require.NoError(t, conn.Close())

	assert.Equal(t, []byte{0x1B, '@', 0x1B, 'd', 3, 0x1D, 'V', 1}, stub.next(t))
}

func TestConnectionImage(t *testing.T) {
	stub := newStubPrinter(t)
	connector := newConnector(t, stub.config())

	conn, err := connector.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, conn.Image(image.NewGray(image.Rect(0, 0, 16, 4))))
	require.NoError(t, conn.Close())

	data := stub.next(t)
	require.True(t, bytes.HasPrefix(data, []byte{0x1B, '@', 0x1D, 'v', '0', 0, 2, 0, 4, 0}), "% x", data)
	assert.Len(t, data, 2+8+2*4)
}

func TestConnectionBarcode(t *testing.T) {
	stub := newStubPrinter(t)
	connector := newConnector(t, stub.config())

	conn, err := connector.Acquire(context.Background())
	require.NoError(t, err)

	err = conn.Barcode("not-digits", "EAN13")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransmission)
	assert.ErrorIs(t, err, escpos.ErrInvalidBarcodeData)
	assert.Equal(t, `invalid barcode data: "not-digits" is not valid EAN13 data`, err.Error())

	err = conn.Barcode("123", "QR")
	assert.ErrorIs(t, err, domain.ErrTransmission)
	assert.ErrorIs(t, err, escpos.ErrUnknownSymbology)

	require.NoError(t, conn.Barcode("12345", "CODE39"))
	require.NoError(t, conn.Close())

	data := stub.next(t)
	assert.True(t, bytes.Contains(data, []byte{0x1D, 'k', 4, '1', '2', '3', '4', '5', 0}), "% x", data)
	assert.False(t, bytes.Contains(data, []byte("not-digits")), "rejected barcode must not be sent")
}

func TestConnectionBarcodeGeometryFromConfig(t *testing.T) {
	stub := newStubPrinter(t)
	cfg := stub.config()
	cfg.BarcodeHeight = 80
	cfg.BarcodeWidth = 2
	cfg.BarcodeHRI = "above"
	connector := newConnector(t, cfg)

	conn, err := connector.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, conn.Barcode("1", "CODE39"))
	require.NoError(t, conn.Close())

	data := stub.next(t)
	want := []byte{0x1D, 'h', 80, 0x1D, 'w', 2, 0x1D, 'f', 0, 0x1D, 'H', 1, 0x1D, 'k', 4, '1', 0}
	assert.True(t, bytes.Contains(data, want), "% x", data)
}

func TestAcquireUnavailable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	connector := newConnector(t, testConfig(port))

	conn, err := connector.Acquire(context.Background())
	require.Error(t, err)
	assert.Nil(t, conn)
	assert.ErrorIs(t, err, domain.ErrPrinterUnavailable)

	var unavailable *domain.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, connector.Address(), unavailable.Address)
}

type dialerFunc func(ctx context.Context, network, address string) (net.Conn, error)

func (f dialerFunc) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	return f(ctx, network, address)
}

func TestAcquireAppliesConnectTimeout(t *testing.T) {
	var sawDeadline bool
	dialer := dialerFunc(func(ctx context.Context, network, address string) (net.Conn, error) {
		_, sawDeadline = ctx.Deadline()
		assert.Equal(t, "tcp", network)
		assert.Equal(t, "192.0.2.1:9100", address)
		return nil, errors.New("i/o timeout")
	})

	cfg := testConfig(9100)
	cfg.IP = "192.0.2.1"
	connector := newConnector(t, cfg, printer.WithDialer(dialer))

	_, err := connector.Acquire(context.Background())
	assert.ErrorIs(t, err, domain.ErrPrinterUnavailable)
	assert.True(t, sawDeadline, "dial context should carry the connect timeout")
}

func TestProbe(t *testing.T) {
	stub := newStubPrinter(t)
	connector := newConnector(t, stub.config())

	require.NoError(t, connector.Probe(context.Background()))
	assert.Empty(t, stub.next(t), "probe must not send any bytes")
}

// pipeConnector returns a connector whose connections are one end of an
// in-memory pipe. serve receives the printer's end after ESC @ was read.
func pipeConnector(t *testing.T, cfg config.PrinterConfig, serve func(net.Conn)) *printer.Connector {
	t.Helper()
	dialer := dialerFunc(func(ctx context.Context, network, address string) (net.Conn, error) {
		client, server := net.Pipe()
		go func() {
			init := make([]byte, 2)
			if _, err := io.ReadFull(server, init); err != nil {
				server.Close()
				return
			}
			serve(server)
		}()
		t.Cleanup(func() { server.Close() })
		return client, nil
	})
	return newConnector(t, cfg, printer.WithDialer(dialer))
}

func TestConnectionWriteFailure(t *testing.T) {
	connector := pipeConnector(t, testConfig(9100), func(server net.Conn) {
		server.Close()
	})

	conn, err := connector.Acquire(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	err = conn.Text("Hello\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransmission)

	var te *domain.TransmissionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "text", te.Op)
}

func TestConnectionWriteTimeout(t *testing.T) {
	cfg := testConfig(9100)
	cfg.WriteTimeout = 50 * time.Millisecond

	// The printer stops reading after the init sequence.
	connector := pipeConnector(t, cfg, func(net.Conn) {})

	conn, err := connector.Acquire(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	err = conn.Cut()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransmission)
	assert.ErrorIs(t, err, os.ErrDeadlineExceeded)
}

func TestConnectionCloseIsIdempotent(t *testing.T) {
	stub := newStubPrinter(t)
	connector := newConnector(t, stub.config())

	conn, err := connector.Acquire(context.Background())
	require.NoError(t, err)

	require.NoError(t, conn.Close())
	assert.NoError(t, conn.Close())

	err = conn.Text("late")
	assert.ErrorIs(t, err, domain.ErrTransmission)
}

func TestNewConnectorRejectsUnknownHRIPosition(t *testing.T) {
	cfg := testConfig(9100)
	cfg.BarcodeHRI = "sideways"

	_, err := printer.NewConnector(cfg, discardLogger())
	assert.Error(t, err)
}

func TestNewConnectorRejectsUnknownCutMode(t *testing.T) {
	cfg := testConfig(9100)
	cfg.CutMode = "guillotine"

	_, err := printer.NewConnector(cfg, nil)
	assert.Error(t, err)
}
