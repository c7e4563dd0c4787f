package service

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/star-print/internal/config"
	"github.com/phrazzld/star-print/internal/domain"
	"github.com/phrazzld/star-print/internal/imaging"
	"github.com/phrazzld/star-print/internal/platform/logger"
	"github.com/phrazzld/star-print/internal/platform/metrics"
	"github.com/phrazzld/star-print/internal/redact"
)

// Printer is an open session with the printer. Implementations are used by
// one job at a time.
type Printer interface {
	// Text prints s exactly as given.
	Text(s string) error

	// Image prints a raster image.
	Image(img image.Image) error

	// Barcode prints data in the named symbology.
	Barcode(data, symbology string) error

	// Cut feeds and cuts the paper.
	Cut() error

	// Close releases the session.
	Close() error
}

// Connector opens printer sessions.
type Connector interface {
	// Acquire opens a new session. Failures match domain.ErrPrinterUnavailable.
	Acquire(ctx context.Context) (Printer, error)

	// Probe checks that the printer accepts connections.
	Probe(ctx context.Context) error
}

// PrintService provides the print operations exposed over HTTP.
type PrintService interface {
	// PrintText prints the job's text followed by a newline, then cuts.
	PrintText(ctx context.Context, job *domain.TextJob) error

	// PrintImage prints the job's image scaled to the paper, then cuts.
	PrintImage(ctx context.Context, job *domain.ImageJob) error

	// PrintBarcode prints the job's barcode, then cuts. The symbology and data
	// are encoded once connected; an encoding failure is a transmission error.
	PrintBarcode(ctx context.Context, job *domain.BarcodeJob) error

	// CheckPrinter reports whether the printer accepts connections.
	CheckPrinter(ctx context.Context) error
}

// Option configures the print service.
type Option func(*printService)

// WithMaxImageWidth sets the width in dots images are scaled down to.
func WithMaxImageWidth(width int) Option {
	return func(s *printService) {
		s.maxImageWidth = width
	}
}

// WithMetrics records job outcomes in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *printService) {
		s.metrics = m
	}
}

type printService struct {
	connector     Connector
	logger        *slog.Logger
	metrics       *metrics.Metrics
	maxImageWidth int
}

// NewPrintService creates a PrintService that prints through connector.
// It returns an error if connector is nil.
func NewPrintService(connector Connector, logger *slog.Logger, opts ...Option) (PrintService, error) {
	if connector == nil {
		return nil, ErrNilConnector
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &printService{
		connector:     connector,
		logger:        logger.With("component", "print_service"),
		maxImageWidth: config.DefaultMaxImageWidth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// PrintText implements PrintService.PrintText
func (s *printService) PrintText(ctx context.Context, job *domain.TextJob) error {
	if err := job.Validate(); err != nil {
		s.metrics.ObserveJob(string(domain.JobKindText), metrics.OutcomeInvalid, 0)
		return err
	}
	return s.run(ctx, domain.JobKindText, func(p Printer) error {
		return p.Text(job.Line())
	})
}

// PrintImage implements PrintService.PrintImage
func (s *printService) PrintImage(ctx context.Context, job *domain.ImageJob) error {
	if job.Image == nil {
		s.metrics.ObserveJob(string(domain.JobKindImage), metrics.OutcomeInvalid, 0)
		return domain.MissingImageError()
	}

	// Scale before connecting so the socket is only held while sending.
	img := imaging.Prepare(job.Image, s.maxImageWidth)

	return s.run(ctx, domain.JobKindImage, func(p Printer) error {
		return p.Image(img)
	})
}

// PrintBarcode implements PrintService.PrintBarcode
func (s *printService) PrintBarcode(ctx context.Context, job *domain.BarcodeJob) error {
	if job.Data == "" {
		s.metrics.ObserveJob(string(domain.JobKindBarcode), metrics.OutcomeInvalid, 0)
		return domain.MissingFieldError("barcode")
	}

	return s.run(ctx, domain.JobKindBarcode, func(p Printer) error {
		return p.Barcode(job.Data, job.Symbology)
	})
}

// CheckPrinter implements PrintService.CheckPrinter
func (s *printService) CheckPrinter(ctx context.Context) error {
	if err := s.connector.Probe(ctx); err != nil {
		s.metrics.RecordConnectFailure()
		return classifyPrintError("probe", err)
	}
	return nil
}

// run acquires a connection, lets emit send the job content, cuts and closes
// the connection. The connection is closed on every path.
func (s *printService) run(ctx context.Context, kind domain.JobKind, emit func(Printer) error) (err error) {
	jobID := uuid.New()
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		"job_id", jobID.String(),
		"kind", string(kind),
	)

	p, err := s.connector.Acquire(ctx)
	if err != nil {
		s.metrics.RecordConnectFailure()
		s.metrics.ObserveJob(string(kind), metrics.OutcomeUnavailable, 0)
		log.WarnContext(ctx, "printer not available", "error", redact.Error(err))
		return classifyPrintError("connect", err)
	}

	start := time.Now()
	defer func() {
		if closeErr := p.Close(); closeErr != nil {
			log.WarnContext(ctx, "failed to close printer connection", "error", redact.Error(closeErr))
		}
		s.metrics.ObserveJob(string(kind), outcome(err), time.Since(start))
	}()

	if err = emit(p); err != nil {
		err = classifyPrintError(string(kind), err)
		log.ErrorContext(ctx, "failed to send print job", "error", redact.Error(err))
		return err
	}

	if err = p.Cut(); err != nil {
		err = classifyPrintError("cut", err)
		log.ErrorContext(ctx, "failed to cut paper", "error", redact.Error(err))
		return err
	}

	log.InfoContext(ctx, "print job completed", "duration", time.Since(start))
	return nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidImage):
		return metrics.OutcomeInvalid
	case errors.Is(err, domain.ErrPrinterUnavailable):
		return metrics.OutcomeUnavailable
	case errors.Is(err, domain.ErrTransmission):
		return metrics.OutcomeTransmission
	default:
		return metrics.OutcomeError
	}
}
