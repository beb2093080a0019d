// internal/transport/spooler.go
package transport

import (
	"context"

	"go.uber.org/zap"

	"pos-print-service/internal/model"
)

// SpoolerBackend delivers jobs through the OS print queue. It first tries
// the native provider bound from the registry, and on any failure falls
// back to the platform utility transparently. A failure of the fallback
// propagates to the caller.
type SpoolerBackend struct {
	logger   *zap.Logger
	platform PlatformAdapter
	provider RawPrintable // nil when no registered provider is available
}

// NewSpoolerBackend creates a spooler backend. Providers are probed in the
// declared order and the first one reporting itself available is bound for
// the backend's lifetime.
func NewSpoolerBackend(logger *zap.Logger, platform PlatformAdapter, providers ...RawPrintable) *SpoolerBackend {
	backend := &SpoolerBackend{
		logger:   logger.With(zap.String("backend", "spooler")),
		platform: platform,
	}

	for _, provider := range providers {
		if provider.Available() {
			backend.provider = provider
			backend.logger.Info("Native print provider bound",
				zap.String("provider", provider.Name()),
			)
			break
		}
		backend.logger.Debug("Native print provider unavailable",
			zap.String("provider", provider.Name()),
		)
	}

	if backend.provider == nil {
		backend.logger.Info("No native print provider available, using platform utilities",
			zap.String("platform", platform.Name()),
		)
	}

	return backend
}

// SendRaw pushes the job into the named print queue.
func (b *SpoolerBackend) SendRaw(ctx context.Context, target model.TransportTarget, data []byte, jobName string) error {
	printerName := target.PrinterName
	if printerName == "" {
		return &ConfigurationError{Reason: "spooler print requires a printer name"}
	}

	if b.provider != nil {
		err := b.provider.SendRaw(ctx, printerName, jobName, data)
		if err == nil {
			return nil
		}
		b.logger.Warn("Native provider send failed, falling back to platform utility",
			zap.String("provider", b.provider.Name()),
			zap.String("printer", printerName),
			zap.Error(err),
		)
	}

	return b.platform.SpoolerSend(ctx, printerName, jobName, data)
}

// ListTargets enumerates print queues, provider first then the platform
// listing. Failures are swallowed into an empty list.
func (b *SpoolerBackend) ListTargets(ctx context.Context) ([]model.PrinterInfo, error) {
	if b.provider != nil {
		printers, err := b.provider.ListPrinters(ctx)
		if err == nil && len(printers) > 0 {
			return printers, nil
		}
		if err != nil {
			b.logger.Warn("Native provider enumeration failed",
				zap.String("provider", b.provider.Name()),
				zap.Error(err),
			)
		}
	}

	printers, err := b.platform.ListSpoolerPrinters(ctx)
	if err != nil {
		b.logger.Warn("Platform printer enumeration failed", zap.Error(err))
		return nil, nil
	}
	return printers, nil
}

// PrinterDetails collects best-effort metadata for the diagnostic test
// page. A failure only means an emptier test page.
func (b *SpoolerBackend) PrinterDetails(ctx context.Context, printerName string) *model.PrinterDetails {
	if b.provider != nil {
		if details, err := b.provider.PrinterDetails(ctx, printerName); err == nil && details != nil {
			return details
		}
	}

	details, err := b.platform.PrinterDetails(ctx, printerName)
	if err != nil {
		b.logger.Debug("Printer details lookup failed",
			zap.String("printer", printerName),
			zap.Error(err),
		)
		return &model.PrinterDetails{Name: printerName}
	}
	return details
}

// TestReachability reports whether the named queue is currently listed.
func (b *SpoolerBackend) TestReachability(ctx context.Context, target model.TransportTarget) bool {
	printers, _ := b.ListTargets(ctx)
	for _, p := range printers {
		if p.Name == target.PrinterName || p.SystemName == target.PrinterName {
			return true
		}
	}
	return false
}
