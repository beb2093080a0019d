// internal/transport/transport.go
package transport

import (
	"context"

	"pos-print-service/internal/model"
)

// Backend moves a finished print job to one family of physical sinks.
// Implementations are stateless between calls; every send opens, writes
// and releases its own handle.
type Backend interface {
	// ListTargets enumerates reachable targets. Enumeration failures are
	// swallowed into an empty list, never an error the caller must handle.
	ListTargets(ctx context.Context) ([]model.PrinterInfo, error)

	// SendRaw delivers the job bytes to the target exactly once. No retry
	// happens at this layer.
	SendRaw(ctx context.Context, target model.TransportTarget, data []byte, jobName string) error

	// TestReachability reports whether the target currently looks
	// reachable. It never returns an error, only a boolean.
	TestReachability(ctx context.Context, target model.TransportTarget) bool
}

// RawPrintable is implemented by native printing providers that can talk
// to the spooler (or a device) without shelling out to platform utilities.
// The spooler backend tries registered providers in declared order and
// binds the first one that reports itself available.
type RawPrintable interface {
	// Name identifies the provider in logs and errors.
	Name() string

	// Available reports whether the provider can be used in this process.
	Available() bool

	// ListPrinters enumerates the provider's printers.
	ListPrinters(ctx context.Context) ([]model.PrinterInfo, error)

	// SendRaw sends pre-formatted bytes to a named printer without
	// re-rendering.
	SendRaw(ctx context.Context, printerName, jobName string, data []byte) error

	// PrinterDetails returns descriptive metadata for diagnostic pages.
	PrinterDetails(ctx context.Context, printerName string) (*model.PrinterDetails, error)
}
