// internal/dispatch/dispatcher.go
package dispatch

import (
	"context"

	"go.uber.org/zap"

	"pos-print-service/internal/model"
	"pos-print-service/internal/transport"
)

// Dispatcher routes a composed job to the transport backend selected by
// the print method and target. It performs no composition, no retries and
// no queuing; each call is one independent delivery attempt.
type Dispatcher struct {
	logger    *zap.Logger
	spooler   transport.Backend
	network   transport.Backend
	serialUsb transport.Backend
}

// NewDispatcher creates a dispatcher over the three backend families.
func NewDispatcher(logger *zap.Logger, spooler, network, serialUsb transport.Backend) *Dispatcher {
	return &Dispatcher{
		logger:    logger.With(zap.String("component", "dispatcher")),
		spooler:   spooler,
		network:   network,
		serialUsb: serialUsb,
	}
}

// Dispatch forwards the job. Method "shared" (the default) goes to the
// spooler; "direct" requires an explicit target and fails with a
// configuration error before any I/O when it is missing.
func (d *Dispatcher) Dispatch(ctx context.Context, method model.PrintMethod, target *model.TransportTarget, job *model.PrintJob) error {
	backend, resolved, err := d.resolve(method, target)
	if err != nil {
		return err
	}

	d.logger.Info("Dispatching print job",
		zap.String("job", job.Name),
		zap.String("method", string(method)),
		zap.String("target", resolved.Describe()),
		zap.Int("bytes", len(job.Data)),
	)

	if err := backend.SendRaw(ctx, resolved, job.Data, job.Name); err != nil {
		d.logger.Error("Print job dispatch failed",
			zap.String("job", job.Name),
			zap.String("target", resolved.Describe()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (d *Dispatcher) resolve(method model.PrintMethod, target *model.TransportTarget) (transport.Backend, model.TransportTarget, error) {
	switch method {
	case "", model.PrintMethodShared:
		if target == nil {
			return nil, model.TransportTarget{}, &transport.ConfigurationError{Reason: "shared print requires a printer name"}
		}
		return d.spooler, *target, nil

	case model.PrintMethodDirect:
		if target == nil {
			return nil, model.TransportTarget{}, &transport.ConfigurationError{Reason: "direct print requires a transport target"}
		}
		switch target.Type {
		case model.TransportNetwork:
			return d.network, *target, nil
		case model.TransportUSB, model.TransportSerial:
			return d.serialUsb, *target, nil
		case model.TransportSpooler:
			return d.spooler, *target, nil
		default:
			return nil, model.TransportTarget{}, &transport.UnsupportedTransportError{Kind: string(target.Type)}
		}

	default:
		return nil, model.TransportTarget{}, &transport.UnsupportedTransportError{Kind: string(method)}
	}
}

// ResolveTarget maps a request's direct-print configuration to a transport
// target, validating it before any I/O is attempted.
func ResolveTarget(cfg *model.DirectPrintConfig) (*model.TransportTarget, error) {
	if cfg == nil {
		return nil, &transport.ConfigurationError{Reason: "direct print requires a directPrintConfig"}
	}

	switch cfg.Type {
	case "network":
		if cfg.IP == "" {
			return nil, &transport.ConfigurationError{Reason: "network print requires an ip"}
		}
		target := model.NetworkTarget(cfg.IP, cfg.Port)
		return &target, nil

	case "usb", "serial":
		if cfg.DevicePath == "" {
			return nil, &transport.ConfigurationError{Reason: "serial/usb print requires a devicePath"}
		}
		target := model.SerialUsbTarget(cfg.DevicePath)
		return &target, nil

	case "":
		return nil, &transport.ConfigurationError{Reason: "directPrintConfig requires a type"}

	default:
		return nil, &transport.UnsupportedTransportError{Kind: cfg.Type}
	}
}
