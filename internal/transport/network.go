// internal/transport/network.go
package transport

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"

	"pos-print-service/internal/model"
)

const (
	networkSendTimeout  = 10 * time.Second
	networkProbeTimeout = 3 * time.Second

	// Short pause before closing so the OS can flush the socket buffer to
	// the printer before the FIN.
	networkCloseGrace = 100 * time.Millisecond
)

// NetworkBackend sends jobs over a raw TCP connection to the printer's
// raw-print port (9100 by default). One connection per job, no pooling.
type NetworkBackend struct {
	logger       *zap.Logger
	sendTimeout  time.Duration
	probeTimeout time.Duration
	closeGrace   time.Duration
}

// NewNetworkBackend creates a network backend. Zero timeouts fall back to
// the standard values.
func NewNetworkBackend(logger *zap.Logger, sendTimeout, probeTimeout time.Duration) *NetworkBackend {
	if sendTimeout <= 0 {
		sendTimeout = networkSendTimeout
	}
	if probeTimeout <= 0 {
		probeTimeout = networkProbeTimeout
	}
	return &NetworkBackend{
		logger:       logger.With(zap.String("backend", "network")),
		sendTimeout:  sendTimeout,
		probeTimeout: probeTimeout,
		closeGrace:   networkCloseGrace,
	}
}

// ListTargets returns an empty list: raw network printers cannot be
// enumerated, they are configured by address.
func (b *NetworkBackend) ListTargets(context.Context) ([]model.PrinterInfo, error) {
	return nil, nil
}

// SendRaw opens a TCP connection, writes the full buffer and closes after
// the grace delay. A connect or write timeout aborts the job and closes
// the connection.
func (b *NetworkBackend) SendRaw(ctx context.Context, target model.TransportTarget, data []byte, jobName string) error {
	if target.IP == "" {
		return &ConfigurationError{Reason: "network print requires an ip"}
	}

	addr := target.Describe()
	b.logger.Info("Sending network print job",
		zap.String("address", addr),
		zap.String("job", jobName),
		zap.Int("bytes", len(data)),
	)

	dialer := &net.Dialer{Timeout: b.sendTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return b.classify(addr, "connect", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(b.sendTimeout))

	written := 0
	for written < len(data) {
		n, err := conn.Write(data[written:])
		if err != nil {
			return b.classify(addr, "write", err)
		}
		written += n
	}

	time.Sleep(b.closeGrace)

	b.logger.Info("Network print job sent",
		zap.String("address", addr),
		zap.Int("bytes", written),
	)
	return nil
}

// TestReachability probes the target with a short connect attempt and only
// reports a boolean.
func (b *NetworkBackend) TestReachability(ctx context.Context, target model.TransportTarget) bool {
	if target.IP == "" {
		return false
	}

	addr := target.Describe()
	dialer := &net.Dialer{Timeout: b.probeTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		b.logger.Debug("Reachability probe failed",
			zap.String("address", addr),
			zap.Error(err),
		)
		return false
	}
	conn.Close()
	return true
}

func (b *NetworkBackend) classify(addr, op string, err error) error {
	b.logger.Error("Network print failed",
		zap.String("address", addr),
		zap.String("op", op),
		zap.Error(err),
	)

	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return &TimeoutError{Target: addr, Op: op}
	}
	return &ConnectionError{Target: addr, Err: err}
}
