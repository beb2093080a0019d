package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"pos-print-service/internal/model"
)

func localTarget(t *testing.T, addr string) model.TransportTarget {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	assert.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	assert.NoError(t, err)
	return model.NetworkTarget(host, port)
}

func TestNetworkSendRaw(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	defer listener.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			received <- nil
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	backend := NewNetworkBackend(zap.NewNop(), 0, 0)
	payload := []byte{0x1B, 0x40, 'h', 'i', 0x1D, 0x56, 0x00}

	err = backend.SendRaw(context.Background(), localTarget(t, listener.Addr().String()), payload, "test-job")
	assert.NoError(t, err)
	assert.Equal(t, payload, <-received)
}

func TestNetworkSendRawConnectionRefused(t *testing.T) {
	// Grab a free port, then close it so the connect is refused.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	addr := listener.Addr().String()
	listener.Close()

	backend := NewNetworkBackend(zap.NewNop(), 0, 0)
	err = backend.SendRaw(context.Background(), localTarget(t, addr), []byte("x"), "test-job")

	assert.Error(t, err)
	// The operator needs to see which address failed.
	assert.True(t, strings.Contains(err.Error(), addr))

	var connErr *ConnectionError
	var timeoutErr *TimeoutError
	assert.True(t, errors.As(err, &connErr) || errors.As(err, &timeoutErr))
}

func TestNetworkSendRawMissingIP(t *testing.T) {
	backend := NewNetworkBackend(zap.NewNop(), 0, 0)

	err := backend.SendRaw(context.Background(), model.TransportTarget{Type: model.TransportNetwork}, []byte("x"), "test-job")

	var configErr *ConfigurationError
	assert.True(t, errors.As(err, &configErr))
}

func TestNetworkTestReachability(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	defer listener.Close()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	backend := NewNetworkBackend(zap.NewNop(), 0, 0)
	assert.True(t, backend.TestReachability(context.Background(), localTarget(t, listener.Addr().String())))
	assert.False(t, backend.TestReachability(context.Background(), model.TransportTarget{Type: model.TransportNetwork}))
}

func TestNetworkConfiguredTimeouts(t *testing.T) {
	backend := NewNetworkBackend(zap.NewNop(), 2*time.Second, 500*time.Millisecond)
	assert.Equal(t, 2*time.Second, backend.sendTimeout)
	assert.Equal(t, 500*time.Millisecond, backend.probeTimeout)

	// Zero values fall back to the standard timeouts.
	backend = NewNetworkBackend(zap.NewNop(), 0, 0)
	assert.Equal(t, networkSendTimeout, backend.sendTimeout)
	assert.Equal(t, networkProbeTimeout, backend.probeTimeout)
}

func TestNetworkListTargetsIsEmpty(t *testing.T) {
	backend := NewNetworkBackend(zap.NewNop(), 0, 0)
	printers, err := backend.ListTargets(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, printers)
}
