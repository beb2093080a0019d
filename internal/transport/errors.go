// internal/transport/errors.go
package transport

import "fmt"

// Typed dispatch errors. Handlers match these with errors.As to pick the
// HTTP status; messages always carry the target identifier so the operator
// can tell which device failed.

// ConfigurationError reports a missing or invalid transport configuration.
// It is raised before any I/O is attempted.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid print configuration: " + e.Reason
}

// UnsupportedTransportError reports an unknown print method or transport
// type.
type UnsupportedTransportError struct {
	Kind string
}

func (e *UnsupportedTransportError) Error() string {
	return "unsupported transport: " + e.Kind
}

// DeviceNotFoundError reports a device path that does not exist.
type DeviceNotFoundError struct {
	Path string
}

func (e *DeviceNotFoundError) Error() string {
	return "device not found: " + e.Path
}

// DevicePermissionError reports a device path the process may not write to.
type DevicePermissionError struct {
	Path string
}

func (e *DevicePermissionError) Error() string {
	return fmt.Sprintf("device not writable: %s (check permissions, the service user may need to join the lp or dialout group)", e.Path)
}

// ConnectionError reports a failed network connection or write.
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TimeoutError reports a network operation that exceeded its deadline.
type TimeoutError struct {
	Target string
	Op     string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s to %s timed out", e.Op, e.Target)
}

// BackendUnavailableError reports that a native printing provider is not
// present. It is not fatal; it triggers the platform fallback.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "print backend unavailable: " + e.Name
}
