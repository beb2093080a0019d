// internal/transport/platform.go
package transport

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"pos-print-service/internal/model"
)

// utilityTimeout bounds every platform utility subprocess call.
const utilityTimeout = 8 * time.Second

// PlatformAdapter isolates the OS-specific print plumbing behind one
// interface chosen at startup, so backends never branch on runtime.GOOS
// themselves and tests can inject a fake.
type PlatformAdapter interface {
	// Name returns the adapter identifier ("windows" or "posix").
	Name() string

	// SpoolerSend pushes raw bytes through the OS print queue.
	SpoolerSend(ctx context.Context, printerName, jobName string, data []byte) error

	// ListSpoolerPrinters enumerates OS print queues.
	ListSpoolerPrinters(ctx context.Context) ([]model.PrinterInfo, error)

	// PrinterDetails collects descriptive metadata for one queue.
	PrinterDetails(ctx context.Context, printerName string) (*model.PrinterDetails, error)

	// IsComPort reports whether the path names a Windows COM port.
	IsComPort(path string) bool

	// WriteComPort writes raw bytes to a COM port.
	WriteComPort(ctx context.Context, port string, data []byte) error

	// ListUsbPorts enumerates USB-looking device identifiers, best effort.
	ListUsbPorts(ctx context.Context) ([]string, error)
}

// NewPlatformAdapter selects the adapter for the current OS. This is the
// single composition point for platform branching.
func NewPlatformAdapter(logger *zap.Logger) PlatformAdapter {
	if runtime.GOOS == "windows" {
		return &windowsAdapter{logger: logger.With(zap.String("platform", "windows"))}
	}
	return &posixAdapter{logger: logger.With(zap.String("platform", "posix"))}
}

func runUtility(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, utilityTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return out, fmt.Errorf("%s timed out after %s", name, utilityTimeout)
	}
	if err != nil {
		return out, fmt.Errorf("%s failed: %w (%s)", name, err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

// writeTempJob serializes job bytes to a scoped temporary file and hands it
// to fn. The file is removed on every exit path.
func writeTempJob(data []byte, fn func(path string) error) error {
	tmp, err := os.CreateTemp("", "printjob-*.bin")
	if err != nil {
		return fmt.Errorf("failed to create temp print file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp print file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp print file: %w", err)
	}

	return fn(path)
}

// windowsAdapter drives the Windows print utility and WMIC.
type windowsAdapter struct {
	logger *zap.Logger
}

var comPortPattern = regexp.MustCompile(`(?i)^COM\d+$`)

func (a *windowsAdapter) Name() string {
	return "windows"
}

func (a *windowsAdapter) SpoolerSend(ctx context.Context, printerName, jobName string, data []byte) error {
	a.logger.Info("Sending job via Windows print utility",
		zap.String("printer", printerName),
		zap.String("job", jobName),
		zap.Int("bytes", len(data)),
	)

	return writeTempJob(data, func(path string) error {
		_, err := runUtility(ctx, nil, "print", "/D:"+printerName, path)
		if err != nil {
			return fmt.Errorf("spooler send to %q failed: %w", printerName, err)
		}
		return nil
	})
}

func (a *windowsAdapter) ListSpoolerPrinters(ctx context.Context) ([]model.PrinterInfo, error) {
	out, err := runUtility(ctx, nil, "wmic", "printer", "get", "Name,PortName", "/format:csv")
	if err != nil {
		return nil, err
	}

	var printers []model.PrinterInfo
	for _, line := range strings.Split(string(out), "\n") {
		// CSV rows are Node,Name,PortName; skip the header.
		fields := strings.Split(strings.TrimSpace(line), ",")
		if len(fields) < 3 || fields[1] == "" || fields[1] == "Name" {
			continue
		}
		printers = append(printers, model.PrinterInfo{
			Name:       fields[1],
			SystemName: fields[1],
		})
	}
	return printers, nil
}

func (a *windowsAdapter) PrinterDetails(ctx context.Context, printerName string) (*model.PrinterDetails, error) {
	query := fmt.Sprintf("Name='%s'", strings.ReplaceAll(printerName, "'", ""))
	out, err := runUtility(ctx, nil, "wmic", "printer", "where", query,
		"get", "DriverName,PortName,PrinterStatus,Location", "/format:list")
	if err != nil {
		return nil, err
	}

	details := &model.PrinterDetails{Name: printerName}
	for _, line := range strings.Split(string(out), "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok || value == "" {
			continue
		}
		switch key {
		case "DriverName":
			details.Driver = value
		case "PortName":
			details.Port = value
		case "PrinterStatus":
			details.State = value
		case "Location":
			details.Location = value
		}
	}
	return details, nil
}

func (a *windowsAdapter) IsComPort(path string) bool {
	return comPortPattern.MatchString(path)
}

func (a *windowsAdapter) WriteComPort(ctx context.Context, port string, data []byte) error {
	a.logger.Info("Writing job to COM port",
		zap.String("port", port),
		zap.Int("bytes", len(data)),
	)

	return writeTempJob(data, func(path string) error {
		_, err := runUtility(ctx, nil, "cmd", "/C", "copy", "/B", path, port)
		if err != nil {
			return fmt.Errorf("COM write to %s failed: %w", port, err)
		}
		return nil
	})
}

func (a *windowsAdapter) ListUsbPorts(ctx context.Context) ([]string, error) {
	var ports []string

	// Printers hanging off USB-looking ports.
	if out, err := runUtility(ctx, nil, "wmic", "printer", "get", "Name,PortName", "/format:csv"); err == nil {
		for _, line := range strings.Split(string(out), "\n") {
			fields := strings.Split(strings.TrimSpace(line), ",")
			if len(fields) < 3 {
				continue
			}
			port := fields[2]
			if strings.HasPrefix(strings.ToUpper(port), "USB") {
				ports = append(ports, port)
			}
		}
	} else {
		a.logger.Debug("WMIC printer scan failed", zap.Error(err))
	}

	// Plain serial ports.
	if out, err := runUtility(ctx, nil, "wmic", "path", "Win32_SerialPort", "get", "DeviceID", "/format:csv"); err == nil {
		for _, line := range strings.Split(string(out), "\n") {
			fields := strings.Split(strings.TrimSpace(line), ",")
			if len(fields) < 2 {
				continue
			}
			if a.IsComPort(fields[1]) {
				ports = append(ports, fields[1])
			}
		}
	} else {
		a.logger.Debug("WMIC serial scan failed", zap.Error(err))
	}

	return ports, nil
}

// posixAdapter drives the CUPS client utilities.
type posixAdapter struct {
	logger *zap.Logger
}

// posixUsbProbePaths is the fixed list of conventional raw printer and
// USB-serial device paths probed by ListUsbPorts.
var posixUsbProbePaths = []string{
	"/dev/usb/lp0", "/dev/usb/lp1", "/dev/usb/lp2", "/dev/usb/lp3",
	"/dev/ttyUSB0", "/dev/ttyUSB1", "/dev/ttyUSB2", "/dev/ttyUSB3",
	"/dev/ttyACM0", "/dev/ttyACM1", "/dev/ttyACM2",
	"/dev/cu.usbserial", "/dev/cu.usbmodem",
}

func (a *posixAdapter) Name() string {
	return "posix"
}

func (a *posixAdapter) SpoolerSend(ctx context.Context, printerName, jobName string, data []byte) error {
	a.logger.Info("Sending job via lp",
		zap.String("printer", printerName),
		zap.String("job", jobName),
		zap.Int("bytes", len(data)),
	)

	_, err := runUtility(ctx, data, "lp", "-d", printerName, "-t", jobName, "-o", "raw")
	if err != nil {
		return fmt.Errorf("spooler send to %q failed: %w", printerName, err)
	}
	return nil
}

func (a *posixAdapter) ListSpoolerPrinters(ctx context.Context) ([]model.PrinterInfo, error) {
	out, err := runUtility(ctx, nil, "lpstat", "-e")
	if err != nil {
		return nil, err
	}

	var printers []model.PrinterInfo
	for _, line := range strings.Split(string(out), "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		printers = append(printers, model.PrinterInfo{Name: name, SystemName: name})
	}
	return printers, nil
}

func (a *posixAdapter) PrinterDetails(ctx context.Context, printerName string) (*model.PrinterDetails, error) {
	details := &model.PrinterDetails{Name: printerName}

	if out, err := runUtility(ctx, nil, "lpstat", "-v", printerName); err == nil {
		// "device for <name>: <uri>"
		if _, uri, ok := strings.Cut(strings.TrimSpace(string(out)), ": "); ok {
			details.URI = uri
		}
	}

	if out, err := runUtility(ctx, nil, "lpstat", "-l", "-p", printerName); err == nil {
		for _, line := range strings.Split(string(out), "\n") {
			trimmed := strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(trimmed, "printer "):
				details.State = trimmed
			case strings.HasPrefix(trimmed, "Location:"):
				details.Location = strings.TrimSpace(strings.TrimPrefix(trimmed, "Location:"))
			case strings.HasPrefix(trimmed, "Interface:"):
				details.Driver = strings.TrimSpace(strings.TrimPrefix(trimmed, "Interface:"))
			}
		}
	}

	return details, nil
}

func (a *posixAdapter) IsComPort(string) bool {
	return false
}

func (a *posixAdapter) WriteComPort(_ context.Context, port string, _ []byte) error {
	return &UnsupportedTransportError{Kind: "COM port " + port + " on posix"}
}

func (a *posixAdapter) ListUsbPorts(context.Context) ([]string, error) {
	var ports []string
	for _, path := range posixUsbProbePaths {
		if _, err := os.Stat(path); err == nil {
			ports = append(ports, path)
		}
	}
	return ports, nil
}
