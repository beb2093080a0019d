// internal/transport/serialusb.go
package transport

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/gousb"
	"go.bug.st/serial"
	"go.uber.org/zap"

	"pos-print-service/internal/model"
)

// SerialUsbBackend writes jobs straight to a device path or COM port,
// bypassing the spooler entirely.
type SerialUsbBackend struct {
	logger   *zap.Logger
	platform PlatformAdapter
}

// NewSerialUsbBackend creates a serial/USB backend bound to the platform
// adapter chosen at startup.
func NewSerialUsbBackend(logger *zap.Logger, platform PlatformAdapter) *SerialUsbBackend {
	return &SerialUsbBackend{
		logger:   logger.With(zap.String("backend", "serialusb")),
		platform: platform,
	}
}

// SendRaw writes the job to the device. COM ports go through the platform
// shell copy, tty-style paths through the serial library, anything else is
// treated as a raw character device file.
func (b *SerialUsbBackend) SendRaw(ctx context.Context, target model.TransportTarget, data []byte, jobName string) error {
	path := target.DevicePath
	if path == "" {
		return &ConfigurationError{Reason: "serial/usb print requires a devicePath"}
	}

	b.logger.Info("Sending raw device print job",
		zap.String("device", path),
		zap.String("job", jobName),
		zap.Int("bytes", len(data)),
	)

	if b.platform.IsComPort(path) {
		return b.platform.WriteComPort(ctx, path, data)
	}

	// The device must exist and be writable before any bytes move.
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &DeviceNotFoundError{Path: path}
		}
		return &ConnectionError{Target: path, Err: err}
	}

	file, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		if os.IsPermission(err) {
			return &DevicePermissionError{Path: path}
		}
		return &ConnectionError{Target: path, Err: err}
	}

	if isSerialPortPath(path) {
		file.Close()
		return b.writeSerial(path, data)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return &ConnectionError{Target: path, Err: err}
	}
	return nil
}

// writeSerial drives a real tty with the conventional thermal printer
// settings (9600 8N1).
func (b *SerialUsbBackend) writeSerial(path string, data []byte) error {
	mode := &serial.Mode{
		BaudRate: 9600,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return &ConnectionError{Target: path, Err: fmt.Errorf("failed to open serial port: %w", err)}
	}
	defer port.Close()

	if _, err := port.Write(data); err != nil {
		return &ConnectionError{Target: path, Err: fmt.Errorf("failed to write to serial port: %w", err)}
	}
	if err := port.Drain(); err != nil {
		return &ConnectionError{Target: path, Err: fmt.Errorf("failed to drain serial port: %w", err)}
	}
	return nil
}

// ListTargets merges the best-effort device probes into one deduplicated
// list. It never fails; it returns whatever it could detect.
func (b *SerialUsbBackend) ListTargets(ctx context.Context) ([]model.PrinterInfo, error) {
	seen := make(map[string]bool)
	var devices []model.PrinterInfo

	add := func(info model.PrinterInfo) {
		key := strings.ToLower(info.SystemName)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		devices = append(devices, info)
	}

	for _, info := range b.scanUsbPrinters() {
		add(info)
	}

	if ports, err := serial.GetPortsList(); err == nil {
		for _, port := range ports {
			add(model.PrinterInfo{Name: port, SystemName: port})
		}
	} else {
		b.logger.Debug("Serial port enumeration failed", zap.Error(err))
	}

	if ports, err := b.platform.ListUsbPorts(ctx); err == nil {
		for _, port := range ports {
			add(model.PrinterInfo{Name: port, SystemName: port})
		}
	} else {
		b.logger.Debug("Platform USB enumeration failed", zap.Error(err))
	}

	return devices, nil
}

// scanUsbPrinters probes the USB bus for printer-class devices. A host
// without a usable libusb yields an empty probe, not a failed listing.
func (b *SerialUsbBackend) scanUsbPrinters() []model.PrinterInfo {
	usbCtx, err := newUsbContext()
	if err != nil {
		b.logger.Debug("USB bus scan unavailable", zap.Error(err))
		return nil
	}
	defer usbCtx.Close()

	usbDevices, err := usbCtx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		for _, cfg := range desc.Configs {
			for _, intf := range cfg.Interfaces {
				for _, alt := range intf.AltSettings {
					if alt.Class == gousb.ClassPrinter {
						return true
					}
				}
			}
		}
		return false
	})
	if err != nil {
		b.logger.Debug("USB bus scan failed", zap.Error(err))
	}

	var infos []model.PrinterInfo
	for _, dev := range usbDevices {
		desc := dev.Desc
		name := usbDeviceName(dev)
		infos = append(infos, model.PrinterInfo{
			Name:       name,
			SystemName: fmt.Sprintf("usb:%04x:%04x", uint16(desc.Vendor), uint16(desc.Product)),
		})
		dev.Close()
	}
	return infos
}

func usbDeviceName(dev *gousb.Device) string {
	manufacturer, _ := dev.Manufacturer()
	product, _ := dev.Product()

	name := strings.TrimSpace(manufacturer + " " + product)
	if name == "" {
		name = fmt.Sprintf("USB device %04x:%04x", uint16(dev.Desc.Vendor), uint16(dev.Desc.Product))
	}
	return name
}

// TestReachability reports whether the device path currently exists.
func (b *SerialUsbBackend) TestReachability(_ context.Context, target model.TransportTarget) bool {
	if target.DevicePath == "" {
		return false
	}
	if b.platform.IsComPort(target.DevicePath) {
		return true
	}
	_, err := os.Stat(target.DevicePath)
	return err == nil
}

// isSerialPortPath reports whether the device path names a tty that should
// be driven through the serial library rather than written as a plain file.
func isSerialPortPath(path string) bool {
	for _, prefix := range []string{"/dev/ttyUSB", "/dev/ttyACM", "/dev/ttyS", "/dev/cu.", "/dev/tty."} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
