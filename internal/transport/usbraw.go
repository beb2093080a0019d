// internal/transport/usbraw.go
package transport

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/gousb"
	"go.uber.org/zap"

	"pos-print-service/internal/model"
)

// USBRawProvider is a native RawPrintable adapter that sends bytes to the
// bulk OUT endpoint of a USB printer-class device, without any spooler in
// between. It is registered ahead of the platform utilities and binds only
// when a printer-class device is attached at startup.
type USBRawProvider struct {
	logger *zap.Logger
}

// NewUSBRawProvider creates the USB raw-print provider.
func NewUSBRawProvider(logger *zap.Logger) *USBRawProvider {
	return &USBRawProvider{
		logger: logger.With(zap.String("provider", "usb-raw")),
	}
}

// Name identifies the provider.
func (p *USBRawProvider) Name() string {
	return "usb-raw"
}

// newUsbContext initializes libusb. gousb panics when libusb cannot be
// initialized; USB access is best effort here, so the panic is converted
// into an error the callers can swallow.
func newUsbContext() (*gousb.Context, error) {
	return usbContextFrom(gousb.NewContext)
}

func usbContextFrom(open func() *gousb.Context) (usbCtx *gousb.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			usbCtx = nil
			err = fmt.Errorf("libusb initialization failed: %v", r)
		}
	}()
	return open(), nil
}

// Available reports whether at least one printer-class device is attached.
func (p *USBRawProvider) Available() bool {
	usbCtx, err := newUsbContext()
	if err != nil {
		p.logger.Debug("USB raw provider unavailable", zap.Error(err))
		return false
	}
	defer usbCtx.Close()

	devices, err := usbCtx.OpenDevices(printerClassFilter)
	if err != nil {
		p.logger.Debug("USB availability probe failed", zap.Error(err))
	}

	for _, dev := range devices {
		dev.Close()
	}
	return len(devices) > 0
}

// ListPrinters enumerates attached printer-class devices.
func (p *USBRawProvider) ListPrinters(context.Context) ([]model.PrinterInfo, error) {
	usbCtx, err := newUsbContext()
	if err != nil {
		return nil, err
	}
	defer usbCtx.Close()

	devices, err := usbCtx.OpenDevices(printerClassFilter)
	if err != nil && len(devices) == 0 {
		return nil, fmt.Errorf("failed to enumerate USB printers: %w", err)
	}

	var printers []model.PrinterInfo
	for _, dev := range devices {
		printers = append(printers, model.PrinterInfo{
			Name:       usbDeviceName(dev),
			SystemName: usbSystemName(dev),
		})
		dev.Close()
	}
	return printers, nil
}

// SendRaw writes the job to the matching device's bulk OUT endpoint.
func (p *USBRawProvider) SendRaw(ctx context.Context, printerName, jobName string, data []byte) error {
	usbCtx, err := newUsbContext()
	if err != nil {
		return &BackendUnavailableError{Name: p.Name()}
	}
	defer usbCtx.Close()

	devices, err := usbCtx.OpenDevices(printerClassFilter)
	if err != nil && len(devices) == 0 {
		return &BackendUnavailableError{Name: p.Name()}
	}

	var target *gousb.Device
	for _, dev := range devices {
		if target == nil && p.matches(dev, printerName) {
			target = dev
			continue
		}
		dev.Close()
	}
	if target == nil {
		return &DeviceNotFoundError{Path: printerName}
	}
	defer target.Close()

	// On Linux the kernel usblp driver usually owns the interface.
	target.SetAutoDetach(true)

	intf, done, err := target.DefaultInterface()
	if err != nil {
		return fmt.Errorf("failed to claim USB interface for %q: %w", printerName, err)
	}
	defer done()

	endpoint, err := findOutEndpoint(intf)
	if err != nil {
		return fmt.Errorf("no bulk OUT endpoint on %q: %w", printerName, err)
	}

	p.logger.Info("Sending job to USB printer",
		zap.String("printer", printerName),
		zap.String("job", jobName),
		zap.Int("bytes", len(data)),
	)

	written := 0
	for written < len(data) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := endpoint.Write(data[written:])
		if err != nil {
			return &ConnectionError{Target: printerName, Err: err}
		}
		written += n
	}
	return nil
}

// PrinterDetails reports the descriptive USB metadata for test pages.
func (p *USBRawProvider) PrinterDetails(ctx context.Context, printerName string) (*model.PrinterDetails, error) {
	printers, err := p.ListPrinters(ctx)
	if err != nil {
		return nil, err
	}

	for _, info := range printers {
		if info.Name == printerName || info.SystemName == printerName {
			return &model.PrinterDetails{
				Name:   info.Name,
				Driver: "usb-raw",
				URI:    info.SystemName,
				Port:   info.SystemName,
				State:  "attached",
			}, nil
		}
	}
	return nil, &DeviceNotFoundError{Path: printerName}
}

func (p *USBRawProvider) matches(dev *gousb.Device, printerName string) bool {
	if printerName == "" {
		return true
	}
	return strings.EqualFold(usbDeviceName(dev), printerName) ||
		strings.EqualFold(usbSystemName(dev), printerName)
}

func printerClassFilter(desc *gousb.DeviceDesc) bool {
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
}

func usbSystemName(dev *gousb.Device) string {
	return fmt.Sprintf("usb:%04x:%04x", uint16(dev.Desc.Vendor), uint16(dev.Desc.Product))
}

func findOutEndpoint(intf *gousb.Interface) (*gousb.OutEndpoint, error) {
	for _, ep := range intf.Setting.Endpoints {
		if ep.Direction == gousb.EndpointDirectionOut {
			return intf.OutEndpoint(ep.Number)
		}
	}
	return nil, fmt.Errorf("interface %d has no OUT endpoint", intf.Setting.Number)
}
