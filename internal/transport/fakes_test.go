package transport

import (
	"context"
	"errors"

	"pos-print-service/internal/model"
)

// fakePlatform stands in for the OS utilities in backend tests.
type fakePlatform struct {
	spoolerJobs  [][]byte
	spoolerNames []string
	spoolerErr   error

	printers    []model.PrinterInfo
	printersErr error

	comPorts map[string]bool
	comJobs  [][]byte

	usbPorts []string
}

func (f *fakePlatform) Name() string { return "fake" }

func (f *fakePlatform) SpoolerSend(_ context.Context, printerName, _ string, data []byte) error {
	if f.spoolerErr != nil {
		return f.spoolerErr
	}
	f.spoolerNames = append(f.spoolerNames, printerName)
	f.spoolerJobs = append(f.spoolerJobs, data)
	return nil
}

func (f *fakePlatform) ListSpoolerPrinters(context.Context) ([]model.PrinterInfo, error) {
	if f.printersErr != nil {
		return nil, f.printersErr
	}
	return f.printers, nil
}

func (f *fakePlatform) PrinterDetails(_ context.Context, printerName string) (*model.PrinterDetails, error) {
	for _, p := range f.printers {
		if p.Name == printerName || p.SystemName == printerName {
			return &model.PrinterDetails{Name: p.Name, Driver: "fake", State: "idle"}, nil
		}
	}
	return nil, errors.New("unknown printer")
}

func (f *fakePlatform) IsComPort(path string) bool {
	return f.comPorts[path]
}

func (f *fakePlatform) WriteComPort(_ context.Context, _ string, data []byte) error {
	f.comJobs = append(f.comJobs, data)
	return nil
}

func (f *fakePlatform) ListUsbPorts(context.Context) ([]string, error) {
	return f.usbPorts, nil
}

// fakeProvider stands in for a native RawPrintable implementation.
type fakeProvider struct {
	name      string
	available bool
	printers  []model.PrinterInfo
	sendErr   error
	sent      [][]byte
}

func (f *fakeProvider) Name() string    { return f.name }
func (f *fakeProvider) Available() bool { return f.available }

func (f *fakeProvider) ListPrinters(context.Context) ([]model.PrinterInfo, error) {
	return f.printers, nil
}

func (f *fakeProvider) SendRaw(_ context.Context, _, _ string, data []byte) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, data)
	return nil
}

func (f *fakeProvider) PrinterDetails(_ context.Context, printerName string) (*model.PrinterDetails, error) {
	return &model.PrinterDetails{Name: printerName, Driver: f.name}, nil
}
