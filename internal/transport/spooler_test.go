package transport

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"pos-print-service/internal/model"
)

func TestSpoolerBindsFirstAvailableProvider(t *testing.T) {
	platform := &fakePlatform{}
	first := &fakeProvider{name: "first", available: false}
	second := &fakeProvider{name: "second", available: true}
	third := &fakeProvider{name: "third", available: true}

	backend := NewSpoolerBackend(zap.NewNop(), platform, first, second, third)

	target := model.SpoolerTarget("EPSON")
	err := backend.SendRaw(context.Background(), target, []byte("job"), "test")

	assert.NoError(t, err)
	assert.Len(t, second.sent, 1)
	assert.Empty(t, third.sent)
	assert.Empty(t, platform.spoolerJobs)
}

func TestSpoolerFallsBackToPlatform(t *testing.T) {
	platform := &fakePlatform{}
	provider := &fakeProvider{name: "native", available: true, sendErr: errors.New("device busy")}

	backend := NewSpoolerBackend(zap.NewNop(), platform, provider)

	target := model.SpoolerTarget("EPSON")
	err := backend.SendRaw(context.Background(), target, []byte("job"), "test")

	assert.NoError(t, err)
	assert.Len(t, platform.spoolerJobs, 1)
	assert.Equal(t, "EPSON", platform.spoolerNames[0])
}

func TestSpoolerNoProviderUsesPlatform(t *testing.T) {
	platform := &fakePlatform{}
	backend := NewSpoolerBackend(zap.NewNop(), platform)

	target := model.SpoolerTarget("EPSON")
	err := backend.SendRaw(context.Background(), target, []byte("job"), "test")

	assert.NoError(t, err)
	assert.Len(t, platform.spoolerJobs, 1)
}

func TestSpoolerEmptyPrinterName(t *testing.T) {
	backend := NewSpoolerBackend(zap.NewNop(), &fakePlatform{})

	err := backend.SendRaw(context.Background(), model.TransportTarget{Type: model.TransportSpooler}, []byte("job"), "test")

	var configErr *ConfigurationError
	assert.True(t, errors.As(err, &configErr))
}

func TestSpoolerPlatformFailurePropagates(t *testing.T) {
	platform := &fakePlatform{spoolerErr: errors.New("lp not found")}
	backend := NewSpoolerBackend(zap.NewNop(), platform)

	target := model.SpoolerTarget("EPSON")
	err := backend.SendRaw(context.Background(), target, []byte("job"), "test")
	assert.Error(t, err)
}

func TestSpoolerListTargets(t *testing.T) {
	platform := &fakePlatform{printers: []model.PrinterInfo{
		{Name: "EPSON TM-T20", SystemName: "EPSON_TM_T20"},
	}}
	backend := NewSpoolerBackend(zap.NewNop(), platform)

	printers, err := backend.ListTargets(context.Background())
	assert.NoError(t, err)
	assert.Len(t, printers, 1)
	assert.Equal(t, "EPSON_TM_T20", printers[0].SystemName)
}

func TestSpoolerListTargetsPrefersProvider(t *testing.T) {
	platform := &fakePlatform{printers: []model.PrinterInfo{{Name: "queue", SystemName: "queue"}}}
	provider := &fakeProvider{
		name:      "native",
		available: true,
		printers:  []model.PrinterInfo{{Name: "USB printer", SystemName: "usb:04b8:0202"}},
	}
	backend := NewSpoolerBackend(zap.NewNop(), platform, provider)

	printers, err := backend.ListTargets(context.Background())
	assert.NoError(t, err)
	assert.Len(t, printers, 1)
	assert.Equal(t, "usb:04b8:0202", printers[0].SystemName)
}

func TestSpoolerListTargetsSwallowsFailure(t *testing.T) {
	platform := &fakePlatform{printersErr: errors.New("lpstat missing")}
	backend := NewSpoolerBackend(zap.NewNop(), platform)

	printers, err := backend.ListTargets(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, printers)
}

func TestSpoolerPrinterDetailsBestEffort(t *testing.T) {
	platform := &fakePlatform{printers: []model.PrinterInfo{
		{Name: "EPSON", SystemName: "EPSON"},
	}}
	backend := NewSpoolerBackend(zap.NewNop(), platform)

	details := backend.PrinterDetails(context.Background(), "EPSON")
	assert.Equal(t, "EPSON", details.Name)
	assert.Equal(t, "fake", details.Driver)

	// Unknown printer still yields a usable name for the test page.
	details = backend.PrinterDetails(context.Background(), "ghost")
	assert.Equal(t, "ghost", details.Name)
	assert.Empty(t, details.Driver)
}

func TestSpoolerTestReachability(t *testing.T) {
	platform := &fakePlatform{printers: []model.PrinterInfo{
		{Name: "EPSON TM-T20", SystemName: "EPSON_TM_T20"},
	}}
	backend := NewSpoolerBackend(zap.NewNop(), platform)

	assert.True(t, backend.TestReachability(context.Background(), model.SpoolerTarget("EPSON_TM_T20")))
	assert.False(t, backend.TestReachability(context.Background(), model.SpoolerTarget("ghost")))
}
