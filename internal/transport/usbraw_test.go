package transport

import (
	"testing"

	"github.com/google/gousb"
	"github.com/stretchr/testify/assert"
)

func TestUsbContextFromConvertsInitPanic(t *testing.T) {
	// libusb init failures surface as a panic inside gousb. Enumeration
	// is best effort, so that must come back as an error, never escape.
	usbCtx, err := usbContextFrom(func() *gousb.Context {
		panic("libusb: error [other]")
	})

	assert.Nil(t, usbCtx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "libusb")
}

func TestUsbContextFromPassesContextThrough(t *testing.T) {
	want := &gousb.Context{}
	usbCtx, err := usbContextFrom(func() *gousb.Context { return want })

	assert.NoError(t, err)
	assert.Same(t, want, usbCtx)
}
