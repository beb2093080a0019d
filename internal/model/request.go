// internal/model/request.go
package model

// DirectPrintConfig is the request-supplied transport configuration used
// when printMethod is "direct".
type DirectPrintConfig struct {
	Type       string `json:"type" binding:"omitempty,oneof=network usb serial"`
	IP         string `json:"ip,omitempty"`
	Port       int    `json:"port,omitempty"`
	DevicePath string `json:"devicePath,omitempty"`
}

// PrintRequest is the body of POST /printer/print.
//
// TotalAmount intentionally stays untyped: the callers send an integer
// number of cents, a decimal string with "," or "." separator, or a float,
// and the formatting heuristic sorts it out at render time.
type PrintRequest struct {
	Printer           string              `json:"printer"`
	Headers           ReceiptHeaderConfig `json:"headers"`
	Items             []CartLine          `json:"items" binding:"dive"`
	TotalAmount       interface{}         `json:"totalAmount"`
	PrintType         PrintType           `json:"printType" binding:"omitempty,oneof=tickets totals both"`
	OpenDrawer        bool                `json:"openDrawer"`
	Test              bool                `json:"test"`
	PrintMethod       PrintMethod         `json:"printMethod" binding:"omitempty,oneof=shared direct"`
	DirectPrintConfig *DirectPrintConfig  `json:"directPrintConfig,omitempty"`
}

// PrintSessionRequest is the body of POST /printer/print-session. The
// session fields arrive flattened next to printer and headers.
type PrintSessionRequest struct {
	Printer           string              `json:"printer"`
	Headers           ReceiptHeaderConfig `json:"headers"`
	PrintMethod       PrintMethod         `json:"printMethod" binding:"omitempty,oneof=shared direct"`
	DirectPrintConfig *DirectPrintConfig  `json:"directPrintConfig,omitempty"`
	SessionSummaryData
}
