// internal/model/print.go
package model

import (
	"fmt"
	"time"
)

// PrintMethod selects how a composed job reaches the device.
type PrintMethod string

const (
	PrintMethodShared PrintMethod = "shared" // OS print spooler (default)
	PrintMethodDirect PrintMethod = "direct" // raw transport, explicit target
)

// PrintType selects which documents a ticket request produces.
type PrintType string

const (
	PrintTypeTickets PrintType = "tickets"
	PrintTypeTotals  PrintType = "totals"
	PrintTypeBoth    PrintType = "both"
)

// IncludesTickets reports whether individual item tickets are printed.
func (t PrintType) IncludesTickets() bool {
	return t == PrintTypeTickets || t == PrintTypeBoth
}

// IncludesTotals reports whether the totals ticket is printed.
func (t PrintType) IncludesTotals() bool {
	return t == PrintTypeTotals || t == PrintTypeBoth
}

// TransportType identifies the physical sink variant of a target.
type TransportType string

const (
	TransportSpooler TransportType = "spooler"
	TransportNetwork TransportType = "network"
	TransportUSB     TransportType = "usb"
	TransportSerial  TransportType = "serial"
)

// TransportTarget identifies one physical sink. Exactly one variant is
// active per dispatch call, selected by Type.
type TransportTarget struct {
	Type TransportType

	// Spooler variant
	PrinterName string

	// Network variant
	IP   string
	Port int

	// Serial/USB variant
	DevicePath string
}

// SpoolerTarget builds a spooler target for a named OS print queue.
func SpoolerTarget(printerName string) TransportTarget {
	return TransportTarget{Type: TransportSpooler, PrinterName: printerName}
}

// NetworkTarget builds a raw network target. Port 0 means the standard
// raw-print port 9100.
func NetworkTarget(ip string, port int) TransportTarget {
	if port == 0 {
		port = 9100
	}
	return TransportTarget{Type: TransportNetwork, IP: ip, Port: port}
}

// SerialUsbTarget builds a raw device target for a device path or COM port.
func SerialUsbTarget(devicePath string) TransportTarget {
	return TransportTarget{Type: TransportSerial, DevicePath: devicePath}
}

// Describe returns the target identifier used in error messages.
func (t TransportTarget) Describe() string {
	switch t.Type {
	case TransportNetwork:
		return fmt.Sprintf("%s:%d", t.IP, t.Port)
	case TransportUSB, TransportSerial:
		return t.DevicePath
	default:
		return t.PrinterName
	}
}

// PrintJob is a finished byte sequence ready for dispatch. It is created
// fresh per request, never persisted, and its bytes are consumed as-is.
type PrintJob struct {
	Name              string
	Data              []byte
	WaitForCompletion bool
}

// ReceiptHeaderConfig holds the two optional configured header lines,
// each at most 40 printable characters.
type ReceiptHeaderConfig struct {
	FirstLine  string `json:"firstLine" mapstructure:"first_line" binding:"max=40"`
	SecondLine string `json:"secondLine" mapstructure:"second_line" binding:"max=40"`
}

// CartLine is one line of a cart. A line of type "menu" carries the
// sub-products it expands into before composition.
type CartLine struct {
	Name     string   `json:"name" binding:"required"`
	Quantity int      `json:"quantity" binding:"required,min=1"`
	Type     string   `json:"type"`
	Products []string `json:"products,omitempty"`
}

// IsMenu reports whether the line expands into sub-product lines.
func (l CartLine) IsMenu() bool {
	return l.Type == "menu" && len(l.Products) > 0
}

// ProductSale is one sold product aggregated for the session summary.
type ProductSale struct {
	Zone     string `json:"zone"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DiscountSale is one discounted product grouped by product and discount.
type DiscountSale struct {
	Name        string `json:"name"`
	DiscountPct int    `json:"discount"`
	Quantity    int    `json:"quantity"`
}

// PaymentTotal aggregates payments of one method in minor currency units.
type PaymentTotal struct {
	Method      string `json:"method"`
	AmountCents int64  `json:"amount"`
}

// SessionSummaryData carries everything the session summary document needs.
// All monetary values are integer minor-currency units.
type SessionSummaryData struct {
	OpenedAt       time.Time      `json:"openedAt"`
	ClosedAt       time.Time      `json:"closedAt"`
	OpenedBy       string         `json:"openedBy"`
	ClosedBy       string         `json:"closedBy"`
	Products       []ProductSale  `json:"products"`
	Discounted     []DiscountSale `json:"discountedProducts,omitempty"`
	Payments       []PaymentTotal `json:"payments"`
	OperationCount int            `json:"operationCount"`
	InitialCents   int64          `json:"initialAmount"`
	CashMovements  int64          `json:"cashMovements"`
	Notes          string         `json:"notes,omitempty"`
}

// ClosingCents computes the expected drawer amount at close: the opening
// amount plus cash payments plus net cash-drawer adjustments.
func (s SessionSummaryData) ClosingCents() int64 {
	total := s.InitialCents + s.CashMovements
	for _, p := range s.Payments {
		if p.Method == "cash" {
			total += p.AmountCents
		}
	}
	return total
}

// PrinterInfo is the normalized enumeration result for one print target.
type PrinterInfo struct {
	Name       string `json:"name"`
	SystemName string `json:"systemName"`
}

// PrinterDetails is descriptive printer metadata used only on diagnostic
// test pages. Sourced read-only from enumeration.
type PrinterDetails struct {
	Name     string `json:"name"`
	Driver   string `json:"driver,omitempty"`
	URI      string `json:"uri,omitempty"`
	Port     string `json:"port,omitempty"`
	State    string `json:"state,omitempty"`
	Location string `json:"location,omitempty"`
}
