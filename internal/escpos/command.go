// internal/escpos/command.go
package escpos

// ESC_POS_COMMANDS contains the raw ESC/POS command definitions used by the
// receipt pipeline. These byte values are part of the hardware contract and
// must match the printer firmware exactly.
var ESC_POS_COMMANDS = struct {
	// Basic commands
	INITIALIZE []byte

	// Character sets
	SELECT_CHARSET_LATIN1 []byte // Western European codepage for accented text
	SELECT_CHARSET_PC858  []byte
	EURO_SYMBOL           []byte // PC858 escape + euro glyph

	// Text formatting
	TEXT_BOLD_ON       []byte
	TEXT_BOLD_OFF      []byte
	TEXT_UNDERLINE_ON  []byte
	TEXT_UNDERLINE_2DOT []byte
	TEXT_UNDERLINE_OFF []byte

	// Text size
	TEXT_SIZE_NORMAL        []byte
	TEXT_SIZE_WIDE          []byte
	TEXT_SIZE_DOUBLE_HEIGHT []byte
	TEXT_SIZE_DOUBLE_BOTH   []byte

	// Fonts
	FONT_A []byte
	FONT_B []byte

	// Text alignment
	ALIGN_LEFT   []byte
	ALIGN_CENTER []byte
	ALIGN_RIGHT  []byte

	// Paper handling
	LINE_FEED   []byte
	CUT_PARTIAL []byte
	CUT_FULL    []byte

	// Cash drawer
	DRAWER_KICK_PIN2 []byte // pin 2, ~100ms on / 500ms off pulse

	// Barcodes and raster images
	BARCODE_HEIGHT        []byte // + height byte
	BARCODE_WIDTH         []byte // + width byte
	BARCODE_TEXT_POSITION []byte // + position byte
	BARCODE_PRINT         []byte // + type byte, then data
	RASTER_IMAGE_MODE     []byte // + mode byte
}{
	// Basic commands
	INITIALIZE: []byte{0x1B, 0x40}, // ESC @

	// Character sets
	SELECT_CHARSET_LATIN1: []byte{0x1B, 0x74, 0x10},       // ESC t 16
	SELECT_CHARSET_PC858:  []byte{0x1B, 0x74, 0x13},       // ESC t 19
	EURO_SYMBOL:           []byte{0x1B, 0x74, 0x13, 0xD5}, // ESC t 19 + 0xD5

	// Text formatting
	TEXT_BOLD_ON:        []byte{0x1B, 0x45, 0x01}, // ESC E 1
	TEXT_BOLD_OFF:       []byte{0x1B, 0x45, 0x00}, // ESC E 0
	TEXT_UNDERLINE_ON:   []byte{0x1B, 0x2D, 0x01}, // ESC - 1
	TEXT_UNDERLINE_2DOT: []byte{0x1B, 0x2D, 0x02}, // ESC - 2
	TEXT_UNDERLINE_OFF:  []byte{0x1B, 0x2D, 0x00}, // ESC - 0

	// Text size
	TEXT_SIZE_NORMAL:        []byte{0x1D, 0x21, 0x00}, // GS ! 0
	TEXT_SIZE_WIDE:          []byte{0x1D, 0x21, 0x20}, // GS ! 32
	TEXT_SIZE_DOUBLE_HEIGHT: []byte{0x1D, 0x21, 0x10}, // GS ! 16
	TEXT_SIZE_DOUBLE_BOTH:   []byte{0x1D, 0x21, 0x30}, // GS ! 48

	// Fonts
	FONT_A: []byte{0x1B, 0x4D, 0x00}, // ESC M 0
	FONT_B: []byte{0x1B, 0x4D, 0x01}, // ESC M 1

	// Text alignment
	ALIGN_LEFT:   []byte{0x1B, 0x61, 0x00}, // ESC a 0
	ALIGN_CENTER: []byte{0x1B, 0x61, 0x01}, // ESC a 1
	ALIGN_RIGHT:  []byte{0x1B, 0x61, 0x02}, // ESC a 2

	// Paper handling
	LINE_FEED:   []byte{0x0A},             // LF
	CUT_PARTIAL: []byte{0x1D, 0x56, 0x00}, // GS V 0
	CUT_FULL:    []byte{0x1B, 0x6D, 0x00}, // ESC m

	// Cash drawer
	DRAWER_KICK_PIN2: []byte{0x1B, 0x70, 0x00, 0x19, 0xFA}, // ESC p 0 25 250

	// Barcodes and raster images
	BARCODE_HEIGHT:        []byte{0x1D, 0x68}, // GS h + n
	BARCODE_WIDTH:         []byte{0x1D, 0x77}, // GS w + n
	BARCODE_TEXT_POSITION: []byte{0x1D, 0x48}, // GS H + n
	BARCODE_PRINT:         []byte{0x1D, 0x6B}, // GS k + m
	RASTER_IMAGE_MODE:     []byte{0x1D, 0x76, 0x30}, // GS v 0 + m
}

// Alignment selects horizontal alignment of subsequent text.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// UnderlineMode selects the underline thickness.
type UnderlineMode int

const (
	UnderlineOff UnderlineMode = iota
	UnderlineSingle
	UnderlineDouble
)

// Initialize resets the printer to its power-on state.
func Initialize() Sequence {
	return NewSequence("initialize", ESC_POS_COMMANDS.INITIALIZE)
}

// SelectLatin1 selects the Western European codepage used for accented text.
func SelectLatin1() Sequence {
	return NewSequence("codepage-latin1", ESC_POS_COMMANDS.SELECT_CHARSET_LATIN1)
}

// EuroSymbol emits the national currency glyph via the PC858 codepage escape.
// Callers printing Latin-1 text afterwards must reselect the codepage.
func EuroSymbol() Sequence {
	return NewSequence("euro-symbol", ESC_POS_COMMANDS.EURO_SYMBOL)
}

// Align selects text alignment.
func Align(a Alignment) Sequence {
	switch a {
	case AlignCenter:
		return NewSequence("align-center", ESC_POS_COMMANDS.ALIGN_CENTER)
	case AlignRight:
		return NewSequence("align-right", ESC_POS_COMMANDS.ALIGN_RIGHT)
	default:
		return NewSequence("align-left", ESC_POS_COMMANDS.ALIGN_LEFT)
	}
}

// BoldOn enables emphasized text.
func BoldOn() Sequence {
	return NewSequence("bold-on", ESC_POS_COMMANDS.TEXT_BOLD_ON)
}

// BoldOff disables emphasized text.
func BoldOff() Sequence {
	return NewSequence("bold-off", ESC_POS_COMMANDS.TEXT_BOLD_OFF)
}

// Underline selects the underline mode.
func Underline(mode UnderlineMode) Sequence {
	switch mode {
	case UnderlineSingle:
		return NewSequence("underline-on", ESC_POS_COMMANDS.TEXT_UNDERLINE_ON)
	case UnderlineDouble:
		return NewSequence("underline-2dot", ESC_POS_COMMANDS.TEXT_UNDERLINE_2DOT)
	default:
		return NewSequence("underline-off", ESC_POS_COMMANDS.TEXT_UNDERLINE_OFF)
	}
}

// SizeNormal restores the default character size.
func SizeNormal() Sequence {
	return NewSequence("size-normal", ESC_POS_COMMANDS.TEXT_SIZE_NORMAL)
}

// SizeWide selects double-width characters.
func SizeWide() Sequence {
	return NewSequence("size-wide", ESC_POS_COMMANDS.TEXT_SIZE_WIDE)
}

// SizeDoubleHeight selects double-height characters.
func SizeDoubleHeight() Sequence {
	return NewSequence("size-double-height", ESC_POS_COMMANDS.TEXT_SIZE_DOUBLE_HEIGHT)
}

// SizeDoubleBoth selects double-width, double-height characters.
func SizeDoubleBoth() Sequence {
	return NewSequence("size-double-both", ESC_POS_COMMANDS.TEXT_SIZE_DOUBLE_BOTH)
}

// FontA selects the primary printer font.
func FontA() Sequence {
	return NewSequence("font-a", ESC_POS_COMMANDS.FONT_A)
}

// FontB selects the secondary (condensed) printer font.
func FontB() Sequence {
	return NewSequence("font-b", ESC_POS_COMMANDS.FONT_B)
}

// LineFeed advances the paper one line.
func LineFeed() Sequence {
	return NewSequence("line-feed", ESC_POS_COMMANDS.LINE_FEED)
}

// PartialCut cuts the paper leaving a small tab.
func PartialCut() Sequence {
	return NewSequence("cut-partial", ESC_POS_COMMANDS.CUT_PARTIAL)
}

// FullCut fully separates the paper.
func FullCut() Sequence {
	return NewSequence("cut-full", ESC_POS_COMMANDS.CUT_FULL)
}

// DrawerPulse fires the cash drawer solenoid on pin 2.
func DrawerPulse() Sequence {
	return NewSequence("drawer-pulse", ESC_POS_COMMANDS.DRAWER_KICK_PIN2)
}

// BarcodeHeight selects barcode height in dots.
func BarcodeHeight(dots byte) Sequence {
	return NewSequence("barcode-height", append(append([]byte{}, ESC_POS_COMMANDS.BARCODE_HEIGHT...), dots))
}

// BarcodeWidth selects the barcode module width (2-6).
func BarcodeWidth(width byte) Sequence {
	return NewSequence("barcode-width", append(append([]byte{}, ESC_POS_COMMANDS.BARCODE_WIDTH...), width))
}

// BarcodeTextPosition selects where human readable text is printed
// (0 none, 1 above, 2 below, 3 both).
func BarcodeTextPosition(position byte) Sequence {
	return NewSequence("barcode-text-position", append(append([]byte{}, ESC_POS_COMMANDS.BARCODE_TEXT_POSITION...), position))
}

// BarcodeType selects the symbology for a subsequent barcode print.
func BarcodeType(symbology byte) Sequence {
	return NewSequence("barcode-type", append(append([]byte{}, ESC_POS_COMMANDS.BARCODE_PRINT...), symbology))
}

// RasterImageMode selects the raster bit-image print mode.
func RasterImageMode(mode byte) Sequence {
	return NewSequence("raster-image-mode", append(append([]byte{}, ESC_POS_COMMANDS.RASTER_IMAGE_MODE...), mode))
}
