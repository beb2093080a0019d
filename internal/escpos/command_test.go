package escpos

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandBytes(t *testing.T) {
	cases := []struct {
		name string
		seq  Sequence
		want []byte
	}{
		{"initialize", Initialize(), []byte{0x1B, 0x40}},
		{"latin1", SelectLatin1(), []byte{0x1B, 0x74, 0x10}},
		{"euro", EuroSymbol(), []byte{0x1B, 0x74, 0x13, 0xD5}},
		{"align-left", Align(AlignLeft), []byte{0x1B, 0x61, 0x00}},
		{"align-center", Align(AlignCenter), []byte{0x1B, 0x61, 0x01}},
		{"align-right", Align(AlignRight), []byte{0x1B, 0x61, 0x02}},
		{"bold-on", BoldOn(), []byte{0x1B, 0x45, 0x01}},
		{"bold-off", BoldOff(), []byte{0x1B, 0x45, 0x00}},
		{"underline-on", Underline(UnderlineSingle), []byte{0x1B, 0x2D, 0x01}},
		{"underline-2dot", Underline(UnderlineDouble), []byte{0x1B, 0x2D, 0x02}},
		{"underline-off", Underline(UnderlineOff), []byte{0x1B, 0x2D, 0x00}},
		{"size-normal", SizeNormal(), []byte{0x1D, 0x21, 0x00}},
		{"size-wide", SizeWide(), []byte{0x1D, 0x21, 0x20}},
		{"size-double-height", SizeDoubleHeight(), []byte{0x1D, 0x21, 0x10}},
		{"size-double-both", SizeDoubleBoth(), []byte{0x1D, 0x21, 0x30}},
		{"font-a", FontA(), []byte{0x1B, 0x4D, 0x00}},
		{"font-b", FontB(), []byte{0x1B, 0x4D, 0x01}},
		{"line-feed", LineFeed(), []byte{0x0A}},
		{"cut-partial", PartialCut(), []byte{0x1D, 0x56, 0x00}},
		{"cut-full", FullCut(), []byte{0x1B, 0x6D, 0x00}},
		{"drawer-pulse", DrawerPulse(), []byte{0x1B, 0x70, 0x00, 0x19, 0xFA}},
		{"barcode-height", BarcodeHeight(80), []byte{0x1D, 0x68, 80}},
		{"barcode-width", BarcodeWidth(3), []byte{0x1D, 0x77, 3}},
		{"barcode-text-position", BarcodeTextPosition(2), []byte{0x1D, 0x48, 2}},
		{"barcode-type", BarcodeType(4), []byte{0x1D, 0x6B, 4}},
		{"raster-mode", RasterImageMode(0), []byte{0x1D, 0x76, 0x30, 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.seq.Bytes())
		})
	}
}

func TestSequenceCopiesInput(t *testing.T) {
	src := []byte{0x01, 0x02}
	seq := NewSequence("test", src)

	src[0] = 0xFF
	assert.Equal(t, []byte{0x01, 0x02}, seq.Bytes())
}

func TestSequenceBytesReturnsCopy(t *testing.T) {
	seq := NewSequence("test", []byte{0x01, 0x02})

	out := seq.Bytes()
	out[0] = 0xFF

	assert.Equal(t, []byte{0x01, 0x02}, seq.Bytes())
}

func TestConcat(t *testing.T) {
	joined := Concat("job",
		Initialize(),
		BoldOn(),
		NewSequence("text", []byte("hi")),
	)

	want := append([]byte{0x1B, 0x40, 0x1B, 0x45, 0x01}, []byte("hi")...)
	assert.Equal(t, "job", joined.Tag())
	assert.Equal(t, want, joined.Bytes())
	assert.Equal(t, len(want), joined.Len())
}

func TestConcatLeavesInputsUntouched(t *testing.T) {
	a := NewSequence("a", []byte{0x01})
	b := NewSequence("b", []byte{0x02})

	joined := Concat("ab", a, b)
	buf := joined.Bytes()
	buf[0] = 0xFF

	assert.Equal(t, []byte{0x01}, a.Bytes())
	assert.Equal(t, []byte{0x02}, b.Bytes())
}

func TestEncodeAccentedText(t *testing.T) {
	// "ã" and "ç" live in the Windows-1252 codepage as single bytes.
	out := Encode("Cartão")
	assert.Equal(t, []byte{'C', 'a', 'r', 't', 0xE3, 'o'}, out)

	out = Encode("Fecho de caixa ç")
	assert.True(t, bytes.Contains(out, []byte{0xE7}))
}

func TestEncodeUnmappableRune(t *testing.T) {
	// One rune outside the codepage becomes one substitute byte instead of
	// failing the job.
	out := Encode("→")
	assert.Len(t, out, 1)
}

func TestEncodeLineAppendsLineFeed(t *testing.T) {
	out := EncodeLine("abc")
	assert.Equal(t, []byte{'a', 'b', 'c', 0x0A}, out)
}

func TestTextLineSequence(t *testing.T) {
	seq := TextLine("greeting", "olá")
	assert.Equal(t, "greeting", seq.Tag())
	assert.Equal(t, []byte{'o', 'l', 0xE1, 0x0A}, seq.Bytes())
}
