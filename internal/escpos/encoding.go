// internal/escpos/encoding.go
package escpos

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Receipt printers only understand 8-bit codepages, so all human text goes
// through the Windows-1252 (Latin-1 Western) encoder matching the
// SELECT_CHARSET_LATIN1 command. Characters outside the codepage are replaced
// with the encoder's substitute glyph instead of failing the print job.

// Encode transliterates text into the printer codepage. It never fails;
// unmappable runes become the placeholder glyph.
func Encode(text string) []byte {
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	out, err := enc.Bytes([]byte(text))
	if err != nil {
		// ReplaceUnsupported should make encoding total. Keep the ASCII
		// subset if the transform still fails.
		return asciiOnly(text)
	}
	return out
}

// EncodeLine encodes text and appends a line feed.
func EncodeLine(text string) []byte {
	return append(Encode(text), 0x0A)
}

// Text wraps encoded text in a tagged sequence.
func Text(tag, text string) Sequence {
	return NewSequence(tag, Encode(text))
}

// TextLine wraps an encoded text line in a tagged sequence.
func TextLine(tag, text string) Sequence {
	return NewSequence(tag, EncodeLine(text))
}

func asciiOnly(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		if r < 0x80 {
			out = append(out, byte(r))
		} else {
			out = append(out, '?')
		}
	}
	return out
}
