// internal/escpos/sequence.go
package escpos

// Sequence is an immutable tagged byte sequence. Once created it is never
// mutated, only concatenated into new sequences, so composed jobs can share
// the underlying command table safely.
type Sequence struct {
	tag  string
	data []byte
}

// NewSequence creates a sequence with a semantic tag. The input bytes are
// copied so later changes to the caller's slice cannot leak in.
func NewSequence(tag string, data []byte) Sequence {
	buf := make([]byte, len(data))
	copy(buf, data)
	return Sequence{tag: tag, data: buf}
}

// Tag returns the semantic tag of the sequence.
func (s Sequence) Tag() string {
	return s.tag
}

// Bytes returns a copy of the raw bytes.
func (s Sequence) Bytes() []byte {
	buf := make([]byte, len(s.data))
	copy(buf, s.data)
	return buf
}

// Len returns the byte length of the sequence.
func (s Sequence) Len() int {
	return len(s.data)
}

// Concat joins sequences into a new sequence under a single tag. The inputs
// are left untouched.
func Concat(tag string, seqs ...Sequence) Sequence {
	size := 0
	for _, s := range seqs {
		size += len(s.data)
	}

	buf := make([]byte, 0, size)
	for _, s := range seqs {
		buf = append(buf, s.data...)
	}

	return Sequence{tag: tag, data: buf}
}
