package rtnetlink

import (
	"fmt"

	"github.com/josharian/native"
)

const (
	// sizeof(struct nlattr)
	attrHeaderLen = 4

	// NLA_ALIGNTO
	attrAlignTo = 4
)

func attrAlign(n int) int {
	return (n + attrAlignTo - 1) &^ (attrAlignTo - 1)
}

// Attribute is a single TLV within a message. Its Payload is a view into the
// message buffer and must not be retained past the message's lifetime.
type Attribute struct {
	Type    uint16
	Payload []byte
}

func (a Attribute) String() string {
	return fmt.Sprintf("{type: %d, len: %d}", a.Type, len(a.Payload))
}

// AttributeWalker lazily iterates over the attributes laid out in a buffer
// starting at a given offset. Usage mirrors bufio.Scanner:
//
//	w := NewAttributeWalker(body, sizeofIfInfoMsg)
//	for w.Next() {
//		a := w.Attribute()
//		...
//	}
//	if err := w.Err(); err != nil {
//		...
//	}
//
// Attribute lengths and types are read in native byte order as the kernel
// writes them.
type AttributeWalker struct {
	b     []byte
	start int
	off   int
	attr  Attribute
	err   error
}

// NewAttributeWalker returns a walker over b[offset:].
func NewAttributeWalker(b []byte, offset int) *AttributeWalker {
	w := &AttributeWalker{b: b, start: offset}
	w.Reset()
	return w
}

// Reset rewinds the walker to its starting offset.
func (w *AttributeWalker) Reset() {
	w.off = w.start
	w.attr = Attribute{}
	w.err = nil
	if w.start < 0 || w.start > len(w.b) {
		w.err = fmt.Errorf("%w: start offset %d outside a %d byte buffer", ErrMalformedAttribute, w.start, len(w.b))
	}
}

// Next advances to the next attribute. It returns false once the end of the
// buffer is reached or when an error is found, in which case Err is non-nil.
func (w *AttributeWalker) Next() bool {
	if w.err != nil || w.off >= len(w.b) {
		return false
	}

	rem := len(w.b) - w.off
	if rem < attrHeaderLen {
		w.err = fmt.Errorf("%w: %d trailing bytes at offset %d", ErrMalformedAttribute, rem, w.off)
		return false
	}

	l := int(native.Endian.Uint16(w.b[w.off : w.off+2]))
	t := native.Endian.Uint16(w.b[w.off+2 : w.off+4])

	if l < attrHeaderLen {
		w.err = fmt.Errorf("%w: length %d at offset %d is shorter than the header", ErrMalformedAttribute, l, w.off)
		return false
	}
	if l > rem {
		w.err = fmt.Errorf("%w: length %d at offset %d exceeds the %d remaining bytes", ErrMalformedAttribute, l, w.off, rem)
		return false
	}

	end := w.off + l
	w.attr = Attribute{
		Type:    t & NLA_TYPE_MASK,
		Payload: w.b[w.off+attrHeaderLen : end : end],
	}

	// The last attribute's padding might be missing.
	w.off = min(w.off+attrAlign(l), len(w.b))

	return true
}

// Attribute returns the current attribute. It's only valid after Next
// returned true.
func (w *AttributeWalker) Attribute() Attribute {
	return w.attr
}

// Offset returns the offset of the next attribute to be read.
func (w *AttributeWalker) Offset() int {
	return w.off
}

// Err returns the first error found while walking.
func (w *AttributeWalker) Err() error {
	return w.err
}

// ForEach calls fn for every attribute in b[offset:] stopping at the first
// error, be it returned by fn or by the walker.
func ForEach(b []byte, offset int, fn func(Attribute) error) error {
	w := NewAttributeWalker(b, offset)
	for w.Next() {
		if err := fn(w.Attribute()); err != nil {
			return err
		}
	}
	return w.Err()
}
