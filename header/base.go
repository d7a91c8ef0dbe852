package header

import (
	"bytes"
	"io"
	"strings"

	"github.com/zostay/go-mailmsg/header/field"
)

// Base is the storage of a header: fields in the order they were added, plus
// an index from lowercased field name to the positions of the fields with that
// name. A plain map cannot do this job because the same name may occur any
// number of times.
type Base struct {
	lbr    Break
	fields []*field.Field
	index  map[string][]int
}

// initBase initializes the Break and fields values lazily.
func (h *Base) initBase() {
	if h.lbr == "" {
		h.lbr = LF
	}
	if h.fields == nil {
		h.fields = make([]*field.Field, 0, 10)
	}
	if h.index == nil {
		h.index = make(map[string][]int, 10)
	}
}

// appendField adds a field to the end of the header.
func (h *Base) appendField(f *field.Field) {
	h.initBase()

	n := strings.ToLower(f.Name())
	h.index[n] = append(h.index[n], len(h.fields))
	h.fields = append(h.fields, f)
}

// Break returns the line break used to separate header fields when the header
// is rendered.
func (h *Base) Break() Break {
	if h.lbr == "" {
		h.lbr = LF
	}
	return h.lbr
}

// SetBreak changes the line break to use with this header.
func (h *Base) SetBreak(lbr Break) {
	h.lbr = lbr
}

// Len returns the number of header fields in the header.
func (h *Base) Len() int {
	return len(h.fields)
}

// GetField returns the nth field or nil if n is out of range.
func (h *Base) GetField(n int) *field.Field {
	if n < 0 || n >= len(h.fields) {
		return nil
	}
	return h.fields[n]
}

// GetIndexesNamed returns the indexes of fields with the given name, in header
// order.
func (h *Base) GetIndexesNamed(name string) []int {
	ixs := h.index[strings.ToLower(name)]
	is := make([]int, len(ixs))
	copy(is, ixs)
	return is
}

// GetAllFieldsNamed returns all the fields with the given name, in header
// order, or an empty slice.
func (h *Base) GetAllFieldsNamed(name string) []*field.Field {
	ixs := h.index[strings.ToLower(name)]
	fs := make([]*field.Field, len(ixs))
	for i, ix := range ixs {
		fs[i] = h.fields[ix]
	}
	return fs
}

// GetLastFieldNamed returns the most recently added field with the given name
// or nil if there is none.
func (h *Base) GetLastFieldNamed(name string) *field.Field {
	ixs := h.index[strings.ToLower(name)]
	if len(ixs) == 0 {
		return nil
	}
	return h.fields[ixs[len(ixs)-1]]
}

// ListFields returns all the fields in the header.
func (h *Base) ListFields() []*field.Field {
	fs := make([]*field.Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// Bytes returns the header as a slice of bytes. Fields are not folded.
func (h *Base) Bytes() []byte {
	lbr := h.Break().Bytes()

	var buf bytes.Buffer
	for _, f := range h.fields {
		buf.WriteString(f.String())
		buf.Write(lbr)
	}
	return buf.Bytes()
}

// WriteTo writes the header fields, each followed by the line break, to w. No
// blank line is written after the last field.
func (h *Base) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(h.Bytes())
	return int64(n), err
}
