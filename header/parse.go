package header

import (
	"github.com/zostay/go-mailmsg/header/field"
)

// Parse will parse the given slice of bytes into an email header using the
// given line break string. It will assume the entire string given represents
// the header to be parsed: whatever follows a blank line is still read as
// header text.
//
// Lines that cannot be parsed are dropped. Those are returned as well, in case
// the caller wishes to report on them.
func Parse(m []byte, lb Break) (*Header, field.Lines) {
	h, dropped := ParseLines(field.SplitLines(m, lb.Bytes()))
	h.lbr = lb
	return h, dropped
}

// ParseLines builds a header from lines that have already been split apart.
// It follows the rules of field.ParseLines.
func ParseLines(lines field.Lines) (*Header, field.Lines) {
	fs, dropped := field.ParseLines(lines)

	h := &Header{}
	h.initBase()
	for _, f := range fs {
		h.appendField(f)
	}

	return h, dropped
}
