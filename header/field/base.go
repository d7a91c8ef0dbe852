package field

import (
	"fmt"
	"strings"
)

// Field is a single header field: a name and an unfolded body.
type Field struct {
	name string
	body string
}

// New returns a field with the given name and body.
func New(name, body string) *Field {
	return &Field{name, body}
}

// Name returns the name of the header field.
func (f *Field) Name() string {
	return f.name
}

// Body returns the unfolded value of the header field.
func (f *Field) Body() string {
	return f.body
}

// unfold extends the body with a continuation line.
func (f *Field) unfold(cont string) {
	f.body = strings.TrimSpace(f.body + cont)
}

// String returns the complete header field as a string. A body containing
// non-ASCII characters is word encoded.
func (f *Field) String() string {
	return fmt.Sprintf("%s: %s", f.name, Encode(f.body))
}
