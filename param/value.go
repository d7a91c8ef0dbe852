package param

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	// Charset is the name of the charset parameter that may be present in the
	// Content-type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in
	// the Content-type header.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in
	// the Content-disposition header.
	Filename = "filename"
)

var (
	primaryPattern   = regexp.MustCompile(`[\w/]+`)
	parameterPattern = regexp.MustCompile(`(\w+)\s*=\s*("?[\w\-/.]+"?)`)
)

// Value represents a parsed parameterized header field, such as is used in the
// Content-type and Content-disposition headers. A Value object is immutable:
// You cannot change it in place.
type Value struct {
	v  string
	ps map[string]string
}

// Parse takes a header field body and parses it as a Value. Parsing never
// fails.
//
// The primary value is the first run of word characters and slashes, or the
// empty string if there is none. Parameters are every name=value pair where
// the value is made of word characters, hyphens, slashes, and dots. Quotes
// around a parameter value are kept as part of the value. Names are kept as
// written and a repeated name replaces the earlier value.
func Parse(body string) *Value {
	pv := &Value{
		v:  primaryPattern.FindString(body),
		ps: map[string]string{},
	}

	for _, m := range parameterPattern.FindAllStringSubmatch(body, -1) {
		pv.ps[m[1]] = m[2]
	}

	return pv
}

// New creates a new parameterized header field with the given parameters.
func New(v string, ps map[string]string) *Value {
	cps := make(map[string]string, len(ps))
	for k, pv := range ps {
		cps[k] = pv
	}
	return &Value{v, cps}
}

// Value returns the primary value of the Value.
func (pv *Value) Value() string {
	return pv.v
}

// MediaType is a synonym for Value() and returns the Content-type value, e.g.,
// "text/html", "image/jpeg", "multipart/mixed", etc.
func (pv *Value) MediaType() string {
	return pv.v
}

// Type is only intended for use with the Content-type header. It searches the
// MediaType() for a slash. If found, it will return the string before that
// slash. If no slash is found, it returns an empty string.
func (pv *Value) Type() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[:ix]
	}
	return ""
}

// Subtype is only intended for use with the Content-type header. It searches
// the MediaType() for a slash. If found, it will return the string after that
// slash. If no slash is found, it returns an empty string.
func (pv *Value) Subtype() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[ix+1:]
	}
	return ""
}

// Parameters returns a copy of the parameters of this Value.
func (pv *Value) Parameters() map[string]string {
	ps := make(map[string]string, len(pv.ps))
	for k, v := range pv.ps {
		ps[k] = v
	}
	return ps
}

// Parameter returns the value of the parameter with the given name. The name
// is matched exactly first, then without regard to case.
func (pv *Value) Parameter(k string) string {
	if v, ok := pv.ps[k]; ok {
		return v
	}

	for n, v := range pv.ps {
		if strings.EqualFold(n, k) {
			return v
		}
	}

	return ""
}

// Filename returns the value of the "filename" parameter.
func (pv *Value) Filename() string {
	return pv.Parameter(Filename)
}

// Charset returns the value of the "charset" parameter.
func (pv *Value) Charset() string {
	return pv.Parameter(Charset)
}

// Boundary returns the value of the "boundary" parameter.
func (pv *Value) Boundary() string {
	return pv.Parameter(Boundary)
}

// String returns the serialized value of the Value including the primary value
// and all parameters, sorted by name.
func (pv *Value) String() string {
	pks := make([]string, 0, len(pv.ps))
	for k := range pv.ps {
		pks = append(pks, k)
	}
	sort.Strings(pks)

	parts := make([]string, len(pv.ps)+1)
	parts[0] = pv.v

	for n, k := range pks {
		parts[n+1] = fmt.Sprintf("%s=%s", k, pv.ps[k])
	}

	return strings.Join(parts, "; ")
}
