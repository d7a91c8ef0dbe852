// Package encoding resolves the charset names found in email headers and MIME
// parameters into character encodings and converts text to and from them.
//
// US-ASCII and UTF-8 are handled directly. Every other name is looked up in
// the MIME index provided by golang.org/x/text/encoding/ianaindex, which gives
// the code the ability to decode pretty much any character set it might
// encounter in the wild wild world of email.
package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	xunicode "golang.org/x/text/encoding/unicode"
)

// Canonical names of the two charsets every message may rely upon.
const (
	USASCII = "US-ASCII"
	UTF8    = "UTF-8"
)

// ErrUnsupportedCharset is returned when a charset name cannot be resolved to
// a character encoding.
var ErrUnsupportedCharset = errors.New("unsupported charset")

// isASCII reports whether the name refers to US-ASCII. The empty name is
// treated as US-ASCII, which is the default for mail.
func isASCII(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "us-ascii", "ascii", "us_ascii", "ansi_x3.4-1968":
		return true
	}
	return false
}

// Lookup resolves a charset name to a character encoding. A nil encoding with
// a nil error means US-ASCII, which is handled without a transformer.
func Lookup(name string) (xencoding.Encoding, error) {
	if isASCII(name) {
		return nil, nil
	}

	n := strings.Trim(strings.TrimSpace(name), `"`)
	if strings.EqualFold(n, "utf8") || strings.EqualFold(n, UTF8) {
		return xunicode.UTF8, nil
	}

	e, err := ianaindex.MIME.Encoding(n)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnsupportedCharset, name, err)
	}

	if e == nil {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedCharset, name)
	}

	return e, nil
}

// Canonical returns the preferred MIME name for the given charset name, e.g.,
// "utf-8" becomes "UTF-8" and "latin1" becomes "ISO-8859-1".
func Canonical(name string) (string, error) {
	e, err := Lookup(name)
	if err != nil {
		return "", err
	}

	if e == nil {
		return USASCII, nil
	}

	if e == xunicode.UTF8 {
		return UTF8, nil
	}

	cn, err := ianaindex.MIME.Name(e)
	if err != nil {
		return strings.ToUpper(strings.TrimSpace(name)), nil
	}

	return cn, nil
}

// Decode transforms bytes in the named charset into a native string.
//
// When US-ASCII is the charset, any 8-bit byte is translated into
// unicode.ReplacementChar.
func Decode(charset string, b []byte) (string, error) {
	e, err := Lookup(charset)
	if err != nil {
		return "", err
	}

	if e == nil {
		var s strings.Builder
		for _, c := range b {
			if c > unicode.MaxASCII {
				s.WriteRune(unicode.ReplacementChar)
			} else {
				s.WriteByte(c)
			}
		}
		return s.String(), nil
	}

	db, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(db), nil
}

// Encode transforms a native string into bytes of the named charset.
//
// When US-ASCII is the charset, any character that does not fit will be
// replaced with "\x1a", the ASCII SUB character.
func Encode(charset, s string) ([]byte, error) {
	e, err := Lookup(charset)
	if err != nil {
		return nil, err
	}

	if e == nil {
		var buf bytes.Buffer
		for _, c := range s {
			if c > unicode.MaxASCII {
				buf.WriteByte('\x1a')
			} else {
				buf.WriteRune(c)
			}
		}
		return buf.Bytes(), nil
	}

	eb, err := xencoding.ReplaceUnsupported(e.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return nil, err
	}

	return eb, nil
}

// CharsetReader has the signature of mime.WordDecoder.CharsetReader, making
// every charset known to Lookup available to RFC 2047 decoding.
func CharsetReader(charset string, r io.Reader) (io.Reader, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	s, err := Decode(charset, b)
	if err != nil {
		return nil, err
	}

	return strings.NewReader(s), nil
}
