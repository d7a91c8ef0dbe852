package field

import (
	"mime"
	"regexp"
	"strings"
	"unicode"

	"github.com/zostay/go-mailmsg/encoding"
)

// wordCharset finds the charset of the first encoded-word marker.
var wordCharset = regexp.MustCompile(`=\?([^?\s]+)\?`)

var wordDecoder = &mime.WordDecoder{
	CharsetReader: encoding.CharsetReader,
}

// needsEncoding reports whether a body contains characters that cannot be
// written in a header as-is.
func needsEncoding(body string) bool {
	for _, c := range body {
		if c > unicode.MaxASCII {
			return true
		}
	}
	return false
}

// Encode transforms a header field body containing non-ASCII characters into
// a b-type (Base-64) encoded-word using UTF-8. ASCII bodies are returned
// as-is.
func Encode(body string) string {
	if !needsEncoding(body) {
		return body
	}
	return mime.BEncoding.Encode("utf-8", body)
}

// Decode transforms a single header field body and looks for MIME word encoded
// field values. When they are found, these are decoded into native unicode.
func Decode(body string) (string, error) {
	if strings.Contains(body, "=?") {
		return wordDecoder.DecodeHeader(body)
	}

	return body, nil
}

// WordCharset returns the charset named by the first encoded-word marker in
// the body, without any RFC 2231 language suffix. It returns false if the body
// holds no marker.
func WordCharset(body string) (string, bool) {
	m := wordCharset.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}

	cs := m[1]
	if ix := strings.IndexByte(cs, '*'); ix >= 0 {
		cs = cs[:ix]
	}

	return cs, true
}

// DecodeSubject decodes a Subject body and reports the charset it was written
// in.
//
// If the body contains an encoded-word marker, the charset of the first
// marker is resolved and the entire body is decoded. Only that first charset
// is reported, even if later words name another one. If there is no marker,
// the body is returned verbatim with US-ASCII.
//
// On failure, the body is returned verbatim with US-ASCII alongside the
// error, so the caller may carry on with the undecoded subject.
func DecodeSubject(body string) (subject, charset string, err error) {
	cs, found := WordCharset(body)
	if !found {
		return body, encoding.USASCII, nil
	}

	cn, err := encoding.Canonical(cs)
	if err != nil {
		return body, encoding.USASCII, err
	}

	dec, err := Decode(body)
	if err != nil {
		return body, encoding.USASCII, err
	}

	return dec, cn, nil
}
