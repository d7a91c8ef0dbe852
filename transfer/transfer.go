package transfer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zostay/go-mailmsg/encoding"
)

const (
	None            = ""                 // bytes will be left as-is
	Bit7            = "7bit"             // bytes will be left as-is
	Bit8            = "8bit"             // bytes will be left as-is
	Binary          = "binary"           // bytes will be left as-is
	QuotedPrintable = "quoted-printable" // bytes will be transformed between quoted-printable and binary data
	Base64          = "base64"           // bytes will be transformed between base64 and binary data
)

// Errors reported alongside fallback content by Decode.
var (
	// ErrCorruptBase64 means base64 content could not be decoded.
	ErrCorruptBase64 = errors.New("corrupt base64 content")

	// ErrCorruptQuotedPrintable means quoted-printable content could not be
	// decoded.
	ErrCorruptQuotedPrintable = errors.New("corrupt quoted-printable content")
)

// Transcoding is a pair of functions that can be used to transform to and from
// a transfer encoding.
type Transcoding struct {
	// Encoder returns an io.WriteCloser, which will encode binary data and
	// write the encoded form to the given io.Writer. You must call Close() on
	// the returned io.WriteCloser when you are finished.
	Encoder func(io.Writer) io.WriteCloser

	// Decoder returns an io.Reader, which will read from the given io.Reader
	// when read and decode the encoded data back into binary form the encoded
	// form.
	Decoder func(io.Reader) io.Reader
}

// AsIsTranscoder is just a shortcut to a no-op encoder/decoder.
var AsIsTranscoder = Transcoding{NewAsIsEncoder, NewAsIsDecoder}

// Transcodings defines the supported Content-transfer-encodings and how to
// handle them.
var Transcodings = map[string]Transcoding{
	None:            AsIsTranscoder,
	Bit7:            AsIsTranscoder,
	Bit8:            AsIsTranscoder,
	Binary:          AsIsTranscoder,
	QuotedPrintable: {NewQuotedPrintableEncoder, NewQuotedPrintableDecoder},
	Base64:          {NewBase64Encoder, NewBase64Decoder},
}

// Normalize lowercases and trims a Content-transfer-encoding value. Anything
// that is not a known transfer encoding normalizes to None.
func Normalize(cte string) string {
	n := strings.ToLower(strings.TrimSpace(cte))
	if _, known := Transcodings[n]; known {
		return n
	}
	return None
}

// Encode is a helper that applies the named transfer encoding to the given
// bytes. Unknown encodings leave the bytes as-is.
func Encode(cte string, b []byte) ([]byte, error) {
	tc := Transcodings[Normalize(cte)]

	var buf bytes.Buffer
	w := tc.Encoder(&buf)
	if _, err := w.Write(b); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode turns the textual content of a MIME part into bytes according to the
// part's Content-transfer-encoding and charset. An empty charset means
// US-ASCII.
//
// Quoted-printable content is decoded to bytes, read as text in the charset,
// and written back out in that same charset. Base64 content is decoded
// strictly. Content in any other transfer encoding is returned as-is.
//
// Decode never fails to return content. When the content is damaged, the
// returned bytes are a best effort (for base64, the content itself) and the
// error says what went wrong. Callers wanting to carry on may log the error
// and use the bytes.
func Decode(cte, charset, content string) ([]byte, error) {
	n := Normalize(cte)

	in := content
	if n == Base64 {
		in = stripSpace(content)
	}

	b, err := io.ReadAll(Transcodings[n].Decoder(strings.NewReader(in)))

	switch n {
	case Base64:
		if err != nil {
			return []byte(content), fmt.Errorf("%w: %v", ErrCorruptBase64, err)
		}
		return b, nil
	case QuotedPrintable:
		if err != nil {
			return []byte(content), fmt.Errorf("%w: %v", ErrCorruptQuotedPrintable, err)
		}
		return recode(charset, b)
	default:
		return b, err
	}
}

// recode reads decoded quoted-printable bytes as text in the charset and
// writes them back out in that charset, so that characters of the charset
// survive as that charset.
func recode(charset string, b []byte) ([]byte, error) {
	s, err := encoding.Decode(charset, b)
	if err != nil {
		return b, err
	}

	eb, err := encoding.Encode(charset, s)
	if err != nil {
		return b, err
	}

	return eb, nil
}
