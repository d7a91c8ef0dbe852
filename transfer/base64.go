package transfer

import (
	"encoding/base64"
	"io"
	"strings"
	"unicode"
)

const defaultBase64LineLength = 76

var defaultBase64LineBreak = []byte{'\n'}

type newlineWriter struct {
	every int
	acc   int
	lbr   []byte
	w     io.Writer
}

func (nw *newlineWriter) Write(b []byte) (int, error) {
	ix, n := 0, 0
	for len(b[ix:])+nw.acc > nw.every {
		ln, err := nw.w.Write(b[ix : ix+(nw.every-nw.acc)])
		n += ln
		if err != nil {
			return n, err
		}

		_, err = nw.w.Write(nw.lbr)
		if err != nil {
			return n, err
		}

		ix += nw.every - nw.acc
		nw.acc = 0
	}

	ln, err := nw.w.Write(b[ix:])
	n += ln
	if err != nil {
		return n, err
	}

	nw.acc = (nw.acc + len(b[ix:])) % nw.every

	return n, nil
}

// NewBase64Encoder will translate all bytes written to the returned
// io.WriteCloser into base64 encoding, broken into lines of 76 characters,
// and write those to the give io.Writer.
func NewBase64Encoder(w io.Writer) io.WriteCloser {
	return base64.NewEncoder(base64.StdEncoding, &newlineWriter{
		every: defaultBase64LineLength,
		lbr:   defaultBase64LineBreak,
		w:     w,
	})
}

// NewBase64Decoder will translate all bytes read from the given io.Reader as
// base64 and return the binary data to the returned io.Reader.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}

// stripSpace removes line breaks and all other white space from base64
// content, which leaves only the characters a strict decoder will judge.
func stripSpace(content string) string {
	return strings.Map(func(c rune) rune {
		if unicode.IsSpace(c) {
			return -1
		}
		return c
	}, content)
}
