package transfer

import (
	"io"
	"mime/quotedprintable"
)

// closeWriter pairs a writer with the closer that flushes it. The closer is
// nil when there is nothing to flush.
type closeWriter struct {
	io.Writer
	closer io.Closer
}

// Close flushes the encoder, if there is one.
func (w *closeWriter) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// NewAsIsEncoder returns an io.WriteCloser that passes bytes through
// unchanged. It is used for 7bit, 8bit, and binary content.
func NewAsIsEncoder(w io.Writer) io.WriteCloser {
	return &closeWriter{Writer: w}
}

// NewAsIsDecoder returns the reader unchanged.
func NewAsIsDecoder(r io.Reader) io.Reader {
	return r
}

// NewQuotedPrintableEncoder returns an io.WriteCloser that writes bytes to w
// in quoted-printable form. Close must be called to flush the final line.
func NewQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	return &closeWriter{Writer: qpw, closer: qpw}
}

// NewQuotedPrintableDecoder returns a reader of the bytes encoded as
// quoted-printable in r.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(r)
}
