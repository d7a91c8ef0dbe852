package message

import (
	"crypto/rand"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/zostay/go-mailmsg/encoding"
	"github.com/zostay/go-mailmsg/header"
	"github.com/zostay/go-mailmsg/param"
	"github.com/zostay/go-mailmsg/transfer"
)

// maxLineLength is the longest line RFC 5322 permits, not counting the break.
const maxLineLength = 998

// contentFields name the header fields that describe the content of the
// message. WriteTo replaces them with fields describing what it writes.
var contentFields = map[string]struct{}{
	strings.ToLower(header.ContentType):             {},
	strings.ToLower(header.ContentTransferEncoding): {},
	strings.ToLower(header.ContentDisposition):      {},
	strings.ToLower(header.ContentID):               {},
	strings.ToLower(header.MIMEVersion):             {},
}

// countingWriter remembers the first error and counts the bytes written.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(b []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}

	n, err := cw.w.Write(b)
	cw.n += int64(n)
	cw.err = err
	return n, err
}

// entity is a MIME entity ready to be written. A leaf has transfer encoded
// content. A multipart has parts and a boundary.
type entity struct {
	header   *header.Header
	content  []byte
	parts    []*entity
	boundary string
}

func newEntityHeader(br header.Break) *header.Header {
	h := &header.Header{}
	h.SetBreak(br)
	return h
}

// leafEntity encodes the content with the named transfer encoding.
func leafEntity(br header.Break, contentType, cte string, content []byte) (*entity, error) {
	enc, err := transfer.Encode(cte, content)
	if err != nil {
		return nil, fmt.Errorf("encoding %s content: %w", contentType, err)
	}

	h := newEntityHeader(br)
	_ = h.Add(header.ContentType, contentType)
	_ = h.Add(header.ContentTransferEncoding, cte)

	return &entity{header: h, content: enc}, nil
}

func multipartEntity(br header.Break, subtype string, parts []*entity) *entity {
	boundary := "=_" + randomToken(rand.Reader)

	ct := param.New("multipart/"+subtype, map[string]string{
		param.Boundary: `"` + boundary + `"`,
	})

	h := newEntityHeader(br)
	_ = h.Add(header.ContentType, ct.String())

	return &entity{header: h, parts: parts, boundary: boundary}
}

// writeBody writes everything after the blank line ending the entity header.
func (e *entity) writeBody(w io.Writer, br header.Break) {
	if e.parts == nil {
		_, _ = w.Write(e.content)
		_, _ = io.WriteString(w, br.String())
		return
	}

	for _, p := range e.parts {
		_, _ = fmt.Fprintf(w, "--%s%s", e.boundary, br)
		_, _ = p.header.WriteTo(w)
		_, _ = io.WriteString(w, br.String())
		p.writeBody(w, br)
	}

	_, _ = fmt.Fprintf(w, "--%s--%s", e.boundary, br)
}

// needsQuoting reports whether content cannot go out as 7bit.
func needsQuoting(b []byte) bool {
	line := 0
	for _, c := range b {
		switch {
		case c > 0x7f:
			return true
		case c == '\n':
			line = 0
		default:
			line++
			if line > maxLineLength {
				return true
			}
		}
	}
	return false
}

// bodyEntity writes the body in its own charset when the charset can carry
// it and in UTF-8 otherwise.
func (m *Message) bodyEntity(br header.Break) (*entity, error) {
	charset := m.BodyCharset
	if needsQuoting([]byte(m.Body)) && strings.EqualFold(charset, encoding.USASCII) {
		charset = encoding.UTF8
	}

	b, err := encoding.Encode(charset, m.Body)
	if err != nil {
		charset, b = encoding.UTF8, []byte(m.Body)
	}

	subtype := "plain"
	if m.IsBodyHTML {
		subtype = "html"
	}

	ct := param.New("text/"+subtype, map[string]string{param.Charset: charset})

	cte := transfer.Bit7
	if needsQuoting(b) {
		cte = transfer.QuotedPrintable
	}

	return leafEntity(br, ct.String(), cte, b)
}

func resourceEntity(br header.Break, r Resource) (*entity, error) {
	ct := r.ContentType
	if ct == "" || ct == "/" {
		ct = "application/octet-stream"
	}

	e, err := leafEntity(br, ct, transfer.Base64, r.Content)
	if err != nil {
		return nil, err
	}

	if r.ContentID != "" {
		_ = e.header.Add(header.ContentID, "<"+r.ContentID+">")
	}

	return e, nil
}

func attachmentEntity(br header.Break, a *Attachment) (*entity, error) {
	e, err := resourceEntity(br, a.Resource)
	if err != nil {
		return nil, err
	}

	cd := mime.FormatMediaType(DispositionAttachment, map[string]string{param.Filename: a.Filename})
	if cd == "" {
		cd = DispositionAttachment
	}
	_ = e.header.Add(header.ContentDisposition, cd)

	return e, nil
}

// content arranges the body, alternate views, and attachments into a single
// entity. The body and its alternate views go together in a
// multipart/alternative, and that goes with the attachments in a
// multipart/mixed. A multipart holding only one part is left out.
func (m *Message) content(br header.Break) (*entity, error) {
	var views []*entity
	if m.hasBody {
		e, err := m.bodyEntity(br)
		if err != nil {
			return nil, err
		}
		views = append(views, e)
	}

	for _, av := range m.AlternateViews {
		e, err := resourceEntity(br, av.Resource)
		if err != nil {
			return nil, err
		}
		views = append(views, e)
	}

	var mixed []*entity
	switch len(views) {
	case 0:
	case 1:
		mixed = append(mixed, views[0])
	default:
		mixed = append(mixed, multipartEntity(br, "alternative", views))
	}

	for _, a := range m.Attachments {
		e, err := attachmentEntity(br, a)
		if err != nil {
			return nil, err
		}
		mixed = append(mixed, e)
	}

	switch len(mixed) {
	case 0:
		ct := param.New("text/plain", map[string]string{param.Charset: encoding.USASCII})
		return leafEntity(br, ct.String(), transfer.Bit7, nil)
	case 1:
		return mixed[0], nil
	default:
		return multipartEntity(br, "mixed", mixed), nil
	}
}

// WriteTo writes the message to w as a MIME message, using the line break of
// the message header.
//
// The header fields are written as stored, except for the fields describing
// the content, which are replaced. The body is written as quoted-printable if
// it cannot be sent as 7bit. Alternate views and attachments are written as
// base64.
func (m *Message) WriteTo(w io.Writer) (int64, error) {
	br := m.Header.Break()

	e, err := m.content(br)
	if err != nil {
		return 0, err
	}

	top := newEntityHeader(br)
	for _, f := range m.Header.ListFields() {
		if _, skip := contentFields[strings.ToLower(f.Name())]; !skip {
			_ = top.Add(f.Name(), f.Body())
		}
	}

	_ = top.Add(header.MIMEVersion, "1.0")
	for _, f := range e.header.ListFields() {
		_ = top.Add(f.Name(), f.Body())
	}

	cw := &countingWriter{w: w}
	_, _ = top.WriteTo(cw)
	_, _ = io.WriteString(cw, br.String())
	e.writeBody(cw, br)

	return cw.n, cw.err
}
