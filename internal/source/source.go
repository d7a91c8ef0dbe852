// Package source reads a complete RFC 5322 message and produces what the
// message package expects to be handed: the raw header text and the leaf MIME
// parts of the message, with their content still transfer encoded. It plays
// the part a BODYSTRUCTURE fetch would play for an IMAP client.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/zostay/go-mailmsg/header"
	"github.com/zostay/go-mailmsg/message"
	"github.com/zostay/go-mailmsg/param"
)

// DefaultMaxDepth is the default depth Split will recurse into a multipart
// message.
const DefaultMaxDepth = 10

// ErrNoBoundary is returned when a multipart part has no boundary parameter.
var ErrNoBoundary = errors.New("the boundary parameter is missing from Content-type")

var splits = [][]byte{
	[]byte("\x0d\x0a\x0d\x0a"), // \r\n\r\n
	[]byte("\x0a\x0a"),         // \n\n
	[]byte("\x0d\x0d"),         // \r\r
}

// SplitHeader separates the header from the body at the first blank line. If
// there is no blank line, the whole input is the header.
func SplitHeader(raw []byte) (hdr, body []byte) {
	best, sepLen := -1, 0
	for _, s := range splits {
		if ix := bytes.Index(raw, s); ix >= 0 && (best < 0 || ix < best) {
			best, sepLen = ix, len(s)
		}
	}

	if best < 0 {
		return raw, nil
	}

	return raw[:best], raw[best+sepLen:]
}

// Split breaks a raw message into its header text and flattened leaf body
// parts, in depth-first order.
func Split(raw []byte) ([]byte, []*message.BodyPart, error) {
	hdr, body := SplitHeader(raw)

	h, _ := header.Parse(hdr, header.Meh)
	get := func(name string) string {
		v, _ := h.Get(name)
		return v
	}

	parts, err := walk(get, body, DefaultMaxDepth)
	return hdr, parts, err
}

// walk turns one entity into body parts, recursing into multipart entities.
func walk(get func(string) string, body []byte, depth int) ([]*message.BodyPart, error) {
	mt, ps := parseParamValue(get("Content-Type"))
	if mt == "" {
		mt = "text/plain"
	}

	if !strings.HasPrefix(mt, "multipart/") || depth <= 0 {
		return []*message.BodyPart{leaf(get, mt, ps, body)}, nil
	}

	boundary := ps["boundary"]
	if boundary == "" {
		return nil, ErrNoBoundary
	}

	var parts []*message.BodyPart
	mr := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		p, err := mr.NextRawPart()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return parts, fmt.Errorf("reading multipart: %w", err)
		}

		pb, err := io.ReadAll(p)
		if err != nil {
			return parts, fmt.Errorf("reading part: %w", err)
		}

		sub, err := walk(headerGetter(p.Header), pb, depth-1)
		parts = append(parts, sub...)
		if err != nil {
			return parts, err
		}
	}

	return parts, nil
}

func headerGetter(h textproto.MIMEHeader) func(string) string {
	return func(name string) string {
		return strings.TrimSpace(h.Get(name))
	}
}

// parseParamValue parses a Content-type or Content-disposition body. The
// strict parser is tried first because it understands quoting and RFC 2231
// continuations. When it refuses the value, the lenient param.Parse is used so
// that whatever can be read, such as the charset, is still kept. The media
// type and parameter names are lowercased and surrounding quotes removed
// either way.
func parseParamValue(body string) (string, map[string]string) {
	if mt, ps, err := mime.ParseMediaType(body); err == nil {
		return mt, ps
	}

	pv := param.Parse(body)
	ps := make(map[string]string, len(pv.Parameters()))
	for k, v := range pv.Parameters() {
		ps[strings.ToLower(k)] = strings.Trim(v, `"`)
	}

	return strings.ToLower(pv.Value()), ps
}

// leaf builds the descriptor of a single part.
func leaf(get func(string) string, mt string, ps map[string]string, body []byte) *message.BodyPart {
	typ, sub := mt, ""
	if ix := strings.IndexByte(mt, '/'); ix >= 0 {
		typ, sub = mt[:ix], mt[ix+1:]
	}

	bp := &message.BodyPart{
		ID:         get("Content-ID"),
		Type:       typ,
		Subtype:    sub,
		Encoding:   get("Content-Transfer-Encoding"),
		Parameters: ps,
		Content:    string(body),
	}

	if cd := get("Content-Disposition"); cd != "" {
		d, dps := parseParamValue(cd)
		bp.Disposition = message.Disposition{Type: d, Filename: dps[param.Filename]}
	}

	if bp.Disposition.Filename == "" {
		bp.Disposition.Filename = ps["name"]
	}

	return bp
}
