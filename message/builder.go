package message

import (
	"errors"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-mailmsg/encoding"
	"github.com/zostay/go-mailmsg/header"
	"github.com/zostay/go-mailmsg/header/field"
)

// Builder applies a parsed header and body parts to a single Message. A
// Builder must only be used from one goroutine at a time. Parts are applied
// in the order AddBodyPart is called, and that order decides which part
// becomes the body.
type Builder struct {
	*builderConfig
	m *Message
}

// NewBuilder starts building a new message.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{
		builderConfig: newBuilderConfig(opts),
		m:             New(),
	}
}

// Message returns the message built so far.
func (b *Builder) Message() *Message {
	return b.m
}

// ApplyHeader copies every field of the header into the message header store
// and sets the message fields given meaning by the header. The message header
// takes on the line break of the given header.
func (b *Builder) ApplyHeader(h *header.Header) {
	b.m.Header.SetBreak(h.Break())
	for _, f := range h.ListFields() {
		if err := b.m.Header.Add(f.Name(), f.Body()); err != nil {
			b.logger.Debug("header field dropped", "field", f.Name(), "error", err)
		}
	}

	b.applySubject(h)
	b.applyPriority(h)
	b.applyDate(h)
	b.applyIDs(h)
	b.applyContentType(h)

	for _, f := range h.ListFields() {
		b.applyAddress(f)
	}
}

func (b *Builder) applySubject(h *header.Header) {
	raw, err := h.Get(header.Subject)
	if err != nil {
		b.m.Subject, b.m.SubjectCharset = "", encoding.USASCII
		return
	}

	s, cs, err := field.DecodeSubject(raw)
	if err != nil {
		b.logger.Debug("subject left undecoded", "subject", raw, "error", err)
	}

	b.m.Subject, b.m.SubjectCharset = s, cs
}

func (b *Builder) applyPriority(h *header.Header) {
	body, err := h.Get(header.Priority)
	if err != nil {
		b.m.Priority = Normal
		return
	}

	b.m.Priority = ParsePriority(body)
}

func (b *Builder) applyDate(h *header.Header) {
	d, err := h.GetDate()
	switch {
	case errors.Is(err, header.ErrNoSuchField):
	case err != nil:
		b.logger.Debug("date left unset", "error", err)
	default:
		b.m.Date = d
	}
}

func (b *Builder) applyIDs(h *header.Header) {
	if body, err := h.Get(header.MessageID); err == nil {
		id, err := ParseMessageID(body)
		if err != nil {
			b.logger.Debug("message id left unset", "error", err)
		} else {
			b.m.MessageID = id
		}
	}

	if body, err := h.Get(header.InReplyTo); err == nil {
		id, err := ParseMessageID(body)
		if err != nil {
			b.logger.Debug("in-reply-to left unset", "error", err)
		} else {
			b.m.InReplyTo = id
		}
	}

	if body, err := h.Get(header.References); err == nil {
		ids, bad := parseMessageIDList(body)
		if len(bad) > 0 {
			b.logger.Debug("references skipped", "references", bad)
		}
		b.m.References = ids
	}
}

func (b *Builder) applyContentType(h *header.Header) {
	ct, err := h.GetContentType()
	if err == nil {
		b.m.ContentType = ct
	}
}

func (b *Builder) applyAddress(f *field.Field) {
	name := strings.ToLower(f.Name())

	var list *[]*addr.Mailbox
	var single **addr.Mailbox
	switch name {
	case strings.ToLower(header.To):
		list = &b.m.To
	case strings.ToLower(header.Cc):
		list = &b.m.Cc
	case strings.ToLower(header.Bcc):
		list = &b.m.Bcc
	case strings.ToLower(header.ReplyTo):
		list = &b.m.ReplyTo
	case strings.ToLower(header.From):
		single = &b.m.From
	case strings.ToLower(header.Sender):
		single = &b.m.Sender
	default:
		return
	}

	al := header.ParseAddressList(f.Body())
	if len(al) == 0 {
		b.logger.Debug("no address found", "field", f.Name(), "body", f.Body())
		return
	}

	if list != nil {
		*list = append(*list, al...)
		return
	}

	*single = al[0]
}

// AddBodyPart applies one body part and its decoded content to the message.
//
// If the message has no body yet and the part is text, the part becomes the
// body and nothing else. Otherwise, a part with an attachment disposition is
// added as an attachment, and any other part is added as an alternate view.
func (b *Builder) AddBodyPart(part *BodyPart, content []byte) {
	if part == nil {
		b.logger.Debug("nil body part ignored")
		return
	}

	switch {
	case !b.m.hasBody && part.IsText():
		b.setBody(part, content)
	case part.Disposition.IsAttachment():
		b.addAttachment(part, content)
	default:
		b.addAlternateView(part, content)
	}
}

func (b *Builder) setBody(part *BodyPart, content []byte) {
	charset := part.Charset()

	text, err := encoding.Decode(charset, content)
	if err != nil {
		b.logger.Debug("body charset unknown, reading as UTF-8", "charset", charset, "error", err)
		text = strings.ToValidUTF8(string(content), "\uFFFD")
	}

	cn, err := encoding.Canonical(charset)
	if err != nil {
		cn = charset
	}

	b.m.Body = text
	b.m.BodyCharset = cn
	b.m.IsBodyHTML = part.IsHTML()
	b.m.hasBody = true
}

func (b *Builder) resource(part *BodyPart, content []byte) Resource {
	r := Resource{
		ContentType: part.MediaType(),
		Content:     content,
	}

	if part.ID != "" {
		id, err := ParseMessageID(part.ID)
		if err != nil {
			b.logger.Debug("content id left unset", "error", err)
		} else {
			r.ContentID = id
		}
	}

	return r
}

func (b *Builder) addAttachment(part *BodyPart, content []byte) {
	name := strings.TrimSpace(part.Disposition.Filename)
	if name == "" {
		name = b.filename()
	}

	b.m.Attachments = append(b.m.Attachments, &Attachment{
		Resource: b.resource(part, content),
		Filename: name,
	})
}

func (b *Builder) addAlternateView(part *BodyPart, content []byte) {
	b.m.AlternateViews = append(b.m.AlternateViews, &AlternateView{
		Resource: b.resource(part, content),
	})
}
