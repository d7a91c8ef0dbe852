package message

import (
	"time"

	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-mailmsg/encoding"
	"github.com/zostay/go-mailmsg/header"
	"github.com/zostay/go-mailmsg/param"
)

// Resource is content carried by a message alongside its body.
type Resource struct {
	// ContentType is the lowercase type/subtype of the content.
	ContentType string

	// ContentID is the token of the part's Content-ID, without angle
	// brackets, or empty if the part had none (or a malformed one).
	ContentID string

	// Content is the decoded content.
	Content []byte
}

// Attachment is a part of the message with an attachment disposition.
type Attachment struct {
	Resource

	// Filename is the name given by the disposition or a generated one.
	Filename string
}

// AlternateView is another rendering of the message body.
type AlternateView struct {
	Resource
}

// Message is an assembled mail message.
type Message struct {
	// Header holds every header field accepted by the header store, in the
	// order they were applied.
	Header header.Header

	// ContentType is the parsed top-level Content-type, or nil.
	ContentType *param.Value

	// Subject is the decoded subject and SubjectCharset is the charset it was
	// written in.
	Subject        string
	SubjectCharset string

	Priority Priority

	// Date is the zero time if the Date header was missing or unreadable.
	Date time.Time

	// MessageID and InReplyTo hold the tokens, without angle brackets.
	MessageID  string
	InReplyTo  string
	References []string

	// From and Sender hold only a single address each.
	From   *addr.Mailbox
	Sender *addr.Mailbox

	To      []*addr.Mailbox
	Cc      []*addr.Mailbox
	Bcc     []*addr.Mailbox
	ReplyTo []*addr.Mailbox

	// Body is the text of the first text part, BodyCharset is the charset it
	// was written in, and IsBodyHTML is true if that part was text/html.
	Body        string
	BodyCharset string
	IsBodyHTML  bool

	Attachments    []*Attachment
	AlternateViews []*AlternateView

	hasBody bool
}

// New returns an empty message.
func New() *Message {
	return &Message{
		SubjectCharset: encoding.USASCII,
		BodyCharset:    encoding.USASCII,
		Priority:       Normal,
	}
}

// HasBody reports whether a body part has been set as the message body.
func (m *Message) HasBody() bool {
	return m.hasBody
}
