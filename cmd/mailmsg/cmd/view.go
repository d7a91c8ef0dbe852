package cmd

import (
	"io"
	"time"

	"github.com/zostay/go-addr/pkg/addr"
	"gopkg.in/yaml.v3"

	"github.com/zostay/go-mailmsg/message"
)

// view is the printable form of a message.
type view struct {
	Subject        string         `yaml:"subject"`
	SubjectCharset string         `yaml:"subject_charset"`
	Priority       string         `yaml:"priority"`
	Date           string         `yaml:"date,omitempty"`
	MessageID      string         `yaml:"message_id,omitempty"`
	InReplyTo      string         `yaml:"in_reply_to,omitempty"`
	References     []string       `yaml:"references,omitempty"`
	From           string         `yaml:"from,omitempty"`
	Sender         string         `yaml:"sender,omitempty"`
	To             []string       `yaml:"to,omitempty"`
	Cc             []string       `yaml:"cc,omitempty"`
	Bcc            []string       `yaml:"bcc,omitempty"`
	ReplyTo        []string       `yaml:"reply_to,omitempty"`
	Headers        []headerView   `yaml:"headers,omitempty"`
	Body           string         `yaml:"body"`
	BodyCharset    string         `yaml:"body_charset"`
	IsBodyHTML     bool           `yaml:"is_body_html"`
	Attachments    []resourceView `yaml:"attachments,omitempty"`
	AlternateViews []resourceView `yaml:"alternate_views,omitempty"`
}

type headerView struct {
	Name string `yaml:"name"`
	Body string `yaml:"body"`
}

type resourceView struct {
	Filename    string `yaml:"filename,omitempty"`
	ContentType string `yaml:"content_type"`
	ContentID   string `yaml:"content_id,omitempty"`
	Size        int    `yaml:"size"`
}

func mailbox(mb *addr.Mailbox) string {
	if mb == nil {
		return ""
	}
	if dn := mb.DisplayName(); dn != "" {
		return dn + " <" + mb.Address() + ">"
	}
	return mb.Address()
}

func mailboxes(al []*addr.Mailbox) []string {
	if len(al) == 0 {
		return nil
	}
	ss := make([]string, len(al))
	for i, mb := range al {
		ss[i] = mailbox(mb)
	}
	return ss
}

func newView(m *message.Message) *view {
	v := &view{
		Subject:        m.Subject,
		SubjectCharset: m.SubjectCharset,
		Priority:       m.Priority.String(),
		MessageID:      m.MessageID,
		InReplyTo:      m.InReplyTo,
		References:     m.References,
		From:           mailbox(m.From),
		Sender:         mailbox(m.Sender),
		To:             mailboxes(m.To),
		Cc:             mailboxes(m.Cc),
		Bcc:            mailboxes(m.Bcc),
		ReplyTo:        mailboxes(m.ReplyTo),
		Body:           m.Body,
		BodyCharset:    m.BodyCharset,
		IsBodyHTML:     m.IsBodyHTML,
	}

	if !m.Date.IsZero() {
		v.Date = m.Date.Format(time.RFC1123Z)
	}

	for _, f := range m.Header.ListFields() {
		v.Headers = append(v.Headers, headerView{f.Name(), f.Body()})
	}

	for _, a := range m.Attachments {
		v.Attachments = append(v.Attachments, resourceView{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			ContentID:   a.ContentID,
			Size:        len(a.Content),
		})
	}

	for _, av := range m.AlternateViews {
		v.AlternateViews = append(v.AlternateViews, resourceView{
			ContentType: av.ContentType,
			ContentID:   av.ContentID,
			Size:        len(av.Content),
		})
	}

	return v
}

func renderYAML(w io.Writer, m *message.Message) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newView(m)); err != nil {
		return err
	}
	return enc.Close()
}
