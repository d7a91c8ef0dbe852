package message_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailmsg/encoding"
	"github.com/zostay/go-mailmsg/header"
	"github.com/zostay/go-mailmsg/message"
)

func parseHeader(t *testing.T, s string) *header.Header {
	t.Helper()

	h, dropped := header.Parse([]byte(s), header.LF)
	require.Empty(t, dropped)
	return h
}

func TestBuilder_ApplyHeader(t *testing.T) {
	t.Parallel()

	h := parseHeader(t, `From: Alice <alice@example.com>
Sender: Robot <robot@example.com>
To: A <a@x.com>, B <b@y.com>
Cc: c@example.com
Bcc: d@example.com, not valid
Reply-To: replies@example.com
Subject: =?UTF-8?Q?Hi=20there?=
Priority: Urgent
Date: Sat, 04 Mar 2023 12:30:00 +0000
Message-ID: <m1@example.com>
In-Reply-To: <m0@example.com>
References: <a@example.com> junk <b@example.com><c@example.com>
Content-Type: multipart/alternative; boundary=xyz
X-Empty:
`)

	b := message.NewBuilder()
	b.ApplyHeader(h)
	m := b.Message()

	assert.Equal(t, "Hi there", m.Subject)
	assert.Equal(t, encoding.UTF8, m.SubjectCharset)
	assert.Equal(t, message.High, m.Priority)
	assert.True(t, time.Date(2023, time.March, 4, 12, 30, 0, 0, time.UTC).Equal(m.Date))
	assert.Equal(t, "m1@example.com", m.MessageID)
	assert.Equal(t, "m0@example.com", m.InReplyTo)
	assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, m.References)

	require.NotNil(t, m.ContentType)
	assert.Equal(t, "multipart/alternative", m.ContentType.MediaType())
	assert.Equal(t, "xyz", m.ContentType.Boundary())

	require.NotNil(t, m.From)
	assert.Equal(t, "Alice", m.From.DisplayName())
	assert.Equal(t, "alice@example.com", m.From.Address())

	require.NotNil(t, m.Sender)
	assert.Equal(t, "robot@example.com", m.Sender.Address())

	require.Len(t, m.To, 2)
	assert.Equal(t, "A", m.To[0].DisplayName())
	assert.Equal(t, "a@x.com", m.To[0].Address())
	assert.Equal(t, "B", m.To[1].DisplayName())
	assert.Equal(t, "b@y.com", m.To[1].Address())

	require.Len(t, m.Cc, 1)
	require.Len(t, m.Bcc, 1)
	assert.Equal(t, "d@example.com", m.Bcc[0].Address())
	require.Len(t, m.ReplyTo, 1)

	// X-Empty is refused by the header store, everything else is kept
	assert.Equal(t, h.Len()-1, m.Header.Len())
	_, err := m.Header.Get("X-Empty")
	assert.ErrorIs(t, err, header.ErrNoSuchField)
	to, err := m.Header.Get("to")
	require.NoError(t, err)
	assert.Equal(t, "A <a@x.com>, B <b@y.com>", to)
}

func TestBuilder_ApplyHeader_Defaults(t *testing.T) {
	t.Parallel()

	b := message.NewBuilder()
	b.ApplyHeader(parseHeader(t, "Subject: Hello\nPriority: bogus\nMessage-ID: no-brackets\n"))
	m := b.Message()

	assert.Equal(t, "Hello", m.Subject)
	assert.Equal(t, encoding.USASCII, m.SubjectCharset)
	assert.Equal(t, message.Normal, m.Priority)
	assert.Empty(t, m.MessageID)
	assert.True(t, m.Date.IsZero())
	assert.Nil(t, m.From)
	assert.Nil(t, m.ContentType)
	assert.Empty(t, m.To)

	b = message.NewBuilder()
	b.ApplyHeader(&header.Header{})
	m = b.Message()

	assert.Equal(t, "", m.Subject)
	assert.Equal(t, encoding.USASCII, m.SubjectCharset)
	assert.Equal(t, message.Normal, m.Priority)
}

func TestBuilder_ApplyHeader_LastFromWins(t *testing.T) {
	t.Parallel()

	b := message.NewBuilder()
	b.ApplyHeader(parseHeader(t, `From: First <first@example.com>, Second <second@example.com>
To: one@example.com
From: Forged <forged@example.net>
To: two@example.com, one@example.com
From: garbage
`))
	m := b.Message()

	require.NotNil(t, m.From)
	assert.Equal(t, "forged@example.net", m.From.Address())

	require.Len(t, m.To, 3)
	assert.Equal(t, "one@example.com", m.To[0].Address())
	assert.Equal(t, "two@example.com", m.To[1].Address())
	assert.Equal(t, "one@example.com", m.To[2].Address())
}

func TestBuilder_AddBodyPart(t *testing.T) {
	t.Parallel()

	b := message.NewBuilder(message.WithFilenameGenerator(func() string { return "generated.bin" }))

	b.AddBodyPart(&message.BodyPart{
		Type:       "text",
		Subtype:    "HTML",
		Parameters: map[string]string{"Charset": "utf-8"},
	}, []byte("<p>café</p>"))

	b.AddBodyPart(&message.BodyPart{
		Type:    "text",
		Subtype: "plain",
	}, []byte("plain version"))

	b.AddBodyPart(&message.BodyPart{
		ID:          "<logo@example.com>",
		Type:        "Image",
		Subtype:     "PNG",
		Disposition: message.Disposition{Type: "attachment", Filename: "logo.png"},
	}, []byte{0x89, 'P', 'N', 'G'})

	b.AddBodyPart(&message.BodyPart{
		ID:          "not-a-content-id",
		Type:        "application",
		Subtype:     "pdf",
		Disposition: message.Disposition{Type: "ATTACHMENT"},
	}, []byte("%PDF"))

	b.AddBodyPart(nil, nil)

	m := b.Message()

	assert.True(t, m.HasBody())
	assert.True(t, m.IsBodyHTML)
	assert.Equal(t, "<p>café</p>", m.Body)
	assert.Equal(t, encoding.UTF8, m.BodyCharset)

	require.Len(t, m.AlternateViews, 1)
	assert.Equal(t, "text/plain", m.AlternateViews[0].ContentType)
	assert.Equal(t, []byte("plain version"), m.AlternateViews[0].Content)
	assert.Empty(t, m.AlternateViews[0].ContentID)

	require.Len(t, m.Attachments, 2)
	assert.Equal(t, "logo.png", m.Attachments[0].Filename)
	assert.Equal(t, "image/png", m.Attachments[0].ContentType)
	assert.Equal(t, "logo@example.com", m.Attachments[0].ContentID)

	assert.Equal(t, "generated.bin", m.Attachments[1].Filename)
	assert.Equal(t, "application/pdf", m.Attachments[1].ContentType)
	assert.Empty(t, m.Attachments[1].ContentID)
	assert.Equal(t, []byte("%PDF"), m.Attachments[1].Content)
}

func TestBuilder_AddBodyPart_AttachmentBeforeBody(t *testing.T) {
	t.Parallel()

	b := message.NewBuilder()

	// a non-text part first cannot be the body
	b.AddBodyPart(&message.BodyPart{
		Type:        "application",
		Subtype:     "zip",
		Disposition: message.Disposition{Type: "attachment"},
	}, []byte("PK"))

	// a text attachment seen first becomes the body
	b.AddBodyPart(&message.BodyPart{
		Type:        "text",
		Subtype:     "csv",
		Disposition: message.Disposition{Type: "attachment", Filename: "data.csv"},
	}, []byte("a,b"))

	m := b.Message()
	assert.Equal(t, "a,b", m.Body)
	assert.False(t, m.IsBodyHTML)
	assert.Equal(t, encoding.USASCII, m.BodyCharset)

	require.Len(t, m.Attachments, 1)
	assert.True(t, strings.HasPrefix(m.Attachments[0].Filename, message.DefaultFilenamePrefix))
	assert.Greater(t, len(m.Attachments[0].Filename), len(message.DefaultFilenamePrefix))
	assert.Equal(t, "application/zip", m.Attachments[0].ContentType)
}

func TestBuilder_AddBodyPart_Charsets(t *testing.T) {
	t.Parallel()

	b := message.NewBuilder()
	b.AddBodyPart(&message.BodyPart{
		Type:       "text",
		Subtype:    "plain",
		Parameters: map[string]string{"charset": "iso-8859-1"},
	}, []byte("caf\xe9"))

	m := b.Message()
	assert.Equal(t, "café", m.Body)
	assert.Equal(t, "ISO-8859-1", m.BodyCharset)

	b = message.NewBuilder()
	b.AddBodyPart(&message.BodyPart{
		Type:       "text",
		Subtype:    "plain",
		Parameters: map[string]string{"charset": "x-martian"},
	}, []byte("hello"))

	m = b.Message()
	assert.Equal(t, "hello", m.Body)
	assert.Equal(t, "x-martian", m.BodyCharset)
}

func TestRandomFilename(t *testing.T) {
	t.Parallel()

	gen := message.RandomFilename("part-")
	a, b := gen(), gen()
	assert.True(t, strings.HasPrefix(a, "part-"))
	assert.Len(t, a, len("part-")+16)
	assert.NotEqual(t, a, b)
}

func TestRandomToken(t *testing.T) {
	t.Parallel()

	tok := message.RandomToken(bytes.NewReader([]byte{0, 1, 2, 3, 0xa, 0xb, 0xc, 0xd}))
	assert.Equal(t, "000102030a0b0c0d", tok)

	// no entropy must not stop a message from being built
	var a, b string
	assert.NotPanics(t, func() {
		a = message.RandomToken(iotest.ErrReader(errors.New("no entropy")))
		b = message.RandomToken(bytes.NewReader([]byte{1, 2, 3}))
	})
	assert.Len(t, a, 16)
	assert.Len(t, b, 16)
	assert.NotEqual(t, a, b)
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := message.NewBuilder(message.WithLogger(logger))
	b.ApplyHeader(parseHeader(t, "Message-ID: broken\nX-Empty:\n"))
	b.AddBodyPart(&message.BodyPart{
		ID:          "broken",
		Type:        "image",
		Subtype:     "gif",
		Disposition: message.Disposition{Type: "attachment"},
	}, nil)

	out := buf.String()
	assert.Contains(t, out, "header field dropped")
	assert.Contains(t, out, "message id left unset")
	assert.Contains(t, out, "content id left unset")

	// a nil logger falls back to the silent default
	assert.NotPanics(t, func() {
		b := message.NewBuilder(message.WithLogger(nil))
		b.ApplyHeader(parseHeader(t, "X-Empty:\n"))
	})
}
