package header

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-mailmsg/header/field"
	"github.com/zostay/go-mailmsg/param"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by Header methods when the operation
	// being performed failed because the header named does not exist.
	ErrNoSuchField = errors.New("no such header field")

	// ErrEmptyFieldName is returned by Add when the field name is blank.
	ErrEmptyFieldName = errors.New("header field name is empty")

	// ErrEmptyFieldBody is returned by Add when the field body is blank.
	ErrEmptyFieldBody = errors.New("header field body is empty")
)

// These are the header fields given meaning while building or writing a
// message.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	ContentDisposition      = "Content-disposition"
	ContentID               = "Content-id"
	ContentTransferEncoding = "Content-transfer-encoding"
	ContentType             = "Content-type"
	Date                    = "Date"
	From                    = "From"
	InReplyTo               = "In-reply-to"
	MessageID               = "Message-id"
	MIMEVersion             = "Mime-version"
	Priority                = "Priority"
	References              = "References"
	ReplyTo                 = "Reply-to"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// Even more custom date formats, built from those seen in the wild that the
// usual parsers have trouble with.
const (
	// UnixDateWithEarlyYear is a weird one, eh?
	UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"
)

// Header wraps a Base, which does the actual storage, and adds methods for
// reading field bodies and the semantic values held in them.
//
// A Header built by Parse is never modified afterward by this library.
type Header struct {
	Base
}

// Add appends a field to the end of the header. The header store refuses
// fields with an empty name or an empty body, returning ErrEmptyFieldName or
// ErrEmptyFieldBody and leaving the header untouched.
func (h *Header) Add(name, body string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyFieldName
	}

	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyFieldBody, name)
	}

	h.appendField(field.New(name, body))
	return nil
}

// Get retrieves the body of the named field. When the name occurs more than
// once, the body of the last occurrence is returned.
//
// If the named field is not set in the header, it will return an empty string
// with ErrNoSuchField.
func (h *Header) Get(name string) (string, error) {
	f := h.GetLastFieldNamed(name)
	if f == nil {
		return "", ErrNoSuchField
	}

	return f.Body(), nil
}

// GetAll fetches all the header field bodies for fields with the given
// name and returns them as a slice of strings, in header order.
//
// It returns nil with ErrNoSuchField if no field with the given name is set on
// the header.
func (h *Header) GetAll(name string) ([]string, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	bs := make([]string, len(fs))
	for i, f := range fs {
		bs[i] = f.Body()
	}

	return bs, nil
}

// ParseTime is a function that provides the time parsing used by GetTime() to
// parse dates to be used on any field body. This will attempt to parse the
// date using the format specified by RFC 5322 first and fallback to parsing it
// in many other formats.
//
// It either returns a parsed time or the parse error.
func ParseTime(body string) (time.Time, error) {
	t, err := mail.ParseDate(body)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(UnixDateWithEarlyYear, body)
	if err == nil {
		return t, nil
	}

	return t, fmt.Errorf("time string %q cannot be parsed", body)
}

// GetTime gets the last field with the given name as a time.Time.
//
// It will return the zero value and ErrNoSuchField if the header does not
// exist, or the parse error from ParseTime.
func (h *Header) GetTime(name string) (time.Time, error) {
	body, err := h.Get(name)
	if err != nil {
		return time.Time{}, err
	}

	return ParseTime(body)
}

// GetAddressList returns every address found in every field with the given
// name, in header order. Malformed entries are skipped. See ParseAddressList.
//
// It will return nil and ErrNoSuchField if the field is not set on the header.
func (h *Header) GetAddressList(name string) ([]*addr.Mailbox, error) {
	bs, err := h.GetAll(name)
	if err != nil {
		return nil, err
	}

	var al []*addr.Mailbox
	for _, b := range bs {
		al = append(al, ParseAddressList(b)...)
	}

	return al, nil
}

// GetParamValue parses the last field with the given name as a param.Value.
//
// It will return nil and ErrNoSuchField if the field is not set on the header.
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}

	return param.Parse(body), nil
}

// GetContentType returns the Content-type header as a param.Value.
func (h *Header) GetContentType() (*param.Value, error) {
	return h.GetParamValue(ContentType)
}

// GetSubject returns the raw, undecoded, value of the Subject header field.
func (h *Header) GetSubject() (string, error) {
	return h.Get(Subject)
}

// GetDate retrieves the Date header as a time.Time value.
func (h *Header) GetDate() (time.Time, error) {
	return h.GetTime(Date)
}
