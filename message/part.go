package message

import "strings"

// Dispositions with meaning to the assembler.
const (
	DispositionAttachment = "attachment"
	DispositionInline     = "inline"
)

// Disposition is the Content-disposition of a body part.
type Disposition struct {
	// Type is "attachment", "inline", or whatever else the part declared.
	Type string

	// Filename is the filename parameter, or empty if there was none.
	Filename string
}

// IsAttachment reports whether the disposition type is "attachment".
func (d Disposition) IsAttachment() bool {
	return strings.EqualFold(strings.TrimSpace(d.Type), DispositionAttachment)
}

// BodyPart describes a single leaf MIME part of a message as discovered by
// whatever read the message structure. The content is still transfer
// encoded.
type BodyPart struct {
	// ID is the part's Content-ID, e.g., "<logo@example.com>".
	ID string

	// Type is the top-level media type, e.g., "text" or "image".
	Type string

	// Subtype is the media subtype, e.g., "html" or "png".
	Subtype string

	// Encoding is the Content-transfer-encoding, e.g., "base64".
	Encoding string

	// Disposition is the Content-disposition.
	Disposition Disposition

	// Parameters are the Content-type parameters, notably charset.
	Parameters map[string]string

	// Content is the raw, transfer encoded, content of the part.
	Content string
}

// Charset returns the charset parameter, found without regard to case, or the
// empty string, which means US-ASCII.
func (p *BodyPart) Charset() string {
	for k, v := range p.Parameters {
		if strings.EqualFold(k, "charset") {
			return strings.Trim(strings.TrimSpace(v), `"`)
		}
	}
	return ""
}

// MediaType returns the lowercase type/subtype of the part.
func (p *BodyPart) MediaType() string {
	return strings.ToLower(p.Type + "/" + p.Subtype)
}

// IsText reports whether the top-level type is text.
func (p *BodyPart) IsText() bool {
	return strings.EqualFold(strings.TrimSpace(p.Type), "text")
}

// IsHTML reports whether the subtype is html.
func (p *BodyPart) IsHTML() bool {
	return strings.EqualFold(strings.TrimSpace(p.Subtype), "html")
}
