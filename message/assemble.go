package message

import (
	"github.com/zostay/go-mailmsg/header"
	"github.com/zostay/go-mailmsg/transfer"
)

// Assemble builds a message out of raw header text and the body parts of the
// message. The header is parsed with header.Parse. The content of each part is
// decoded according to the part's transfer encoding and charset before being
// applied, in the order given.
//
// Assemble always returns a message. Anything it could not make sense of is
// reported to the logger given by WithLogger, if any.
func Assemble(headerText []byte, parts []*BodyPart, opts ...Option) *Message {
	b := NewBuilder(opts...)

	h, dropped := header.Parse(headerText, header.Meh)
	for _, line := range dropped {
		b.logger.Debug("header line dropped", "line", line)
	}

	b.ApplyHeader(h)

	for _, part := range parts {
		if part == nil {
			continue
		}

		content, err := transfer.Decode(part.Encoding, part.Charset(), part.Content)
		if err != nil {
			b.logger.Debug("part content degraded",
				"type", part.MediaType(),
				"encoding", part.Encoding,
				"error", err,
			)
		}

		b.AddBodyPart(part, content)
	}

	return b.Message()
}
