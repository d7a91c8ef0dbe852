// Package message assembles a structured mail message out of raw header text
// and a set of MIME body parts that have already been picked out of the
// message by some other means (an IMAP BODYSTRUCTURE exchange, a MIME walker,
// etc.).
//
// The header is parsed with header.Parse and applied to the message: every
// field is kept in the message's own header store, the Subject is decoded, the
// Priority is mapped, and the address fields are parsed. Each body part is
// then classified in the order given: the first text part becomes the body of
// the message, parts with an attachment disposition become attachments, and
// everything else becomes an alternate view.
//
// Nothing in this package fails because of bad input. Every field that cannot
// be understood is left unset (or set to its default) and the rest of the
// message is built anyway. Pass WithLogger to see what was skipped:
//
//	b := message.NewBuilder(message.WithLogger(slog.Default()))
//	b.ApplyHeader(h)
//	for _, p := range parts {
//	  b.AddBodyPart(p, contents[p])
//	}
//	m := b.Message()
//
// Or do the whole job with Assemble.
//
// A built message can be written back out as a MIME message with WriteTo.
package message
