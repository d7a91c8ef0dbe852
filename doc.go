// Package mailmsg turns the pieces of an email message, as handed over by a
// mail client or server, into a structured message.
//
// The input is raw RFC 5322 header text plus the leaf MIME parts of the
// message, already located by whoever read the message structure. The output
// is a message.Message with parsed header fields, a decoded subject,
// classified address lists, a primary body, and attachment and alternate view
// collections.
//
// The code is split according to part of message:
//
//   - header/field scans header lines, unfolding continuation lines and
//     dropping anything unparsable, and decodes RFC 2047 encoded-words.
//   - header stores the fields in order, looked up without regard to case,
//     and parses address lists and dates.
//   - param parses parameterized values like Content-type.
//   - encoding resolves charset names using golang.org/x/text.
//   - transfer decodes quoted-printable and base64 content.
//   - message applies all of that to a Message.
//
// Broken input never stops a message from being built. Each field that cannot
// be read is left unset and the rest of the message is built anyway.
package mailmsg
