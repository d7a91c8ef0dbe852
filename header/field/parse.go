package field

import (
	"bytes"
	"strings"
)

// Lines represents the unparsed content of a header, one physical line per
// entry with the line break removed.
type Lines []string

// SplitLines splits raw header text into Lines at the given line break. Any
// stray carriage return left at the end of a line is removed as well, so that
// LF splitting of CRLF input works.
func SplitLines(m, lb []byte) Lines {
	if len(lb) == 0 {
		lb = []byte{'\n'}
	}

	raw := bytes.Split(m, lb)
	ls := make(Lines, 0, len(raw))
	for _, line := range raw {
		ls = append(ls, strings.TrimRight(string(line), "\r\n"))
	}

	return ls
}

// isContinuation reports whether the line continues the previous field.
func isContinuation(line string) bool {
	return line[0] == ' ' || line[0] == '\t'
}

// ParseLines builds fields from header lines. The returned fields preserve
// the order of the input, duplicates included.
//
// The rules are:
//
// 1. A blank line is skipped.
// 2. A line starting with a space or tab continues the field most recently
// started: its text, trailing space removed, is appended to that field's body.
// 3. A line without a colon, or with nothing before the colon, is dropped.
// 4. Anything else is split at the first colon into a trimmed name and a
// trimmed body and starts a new field.
//
// Lines dropped by rule 3, and continuations seen before any field has
// started, are returned in dropped. Nothing here is ever treated as an error.
func ParseLines(lines Lines) (fields []*Field, dropped Lines) {
	fields = make([]*Field, 0, len(lines))

	var current *Field
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if isContinuation(line) {
			if current == nil {
				dropped = append(dropped, line)
				continue
			}

			current.unfold(strings.TrimRight(line, " \t"))
			continue
		}

		ix := strings.IndexByte(line, ':')
		if ix < 0 {
			dropped = append(dropped, line)
			continue
		}

		name := strings.TrimSpace(line[:ix])
		if name == "" {
			dropped = append(dropped, line)
			continue
		}

		current = New(name, strings.TrimSpace(line[ix+1:]))
		fields = append(fields, current)
	}

	return fields, dropped
}
