package message

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidMessageID is returned by ParseMessageID when the value is not a
// single token enclosed in angle brackets.
var ErrInvalidMessageID = errors.New("invalid message id")

var messageIDPattern = regexp.MustCompile(`^<([^<>\s]+)>$`)

// ParseMessageID extracts the token from a Message-ID, Content-ID, or similar
// value of the form <token>. Surrounding white space is ignored.
func ParseMessageID(s string) (string, error) {
	m := messageIDPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMessageID, s)
	}

	return m[1], nil
}

// parseMessageIDList extracts every well-formed <token> in a white space
// separated list, such as the References header. Malformed items are returned
// separately.
func parseMessageIDList(s string) (ids, bad []string) {
	s = strings.ReplaceAll(s, "><", "> <")
	for _, item := range strings.Fields(s) {
		id, err := ParseMessageID(item)
		if err != nil {
			bad = append(bad, item)
			continue
		}
		ids = append(ids, id)
	}
	return ids, bad
}
