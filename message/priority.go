package message

import "strings"

// Priority is the importance of a message as stated by its Priority header.
type Priority int

// The zero value is Normal, which is also what a missing or unrecognized
// Priority header means.
const (
	Normal Priority = iota
	Low
	High
)

// priorityTokens maps the lowercased Priority header tokens to a Priority.
// This is never written after initialization.
var priorityTokens = map[string]Priority{
	"non-urgent": Low,
	"normal":     Normal,
	"urgent":     High,
}

// ParsePriority maps the body of a Priority header to a Priority, without
// regard to case. Anything unrecognized is Normal.
func ParsePriority(body string) Priority {
	if p, ok := priorityTokens[strings.ToLower(strings.TrimSpace(body))]; ok {
		return p
	}
	return Normal
}

// String returns the name of the priority.
func (p Priority) String() string {
	switch p {
	case Low:
		return "low"
	case High:
		return "high"
	default:
		return "normal"
	}
}
