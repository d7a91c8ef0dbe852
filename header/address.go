package header

import (
	"regexp"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// domainPattern matches a whole domain: at least one dot and a top label of
// two to four letters.
var domainPattern = regexp.MustCompile(`(?i)^[a-z0-9.\-]+\.[a-z]{2,4}$`)

// isLocalChar reports whether c may appear in the local part of an address:
// the RFC 5322 atext characters plus the dot.
func isLocalChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("!#$%&'*+-/=?^_`{|}~.", c) >= 0
}

// isDomainChar reports whether c may appear in a domain.
func isDomainChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return c == '.' || c == '-'
}

// isOpening reports whether c may come right before the local part.
func isOpening(c byte) bool {
	return strings.IndexByte(" \t<\"(:;", c) >= 0
}

// isClosing reports whether c may come right after the domain.
func isClosing(c byte) bool {
	return strings.IndexByte(" \t>\")", c) >= 0
}

// addrSpanAt finds the address around the @ at index at. It returns the start
// and end of the address, or false if the text around the @ does not form a
// complete local@domain.
func addrSpanAt(entry string, at int) (start, end int, ok bool) {
	start = at
	for start > 0 && isLocalChar(entry[start-1]) {
		start--
	}

	end = at + 1
	for end < len(entry) && isDomainChar(entry[end]) {
		end++
	}

	switch {
	case start == at:
		return 0, 0, false
	case start > 0 && !isOpening(entry[start-1]):
		return 0, 0, false
	case end < len(entry) && !isClosing(entry[end]):
		return 0, 0, false
	case !domainPattern.MatchString(entry[at+1 : end]):
		return 0, 0, false
	}

	return start, end, true
}

// ParseAddress parses a single address list entry into a mailbox. The entry is
// searched from the right for an address of the form local@domain, with or
// without angle brackets. Whatever precedes the address, without angle
// brackets or surrounding quotes, becomes the display name. Whatever follows
// it, without parentheses, is kept as the comment. It returns false if the
// entry holds no complete address.
func ParseAddress(entry string) (*addr.Mailbox, bool) {
	entry = strings.TrimSpace(entry)

	start, end, found := 0, 0, false
	for at := strings.LastIndexByte(entry, '@'); at >= 0; at = strings.LastIndexByte(entry[:at], '@') {
		if start, end, found = addrSpanAt(entry, at); found {
			break
		}
	}

	if !found {
		return nil, false
	}

	email := entry[start:end]
	at := strings.LastIndexByte(email, '@')
	local, domain := email[:at], email[at+1:]

	dn := strings.NewReplacer("<", "", ">", "").Replace(entry[:start])
	dn = strings.Trim(strings.TrimSpace(dn), `"`)

	comment := strings.TrimSpace(strings.TrimPrefix(entry[end:], ">"))
	comment = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(comment, "("), ")"))

	spec := addr.NewAddrSpecParsed(local, domain, email)
	mb, err := addr.NewMailboxParsed(dn, spec, comment, entry)
	if err != nil {
		return nil, false
	}

	return mb, true
}

// ParseAddressList parses an address field body into mailboxes, in the order
// they appear, duplicates included.
//
// The body is split on every comma. This is not aware of quoting, so a quoted
// display name containing a comma will be split apart (and the half without an
// address dropped). Entries that do not hold a well-formed address are
// skipped entirely. No partial or placeholder address is ever returned.
func ParseAddressList(body string) []*addr.Mailbox {
	entries := strings.Split(body, ",")
	al := make([]*addr.Mailbox, 0, len(entries))
	for _, entry := range entries {
		if mb, ok := ParseAddress(entry); ok {
			al = append(al, mb)
		}
	}

	return al
}
