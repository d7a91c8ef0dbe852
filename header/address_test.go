package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailmsg/header"
)

func TestParseAddressList(t *testing.T) {
	t.Parallel()

	type mailbox struct {
		name    string
		address string
	}

	tests := []struct {
		name   string
		body   string
		expect []mailbox
	}{
		{
			name: "display names",
			body: "A <a@x.com>, B <b@y.com>",
			expect: []mailbox{
				{"A", "a@x.com"},
				{"B", "b@y.com"},
			},
		},
		{
			name:   "bare",
			body:   "someone@example.org",
			expect: []mailbox{{"", "someone@example.org"}},
		},
		{
			name:   "quoted display name",
			body:   `"Sterling Archer" <duchess@isis.info>`,
			expect: []mailbox{{"Sterling Archer", "duchess@isis.info"}},
		},
		{
			name:   "case insensitive",
			body:   "LOUD <ME@EXAMPLE.COM>",
			expect: []mailbox{{"LOUD", "ME@EXAMPLE.COM"}},
		},
		{
			name: "malformed dropped",
			body: "nobody, <not-an-address>, x@localhost, y@example.toolong, ok@example.net",
			expect: []mailbox{
				{"", "ok@example.net"},
			},
		},
		{
			name: "duplicates kept",
			body: "a@example.com, a@example.com",
			expect: []mailbox{
				{"", "a@example.com"},
				{"", "a@example.com"},
			},
		},
		{
			name: "quoted comma splits",
			body: `"Doe, Jane" <jane@example.com>`,
			expect: []mailbox{
				{"Jane", "jane@example.com"},
			},
		},
		{
			name:   "apostrophe in local part",
			body:   "o'brien@x.com",
			expect: []mailbox{{"", "o'brien@x.com"}},
		},
		{
			name:   "atext in local part",
			body:   "Q <a!b#c$d&e*f=g?h^i`j{k|l}m~n@example.org>",
			expect: []mailbox{{"Q", "a!b#c$d&e*f=g?h^i`j{k|l}m~n@example.org"}},
		},
		{
			name:   "trailing comment",
			body:   "john@x.com (John Doe)",
			expect: []mailbox{{"", "john@x.com"}},
		},
		{
			name:   "comment after angle address",
			body:   "John <john@x.com> (work)",
			expect: []mailbox{{"John", "john@x.com"}},
		},
		{
			name: "no partial addresses",
			body: "x@y@z.com, a@example.com/evil, b@example.c0m, ok@example.net",
			expect: []mailbox{
				{"", "ok@example.net"},
			},
		},
		{
			name:   "empty",
			body:   "",
			expect: []mailbox{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			al := header.ParseAddressList(tc.body)
			require.Len(t, al, len(tc.expect))
			for i, mb := range al {
				assert.Equal(t, tc.expect[i].name, mb.DisplayName())
				assert.Equal(t, tc.expect[i].address, mb.Address())
			}
		})
	}
}

func TestParseAddress(t *testing.T) {
	t.Parallel()

	mb, ok := header.ParseAddress("  Bob <bob@example.com>  ")
	require.True(t, ok)
	assert.Equal(t, "Bob", mb.DisplayName())
	assert.Equal(t, "bob@example.com", mb.Address())

	mb, ok = header.ParseAddress("Bob")
	assert.False(t, ok)
	assert.Nil(t, mb)
}
