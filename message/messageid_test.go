package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailmsg/message"
)

func TestParseMessageID(t *testing.T) {
	t.Parallel()

	id, err := message.ParseMessageID("<abc.123@example.com>")
	require.NoError(t, err)
	assert.Equal(t, "abc.123@example.com", id)

	id, err = message.ParseMessageID("  <logo>  ")
	require.NoError(t, err)
	assert.Equal(t, "logo", id)

	for _, bad := range []string{"", "abc@example.com", "<>", "<a b>", "<abc", "abc>", "<<a>>"} {
		_, err := message.ParseMessageID(bad)
		assert.ErrorIs(t, err, message.ErrInvalidMessageID, bad)
	}
}
