package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testMessage = "From: Alice <alice@example.com>\r\n" +
	"To: bob@example.com\r\n" +
	"Subject: =?UTF-8?Q?Hi=20there?=\r\n" +
	"Priority: urgent\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"Content-Transfer-Encoding: base64\r\n" +
	"\r\n" +
	"PHA+aGk8L3A+\r\n"

func runAssemble(t *testing.T, args ...string) string {
	t.Helper()

	for _, env := range []string{"MAILMSG_LOG_LEVEL", "MAILMSG_FORMAT", "MAILMSG_ATTACHMENT_PREFIX"} {
		t.Setenv(env, "")
	}

	path := filepath.Join(t.TempDir(), "message.eml")
	require.NoError(t, os.WriteFile(path, []byte(testMessage), 0o600))

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"assemble", path}, args...))
	t.Cleanup(func() { format, configPath = "", "" })

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestAssemble_YAML(t *testing.T) {
	out := runAssemble(t)

	var v view
	require.NoError(t, yaml.Unmarshal([]byte(out), &v))
	assert.Equal(t, "Hi there", v.Subject)
	assert.Equal(t, "UTF-8", v.SubjectCharset)
	assert.Equal(t, "high", v.Priority)
	assert.Equal(t, "Alice <alice@example.com>", v.From)
	assert.Equal(t, []string{"bob@example.com"}, v.To)
	assert.Equal(t, "<p>hi</p>", v.Body)
	assert.True(t, v.IsBodyHTML)
	assert.Len(t, v.Headers, 6)
}

func TestAssemble_Text(t *testing.T) {
	out := runAssemble(t, "--format", "text")

	assert.Contains(t, out, "Subject:   Hi there (UTF-8)")
	assert.Contains(t, out, "Priority:  high")
	assert.Contains(t, out, "[body UTF-8 html=true]\n<p>hi</p>\n")
}

func TestAssemble_MIME(t *testing.T) {
	out := runAssemble(t, "--format", "mime")

	assert.Equal(t, "From: Alice <alice@example.com>\n"+
		"To: bob@example.com\n"+
		"Subject: =?UTF-8?Q?Hi=20there?=\n"+
		"Priority: urgent\n"+
		"Mime-version: 1.0\n"+
		"Content-type: text/html; charset=UTF-8\n"+
		"Content-transfer-encoding: 7bit\n"+
		"\n"+
		"<p>hi</p>\n", out)
}
