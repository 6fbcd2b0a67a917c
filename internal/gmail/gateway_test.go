package gmail

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboxd/inboxd/internal/instrumentation"
)

func TestBuildRawMessage(t *testing.T) {
	raw := buildRawMessage("jane@example.com", "Hello", "<p>Hi Jane</p>")

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err)

	lines := strings.Split(string(decoded), "\r\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Content-Type: text/html; charset=utf-8", lines[0])
	assert.Equal(t, "MIME-Version: 1.0", lines[1])
	assert.Equal(t, "To: jane@example.com", lines[2])
	assert.Equal(t, "Subject: Hello", lines[3])
	assert.Equal(t, "", lines[4], "headers and body are separated by a blank line")
	assert.Equal(t, "<p>Hi Jane</p>", lines[5])
}

func TestBuildRawMessageIsUnpadded(t *testing.T) {
	// Vary the length so at least one case would need '=' padding.
	for _, body := range []string{"a", "ab", "abc", "abcd"} {
		raw := buildRawMessage("x@y.z", "s", body)
		assert.NotContains(t, raw, "=")
		assert.NotContains(t, raw, "+")
		assert.NotContains(t, raw, "/")
	}
}

func TestBuildRawMessageEncodesSubject(t *testing.T) {
	raw := buildRawMessage("x@y.z", "Grüße aus Köln", "hi")

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "Subject: =?UTF-8?b?")

	// Plain ASCII passes through untouched.
	assert.Equal(t, "plain subject", encodeRFC2047("plain subject"))
}

func TestStarModifyRequest(t *testing.T) {
	add := starModifyRequest(false)
	assert.Equal(t, []string{"STARRED"}, add.AddLabelIds)
	assert.Empty(t, add.RemoveLabelIds)

	remove := starModifyRequest(true)
	assert.Equal(t, []string{"STARRED"}, remove.RemoveLabelIds)
	assert.Empty(t, remove.AddLabelIds)
}

func TestSendEmailValidation(t *testing.T) {
	c := &Client{metrics: instrumentation.NewNopMetrics()}

	err := c.SendEmail(context.Background(), "", "subject", "body")
	assert.ErrorContains(t, err, "recipient is required")

	err = c.SendEmail(context.Background(), "jane@example.com", "", "body")
	assert.ErrorContains(t, err, "subject is required")
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(context.Background(), "")
	assert.ErrorContains(t, err, "bearer token is required")
}
