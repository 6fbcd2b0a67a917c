package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"strings"
	"time"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/inboxd/inboxd/internal/instrumentation"
	"github.com/inboxd/inboxd/internal/logging"
	"github.com/inboxd/inboxd/internal/mail"
)

// The mutation gateway: four idempotent state-changing calls. Each issues
// exactly one HTTP request and reports failure through its error return; no
// retries, no reconciliation. The caller owns the optimistic local update.

// SendEmail builds a minimal RFC 2822 message, base64url-encodes it and
// submits it as a raw outbound message.
func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("at least one recipient is required")
	}
	if subject == "" {
		return fmt.Errorf("subject is required")
	}

	start := time.Now()
	_, err := c.svc.Messages.Send(user, &gmailapi.Message{
		Raw: buildRawMessage(to, subject, body),
	}).Context(ctx).Do()
	c.recordMutation(ctx, instrumentation.OperationSend, start, err)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// Trash moves a message to the trash. Trashing an already-trashed message is
// not an application error; the provider's verdict is forwarded as-is.
func (c *Client) Trash(ctx context.Context, id string) error {
	start := time.Now()
	_, err := c.svc.Messages.Trash(user, id).Context(ctx).Do()
	c.recordMutation(ctx, instrumentation.OperationTrash, start, err)
	if err != nil {
		return fmt.Errorf("failed to trash message %s: %w", id, err)
	}
	return nil
}

// MarkRead removes the unread marker. On an already-read message the
// provider treats this as a no-op success.
func (c *Client) MarkRead(ctx context.Context, id string) error {
	start := time.Now()
	_, err := c.svc.Messages.Modify(user, id, &gmailapi.ModifyMessageRequest{
		RemoveLabelIds: []string{string(mail.LabelUnread)},
	}).Context(ctx).Do()
	c.recordMutation(ctx, instrumentation.OperationModify, start, err)
	if err != nil {
		return fmt.Errorf("failed to mark message %s as read: %w", id, err)
	}
	return nil
}

// ToggleStar adds or removes the starred marker based on the caller-supplied
// current state. The gateway does not re-fetch to confirm that state; two
// interleaved toggles on the same message race, last response wins.
func (c *Client) ToggleStar(ctx context.Context, id string, currentlyStarred bool) error {
	req := starModifyRequest(currentlyStarred)

	start := time.Now()
	_, err := c.svc.Messages.Modify(user, id, req).Context(ctx).Do()
	c.recordMutation(ctx, instrumentation.OperationModify, start, err)
	if err != nil {
		return fmt.Errorf("failed to toggle star on message %s: %w", id, err)
	}
	return nil
}

// starModifyRequest flips the starred marker relative to the caller's view
// of the current state: one label is touched, the other list stays empty.
func starModifyRequest(currentlyStarred bool) *gmailapi.ModifyMessageRequest {
	if currentlyStarred {
		return &gmailapi.ModifyMessageRequest{RemoveLabelIds: []string{string(mail.LabelStarred)}}
	}
	return &gmailapi.ModifyMessageRequest{AddLabelIds: []string{string(mail.LabelStarred)}}
}

func (c *Client) recordMutation(ctx context.Context, op string, start time.Time, err error) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.metrics.RecordProviderOperation(ctx, op, status, time.Since(start))
	c.logger.Debug("provider mutation",
		logging.Operation(op),
		logging.Status(status),
		slog.Duration(logging.KeyDuration, time.Since(start)),
		logging.Err(err))
}

// buildRawMessage assembles the outbound message with a fixed header order
// and encodes it base64url without padding.
func buildRawMessage(to, subject, body string) string {
	lines := []string{
		`Content-Type: text/html; charset=utf-8`,
		"MIME-Version: 1.0",
		"To: " + to,
		"Subject: " + encodeRFC2047(subject),
		"",
		body,
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(lines, "\r\n")))
}

// encodeRFC2047 encodes a header value for non-ASCII characters; plain ASCII
// passes through untouched.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}
