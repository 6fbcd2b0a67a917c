package gmail

import (
	"encoding/base64"
	"fmt"
	netmail "net/mail"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/inboxd/inboxd/internal/mail"
)

// Normalize converts a raw provider message into the canonical record.
// It never fails: any message that cannot be parsed yields the sentinel
// error record so one malformed message cannot abort a batch fetch.
func Normalize(msg *gmailapi.Message) mail.Record {
	if msg == nil {
		return mail.ErrorRecord("")
	}
	rec, err := normalize(msg)
	if err != nil {
		return mail.ErrorRecord(msg.Id)
	}
	return rec
}

func normalize(msg *gmailapi.Message) (mail.Record, error) {
	if msg.Payload == nil {
		return mail.Record{}, fmt.Errorf("message %s has no payload", msg.Id)
	}

	labels := mail.NewLabelSet(msg.LabelIds)

	from := headerValue(msg.Payload, "From")
	subject := headerValue(msg.Payload, "Subject")
	date := headerValue(msg.Payload, "Date")
	to := headerValue(msg.Payload, "To")

	sender, senderEmail := mail.ParseFrom(from)

	content, err := extractBody(msg.Payload)
	if err != nil {
		return mail.Record{}, fmt.Errorf("message %s body: %w", msg.Id, err)
	}

	rec := mail.Record{
		ID:            msg.Id,
		ThreadID:      msg.ThreadId,
		Sender:        sender,
		SenderEmail:   senderEmail,
		Recipient:     to,
		Subject:       subject,
		Preview:       msg.Snippet,
		Content:       content,
		Read:          !labels.Has(mail.LabelUnread),
		Starred:       labels.Has(mail.LabelStarred),
		Avatar:        mail.Initials(sender),
		Category:      mail.CategoryFromLabels(labels),
		HasAttachment: labels.Has(mail.LabelHasAttachment),
		Attachments:   collectAttachments(msg.Payload),
	}

	// An unparseable date leaves the display fields empty rather than
	// failing the whole record.
	if ts, err := netmail.ParseDate(date); err == nil {
		rec.Timestamp = ts
		rec.Date = ts.Format(mail.DateFormat)
		rec.Time = ts.Format(mail.TimeFormat)
	}

	return rec, nil
}

// headerValue returns the first header with an exact, case-sensitive name
// match, or "" when absent.
func headerValue(part *gmailapi.MessagePart, name string) string {
	for _, h := range part.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

// extractBody picks the message body: an HTML part is preferred over a plain
// text part, and the top-level body is the fallback when the message has no
// parts.
func extractBody(payload *gmailapi.MessagePart) (string, error) {
	if len(payload.Parts) == 0 {
		if payload.Body != nil && payload.Body.Data != "" {
			return decodeBody(payload.Body.Data)
		}
		return "", nil
	}

	if part := findPart(payload, "text/html"); part != nil {
		return decodeBody(part.Body.Data)
	}
	if part := findPart(payload, "text/plain"); part != nil {
		return decodeBody(part.Body.Data)
	}
	return "", nil
}

// findPart returns the first part with the given MIME type, descending into
// nested multiparts depth-first.
func findPart(payload *gmailapi.MessagePart, mimeType string) *gmailapi.MessagePart {
	for _, part := range payload.Parts {
		if part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
			return part
		}
		if strings.HasPrefix(part.MimeType, "multipart/") {
			if found := findPart(part, mimeType); found != nil {
				return found
			}
		}
	}
	return nil
}

var base64urlToStd = strings.NewReplacer("-", "+", "_", "/")

// decodeBody decodes the provider's base64url body data: URL-safe characters
// are translated to the standard alphabet and trailing padding is ignored.
func decodeBody(data string) (string, error) {
	s := strings.TrimRight(base64urlToStd.Replace(data), "=")
	b, err := base64.StdEncoding.WithPadding(base64.NoPadding).DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("failed to decode body: %w", err)
	}
	return string(b), nil
}

// collectAttachments walks all parts and gathers metadata for those that
// carry a filename. Content stays with the provider.
func collectAttachments(payload *gmailapi.MessagePart) []mail.Attachment {
	var out []mail.Attachment
	walkParts(payload, func(part *gmailapi.MessagePart) {
		if part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "" {
			out = append(out, mail.Attachment{
				Filename: part.Filename,
				MimeType: part.MimeType,
				Size:     part.Body.Size,
			})
		}
	})
	return out
}

func walkParts(part *gmailapi.MessagePart, fn func(*gmailapi.MessagePart)) {
	if part == nil {
		return
	}
	fn(part)
	for _, p := range part.Parts {
		walkParts(p, fn)
	}
}
