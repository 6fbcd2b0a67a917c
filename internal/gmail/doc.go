// Package gmail is the mail-sync adapter: it speaks the provider's REST API
// on behalf of an opaque bearer token and translates between raw provider
// messages and the canonical records in the mail package.
//
// It has two halves:
//
//   - Normalization: ListInbox lists message ids and fan-out fetches their
//     full details, converting each into a mail.Record. Normalize itself is
//     pure and never fails; a malformed message becomes a sentinel record
//     instead of aborting the batch.
//
//   - The mutation gateway: SendEmail, Trash, MarkRead and ToggleStar each
//     issue exactly one HTTP request and report the provider's verdict as an
//     error value. There are no retries and no reconciliation; callers apply
//     optimistic local updates and the next fetch is the source of truth.
//
// Example:
//
//	client, err := gmail.NewClient(ctx, token)
//	if err != nil {
//	    return err
//	}
//	records, err := client.ListInbox(ctx, 20)
//	if err != nil {
//	    return err
//	}
//	unread := filter.Evaluate(records, []filter.Criterion{
//	    {Field: filter.FieldIsUnread, Flag: true},
//	})
package gmail
