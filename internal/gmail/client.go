package gmail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/inboxd/inboxd/internal/instrumentation"
	"github.com/inboxd/inboxd/internal/logging"
	"github.com/inboxd/inboxd/internal/mail"
)

const (
	// DefaultMaxResults bounds the number of messages fetched per listing.
	DefaultMaxResults = 20

	// defaultFetchConcurrency bounds the per-message detail fan-out.
	defaultFetchConcurrency = 10

	// maxPageSize is the provider's hard page limit for message listings.
	maxPageSize = 100

	user = "me"
)

// Client wraps the Gmail Users service for one bearer token. The token is
// supplied by an external identity provider and forwarded as-is; the client
// never validates or refreshes it.
type Client struct {
	svc         *gmailapi.UsersService
	logger      *slog.Logger
	metrics     *instrumentation.Metrics
	concurrency int
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger used for per-message fetch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics sets the metrics recorder for provider API operations.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithFetchConcurrency bounds the per-message detail fan-out.
func WithFetchConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// NewClient creates a Gmail client authenticated with the given bearer token.
func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("bearer token is required")
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	c := &Client{
		svc:         svc.Users,
		logger:      slog.Default(),
		metrics:     instrumentation.NewNopMetrics(),
		concurrency: defaultFetchConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListInbox lists up to maxResults message ids and fetches their full details
// concurrently, returning normalized records in listing order.
//
// Per-message failures are isolated: a message that cannot be fetched or
// parsed yields the sentinel error record in its slot. Only a failure of the
// id listing itself aborts the batch.
func (c *Client) ListInbox(ctx context.Context, maxResults int64) ([]mail.Record, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	ids, err := c.listMessageIDs(ctx, maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	records := make([]mail.Record, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			records[i] = c.fetchRecord(gctx, id)
			return nil
		})
	}
	// Workers never return errors; failures land in their slots.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// listMessageIDs pages through the message listing up to maxResults ids.
func (c *Client) listMessageIDs(ctx context.Context, maxResults int64) ([]string, error) {
	start := time.Now()
	var ids []string
	pageToken := ""

	for {
		remaining := maxResults - int64(len(ids))
		if remaining <= 0 {
			break
		}
		pageSize := min(remaining, maxPageSize)

		req := c.svc.Messages.List(user).MaxResults(pageSize).Context(ctx)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		res, err := req.Do()
		if err != nil {
			c.metrics.RecordProviderOperation(ctx, instrumentation.OperationList, instrumentation.StatusError, time.Since(start))
			return nil, err
		}
		for _, m := range res.Messages {
			ids = append(ids, m.Id)
		}

		if res.NextPageToken == "" || int64(len(ids)) >= maxResults {
			break
		}
		pageToken = res.NextPageToken
	}

	if int64(len(ids)) > maxResults {
		ids = ids[:maxResults]
	}
	c.metrics.RecordProviderOperation(ctx, instrumentation.OperationList, instrumentation.StatusSuccess, time.Since(start))
	return ids, nil
}

// fetchRecord retrieves and normalizes one message, degrading to the
// sentinel record on any failure.
func (c *Client) fetchRecord(ctx context.Context, id string) mail.Record {
	logger := logging.WithOperation(c.logger, instrumentation.OperationGet)

	start := time.Now()
	msg, err := c.svc.Messages.Get(user, id).Format("full").Context(ctx).Do()
	if err != nil {
		c.metrics.RecordProviderOperation(ctx, instrumentation.OperationGet, instrumentation.StatusError, time.Since(start))
		logger.Warn("failed to fetch message",
			slog.String("id", id),
			logging.Err(err))
		return mail.ErrorRecord(id)
	}
	c.metrics.RecordProviderOperation(ctx, instrumentation.OperationGet, instrumentation.StatusSuccess, time.Since(start))

	rec := Normalize(msg)
	if rec.IsError() {
		c.metrics.RecordNormalizeFailure(ctx)
		logger.Warn("failed to normalize message", slog.String("id", id))
	}
	return rec
}

// GetMessage retrieves one full raw provider message.
func (c *Client) GetMessage(ctx context.Context, id string) (*gmailapi.Message, error) {
	msg, err := c.svc.Messages.Get(user, id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}
	return msg, nil
}
