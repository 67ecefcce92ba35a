package chat

import (
	"context"
	"log/slog"
	"time"
)

// DefaultPollInterval is the floor applied when the upstream response does
// not advise a wait.
const DefaultPollInterval = 10 * time.Second

// Page is one fetched page of live chat: the messages in server-delivered
// order, the continuation token for the following page (empty when the
// upstream has nothing further to hand out right now), and the
// server-advised minimum wait before the next request.
type Page struct {
	Messages        []Message
	NextPageToken   string
	PollingInterval time.Duration
}

// Fetcher performs a single paginated request against the upstream chat
// API. Implementations must be purely functional with respect to their
// inputs: no local state, no retries. Failures are reported as *Error so
// the caller can tell terminal conditions from transient ones.
type Fetcher interface {
	FetchChatPage(ctx context.Context, liveChatID, pageToken string) (Page, error)
}

// StepResult reports the outcome of a single polling step.
type StepResult struct {
	// Appended is how many messages this step added to the store.
	Appended int
	// Total is the store size after the step.
	Total int
	// NextPoll is the advisory wait before the next step. The caller owns
	// scheduling; Step never sleeps.
	NextPoll time.Duration
	// Exhausted is true when the upstream returned no continuation token,
	// meaning the next step starts over with first-page semantics.
	Exhausted bool
}

// Step performs exactly one fetch for the session, appends the returned
// messages, and persists the new continuation token — even an empty one.
// On failure the session's store and token are left untouched and the
// error is returned unchanged in kind.
func Step(ctx context.Context, f Fetcher, s *Session) (StepResult, error) {
	page, err := f.FetchChatPage(ctx, s.LiveChatID, s.PageToken())
	if err != nil {
		return StepResult{Total: s.store.Len()}, err
	}
	s.apply(page)
	return StepResult{
		Appended:  len(page.Messages),
		Total:     s.store.Len(),
		NextPoll:  s.normalizeInterval(page.PollingInterval),
		Exhausted: page.NextPageToken == "",
	}, nil
}

// Drain fetches pages back to back until the upstream returns no
// continuation token, waiting the advised interval between requests. It
// returns the number of pages fetched. A fetch that yields no next token
// terminates the drain immediately with no wait: for a live stream that is
// "everything buffered so far", not end of broadcast.
//
// maxPages > 0 caps the number of fetches as an operational guard;
// zero means unbounded. Cancellation is honored between iterations and
// during waits, never mid-fetch. Any fetch error stops the drain; messages
// appended by earlier pages stay in the store.
func Drain(ctx context.Context, f Fetcher, s *Session, maxPages int) (int, error) {
	pages := 0
	for {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		page, err := f.FetchChatPage(ctx, s.LiveChatID, s.PageToken())
		if err != nil {
			return pages, err
		}
		pages++
		s.apply(page)
		if page.NextPageToken == "" {
			return pages, nil
		}
		if maxPages > 0 && pages >= maxPages {
			slog.Debug("drain stopped at page cap", slog.Int("pages", pages))
			return pages, nil
		}
		select {
		case <-ctx.Done():
			return pages, ctx.Err()
		case <-time.After(s.normalizeInterval(page.PollingInterval)):
		}
	}
}
