// Package youtubeapi wraps the YouTube Data API for the two remote
// operations the analysis engine needs: resolving a broadcast to its
// active live chat id, and fetching one page of live chat messages.
// Credentials are taken as a ready-to-use API key or OAuth access token;
// the package never refreshes or validates them beyond the first failing
// call.
package youtubeapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/onnwee/streampulse/backend/chat"
	"github.com/onnwee/streampulse/backend/config"
	"github.com/onnwee/streampulse/backend/telemetry"
)

// Client performs the remote operations against the YouTube Data API.
// It carries no mutable state; both methods are purely functional with
// respect to their inputs.
type Client struct {
	svc *yt.Service

	// defaultInterval fills in when the upstream omits pollingIntervalMillis.
	defaultInterval time.Duration
}

// New builds a client from configured credentials. The API key wins when
// both an API key and an access token are set. The configured default poll
// interval becomes the floor for responses that omit an advised wait.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if err := cfg.ValidateYouTubeReady(); err != nil {
		return nil, err
	}
	var opts []option.ClientOption
	if cfg.YTAPIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.YTAPIKey))
	} else {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.YTAccessToken})
		opts = append(opts, option.WithTokenSource(ts))
	}
	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}
	ivl := cfg.PollDefaultInterval
	if ivl <= 0 {
		ivl = chat.DefaultPollInterval
	}
	return &Client{svc: svc, defaultInterval: ivl}, nil
}

// NewWithService wraps an already-constructed service, mainly for tests.
func NewWithService(svc *yt.Service) *Client {
	return &Client{svc: svc, defaultInterval: chat.DefaultPollInterval}
}

// ResolveLiveChatID maps a video id to the broadcast's active live chat
// id. A video that doesn't exist yields KindInvalidIdentifier; one that
// exists but isn't live (or has chat disabled) yields KindChatUnavailable.
func (c *Client) ResolveLiveChatID(ctx context.Context, videoID string) (string, error) {
	if videoID == "" {
		return "", chat.Errorf(chat.KindInvalidIdentifier, "empty video id")
	}
	resp, err := c.svc.Videos.List([]string{"liveStreamingDetails"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return "", classifyAPIError("resolve live chat id", err)
	}
	if len(resp.Items) == 0 {
		return "", chat.Errorf(chat.KindInvalidIdentifier, "no broadcast found for video %q", videoID)
	}
	details := resp.Items[0].LiveStreamingDetails
	if details == nil || details.ActiveLiveChatId == "" {
		return "", chat.Errorf(chat.KindChatUnavailable, "video %q has no active live chat", videoID)
	}
	return details.ActiveLiveChatId, nil
}

// FetchChatPage fetches one page of live chat messages. pageToken is empty
// for the first call of a session, otherwise the token returned by the
// previous call. The returned interval is always populated, falling back
// to the client's configured default when the upstream omits it.
func (c *Client) FetchChatPage(ctx context.Context, liveChatID, pageToken string) (chat.Page, error) {
	start := time.Now()
	call := c.svc.LiveChatMessages.List(liveChatID, []string{"snippet", "authorDetails"})
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		cerr := classifyChatError(err)
		telemetry.RecordFetch(time.Since(start), 0, cerr.Kind.String())
		return chat.Page{}, cerr
	}

	msgs := make([]chat.Message, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		ts, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		author := ""
		if item.AuthorDetails != nil {
			author = item.AuthorDetails.DisplayName
		}
		msgs = append(msgs, chat.Message{
			Text:      item.Snippet.DisplayMessage,
			Author:    author,
			Timestamp: ts,
		})
	}

	interval := time.Duration(resp.PollingIntervalMillis) * time.Millisecond
	if interval <= 0 {
		interval = c.defaultInterval
	}

	telemetry.RecordFetch(time.Since(start), len(msgs), "")
	return chat.Page{
		Messages:        msgs,
		NextPageToken:   resp.NextPageToken,
		PollingInterval: interval,
	}, nil
}

// Upstream reasons that mean the chat itself is gone rather than the
// request being at fault.
var chatGoneReasons = map[string]bool{
	"liveChatEnded":    true,
	"liveChatDisabled": true,
	"liveChatNotFound": true,
	"forbidden":        true,
}

// classifyChatError maps a liveChatMessages.list failure to a typed kind.
// A 400 (chat ended or never enabled) and the chat-gone 403/404 reasons
// are terminal for the chat; other API faults are upstream errors and
// anything that isn't a structured API response is a transport fault.
func classifyChatError(err error) *chat.Error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == 400 {
			return chat.NewError(chat.KindChatUnavailable, "live chat ended or not enabled", err)
		}
		if gerr.Code == 403 || gerr.Code == 404 {
			for _, item := range gerr.Errors {
				if chatGoneReasons[item.Reason] {
					return chat.NewError(chat.KindChatUnavailable, "live chat no longer available", err)
				}
			}
		}
		return chat.NewError(chat.KindUpstream, fmt.Sprintf("youtube api error %d", gerr.Code), err)
	}
	return chat.NewError(chat.KindTransport, "chat fetch failed", err)
}

// classifyAPIError maps non-chat call failures: structured API responses
// become upstream errors, everything else is transport.
func classifyAPIError(op string, err error) *chat.Error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return chat.NewError(chat.KindUpstream, fmt.Sprintf("%s: youtube api error %d", op, gerr.Code), err)
	}
	return chat.NewError(chat.KindTransport, op, err)
}
