package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/onnwee/streampulse/backend/analytics"
	"github.com/onnwee/streampulse/backend/chat"
	"github.com/onnwee/streampulse/backend/telemetry"
	"github.com/onnwee/streampulse/backend/youtubeapi"
)

// HandleAnalyses starts a new analysis from a broadcast URL. Any previous
// session is discarded along with its store and continuation token.
func (h *Handlers) HandleAnalyses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.api == nil {
		http.Error(w, "youtube credentials not configured", http.StatusServiceUnavailable)
		return
	}
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	videoID, ok := youtubeapi.ExtractVideoID(req.URL)
	if !ok {
		writeError(w, chat.Errorf(chat.KindInvalidIdentifier, "no video id in %q", req.URL), nil)
		return
	}
	liveChatID, err := h.api.ResolveLiveChatID(r.Context(), videoID)
	if err != nil {
		telemetry.LoggerWithCorr(r.Context()).Warn("resolve live chat failed",
			slog.String("video_id", videoID), slog.Any("err", err))
		writeError(w, err, nil)
		return
	}

	sess := chat.NewSession(videoID, liveChatID)
	sess.SetDefaultInterval(h.cfg.PollDefaultInterval)
	h.setSession(sess)
	if telemetry.AnalysesStarted != nil {
		telemetry.AnalysesStarted.Inc()
	}
	telemetry.SetSessionActive(true)
	telemetry.SetStoreSize(0)
	telemetry.LoggerWithCorr(r.Context()).Info("analysis started",
		slog.String("video_id", videoID), slog.String("live_chat_id", liveChatID))

	writeJSON(w, http.StatusCreated, map[string]any{
		"video_id":     sess.VideoID,
		"live_chat_id": sess.LiveChatID,
		"started_at":   sess.StartedAt,
	})
}

// HandlePoll runs a single polling step for the live session and reports
// the advisory interval back to the caller, which owns scheduling.
func (h *Handlers) HandlePoll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := h.session()
	if sess == nil {
		http.Error(w, "no analysis in progress", http.StatusNotFound)
		return
	}
	res, err := chat.Step(r.Context(), h.api, sess)
	telemetry.SetStoreSize(sess.Store().Len())
	if err != nil {
		telemetry.LoggerWithCorr(r.Context()).Warn("poll step failed", slog.Any("err", err))
		// Accumulated messages stay queryable; tell the caller how many.
		writeError(w, err, map[string]any{"total": sess.Store().Len()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"appended":          res.Appended,
		"total":             res.Total,
		"next_poll_seconds": res.NextPoll.Seconds(),
		"exhausted":         res.Exhausted,
	})
}

// HandleDrain fetches pages back to back until the upstream has no more,
// blocking the request for the duration. The configured page cap bounds
// the worst case.
func (h *Handlers) HandleDrain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := h.session()
	if sess == nil {
		http.Error(w, "no analysis in progress", http.StatusNotFound)
		return
	}
	pages, err := chat.Drain(r.Context(), h.api, sess, h.cfg.DrainMaxPages)
	telemetry.SetStoreSize(sess.Store().Len())
	if err != nil {
		telemetry.LoggerWithCorr(r.Context()).Warn("drain failed",
			slog.Int("pages", pages), slog.Any("err", err))
		writeError(w, err, map[string]any{"pages": pages, "total": sess.Store().Len()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pages": pages,
		"total": sess.Store().Len(),
	})
}

// HandleAggregate recomputes and returns the aggregate snapshot. bucket=
// selects minute (default) or hour-of-day grouping.
func (h *Handlers) HandleAggregate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := h.session()
	if sess == nil {
		http.Error(w, "no analysis in progress", http.StatusNotFound)
		return
	}
	bucketing, ok := analytics.ParseBucketing(r.URL.Query().Get("bucket"))
	if !ok {
		http.Error(w, "bucket must be 'minute' or 'hour'", http.StatusBadRequest)
		return
	}
	res := analytics.Aggregate(sess.Store().Snapshot(), h.classifier.Classify, bucketing)
	if telemetry.AggregationsComputed != nil {
		telemetry.AggregationsComputed.Inc()
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleAggregateStream pushes aggregate snapshots as Server-Sent Events.
// The cadence follows the session's last advised polling interval with the
// configured floor, so the stream never outpaces the data.
func (h *Handlers) HandleAggregateStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	sess := h.session()
	if sess == nil {
		http.Error(w, "no analysis in progress", http.StatusNotFound)
		return
	}
	bucketing, ok := analytics.ParseBucketing(r.URL.Query().Get("bucket"))
	if !ok {
		http.Error(w, "bucket must be 'minute' or 'hour'", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ctx := r.Context()
	enc := json.NewEncoder(w)
	for {
		// A new analysis replaces the session wholesale; streams bound to
		// the replaced one end rather than serving its frozen store.
		if h.session() != sess {
			return
		}
		res := analytics.Aggregate(sess.Store().Snapshot(), h.classifier.Classify, bucketing)
		if telemetry.AggregationsComputed != nil {
			telemetry.AggregationsComputed.Inc()
		}
		if _, err := w.Write([]byte("data: ")); err != nil {
			return
		}
		if err := enc.Encode(res); err != nil {
			return
		}
		if _, err := w.Write([]byte("\n")); err != nil {
			return
		}
		flusher.Flush()

		wait := sess.LastInterval()
		if wait < h.cfg.StreamMinInterval {
			wait = h.cfg.StreamMinInterval
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// HandleStatus summarizes the live session for the frontend.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := h.session()
	if sess == nil {
		writeJSON(w, http.StatusOK, map[string]any{"session": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session": map[string]any{
			"video_id":              sess.VideoID,
			"live_chat_id":          sess.LiveChatID,
			"started_at":            sess.StartedAt,
			"total_messages":        sess.Store().Len(),
			"last_fetch":            sess.LastFetch(),
			"last_interval_seconds": sess.LastInterval().Seconds(),
			"token_present":         sess.PageToken() != "",
		},
	})
}
