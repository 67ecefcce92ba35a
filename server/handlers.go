package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/onnwee/streampulse/backend/chat"
	"github.com/onnwee/streampulse/backend/config"
	"github.com/onnwee/streampulse/backend/sentiment"
)

// ChatAPI is the upstream collaborator: broadcast-to-chat-id resolution
// and single-page chat fetches. Satisfied by *youtubeapi.Client; tests
// substitute stubs.
type ChatAPI interface {
	ResolveLiveChatID(ctx context.Context, videoID string) (string, error)
	FetchChatPage(ctx context.Context, liveChatID, pageToken string) (chat.Page, error)
}

// Handlers holds dependencies for all HTTP handlers. It owns the single
// live analysis session; starting a new analysis replaces it wholesale.
type Handlers struct {
	cfg        *config.Config
	api        ChatAPI
	classifier *sentiment.Classifier

	mu   sync.RWMutex
	sess *chat.Session
}

// NewHandlers creates a new Handlers instance with the given dependencies.
// api may be nil when no YouTube credentials are configured; the analysis
// endpoints then answer 503.
func NewHandlers(cfg *config.Config, api ChatAPI, classifier *sentiment.Classifier) *Handlers {
	return &Handlers{cfg: cfg, api: api, classifier: classifier}
}

func (h *Handlers) session() *chat.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sess
}

func (h *Handlers) setSession(s *chat.Session) {
	h.mu.Lock()
	h.sess = s
	h.mu.Unlock()
}

// statusForError maps a fetch-layer error kind to an HTTP status. Each
// kind gets its own status so the frontend can render a distinct message.
func statusForError(err error) int {
	k, ok := chat.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch k {
	case chat.KindInvalidIdentifier:
		return http.StatusUnprocessableEntity
	case chat.KindChatUnavailable:
		return http.StatusConflict
	case chat.KindUpstream:
		return http.StatusBadGateway
	case chat.KindTransport:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders a typed error with its kind, a stable human-readable
// message, and the underlying diagnostic. extra fields (e.g. preserved
// message counts) are merged into the body.
func writeError(w http.ResponseWriter, err error, extra map[string]any) {
	body := map[string]any{"error": "internal", "message": "internal error", "detail": err.Error()}
	if k, ok := chat.KindOf(err); ok {
		body["error"] = k.String()
		body["message"] = k.Message()
	}
	for key, v := range extra {
		body[key] = v
	}
	writeJSON(w, statusForError(err), body)
}
