package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yourorg/recruitdesk/internal/events"
	"github.com/yourorg/recruitdesk/internal/observability/metrics"
	"github.com/yourorg/recruitdesk/internal/security/auth"
)

// FeedHandler streams new-application events to authenticated tenant members
// over a WebSocket. The connection carries only the caller's own company's
// events.
type FeedHandler struct {
	hub            *events.Hub
	tokens         *auth.TokenManager
	allowedOrigins []string
	logger         *slog.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(hub *events.Hub, tokens *auth.TokenManager, allowedOrigins []string, logger *slog.Logger) *FeedHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedHandler{hub: hub, tokens: tokens, allowedOrigins: allowedOrigins, logger: logger}
}

func (h *FeedHandler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range h.allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			h.logger.Warn("websocket origin rejected", slog.String("origin", origin))
			return false
		},
	}
}

// token accepts the credential from the Authorization header or, for browser
// WebSocket clients that cannot set headers, from the token query parameter.
func (h *FeedHandler) token(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, err := auth.ExtractToken(header); err == nil {
			return token
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// ServeHTTP handles GET /ws/applicants
func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := h.token(r)
	if token == "" {
		http.Error(w, "Unauthenticated.", http.StatusUnauthorized)
		return
	}
	claims, err := h.tokens.Verify(token)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	upgrader := h.getUpgrader()
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer ws.Close()

	eventsCh, cancel := h.hub.Subscribe(claims.CompanyID)
	defer cancel()
	metrics.IncrementFeedSubscribers()
	defer metrics.DecrementFeedSubscribers()

	h.logger.Info("feed subscriber connected",
		slog.String("company_id", claims.CompanyID),
		slog.String("user_id", claims.UserID),
	)

	// Read pump: drains client frames and signals close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case evt, ok := <-eventsCh:
			if !ok {
				return
			}
			ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := ws.WriteJSON(evt); err != nil {
				h.logger.Debug("feed write failed", slog.String("error", err.Error()))
				return
			}
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
