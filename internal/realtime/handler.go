package realtime

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/grindhub/grindhub/pkg/middleware"
)

// Handler upgrades authenticated requests to websocket connections and hands
// them to the hub
type Handler struct {
	hub      *Hub
	secret   string
	upgrader websocket.Upgrader
}

// NewHandler creates the websocket upgrade handler. allowedOrigins follows
// the usual comma-separated convention, with "*" allowing every origin.
func NewHandler(hub *Hub, secret string, allowedOrigins []string) *Handler {
	policy := newOriginPolicy(allowedOrigins)
	return &Handler{
		hub:    hub,
		secret: secret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     policy.check,
		},
	}
}

// ServeWS handles GET /ws. The connection is scoped to the identity carried
// by the token; requests without a valid token are rejected before upgrade.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := middleware.ParseToken(h.secret, r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	client := NewClient(conn, h.hub, userID, r.RemoteAddr)
	h.hub.register <- client
}

// originPolicy validates the Origin header on upgrade requests
type originPolicy struct {
	allowAll bool
	allowed  map[string]struct{}
}

func newOriginPolicy(origins []string) *originPolicy {
	p := &originPolicy{allowed: make(map[string]struct{})}
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		if trimmed == "*" {
			p.allowAll = true
			continue
		}
		normalized, ok := normalizeOrigin(trimmed)
		if !ok {
			log.Printf("Ignoring invalid origin in configuration: %q", origin)
			continue
		}
		p.allowed[normalized] = struct{}{}
	}
	return p
}

func (p *originPolicy) check(r *http.Request) bool {
	header := r.Header.Get("Origin")
	// native mobile clients send no Origin header
	if header == "" {
		return true
	}
	if p.allowAll {
		return true
	}

	normalized, ok := normalizeOrigin(header)
	if !ok {
		return false
	}
	if _, exists := p.allowed[normalized]; exists {
		return true
	}

	log.Printf("Blocked websocket connection from disallowed origin: %q", header)
	return false
}

func normalizeOrigin(origin string) (string, bool) {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	return strings.ToLower(parsed.Scheme) + "://" + strings.ToLower(parsed.Host), true
}
