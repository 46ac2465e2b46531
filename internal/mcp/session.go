package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/gabrilend/gen-realms/internal/game"
	realmsnet "github.com/gabrilend/gen-realms/internal/net"
	"github.com/gabrilend/gen-realms/internal/session"
)

// ToolResponse is the JSON envelope returned by all game tools.
type ToolResponse struct {
	Match     string                `json:"match"`
	Seat      int                   `json:"seat"`
	Events    []realmsnet.EventView `json:"events"`
	State     *game.Snapshot        `json:"state,omitempty"`
	Rejection *game.Rejection       `json:"rejection,omitempty"`
	GameOver  bool                  `json:"game_over"`
}

// Handler serves the game tools over a session manager. An agent acts
// for whichever seat it names; each (match, seat) pair has its own event
// cursor so every response carries only the events that seat has not
// seen yet.
type Handler struct {
	sessions *session.Manager
	decks    string
	logger   *zap.Logger

	mu      sync.Mutex
	cursors map[cursorKey]int
}

type cursorKey struct {
	match string
	seat  int
}

// NewHandler creates a tool handler. decksFile may be empty.
func NewHandler(sessions *session.Manager, decksFile string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions: sessions,
		decks:    decksFile,
		logger:   logger,
		cursors:  make(map[cursorKey]int),
	}
}

// respond builds the response for seat after a command or state query.
func (h *Handler) respond(ctx context.Context, match string, seat int, rej *game.Rejection) (*ToolResponse, error) {
	snap, err := h.sessions.Snapshot(ctx, match, seat)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	key := cursorKey{match, seat}
	events, err := h.sessions.Events(ctx, match, seat, h.cursors[key])
	if err != nil {
		return nil, err
	}
	resp := &ToolResponse{
		Match:     match,
		Seat:      seat,
		Events:    []realmsnet.EventView{},
		State:     snap,
		Rejection: rej,
		GameOver:  snap.Winner >= 0,
	}
	for _, e := range events {
		resp.Events = append(resp.Events, realmsnet.NewEventView(e))
		h.cursors[key] = e.Seq
	}
	return resp, nil
}

func (h *Handler) forget(match string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key := range h.cursors {
		if key.match == match {
			delete(h.cursors, key)
		}
	}
}

// execute runs cmd and reports the outcome from the acting seat's view.
func (h *Handler) execute(ctx context.Context, match string, cmd game.Command) (*ToolResponse, error) {
	res, err := h.sessions.Execute(ctx, match, cmd)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		h.logger.Debug("tool command rejected",
			zap.String("match", match),
			zap.Stringer("command", cmd.Type),
			zap.String("code", string(res.Rejection.Code)),
		)
	}
	return h.respond(ctx, match, cmd.Player, res.Rejection)
}

// respondJSON marshals a response to a JSON string.
func respondJSON(resp any) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
