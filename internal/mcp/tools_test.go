package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gabrilend/gen-realms/internal/game"
	"github.com/gabrilend/gen-realms/internal/log"
	"github.com/gabrilend/gen-realms/internal/session"
	"github.com/gabrilend/gen-realms/internal/store"
)

func newTestHandler(t *testing.T, decks string) *Handler {
	t.Helper()
	sessions, err := session.NewManager(session.Config{
		Catalog: game.DefaultCatalog(),
		Store:   store.NewMemory(),
		Logger:  zap.NewNop(),
	})
	require.NoError(t, err)
	return NewHandler(sessions, decks, zap.NewNop())
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func decode(t *testing.T, result *mcp.CallToolResult) ToolResponse {
	t.Helper()
	require.False(t, result.IsError, text(t, result))
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &resp))
	return resp
}

func newMatch(t *testing.T, h *Handler) ToolResponse {
	t.Helper()
	result, err := h.handleNewGame(context.Background(), call("new_game", map[string]any{"seed": float64(21)}))
	require.NoError(t, err)
	return decode(t, result)
}

func TestNewGameAndTurn(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, "")

	start := newMatch(t, h)
	require.NotEmpty(t, start.Match)
	assert.Equal(t, 0, start.Seat)
	assert.Equal(t, game.PhaseDrawOrder.String(), start.State.Phase)
	assert.NotEmpty(t, start.Events)
	assert.False(t, start.GameOver)

	result, err := h.handleSetDrawOrder(ctx, call("set_draw_order", map[string]any{"match": start.Match, "seat": float64(0)}))
	require.NoError(t, err)
	drawn := decode(t, result)
	require.Nil(t, drawn.Rejection)
	hand := drawn.State.Players[0].Hand
	require.Len(t, hand, 5)
	for _, e := range drawn.Events {
		assert.Greater(t, e.Seq, start.Events[len(start.Events)-1].Seq, "events are only sent once")
	}

	result, err = h.handlePlay(ctx, call("play", map[string]any{"match": start.Match, "seat": float64(0), "card": float64(hand[0].ID)}))
	require.NoError(t, err)
	played := decode(t, result)
	require.Nil(t, played.Rejection)
	assert.Len(t, played.State.Players[0].Played, 1)

	result, err = h.handleEndTurn(ctx, call("end_turn", map[string]any{"match": start.Match, "seat": float64(0)}))
	require.NoError(t, err)
	ended := decode(t, result)
	assert.Equal(t, 1, ended.State.Active)

	// Seat 1 sees P1's earlier draws only as counts.
	result, err = h.handleGetState(ctx, call("get_state", map[string]any{"match": start.Match, "seat": float64(1)}))
	require.NoError(t, err)
	theirs := decode(t, result)
	assert.Nil(t, theirs.State.Players[0].Hand)
	for _, e := range theirs.Events {
		assert.False(t, e.Type == log.EventDraw.String() && e.Player == 0, "seat 1 saw P1's draw: %+v", e)
	}
}

func TestRejectionIsReported(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, "")
	start := newMatch(t, h)

	result, err := h.handleBuy(ctx, call("buy", map[string]any{"match": start.Match, "seat": float64(1), "slot": float64(0)}))
	require.NoError(t, err)
	resp := decode(t, result)
	require.NotNil(t, resp.Rejection)
	assert.Equal(t, game.CodeNotYourTurn, resp.Rejection.Code)

	cardTool := h.handleCard(game.CmdScrap)
	result, err = cardTool(ctx, call("scrap", map[string]any{"match": start.Match, "seat": float64(0), "card": float64(999)}))
	require.NoError(t, err)
	resp = decode(t, result)
	require.NotNil(t, resp.Rejection)
}

func TestBadArguments(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, "")

	for _, tc := range []struct {
		name   string
		handle server.ToolHandlerFunc
		args   map[string]any
	}{
		{"missing match", h.handleGetState, map[string]any{"seat": float64(0)}},
		{"missing seat", h.handleGetState, map[string]any{"match": "x"}},
		{"unknown match", h.handleEndTurn, map[string]any{"match": "x", "seat": float64(0)}},
		{"bad order", h.handleSetDrawOrder, map[string]any{"match": "x", "seat": float64(0), "order": "1 two"}},
		{"too many players", h.handleNewGame, map[string]any{"players": float64(7)}},
		{"decks without file", h.handleNewGame, map[string]any{"decks": "1 2"}},
		{"delete unknown", h.handleDeleteMatch, map[string]any{"match": "x"}},
	} {
		result, err := tc.handle(ctx, call("", tc.args))
		require.NoError(t, err, tc.name)
		assert.True(t, result.IsError, tc.name)
	}
}

func TestNewGameWithDecks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`decks:
  - name: Traders
    cards:
      - card: guild_trader
        count: 10
`), 0o644))
	h := newTestHandler(t, path)

	result, err := h.handleNewGame(context.Background(), call("new_game", map[string]any{"decks": "1 0"}))
	require.NoError(t, err)
	resp := decode(t, result)
	assert.Equal(t, 10, resp.State.Players[0].DeckCount)

	result, err = h.handleNewGame(context.Background(), call("new_game", map[string]any{"decks": "3"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestForceEndTurnAndDelete(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, "")
	start := newMatch(t, h)

	result, err := h.handleForceEndTurn(ctx, call("force_end_turn", map[string]any{"match": start.Match}))
	require.NoError(t, err)
	resp := decode(t, result)
	assert.Equal(t, 1, resp.Seat)
	assert.Equal(t, 1, resp.State.Active)

	result, err = h.handleListMatches(ctx, call("list_matches", nil))
	require.NoError(t, err)
	assert.Contains(t, text(t, result), start.Match)

	result, err = h.handleDeleteMatch(ctx, call("delete_match", map[string]any{"match": start.Match}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	result, err = h.handleGetState(ctx, call("get_state", map[string]any{"match": start.Match, "seat": float64(0)}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestRegisterTools(t *testing.T) {
	s := server.NewMCPServer("realms-test", "0.0.0", server.WithToolCapabilities(false))
	RegisterTools(s, newTestHandler(t, ""))

	reply := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(reply)
	require.NoError(t, err)
	for _, name := range []string{"new_game", "get_state", "play", "buy", "attack", "scrap", "activate_base",
		"set_draw_order", "resolve_choice", "end_turn", "acknowledge_art", "force_end_turn"} {
		assert.Contains(t, string(data), `"name":"`+name+`"`)
	}
}
