package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/gabrilend/gen-realms/internal/game"
	"github.com/gabrilend/gen-realms/internal/session"
)

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer, h *Handler) {
	s.AddTool(newGameTool(), h.handleNewGame)
	s.AddTool(listMatchesTool(), h.handleListMatches)
	s.AddTool(getStateTool(), h.handleGetState)
	s.AddTool(playTool(), h.handlePlay)
	s.AddTool(buyTool(), h.handleBuy)
	s.AddTool(attackTool(), h.handleAttack)
	s.AddTool(cardTool("scrap", "Scrap a played card or one of your bases to fire its scrap effects."), h.handleCard(game.CmdScrap))
	s.AddTool(cardTool("activate_base", "Activate one of your deployed bases (once per turn)."), h.handleCard(game.CmdActivateBase))
	s.AddTool(cardTool("acknowledge_art", "Acknowledge the regenerated art of an upgraded card."), h.handleCard(game.CmdAcknowledgeArt))
	s.AddTool(setDrawOrderTool(), h.handleSetDrawOrder)
	s.AddTool(resolveChoiceTool(), h.handleResolveChoice)
	s.AddTool(seatTool("end_turn", "End your turn: discard hand and played cards, then the next seat starts its draw."), h.handleEndTurn)
	s.AddTool(forceEndTurnTool(), h.handleForceEndTurn)
	s.AddTool(deleteMatchTool(), h.handleDeleteMatch)
}

// --- Tool definitions ---

func matchArg() mcp.ToolOption {
	return mcp.WithString("match", mcp.Required(), mcp.Description("Match id returned by new_game"))
}

func seatArg() mcp.ToolOption {
	return mcp.WithNumber("seat", mcp.Required(), mcp.Description("0-based seat you act for"))
}

func newGameTool() mcp.Tool {
	return mcp.NewTool("new_game",
		mcp.WithDescription("Start a new Realms match. Seat 0 moves first and begins in the draw order phase: "+
			"call set_draw_order before playing cards. Returns the match id and seat 0's view."),
		mcp.WithNumber("players", mcp.Description("Number of seats, 2 to 4 (default 2)")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed; 0 or absent for random")),
		mcp.WithString("decks", mcp.Description("Space-separated deck numbers from the decks file, one per seat (0 for the standard deck)")),
	)
}

func listMatchesTool() mcp.Tool {
	return mcp.NewTool("list_matches",
		mcp.WithDescription("List the ids of live and saved matches."),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get a seat's view of the match and the events that seat has not seen yet. Read-only."),
		matchArg(),
		seatArg(),
	)
}

func playTool() mcp.Tool {
	return mcp.NewTool("play",
		mcp.WithDescription("Play a card from your hand. Wilds cards may be staged on the frontier of one of your bases instead."),
		matchArg(),
		seatArg(),
		mcp.WithNumber("card", mcp.Required(), mcp.Description("Card id from your hand")),
		mcp.WithNumber("frontier", mcp.Description("Id of your base to stage the card on (frontier play)")),
	)
}

func buyTool() mcp.Tool {
	return mcp.NewTool("buy",
		mcp.WithDescription("Buy a card from the trade row into your discard pile."),
		matchArg(),
		seatArg(),
		mcp.WithNumber("slot", mcp.Required(), mcp.Description(fmt.Sprintf("Trade row slot 0-%d, or -1 for the wanderer", game.TradeRowSize-1))),
	)
}

func attackTool() mcp.Tool {
	return mcp.NewTool("attack",
		mcp.WithDescription("Spend combat on an opponent's base (give target_base) or on an opponent directly (give target_player). "+
			"Outposts must be destroyed first."),
		matchArg(),
		seatArg(),
		mcp.WithNumber("target_player", mcp.Description("0-based seat to attack")),
		mcp.WithNumber("target_base", mcp.Description("Id of the base to attack")),
	)
}

func cardTool(name, desc string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(desc),
		matchArg(),
		seatArg(),
		mcp.WithNumber("card", mcp.Required(), mcp.Description("Card id")),
	)
}

func seatTool(name, desc string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(desc),
		matchArg(),
		seatArg(),
	)
}

func setDrawOrderTool() mcp.Tool {
	return mcp.NewTool("set_draw_order",
		mcp.WithDescription("Draw your hand at the start of your turn. The listed draw pile positions are drawn first, "+
			"in that order; the rest come from the top."),
		matchArg(),
		seatArg(),
		mcp.WithString("order", mcp.Description("Space-separated 0-based draw pile positions, or empty for a natural draw")),
	)
}

func resolveChoiceTool() mcp.Tool {
	return mcp.NewTool("resolve_choice",
		mcp.WithDescription("Answer the pending choice in state.pending with ids from its candidates."),
		matchArg(),
		seatArg(),
		mcp.WithString("selection", mcp.Description("Space-separated candidate ids, or empty to decline an optional choice")),
	)
}

func forceEndTurnTool() mcp.Tool {
	return mcp.NewTool("force_end_turn",
		mcp.WithDescription("End the active seat's turn even with a choice pending, for a player who stopped responding."),
		matchArg(),
	)
}

func deleteMatchTool() mcp.Tool {
	return mcp.NewTool("delete_match",
		mcp.WithDescription("Delete a match and its saved state."),
		matchArg(),
	)
}

// --- Tool handlers ---

func parseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Fields(s) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", f)
		}
		out = append(out, n)
	}
	return out, nil
}

// target reads the match and seat arguments.
func target(request mcp.CallToolRequest) (string, int, *mcp.CallToolResult) {
	match := request.GetString("match", "")
	if match == "" {
		return "", 0, mcp.NewToolResultError("match is required")
	}
	seat := request.GetInt("seat", -1)
	if seat < 0 {
		return "", 0, mcp.NewToolResultError("seat must be >= 0")
	}
	return match, seat, nil
}

func (h *Handler) result(resp *ToolResponse, err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, session.ErrMatchNotFound) {
		return mcp.NewToolResultError("No such match. Use new_game or list_matches."), nil
	}
	if err != nil {
		h.logger.Error("tool failed", zap.Error(err))
		return mcp.NewToolResultErrorf("Error: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Handler) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	players := request.GetInt("players", game.MinPlayers)
	if players < game.MinPlayers || players > game.MaxPlayers {
		return mcp.NewToolResultErrorf("players must be %d-%d", game.MinPlayers, game.MaxPlayers), nil
	}
	seed := request.GetInt("seed", 0)
	if seed < 0 {
		return mcp.NewToolResultError("seed must be >= 0"), nil
	}

	var decks [][]game.DeckEntry
	numbers, err := parseInts(request.GetString("decks", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("decks: %v", err), nil
	}
	if len(numbers) > 0 {
		if h.decks == "" {
			return mcp.NewToolResultError("No decks file is configured."), nil
		}
		for seat, n := range numbers {
			if n == 0 {
				decks = append(decks, nil)
				continue
			}
			_, entries, err := game.DeckByNumber(h.decks, n, h.sessions.Catalog())
			if err != nil {
				return mcp.NewToolResultErrorf("seat %d deck: %v", seat, err), nil
			}
			decks = append(decks, entries)
		}
	}

	id, err := h.sessions.Create(ctx, session.NewMatch{Players: players, Seed: uint64(seed), StartingDecks: decks})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	return h.result(h.respond(ctx, id, 0, nil))
}

func (h *Handler) handleListMatches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := h.sessions.List(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(map[string][]string{"matches": ids})), nil
}

func (h *Handler) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	match, seat, bad := target(request)
	if bad != nil {
		return bad, nil
	}
	return h.result(h.respond(ctx, match, seat, nil))
}

func (h *Handler) handlePlay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	match, seat, bad := target(request)
	if bad != nil {
		return bad, nil
	}
	return h.result(h.execute(ctx, match, game.Command{
		Type:     game.CmdPlay,
		Player:   seat,
		Card:     request.GetInt("card", 0),
		Frontier: request.GetInt("frontier", 0),
	}))
}

func (h *Handler) handleBuy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	match, seat, bad := target(request)
	if bad != nil {
		return bad, nil
	}
	return h.result(h.execute(ctx, match, game.Command{
		Type:   game.CmdBuy,
		Player: seat,
		Slot:   request.GetInt("slot", 0),
	}))
}

func (h *Handler) handleAttack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	match, seat, bad := target(request)
	if bad != nil {
		return bad, nil
	}
	return h.result(h.execute(ctx, match, game.Command{
		Type:         game.CmdAttack,
		Player:       seat,
		TargetPlayer: request.GetInt("target_player", 0),
		TargetBase:   request.GetInt("target_base", 0),
	}))
}

// handleCard serves the tools that take a single card id.
func (h *Handler) handleCard(t game.CommandType) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		match, seat, bad := target(request)
		if bad != nil {
			return bad, nil
		}
		return h.result(h.execute(ctx, match, game.Command{
			Type:   t,
			Player: seat,
			Card:   request.GetInt("card", 0),
		}))
	}
}

func (h *Handler) handleSetDrawOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	match, seat, bad := target(request)
	if bad != nil {
		return bad, nil
	}
	order, err := parseInts(request.GetString("order", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("order: %v", err), nil
	}
	return h.result(h.execute(ctx, match, game.Command{Type: game.CmdSetDrawOrder, Player: seat, Order: order}))
}

func (h *Handler) handleResolveChoice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	match, seat, bad := target(request)
	if bad != nil {
		return bad, nil
	}
	selection, err := parseInts(request.GetString("selection", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("selection: %v", err), nil
	}
	return h.result(h.execute(ctx, match, game.Command{Type: game.CmdResolveChoice, Player: seat, Selection: selection}))
}

func (h *Handler) handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	match, seat, bad := target(request)
	if bad != nil {
		return bad, nil
	}
	return h.result(h.execute(ctx, match, game.Command{Type: game.CmdEndTurn, Player: seat}))
}

func (h *Handler) handleForceEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	match := request.GetString("match", "")
	err := h.sessions.ForceEndTurn(ctx, match)
	var rej *game.Rejection
	if errors.As(err, &rej) {
		return mcp.NewToolResultErrorf("Rejected: %v", rej), nil
	}
	if err != nil {
		return h.result(nil, err)
	}
	snap, err := h.sessions.Snapshot(ctx, match, -1)
	if err != nil {
		return h.result(nil, err)
	}
	return h.result(h.respond(ctx, match, snap.Active, nil))
}

func (h *Handler) handleDeleteMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	match := request.GetString("match", "")
	if err := h.sessions.Delete(ctx, match); err != nil {
		return h.result(nil, err)
	}
	h.forget(match)
	return mcp.NewToolResultText(respondJSON(map[string]string{"deleted": match})), nil
}
