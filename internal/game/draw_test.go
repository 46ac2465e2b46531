package game

import (
	"testing"

	"github.com/gabrilend/gen-realms/internal/log"
)

func TestNewGameOpensDrawOrder(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat)

	if tg.Turn != 1 || tg.Active != 0 || tg.Phase != PhaseDrawOrder {
		t.Fatalf("turn %d active %d phase %s", tg.Turn, tg.Active, tg.Phase)
	}
	for seat, p := range tg.Players {
		if len(p.DrawPile) != 10 || len(p.Hand) != 0 {
			t.Errorf("P%d: pile %d hand %d", seat+1, len(p.DrawPile), len(p.Hand))
		}
		if p.Authority != DefaultStartingAuthority {
			t.Errorf("P%d authority = %d", seat+1, p.Authority)
		}
	}
	filled := tg.Row.filled()
	if len(filled) != TradeRowSize {
		t.Fatalf("trade row has %d cards", len(filled))
	}
	if tg.Row.Slots[0] != "guild_trader" || len(tg.Row.Deck) != 1 {
		t.Errorf("row = %v, deck = %v", tg.Row.Slots, tg.Row.Deck)
	}

	tg.rejected(tg.Play(0, tg.Players[0].DrawPile[0], 0), CodeWrongPhase)
	tg.rejected(tg.SetDrawOrder(1, nil), CodeNotYourTurn)
}

func TestNaturalDraw(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, makePaddedDeck([]string{"militia", "wolf_scout"}, 10))
	tg.draw()

	p := tg.Players[0]
	if len(p.Hand) != 5 || len(p.DrawPile) != 5 {
		t.Fatalf("hand %d pile %d", len(p.Hand), len(p.DrawPile))
	}
	got := typeIDs(tg.Game, p.Hand)
	want := []string{"militia", "wolf_scout", "peasant", "peasant", "peasant"}
	if !equalStrings(got, want) {
		t.Errorf("hand = %v, want %v", got, want)
	}
	if tg.Phase != PhaseMain {
		t.Errorf("phase = %s", tg.Phase)
	}
	draws := tg.logger.EventsOfType(log.EventDraw)
	if len(draws) != 5 {
		t.Fatalf("%d draw events", len(draws))
	}
	for _, e := range draws {
		if !e.Private || e.VisibleTo(1) || !e.VisibleTo(0) {
			t.Errorf("draw event visibility wrong: %+v", e)
		}
	}
}

func TestSetDrawOrder(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, makePaddedDeck([]string{"militia", "wolf_scout", "guild_trader"}, 10))
	tg.ok(tg.SetDrawOrder(0, []int{2, 1, 0}))

	got := typeIDs(tg.Game, tg.Players[0].Hand)
	want := []string{"guild_trader", "wolf_scout", "militia", "peasant", "peasant"}
	if !equalStrings(got, want) {
		t.Errorf("hand = %v, want %v", got, want)
	}
	tg.rejected(tg.SetDrawOrder(0, nil), CodeWrongPhase)
}

func TestSetDrawOrderValidation(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat)

	tg.rejected(tg.SetDrawOrder(0, []int{0, 0}), CodeInvalidDrawOrder)
	tg.rejected(tg.SetDrawOrder(0, []int{-1}), CodeInvalidDrawOrder)
	tg.rejected(tg.SetDrawOrder(0, make([]int, 11)), CodeInvalidDrawOrder)
	if len(tg.Players[0].Hand) != 0 || tg.Phase != PhaseDrawOrder {
		t.Fatal("a rejected draw order changed the state")
	}
	tg.ok(tg.SetDrawOrder(0, []int{4, 9}))
	got := typeIDs(tg.Game, tg.Players[0].Hand)
	if got[1] != "militia" {
		t.Errorf("position 9 should hold a militia, hand = %v", got)
	}
}

// TestDrawOrderAcrossReshuffle: entries past the old pile index the pile
// that the reshuffle creates, clamped, then natural order fills in.
func TestDrawOrderAcrossReshuffle(t *testing.T) {
	cat := testCatalog(t, nil)
	deck := []DeckEntry{
		{Card: "militia", Count: 1},
		{Card: "guild_trader", Count: 1},
		{Card: "wolf_scout", Count: 1},
		{Card: "knight_errant", Count: 1},
		{Card: "salvager", Count: 1},
		{Card: "caravan_master", Count: 1},
		{Card: "royal_herald", Count: 1},
	}
	tg := newTestGame(t, cat, deck)
	tg.draw()
	tg.finishTurn() // P2
	tg.ok(tg.EndTurn(1))

	p := tg.Players[0]
	if len(p.DrawPile) != 2 || len(p.Discard) != 5 {
		t.Fatalf("pile %d discard %d", len(p.DrawPile), len(p.Discard))
	}
	tg.ok(tg.SetDrawOrder(0, []int{1, 0, 6, 5}))

	got := typeIDs(tg.Game, p.Hand)
	want := []string{"royal_herald", "caravan_master", "salvager", "knight_errant", "militia"}
	if !equalStrings(got, want) {
		t.Errorf("hand = %v, want %v", got, want)
	}
	if n := len(tg.logger.EventsOfType(log.EventShuffle)); n != 1 {
		t.Errorf("%d shuffle events, want 1", n)
	}
	left := typeIDs(tg.Game, p.DrawPile)
	if !equalStrings(left, []string{"guild_trader", "wolf_scout"}) {
		t.Errorf("pile left = %v", left)
	}
}

func TestDrawOrderClampsPastNewPile(t *testing.T) {
	cat := testCatalog(t, nil)
	deck := []DeckEntry{
		{Card: "militia", Count: 1},
		{Card: "guild_trader", Count: 1},
		{Card: "wolf_scout", Count: 1},
		{Card: "knight_errant", Count: 1},
		{Card: "salvager", Count: 1},
		{Card: "caravan_master", Count: 1},
		{Card: "royal_herald", Count: 1},
	}
	tg := newTestGame(t, cat, deck)
	tg.draw()
	tg.finishTurn()
	tg.ok(tg.EndTurn(1))

	tg.ok(tg.SetDrawOrder(0, []int{1, 0, 100, 99}))
	got := typeIDs(tg.Game, tg.Players[0].Hand)
	want := []string{"royal_herald", "caravan_master", "salvager", "militia", "guild_trader"}
	if !equalStrings(got, want) {
		t.Errorf("hand = %v, want %v", got, want)
	}
}

func TestDrawStopsWhenEverythingIsDrawn(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, makePaddedDeck(nil, 3))
	tg.draw()
	if len(tg.Players[0].Hand) != 3 {
		t.Fatalf("hand = %d, want 3", len(tg.Players[0].Hand))
	}
	if tg.Phase != PhaseMain {
		t.Errorf("phase = %s", tg.Phase)
	}
}

func TestHandSizeFollowsFlow(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, makePaddedDeck(nil, 20))
	tg.Players[0].Flow = FlowPair{Low: 3, High: 2}
	tg.draw()
	if len(tg.Players[0].Hand) != 7 {
		t.Fatalf("hand = %d, want 7", len(tg.Players[0].Hand))
	}
}
