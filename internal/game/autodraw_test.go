package game

import (
	"testing"

	"github.com/gabrilend/gen-realms/internal/log"
)

func TestAutoDrawOnArrival(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, makePaddedDeck([]string{"coin_counter", "coin_counter", "coin_counter"}, 10))
	tg.draw()

	p := tg.Players[0]
	if len(p.Hand) != 8 {
		t.Fatalf("hand = %d, want 5 + 3 auto-draws", len(p.Hand))
	}
	if n := len(tg.logger.EventsOfType(log.EventAutoDraw)); n != 3 {
		t.Errorf("%d auto-draw events, want 3", n)
	}
	for _, id := range idsOfType(tg.Game, p.Hand, "coin_counter") {
		if !tg.card(id).DrawSpent {
			t.Errorf("coin counter %d kept its draw", id)
		}
	}

	// A spent draw does not fire again when the card is played.
	tg.play("coin_counter")
	if len(p.Hand) != 7 {
		t.Errorf("hand after play = %d, want 7", len(p.Hand))
	}
	if p.Trade != 1 {
		t.Errorf("trade = %d, want 1", p.Trade)
	}
}

func TestAutoDrawChains(t *testing.T) {
	cat := testCatalog(t, nil)
	deck := []DeckEntry{
		{Card: "coin_counter", Count: 1},
		{Card: "peasant", Count: 4},
		{Card: "coin_counter", Count: 1},
		{Card: "peasant", Count: 4},
	}
	tg := newTestGame(t, cat, deck)
	tg.draw()

	p := tg.Players[0]
	if len(p.Hand) != 7 {
		t.Fatalf("hand = %d, want 7", len(p.Hand))
	}
	got := typeIDs(tg.Game, p.Hand)
	if got[5] != "coin_counter" || got[6] != "peasant" {
		t.Errorf("hand = %v, want the second counter to draw after the first", got)
	}
	if len(p.DrawPile) != 3 {
		t.Errorf("pile = %d, want 3", len(p.DrawPile))
	}
}

// TestAutoDrawBudget: the chain never draws more than the pile and
// discard held when it began.
func TestAutoDrawBudget(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, []DeckEntry{{Card: "coin_counter", Count: 6}})
	tg.draw()

	p := tg.Players[0]
	if len(p.Hand) != 6 || len(p.DrawPile) != 0 {
		t.Fatalf("hand %d pile %d, want 6 and 0", len(p.Hand), len(p.DrawPile))
	}
	if n := len(tg.logger.EventsOfType(log.EventAutoDraw)); n != 1 {
		t.Errorf("%d auto-draw events, want 1", n)
	}
	spent := 0
	for _, id := range p.Hand {
		if tg.card(id).DrawSpent {
			spent++
		}
	}
	if spent != 1 {
		t.Errorf("%d counters spent their draw, want 1", spent)
	}

	// Playing an unspent counter with nothing left to draw is harmless.
	tg.ok(tg.Play(0, p.Hand[1], 0))
	if len(p.Hand) != 5 || p.Trade != 1 {
		t.Errorf("hand %d trade %d", len(p.Hand), p.Trade)
	}
}

func TestReshuffleRestoresAutoDraw(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, makePaddedDeck([]string{"coin_counter"}, 6))
	tg.draw()

	p := tg.Players[0]
	counter := tg.inHand("coin_counter")
	if len(p.Hand) != 6 || !tg.card(counter).DrawSpent {
		t.Fatalf("hand %d, spent %v", len(p.Hand), tg.card(counter).DrawSpent)
	}
	tg.finishTurn()
	if !tg.card(counter).DrawSpent {
		t.Fatal("the draw came back without a reshuffle")
	}
	tg.ok(tg.EndTurn(1))

	// Turn 3: the empty pile reshuffles the discard, so the counter
	// draws again.
	tg.draw()
	if len(p.Hand) != 6 {
		t.Fatalf("hand = %d, want 6", len(p.Hand))
	}
	if n := len(tg.logger.EventsOfType(log.EventAutoDraw)); n != 2 {
		t.Errorf("%d auto-draw events, want 2", n)
	}
}

// TestPlayedDrawFeedsChain: a card drawn by a played effect runs its own
// auto-draw.
func TestPlayedDrawFeedsChain(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, makePaddedDeck([]string{
		"guild_trader", "caravan_master", "peasant", "peasant", "peasant", "coin_counter",
	}, 10))
	tg.draw()

	tg.play("guild_trader")
	tg.play("caravan_master")

	p := tg.Players[0]
	if p.Trade != 5 || p.Combat != 2 {
		t.Errorf("trade %d combat %d, want 5 and 2", p.Trade, p.Combat)
	}
	got := typeIDs(tg.Game, p.Hand)
	want := []string{"peasant", "peasant", "peasant", "coin_counter", "peasant"}
	if !equalStrings(got, want) {
		t.Errorf("hand = %v, want %v", got, want)
	}
}
