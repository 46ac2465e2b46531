package game

import (
	"testing"

	"github.com/gabrilend/gen-realms/internal/log"
)

// --- Test catalog helpers ---

// defaultTestMarket keeps the first trade row predictable under NoShuffle.
var defaultTestMarket = []string{"guild_trader", "wolf_scout", "knight_errant", "tinkerer", "salvager", "coin_counter"}

// testCatalog builds a catalog from the built-in card set plus extra test
// cards. The market holds one copy of each listed card, in order.
func testCatalog(t *testing.T, market []string, extra ...*CardType) *Catalog {
	t.Helper()
	cards := make([]*CardType, 0, len(registryOrder)+len(extra))
	for _, id := range registryOrder {
		cards = append(cards, LookupCard(id))
	}
	cards = append(cards, extra...)
	if len(market) == 0 {
		market = defaultTestMarket
	}
	entries := make([]DeckEntry, 0, len(market))
	for _, id := range market {
		entries = append(entries, DeckEntry{Card: id, Count: 1})
	}
	starting := []DeckEntry{{Card: "peasant", Count: 8}, {Card: "militia", Count: 2}}
	cat, err := NewCatalog(cards, starting, entries, "wanderer")
	if err != nil {
		t.Fatalf("test catalog: %v", err)
	}
	return cat
}

// vanillaUnit is a creature with a single combat effect.
func vanillaUnit(id, name string, faction Faction, cost, power int) *CardType {
	return &CardType{
		ID:      id,
		Name:    name,
		Faction: faction,
		Cost:    cost,
		Kind:    KindCreature,
		Effects: []Effect{combat(power)},
	}
}

// makePaddedDeck creates a starting deck with the given cards on top
// (index 0 is drawn first) and peasants below to reach size.
func makePaddedDeck(top []string, size int) []DeckEntry {
	deck := make([]DeckEntry, 0, len(top)+1)
	for _, id := range top {
		deck = append(deck, DeckEntry{Card: id, Count: 1})
	}
	if n := size - len(top); n > 0 {
		deck = append(deck, DeckEntry{Card: "peasant", Count: n})
	}
	return deck
}

// --- Test game driver ---

type testGame struct {
	*Game
	t      *testing.T
	logger *log.MemoryLogger
}

// newTestGame starts an unshuffled game with one starting deck per seat.
func newTestGame(t *testing.T, cat *Catalog, decks ...[]DeckEntry) *testGame {
	t.Helper()
	logger := log.NewMemoryLogger()
	g, err := NewGame(Config{
		Catalog:       cat,
		Players:       max(len(decks), MinPlayers),
		Logger:        logger,
		Seed:          1,
		NoShuffle:     true,
		StartingDecks: decks,
	})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return &testGame{Game: g, t: t, logger: logger}
}

// ok fails the test on a rejection and dumps the event log.
func (tg *testGame) ok(err *Rejection) {
	tg.t.Helper()
	if err != nil {
		tg.t.Logf("Event log:\n%s", log.FormatAll(tg.logger.Events()))
		tg.t.Fatalf("unexpected rejection: %v", err)
	}
}

// rejected asserts a rejection with the given code.
func (tg *testGame) rejected(err *Rejection, code Code) {
	tg.t.Helper()
	if err == nil {
		tg.t.Fatalf("expected rejection %s, command was accepted", code)
	}
	if err.Code != code {
		tg.t.Fatalf("expected rejection %s, got %v", code, err)
	}
}

// draw submits the natural draw order for the active player.
func (tg *testGame) draw() {
	tg.t.Helper()
	tg.ok(tg.SetDrawOrder(tg.Active, nil))
}

// finishTurn ends the active turn and draws the next player's hand.
func (tg *testGame) finishTurn() {
	tg.t.Helper()
	tg.ok(tg.EndTurn(tg.Active))
	tg.draw()
}

// inHand returns the first instance of a card type in the active hand.
func (tg *testGame) inHand(typeID string) int {
	tg.t.Helper()
	ids := idsOfType(tg.Game, tg.ActivePlayer().Hand, typeID)
	if len(ids) == 0 {
		tg.t.Fatalf("no %s in P%d's hand (%v)", typeID, tg.Active+1, typeIDs(tg.Game, tg.ActivePlayer().Hand))
	}
	return ids[0]
}

// play plays the first card of a type from the active hand.
func (tg *testGame) play(typeID string) int {
	tg.t.Helper()
	id := tg.inHand(typeID)
	tg.ok(tg.Play(tg.Active, id, 0))
	return id
}

// playAll plays every card of a type in the active hand.
func (tg *testGame) playAll(typeID string) {
	tg.t.Helper()
	for _, id := range idsOfType(tg.Game, tg.ActivePlayer().Hand, typeID) {
		tg.ok(tg.Play(tg.Active, id, 0))
	}
}

func idsOfType(g *Game, ids []int, typeID string) []int {
	var result []int
	for _, id := range ids {
		if ci, ok := g.Store.Get(id); ok && ci.TypeID == typeID {
			result = append(result, id)
		}
	}
	return result
}

func typeIDs(g *Game, ids []int) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if ci, ok := g.Store.Get(id); ok {
			result = append(result, ci.TypeID)
		}
	}
	return result
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
