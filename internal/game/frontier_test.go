package game

import (
	"testing"

	"github.com/gabrilend/gen-realms/internal/log"
)

// frontierCards are three wilds units with distinct costs and effects.
func frontierCards() []*CardType {
	return []*CardType{
		vanillaUnit("pathfinder", "Pathfinder", FactionWilds, 1, 1),
		{
			ID:      "trapper",
			Name:    "Trapper",
			Faction: FactionWilds,
			Cost:    2,
			Kind:    KindCreature,
			Effects: []Effect{trade(2)},
		},
		{
			ID:      "stalker",
			Name:    "Stalker",
			Faction: FactionWilds,
			Cost:    3,
			Kind:    KindCreature,
			Effects: []Effect{authority(3), ally(combat(1))},
		},
	}
}

func TestFrontierStageAndCharge(t *testing.T) {
	cat := testCatalog(t, nil, frontierCards()...)
	tg := newTestGame(t, cat, makePaddedDeck([]string{
		"hunting_lodge", "peasant", "peasant", "peasant", "peasant",
		"pathfinder", "trapper", "stalker", "peasant", "peasant",
		"wild_chieftain",
	}, 15))
	tg.draw()
	lodge := tg.play("hunting_lodge")
	tg.finishTurn()
	tg.ok(tg.EndTurn(1))
	tg.draw()

	p := tg.Players[0]
	tg.rejected(tg.Play(0, tg.inHand("peasant"), lodge), CodeNotFrontierCard)
	tg.rejected(tg.Play(0, tg.inHand("pathfinder"), 999), CodeInvalidTarget)
	for _, id := range []string{"pathfinder", "trapper", "stalker"} {
		tg.ok(tg.Play(0, tg.inHand(id), lodge))
	}

	b := p.Base(lodge)
	if len(b.Frontier) != 3 || tg.baseDefense(b) != 10 {
		t.Fatalf("frontier %d defense %d, want 3 and 10", len(b.Frontier), tg.baseDefense(b))
	}
	// Only the stalker's ally effect fires while staged.
	if p.Combat != 1 || p.Trade != 0 || p.Authority != 50 {
		t.Fatalf("combat %d trade %d authority %d after staging", p.Combat, p.Trade, p.Authority)
	}
	view := tg.Snapshot(1).Players[0].Bases[0]
	if view.Defense != 10 || len(view.Frontier) != 3 {
		t.Errorf("opponent view of the frontier = %+v", view)
	}

	tg.finishTurn()
	tg.finishTurn()

	// Turn 5: the chieftain charges.
	tg.rejected(tg.Play(0, tg.inHand("wild_chieftain"), 999), CodeInvalidTarget)
	seq := tg.logger.LastEvent().Seq
	tg.play("wild_chieftain")

	var order []string
	for _, e := range tg.logger.Since(seq) {
		if e.Type == log.EventResource {
			order = append(order, e.Card)
		}
	}
	want := []string{"Pathfinder", "Trapper", "Wild Chieftain", "Stalker"}
	if !equalStrings(order, want) {
		t.Errorf("resource order = %v, want %v", order, want)
	}
	if p.Combat != 7 || p.Trade != 2 || p.Authority != 55 {
		t.Errorf("combat %d trade %d authority %d, want 7, 2, 55", p.Combat, p.Trade, p.Authority)
	}
	if len(b.Frontier) != 0 || b.FrontierDefense != 0 || tg.baseDefense(b) != 4 {
		t.Errorf("lodge after charge = %+v", b)
	}
	if len(p.Played) != 4 {
		t.Errorf("played = %v", typeIDs(tg.Game, p.Played))
	}
	if n := len(tg.logger.EventsOfType(log.EventCharge)); n != 1 {
		t.Errorf("%d charge events", n)
	}
}

func TestDestroyedBaseDiscardsFrontier(t *testing.T) {
	cat := testCatalog(t, nil, frontierCards()...)
	tg := newTestGame(t, cat,
		makePaddedDeck([]string{"hunting_lodge", "peasant", "peasant", "peasant", "peasant", "pathfinder"}, 10),
		makePaddedDeck([]string{"peasant", "peasant", "peasant", "peasant", "peasant", "kings_decree"}, 10),
	)
	tg.draw()
	lodge := tg.play("hunting_lodge")
	tg.finishTurn()
	tg.finishTurn()

	scout := tg.inHand("pathfinder")
	tg.ok(tg.Play(0, scout, lodge))
	tg.finishTurn()

	tg.play("kings_decree")
	tg.ok(tg.ResolveChoice(1, []int{lodge}))

	p := tg.Players[0]
	if len(p.Bases) != 0 {
		t.Fatalf("bases = %+v", p.Bases)
	}
	if !contains(p.Discard, scout) || !contains(p.Discard, lodge) {
		t.Errorf("discard = %v", typeIDs(tg.Game, p.Discard))
	}
	for _, e := range tg.logger.EventsOfType(log.EventResource) {
		if e.Card == "Pathfinder" {
			t.Errorf("staged card fired: %s", e.Details)
		}
	}
}

func TestChargeWithoutStagedCards(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, makePaddedDeck([]string{"wild_chieftain"}, 10))
	tg.draw()
	tg.play("wild_chieftain")

	p := tg.Players[0]
	if p.Combat != 5 || p.Authority != 50 {
		t.Errorf("combat %d authority %d, want 5 and 50", p.Combat, p.Authority)
	}
	if n := len(tg.logger.EventsOfType(log.EventCharge)); n != 0 {
		t.Errorf("%d charge events with nothing staged", n)
	}
}
