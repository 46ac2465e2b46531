package game

import (
	"bytes"
	"testing"

	"github.com/gabrilend/gen-realms/internal/log"
)

func TestAllyEffectsFireInEitherOrder(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, makePaddedDeck([]string{"guild_trader", "guild_trader"}, 10))
	tg.draw()
	tg.playAll("guild_trader")

	p := tg.Players[0]
	if p.Trade != 4 || p.Combat != 4 {
		t.Fatalf("trade %d combat %d, want 4 and 4", p.Trade, p.Combat)
	}

	tg.finishTurn()
	if p.Combat != 0 {
		t.Errorf("combat carried over: %d", p.Combat)
	}
}

func TestNeutralCardsHaveNoAllies(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat)
	tg.draw()
	tg.playAll("peasant")
	tg.playAll("militia")
	for _, id := range tg.Players[0].Played {
		if tg.hasAlly(0, tg.card(id)) {
			t.Fatalf("%s found an ally", tg.cardName(id))
		}
	}
}

func TestScrapChoice(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, makePaddedDeck([]string{"tinkerer"}, 10))
	tg.draw()
	tg.play("tinkerer")

	pc := tg.Pending
	if pc == nil || pc.Kind != ChoiceScrapHandDiscard {
		t.Fatalf("pending = %+v", pc)
	}
	if pc.Min != 0 || pc.Max != 1 || len(pc.Candidates) != 4 {
		t.Fatalf("choice bounds min %d max %d candidates %d", pc.Min, pc.Max, len(pc.Candidates))
	}

	p := tg.Players[0]
	peasant := p.Hand[0]
	tg.rejected(tg.Play(0, peasant, 0), CodeChoicePending)
	tg.rejected(tg.EndTurn(0), CodeChoicePending)
	tg.rejected(tg.ResolveChoice(1, []int{peasant}), CodeNotYourTurn)
	tg.rejected(tg.ResolveChoice(0, []int{p.Hand[0], p.Hand[1]}), CodeInvalidSelection)
	tg.rejected(tg.ResolveChoice(0, []int{p.Played[0]}), CodeInvalidSelection)

	tg.ok(tg.ResolveChoice(0, []int{peasant}))
	if tg.Pending != nil {
		t.Fatal("choice still pending")
	}
	if _, ok := tg.Store.Get(peasant); ok {
		t.Error("scrapped peasant still exists")
	}
	if p.Flow != (FlowPair{Low: 4, High: 0}) {
		t.Errorf("flow = %+v, want (4, 0)", p.Flow)
	}
	// The follow-up draw fired: three peasants left plus one drawn.
	if len(p.Hand) != 4 {
		t.Errorf("hand = %d, want 4", len(p.Hand))
	}
	if p.Combat != 0 {
		t.Errorf("ally combat fired without an ally: %d", p.Combat)
	}
	tg.rejected(tg.ResolveChoice(0, nil), CodeNoChoicePending)
}

func TestDeclinedChoiceSkipsFollowUp(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, makePaddedDeck([]string{"tinkerer"}, 10))
	tg.draw()
	tg.play("tinkerer")
	tg.ok(tg.ResolveChoice(0, nil))

	p := tg.Players[0]
	if len(p.Hand) != 4 {
		t.Errorf("hand = %d, want 4 (no follow-up draw)", len(p.Hand))
	}
	if p.Flow != NewFlowPair() {
		t.Errorf("flow = %+v", p.Flow)
	}
	resolved := tg.logger.LastEvent()
	if resolved.Type != log.EventChoiceResolved || resolved.Amount != 0 {
		t.Errorf("last event = %+v", resolved)
	}
}

func TestChoiceWithoutCandidatesIsSkipped(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, []DeckEntry{{Card: "tinkerer", Count: 1}})
	tg.draw()
	tg.play("tinkerer")
	if tg.Pending != nil {
		t.Fatalf("choice raised with nothing to scrap: %+v", tg.Pending)
	}
}

// TestOpponentDiscardWaitsForDraw: the owed discard is raised once the
// opponent's next hand is drawn.
func TestOpponentDiscardWaitsForDraw(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, makePaddedDeck([]string{"royal_herald"}, 10))
	tg.draw()
	tg.play("royal_herald")

	if tg.Players[0].Authority != 54 {
		t.Errorf("authority = %d, want 54", tg.Players[0].Authority)
	}
	opp := tg.Players[1]
	if opp.DiscardOwed != 1 || tg.Pending != nil {
		t.Fatalf("owed %d pending %+v", opp.DiscardOwed, tg.Pending)
	}

	tg.finishTurn()
	pc := tg.Pending
	if pc == nil || pc.Kind != ChoiceDiscard || pc.Player != 1 {
		t.Fatalf("pending = %+v", pc)
	}
	if pc.Min != 1 || pc.Max != 1 || len(pc.Candidates) != 5 {
		t.Fatalf("discard bounds %d-%d over %d", pc.Min, pc.Max, len(pc.Candidates))
	}
	tg.rejected(tg.Play(1, opp.Hand[0], 0), CodeChoicePending)
	tg.rejected(tg.ResolveChoice(1, nil), CodeInvalidSelection)

	discarded := opp.Hand[0]
	tg.ok(tg.ResolveChoice(1, []int{discarded}))
	if len(opp.Hand) != 4 || !contains(opp.Discard, discarded) {
		t.Errorf("hand %d, discard %v", len(opp.Hand), opp.Discard)
	}
	if opp.DiscardOwed != 0 {
		t.Errorf("owed = %d", opp.DiscardOwed)
	}
	if n := len(tg.logger.EventsOfType(log.EventDiscard)); n != 2 {
		t.Errorf("%d discard events, want 2", n)
	}
}

func TestDestroyBaseChoice(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat,
		makePaddedDeck([]string{"peasant", "peasant", "peasant", "peasant", "peasant", "kings_decree"}, 10),
		makePaddedDeck([]string{"castle_keep"}, 10),
	)
	tg.draw()
	tg.finishTurn()
	keep := tg.play("castle_keep")
	tg.finishTurn()

	tg.play("kings_decree")
	pc := tg.Pending
	if pc == nil || pc.Kind != ChoiceDestroyBase {
		t.Fatalf("pending = %+v", pc)
	}
	if pc.Min != 0 || len(pc.Candidates) != 1 || pc.Candidates[0] != keep {
		t.Fatalf("choice = %+v", pc)
	}
	tg.ok(tg.ResolveChoice(0, []int{keep}))

	opp := tg.Players[1]
	if len(opp.Bases) != 0 || !contains(opp.Discard, keep) {
		t.Errorf("bases %d, keep in discard %v", len(opp.Bases), contains(opp.Discard, keep))
	}
	if tg.Players[0].Combat != 4 {
		t.Errorf("combat = %d, want 4", tg.Players[0].Combat)
	}
	if n := len(tg.logger.EventsOfType(log.EventBaseDestroyed)); n != 1 {
		t.Errorf("%d destroyed events", n)
	}
}

func TestScrapTradeRowKeepsFlow(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, makePaddedDeck([]string{"salvager"}, 10))
	tg.draw()
	tg.play("salvager")

	pc := tg.Pending
	if pc == nil || pc.Kind != ChoiceScrapTradeRow || len(pc.Candidates) != TradeRowSize {
		t.Fatalf("pending = %+v", pc)
	}
	tg.ok(tg.ResolveChoice(0, []int{0}))

	p := tg.Players[0]
	if p.Flow != NewFlowPair() {
		t.Errorf("flow = %+v, trade row scraps must not move it", p.Flow)
	}
	if tg.Row.Slots[0] != "coin_counter" || len(tg.Row.Deck) != 0 {
		t.Errorf("row = %v deck %v", tg.Row.Slots, tg.Row.Deck)
	}
	if p.Trade != 1 || p.Combat != 2 {
		t.Errorf("trade %d combat %d, want 1 and 2", p.Trade, p.Combat)
	}
}

func TestRecruitFromBase(t *testing.T) {
	cat := testCatalog(t, nil)
	tg := newTestGame(t, cat, makePaddedDeck([]string{"artificer_workshop"}, 10))
	tg.draw()
	workshop := tg.play("artificer_workshop")
	tg.finishTurn()
	tg.finishTurn()

	tg.ok(tg.ActivateBase(0, workshop))
	pc := tg.Pending
	if pc == nil || pc.Kind != ChoiceRecruit {
		t.Fatalf("pending = %+v", pc)
	}
	if pc.Min != 1 || pc.Max != 1 || len(pc.Candidates) != TradeRowSize {
		t.Fatalf("choice = %+v", pc)
	}
	tg.rejected(tg.ResolveChoice(0, nil), CodeInvalidSelection)
	tg.ok(tg.ResolveChoice(0, []int{1}))

	p := tg.Players[0]
	if len(idsOfType(tg.Game, p.Discard, "wolf_scout")) != 1 {
		t.Error("recruited wolf scout is not in the discard pile")
	}
	if p.Flow != (FlowPair{Low: 6, High: 0}) {
		t.Errorf("flow = %+v, recruits count as buys", p.Flow)
	}
	if p.Trade != 0 {
		t.Errorf("recruit cost trade: %d", p.Trade)
	}
	if tg.Row.Slots[1] != "coin_counter" {
		t.Errorf("slot 1 = %q", tg.Row.Slots[1])
	}
}

// scrapHound scraps only with an artificer ally in play; the draw is
// chained on the scrap.
func scrapHound() *CardType {
	return &CardType{
		ID:      "scrap_hound",
		Name:    "Scrap Hound",
		Faction: FactionArtificer,
		Cost:    3,
		Kind:    KindCreature,
		Effects: []Effect{
			ally(optional(Effect{Kind: EffectScrapHandDiscard, Value: 1})),
			then(draw(1)),
		},
	}
}

func newHoundGame(t *testing.T) *testGame {
	t.Helper()
	cat := testCatalog(t, nil, scrapHound(), vanillaUnit("cog", "Cog", FactionArtificer, 1, 1))
	tg := newTestGame(t, cat, makePaddedDeck([]string{"scrap_hound", "cog"}, 10))
	tg.draw()
	return tg
}

func TestChainedEffectFollowsAllyEitherOrder(t *testing.T) {
	for _, order := range [][]string{{"scrap_hound", "cog"}, {"cog", "scrap_hound"}} {
		t.Run(order[0]+"_first", func(t *testing.T) {
			tg := newHoundGame(t)
			tg.play(order[0])
			tg.play(order[1])

			pc := tg.Pending
			if pc == nil || pc.Kind != ChoiceScrapHandDiscard {
				t.Fatalf("pending = %+v", pc)
			}
			p := tg.Players[0]
			if len(p.Hand) != 3 {
				t.Fatalf("hand = %d before the scrap, want 3", len(p.Hand))
			}
			tg.ok(tg.ResolveChoice(0, []int{p.Hand[0]}))
			if len(p.Hand) != 3 {
				t.Errorf("hand = %d, want 3 after the chained draw", len(p.Hand))
			}
			if p.Flow != (FlowPair{Low: 4, High: 0}) {
				t.Errorf("flow = %+v", p.Flow)
			}
			if tg.Pending != nil {
				t.Errorf("choice raised again: %+v", tg.Pending)
			}
		})
	}
}

func TestLateAllyDeclinedSkipsChain(t *testing.T) {
	tg := newHoundGame(t)
	tg.play("scrap_hound")
	if tg.Pending != nil {
		t.Fatalf("choice raised without an ally: %+v", tg.Pending)
	}
	tg.play("cog")
	tg.ok(tg.ResolveChoice(0, nil))

	p := tg.Players[0]
	if len(p.Hand) != 3 || tg.Pending != nil {
		t.Errorf("hand %d pending %+v, want 3 and none", len(p.Hand), tg.Pending)
	}
	// Later plays do not give the declined ally effect a second try.
	tg.playAll("peasant")
	if tg.Pending != nil || len(p.Hand) != 0 {
		t.Errorf("hand %d pending %+v", len(p.Hand), tg.Pending)
	}
}

func TestSaveDuringAllySweepChoice(t *testing.T) {
	tg := newHoundGame(t)
	tg.play("scrap_hound")
	tg.play("cog")
	if tg.Pending == nil {
		t.Fatal("no pending choice")
	}

	restored, err := RestoreGame(mustSave(t, tg.Game), Config{Catalog: tg.Catalog})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	target := tg.Players[0].Hand[0]
	tg.ok(tg.ResolveChoice(0, []int{target}))
	if err := restored.ResolveChoice(0, []int{target}); err != nil {
		t.Fatalf("restored resolve: %v", err)
	}
	if len(restored.Players[0].Hand) != 3 {
		t.Errorf("restored hand = %d, want 3 after the chained draw", len(restored.Players[0].Hand))
	}
	if !bytes.Equal(mustSave(t, tg.Game), mustSave(t, restored)) {
		t.Error("restored game diverged")
	}
}
