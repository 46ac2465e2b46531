package game

import "github.com/gabrilend/gen-realms/internal/log"

// --- Trade row ---

// TradeRow is the shared market: a fixed row of slots holding card type
// ids (empty string for an empty slot), the market deck that refills
// them, and the wanderer, which is always available.
type TradeRow struct {
	Slots    [TradeRowSize]string `json:"slots"`
	Deck     []string             `json:"deck"` // index 0 is the top
	Wanderer string               `json:"wanderer"`
}

func newTradeRow(deck []string, wanderer string) *TradeRow {
	return &TradeRow{Deck: deck, Wanderer: wanderer}
}

// filled returns the indices of non-empty slots.
func (r *TradeRow) filled() []int {
	var result []int
	for i, id := range r.Slots {
		if id != "" {
			result = append(result, i)
		}
	}
	return result
}

// RowSelector picks which market deck card refills an empty slot. It
// returns an index into deck, or -1 to leave the slot empty.
type RowSelector interface {
	Select(cat *Catalog, row [TradeRowSize]string, deck []string) int
}

// TopSelector always takes the top of the market deck.
type TopSelector struct{}

func (TopSelector) Select(_ *Catalog, _ [TradeRowSize]string, deck []string) int {
	if len(deck) == 0 {
		return -1
	}
	return 0
}

// FactionBalancedSelector looks at the top Window cards of the market
// deck and takes the first one whose faction is least represented in the
// row. Neutral cards count as their own faction.
type FactionBalancedSelector struct {
	Window int
}

func (s FactionBalancedSelector) Select(cat *Catalog, row [TradeRowSize]string, deck []string) int {
	if len(deck) == 0 {
		return -1
	}
	window := s.Window
	if window <= 0 {
		window = 3
	}
	window = min(window, len(deck))

	counts := make(map[Faction]int)
	for _, id := range row {
		if ct, ok := cat.Lookup(id); ok {
			counts[ct.Faction]++
		}
	}
	best, bestCount := 0, -1
	for i := 0; i < window; i++ {
		ct, ok := cat.Lookup(deck[i])
		if !ok {
			continue
		}
		if c := counts[ct.Faction]; bestCount < 0 || c < bestCount {
			best, bestCount = i, c
		}
	}
	return best
}

// refill fills an empty slot from the market deck through the selector.
func (g *Game) refill(slot int) {
	r := g.Row
	if r.Slots[slot] != "" {
		return
	}
	i := g.selector.Select(g.Catalog, r.Slots, r.Deck)
	if i < 0 || i >= len(r.Deck) {
		return
	}
	r.Slots[slot] = r.Deck[i]
	r.Deck = append(r.Deck[:i], r.Deck[i+1:]...)
	g.log(log.NewRefillEvent(g.Turn, g.Phase.String(), slot, g.typeName(r.Slots[slot])))
}

func (g *Game) typeName(id string) string {
	if ct, ok := g.Catalog.Lookup(id); ok {
		return ct.Name
	}
	return id
}

// rowCard resolves a buy target to its card type. Slot -1 is the wanderer.
func (g *Game) rowCard(slot int) (*CardType, *Rejection) {
	if slot == WandererSlot {
		ct, _ := g.Catalog.Lookup(g.Row.Wanderer)
		return ct, nil
	}
	if slot < 0 || slot >= TradeRowSize {
		return nil, reject(CodeInvalidTarget, "slot %d is out of range", slot)
	}
	id := g.Row.Slots[slot]
	if id == "" {
		return nil, reject(CodeEmptySlot, "slot %d is empty", slot)
	}
	ct, _ := g.Catalog.Lookup(id)
	return ct, nil
}

// gain creates a new instance of ct in the player's discard pile. Every
// gained card counts as a purchase for the flow pair.
func (g *Game) gain(seat int, ct *CardType) *CardInstance {
	ci := g.Store.Create(ct, seat)
	g.attach(ci.ID, Location{Player: seat, Zone: ZoneDiscard})
	p := g.Players[seat]
	p.Flow.Increment()
	g.log(log.NewFlowEvent(g.Turn, g.Phase.String(), seat, p.Flow.Low, p.Flow.High, p.Flow.HandSize()))
	return ci
}

// takeFromRow empties a slot (the wanderer never runs out) and refills it.
func (g *Game) takeFromRow(slot int) {
	if slot == WandererSlot {
		return
	}
	g.Row.Slots[slot] = ""
	g.refill(slot)
}

// recruitable lists the slots whose card costs at most limit.
func (g *Game) recruitable(limit int) []int {
	var result []int
	for _, slot := range g.Row.filled() {
		if ct, ok := g.Catalog.Lookup(g.Row.Slots[slot]); ok && ct.Cost <= limit {
			result = append(result, slot)
		}
	}
	return result
}

// recruit gains a trade row card for free.
func (g *Game) recruit(seat, slot int) {
	ct, _ := g.Catalog.Lookup(g.Row.Slots[slot])
	g.gain(seat, ct)
	g.log(log.NewRecruitEvent(g.Turn, g.Phase.String(), seat, ct.Name))
	g.takeFromRow(slot)
}

// scrapTradeRow removes a market card from the game. Trade row scraps do
// not touch the flow pair: they destroy no card the player owns.
func (g *Game) scrapTradeRow(seat, slot int) {
	name := g.typeName(g.Row.Slots[slot])
	g.log(log.NewTradeRowScrapEvent(g.Turn, g.Phase.String(), seat, name))
	g.takeFromRow(slot)
}

// scrapCard removes one of the player's cards from the game for good.
func (g *Game) scrapCard(seat, id int) {
	from := g.zoneOf(id).Zone
	name := g.cardName(id)
	g.void(id)
	p := g.Players[seat]
	p.Flow.Decrement()
	g.log(log.NewScrapEvent(g.Turn, g.Phase.String(), seat, name, from.String()))
	g.log(log.NewFlowEvent(g.Turn, g.Phase.String(), seat, p.Flow.Low, p.Flow.High, p.Flow.HandSize()))
}
