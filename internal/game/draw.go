package game

import "github.com/gabrilend/gen-realms/internal/log"

// --- Drawing ---

// reshuffle turns the player's discard pile into a new draw pile under
// the existing one. Every reshuffled instance gets its auto-draw back.
func (g *Game) reshuffle(seat int) bool {
	p := g.Players[seat]
	if len(p.Discard) == 0 {
		return false
	}
	ids := p.Discard
	p.Discard = nil
	for _, id := range ids {
		g.card(id).DrawSpent = false
		g.Store.place(id, Location{Player: seat, Zone: ZoneDrawPile})
	}
	shuffle(g, ids)
	p.DrawPile = append(p.DrawPile, ids...)
	g.log(log.NewShuffleEvent(g.Turn, g.Phase.String(), seat, len(ids)))
	return true
}

// drawTop moves the top card of the draw pile to hand, reshuffling the
// discard pile first if the draw pile is empty.
func (g *Game) drawTop(seat int) (int, bool) {
	p := g.Players[seat]
	if len(p.DrawPile) == 0 && !g.reshuffle(seat) {
		return 0, false
	}
	id := p.DrawPile[0]
	g.move(id, Location{Player: seat, Zone: ZoneHand})
	g.log(log.NewDrawEvent(g.Turn, g.Phase.String(), seat, g.cardName(id)))
	return id, true
}

// drawCards draws up to n cards and returns them in draw order.
func (g *Game) drawCards(seat, n int) []int {
	var drawn []int
	for i := 0; i < n; i++ {
		id, ok := g.drawTop(seat)
		if !ok {
			break
		}
		drawn = append(drawn, id)
	}
	return drawn
}

// drawHand reveals the turn's hand in the order the player submitted.
// Order entries index draw pile positions; entries past the current pile
// index the pile formed by a mid-draw reshuffle.
func (g *Game) drawHand(seat int, order []int) []int {
	p := g.Players[seat]
	n := p.Flow.HandSize()
	oldLen := len(p.DrawPile)
	p.DrawPile = revealOrder(p.DrawPile, order, 0)

	var drawn []int
	for len(drawn) < n {
		if len(p.DrawPile) == 0 {
			if !g.reshuffle(seat) {
				break
			}
			p.DrawPile = revealOrder(p.DrawPile, order, oldLen)
		}
		id, _ := g.drawTop(seat)
		drawn = append(drawn, id)
	}
	return drawn
}

// revealOrder arranges pile so the positions named in order come first.
// With a zero offset, entries beyond the pile are left for a later
// reshuffle; otherwise entries are shifted by offset and clamped to the
// pile. Repeated positions are dropped and unnamed positions follow in
// their natural order.
func revealOrder(pile, order []int, offset int) []int {
	if len(pile) == 0 {
		return pile
	}
	seen := make([]bool, len(pile))
	result := make([]int, 0, len(pile))
	for _, e := range order {
		pos := e - offset
		if pos < 0 || (offset == 0 && pos >= len(pile)) {
			continue
		}
		pos = min(pos, len(pile)-1)
		if seen[pos] {
			continue
		}
		seen[pos] = true
		result = append(result, pile[pos])
	}
	for pos, id := range pile {
		if !seen[pos] {
			result = append(result, id)
		}
	}
	return result
}

// validateDrawOrder rejects orders that are not a partial permutation of
// the current pile. Entries past the pile are allowed and clamped later.
func validateDrawOrder(p *Player, order []int) *Rejection {
	if len(order) > len(p.DrawPile)+len(p.Discard) {
		return reject(CodeInvalidDrawOrder, "order has %d entries but only %d cards can be drawn", len(order), len(p.DrawPile)+len(p.Discard))
	}
	seen := make(map[int]bool, len(order))
	for _, e := range order {
		if e < 0 {
			return reject(CodeInvalidDrawOrder, "negative position %d", e)
		}
		if e < len(p.DrawPile) && seen[e] {
			return reject(CodeInvalidDrawOrder, "position %d appears twice", e)
		}
		seen[e] = true
	}
	return nil
}
