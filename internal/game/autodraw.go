package game

import "github.com/gabrilend/gen-realms/internal/log"

// runAutoDraws resolves the auto-draw chain over freshly drawn cards.
//
// Cards are scanned in draw order from a single-pass queue. A card whose
// auto-draw is not yet spent draws immediately and the new cards join the
// back of the queue. The chain can never draw more cards than the draw
// pile and discard held when it started, so it always terminates.
func (g *Game) runAutoDraws(seat int, drawn []int) int {
	p := g.Players[seat]
	budget := len(p.DrawPile) + len(p.Discard)
	queue := append([]int(nil), drawn...)
	extra := 0

	for len(queue) > 0 && budget > 0 {
		id := queue[0]
		queue = queue[1:]
		if !g.owns(seat, id, ZoneHand) {
			continue
		}
		ci := g.card(id)
		if ci.DrawSpent || !ci.Type.HasAutoDraw() {
			continue
		}
		ci.DrawSpent = true
		for _, e := range ci.Type.Effects {
			if !e.AutoDraw() || budget == 0 {
				continue
			}
			more := g.drawCards(seat, min(e.Value, budget))
			budget -= len(more)
			extra += len(more)
			g.log(log.NewAutoDrawEvent(g.Turn, g.Phase.String(), seat, ci.Type.Name, len(more)))
			queue = append(queue, more...)
			if len(more) < e.Value {
				budget = 0
			}
		}
	}
	return extra
}
