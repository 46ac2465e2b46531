package game

import "github.com/gabrilend/gen-realms/internal/log"

// --- Frontier and the charge ---

// stage holds a card at a base's frontier. Its cost raises the base's
// defense and only its ally effects fire now.
func (g *Game) stage(seat int, ci *CardInstance, b *BaseState) {
	g.move(ci.ID, Location{Player: seat, Zone: ZoneFrontier, Host: b.ID})
	b.FrontierDefense += ci.Type.Cost
	g.log(log.NewStageEvent(g.Turn, g.Phase.String(), seat, ci.Type.Name, g.cardName(b.ID), g.baseDefense(b)))
	g.enqueue(seat, ci, passAlly)
	g.drain()
}

// charge plays a frontier leader. Every card staged at the charging bases
// enters play in arrival order and fires its primary effects before the
// leader's own; ally effects re-evaluate once the queue empties. With
// target zero every base holding frontier cards charges.
func (g *Game) charge(seat int, leader *CardInstance, target int) {
	p := g.Players[seat]
	var bases []*BaseState
	if target != 0 {
		if b := p.Base(target); b != nil && len(b.Frontier) > 0 {
			bases = append(bases, b)
		}
	} else {
		bases = p.StagedBases()
	}

	g.move(leader.ID, Location{Player: seat, Zone: ZonePlayed})
	g.log(log.NewPlayEvent(g.Turn, g.Phase.String(), seat, leader.DisplayString()))

	for _, b := range bases {
		staged := append([]int(nil), b.Frontier...)
		for _, id := range staged {
			g.move(id, Location{Player: seat, Zone: ZonePlayed})
		}
		b.FrontierDefense = 0
		b.Frontier = nil
		g.log(log.NewChargeEvent(g.Turn, g.Phase.String(), seat, leader.Type.Name, g.cardName(b.ID), len(staged)))
		for _, id := range staged {
			ci := g.card(id)
			g.enterPlay(seat, ci)
			g.enqueue(seat, ci, passPrimary)
		}
	}

	g.enterPlay(seat, leader)
	g.enqueue(seat, leader, passAll)
	g.drain()
}
