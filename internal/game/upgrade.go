package game

import "github.com/gabrilend/gen-realms/internal/log"

// upgradeTargets lists the instances an upgrade may touch: the player's
// discard pile only.
func upgradeTargets(p *Player, source int) []int {
	var result []int
	for _, id := range p.Discard {
		if id != source {
			result = append(result, id)
		}
	}
	return result
}

// applyUpgrade permanently raises one bonus of an instance in the
// player's discard pile. Anything else is a no-op.
func (g *Game) applyUpgrade(seat, id int, kind UpgradeKind, amount int) bool {
	if !g.owns(seat, id, ZoneDiscard) {
		return false
	}
	ci := g.card(id)
	if !ci.applyUpgrade(kind, amount) {
		return false
	}
	g.log(log.NewUpgradeEvent(g.Turn, g.Phase.String(), seat, ci.Type.Name, ci.Upgrades[len(ci.Upgrades)-1]))
	return true
}
