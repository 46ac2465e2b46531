package game

import "github.com/gabrilend/gen-realms/internal/log"

// --- Bases and spawning ---

// deployBases arms every base the player put down last turn and clears
// last turn's activations.
func (g *Game) deployBases(seat int) {
	for _, b := range g.Players[seat].Bases {
		b.Activated = false
		if !b.Deployed {
			b.Deployed = true
			g.log(log.NewDeployEvent(g.Turn, g.Phase.String(), seat, g.cardName(b.ID)))
		}
	}
}

// spawnUnits runs the spawn effects of deployed bases. Each spawn effect
// creates one unit, or one per faction ally in play for spawn_per_ally
// bases. Spawn effects on other cards fire when played, through apply.
func (g *Game) spawnUnits(seat int) {
	for _, b := range append([]*BaseState(nil), g.Players[seat].Bases...) {
		if !b.Deployed {
			continue
		}
		base := g.card(b.ID)
		for _, e := range base.Type.SpawnEffects() {
			n := 1
			if base.Type.SpawnPerAlly {
				n = g.allyCount(seat, base)
			}
			g.spawn(seat, e.Unit, n, base.Type.Name)
		}
	}
}

// spawn creates n units of a type in the player's discard pile and
// returns how many were made.
func (g *Game) spawn(seat int, unitID string, n int, source string) int {
	unit, ok := g.Catalog.Lookup(unitID)
	if !ok {
		return 0
	}
	for i := 0; i < n; i++ {
		ci := g.Store.Create(unit, seat)
		g.attach(ci.ID, Location{Player: seat, Zone: ZoneDiscard})
		g.log(log.NewSpawnEvent(g.Turn, g.Phase.String(), seat, unit.Name, source))
	}
	return n
}

// baseDefense is the combat needed to destroy a base, including cards
// staged at its frontier.
func (g *Game) baseDefense(b *BaseState) int {
	return g.card(b.ID).Type.Defense + b.FrontierDefense
}

// hasOutpost reports whether the player has a deployed outpost.
func (g *Game) hasOutpost(seat int) bool {
	for _, b := range g.Players[seat].Bases {
		if b.Deployed && g.card(b.ID).Type.Outpost {
			return true
		}
	}
	return false
}

// destroyBase sends a base and everything staged at its frontier to the
// owner's discard pile. Staged cards never fire.
func (g *Game) destroyBase(id int, reason string) {
	owner, b := g.findBase(id)
	if b == nil {
		return
	}
	for _, staged := range append([]int(nil), b.Frontier...) {
		g.move(staged, Location{Player: owner, Zone: ZoneDiscard})
	}
	name := g.cardName(id)
	g.move(id, Location{Player: owner, Zone: ZoneDiscard})
	g.log(log.NewBaseDestroyedEvent(g.Turn, g.Phase.String(), owner, name, reason))
}
