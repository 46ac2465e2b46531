package game

import "fmt"

// --- Zone transitions ---
//
// Every zone change goes through attach/detach so the player's zone slices
// and the store's zone table never disagree.

// attach appends id to the zone named by loc and records the location.
func (g *Game) attach(id int, loc Location) {
	p := g.Players[loc.Player]
	switch loc.Zone {
	case ZoneDrawPile:
		p.DrawPile = append(p.DrawPile, id)
	case ZoneHand:
		p.Hand = append(p.Hand, id)
	case ZoneDiscard:
		p.Discard = append(p.Discard, id)
	case ZonePlayed:
		p.Played = append(p.Played, id)
	case ZoneBases:
		p.Bases = append(p.Bases, &BaseState{ID: id})
	case ZoneFrontier:
		b := p.Base(loc.Host)
		if b == nil {
			panic(fmt.Sprintf("attach %d: player %d has no base %d", id, loc.Player, loc.Host))
		}
		b.Frontier = append(b.Frontier, id)
	default:
		panic(fmt.Sprintf("attach %d: cannot attach to zone %s", id, loc.Zone))
	}
	g.Store.place(id, loc)
}

// detach removes id from whatever zone currently holds it.
func (g *Game) detach(id int) Location {
	loc, ok := g.Store.Location(id)
	if !ok {
		return Location{}
	}
	p := g.Players[loc.Player]
	switch loc.Zone {
	case ZoneDrawPile:
		p.DrawPile = removeID(p.DrawPile, id)
	case ZoneHand:
		p.Hand = removeID(p.Hand, id)
	case ZoneDiscard:
		p.Discard = removeID(p.Discard, id)
	case ZonePlayed:
		p.Played = removeID(p.Played, id)
	case ZoneBases:
		for i, b := range p.Bases {
			if b.ID == id {
				p.Bases = append(p.Bases[:i], p.Bases[i+1:]...)
				break
			}
		}
	case ZoneFrontier:
		if b := p.Base(loc.Host); b != nil {
			b.Frontier = removeID(b.Frontier, id)
		}
	}
	g.Store.place(id, Location{Player: loc.Player, Zone: ZoneNone})
	return loc
}

// move transfers an instance between zones.
func (g *Game) move(id int, to Location) {
	g.detach(id)
	g.attach(id, to)
}

// void removes an instance from the game permanently.
func (g *Game) void(id int) {
	g.detach(id)
	g.Store.destroy(id)
}

// zoneOf returns the zone an instance is in, or the void if it is gone.
func (g *Game) zoneOf(id int) Location {
	loc, ok := g.Store.Location(id)
	if !ok {
		return Location{Player: -1, Zone: ZoneVoid}
	}
	return loc
}

// owns reports whether seat owns a live instance in one of the zones.
func (g *Game) owns(seat, id int, zones ...ZoneType) bool {
	loc := g.zoneOf(id)
	if loc.Player != seat {
		return false
	}
	for _, z := range zones {
		if loc.Zone == z {
			return true
		}
	}
	return false
}

// findBase locates a base among all players.
func (g *Game) findBase(id int) (int, *BaseState) {
	for seat, p := range g.Players {
		if b := p.Base(id); b != nil {
			return seat, b
		}
	}
	return -1, nil
}

// card returns a live instance, panicking if the zone table holds a
// dangling id.
func (g *Game) card(id int) *CardInstance {
	ci, ok := g.Store.Get(id)
	if !ok {
		panic(fmt.Sprintf("instance %d is not in the store", id))
	}
	return ci
}

// cardName is the display name used in events.
func (g *Game) cardName(id int) string {
	if ci, ok := g.Store.Get(id); ok {
		return ci.DisplayString()
	}
	return fmt.Sprintf("#%d", id)
}
