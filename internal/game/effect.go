package game

import (
	"fmt"

	"github.com/gabrilend/gen-realms/internal/log"
)

// passMode selects which effects of a card a task evaluates.
type passMode int

const (
	passAll     passMode = iota // every effect, in catalog order
	passPrimary                 // effects without the ally flag
	passAlly                    // ally effects only
)

// effectTask is one unit of work on the effect queue: evaluate the
// effects of Source starting at index Next.
type effectTask struct {
	Player int      `json:"player"`
	Source int      `json:"source"`
	Next   int      `json:"next"`
	Mode   passMode `json:"mode"`
}

// playRecord tracks what a card in play has done this turn. Fired marks
// effects that actually executed; Tried marks effects whose gates were
// met once (ally present, previous effect fired), so they are never retried.
type playRecord struct {
	Fired []bool `json:"fired"`
	Tried []bool `json:"tried"`
}

func (g *Game) record(ci *CardInstance) *playRecord {
	rec, ok := g.plays[ci.ID]
	if !ok {
		n := len(ci.Type.Effects)
		rec = &playRecord{Fired: make([]bool, n), Tried: make([]bool, n)}
		g.plays[ci.ID] = rec
	}
	return rec
}

// --- Dispatcher ---

// enqueue schedules an effect pass for a card.
func (g *Game) enqueue(seat int, ci *CardInstance, mode passMode) {
	g.record(ci)
	g.queue = append(g.queue, effectTask{Player: seat, Source: ci.ID, Mode: mode})
}

// drain processes queued effect work until the queue is empty or an
// effect suspends for a choice. Whenever the queue runs dry, ally effects
// of cards in play are re-evaluated; the drain ends once a sweep finds
// nothing new.
func (g *Game) drain() {
	for g.Pending == nil && !g.Over() {
		if len(g.queue) == 0 {
			if !g.queueAllySweep() {
				return
			}
			continue
		}
		task := g.queue[0]
		g.queue = g.queue[1:]
		g.runTask(task)
	}
}

// runTask evaluates one card's effects from t.Next onward. A choice
// effect pushes the remainder of the task back to the front of the queue
// and stops.
func (g *Game) runTask(t effectTask) {
	ci, ok := g.Store.Get(t.Source)
	if !ok {
		return
	}
	rec := g.record(ci)
	effects := ci.Type.Effects

	for i := t.Next; i < len(effects); i++ {
		e := effects[i]
		if e.Kind == EffectSpawn && ci.Type.IsBase() {
			// bases spawn at turn start
			continue
		}
		if t.Mode == passPrimary && e.Ally {
			continue
		}
		if t.Mode == passAlly && !e.Ally && !chainedToAlly(effects, i) {
			continue
		}
		if rec.Fired[i] || rec.Tried[i] {
			continue
		}
		if e.Ally {
			if !g.hasAlly(t.Player, ci) {
				continue
			}
			rec.Tried[i] = true
		}
		if e.RequiresPrevious && (i == 0 || !rec.Fired[i-1]) {
			continue
		}
		rec.Tried[i] = true

		if e.Kind.needsChoice() {
			choice := g.buildChoice(t.Player, ci, i, e)
			if choice == nil {
				continue
			}
			g.Pending = choice
			t.Next = i + 1
			g.queue = append([]effectTask{t}, g.queue...)
			g.log(log.NewChoicePendingEvent(g.Turn, g.Phase.String(), choice.Player, choice.Kind.String(), choice.Min, choice.Max))
			return
		}
		rec.Fired[i] = g.apply(t.Player, ci, e)
	}
}

// chainedToAlly reports whether effect i hangs off an ally effect through
// a run of requires_previous links. Such follow-ups ride along with the
// ally pass that fires their head.
func chainedToAlly(effects []Effect, i int) bool {
	for j := i; j > 0 && effects[j].RequiresPrevious && !effects[j].Ally; j-- {
		if effects[j-1].Ally {
			return true
		}
	}
	return false
}

// queueAllySweep schedules an ally pass for every card in play that has an
// ally effect which could now fire. Reports whether anything was queued.
func (g *Game) queueAllySweep() bool {
	queued := false
	for _, id := range g.ActivePlayer().InPlay() {
		rec, ok := g.plays[id]
		if !ok {
			continue
		}
		ci := g.card(id)
		if !g.hasAlly(g.Active, ci) {
			continue
		}
		for i, e := range ci.Type.Effects {
			if e.Ally && !rec.Fired[i] && !rec.Tried[i] {
				g.queue = append(g.queue, effectTask{Player: g.Active, Source: id, Mode: passAlly})
				queued = true
				break
			}
		}
	}
	return queued
}

// hasAlly reports whether another card of the same faction is in play for
// seat. Neutral cards never have allies.
func (g *Game) hasAlly(seat int, ci *CardInstance) bool {
	if ci.Type.Faction == FactionNeutral {
		return false
	}
	for _, id := range g.Players[seat].InPlay() {
		if id == ci.ID {
			continue
		}
		if other, ok := g.Store.Get(id); ok && other.Type.Faction == ci.Type.Faction {
			return true
		}
	}
	return false
}

// allyCount counts the other in-play cards sharing ci's faction.
func (g *Game) allyCount(seat int, ci *CardInstance) int {
	if ci.Type.Faction == FactionNeutral {
		return 0
	}
	count := 0
	for _, id := range g.Players[seat].InPlay() {
		if id == ci.ID {
			continue
		}
		if other, ok := g.Store.Get(id); ok && other.Type.Faction == ci.Type.Faction {
			count++
		}
	}
	return count
}

// enterPlay credits an instance's permanent bonuses as it starts
// resolving in play.
func (g *Game) enterPlay(seat int, ci *CardInstance) {
	p := g.Players[seat]
	if ci.AttackBonus > 0 {
		p.Combat += ci.AttackBonus
		g.log(log.NewResourceEvent(g.Turn, g.Phase.String(), seat, ci.Type.Name, "combat", ci.AttackBonus, p.Combat))
	}
	if ci.TradeBonus > 0 {
		p.Trade += ci.TradeBonus
		g.log(log.NewResourceEvent(g.Turn, g.Phase.String(), seat, ci.Type.Name, "trade", ci.TradeBonus, p.Trade))
	}
	if ci.AuthorityBonus > 0 {
		g.gainAuthority(seat, ci.AuthorityBonus, ci.Type.Name)
	}
}

// apply executes one non-choice effect and reports whether it fired.
func (g *Game) apply(seat int, ci *CardInstance, e Effect) bool {
	p := g.Players[seat]
	switch e.Kind {
	case EffectTrade:
		p.Trade += e.Value
		g.log(log.NewResourceEvent(g.Turn, g.Phase.String(), seat, ci.Type.Name, "trade", e.Value, p.Trade))
		return true
	case EffectCombat:
		p.Combat += e.Value
		g.log(log.NewResourceEvent(g.Turn, g.Phase.String(), seat, ci.Type.Name, "combat", e.Value, p.Combat))
		return true
	case EffectAuthority:
		g.gainAuthority(seat, e.Value, ci.Type.Name)
		return true
	case EffectDraw:
		if e.AutoDraw() {
			if ci.DrawSpent {
				// already drew when it arrived in hand
				return true
			}
			ci.DrawSpent = true
		}
		drawn := g.drawCards(seat, e.Value)
		g.runAutoDraws(seat, drawn)
		return len(drawn) > 0
	case EffectOpponentDiscard:
		target := g.NextOpponent(seat)
		g.Players[target].DiscardOwed += e.Value
		g.log(log.GameEvent{
			Turn:    g.Turn,
			Phase:   g.Phase.String(),
			Player:  target,
			Type:    log.EventDiscard,
			Card:    ci.Type.Name,
			Amount:  e.Value,
			Details: fmt.Sprintf("P%d must discard %d at the start of their next turn", target+1, e.Value),
		})
		return true
	case EffectSpawn:
		return g.spawn(seat, e.Unit, 1, ci.Type.Name) > 0
	case EffectNone, EffectDestroyBase, EffectScrapTradeRow, EffectScrapHandDiscard, EffectUpgrade, EffectRecruit:
		// handled by buildChoice
	}
	return false
}

func (g *Game) gainAuthority(seat, amount int, source string) {
	p := g.Players[seat]
	old := p.Authority
	p.Authority += amount
	g.log(log.NewAuthorityChangeEvent(g.Turn, g.Phase.String(), seat, old, p.Authority, source))
}

// --- Choices ---

// buildChoice prepares the pending choice for a choice effect. It returns
// nil when there is nothing to choose, which makes the effect a no-op.
func (g *Game) buildChoice(seat int, ci *CardInstance, index int, e Effect) *PendingChoice {
	p := g.Players[seat]
	pc := &PendingChoice{
		Player:      seat,
		Source:      ci.ID,
		EffectIndex: index,
		Max:         1,
		Upgrade:     e.Upgrade,
		Value:       e.Value,
	}
	switch e.Kind {
	case EffectScrapTradeRow:
		pc.Kind = ChoiceScrapTradeRow
		pc.Candidates = g.Row.filled()
		pc.Max = max(e.Value, 1)
	case EffectScrapHandDiscard:
		pc.Kind = ChoiceScrapHandDiscard
		for _, id := range p.Hand {
			if id != ci.ID {
				pc.Candidates = append(pc.Candidates, id)
			}
		}
		for _, id := range p.Discard {
			if id != ci.ID {
				pc.Candidates = append(pc.Candidates, id)
			}
		}
		pc.Max = max(e.Value, 1)
	case EffectUpgrade:
		pc.Kind = ChoiceUpgrade
		pc.Candidates = upgradeTargets(p, ci.ID)
		pc.Value = max(e.Value, 1)
	case EffectDestroyBase:
		pc.Kind = ChoiceDestroyBase
		for other, op := range g.Players {
			if other == seat {
				continue
			}
			for _, b := range op.Bases {
				pc.Candidates = append(pc.Candidates, b.ID)
			}
		}
	case EffectRecruit:
		pc.Kind = ChoiceRecruit
		pc.Candidates = g.recruitable(e.Value)
	default:
		return nil
	}
	if len(pc.Candidates) == 0 {
		return nil
	}
	if !e.Optional {
		pc.Min = 1
	}
	pc.Max = min(pc.Max, len(pc.Candidates))
	return pc
}

// validateSelection checks a selection against the pending choice.
func validateSelection(pc *PendingChoice, selection []int) *Rejection {
	if len(selection) < pc.Min || len(selection) > pc.Max {
		return reject(CodeInvalidSelection, "%s needs %d-%d selections, got %d", pc.Kind, pc.Min, pc.Max, len(selection))
	}
	seen := make(map[int]bool, len(selection))
	for _, s := range selection {
		if !pc.allows(s) {
			return reject(CodeInvalidSelection, "%d is not a candidate for %s", s, pc.Kind)
		}
		if seen[s] {
			return reject(CodeInvalidSelection, "%d selected twice", s)
		}
		seen[s] = true
	}
	return nil
}

// resolvePending applies a validated selection, marks the source effect
// as fired when anything was selected, and resumes the effect queue.
func (g *Game) resolvePending(selection []int) {
	pc := g.Pending
	g.Pending = nil
	seat := pc.Player

	switch pc.Kind {
	case ChoiceDiscard:
		for _, id := range selection {
			g.move(id, Location{Player: seat, Zone: ZoneDiscard})
			g.log(log.NewDiscardEvent(g.Turn, g.Phase.String(), seat, g.cardName(id)))
		}
		g.Players[seat].DiscardOwed = 0
	case ChoiceScrapTradeRow:
		for _, slot := range selection {
			g.scrapTradeRow(seat, slot)
		}
	case ChoiceScrapHandDiscard:
		for _, id := range selection {
			g.scrapCard(seat, id)
		}
	case ChoiceUpgrade:
		for _, id := range selection {
			g.applyUpgrade(seat, id, pc.Upgrade, pc.Value)
		}
	case ChoiceDestroyBase:
		for _, id := range selection {
			g.destroyBase(id, fmt.Sprintf("destroyed by %s", g.cardName(pc.Source)))
		}
	case ChoiceRecruit:
		for _, slot := range selection {
			g.recruit(seat, slot)
		}
	}
	g.log(log.NewChoiceResolvedEvent(g.Turn, g.Phase.String(), seat, pc.Kind.String(), len(selection)))

	if pc.Source != 0 {
		if rec, ok := g.plays[pc.Source]; ok && pc.EffectIndex < len(rec.Fired) {
			rec.Fired[pc.EffectIndex] = len(selection) > 0
		}
	}
	g.drain()
}

// queueOwedDiscard raises the discard choice owed from opponents' effects
// once the player's hand is drawn.
func (g *Game) queueOwedDiscard(seat int) {
	p := g.Players[seat]
	n := min(p.DiscardOwed, len(p.Hand))
	if n == 0 {
		p.DiscardOwed = 0
		return
	}
	g.Pending = &PendingChoice{
		Kind:       ChoiceDiscard,
		Player:     seat,
		Candidates: append([]int(nil), p.Hand...),
		Min:        n,
		Max:        n,
	}
	g.log(log.NewChoicePendingEvent(g.Turn, g.Phase.String(), seat, ChoiceDiscard.String(), n, n))
}
