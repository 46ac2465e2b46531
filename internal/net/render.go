package net

import (
	"fmt"
	"io"
	"strings"

	"github.com/gabrilend/gen-realms/internal/game"
)

// RenderSnapshot draws the board as seen by the snapshot's viewer:
// opponents on top, the trade row in the middle and the viewer's own
// seat at the bottom.
func RenderSnapshot(w io.Writer, s *game.Snapshot) {
	if s == nil {
		return
	}
	var me *game.PlayerView
	for i := range s.Players {
		if s.Players[i].Seat == s.Viewer {
			me = &s.Players[i]
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")
	for _, p := range s.Players {
		if me != nil && p.Seat == me.Seat {
			continue
		}
		fmt.Fprintf(w, "║  P%d  Authority: %d  Hand: %d  Deck: %d  Discard: %d\n",
			p.Seat+1, p.Authority, p.HandCount, p.DeckCount, p.DiscardCount)
		renderField(w, p)
	}

	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")
	fmt.Fprintf(w, "║  Trade row: ")
	for slot, cv := range s.TradeRow {
		if cv == nil {
			fmt.Fprintf(w, "[%d] -  ", slot)
			continue
		}
		fmt.Fprintf(w, "[%d] %s (%d)  ", slot, cv.Name, cv.Cost)
	}
	fmt.Fprintf(w, "[w] %s (%d)\n", s.Wanderer.Name, s.Wanderer.Cost)
	fmt.Fprintf(w, "║  Market deck: %d\n", s.MarketCount)

	if me != nil {
		fmt.Fprintln(w, "║──────────────────────────────────────────────────────")
		renderField(w, *me)
		fmt.Fprintf(w, "║  YOU (P%d)  Authority: %d  Trade: %d  Combat: %d  Deck: %d  Discard: %d\n",
			me.Seat+1, me.Authority, me.Trade, me.Combat, me.DeckCount, me.DiscardCount)
		if me.Flow != nil {
			fmt.Fprintf(w, "║  Flow: %d/%d  Next hand: %d\n", me.Flow.Low, me.Flow.High, me.NextHandSize)
		}
	}
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", s.Turn, s.Phase)
	switch {
	case s.Winner >= 0:
		turnInfo += fmt.Sprintf(" | P%d won", s.Winner+1)
	case me != nil && s.Active == me.Seat:
		turnInfo += " | Your turn"
	default:
		turnInfo += fmt.Sprintf(" | P%d's turn", s.Active+1)
	}
	fmt.Fprintln(w, turnInfo)

	if me != nil && len(me.Hand) > 0 {
		fmt.Fprintf(w, "\nHand: %s\n", formatCards(me.Hand))
	}
	if me != nil && me.DiscardOwed > 0 {
		fmt.Fprintf(w, "You must discard %d at your next draw.\n", me.DiscardOwed)
	}
	if pc := s.Pending; pc != nil {
		renderChoice(w, pc, me)
	}
}

func renderField(w io.Writer, p game.PlayerView) {
	if len(p.Played) > 0 {
		fmt.Fprintf(w, "║  Played: %s\n", formatCards(p.Played))
	}
	for _, b := range p.Bases {
		fmt.Fprintf(w, "║  Base:   %s\n", formatBase(b))
	}
}

func formatCard(cv game.CardView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s", cv.ID, cv.Name)
	var bonus []string
	if cv.AttackBonus > 0 {
		bonus = append(bonus, fmt.Sprintf("+%d combat", cv.AttackBonus))
	}
	if cv.TradeBonus > 0 {
		bonus = append(bonus, fmt.Sprintf("+%d trade", cv.TradeBonus))
	}
	if cv.AuthorityBonus > 0 {
		bonus = append(bonus, fmt.Sprintf("+%d authority", cv.AuthorityBonus))
	}
	if len(bonus) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(bonus, ", "))
	}
	if cv.NeedsArt {
		b.WriteString("*")
	}
	return b.String()
}

func formatCards(cards []game.CardView) string {
	parts := make([]string, len(cards))
	for i, cv := range cards {
		parts[i] = formatCard(cv)
	}
	return strings.Join(parts, "  ")
}

func formatBase(b game.BaseView) string {
	s := fmt.Sprintf("%s DEF/%d", formatCard(b.Card), b.Defense)
	switch {
	case !b.Deployed:
		s += " (deploys next turn)"
	case b.Activated:
		s += " (used)"
	}
	if len(b.Frontier) > 0 {
		s += fmt.Sprintf(" frontier: %s", formatCards(b.Frontier))
	}
	return s
}

func renderChoice(w io.Writer, pc *game.ChoiceView, me *game.PlayerView) {
	if me == nil || pc.Player != me.Seat {
		fmt.Fprintf(w, "Waiting for P%d to choose (%s).\n", pc.Player+1, pc.Kind)
		return
	}
	source := ""
	if pc.Source != "" {
		source = " from " + pc.Source
	}
	fmt.Fprintf(w, "\nChoice %s%s: pick %d", pc.Kind, source, pc.Min)
	if pc.Max != pc.Min {
		fmt.Fprintf(w, "-%d", pc.Max)
	}
	fmt.Fprintln(w, " with 'choose'")
	for i, cv := range pc.Cards {
		id := cv.ID
		if i < len(pc.Candidates) {
			id = pc.Candidates[i]
		}
		fmt.Fprintf(w, "  %d) %s\n", id, cv.Name)
	}
}
