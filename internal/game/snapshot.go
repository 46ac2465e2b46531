package game

// --- Per-viewer state export ---
//
// A snapshot is the only view of the game that leaves the engine. It is
// built per viewer: hidden zones (hands, draw piles) are reduced to counts
// for everyone except their owner, and draw pile order is never exported
// to anyone.

// CardView is the public face of a card. Market cards have no instance id.
type CardView struct {
	ID             int      `json:"id,omitempty"`
	Type           string   `json:"type"`
	Name           string   `json:"name"`
	Faction        string   `json:"faction"`
	Kind           string   `json:"kind"`
	Cost           int      `json:"cost"`
	Defense        int      `json:"defense,omitempty"`
	Text           string   `json:"text,omitempty"`
	AttackBonus    int      `json:"attack_bonus,omitempty"`
	TradeBonus     int      `json:"trade_bonus,omitempty"`
	AuthorityBonus int      `json:"authority_bonus,omitempty"`
	Upgrades       []string `json:"upgrades,omitempty"`
	NeedsArt       bool     `json:"needs_art,omitempty"`
	DrawSpent      bool     `json:"draw_spent,omitempty"`
}

// BaseView is a base with its frontier.
type BaseView struct {
	Card            CardView   `json:"card"`
	Deployed        bool       `json:"deployed"`
	Activated       bool       `json:"activated,omitempty"`
	Defense         int        `json:"defense"`
	FrontierDefense int        `json:"frontier_defense,omitempty"`
	Frontier        []CardView `json:"frontier,omitempty"`
}

// PlayerView is one seat as seen by the viewer. Hand, Discard, Flow and
// NextHandSize are only filled in for the viewer's own seat.
type PlayerView struct {
	Seat         int        `json:"seat"`
	Authority    int        `json:"authority"`
	Trade        int        `json:"trade"`
	Combat       int        `json:"combat"`
	HandCount    int        `json:"hand_count"`
	DeckCount    int        `json:"deck_count"`
	DiscardCount int        `json:"discard_count"`
	Played       []CardView `json:"played"`
	Bases        []BaseView `json:"bases"`
	DiscardOwed  int        `json:"discard_owed,omitempty"`

	Hand         []CardView `json:"hand,omitempty"`
	Discard      []CardView `json:"discard,omitempty"`
	Flow         *FlowPair  `json:"flow,omitempty"`
	NextHandSize int        `json:"next_hand_size,omitempty"`
}

// ChoiceView describes the outstanding choice. Candidates and their card
// views are only shown to the chooser.
type ChoiceView struct {
	Kind       string     `json:"kind"`
	Player     int        `json:"player"`
	Source     string     `json:"source,omitempty"`
	Min        int        `json:"min"`
	Max        int        `json:"max"`
	Candidates []int      `json:"candidates,omitempty"`
	Cards      []CardView `json:"cards,omitempty"`
}

// Snapshot is the full per-viewer state export.
type Snapshot struct {
	Viewer      int          `json:"viewer"`
	Turn        int          `json:"turn"`
	Active      int          `json:"active"`
	Phase       string       `json:"phase"`
	Players     []PlayerView `json:"players"`
	TradeRow    []*CardView  `json:"trade_row"` // nil entries are empty slots
	Wanderer    CardView     `json:"wanderer"`
	MarketCount int          `json:"market_count"`
	Pending     *ChoiceView  `json:"pending,omitempty"`
	Winner      int          `json:"winner"`
	Result      string       `json:"result,omitempty"`
}

func typeView(ct *CardType) CardView {
	return CardView{
		Type:    ct.ID,
		Name:    ct.Name,
		Faction: ct.Faction.String(),
		Kind:    ct.Kind.String(),
		Cost:    ct.Cost,
		Defense: ct.Defense,
		Text:    ct.RulesText(),
	}
}

func (g *Game) instanceView(id int) CardView {
	ci, ok := g.Store.Get(id)
	if !ok {
		return CardView{ID: id}
	}
	v := typeView(ci.Type)
	v.ID = ci.ID
	v.AttackBonus = ci.AttackBonus
	v.TradeBonus = ci.TradeBonus
	v.AuthorityBonus = ci.AuthorityBonus
	v.Upgrades = append([]string(nil), ci.Upgrades...)
	v.NeedsArt = ci.NeedsArt
	v.DrawSpent = ci.DrawSpent
	return v
}

func (g *Game) instanceViews(ids []int) []CardView {
	views := make([]CardView, 0, len(ids))
	for _, id := range ids {
		views = append(views, g.instanceView(id))
	}
	return views
}

// Snapshot exports the game as seen by viewer. A viewer outside the seat
// range is a spectator and sees only public zones.
func (g *Game) Snapshot(viewer int) *Snapshot {
	s := &Snapshot{
		Viewer:      viewer,
		Turn:        g.Turn,
		Active:      g.Active,
		Phase:       g.Phase.String(),
		MarketCount: len(g.Row.Deck),
		Winner:      g.Winner,
		Result:      g.Result,
	}

	for seat, p := range g.Players {
		pv := PlayerView{
			Seat:         seat,
			Authority:    p.Authority,
			Trade:        p.Trade,
			Combat:       p.Combat,
			HandCount:    len(p.Hand),
			DeckCount:    len(p.DrawPile),
			DiscardCount: len(p.Discard),
			Played:       g.instanceViews(p.Played),
			Bases:        make([]BaseView, 0, len(p.Bases)),
			DiscardOwed:  p.DiscardOwed,
		}
		for _, b := range p.Bases {
			pv.Bases = append(pv.Bases, BaseView{
				Card:            g.instanceView(b.ID),
				Deployed:        b.Deployed,
				Activated:       b.Activated,
				Defense:         g.baseDefense(b),
				FrontierDefense: b.FrontierDefense,
				Frontier:        g.instanceViews(b.Frontier),
			})
		}
		if seat == viewer {
			flow := p.Flow
			pv.Hand = g.instanceViews(p.Hand)
			pv.Discard = g.instanceViews(p.Discard)
			pv.Flow = &flow
			pv.NextHandSize = p.Flow.HandSize()
		}
		s.Players = append(s.Players, pv)
	}

	for _, id := range g.Row.Slots {
		if ct, ok := g.Catalog.Lookup(id); ok {
			v := typeView(ct)
			s.TradeRow = append(s.TradeRow, &v)
		} else {
			s.TradeRow = append(s.TradeRow, nil)
		}
	}
	if ct, ok := g.Catalog.Lookup(g.Row.Wanderer); ok {
		s.Wanderer = typeView(ct)
	}

	if pc := g.Pending; pc != nil {
		cv := &ChoiceView{
			Kind:   pc.Kind.String(),
			Player: pc.Player,
			Min:    pc.Min,
			Max:    pc.Max,
		}
		if pc.Source != 0 {
			cv.Source = g.cardName(pc.Source)
		}
		if pc.Player == viewer {
			cv.Candidates = append([]int(nil), pc.Candidates...)
			cv.Cards = g.candidateViews(pc)
		}
		s.Pending = cv
	}
	return s
}

// candidateViews renders choice candidates. Trade row choices hold slot
// indices, so their views come from the market.
func (g *Game) candidateViews(pc *PendingChoice) []CardView {
	views := make([]CardView, 0, len(pc.Candidates))
	for _, c := range pc.Candidates {
		switch pc.Kind {
		case ChoiceScrapTradeRow, ChoiceRecruit:
			if ct, ok := g.Catalog.Lookup(g.Row.Slots[c]); ok {
				views = append(views, typeView(ct))
			}
		default:
			views = append(views, g.instanceView(c))
		}
	}
	return views
}
