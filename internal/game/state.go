package game

// BaseState is a base in a player's base zone together with the cards
// staged at its frontier.
type BaseState struct {
	ID              int   `json:"id"`
	Deployed        bool  `json:"deployed"`
	Activated       bool  `json:"activated,omitempty"` // effects fired this turn
	FrontierDefense int   `json:"frontier_defense,omitempty"`
	Frontier        []int `json:"frontier,omitempty"` // arrival order
}

// Player represents one player's entire state. Zones hold instance ids;
// the InstanceStore owns the instances themselves.
type Player struct {
	Authority int      `json:"authority"`
	Trade     int      `json:"trade"`
	Combat    int      `json:"combat"`
	Flow      FlowPair `json:"flow"`

	DrawPile []int        `json:"draw_pile"` // index 0 is the top
	Hand     []int        `json:"hand"`      // draw order
	Discard  []int        `json:"discard"`
	Played   []int        `json:"played"`
	Bases    []*BaseState `json:"bases"`

	// DiscardOwed counts opponent-discard effects waiting for this
	// player's next draw.
	DiscardOwed int `json:"discard_owed,omitempty"`
}

// DeckCount returns the number of cards remaining in the draw pile.
func (p *Player) DeckCount() int {
	return len(p.DrawPile)
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// Base returns the base state for the given instance id, or nil.
func (p *Player) Base(id int) *BaseState {
	for _, b := range p.Bases {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// InPlay returns the ids of cards that count as in play this turn: the
// played zone followed by every base.
func (p *Player) InPlay() []int {
	ids := make([]int, 0, len(p.Played)+len(p.Bases))
	ids = append(ids, p.Played...)
	for _, b := range p.Bases {
		ids = append(ids, b.ID)
	}
	return ids
}

// StagedBases returns the bases that currently hold frontier cards.
func (p *Player) StagedBases() []*BaseState {
	var result []*BaseState
	for _, b := range p.Bases {
		if len(b.Frontier) > 0 {
			result = append(result, b)
		}
	}
	return result
}

// --- id slice helpers ---

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func contains(ids []int, id int) bool {
	return indexOf(ids, id) >= 0
}

func removeID(ids []int, id int) []int {
	i := indexOf(ids, id)
	if i < 0 {
		return ids
	}
	return append(ids[:i], ids[i+1:]...)
}
