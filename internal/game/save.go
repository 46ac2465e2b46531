package game

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"
)

// savedGame is the persisted form of a Game. The catalog is not saved;
// RestoreGame resolves type ids against the catalog it is given.
type savedGame struct {
	Version   int                 `json:"version"`
	Seed      uint64              `json:"seed"`
	RNG       []byte              `json:"rng"`
	NextID    int                 `json:"next_id"`
	Instances []*CardInstance     `json:"instances"`
	Players   []*Player           `json:"players"`
	Row       *TradeRow           `json:"row"`
	Turn      int                 `json:"turn"`
	Active    int                 `json:"active"`
	Phase     Phase               `json:"phase"`
	Pending   *PendingChoice      `json:"pending,omitempty"`
	Queue     []effectTask        `json:"queue,omitempty"`
	Plays     map[int]*playRecord `json:"plays,omitempty"`
	Winner    int                 `json:"winner"`
	Result    string              `json:"result,omitempty"`
	NoShuffle bool                `json:"no_shuffle,omitempty"`
}

const saveVersion = 1

// Save serializes the complete game state, including the RNG position,
// so a restored game continues exactly where this one stands.
func (g *Game) Save() ([]byte, error) {
	rng, err := g.pcg.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("save rng: %w", err)
	}
	sg := savedGame{
		Version:   saveVersion,
		Seed:      g.seed,
		RNG:       rng,
		NextID:    g.Store.nextID,
		Instances: g.Store.All(),
		Players:   g.Players,
		Row:       g.Row,
		Turn:      g.Turn,
		Active:    g.Active,
		Phase:     g.Phase,
		Pending:   g.Pending,
		Queue:     g.queue,
		Plays:     g.plays,
		Winner:    g.Winner,
		Result:    g.Result,
		NoShuffle: g.noShuffle,
	}
	data, err := json.Marshal(sg)
	if err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	return data, nil
}

// RestoreGame rebuilds a game saved with Save. The catalog, logger and
// selector come from cfg; every other field of cfg is ignored. The zone
// table is rebuilt from the players' zones and checked against the
// saved instances.
func RestoreGame(data []byte, cfg Config) (*Game, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("restore game: no catalog")
	}
	var sg savedGame
	if err := json.Unmarshal(data, &sg); err != nil {
		return nil, fmt.Errorf("restore game: %w", err)
	}
	if sg.Version != saveVersion {
		return nil, fmt.Errorf("restore game: unsupported save version %d", sg.Version)
	}
	if len(sg.Players) < MinPlayers || len(sg.Players) > MaxPlayers {
		return nil, fmt.Errorf("restore game: %d players", len(sg.Players))
	}
	if sg.Row == nil {
		return nil, fmt.Errorf("restore game: missing trade row")
	}

	cfg.Seed = sg.Seed
	g := newGame(cfg)
	if err := g.pcg.UnmarshalBinary(sg.RNG); err != nil {
		return nil, fmt.Errorf("restore rng: %w", err)
	}
	g.rng = rand.New(g.pcg)
	g.noShuffle = sg.NoShuffle

	for _, ci := range sg.Instances {
		ct, ok := cfg.Catalog.Lookup(ci.TypeID)
		if !ok {
			return nil, fmt.Errorf("restore game: instance %d has unknown type %q", ci.ID, ci.TypeID)
		}
		ci.Type = ct
		g.Store.instances[ci.ID] = ci
	}
	g.Store.nextID = sg.NextID

	g.Players = sg.Players
	placed := make(map[int]bool)
	place := func(id int, loc Location) error {
		if _, ok := g.Store.instances[id]; !ok {
			return fmt.Errorf("restore game: zone references unknown instance %d", id)
		}
		if placed[id] {
			return fmt.Errorf("restore game: instance %d is in two zones", id)
		}
		placed[id] = true
		g.Store.place(id, loc)
		return nil
	}
	for seat, p := range g.Players {
		zones := []struct {
			ids  []int
			zone ZoneType
		}{
			{p.DrawPile, ZoneDrawPile},
			{p.Hand, ZoneHand},
			{p.Discard, ZoneDiscard},
			{p.Played, ZonePlayed},
		}
		for _, z := range zones {
			for _, id := range z.ids {
				if err := place(id, Location{Player: seat, Zone: z.zone}); err != nil {
					return nil, err
				}
			}
		}
		for _, b := range p.Bases {
			if err := place(b.ID, Location{Player: seat, Zone: ZoneBases}); err != nil {
				return nil, err
			}
			for _, id := range b.Frontier {
				if err := place(id, Location{Player: seat, Zone: ZoneFrontier, Host: b.ID}); err != nil {
					return nil, err
				}
			}
		}
	}
	if len(placed) != len(g.Store.instances) {
		var loose []int
		for id := range g.Store.instances {
			if !placed[id] {
				loose = append(loose, id)
			}
		}
		sort.Ints(loose)
		return nil, fmt.Errorf("restore game: instances %v are in no zone", loose)
	}

	g.Row = sg.Row
	g.Turn = sg.Turn
	g.Active = sg.Active
	g.Phase = sg.Phase
	g.Pending = sg.Pending
	g.queue = sg.Queue
	if sg.Plays != nil {
		g.plays = sg.Plays
	}
	g.Winner = sg.Winner
	g.Result = sg.Result
	return g, nil
}
