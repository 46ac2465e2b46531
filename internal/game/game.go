package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/gabrilend/gen-realms/internal/log"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Config holds configuration for creating a new game.
type Config struct {
	Catalog *Catalog
	Players int // 2 when zero
	Logger  log.EventLogger
	Seed    uint64 // RNG seed (0 for random)

	// NoShuffle keeps starting decks and the market in catalog order
	// (for deterministic tests).
	NoShuffle bool

	// Selector picks refills for the trade row. Nil takes the top card.
	Selector RowSelector

	// StartingDecks overrides the catalog's starting deck per seat.
	// Missing or empty entries fall back to the catalog.
	StartingDecks [][]DeckEntry
}

// Game is the aggregate that owns all mutable state of one match.
type Game struct {
	Catalog *Catalog
	Store   *InstanceStore
	Players []*Player
	Row     *TradeRow
	Turn    int // 1-based, counts every player's turn
	Active  int
	Phase   Phase
	Pending *PendingChoice
	Logger  log.EventLogger

	// Game result
	Winner int // -1 while the game is running
	Result string

	queue     []effectTask
	plays     map[int]*playRecord
	seed      uint64
	pcg       *rand.PCG
	rng       *rand.Rand
	noShuffle bool
	selector  RowSelector
}

// NewGame builds starting decks, fills the trade row and opens the first
// player's turn. A game cannot be created without a valid catalog.
func NewGame(cfg Config) (*Game, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("new game: no catalog")
	}
	n := cfg.Players
	if n == 0 {
		n = MinPlayers
	}
	if n < MinPlayers || n > MaxPlayers {
		return nil, fmt.Errorf("new game: %d players (want %d-%d)", n, MinPlayers, MaxPlayers)
	}

	g := newGame(cfg)
	for seat := 0; seat < n; seat++ {
		entries := g.Catalog.StartingDeck
		if seat < len(cfg.StartingDecks) && len(cfg.StartingDecks[seat]) > 0 {
			entries = cfg.StartingDecks[seat]
		}
		p := &Player{
			Authority: g.Catalog.StartingAuthority,
			Flow:      NewFlowPair(),
		}
		g.Players = append(g.Players, p)
		for _, id := range expand(entries) {
			ct, ok := g.Catalog.Lookup(id)
			if !ok {
				return nil, fmt.Errorf("new game: seat %d deck: card %q is not in the catalog", seat, id)
			}
			ci := g.Store.Create(ct, seat)
			g.attach(ci.ID, Location{Player: seat, Zone: ZoneDrawPile})
		}
		if len(p.DrawPile) == 0 {
			return nil, fmt.Errorf("new game: seat %d has an empty starting deck", seat)
		}
		shuffle(g, p.DrawPile)
	}

	market := expand(g.Catalog.Market)
	shuffle(g, market)
	g.Row = newTradeRow(market, g.Catalog.Wanderer)
	for slot := range g.Row.Slots {
		g.refill(slot)
	}

	g.startTurn(0)
	return g, nil
}

func newGame(cfg Config) *Game {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	selector := cfg.Selector
	if selector == nil {
		selector = TopSelector{}
	}
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Game{
		Catalog:   cfg.Catalog,
		Store:     NewInstanceStore(),
		Logger:    logger,
		Winner:    -1,
		plays:     make(map[int]*playRecord),
		seed:      seed,
		pcg:       pcg,
		rng:       rand.New(pcg),
		noShuffle: cfg.NoShuffle,
		selector:  selector,
	}
}

func (g *Game) log(e log.GameEvent) {
	g.Logger.Log(e)
}

// Seed returns the seed the game's RNG was created with.
func (g *Game) Seed() uint64 {
	return g.seed
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.Phase == PhaseOver
}

// ActivePlayer returns the Player whose turn it is.
func (g *Game) ActivePlayer() *Player {
	return g.Players[g.Active]
}

// NextOpponent returns the seat that takes the turn after the given one.
func (g *Game) NextOpponent(seat int) int {
	return (seat + 1) % len(g.Players)
}

// Instance returns a live instance by id.
func (g *Game) Instance(id int) (*CardInstance, bool) {
	return g.Store.Get(id)
}

// HandSize returns the number of cards the player draws next turn.
func (g *Game) HandSize(seat int) int {
	return g.Players[seat].Flow.HandSize()
}

// shuffle permutes s in place with the game RNG.
func shuffle[T any](g *Game, s []T) {
	if g.noShuffle {
		return
	}
	g.rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

// --- Turn structure ---

// startTurn opens a new turn for seat: resources reset, last turn's bases
// deploy, deployed bases spawn, and the engine waits for a draw order.
func (g *Game) startTurn(seat int) {
	g.Turn++
	g.Active = seat
	g.Pending = nil
	g.queue = nil
	g.plays = make(map[int]*playRecord)

	p := g.Players[seat]
	p.Trade = 0
	p.Combat = 0

	g.log(log.NewTurnEvent(g.Turn, seat))
	g.deployBases(seat)
	g.spawnUnits(seat)
	g.setPhase(PhaseDrawOrder)
}

// endTurn clears the active player's hand and play area into discard and
// passes the turn.
func (g *Game) endTurn(forced bool) {
	seat := g.Active
	p := g.Players[seat]
	for _, id := range append([]int(nil), p.Played...) {
		g.move(id, Location{Player: seat, Zone: ZoneDiscard})
	}
	for _, id := range append([]int(nil), p.Hand...) {
		g.move(id, Location{Player: seat, Zone: ZoneDiscard})
	}
	p.Trade = 0
	p.Combat = 0
	p.DiscardOwed = 0
	g.Pending = nil
	g.queue = nil

	g.log(log.NewEndTurnEvent(g.Turn, g.Phase.String(), seat, forced))
	g.startTurn(g.NextOpponent(seat))
}

func (g *Game) setPhase(phase Phase) {
	g.Phase = phase
	g.log(log.NewPhaseChangeEvent(g.Turn, phase.String()))
}

// gameOver ends the game in favor of winner.
func (g *Game) gameOver(winner int, reason string) {
	g.Winner = winner
	g.Result = fmt.Sprintf("P%d wins: %s", winner+1, reason)
	g.Pending = nil
	g.queue = nil
	g.setPhase(PhaseOver)
	g.log(log.NewWinEvent(g.Turn, g.Phase.String(), winner, reason))
}
