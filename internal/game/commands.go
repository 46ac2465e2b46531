package game

import (
	"fmt"
	"strings"

	"github.com/gabrilend/gen-realms/internal/log"
)

// WandererSlot is the buy slot of the always-available wanderer.
const WandererSlot = -1

// CommandType names an engine command.
type CommandType int

const (
	CmdNone CommandType = iota
	CmdPlay
	CmdBuy
	CmdAttack
	CmdScrap
	CmdActivateBase
	CmdSetDrawOrder
	CmdResolveChoice
	CmdEndTurn
	CmdAcknowledgeArt
)

var commandNames = []string{
	CmdNone:           "none",
	CmdPlay:           "play",
	CmdBuy:            "buy",
	CmdAttack:         "attack",
	CmdScrap:          "scrap",
	CmdActivateBase:   "activate_base",
	CmdSetDrawOrder:   "set_draw_order",
	CmdResolveChoice:  "resolve_choice",
	CmdEndTurn:        "end_turn",
	CmdAcknowledgeArt: "acknowledge_art",
}

func (c CommandType) String() string {
	if c >= 0 && int(c) < len(commandNames) {
		return commandNames[c]
	}
	return "unknown"
}

func (c CommandType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *CommandType) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for i, name := range commandNames {
		if name == s && i != int(CmdNone) {
			*c = CommandType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown command %q", text)
}

// Command is one request from a seat. Only the fields the type needs are
// read: Card for play/scrap/activate_base/acknowledge_art (with Frontier
// naming a base for frontier plays), Slot for buy, TargetBase or
// TargetPlayer for attack, Order for set_draw_order and Selection for
// resolve_choice.
type Command struct {
	Type         CommandType `json:"type"`
	Player       int         `json:"player"`
	Card         int         `json:"card,omitempty"`
	Frontier     int         `json:"frontier,omitempty"`
	Slot         int         `json:"slot,omitempty"`
	TargetPlayer int         `json:"target_player,omitempty"`
	TargetBase   int         `json:"target_base,omitempty"`
	Order        []int       `json:"order,omitempty"`
	Selection    []int       `json:"selection,omitempty"`
}

// Result is the outcome of a command: a snapshot for the acting seat on
// success, or the rejection that left the state unchanged.
type Result struct {
	Snapshot  *Snapshot  `json:"snapshot,omitempty"`
	Rejection *Rejection `json:"rejection,omitempty"`
}

// OK reports whether the command was accepted.
func (r Result) OK() bool {
	return r.Rejection == nil
}

// Execute runs one command to completion, including every cascade it
// triggers, and never panics across the command boundary for a bad
// request.
func (g *Game) Execute(cmd Command) Result {
	var err *Rejection
	switch cmd.Type {
	case CmdPlay:
		err = g.Play(cmd.Player, cmd.Card, cmd.Frontier)
	case CmdBuy:
		err = g.Buy(cmd.Player, cmd.Slot)
	case CmdAttack:
		err = g.Attack(cmd.Player, cmd.TargetPlayer, cmd.TargetBase)
	case CmdScrap:
		err = g.Scrap(cmd.Player, cmd.Card)
	case CmdActivateBase:
		err = g.ActivateBase(cmd.Player, cmd.Card)
	case CmdSetDrawOrder:
		err = g.SetDrawOrder(cmd.Player, cmd.Order)
	case CmdResolveChoice:
		err = g.ResolveChoice(cmd.Player, cmd.Selection)
	case CmdEndTurn:
		err = g.EndTurn(cmd.Player)
	case CmdAcknowledgeArt:
		err = g.AcknowledgeArt(cmd.Player, cmd.Card)
	default:
		err = reject(CodeUnknownCommand, "unknown command %d", cmd.Type)
	}
	if err != nil {
		return Result{Rejection: err}
	}
	return Result{Snapshot: g.Snapshot(cmd.Player)}
}

// --- Validation ---

// checkSeat validates the seat index.
func (g *Game) checkSeat(seat int) *Rejection {
	if seat < 0 || seat >= len(g.Players) {
		return reject(CodeInvalidPlayer, "no seat %d", seat)
	}
	return nil
}

// checkTurn is the common gate for mutating commands: the game must be
// running, it must be the seat's turn, no choice may be outstanding and
// the phase must match.
func (g *Game) checkTurn(seat int, phase Phase) *Rejection {
	if err := g.checkSeat(seat); err != nil {
		return err
	}
	if g.Over() {
		return reject(CodeGameOver, "the game is over")
	}
	if g.Pending != nil {
		return reject(CodeChoicePending, "P%d must resolve %s first", g.Pending.Player+1, g.Pending.Kind)
	}
	if seat != g.Active {
		return reject(CodeNotYourTurn, "it is P%d's turn", g.Active+1)
	}
	if g.Phase != phase {
		return reject(CodeWrongPhase, "command needs %s, game is in %s", phase, g.Phase)
	}
	return nil
}

// --- Commands ---

// Play plays a card from hand. With frontier set to one of the player's
// bases, a frontier-faction card is staged there instead; for a frontier
// leader, frontier names the charging base (zero charges all of them).
func (g *Game) Play(seat, id, frontier int) *Rejection {
	if err := g.checkTurn(seat, PhaseMain); err != nil {
		return err
	}
	if !g.owns(seat, id, ZoneHand) {
		return reject(CodeNotInHand, "card %d is not in P%d's hand", id, seat+1)
	}
	ci := g.card(id)
	p := g.Players[seat]

	switch {
	case ci.Type.FrontierLeader:
		if frontier != 0 && p.Base(frontier) == nil {
			return reject(CodeInvalidTarget, "P%d has no base %d", seat+1, frontier)
		}
		g.charge(seat, ci, frontier)
	case frontier != 0:
		b := p.Base(frontier)
		if b == nil {
			return reject(CodeInvalidTarget, "P%d has no base %d", seat+1, frontier)
		}
		if ci.Type.Faction != FrontierFaction || ci.Type.IsBase() {
			return reject(CodeNotFrontierCard, "only %s units can be sent to the frontier", FrontierFaction)
		}
		g.stage(seat, ci, b)
	case ci.Type.IsBase():
		g.move(id, Location{Player: seat, Zone: ZoneBases})
		g.log(log.NewPlayEvent(g.Turn, g.Phase.String(), seat, ci.DisplayString()))
		g.drain()
	default:
		g.move(id, Location{Player: seat, Zone: ZonePlayed})
		g.log(log.NewPlayEvent(g.Turn, g.Phase.String(), seat, ci.DisplayString()))
		g.enterPlay(seat, ci)
		g.enqueue(seat, ci, passAll)
		g.drain()
	}
	return nil
}

// Buy purchases the card in a trade row slot, or the wanderer for
// WandererSlot. The card goes to the discard pile.
func (g *Game) Buy(seat, slot int) *Rejection {
	if err := g.checkTurn(seat, PhaseMain); err != nil {
		return err
	}
	ct, err := g.rowCard(slot)
	if err != nil {
		return err
	}
	p := g.Players[seat]
	if p.Trade < ct.Cost {
		return reject(CodeInsufficientTrade, "%s costs %d, P%d has %d trade", ct.Name, ct.Cost, seat+1, p.Trade)
	}
	p.Trade -= ct.Cost
	g.gain(seat, ct)
	g.log(log.NewBuyEvent(g.Turn, g.Phase.String(), seat, ct.Name, ct.Cost))
	g.takeFromRow(slot)
	return nil
}

// Attack spends combat against a deployed base (targetBase != 0) or
// against a player's authority. Deployed outposts must fall first.
func (g *Game) Attack(seat, targetPlayer, targetBase int) *Rejection {
	if err := g.checkTurn(seat, PhaseMain); err != nil {
		return err
	}
	p := g.Players[seat]

	if targetBase != 0 {
		owner, b := g.findBase(targetBase)
		if b == nil || owner == seat {
			return reject(CodeInvalidTarget, "no opposing base %d", targetBase)
		}
		if !b.Deployed {
			return reject(CodeInvalidTarget, "%s is not deployed yet", g.cardName(b.ID))
		}
		if !g.card(b.ID).Type.Outpost && g.hasOutpost(owner) {
			return reject(CodeOutpostBlocks, "P%d's outposts must be destroyed first", owner+1)
		}
		defense := g.baseDefense(b)
		if p.Combat < defense {
			return reject(CodeInsufficientCombat, "%s needs %d combat, P%d has %d", g.cardName(b.ID), defense, seat+1, p.Combat)
		}
		p.Combat -= defense
		g.log(log.NewAttackEvent(g.Turn, g.Phase.String(), seat, g.cardName(b.ID), defense))
		g.destroyBase(b.ID, fmt.Sprintf("attacked by P%d", seat+1))
		return nil
	}

	if targetPlayer == seat || g.checkSeat(targetPlayer) != nil {
		return reject(CodeInvalidTarget, "cannot attack seat %d", targetPlayer)
	}
	if g.hasOutpost(targetPlayer) {
		return reject(CodeOutpostBlocks, "P%d's outposts must be destroyed first", targetPlayer+1)
	}
	if p.Combat <= 0 {
		return reject(CodeInsufficientCombat, "P%d has no combat", seat+1)
	}
	damage := p.Combat
	p.Combat = 0
	target := g.Players[targetPlayer]
	old := target.Authority
	target.Authority = max(0, old-damage)
	g.log(log.NewAttackEvent(g.Turn, g.Phase.String(), seat, fmt.Sprintf("P%d", targetPlayer+1), damage))
	g.log(log.NewAuthorityChangeEvent(g.Turn, g.Phase.String(), targetPlayer, old, target.Authority, "attack"))
	if target.Authority == 0 {
		g.gameOver(seat, fmt.Sprintf("P%d's authority reached 0", targetPlayer+1))
	}
	return nil
}

// Scrap removes one of the player's cards in hand, play or discard from
// the game.
func (g *Game) Scrap(seat, id int) *Rejection {
	if err := g.checkTurn(seat, PhaseMain); err != nil {
		return err
	}
	if !g.owns(seat, id, ZoneHand, ZonePlayed, ZoneDiscard) {
		return reject(CodeNotScrappable, "card %d is not in P%d's hand, play area or discard", id, seat+1)
	}
	g.scrapCard(seat, id)
	return nil
}

// ActivateBase fires a deployed base's effects, once per turn.
func (g *Game) ActivateBase(seat, id int) *Rejection {
	if err := g.checkTurn(seat, PhaseMain); err != nil {
		return err
	}
	b := g.Players[seat].Base(id)
	if b == nil {
		return reject(CodeInvalidTarget, "P%d has no base %d", seat+1, id)
	}
	if !b.Deployed {
		return reject(CodeBaseNotDeployed, "%s deploys next turn", g.cardName(id))
	}
	if b.Activated {
		return reject(CodeAlreadyActivated, "%s was already activated this turn", g.cardName(id))
	}
	b.Activated = true
	ci := g.card(id)
	g.log(log.NewActivateBaseEvent(g.Turn, g.Phase.String(), seat, ci.DisplayString()))
	g.enterPlay(seat, ci)
	g.enqueue(seat, ci, passAll)
	g.drain()
	return nil
}

// SetDrawOrder draws the turn's hand in the submitted order, runs the
// auto-draw chain and raises any owed discard.
func (g *Game) SetDrawOrder(seat int, order []int) *Rejection {
	if err := g.checkTurn(seat, PhaseDrawOrder); err != nil {
		return err
	}
	p := g.Players[seat]
	if err := validateDrawOrder(p, order); err != nil {
		return err
	}
	drawn := g.drawHand(seat, order)
	g.runAutoDraws(seat, drawn)
	g.setPhase(PhaseMain)
	g.queueOwedDiscard(seat)
	return nil
}

// ResolveChoice answers the outstanding choice. Only the chooser may
// answer; the selection must fit the choice's bounds.
func (g *Game) ResolveChoice(seat int, selection []int) *Rejection {
	if err := g.checkSeat(seat); err != nil {
		return err
	}
	if g.Over() {
		return reject(CodeGameOver, "the game is over")
	}
	if g.Pending == nil {
		return reject(CodeNoChoicePending, "there is no choice to resolve")
	}
	if g.Pending.Player != seat {
		return reject(CodeNotYourTurn, "P%d is choosing", g.Pending.Player+1)
	}
	if err := validateSelection(g.Pending, selection); err != nil {
		return err
	}
	g.resolvePending(selection)
	return nil
}

// EndTurn discards the hand and play area and passes the turn.
func (g *Game) EndTurn(seat int) *Rejection {
	if err := g.checkTurn(seat, PhaseMain); err != nil {
		return err
	}
	g.endTurn(false)
	return nil
}

// ForceEndTurn ends the active turn from outside the game (timeout or
// disconnect), dropping any outstanding choice and queued effects.
func (g *Game) ForceEndTurn() *Rejection {
	if g.Over() {
		return reject(CodeGameOver, "the game is over")
	}
	g.endTurn(true)
	return nil
}

// AcknowledgeArt clears an instance's art-regeneration flag once a
// renderer has redrawn it. Any seat may acknowledge in any phase, but
// not while a choice is outstanding.
func (g *Game) AcknowledgeArt(seat, id int) *Rejection {
	if err := g.checkSeat(seat); err != nil {
		return err
	}
	if g.Pending != nil {
		return reject(CodeChoicePending, "P%d must resolve %s first", g.Pending.Player+1, g.Pending.Kind)
	}
	ci, ok := g.Store.Get(id)
	if !ok {
		return reject(CodeUnknownCard, "no card %d", id)
	}
	if !ci.NeedsArt {
		return reject(CodeArtNotRequested, "%s has no pending art", ci)
	}
	ci.NeedsArt = false
	g.log(log.NewArtAcknowledgedEvent(g.Turn, g.Phase.String(), ci.Owner, ci.Type.Name))
	return nil
}
