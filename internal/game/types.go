package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// --- Enums ---

type Phase int

const (
	PhaseNone Phase = iota
	PhaseDrawOrder
	PhaseMain
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseDrawOrder:
		return "Draw Order"
	case PhaseMain:
		return "Main Phase"
	case PhaseOver:
		return "Game Over"
	default:
		return "None"
	}
}

type Faction int

const (
	FactionNeutral Faction = iota
	FactionMerchant
	FactionWilds
	FactionKingdom
	FactionArtificer
)

// FrontierFaction is the faction whose cards may be staged at a base's frontier.
const FrontierFaction = FactionWilds

var factionNames = map[Faction]string{
	FactionNeutral:   "neutral",
	FactionMerchant:  "merchant",
	FactionWilds:     "wilds",
	FactionKingdom:   "kingdom",
	FactionArtificer: "artificer",
}

func (f Faction) String() string {
	if name, ok := factionNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFaction maps a faction name to its value.
func ParseFaction(s string) (Faction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range factionNames {
		if name == s {
			return f, nil
		}
	}
	return FactionNeutral, fmt.Errorf("unknown faction %q", s)
}

func (f Faction) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Faction) UnmarshalText(text []byte) error {
	v, err := ParseFaction(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f *Faction) UnmarshalYAML(node *yaml.Node) error {
	return f.UnmarshalText([]byte(node.Value))
}

type CardKind int

const (
	KindCreature CardKind = iota
	KindBase
	KindAction
)

func (k CardKind) String() string {
	switch k {
	case KindCreature:
		return "creature"
	case KindBase:
		return "base"
	case KindAction:
		return "action"
	default:
		return "unknown"
	}
}

func ParseCardKind(s string) (CardKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "creature":
		return KindCreature, nil
	case "base":
		return KindBase, nil
	case "action":
		return KindAction, nil
	}
	return KindCreature, fmt.Errorf("unknown card kind %q", s)
}

func (k CardKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *CardKind) UnmarshalText(text []byte) error {
	v, err := ParseCardKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (k *CardKind) UnmarshalYAML(node *yaml.Node) error {
	return k.UnmarshalText([]byte(node.Value))
}

// UpgradeKind selects which permanent bonus counter an upgrade raises.
type UpgradeKind int

const (
	UpgradeNone UpgradeKind = iota
	UpgradeAttack
	UpgradeTrade
	UpgradeAuthority
)

func (u UpgradeKind) String() string {
	switch u {
	case UpgradeAttack:
		return "attack"
	case UpgradeTrade:
		return "trade"
	case UpgradeAuthority:
		return "authority"
	default:
		return "none"
	}
}

func ParseUpgradeKind(s string) (UpgradeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return UpgradeNone, nil
	case "attack":
		return UpgradeAttack, nil
	case "trade":
		return UpgradeTrade, nil
	case "authority":
		return UpgradeAuthority, nil
	}
	return UpgradeNone, fmt.Errorf("unknown upgrade kind %q", s)
}

func (u UpgradeKind) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *UpgradeKind) UnmarshalText(text []byte) error {
	v, err := ParseUpgradeKind(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (u *UpgradeKind) UnmarshalYAML(node *yaml.Node) error {
	return u.UnmarshalText([]byte(node.Value))
}

// --- Zones ---

type ZoneType int

const (
	ZoneNone ZoneType = iota
	ZoneDrawPile
	ZoneHand
	ZoneDiscard
	ZonePlayed
	ZoneBases
	ZoneFrontier
	ZoneVoid // permanently removed from the game
)

func (z ZoneType) String() string {
	switch z {
	case ZoneDrawPile:
		return "Draw Pile"
	case ZoneHand:
		return "Hand"
	case ZoneDiscard:
		return "Discard"
	case ZonePlayed:
		return "Played"
	case ZoneBases:
		return "Bases"
	case ZoneFrontier:
		return "Frontier"
	case ZoneVoid:
		return "Void"
	default:
		return "None"
	}
}

// --- Choices ---

type ChoiceKind int

const (
	ChoiceNone ChoiceKind = iota
	ChoiceDiscard
	ChoiceScrapTradeRow
	ChoiceScrapHandDiscard
	ChoiceUpgrade
	ChoiceDestroyBase
	ChoiceRecruit
)

func (c ChoiceKind) String() string {
	switch c {
	case ChoiceDiscard:
		return "discard"
	case ChoiceScrapTradeRow:
		return "scrap_trade_row"
	case ChoiceScrapHandDiscard:
		return "scrap_hand_or_discard"
	case ChoiceUpgrade:
		return "upgrade"
	case ChoiceDestroyBase:
		return "destroy_base"
	case ChoiceRecruit:
		return "recruit"
	default:
		return "none"
	}
}

func (c ChoiceKind) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ChoiceKind) UnmarshalText(text []byte) error {
	for k := ChoiceNone; k <= ChoiceRecruit; k++ {
		if k.String() == string(text) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown choice kind %q", text)
}

// PendingChoice is a suspended effect waiting for a player selection.
// Candidates hold instance ids, except for trade row choices where they
// hold slot indices.
type PendingChoice struct {
	Kind        ChoiceKind  `json:"kind"`
	Player      int         `json:"player"`
	Source      int         `json:"source"` // instance id of the card that raised it (0 if none)
	EffectIndex int         `json:"effect_index"`
	Candidates  []int       `json:"candidates"`
	Min         int         `json:"min"`
	Max         int         `json:"max"`
	Upgrade     UpgradeKind `json:"upgrade,omitempty"`
	Value       int         `json:"value,omitempty"`
}

func (pc *PendingChoice) allows(candidate int) bool {
	for _, c := range pc.Candidates {
		if c == candidate {
			return true
		}
	}
	return false
}
