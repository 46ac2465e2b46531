package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// EffectKind tags the variant of an Effect. The set is closed: every
// dispatch site switches over all of them.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectTrade
	EffectCombat
	EffectAuthority
	EffectDraw
	EffectOpponentDiscard
	EffectDestroyBase
	EffectScrapTradeRow
	EffectScrapHandDiscard
	EffectUpgrade
	EffectSpawn
	EffectRecruit
)

var effectKindNames = []string{
	EffectNone:             "none",
	EffectTrade:            "trade",
	EffectCombat:           "combat",
	EffectAuthority:        "authority",
	EffectDraw:             "draw",
	EffectOpponentDiscard:  "opponent_discard",
	EffectDestroyBase:      "destroy_base",
	EffectScrapTradeRow:    "scrap_trade_row",
	EffectScrapHandDiscard: "scrap_hand_or_discard",
	EffectUpgrade:          "upgrade",
	EffectSpawn:            "spawn",
	EffectRecruit:          "recruit",
}

func (k EffectKind) String() string {
	if k >= 0 && int(k) < len(effectKindNames) {
		return effectKindNames[k]
	}
	return "unknown"
}

func ParseEffectKind(s string) (EffectKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range effectKindNames {
		if i == int(EffectNone) {
			continue
		}
		if name == s {
			return EffectKind(i), nil
		}
	}
	return EffectNone, fmt.Errorf("unknown effect kind %q", s)
}

func (k EffectKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EffectKind) UnmarshalText(text []byte) error {
	v, err := ParseEffectKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (k *EffectKind) UnmarshalYAML(node *yaml.Node) error {
	return k.UnmarshalText([]byte(node.Value))
}

// needsChoice reports whether the effect suspends for a player selection.
func (k EffectKind) needsChoice() bool {
	switch k {
	case EffectScrapTradeRow, EffectScrapHandDiscard, EffectUpgrade, EffectDestroyBase, EffectRecruit:
		return true
	}
	return false
}

// Effect is one entry of a card type's ordered effect list.
type Effect struct {
	Kind             EffectKind  `yaml:"kind" json:"kind"`
	Value            int         `yaml:"value,omitempty" json:"value,omitempty"`
	Ally             bool        `yaml:"ally,omitempty" json:"ally,omitempty"`
	Optional         bool        `yaml:"optional,omitempty" json:"optional,omitempty"`
	RequiresPrevious bool        `yaml:"requires_previous,omitempty" json:"requires_previous,omitempty"`
	Upgrade          UpgradeKind `yaml:"upgrade,omitempty" json:"upgrade,omitempty"`
	Unit             string      `yaml:"unit,omitempty" json:"unit,omitempty"` // spawned card type id
}

// AutoDraw reports whether the effect fires by itself when its card is drawn.
func (e Effect) AutoDraw() bool {
	return e.Kind == EffectDraw && !e.Ally && !e.Optional && !e.RequiresPrevious
}

func (e Effect) String() string {
	var sb strings.Builder
	if e.Ally {
		sb.WriteString("Ally: ")
	}
	if e.RequiresPrevious {
		sb.WriteString("then ")
	}
	if e.Optional {
		sb.WriteString("may ")
	}
	switch e.Kind {
	case EffectTrade, EffectCombat, EffectAuthority:
		fmt.Fprintf(&sb, "+%d %s", e.Value, e.Kind)
	case EffectDraw:
		fmt.Fprintf(&sb, "draw %d", e.Value)
	case EffectOpponentDiscard:
		fmt.Fprintf(&sb, "opponent discards %d", e.Value)
	case EffectDestroyBase:
		sb.WriteString("destroy target base")
	case EffectScrapTradeRow:
		fmt.Fprintf(&sb, "scrap up to %d from the trade row", max(e.Value, 1))
	case EffectScrapHandDiscard:
		fmt.Fprintf(&sb, "scrap up to %d from hand or discard", max(e.Value, 1))
	case EffectUpgrade:
		fmt.Fprintf(&sb, "upgrade a discarded card (+%d %s)", max(e.Value, 1), e.Upgrade)
	case EffectSpawn:
		fmt.Fprintf(&sb, "spawn %s", e.Unit)
	case EffectRecruit:
		fmt.Fprintf(&sb, "recruit a card costing up to %d", e.Value)
	default:
		sb.WriteString(e.Kind.String())
	}
	return sb.String()
}

// --- Card definition (static, from catalog) ---

// CardType is an immutable catalog entry.
type CardType struct {
	ID             string   `yaml:"id" json:"id"`
	Name           string   `yaml:"name" json:"name"`
	Description    string   `yaml:"description,omitempty" json:"description,omitempty"`
	Faction        Faction  `yaml:"faction" json:"faction"`
	Cost           int      `yaml:"cost" json:"cost"`
	Kind           CardKind `yaml:"kind" json:"kind"`
	Defense        int      `yaml:"defense,omitempty" json:"defense,omitempty"`
	Effects        []Effect `yaml:"effects" json:"effects"`
	FrontierLeader bool     `yaml:"frontier_leader,omitempty" json:"frontier_leader,omitempty"`
	SpawnPerAlly   bool     `yaml:"spawn_per_ally,omitempty" json:"spawn_per_ally,omitempty"`
	Outpost        bool     `yaml:"is_outpost,omitempty" json:"is_outpost,omitempty"`
}

func (ct *CardType) String() string {
	return ct.Name
}

// IsBase reports whether the card stays in play as a base.
func (ct *CardType) IsBase() bool {
	return ct.Kind == KindBase
}

// HasAutoDraw reports whether any effect on the card draws on its own.
func (ct *CardType) HasAutoDraw() bool {
	for _, e := range ct.Effects {
		if e.AutoDraw() {
			return true
		}
	}
	return false
}

// SpawnEffects returns the spawn entries of a base's effect list.
func (ct *CardType) SpawnEffects() []Effect {
	var result []Effect
	for _, e := range ct.Effects {
		if e.Kind == EffectSpawn {
			result = append(result, e)
		}
	}
	return result
}

// RulesText renders the effect list as a single line.
func (ct *CardType) RulesText() string {
	parts := make([]string, 0, len(ct.Effects))
	for _, e := range ct.Effects {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "; ")
}
