package game

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStartingAuthority = 50
	TradeRowSize             = 5
)

// DeckEntry is a card id and how many copies of it a pile starts with.
type DeckEntry struct {
	Card  string `yaml:"card" json:"card"`
	Count int    `yaml:"count" json:"count"`
}

// Catalog holds every card type a game may reference. It is built once
// and never mutated during play.
type Catalog struct {
	cards             map[string]*CardType
	order             []string
	StartingDeck      []DeckEntry
	Market            []DeckEntry
	Wanderer          string
	StartingAuthority int
}

// CatalogError describes one malformed catalog entry.
type CatalogError struct {
	Card    string
	Field   string
	Problem string
}

func (e *CatalogError) Error() string {
	if e.Card == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Problem)
	}
	return fmt.Sprintf("card %q: %s: %s", e.Card, e.Field, e.Problem)
}

// --- YAML file layout ---

type catalogFile struct {
	Cards             []rawCard   `yaml:"cards"`
	StartingDeck      []DeckEntry `yaml:"starting_deck"`
	Market            []DeckEntry `yaml:"market"`
	Wanderer          string      `yaml:"wanderer"`
	StartingAuthority int         `yaml:"starting_authority"`
}

// rawCard uses pointers so that absent fields can be told apart from zero values.
type rawCard struct {
	ID             *string   `yaml:"id"`
	Name           *string   `yaml:"name"`
	Description    string    `yaml:"description"`
	Faction        *Faction  `yaml:"faction"`
	Cost           *int      `yaml:"cost"`
	Kind           *CardKind `yaml:"kind"`
	Defense        *int      `yaml:"defense"`
	Effects        *[]Effect `yaml:"effects"`
	FrontierLeader bool      `yaml:"frontier_leader"`
	SpawnPerAlly   bool      `yaml:"spawn_per_ally"`
	Outpost        bool      `yaml:"is_outpost"`
}

func (rc rawCard) toCardType(index int) (*CardType, []error) {
	var errs []error
	label := fmt.Sprintf("#%d", index+1)
	if rc.ID != nil && *rc.ID != "" {
		label = *rc.ID
	}
	missing := func(field string) {
		errs = append(errs, &CatalogError{Card: label, Field: field, Problem: "missing"})
	}
	ct := &CardType{
		Description:    rc.Description,
		FrontierLeader: rc.FrontierLeader,
		SpawnPerAlly:   rc.SpawnPerAlly,
		Outpost:        rc.Outpost,
	}
	if rc.ID == nil || *rc.ID == "" {
		missing("id")
	} else {
		ct.ID = *rc.ID
	}
	if rc.Name == nil || *rc.Name == "" {
		missing("name")
	} else {
		ct.Name = *rc.Name
	}
	if rc.Faction == nil {
		missing("faction")
	} else {
		ct.Faction = *rc.Faction
	}
	if rc.Cost == nil {
		missing("cost")
	} else {
		ct.Cost = *rc.Cost
	}
	if rc.Kind == nil {
		missing("kind")
	} else {
		ct.Kind = *rc.Kind
	}
	if rc.Defense != nil {
		ct.Defense = *rc.Defense
	} else if ct.Kind == KindBase && rc.Kind != nil {
		missing("defense")
	}
	if rc.Effects == nil {
		missing("effects")
	} else {
		ct.Effects = *rc.Effects
	}
	return ct, errs
}

// ParseCatalog decodes and validates a YAML catalog. Any malformed or
// missing field is reported; the catalog is unusable in that case.
func ParseCatalog(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cf catalogFile
	if err := dec.Decode(&cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	var errs []error
	cards := make([]*CardType, 0, len(cf.Cards))
	for i, rc := range cf.Cards {
		ct, cardErrs := rc.toCardType(i)
		errs = append(errs, cardErrs...)
		cards = append(cards, ct)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}

	cat, err := NewCatalog(cards, cf.StartingDeck, cf.Market, cf.Wanderer)
	if err != nil {
		return nil, err
	}
	if cf.StartingAuthority > 0 {
		cat.StartingAuthority = cf.StartingAuthority
	}
	return cat, nil
}

// LoadCatalog reads and validates a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// NewCatalog builds a catalog from card definitions and validates it.
func NewCatalog(cards []*CardType, startingDeck, market []DeckEntry, wanderer string) (*Catalog, error) {
	cat := &Catalog{
		cards:             make(map[string]*CardType, len(cards)),
		StartingDeck:      startingDeck,
		Market:            market,
		Wanderer:          wanderer,
		StartingAuthority: DefaultStartingAuthority,
	}
	var errs []error
	for _, ct := range cards {
		if _, dup := cat.cards[ct.ID]; dup {
			errs = append(errs, &CatalogError{Card: ct.ID, Field: "id", Problem: "duplicate"})
			continue
		}
		cat.cards[ct.ID] = ct
		cat.order = append(cat.order, ct.ID)
	}
	errs = append(errs, cat.validate()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return cat, nil
}

func (c *Catalog) validate() []error {
	var errs []error
	bad := func(card, field, problem string) {
		errs = append(errs, &CatalogError{Card: card, Field: field, Problem: problem})
	}

	for _, id := range c.order {
		ct := c.cards[id]
		if ct.Name == "" {
			bad(id, "name", "missing")
		}
		if ct.Cost < 0 {
			bad(id, "cost", "negative")
		}
		if ct.Kind == KindBase && ct.Defense <= 0 {
			bad(id, "defense", "bases need a positive defense")
		}
		if ct.Kind != KindBase && (ct.Outpost || ct.SpawnPerAlly) {
			bad(id, "flags", "outpost and spawn_per_ally only apply to bases")
		}
		if ct.FrontierLeader && ct.Faction != FrontierFaction {
			bad(id, "frontier_leader", fmt.Sprintf("only %s cards can lead a charge", FrontierFaction))
		}
		for i, e := range ct.Effects {
			field := fmt.Sprintf("effects[%d]", i)
			switch e.Kind {
			case EffectTrade, EffectCombat, EffectAuthority, EffectDraw, EffectOpponentDiscard, EffectRecruit:
				if e.Value <= 0 {
					bad(id, field, fmt.Sprintf("%s needs a positive value", e.Kind))
				}
			case EffectUpgrade:
				if e.Upgrade == UpgradeNone {
					bad(id, field, "upgrade needs an upgrade kind")
				}
			case EffectSpawn:
				if e.Unit == "" {
					bad(id, field, "spawn needs a unit")
				} else if _, ok := c.cards[e.Unit]; !ok {
					bad(id, field, fmt.Sprintf("spawn unit %q is not in the catalog", e.Unit))
				}
			case EffectDestroyBase, EffectScrapTradeRow, EffectScrapHandDiscard:
			default:
				bad(id, field, "unknown effect kind")
			}
			if e.Optional && !e.Kind.needsChoice() {
				bad(id, field, fmt.Sprintf("%s cannot be optional", e.Kind))
			}
			if e.RequiresPrevious && i == 0 {
				bad(id, field, "requires_previous on the first effect")
			}
		}
	}

	checkPile := func(field string, entries []DeckEntry) {
		for _, entry := range entries {
			if _, ok := c.cards[entry.Card]; !ok {
				bad("", field, fmt.Sprintf("card %q is not in the catalog", entry.Card))
			}
			if entry.Count <= 0 {
				bad("", field, fmt.Sprintf("card %q needs a positive count", entry.Card))
			}
		}
	}
	if len(c.StartingDeck) == 0 {
		bad("", "starting_deck", "missing")
	}
	checkPile("starting_deck", c.StartingDeck)
	if len(c.Market) == 0 {
		bad("", "market", "missing")
	}
	checkPile("market", c.Market)
	if c.Wanderer == "" {
		bad("", "wanderer", "missing")
	} else if _, ok := c.cards[c.Wanderer]; !ok {
		bad("", "wanderer", fmt.Sprintf("card %q is not in the catalog", c.Wanderer))
	}
	return errs
}

// Lookup returns the card type with the given id.
func (c *Catalog) Lookup(id string) (*CardType, bool) {
	ct, ok := c.cards[id]
	return ct, ok
}

// Types returns every card type in catalog order.
func (c *Catalog) Types() []*CardType {
	result := make([]*CardType, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.cards[id])
	}
	return result
}

// expand turns deck entries into a flat list of card ids.
func expand(entries []DeckEntry) []string {
	var ids []string
	for _, entry := range entries {
		for i := 0; i < entry.Count; i++ {
			ids = append(ids, entry.Card)
		}
	}
	return ids
}
