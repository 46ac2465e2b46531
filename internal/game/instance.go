package game

import (
	"fmt"
	"sort"
)

// --- CardInstance (runtime card owned by one player) ---

// CardInstance binds a catalog type to a unique, mutable record. Its zone
// is tracked by the InstanceStore, not by the instance itself.
type CardInstance struct {
	ID     int       `json:"id"`
	Type   *CardType `json:"-"`
	TypeID string    `json:"type"`
	Owner  int       `json:"owner"`

	// Permanent bonuses. They only ever increase.
	AttackBonus    int      `json:"attack_bonus,omitempty"`
	TradeBonus     int      `json:"trade_bonus,omitempty"`
	AuthorityBonus int      `json:"authority_bonus,omitempty"`
	Upgrades       []string `json:"upgrades,omitempty"`

	// NeedsArt stays set from an upgrade until a renderer acknowledges it.
	NeedsArt bool `json:"needs_art,omitempty"`

	// DrawSpent marks the auto-draw as used for the current shuffle cycle.
	DrawSpent bool `json:"draw_spent,omitempty"`
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(none)"
	}
	return fmt.Sprintf("%s#%d", ci.Type.Name, ci.ID)
}

// DisplayString returns a human-readable description for the event log.
func (ci *CardInstance) DisplayString() string {
	if ci == nil {
		return "(none)"
	}
	if len(ci.Upgrades) == 0 {
		return ci.Type.Name
	}
	return fmt.Sprintf("%s (+%d atk/+%d trade/+%d auth)", ci.Type.Name, ci.AttackBonus, ci.TradeBonus, ci.AuthorityBonus)
}

// applyUpgrade raises one bonus counter and records the tag. Non-positive
// amounts are ignored so bonuses never decrease.
func (ci *CardInstance) applyUpgrade(kind UpgradeKind, amount int) bool {
	if amount <= 0 {
		return false
	}
	switch kind {
	case UpgradeAttack:
		ci.AttackBonus += amount
	case UpgradeTrade:
		ci.TradeBonus += amount
	case UpgradeAuthority:
		ci.AuthorityBonus += amount
	default:
		return false
	}
	ci.Upgrades = append(ci.Upgrades, fmt.Sprintf("%s+%d", kind, amount))
	ci.NeedsArt = true
	return true
}

// --- Zone table ---

// Location says where an instance currently lives. Host is the base id
// for instances staged at a frontier.
type Location struct {
	Player int      `json:"player"`
	Zone   ZoneType `json:"zone"`
	Host   int      `json:"host,omitempty"`
}

// InstanceStore owns every live instance of a game and the table mapping
// instance ids to zones.
type InstanceStore struct {
	nextID    int
	instances map[int]*CardInstance
	zones     map[int]Location
}

// NewInstanceStore returns an empty store.
func NewInstanceStore() *InstanceStore {
	return &InstanceStore{
		instances: make(map[int]*CardInstance),
		zones:     make(map[int]Location),
	}
}

// Create makes a new instance of the card type owned by the player.
// The instance has no zone until it is placed.
func (s *InstanceStore) Create(ct *CardType, owner int) *CardInstance {
	s.nextID++
	ci := &CardInstance{
		ID:     s.nextID,
		Type:   ct,
		TypeID: ct.ID,
		Owner:  owner,
	}
	s.instances[ci.ID] = ci
	s.zones[ci.ID] = Location{Player: owner, Zone: ZoneNone}
	return ci
}

// Get returns the instance with the given id.
func (s *InstanceStore) Get(id int) (*CardInstance, bool) {
	ci, ok := s.instances[id]
	return ci, ok
}

// Location returns the zone an instance is in.
func (s *InstanceStore) Location(id int) (Location, bool) {
	loc, ok := s.zones[id]
	return loc, ok
}

func (s *InstanceStore) place(id int, loc Location) {
	s.zones[id] = loc
}

// destroy removes an instance from the game for good.
func (s *InstanceStore) destroy(id int) {
	delete(s.instances, id)
	delete(s.zones, id)
}

// Len returns the number of live instances.
func (s *InstanceStore) Len() int {
	return len(s.instances)
}

// All returns every live instance ordered by id.
func (s *InstanceStore) All() []*CardInstance {
	result := make([]*CardInstance, 0, len(s.instances))
	for _, ci := range s.instances {
		result = append(result, ci)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
