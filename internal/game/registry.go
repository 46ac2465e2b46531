package game

import "fmt"

// CardRegistry maps built-in card ids to their constructor functions.
var CardRegistry = map[string]func() *CardType{
	"peasant":            Peasant,
	"militia":            Militia,
	"wanderer":           Wanderer,
	"guild_trader":       GuildTrader,
	"caravan_master":     CaravanMaster,
	"coin_counter":       CoinCounter,
	"merchant_bank":      MerchantBank,
	"wolf_scout":         WolfScout,
	"bear_warden":        BearWarden,
	"wild_chieftain":     WildChieftain,
	"wolf_cub":           WolfCub,
	"hunting_lodge":      HuntingLodge,
	"beast_den":          BeastDen,
	"knight_errant":      KnightErrant,
	"royal_herald":       RoyalHerald,
	"kings_decree":       KingsDecree,
	"castle_keep":        CastleKeep,
	"tinkerer":           Tinkerer,
	"salvager":           Salvager,
	"forge_master":       ForgeMaster,
	"clockwork_scribe":   ClockworkScribe,
	"artificer_workshop": ArtificerWorkshop,
}

// registryOrder fixes catalog order for the built-in set.
var registryOrder = []string{
	"peasant", "militia", "wanderer",
	"guild_trader", "caravan_master", "coin_counter", "merchant_bank",
	"wolf_scout", "bear_warden", "wild_chieftain", "wolf_cub", "hunting_lodge", "beast_den",
	"knight_errant", "royal_herald", "kings_decree", "castle_keep",
	"tinkerer", "salvager", "forge_master", "clockwork_scribe", "artificer_workshop",
}

// LookupCard returns a new definition of a built-in card.
// Panics if the card is not found.
func LookupCard(id string) *CardType {
	ctor, ok := CardRegistry[id]
	if !ok {
		panic(fmt.Sprintf("card not found in registry: %q", id))
	}
	return ctor()
}

// DefaultCatalog builds the catalog of the built-in card set.
func DefaultCatalog() *Catalog {
	cards := make([]*CardType, 0, len(registryOrder))
	for _, id := range registryOrder {
		cards = append(cards, LookupCard(id))
	}
	starting := []DeckEntry{
		{Card: "peasant", Count: 8},
		{Card: "militia", Count: 2},
	}
	market := []DeckEntry{
		{Card: "guild_trader", Count: 3},
		{Card: "caravan_master", Count: 2},
		{Card: "coin_counter", Count: 2},
		{Card: "merchant_bank", Count: 1},
		{Card: "wolf_scout", Count: 3},
		{Card: "bear_warden", Count: 2},
		{Card: "wild_chieftain", Count: 1},
		{Card: "hunting_lodge", Count: 1},
		{Card: "beast_den", Count: 1},
		{Card: "knight_errant", Count: 3},
		{Card: "royal_herald", Count: 2},
		{Card: "kings_decree", Count: 1},
		{Card: "castle_keep", Count: 1},
		{Card: "tinkerer", Count: 3},
		{Card: "salvager", Count: 2},
		{Card: "forge_master", Count: 2},
		{Card: "clockwork_scribe", Count: 2},
		{Card: "artificer_workshop", Count: 1},
	}
	cat, err := NewCatalog(cards, starting, market, "wanderer")
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return cat
}
