package game

// Built-in card set. Each constructor returns a fresh definition; the
// registry in registry.go maps ids to these constructors.

// --- Effect helpers ---

func trade(n int) Effect     { return Effect{Kind: EffectTrade, Value: n} }
func combat(n int) Effect    { return Effect{Kind: EffectCombat, Value: n} }
func authority(n int) Effect { return Effect{Kind: EffectAuthority, Value: n} }
func draw(n int) Effect      { return Effect{Kind: EffectDraw, Value: n} }

func ally(e Effect) Effect {
	e.Ally = true
	return e
}

func optional(e Effect) Effect {
	e.Optional = true
	return e
}

func then(e Effect) Effect {
	e.RequiresPrevious = true
	return e
}

// --- Starting cards ---

func Peasant() *CardType {
	return &CardType{
		ID:          "peasant",
		Name:        "Peasant",
		Description: "Every realm is built on tired backs.",
		Faction:     FactionNeutral,
		Kind:        KindCreature,
		Effects:     []Effect{trade(1)},
	}
}

func Militia() *CardType {
	return &CardType{
		ID:          "militia",
		Name:        "Militia",
		Description: "Pitchforks, mostly.",
		Faction:     FactionNeutral,
		Kind:        KindCreature,
		Effects:     []Effect{combat(1)},
	}
}

func Wanderer() *CardType {
	return &CardType{
		ID:          "wanderer",
		Name:        "Wanderer",
		Description: "Always on the road, always for hire.",
		Faction:     FactionNeutral,
		Cost:        2,
		Kind:        KindCreature,
		Effects:     []Effect{trade(2)},
	}
}

// --- Merchant Guild ---

func GuildTrader() *CardType {
	return &CardType{
		ID:      "guild_trader",
		Name:    "Guild Trader",
		Faction: FactionMerchant,
		Cost:    2,
		Kind:    KindCreature,
		Effects: []Effect{trade(2), ally(combat(2))},
	}
}

func CaravanMaster() *CardType {
	return &CardType{
		ID:      "caravan_master",
		Name:    "Caravan Master",
		Faction: FactionMerchant,
		Cost:    4,
		Kind:    KindCreature,
		Effects: []Effect{trade(3), ally(draw(1))},
	}
}

func CoinCounter() *CardType {
	return &CardType{
		ID:          "coin_counter",
		Name:        "Coin Counter",
		Description: "Counts twice, pays once.",
		Faction:     FactionMerchant,
		Cost:        3,
		Kind:        KindCreature,
		Effects:     []Effect{draw(1), trade(1)},
	}
}

func MerchantBank() *CardType {
	return &CardType{
		ID:      "merchant_bank",
		Name:    "Merchant Bank",
		Faction: FactionMerchant,
		Cost:    5,
		Kind:    KindBase,
		Defense: 5,
		Outpost: true,
		Effects: []Effect{trade(2), ally(authority(3))},
	}
}

// --- The Wilds ---

func WolfScout() *CardType {
	return &CardType{
		ID:      "wolf_scout",
		Name:    "Wolf Scout",
		Faction: FactionWilds,
		Cost:    1,
		Kind:    KindCreature,
		Effects: []Effect{combat(2), ally(combat(2))},
	}
}

func BearWarden() *CardType {
	return &CardType{
		ID:      "bear_warden",
		Name:    "Bear Warden",
		Faction: FactionWilds,
		Cost:    3,
		Kind:    KindCreature,
		Effects: []Effect{combat(4), ally(Effect{Kind: EffectOpponentDiscard, Value: 1})},
	}
}

func WildChieftain() *CardType {
	return &CardType{
		ID:             "wild_chieftain",
		Name:           "Wild Chieftain",
		Description:    "When the horn sounds, the frontier empties.",
		Faction:        FactionWilds,
		Cost:           5,
		Kind:           KindCreature,
		FrontierLeader: true,
		Effects:        []Effect{combat(5), ally(authority(2))},
	}
}

func WolfCub() *CardType {
	return &CardType{
		ID:      "wolf_cub",
		Name:    "Wolf Cub",
		Faction: FactionWilds,
		Kind:    KindCreature,
		Effects: []Effect{combat(1)},
	}
}

func HuntingLodge() *CardType {
	return &CardType{
		ID:      "hunting_lodge",
		Name:    "Hunting Lodge",
		Faction: FactionWilds,
		Cost:    4,
		Kind:    KindBase,
		Defense: 4,
		Effects: []Effect{{Kind: EffectSpawn, Unit: "wolf_cub"}, combat(1)},
	}
}

func BeastDen() *CardType {
	return &CardType{
		ID:           "beast_den",
		Name:         "Beast Den",
		Faction:      FactionWilds,
		Cost:         6,
		Kind:         KindBase,
		Defense:      5,
		SpawnPerAlly: true,
		Effects:      []Effect{{Kind: EffectSpawn, Unit: "wolf_cub"}},
	}
}

// --- High Kingdom ---

func KnightErrant() *CardType {
	return &CardType{
		ID:      "knight_errant",
		Name:    "Knight Errant",
		Faction: FactionKingdom,
		Cost:    2,
		Kind:    KindCreature,
		Effects: []Effect{combat(2), ally(authority(2))},
	}
}

func RoyalHerald() *CardType {
	return &CardType{
		ID:      "royal_herald",
		Name:    "Royal Herald",
		Faction: FactionKingdom,
		Cost:    4,
		Kind:    KindCreature,
		Effects: []Effect{authority(4), {Kind: EffectOpponentDiscard, Value: 1}, ally(combat(3))},
	}
}

func KingsDecree() *CardType {
	return &CardType{
		ID:      "kings_decree",
		Name:    "King's Decree",
		Faction: FactionKingdom,
		Cost:    5,
		Kind:    KindAction,
		Effects: []Effect{combat(4), optional(Effect{Kind: EffectDestroyBase})},
	}
}

func CastleKeep() *CardType {
	return &CardType{
		ID:      "castle_keep",
		Name:    "Castle Keep",
		Faction: FactionKingdom,
		Cost:    6,
		Kind:    KindBase,
		Defense: 6,
		Outpost: true,
		Effects: []Effect{authority(2), ally(combat(2))},
	}
}

// --- Artificer Order ---

func Tinkerer() *CardType {
	return &CardType{
		ID:          "tinkerer",
		Name:        "Tinkerer",
		Description: "Takes it apart. Sometimes puts it back.",
		Faction:     FactionArtificer,
		Cost:        2,
		Kind:        KindCreature,
		Effects: []Effect{
			optional(Effect{Kind: EffectScrapHandDiscard, Value: 1}),
			then(draw(1)),
			ally(combat(2)),
		},
	}
}

func Salvager() *CardType {
	return &CardType{
		ID:      "salvager",
		Name:    "Salvager",
		Faction: FactionArtificer,
		Cost:    3,
		Kind:    KindCreature,
		Effects: []Effect{
			trade(1),
			optional(Effect{Kind: EffectScrapTradeRow, Value: 1}),
			then(combat(2)),
		},
	}
}

func ForgeMaster() *CardType {
	return &CardType{
		ID:      "forge_master",
		Name:    "Forge Master",
		Faction: FactionArtificer,
		Cost:    4,
		Kind:    KindCreature,
		Effects: []Effect{
			combat(2),
			{Kind: EffectUpgrade, Upgrade: UpgradeAttack, Value: 1},
			ally(Effect{Kind: EffectUpgrade, Upgrade: UpgradeTrade, Value: 1}),
		},
	}
}

func ClockworkScribe() *CardType {
	return &CardType{
		ID:      "clockwork_scribe",
		Name:    "Clockwork Scribe",
		Faction: FactionArtificer,
		Cost:    3,
		Kind:    KindCreature,
		Effects: []Effect{draw(1), ally(trade(2))},
	}
}

func ArtificerWorkshop() *CardType {
	return &CardType{
		ID:      "artificer_workshop",
		Name:    "Artificer Workshop",
		Faction: FactionArtificer,
		Cost:    5,
		Kind:    KindBase,
		Defense: 5,
		Effects: []Effect{{Kind: EffectRecruit, Value: 3}},
	}
}
