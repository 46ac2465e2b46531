package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckFile represents a YAML file of alternative starting decks.
type DeckFile struct {
	Decks []NamedDeck `yaml:"decks"`
}

// NamedDeck is a single starting deck in a deck file.
type NamedDeck struct {
	Name  string      `yaml:"name"`
	Cards []DeckEntry `yaml:"cards"`
}

// ReadDeckFile reads a deck file without checking it against a catalog.
func ReadDeckFile(path string) (*DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	return &df, nil
}

// checkDeck verifies every card of a deck exists in the catalog.
func checkDeck(cat *Catalog, d NamedDeck) error {
	if len(d.Cards) == 0 {
		return fmt.Errorf("deck %q is empty", d.Name)
	}
	for _, entry := range d.Cards {
		if _, ok := cat.Lookup(entry.Card); !ok {
			return fmt.Errorf("deck %q: card %q is not in the catalog", d.Name, entry.Card)
		}
		if entry.Count <= 0 {
			return fmt.Errorf("deck %q: card %q needs a positive count", d.Name, entry.Card)
		}
	}
	return nil
}

// ParseDeckFile parses a YAML deck file and returns a map of deck name → entries.
func ParseDeckFile(path string, cat *Catalog) (map[string][]DeckEntry, error) {
	df, err := ReadDeckFile(path)
	if err != nil {
		return nil, err
	}
	decks := make(map[string][]DeckEntry)
	for _, d := range df.Decks {
		if err := checkDeck(cat, d); err != nil {
			return nil, err
		}
		decks[d.Name] = d.Cards
	}
	return decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int, cat *Catalog) (string, []DeckEntry, error) {
	df, err := ReadDeckFile(path)
	if err != nil {
		return "", nil, err
	}
	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}
	d := df.Decks[n-1]
	if err := checkDeck(cat, d); err != nil {
		return "", nil, err
	}
	return d.Name, d.Cards, nil
}
