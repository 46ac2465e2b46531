// Package session hosts live matches. Each match serializes its own
// commands; the manager persists a match after every accepted command
// and reloads it from the store when it is not in memory.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gabrilend/gen-realms/internal/game"
	"github.com/gabrilend/gen-realms/internal/log"
	"github.com/gabrilend/gen-realms/internal/store"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrNoCatalog     = errors.New("session manager has no catalog")
)

// Config configures a Manager. Store and Logger are optional.
type Config struct {
	Catalog  *game.Catalog
	Store    store.Store
	Selector game.RowSelector
	Logger   *zap.Logger
}

// NewMatch describes a match to create.
type NewMatch struct {
	Players       int
	Seed          uint64
	StartingDecks [][]game.DeckEntry
}

type match struct {
	id     string
	mu     sync.Mutex
	game   *game.Game
	events *log.MemoryLogger
}

// Manager owns every live match.
type Manager struct {
	catalog  *game.Catalog
	store    store.Store
	selector game.RowSelector
	logger   *zap.Logger

	mu      sync.RWMutex
	matches map[string]*match
}

// NewManager creates a manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Catalog == nil {
		return nil, ErrNoCatalog
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		catalog:  cfg.Catalog,
		store:    cfg.Store,
		selector: cfg.Selector,
		logger:   logger,
		matches:  make(map[string]*match),
	}, nil
}

func (m *Manager) gameConfig(events *log.MemoryLogger) game.Config {
	return game.Config{Catalog: m.catalog, Logger: events, Selector: m.selector}
}

// Create starts a new match and returns its id.
func (m *Manager) Create(ctx context.Context, opts NewMatch) (string, error) {
	events := log.NewMemoryLogger()
	cfg := m.gameConfig(events)
	cfg.Players = opts.Players
	cfg.Seed = opts.Seed
	cfg.StartingDecks = opts.StartingDecks
	g, err := game.NewGame(cfg)
	if err != nil {
		return "", fmt.Errorf("create match: %w", err)
	}

	mt := &match{id: uuid.NewString(), game: g, events: events}
	mt.mu.Lock()
	defer mt.mu.Unlock()

	m.mu.Lock()
	m.matches[mt.id] = mt
	m.mu.Unlock()

	m.logger.Info("match created",
		zap.String("match", mt.id),
		zap.Int("players", len(g.Players)),
		zap.Uint64("seed", g.Seed()),
	)
	if err := m.persist(ctx, mt); err != nil {
		m.mu.Lock()
		delete(m.matches, mt.id)
		m.mu.Unlock()
		return "", err
	}
	return mt.id, nil
}

// get returns the live match, loading it from the store on a miss.
func (m *Manager) get(ctx context.Context, id string) (*match, error) {
	m.mu.RLock()
	mt, ok := m.matches[id]
	m.mu.RUnlock()
	if ok {
		return mt, nil
	}
	if m.store == nil {
		return nil, ErrMatchNotFound
	}

	saved, err := m.store.Load(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load match %s: %w", id, err)
	}
	events := log.NewMemoryLogger()
	g, err := game.RestoreGame(saved.State, m.gameConfig(events))
	if err != nil {
		return nil, fmt.Errorf("load match %s: %w", id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.matches[id]; ok {
		return existing, nil
	}
	mt = &match{id: id, game: g, events: events}
	m.matches[id] = mt
	m.logger.Info("match restored", zap.String("match", id), zap.Int("turn", g.Turn))
	return mt, nil
}

// persist saves the match. The caller holds mt.mu.
func (m *Manager) persist(ctx context.Context, mt *match) error {
	if m.store == nil {
		return nil
	}
	data, err := mt.game.Save()
	if err != nil {
		return err
	}
	err = m.store.Save(ctx, store.Match{
		ID:    mt.id,
		State: data,
		Turn:  mt.game.Turn,
		Over:  mt.game.Over(),
	})
	if err != nil {
		return fmt.Errorf("persist match %s: %w", mt.id, err)
	}
	return nil
}

// Execute runs one command against a match. A rejected command is
// reported in the Result, not as an error; errors mean the match could
// not be reached or saved.
func (m *Manager) Execute(ctx context.Context, id string, cmd game.Command) (game.Result, error) {
	mt, err := m.get(ctx, id)
	if err != nil {
		return game.Result{}, err
	}
	mt.mu.Lock()
	defer mt.mu.Unlock()

	res := mt.game.Execute(cmd)
	if !res.OK() {
		m.logger.Debug("command rejected",
			zap.String("match", id),
			zap.Stringer("command", cmd.Type),
			zap.Int("player", cmd.Player),
			zap.String("code", string(res.Rejection.Code)),
		)
		return res, nil
	}
	if mt.game.Over() {
		m.logger.Info("match over",
			zap.String("match", id),
			zap.Int("winner", mt.game.Winner),
			zap.String("result", mt.game.Result),
		)
	}
	if err := m.persist(ctx, mt); err != nil {
		m.logger.Warn("match not saved", zap.String("match", id), zap.Error(err))
	}
	return res, nil
}

// ForceEndTurn ends the active turn regardless of a pending choice, for
// a seat that disconnected or timed out.
func (m *Manager) ForceEndTurn(ctx context.Context, id string) error {
	mt, err := m.get(ctx, id)
	if err != nil {
		return err
	}
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if rej := mt.game.ForceEndTurn(); rej != nil {
		return rej
	}
	m.logger.Info("turn forced to end", zap.String("match", id), zap.Int("turn", mt.game.Turn))
	return m.persist(ctx, mt)
}

// Snapshot returns the state of a match as seen by viewer.
func (m *Manager) Snapshot(ctx context.Context, id string, viewer int) (*game.Snapshot, error) {
	mt, err := m.get(ctx, id)
	if err != nil {
		return nil, err
	}
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.game.Snapshot(viewer), nil
}

// Events returns the events after seq that viewer may see. A match
// loaded from the store starts a fresh log.
func (m *Manager) Events(ctx context.Context, id string, viewer, since int) ([]log.GameEvent, error) {
	mt, err := m.get(ctx, id)
	if err != nil {
		return nil, err
	}
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var out []log.GameEvent
	for _, e := range mt.events.Since(since) {
		if e.VisibleTo(viewer) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Delete drops a match from memory and from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	_, live := m.matches[id]
	delete(m.matches, id)
	m.mu.Unlock()

	if m.store != nil {
		err := m.store.Delete(ctx, id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			if !live {
				return ErrMatchNotFound
			}
		case err != nil:
			return fmt.Errorf("delete match %s: %w", id, err)
		}
	} else if !live {
		return ErrMatchNotFound
	}
	m.logger.Info("match deleted", zap.String("match", id))
	return nil
}

// List returns the ids of live and stored matches.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	m.mu.RLock()
	for id := range m.matches {
		seen[id] = true
	}
	m.mu.RUnlock()

	if m.store != nil {
		stored, err := m.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list matches: %w", err)
		}
		for _, id := range stored {
			seen[id] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Catalog returns the catalog every match is built from.
func (m *Manager) Catalog() *game.Catalog {
	return m.catalog
}
