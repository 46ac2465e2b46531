package net

import (
	"context"
	"fmt"
	"net"
	"os"

	"go.uber.org/zap"

	"github.com/gabrilend/gen-realms/internal/game"
	"github.com/gabrilend/gen-realms/internal/session"
)

// Server hosts one match between TCP clients.
type Server struct {
	Sessions *session.Manager
	Port     string
	DeckFile string // optional YAML of alternative starting decks
	HostDeck int    // host's deck number (1-indexed, 0 for the catalog deck)
	Seats    int    // 2 when zero
	Seed     uint64
	Logger   *zap.Logger

	// LocalHost plays seat 0 from this terminal over an in-process pipe.
	LocalHost bool
}

type inbound struct {
	seat int
	msg  ClientMessage
	err  error
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Run listens on Port and serves one match.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()
	return s.Serve(ctx, ln)
}

// Serve waits for every seat to join on ln, then relays commands until
// the match ends or every player has left.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := s.logger()
	n := s.Seats
	if n == 0 {
		n = game.MinPlayers
	}

	quit := make(chan struct{})
	defer close(quit)
	go func() {
		select {
		case <-ctx.Done():
			ln.Close()
		case <-quit:
		}
	}()

	var seats []*SeatConn
	var deckNumbers []int
	defer func() {
		for _, c := range seats {
			c.Close()
		}
	}()

	replErr := make(chan error, 1)
	if s.LocalHost {
		hostConn, hostServerConn := net.Pipe()
		seats = append(seats, NewSeatConn(hostServerConn, 0))
		deckNumbers = append(deckNumbers, s.HostDeck)
		go func() {
			defer hostConn.Close()
			replErr <- NewClient(hostConn, os.Stdin, os.Stdout).RunREPL(ctx)
		}()
	}

	logger.Info("waiting for players", zap.String("addr", ln.Addr().String()), zap.Int("open_seats", n-len(seats)))
	for len(seats) < n {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("accept: %w", err)
		}
		sc := NewSeatConn(conn, len(seats))
		join, err := sc.receive()
		if err != nil || join.Type != MsgJoin {
			logger.Warn("bad handshake", zap.String("remote", conn.RemoteAddr().String()), zap.Error(err))
			conn.Close()
			continue
		}
		seats = append(seats, sc)
		deckNumbers = append(deckNumbers, join.DeckNumber)
		logger.Info("player joined",
			zap.Int("seat", sc.seat),
			zap.String("remote", conn.RemoteAddr().String()),
			zap.Int("deck", join.DeckNumber),
		)
	}

	decks, err := s.startingDecks(deckNumbers)
	if err != nil {
		return err
	}
	id, err := s.Sessions.Create(ctx, session.NewMatch{Players: n, Seed: s.Seed, StartingDecks: decks})
	if err != nil {
		return err
	}
	m := &hostedMatch{id: id, seats: seats, sessions: s.Sessions, logger: logger.With(zap.String("match", id))}
	for _, c := range seats {
		if err := c.send(ServerMessage{Type: MsgWelcome, Match: id, Seat: c.seat, Seats: n}); err != nil {
			m.drop(c, err)
		}
	}

	in := make(chan inbound)
	for _, c := range seats {
		go func(c *SeatConn) {
			for {
				msg, err := c.receive()
				select {
				case in <- inbound{seat: c.seat, msg: msg, err: err}:
				case <-quit:
					return
				}
				if err != nil {
					return
				}
			}
		}(c)
	}

	done, err := m.advance(ctx)
	for !done && err == nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-replErr:
			return err
		case ev := <-in:
			done, err = m.handle(ctx, ev)
		}
	}
	if err != nil {
		return err
	}
	if s.LocalHost && !seats[0].gone {
		// The host's terminal prints the final board before we return.
		select {
		case err = <-replErr:
		case <-ctx.Done():
			err = ctx.Err()
		}
	}
	return err
}

// startingDecks resolves each seat's deck number against the deck file.
func (s *Server) startingDecks(numbers []int) ([][]game.DeckEntry, error) {
	if s.DeckFile == "" {
		return nil, nil
	}
	decks := make([][]game.DeckEntry, len(numbers))
	for seat, n := range numbers {
		if n == 0 {
			continue
		}
		name, entries, err := game.DeckByNumber(s.DeckFile, n, s.Sessions.Catalog())
		if err != nil {
			return nil, fmt.Errorf("seat %d deck: %w", seat, err)
		}
		s.logger().Info("deck chosen", zap.Int("seat", seat), zap.String("deck", name), zap.Int("entries", len(entries)))
		decks[seat] = entries
	}
	return decks, nil
}

// --- Match relay ---

type hostedMatch struct {
	id       string
	seats    []*SeatConn
	sessions *session.Manager
	logger   *zap.Logger
}

// handle processes one message or disconnect. It reports whether the
// match has ended.
func (m *hostedMatch) handle(ctx context.Context, ev inbound) (bool, error) {
	c := m.seats[ev.seat]
	if c.gone {
		return m.allGone(), nil
	}
	if ev.err != nil {
		m.drop(c, ev.err)
		if m.allGone() {
			m.logger.Info("every player left")
			return true, nil
		}
		return m.advance(ctx)
	}

	switch ev.msg.Type {
	case MsgCommand:
		if ev.msg.Command == nil {
			m.reply(c, ServerMessage{Type: MsgError, Seat: c.seat, Message: "command message without a command"})
			return false, nil
		}
		cmd := *ev.msg.Command
		cmd.Player = c.seat
		res, err := m.sessions.Execute(ctx, m.id, cmd)
		if err != nil {
			return true, err
		}
		if !res.OK() {
			m.reply(c, ServerMessage{Type: MsgRejected, Seat: c.seat, Rejection: res.Rejection})
			return false, nil
		}
		return m.advance(ctx)
	default:
		m.reply(c, ServerMessage{Type: MsgError, Seat: c.seat, Message: fmt.Sprintf("unexpected message %q", ev.msg.Type)})
		return false, nil
	}
}

// advance ends the turns of seats that have left, then broadcasts.
func (m *hostedMatch) advance(ctx context.Context) (bool, error) {
	for range m.seats {
		snap, err := m.sessions.Snapshot(ctx, m.id, -1)
		if err != nil {
			return true, err
		}
		if snap.Winner >= 0 || !m.seats[snap.Active].gone {
			break
		}
		if err := m.sessions.ForceEndTurn(ctx, m.id); err != nil {
			return true, err
		}
	}
	return m.broadcast(ctx)
}

// broadcast sends every seat its own view and the events it has not seen.
func (m *hostedMatch) broadcast(ctx context.Context) (bool, error) {
	over := false
	for _, c := range m.seats {
		if c.gone {
			continue
		}
		snap, err := m.sessions.Snapshot(ctx, m.id, c.seat)
		if err != nil {
			return true, err
		}
		events, err := m.sessions.Events(ctx, m.id, c.seat, c.lastSeq)
		if err != nil {
			return true, err
		}
		msg := ServerMessage{Type: MsgState, Seat: c.seat, State: snap}
		for _, e := range events {
			msg.Events = append(msg.Events, NewEventView(e))
			c.lastSeq = e.Seq
		}
		if snap.Winner >= 0 {
			msg.Type = MsgGameOver
			over = true
		}
		m.reply(c, msg)
	}
	return over, nil
}

func (m *hostedMatch) reply(c *SeatConn, msg ServerMessage) {
	if err := c.send(msg); err != nil {
		m.drop(c, err)
	}
}

func (m *hostedMatch) drop(c *SeatConn, err error) {
	if c.gone {
		return
	}
	c.gone = true
	m.logger.Warn("player left", zap.Int("seat", c.seat), zap.Error(err))
}

func (m *hostedMatch) allGone() bool {
	for _, c := range m.seats {
		if !c.gone {
			return false
		}
	}
	return true
}
