package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/gabrilend/gen-realms/internal/game"
)

// Client connects to a match server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   io.Reader
	out  io.Writer
	seat int
	last *game.Snapshot
}

// NewClient creates a REPL over an established connection.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: in, out: out}
}

// Connect connects to a server, sends the deck choice, and runs the REPL.
func Connect(ctx context.Context, addr string, deckNumber int) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	enc := json.NewEncoder(conn)
	if err := enc.Encode(ClientMessage{Type: MsgJoin, DeckNumber: deckNumber}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for the other players...")
	return NewClient(conn, os.Stdin, os.Stdout).RunREPL(ctx)
}

// RunREPL prints server messages as they arrive and sends the commands
// typed by the user until the game ends or the user quits.
func (c *Client) RunREPL(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	msgs := make(chan ServerMessage)
	readErr := make(chan error, 1)
	go func() {
		dec := json.NewDecoder(c.conn)
		for {
			var msg ServerMessage
			if err := dec.Decode(&msg); err != nil {
				readErr <- err
				return
			}
			select {
			case msgs <- msg:
			case <-done:
				return
			}
		}
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

	enc := json.NewEncoder(c.conn)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-readErr:
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
				fmt.Fprintln(c.out, "Server closed the connection.")
				return nil
			}
			return fmt.Errorf("read message: %w", err)

		case msg := <-msgs:
			if c.handle(msg) {
				return nil
			}

		case line, ok := <-lines:
			if !ok {
				// Input is exhausted; keep following the game.
				lines = nil
				continue
			}
			quit, err := c.input(enc, line)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

// handle prints one server message and reports whether the game is over.
func (c *Client) handle(msg ServerMessage) bool {
	switch msg.Type {
	case MsgWelcome:
		c.seat = msg.Seat
		fmt.Fprintf(c.out, "Match %s: you are P%d of %d. Type 'help' for commands.\n", msg.Match, msg.Seat+1, msg.Seats)

	case MsgState, MsgGameOver:
		for _, ev := range msg.Events {
			c.renderEvent(ev)
		}
		c.last = msg.State
		RenderSnapshot(c.out, msg.State)
		if msg.Type == MsgGameOver {
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			if msg.State != nil {
				fmt.Fprintln(c.out, msg.State.Result)
			}
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return true
		}

	case MsgRejected:
		if msg.Rejection != nil {
			fmt.Fprintf(c.out, "Rejected: %s\n", msg.Rejection.Error())
		}

	case MsgError:
		fmt.Fprintf(c.out, "Error: %s\n", msg.Message)
	}
	return false
}

func (c *Client) input(enc *json.Encoder, line string) (bool, error) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return false, nil
	case "help", "?":
		fmt.Fprint(c.out, helpText)
		return false, nil
	case "state":
		RenderSnapshot(c.out, c.last)
		return false, nil
	case "quit", "exit":
		return true, nil
	}

	cmd, err := ParseCommand(line)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return false, nil
	}
	cmd.Player = c.seat
	if err := enc.Encode(ClientMessage{Type: MsgCommand, Command: &cmd}); err != nil {
		return false, fmt.Errorf("send command: %w", err)
	}
	return false, nil
}

const helpText = `Commands (numbers in brackets are card ids):
  draw [pos ...]       draw, taking these draw pile positions first (0 is the top)
  play <id> [base]     play a card; name a base id to stage it on that frontier
  buy <slot>|w         buy from the trade row (slots 0-4) or the wanderer
  attack <player>      attack a player (1-4)
  attack base <id>     attack a base
  scrap <id>           scrap a played card or base for its scrap effect
  activate <id>        activate a deployed base
  choose [id ...]      resolve the pending choice (no ids to decline)
  ack <id>             acknowledge an upgraded card's new art
  end                  end your turn
  state | help | quit
`

// ParseCommand parses one line typed at the REPL. Player numbers are
// 1-based as printed; card ids, slots and draw positions are taken as is.
func ParseCommand(line string) (game.Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return game.Command{}, errors.New("empty command")
	}
	args, err := atoiAll(fields[1:])
	name := fields[0]

	switch name {
	case "draw":
		if err != nil {
			return game.Command{}, err
		}
		return game.Command{Type: game.CmdSetDrawOrder, Order: args}, nil

	case "play":
		if err != nil || len(args) < 1 || len(args) > 2 {
			return game.Command{}, errors.New("usage: play <id> [base]")
		}
		cmd := game.Command{Type: game.CmdPlay, Card: args[0]}
		if len(args) == 2 {
			cmd.Frontier = args[1]
		}
		return cmd, nil

	case "buy":
		if len(fields) == 2 && (fields[1] == "w" || fields[1] == "wanderer") {
			return game.Command{Type: game.CmdBuy, Slot: game.WandererSlot}, nil
		}
		if err != nil || len(args) != 1 {
			return game.Command{}, errors.New("usage: buy <slot>|w")
		}
		return game.Command{Type: game.CmdBuy, Slot: args[0]}, nil

	case "attack":
		if len(fields) == 3 && fields[1] == "base" {
			id, err := strconv.Atoi(fields[2])
			if err != nil {
				return game.Command{}, errors.New("usage: attack base <id>")
			}
			return game.Command{Type: game.CmdAttack, TargetBase: id}, nil
		}
		if len(fields) == 2 {
			p, err := strconv.Atoi(strings.TrimPrefix(fields[1], "p"))
			if err == nil && p >= 1 {
				return game.Command{Type: game.CmdAttack, TargetPlayer: p - 1}, nil
			}
		}
		return game.Command{}, errors.New("usage: attack <player> | attack base <id>")

	case "scrap", "activate", "ack":
		if err != nil || len(args) != 1 {
			return game.Command{}, fmt.Errorf("usage: %s <id>", name)
		}
		t := map[string]game.CommandType{
			"scrap":    game.CmdScrap,
			"activate": game.CmdActivateBase,
			"ack":      game.CmdAcknowledgeArt,
		}[name]
		return game.Command{Type: t, Card: args[0]}, nil

	case "choose":
		if err != nil {
			return game.Command{}, err
		}
		return game.Command{Type: game.CmdResolveChoice, Selection: args}, nil

	case "end":
		return game.Command{Type: game.CmdEndTurn}, nil
	}
	return game.Command{}, fmt.Errorf("unknown command %q (try 'help')", name)
}

func atoiAll(fields []string) ([]int, error) {
	var out []int
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", f)
		}
		out = append(out, n)
	}
	return out, nil
}

func (c *Client) renderEvent(ev EventView) {
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 12 {
		phase += " "
	}
	fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}
