package net

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrilend/gen-realms/internal/game"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want game.Command
	}{
		{"draw", game.Command{Type: game.CmdSetDrawOrder}},
		{"draw 2 0", game.Command{Type: game.CmdSetDrawOrder, Order: []int{2, 0}}},
		{"play 14", game.Command{Type: game.CmdPlay, Card: 14}},
		{"PLAY 14 9", game.Command{Type: game.CmdPlay, Card: 14, Frontier: 9}},
		{"buy 3", game.Command{Type: game.CmdBuy, Slot: 3}},
		{"buy w", game.Command{Type: game.CmdBuy, Slot: game.WandererSlot}},
		{"attack 2", game.Command{Type: game.CmdAttack, TargetPlayer: 1}},
		{"attack p3", game.Command{Type: game.CmdAttack, TargetPlayer: 2}},
		{"attack base 31", game.Command{Type: game.CmdAttack, TargetBase: 31}},
		{"scrap 5", game.Command{Type: game.CmdScrap, Card: 5}},
		{"activate 8", game.Command{Type: game.CmdActivateBase, Card: 8}},
		{"ack 8", game.Command{Type: game.CmdAcknowledgeArt, Card: 8}},
		{"choose", game.Command{Type: game.CmdResolveChoice}},
		{"choose 4 7", game.Command{Type: game.CmdResolveChoice, Selection: []int{4, 7}}},
		{"end", game.Command{Type: game.CmdEndTurn}},
	}
	for _, tt := range tests {
		got, err := ParseCommand(tt.line)
		if assert.NoError(t, err, tt.line) {
			assert.Equal(t, tt.want, got, tt.line)
		}
	}

	for _, bad := range []string{"", "fly", "play", "play x", "buy", "attack", "attack 0", "attack base", "scrap 1 2", "draw x"} {
		_, err := ParseCommand(bad)
		assert.Error(t, err, bad)
	}
}

func TestRenderSnapshot(t *testing.T) {
	g, err := game.NewGame(game.Config{Catalog: game.DefaultCatalog(), Seed: 3, NoShuffle: true})
	require.NoError(t, err)
	require.Nil(t, g.SetDrawOrder(0, nil))

	var own, other bytes.Buffer
	RenderSnapshot(&own, g.Snapshot(0))
	RenderSnapshot(&other, g.Snapshot(1))

	assert.Contains(t, own.String(), "YOU (P1)")
	assert.Contains(t, own.String(), "Your turn")
	assert.Contains(t, own.String(), "Hand: [")
	assert.Contains(t, own.String(), "[w] Wanderer (2)")
	assert.Contains(t, other.String(), "P1  Authority: 50  Hand: 5")
	assert.Contains(t, other.String(), "P1's turn")
	assert.NotContains(t, other.String(), "Hand: [")

	var none bytes.Buffer
	RenderSnapshot(&none, nil)
	assert.Empty(t, none.String())
}

func TestClientREPL(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer serverSide.Close()

	var out bytes.Buffer
	in := strings.NewReader("help\nbogus\nplay 7\n")
	c := NewClient(clientSide, in, &out)
	errCh := make(chan error, 1)
	go func() { errCh <- c.RunREPL(context.Background()) }()

	enc := json.NewEncoder(serverSide)
	dec := json.NewDecoder(serverSide)
	require.NoError(t, enc.Encode(ServerMessage{Type: MsgWelcome, Match: "m1", Seat: 1, Seats: 2}))

	require.NoError(t, serverSide.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg ClientMessage
	require.NoError(t, dec.Decode(&msg))
	require.Equal(t, MsgCommand, msg.Type)
	assert.Equal(t, game.CmdPlay, msg.Command.Type)
	assert.Equal(t, 7, msg.Command.Card)

	g, err := game.NewGame(game.Config{Catalog: game.DefaultCatalog(), Seed: 3})
	require.NoError(t, err)
	g.Winner, g.Result = 1, "P1's authority reached 0"
	require.NoError(t, enc.Encode(ServerMessage{Type: MsgGameOver, Seat: 1, State: g.Snapshot(1)}))

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("REPL did not stop at game over")
	}
	assert.Contains(t, out.String(), "GAME OVER")
	assert.Contains(t, out.String(), "P1's authority reached 0")
	assert.Contains(t, out.String(), "unknown command")
	assert.Contains(t, out.String(), "Commands")
}
