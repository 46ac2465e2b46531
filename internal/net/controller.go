package net

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
)

// SeatConn is one seat's connection to the server. Writes are
// serialized; reads happen on a single goroutine.
type SeatConn struct {
	conn    net.Conn
	enc     *json.Encoder
	dec     *json.Decoder
	seat    int
	lastSeq int // last event sent to this seat
	gone    bool
	mu      sync.Mutex
}

// NewSeatConn creates a connection for the given seat.
func NewSeatConn(conn net.Conn, seat int) *SeatConn {
	return &SeatConn{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
		seat: seat,
	}
}

// Seat returns the seat index served by this connection.
func (c *SeatConn) Seat() int {
	return c.seat
}

func (c *SeatConn) send(msg ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enc.Encode(msg); err != nil {
		return fmt.Errorf("send %s to seat %d: %w", msg.Type, c.seat, err)
	}
	return nil
}

func (c *SeatConn) receive() (ClientMessage, error) {
	var msg ClientMessage
	if err := c.dec.Decode(&msg); err != nil {
		return ClientMessage{}, err
	}
	return msg, nil
}

func (c *SeatConn) Close() error {
	return c.conn.Close()
}
