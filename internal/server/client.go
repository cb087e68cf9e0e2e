package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"coup/internal/protocol"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// maxFrameSize bounds one client frame; the largest command is a join
	// carrying a player id and a name.
	maxFrameSize = 4096
)

// ClientType distinguishes table displays from player connections.
type ClientType int

const (
	ClientSpectator ClientType = 0
	ClientPlayer    ClientType = 1
)

// Client is one WebSocket connection to a room. PlayerID is empty for a
// table display and for a player that has not joined yet.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	PlayerID string
	Type     ClientType
}

func NewClient(hub *Hub, conn *websocket.Conn, playerID string, clientType ClientType, buffer int) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, buffer),
		PlayerID: playerID,
		Type:     clientType,
	}
}

// decodeFrame parses one client frame into a command for the hub. Frames
// the hub could never act on come back as an error message for the
// sender.
func decodeFrame(frame []byte) (protocol.Envelope, *protocol.ErrorMsg) {
	var env protocol.Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return env, &protocol.ErrorMsg{Code: protocol.CodeMalformed, Message: "malformed message"}
	}
	if env.Type == "" {
		return env, &protocol.ErrorMsg{Code: protocol.CodeMalformed, Message: "message type missing"}
	}
	if !protocol.IsClientType(env.Type) {
		return env, &protocol.ErrorMsg{
			Code:    protocol.CodeUnknownType,
			Message: fmt.Sprintf("unknown message type %q", env.Type),
		}
	}
	return env, nil
}

// ReadPump forwards commands to the hub until the connection drops, then
// unregisters the client.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.quit:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		switch {
		case errors.Is(err, websocket.ErrReadLimit):
			log.Printf("room %s: %s sent a frame over %d bytes", c.hub.gameID, c.conn.RemoteAddr(), maxFrameSize)
			return
		case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure):
			log.Printf("room %s: %s read: %v", c.hub.gameID, c.conn.RemoteAddr(), err)
			return
		case err != nil:
			return
		}

		env, problem := decodeFrame(frame)
		if problem != nil {
			log.Printf("room %s: %s: %s", c.hub.gameID, c.conn.RemoteAddr(), problem.Message)
			c.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, problem))
			continue
		}
		select {
		case c.hub.incoming <- IncomingMessage{Client: c, Envelope: env}:
		case <-c.hub.quit:
			return
		}
	}
}

// WritePump drains the send channel to the socket and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendEnvelope queues a message without blocking. Only the hub, or the
// client's own ReadPump while it is registered, may call it.
func (c *Client) SendEnvelope(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("send buffer full, dropping %s", env.Type)
	}
}

// IncomingMessage pairs a message with its source client.
type IncomingMessage struct {
	Client   *Client
	Envelope protocol.Envelope
}
