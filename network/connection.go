// network/connection.go
package network

import (
	"encoding/json"
	"errors"
	"net"
	"sync"

	"github.com/gorilla/websocket"
)

// Command is one inbound message: the type discriminator plus the raw JSON
// it was decoded from, so handlers can unmarshal the full payload.
type Command struct {
	Type string `json:"type"`
	raw  []byte
}

// Decode unmarshals the command's full payload into v.
func (c *Command) Decode(v interface{}) error {
	return json.Unmarshal(c.raw, v)
}

// NewCommand builds a Command from a payload value carrying a "type" field.
func NewCommand(v interface{}) (*Command, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	cmd := &Command{raw: data}
	if err := json.Unmarshal(data, cmd); err != nil {
		return nil, ErrMalformed
	}
	if cmd.Type == "" {
		return nil, ErrMalformed
	}
	return cmd, nil
}

// ErrMalformed reports an unparseable or untagged command. It is not a
// transport failure; the connection remains usable.
var ErrMalformed = errors.New("malformed command")

type Connection interface {
	Send(v interface{}) error
	ReadCommand() (*Command, error)
	Close() error
	RemoteAddr() net.Addr
}

// WSConnection 基于 gorilla/websocket 的连接实现，消息为 UTF-8 JSON 文本
type WSConnection struct {
	conn      *websocket.Conn
	sendMutex sync.Mutex
	closed    bool
}

func NewWSConnection(conn *websocket.Conn) *WSConnection {
	return &WSConnection{conn: conn}
}

// Send marshals v and writes it as a single text message. Sends to a closed
// connection are dropped silently; real-time state is never queued or
// retried.
func (c *WSConnection) Send(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if c.closed {
		return nil
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.closed = true
		return nil
	}
	return nil
}

func (c *WSConnection) ReadCommand() (*Command, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	cmd := &Command{raw: data}
	if err := json.Unmarshal(data, cmd); err != nil {
		return nil, ErrMalformed
	}
	if cmd.Type == "" {
		return nil, ErrMalformed
	}
	return cmd, nil
}

func (c *WSConnection) Close() error {
	c.sendMutex.Lock()
	c.closed = true
	c.sendMutex.Unlock()
	return c.conn.Close()
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
