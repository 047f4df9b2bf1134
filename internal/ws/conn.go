package ws

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gofiber/websocket/v2"
)

var ErrClosed = errors.New("connection closed")

// Conn wraps a client socket so that broadcasts and the read loop can both
// write to it. The underlying connection supports one writer at a time.
type Conn struct {
	socket *websocket.Conn
	mu     sync.Mutex
	closed bool
}

func NewConn(socket *websocket.Conn) *Conn {
	return &Conn{socket: socket}
}

// Send writes one envelope of the given type.
func (c *Conn) Send(msgType MessageType, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.socket.WriteJSON(Message{Type: msgType, Payload: raw})
}

func (c *Conn) SendError(errorMsg string) error {
	return c.Send(MessageTypeError, ErrorPayload{Error: errorMsg})
}

// Close sends a normal closure frame with reason and closes the socket. No
// write reaches the socket afterwards, so the handler owning it may return.
func (c *Conn) Close(reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	_ = c.socket.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
	)
	return c.socket.Close()
}
