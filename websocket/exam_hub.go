package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/services"
	"github.com/gofiber/contrib/websocket"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// attemptClient is one live exam connection. The server pushes the
// authoritative remaining-time tick once per second and accepts
// integrity signals from the client on the same connection.
type attemptClient struct {
	mu   sync.Mutex
	conn *websocket.Conn

	stop     chan struct{}
	stopOnce sync.Once
}

func newAttemptClient(conn *websocket.Conn) *attemptClient {
	return &attemptClient{conn: conn, stop: make(chan struct{})}
}

func (c *attemptClient) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// shutdown stops the tick loop. Both the reader on exit and a newer
// connection taking over call it, so it must tolerate either order.
func (c *attemptClient) shutdown() {
	c.stopOnce.Do(func() { close(c.stop) })
}

var clients = make(map[uuid.UUID]*attemptClient)
var clientsMu sync.Mutex

type clientSignal struct {
	Type string `json:"type"`
	Kind string `json:"kind"`
}

func userIDFromToken(token *jwt.Token) (uuid.UUID, bool) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// AttemptSocket serves the live channel of one running attempt.
func AttemptSocket(c *websocket.Conn) {
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		c.Close()
		return
	}
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		c.Close()
		return
	}
	userID, ok := userIDFromToken(token)
	if !ok {
		c.Close()
		return
	}

	if _, err := services.Engine.TimeRemaining(userID, attemptID); err != nil {
		c.WriteJSON(map[string]interface{}{"type": "error", "message": err.Error()})
		c.Close()
		return
	}

	client := newAttemptClient(c)
	clientsMu.Lock()
	if old, ok := clients[attemptID]; ok {
		// Stop the old tick loop before the clock is driven twice.
		old.shutdown()
		old.conn.Close()
	}
	clients[attemptID] = client
	clientsMu.Unlock()

	go tickLoop(client, attemptID)

	for {
		var sig clientSignal
		if err := c.ReadJSON(&sig); err != nil {
			break
		}
		if sig.Type != "violation" {
			continue
		}
		res, err := services.Engine.ReportViolation(userID, attemptID, sig.Kind)
		if err != nil {
			client.writeJSON(map[string]interface{}{"type": "error", "message": err.Error()})
			continue
		}
		client.writeJSON(map[string]interface{}{"type": "submitted", "result": res})
		break
	}

	client.shutdown()
	clientsMu.Lock()
	if cur, ok := clients[attemptID]; ok && cur == client {
		delete(clients, attemptID)
	}
	clientsMu.Unlock()
	c.Close()
}

// tickLoop drives the session clock for one connection. The cron
// sweeper remains the backstop when no connection is alive.
func tickLoop(client *attemptClient, attemptID uuid.UUID) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-client.stop:
			return
		case <-ticker.C:
			remaining, res, err := services.Engine.Tick(attemptID, 1)
			if err != nil {
				log.Printf("🔥 Tick failed for attempt %s: %v", attemptID, err)
				return
			}
			if res != nil {
				client.writeJSON(map[string]interface{}{"type": "submitted", "result": res})
				client.conn.Close()
				return
			}
			if err := client.writeJSON(map[string]interface{}{"type": "tick", "remaining": remaining}); err != nil {
				return
			}
		}
	}
}
