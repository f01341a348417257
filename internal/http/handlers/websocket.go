package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"fogon/internal/auth"
	"fogon/internal/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	wsReadTimeout  = 30 * time.Second
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 20 * time.Second // must be shorter than wsReadTimeout
	wsSendBuffer   = 256
)

// WebSocketMessage is the envelope for every event pushed to dashboards.
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
	TenantID  string      `json:"tenant_id,omitempty"`
}

// WebSocketClient is a single dashboard connection bound to a tenant.
type WebSocketClient struct {
	conn     *websocket.Conn
	tenantID string
	send     chan WebSocketMessage
	hub      *WebSocketHub
}

// WebSocketHub tracks connected clients and fans broadcasts out per tenant.
type WebSocketHub struct {
	clients    map[*WebSocketClient]bool
	broadcast  chan WebSocketMessage
	register   chan *WebSocketClient
	unregister chan *WebSocketClient
	mu         sync.RWMutex
}

// WebSocketHandler upgrades dashboard connections and exposes the hub as a
// broadcaster for order events and storefront status changes.
type WebSocketHandler struct {
	hub         *WebSocketHub
	authService *auth.Service
}

// NewWebSocketHandler creates the handler and starts its hub loop.
func NewWebSocketHandler(authService *auth.Service) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[*WebSocketClient]bool),
		broadcast:  make(chan WebSocketMessage),
		register:   make(chan *WebSocketClient),
		unregister: make(chan *WebSocketClient),
	}

	go hub.run()
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks are delegated to the CORS layer
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandleWebSocket godoc
// @Summary Real-time event stream
// @Description Upgrades to a WebSocket and streams order and storefront status events for the caller's tenant
// @Tags websocket
// @Param token query string false "JWT access token (alternative to Authorization header)"
// @Success 101
// @Failure 401 {object} map[string]string
// @Router /ws [get]
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	var tenantID string

	// Browsers cannot set headers on WebSocket upgrades, so the token may
	// arrive as a query parameter instead of through the JWT middleware.
	if tid, ok := c.Get("tenant_id").(uuid.UUID); ok {
		tenantID = tid.String()
	} else {
		token := c.QueryParam("token")
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization token")
		}

		claims, err := h.authService.ValidateToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		if claims.TenantID == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "token has no tenant")
		}

		tenantID = claims.TenantID.String()
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return err
	}

	client := &WebSocketClient{
		conn:     conn,
		tenantID: tenantID,
		send:     make(chan WebSocketMessage, wsSendBuffer),
		hub:      h.hub,
	}

	h.hub.register <- client

	go client.writePump()
	go client.readPump()

	return nil
}

// BroadcastToTenant queues a message for every client of the given tenant.
// An empty tenantID reaches all connected clients.
func (h *WebSocketHandler) BroadcastToTenant(tenantID string, messageType string, data interface{}) {
	h.hub.broadcast <- WebSocketMessage{
		Type:      messageType,
		Data:      data,
		Timestamp: time.Now(),
		TenantID:  tenantID,
	}
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.mu.Lock()
			hub.clients[client] = true
			welcome := WebSocketMessage{
				Type:      "connection",
				Data:      map[string]string{"status": "connected"},
				Timestamp: time.Now(),
			}
			select {
			case client.send <- welcome:
			default:
				hub.drop(client)
			}
			hub.mu.Unlock()
			metrics.WebsocketClientConnected()
			log.Debug().Str("tenant_id", client.tenantID).Msg("websocket client connected")

		case client := <-hub.unregister:
			hub.mu.Lock()
			if _, ok := hub.clients[client]; ok {
				delete(hub.clients, client)
			}
			hub.mu.Unlock()
			// readPump has exited by now, so nothing can still send on the
			// channel; this is the only place it is ever closed
			close(client.send)
			metrics.WebsocketClientDisconnected()
			log.Debug().Str("tenant_id", client.tenantID).Msg("websocket client disconnected")

		case message := <-hub.broadcast:
			hub.mu.Lock()
			for client := range hub.clients {
				if message.TenantID != "" && client.tenantID != message.TenantID {
					continue
				}
				select {
				case client.send <- message:
				default:
					// Slow consumer
					hub.drop(client)
				}
			}
			hub.mu.Unlock()
		}
	}
}

// drop removes a client without closing its send channel: readPump may still
// be sending on it. Closing the connection makes readPump exit, and its
// deferred unregister finishes the teardown. Callers hold hub.mu.
func (hub *WebSocketHub) drop(client *WebSocketClient) {
	delete(hub.clients, client)
	if client.conn != nil {
		client.conn.Close()
	}
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Msg("websocket read error")
			}
			return
		}

		// Clients may send application-level pings on top of protocol pings
		var msg WebSocketMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Type != "ping" {
			continue
		}
		pong := WebSocketMessage{
			Type:      "pong",
			Data:      map[string]string{"status": "ok"},
			Timestamp: time.Now(),
		}
		select {
		case c.send <- pong:
		default:
			return
		}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(wsPingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// GetConnectedClients reports the current connection count.
func (h *WebSocketHandler) GetConnectedClients() int {
	h.hub.mu.RLock()
	defer h.hub.mu.RUnlock()
	return len(h.hub.clients)
}
