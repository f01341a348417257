package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDropsSlowConsumerWithoutClosingSend(t *testing.T) {
	h := NewWebSocketHandler(nil)

	client := &WebSocketClient{
		tenantID: "t1",
		send:     make(chan WebSocketMessage, 1),
		hub:      h.hub,
	}

	h.hub.register <- client
	welcome := <-client.send
	require.Equal(t, "connection", welcome.Type)

	// Fill the buffer so the next broadcast finds a slow consumer
	client.send <- WebSocketMessage{Type: "order_created"}
	h.BroadcastToTenant("t1", "order_status_changed", nil)

	require.Eventually(t, func() bool {
		return h.GetConnectedClients() == 0
	}, time.Second, 5*time.Millisecond, "slow consumer should be dropped from the hub")

	// The send channel must still be open after the drop: the read side may
	// be queueing a pong concurrently, and sending on a closed channel panics
	buffered := <-client.send
	assert.Equal(t, "order_created", buffered.Type)
	client.send <- WebSocketMessage{Type: "pong"}

	// Teardown through unregister closes the channel exactly once
	h.hub.unregister <- client
	pong := <-client.send
	assert.Equal(t, "pong", pong.Type)
	_, open := <-client.send
	assert.False(t, open, "unregister should close the send channel")
}

func TestHubBroadcastIsTenantScoped(t *testing.T) {
	h := NewWebSocketHandler(nil)

	mine := &WebSocketClient{tenantID: "t1", send: make(chan WebSocketMessage, 4), hub: h.hub}
	other := &WebSocketClient{tenantID: "t2", send: make(chan WebSocketMessage, 4), hub: h.hub}

	h.hub.register <- mine
	h.hub.register <- other
	require.Equal(t, "connection", (<-mine.send).Type)
	require.Equal(t, "connection", (<-other.send).Type)

	h.BroadcastToTenant("t1", "order_created", map[string]string{"order": "20250601-001"})

	msg := <-mine.send
	assert.Equal(t, "order_created", msg.Type)
	assert.Equal(t, "t1", msg.TenantID)

	select {
	case stray := <-other.send:
		t.Fatalf("tenant t2 received a t1 event: %+v", stray)
	case <-time.After(50 * time.Millisecond):
	}

	h.hub.unregister <- mine
	h.hub.unregister <- other
}
