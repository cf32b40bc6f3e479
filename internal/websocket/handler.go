package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches conn to the hub under sessionID and blocks until the
// peer goes away. onMessage runs on the reading goroutine.
func ServeWs(hub *Hub, conn *websocket.Conn, sessionID string, onMessage MessageHandler) {
	client := &Client{
		Hub:       hub,
		Conn:      conn,
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
		onMessage: onMessage,
		logger:    hub.logger,
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
