package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tally/internal/planner"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

const alertRefreshInterval = 30 * time.Second

// alertConn maintains one alert-stream connection with a client.
type alertConn struct {
	conn    *websocket.Conn
	planner *planner.Planner
}

// HandleAlertStream upgrades the connection and pushes the ranked alert
// list immediately and on every refresh tick until the client leaves.
func (s *Server) HandleAlertStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	ac := &alertConn{conn: conn, planner: s.planner}
	go ac.writePump()
	go ac.readPump()
}

// readPump drains client frames so pong handling keeps the connection
// alive; the stream is one-directional otherwise.
func (ac *alertConn) readPump() {
	defer ac.conn.Close()

	ac.conn.SetReadLimit(512)
	ac.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	ac.conn.SetPongHandler(func(string) error {
		ac.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := ac.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump sends the current alert snapshot, then refreshes it on a
// ticker until a write fails.
func (ac *alertConn) writePump() {
	ticker := time.NewTicker(alertRefreshInterval)
	defer func() {
		ticker.Stop()
		ac.conn.Close()
	}()

	if err := ac.sendAlerts(); err != nil {
		return
	}

	for range ticker.C {
		ac.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := ac.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
		if err := ac.sendAlerts(); err != nil {
			return
		}
	}
}

func (ac *alertConn) sendAlerts() error {
	alerts, err := ac.planner.SmartAlerts(time.Now())
	if err != nil {
		log.Printf("Alert stream: %v", err)
		return nil // keep the connection; stock reads may recover
	}

	payload, err := json.Marshal(gin.H{"alerts": alerts, "count": len(alerts)})
	if err != nil {
		log.Printf("Alert stream: marshal: %v", err)
		return nil
	}

	ac.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return ac.conn.WriteMessage(websocket.TextMessage, payload)
}
