package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/maxdcmn/gpuhud/internal/hud"
	"github.com/maxdcmn/gpuhud/internal/utils"
)

const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleWebSocket pushes a snapshot as a JSON text message every interval
// until the peer goes away.
func handleWebSocket(src hud.CounterSource, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.Warn("websocket upgrade failed", "remote", c.ClientIP(), "error", err)
			return
		}
		defer ws.Close()
		utils.Debug("websocket client connected", "remote", c.ClientIP())

		// Reads only serve to notice the close frame.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := ws.ReadMessage(); err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
						utils.Debug("websocket read failed", "remote", c.ClientIP(), "error", err)
					}
					return
				}
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteJSON(src.StatCounters()); err != nil {
				utils.Debug("websocket write failed", "remote", c.ClientIP(), "error", err)
				return
			}
			select {
			case <-closed:
				return
			case <-c.Request.Context().Done():
				ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
				return
			case <-ticker.C:
			}
		}
	}
}
