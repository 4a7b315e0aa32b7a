package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsWriter adapts a websocket connection to the stream writer: every frame
// write becomes one text message.
type wsWriter struct {
	conn *websocket.Conn
}

func (w *wsWriter) Write(p []byte) (int, error) {
	if err := w.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ComputerWS serves the same composed frame stream over a websocket: the
// client sends one request message and receives one text message per frame.
func (h *Handlers) ComputerWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var req computerRequest
	if err := conn.ReadJSON(&req); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway) {
			h.Logger.Printf("WebSocket read error: %v", err)
		}
		return
	}

	strm, apiErr := h.runPipeline(c.Request.Context(), &req)
	if apiErr != nil {
		if err := conn.WriteJSON(apiErr.payload); err != nil {
			h.Logger.Printf("WebSocket write error: %v", err)
		}
		return
	}

	if err := strm.WriteTo(&wsWriter{conn: conn}); err != nil {
		h.Logger.Printf("WebSocket stream error: %v", err)
	}
}
