package ws

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vigil-labs/vigil/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     CheckOrigin,
}

// Handler upgrades HTTP connections to WebSocket and spawns the read/write
// pumps for the new observer.
type Handler struct {
	hub *hub.Hub
}

func NewHandler(h *hub.Hub) *Handler {
	return &Handler{hub: h}
}

// RegisterRoutes wires the alert stream endpoint.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/ws/alerts", h.ServeAlerts).Methods(http.MethodGet)
}

// ServeAlerts upgrades a GET /ws/alerts request to a WebSocket connection
// and starts pushing alert events until the peer disconnects.
func (h *Handler) ServeAlerts(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader already wrote the error response.
		return
	}

	client := NewClient(h.hub, conn)

	go client.WritePump()
	go client.ReadPump()
}
