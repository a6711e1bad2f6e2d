package web

import (
	"encoding/json"
	"net/http"

	"github.com/denwilliams/go-lumen-mqtt/internal/command"
	"github.com/denwilliams/go-lumen-mqtt/internal/logging"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// CreateHandler builds the HTTP surface: prometheus metrics, a health
// probe, and a WebSocket command ingress feeding the dispatcher.
func CreateHandler(d *command.Dispatcher) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/ws", handleCommands(d))
	return mux
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// frame is a command payload plus the device it addresses. The command
// fields ride along in the same object and are decoded by the
// dispatcher.
type frame struct {
	Device string `json:"device"`
}

type errorReply struct {
	Error string `json:"error"`
}

// handleCommands reads framed command messages off a WebSocket. Decode
// failures are answered to the peer and the connection stays open;
// only transport errors end the session.
func handleCommands(d *command.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Error("Failed to upgrade connection: %s", err)
			return
		}
		defer conn.Close()

		logging.Info("WebSocket client connected: %s", r.RemoteAddr)

		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logging.Warn("WebSocket connection error: %s", err)
				}
				return
			}

			var f frame
			if err := json.Unmarshal(message, &f); err != nil || f.Device == "" {
				reply(conn, "message must name a device")
				continue
			}

			if err := d.HandleMessage(r.Context(), f.Device, message); err != nil {
				reply(conn, err.Error())
			}
		}
	}
}

func reply(conn *websocket.Conn, msg string) {
	if err := conn.WriteJSON(errorReply{Error: msg}); err != nil {
		logging.Warn("Failed to write error reply: %s", err)
	}
}
