package main

import (
	"net/http"

	"cotacao/internal/websocket"
)

var wsHub = websocket.NewHub()

func handleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Serve(wsHub, w, r)
}

// broadcastList notifies connected clients that a list changed, so open
// comparison grids refetch.
func broadcastList(listID, action string) {
	wsHub.BroadcastList(listID, action)
}
