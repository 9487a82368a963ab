package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"

	"linkup_server/models"
)

// NewSocketServer initializes the Socket.IO server. Clients join a room
// keyed by their own user id right after connecting; match notifications
// are broadcast into the recipient's room.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, data map[string]string) {
		userID := data["userId"]
		if userID == "" {
			log.Println("Invalid userId in join request")
			return
		}
		log.Printf("Socket %s joined room for user %s\n", c.ID(), userID)
		c.Join(userID)
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("Socket disconnected:", reason)
	})

	return server
}

// Notifier delivers match response events over Socket.IO rooms. It
// implements services.MatchNotifier.
type Notifier struct {
	Server *socketio.Server
}

// NotifyMatchResponse broadcasts a matchResponse event into the addressed
// user's room. Fire and forget: a user without an open socket simply
// misses the push and sees the state on their next fetch.
func (n *Notifier) NotifyMatchResponse(userID string, event models.MatchResponseEvent) {
	n.Server.BroadcastToRoom("/", userID, "matchResponse", event)
}
