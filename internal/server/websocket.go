package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
)

// wsClient is one connected live-reload browser.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

func (s *CatalogServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.checkOrigin(r) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: false, // Always verify origin
	})
	if err != nil {
		s.logger.Warn(r.Context(), err, "WebSocket upgrade failed")
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan []byte, 16),
	}

	s.clientsMutex.Lock()
	s.clients[client] = struct{}{}
	s.clientsMutex.Unlock()

	go s.writePump(client)
	go s.readPump(client)
}

// checkOrigin validates the request origin. Only same-host origins and
// entries from server.allowed_origins are accepted.
func (s *CatalogServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Reject connections without an origin header
		return false
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return false
	}

	allowed := []string{
		fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		fmt.Sprintf("localhost:%d", s.config.Server.Port),
		fmt.Sprintf("127.0.0.1:%d", s.config.Server.Port),
	}
	allowed = append(allowed, s.config.Server.AllowedOrigins...)

	for _, host := range allowed {
		if originURL.Host == host {
			return true
		}
	}
	return false
}

// writePump forwards queued broadcast messages to one client.
func (s *CatalogServer) writePump(client *wsClient) {
	for msg := range client.send {
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		err := client.conn.Write(ctx, websocket.MessageText, msg)
		cancel()
		if err != nil {
			s.dropClient(client)
			return
		}
	}
	_ = client.conn.Close(websocket.StatusNormalClosure, "server shutting down")
}

// readPump drains client frames so pings are answered, and detects
// disconnects. Clients never send meaningful payloads.
func (s *CatalogServer) readPump(client *wsClient) {
	for {
		if _, _, err := client.conn.Read(context.Background()); err != nil {
			s.dropClient(client)
			return
		}
	}
}

// broadcast queues a message for every connected client. Slow clients
// are dropped rather than blocking the reload path.
func (s *CatalogServer) broadcast(msg []byte) {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	for client := range s.clients {
		select {
		case client.send <- msg:
		default:
			delete(s.clients, client)
			close(client.send)
		}
	}
}

func (s *CatalogServer) dropClient(client *wsClient) {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		close(client.send)
	}
	_ = client.conn.Close(websocket.StatusNormalClosure, "")
}

// closeClients disconnects all live-reload clients during shutdown.
func (s *CatalogServer) closeClients() {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	for client := range s.clients {
		delete(s.clients, client)
		close(client.send)
	}
}
