package main

import (
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	mandel "github.com/marben/mandelview"
)

// webServer creates server serving files in the static folder
// and the websocket endpoint running render sessions
func webServer(addr, static string, cfg mandel.Config) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(cfg))
	mux.Handle("/", http.FileServer(http.Dir(static)))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://localhost%s", addr)
	return srv
}

// websocketHandler handles the http ws endpoint
// every accepted websocket runs its own session until the client quits or disconnects
func websocketHandler(cfg mandel.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}

		log.Printf("got connection from: %s", r.RemoteAddr)
		err = serveSession(r.Context(), c, cfg)
		switch {
		case err == nil:
			c.Close(websocket.StatusNormalClosure, "")
		case websocket.CloseStatus(err) != -1:
			// client closed the socket
			c.CloseNow()
		default:
			log.Printf("session %s: %v", r.RemoteAddr, err)
			c.Close(websocket.StatusInternalError, "render session failed")
		}
		log.Printf("connection from %s done", r.RemoteAddr)
	}
}
