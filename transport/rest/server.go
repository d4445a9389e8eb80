package rest

import (
	"net/http"
	"time"
)

// NewServer builds the single listener for the health check and the websocket endpoint.
// Write and read timeouts do not apply to upgraded connections, the websocket pumps manage their own deadlines.
func NewServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}

// NewRouter mounts /ping and the websocket handler on /ws behind CORS.
func NewRouter(ws http.Handler, cors CORSOptions) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", NewPingHandler().PingHandler)
	mux.Handle("/ws", ws)

	return CORS(cors)(mux)
}
