package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with the timeouts used by leadscout.
// Write timeout is left unset so image uploads over slow links finish.
func New(addr string, handler http.Handler, readHeaderTimeout time.Duration) *http.Server {
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = 5 * time.Second
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       120 * time.Second,
	}
}
