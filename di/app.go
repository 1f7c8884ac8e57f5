package di

import (
	"lodge/internal/poller"
	"lodge/transport/http"
)

// App is everything main starts: the HTTP server and the background refresher.
type App struct {
	HTTP   *http.HTTP
	Poller *poller.Poller
}
