package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/wire"
	"github.com/rs/cors"
	"github.com/thaongo/openbank-hub/core"
	"github.com/thaongo/openbank-hub/handler/api"
	"github.com/thaongo/openbank-hub/handler/hc"
	"github.com/thaongo/openbank-hub/handler/ws"
)

var serverSet = wire.NewSet(
	api.New,
	ws.New,
	provideServer,
)

func provideServer(apiHandler *api.Server, wsHandler *ws.Server, accounts core.AccountStore) *http.Server {
	m := chi.NewMux()
	m.Use(middleware.RealIP)
	m.Use(middleware.Logger)
	m.Use(middleware.Recoverer)
	m.Use(cors.AllowAll().Handler)

	m.Mount("/", apiHandler.Handler())
	m.Mount("/ws", wsHandler.Handler())
	m.Mount("/health", hc.Handler(version, accounts))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", opt.port),
		Handler: m,
	}
}
