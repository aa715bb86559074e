package main

import (
	"log"

	"jobmatch-backend/internal/bootstrap"
	"jobmatch-backend/internal/shared/config"
	"jobmatch-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer func() {
		if app.DB != nil {
			app.DB.Close()
		}
	}()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
