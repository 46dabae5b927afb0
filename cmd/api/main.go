package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/mothernatural/wellness-backend/internal/config"
	"github.com/mothernatural/wellness-backend/internal/db"
	"github.com/mothernatural/wellness-backend/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}
	if err := db.SeedGameDefaults(conn); err != nil {
		log.Printf("game defaults seed error: %v", err)
	}

	srv := server.New(conn, cfg)

	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
