package main

import (
	"log"
	"net/http"
	"os"

	"sketch-party/internal/config"
	"sketch-party/internal/db"
	"sketch-party/internal/server"

	"gorm.io/gorm"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	var conn *gorm.DB
	if os.Getenv("DATABASE_URL") != "" {
		var err error
		conn, err = db.Open()
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		if err := db.ConfigurePool(conn, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeSeconds, cfg.DBConnMaxIdleTimeSeconds); err != nil {
			log.Fatalf("database pool setup failed: %v", err)
		}
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
	} else {
		log.Println("DATABASE_URL not set; leaderboard is in-memory only")
	}

	srv := server.New(conn, cfg)
	addr := ":" + cfg.Port
	log.Printf("sketch-party server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		log.Fatal(err)
	}
}
