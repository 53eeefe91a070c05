// Command migrate applies the database schema.
//
// Connect only auto-migrates outside production, so deployments run this
// explicitly before rolling out a new server build.
package main

import (
	"log"

	"savora/internal/config"
	"savora/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("✓ Schema migration complete")
}
