package main

import (
	"flag" // Command-line flags

	"neuroscan_backend/internal/config" // Custom import path (Config)
	"neuroscan_backend/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	// Optional doctor seeding; doctors cannot self-register
	seedDoctor := flag.Bool("seed-doctor", false, "create a doctor account after migrating")
	name := flag.String("doctor-name", "", "doctor given name")
	surname := flag.String("doctor-surname", "", "doctor family name")
	email := flag.String("doctor-email", "", "doctor login email")
	password := flag.String("doctor-password", "", "doctor password")
	embg := flag.String("doctor-embg", "", "doctor national-id string")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration

	db.Migrate(cfg.DSN()) // Run schema migration

	// Seed the doctor account if requested
	if *seedDoctor {
		db.SeedDoctor(cfg.DSN(), *name, *surname, *email, *password, *embg)
	}
}
