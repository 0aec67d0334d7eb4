package main

import (
	"log"

	"github.com/ManuelReschke/ShopLedger/internal/pkg/database"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/env"
)

// seed upserts the reference countries, plans and pricing. Safe to re-run.
func main() {
	env.SetupEnvFile()
	database.SetupDatabase()

	if err := database.SeedCatalog(database.GetDB()); err != nil {
		log.Fatalf("Seeding the catalog failed: %v", err)
	}
	log.Println("Catalog seeded")
}
