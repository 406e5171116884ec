package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"bakeshop/m/internal/api"
	"bakeshop/m/internal/bakery"
	"bakeshop/m/internal/config"
	"bakeshop/m/internal/database"
	"bakeshop/m/internal/migrations"
	"bakeshop/m/internal/store"
	"bakeshop/m/internal/syncblob"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	model := bakery.Load(store.New(db))

	var remote *syncblob.Client
	if cfg.Sync.Configured() {
		client, err := syncblob.New(context.Background(), cfg.Sync)
		if err != nil {
			log.Printf("remote sync disabled: %v", err)
		} else {
			remote = client
		}
	} else {
		log.Printf("remote sync not configured, running local-only")
	}

	handler := api.New(model, remote, cfg.ShopName)

	log.Printf("%s server starting on :%s", cfg.ShopName, cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
