package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vendomat/vendomat/internal/config"
	"github.com/vendomat/vendomat/internal/infra"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL must be set to run migrations")
	}

	flag.Parse()
	args := flag.Args()

	if len(args) < 1 {
		fmt.Println("Usage: go run cmd/migrate/main.go [command]")
		fmt.Println("Commands: up, down, status, redo")
		os.Exit(1)
	}
	command := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log.Printf("starting migration: %s", command)

	if err := infra.RunMigrations(ctx, cfg.DatabaseURL, command); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	log.Println("migration finished successfully")
}
