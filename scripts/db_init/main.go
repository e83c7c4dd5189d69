package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	dbfs "github.com/garnizeh/quickgig/db"
	"github.com/garnizeh/quickgig/internal/config"
	"github.com/garnizeh/quickgig/internal/db"
	"github.com/garnizeh/quickgig/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)

	database, err := db.New(ctx, cfg.DSN(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	seeded, err := db.SeedAdmin(ctx, database, db.AdminAccount{Email: cfg.Admin.Email, Password: cfg.Admin.Password, Name: cfg.Admin.Name})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
		os.Exit(1)
	}

	if seeded {
		fmt.Printf("Database initialized successfully. Admin account %s created.\n", cfg.Admin.Email)
		return
	}
	fmt.Println("Database initialized successfully.")
}
