package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/inkfade/IFS-BookingService/internal/config"
	"github.com/inkfade/IFS-BookingService/migrations"
)

func main() {
	configPath := flag.String("config", "config.toml", "путь к файлу конфигурации")
	down := flag.Bool("down", false, "откатить все миграции")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatalf("Failed to open migration source: %v", err)
	}

	db := cfg.Database
	databaseURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		db.User, db.Password, db.Host, db.Port, db.DBName, db.SSLMode)

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		log.Fatalf("Failed to init migrator: %v", err)
	}
	defer m.Close()

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("No schema changes to apply")
		return
	}
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations applied successfully")
}
