package main

import (
	"errors"
	"flag"
	"log"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"smartlibrary-backend/internal/config"
)

// Usage:
//
//	migrate -dir migrations up
//	migrate -dir migrations down 1
//	migrate -dir migrations version
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	dir := flag.String("dir", "migrations", "path to the migrations directory")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatalf("failed to load database config: %v", err)
	}

	m, err := migrate.New("file://"+*dir, toPgx5URL(dbConfig.DSN()))
	if err != nil {
		log.Fatalf("failed to initialize migrator: %v", err)
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "drop":
		err = m.Drop()
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatalf("failed to read version: %v", verr)
		}
		log.Printf("version=%d dirty=%v", version, dirty)
		return
	default:
		log.Fatalf("unknown command %q (want up, down, drop or version)", command)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("database is up to date")
		return
	}
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Printf("migration %s completed", command)
}

// The golang-migrate pgx/v5 driver registers the "pgx5" URL scheme.
func toPgx5URL(dsn string) string {
	if strings.HasPrefix(dsn, "postgresql://") {
		return "pgx5://" + strings.TrimPrefix(dsn, "postgresql://")
	}
	if strings.HasPrefix(dsn, "postgres://") {
		return "pgx5://" + strings.TrimPrefix(dsn, "postgres://")
	}
	return dsn
}
