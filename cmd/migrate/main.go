package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/ledger/backend/internal/infrastructure/config"
	"github.com/ledger/backend/internal/infrastructure/logger"
	"github.com/ledger/backend/internal/infrastructure/migration"
)

const usage = `Usage: migrate <command> [arguments]

Commands:
  up              apply all pending migrations
  down            roll back the most recent migration
  steps <n>       migrate forward (positive) or back (negative) n steps
  version         print the current schema version
  force <v>       mark the schema as version v without running anything
  create <name>   create a new pair of migration files
  list            list the available migrations
`

func main() {
	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "migrations", "directory holding migration files")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	// create and list work without a database
	switch args[0] {
	case "create":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "migrate create requires a name")
			os.Exit(2)
		}
		file, err := migration.CreateMigration(migrationsDir, args[1])
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		fmt.Println(file.UpPath)
		fmt.Println(file.DownPath)
		return
	case "list":
		names, err := migration.ListMigrations(migrationsDir)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	migrator, err := migration.New(db, migrationsDir, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Error("Error closing migrator", zap.Error(err))
		}
	}()

	switch args[0] {
	case "up":
		if err := migrator.Up(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Migrations applied")
	case "down":
		if err := migrator.Steps(-1); err != nil {
			log.Fatal("Rollback failed", zap.Error(err))
		}
		log.Info("Rolled back one migration")
	case "steps":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "migrate steps requires a count")
			os.Exit(2)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid step count %q\n", args[1])
			os.Exit(2)
		}
		if err := migrator.Steps(n); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Migrations applied", zap.Int("steps", n))
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			log.Fatal("Failed to read version", zap.Error(err))
		}
		fmt.Printf("version: %d dirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "migrate force requires a version")
			os.Exit(2)
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid version %q\n", args[1])
			os.Exit(2)
		}
		if err := migrator.Force(v); err != nil {
			log.Fatal("Force failed", zap.Error(err))
		}
		log.Info("Schema version forced", zap.Int("version", v))
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}
