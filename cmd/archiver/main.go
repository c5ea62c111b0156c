package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"staff-match/internal/config"
	"staff-match/internal/database"
	"staff-match/internal/database/migration"
	dbpostgres "staff-match/internal/database/postgres"
	"staff-match/internal/repository"
	"staff-match/internal/usecase"

	"github.com/joho/godotenv"
)

// archiver sweeps finished assignments into assignment_history so the
// fairness lookback keeps seeing past workload without the live table
// growing unbounded. Meant for cron; the HTTP archive endpoint does the
// same sweep on demand.
func main() {
	asOfRaw := flag.String("as-of", "", "archive assignments ended before this date (YYYY-MM-DD, default today)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "[staff-match-archiver] ", log.LstdFlags)

	var asOf time.Time
	if raw := strings.TrimSpace(*asOfRaw); raw != "" {
		asOf, err = time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			log.Fatalf("invalid -as-of date %q: %v", raw, err)
		}
	}

	connCtx, connCancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := dbpostgres.Connect(connCtx, cfg.Database)
	connCancel()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	r := migration.Runner{Dir: "migrations"}
	if err := r.Run(migCtx, db.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	archived, err := run(db, asOf, logger)
	if err != nil {
		log.Fatalf("archival failed: %v", err)
	}
	logger.Printf("archived %d assignments", archived)
}

func run(db database.DB, asOf time.Time, logger *log.Logger) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	uc := usecase.NewArchiveUsecase(repository.NewPostgresAssignmentRepository(db), logger)
	return uc.ArchiveCompleted(ctx, asOf)
}
