package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/database"
	"github.com/edunexus/schoolhub/internal/logger"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/validator"
)

func main() {
	var (
		path     string
		branchID int
	)
	flag.StringVar(&path, "file", "", "Admission workbook (.xlsx) in the import template layout")
	flag.IntVar(&branchID, "branch", 0, "Branch ID the students are admitted to")
	flag.Parse()
	if path == "" || branchID <= 0 {
		fmt.Println("Usage: import-students -file students.xlsx -branch <id>")
		return
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	validator.Setup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Publishing through Redis lets running servers refresh open portals.
	bus := refresh.NewBus(0, log)
	defer bus.Close()
	events := refresh.NewRedisBridge(rdb, bus, log)

	studentService := service.NewStudentService(
		repository.NewStudentRepository(pool),
		repository.NewClassRepository(pool),
		repository.NewUserRepository(pool),
		events,
		log,
	)

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to open workbook")
	}
	defer f.Close()

	fmt.Printf("=== Importing students into branch %d ===\n", branchID)

	result, err := studentService.Import(ctx, branchID, f)
	if err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	for _, e := range result.Errors {
		fmt.Printf("Row %d: %s\n", e.Row, e.Message)
	}
	fmt.Printf("\nImport completed! %d imported, %d skipped.\n", result.Imported, result.Skipped)
}
