package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/skyops/crew-roster-api/internal/fdtl"
	"github.com/skyops/crew-roster-api/internal/repository"
	"github.com/skyops/crew-roster-api/internal/service"
	"github.com/skyops/crew-roster-api/pkg/config"
	"github.com/skyops/crew-roster-api/pkg/database"
	"github.com/skyops/crew-roster-api/pkg/logger"
)

// Command-line roster build: runs one build over a date window and prints
// the assignment and violation counters.
func main() {
	startFlag := flag.String("start", "", "window start (YYYY-MM-DD), defaults to today")
	daysFlag := flag.Int("days", 0, "window length in days, defaults to ROSTER_DEFAULT_WINDOW_DAYS")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	start := time.Now().UTC().Truncate(24 * time.Hour)
	if *startFlag != "" {
		start, err = time.ParseInLocation("2006-01-02", *startFlag, time.UTC)
		if err != nil {
			log.Fatalf("invalid -start value %q: %v", *startFlag, err)
		}
	}
	days := cfg.Roster.DefaultWindowDays
	if *daysFlag > 0 {
		days = *daysFlag
	}
	end := start.AddDate(0, 0, days)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	builder := service.NewRosterBuilderService(
		repository.NewFlightRepository(db),
		repository.NewCrewRepository(db),
		repository.NewDutyLogRepository(db),
		repository.NewRosterRepository(db),
		nil,
		logr,
		service.RosterBuilderConfig{
			Limits: fdtl.Limits{
				MinRestHours:         cfg.FDTL.MinRestHours,
				MaxFDPHours:          cfg.FDTL.MaxFDPHours,
				MaxDailyFlyHours:     cfg.FDTL.MaxDailyFlyHours,
				MaxWeeklyFlyHours:    cfg.FDTL.MaxWeeklyFlyHours,
				MaxRolling28FlyHours: cfg.FDTL.MaxRolling28FlyHours,
			},
			SupportingPerFlight: cfg.Roster.SupportingPerFlight,
			SeedDutyHistory:     cfg.Roster.SeedDutyHistory,
		},
	)

	result, err := builder.Build(context.Background(), start, end)
	if err != nil {
		log.Printf("roster build failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("Roster built for %s to %s\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
	fmt.Printf("  flights processed: %d\n", result.FlightsProcessed)
	fmt.Printf("  assignments:       %d\n", result.TotalAssignments)
	fmt.Printf("  violations:        %d\n", result.TotalViolations)
	fmt.Printf("  duration:          %s\n", result.Duration)
}
