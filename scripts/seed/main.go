package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/skyops/crew-roster-api/internal/models"
	"github.com/skyops/crew-roster-api/internal/repository"
	"github.com/skyops/crew-roster-api/pkg/config"
	"github.com/skyops/crew-roster-api/pkg/database"
)

// Seeds a development database: an admin operator, a crew pool large
// enough to cover the daily schedule, and 30 days of flights.
func main() {
	var (
		leadCount       int
		supportingCount int
		days            int
		adminEmail      string
		adminPassword   string
	)
	flag.IntVar(&leadCount, "leads", 20, "number of LCC crew to create")
	flag.IntVar(&supportingCount, "supporting", 55, "number of CC crew to create")
	flag.IntVar(&days, "days", 30, "number of schedule days to create")
	flag.StringVar(&adminEmail, "admin-email", "admin@skyops.local", "admin login email")
	flag.StringVar(&adminPassword, "admin-password", "admin12345", "admin login password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	crewRepo := repository.NewCrewRepository(db)
	flightRepo := repository.NewFlightRepository(db)

	if err := seedAdmin(ctx, userRepo, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	crewTotal, err := seedCrew(ctx, crewRepo, leadCount, supportingCount)
	if err != nil {
		log.Fatalf("failed to seed crew: %v", err)
	}
	flightTotal, err := seedFlights(ctx, flightRepo, days)
	if err != nil {
		log.Fatalf("failed to seed flights: %v", err)
	}

	fmt.Printf("Seed complete: 1 admin, %d crew, %d flights\n", crewTotal, flightTotal)
}

func seedAdmin(ctx context.Context, repo *repository.UserRepository, email, password string) error {
	if existing, err := repo.FindByEmail(ctx, email); err == nil && existing != nil {
		log.Printf("admin user %s already exists, skipping", email)
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return repo.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Roster Admin",
		Role:         models.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func seedCrew(ctx context.Context, repo *repository.CrewRepository, leads, supporting int) (int, error) {
	now := time.Now().UTC()
	total := 0
	for i := 1; i <= leads; i++ {
		member := &models.CrewMember{
			ID:         uuid.NewString(),
			EmployeeID: fmt.Sprintf("LCC%03d", i),
			FullName:   fmt.Sprintf("Lead Crew %02d", i),
			Role:       models.RoleLead,
			Active:     true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := repo.Create(ctx, member); err != nil {
			return total, fmt.Errorf("create %s: %w", member.EmployeeID, err)
		}
		total++
	}
	for i := 1; i <= supporting; i++ {
		member := &models.CrewMember{
			ID:         uuid.NewString(),
			EmployeeID: fmt.Sprintf("CC%03d", i),
			FullName:   fmt.Sprintf("Cabin Crew %02d", i),
			Role:       models.RoleSupporting,
			Active:     true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := repo.Create(ctx, member); err != nil {
			return total, fmt.Errorf("create %s: %w", member.EmployeeID, err)
		}
		total++
	}
	return total, nil
}

// A fixed daily pattern of 12 domestic sectors. Departure hours are spread
// across the day so consecutive assignments exercise the rest checks.
var dailyLegs = []struct {
	number   string
	origin   string
	dest     string
	depHour  int
	blockMin int
	aircraft string
}{
	{"PK301", "KHI", "ISB", 6, 115, "A320"},
	{"PK302", "ISB", "KHI", 9, 115, "A320"},
	{"PK303", "KHI", "LHE", 7, 95, "A320"},
	{"PK304", "LHE", "KHI", 10, 95, "A320"},
	{"PK305", "ISB", "LHE", 8, 55, "ATR72"},
	{"PK306", "LHE", "ISB", 11, 55, "ATR72"},
	{"PK307", "KHI", "PEW", 12, 130, "A320"},
	{"PK308", "PEW", "KHI", 16, 130, "A320"},
	{"PK309", "ISB", "GIL", 13, 70, "ATR72"},
	{"PK310", "GIL", "ISB", 15, 70, "ATR72"},
	{"PK311", "LHE", "UET", 17, 100, "A320"},
	{"PK312", "UET", "LHE", 20, 100, "A320"},
}

func seedFlights(ctx context.Context, repo *repository.FlightRepository, days int) (int, error) {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	total := 0
	for d := 0; d < days; d++ {
		for _, leg := range dailyLegs {
			dep := day.AddDate(0, 0, d).Add(time.Duration(leg.depHour) * time.Hour)
			aircraft := leg.aircraft
			flight := &models.Flight{
				ID:            uuid.NewString(),
				FlightNumber:  leg.number,
				Origin:        leg.origin,
				Destination:   leg.dest,
				DepartureTime: dep,
				ArrivalTime:   dep.Add(time.Duration(leg.blockMin) * time.Minute),
				AircraftType:  &aircraft,
				CreatedAt:     time.Now().UTC(),
			}
			if err := repo.Create(ctx, flight); err != nil {
				return total, fmt.Errorf("create %s on %s: %w", leg.number, dep.Format("2006-01-02"), err)
			}
			total++
		}
	}
	return total, nil
}
