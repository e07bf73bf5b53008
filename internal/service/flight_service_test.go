package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/crew-roster-api/internal/dto"
	"github.com/skyops/crew-roster-api/internal/models"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
)

type flightRepoStub struct {
	flights map[string]*models.Flight
	created []*models.Flight
}

func newFlightRepoStub() *flightRepoStub {
	return &flightRepoStub{flights: map[string]*models.Flight{}}
}

func (s *flightRepoStub) List(ctx context.Context, filter models.FlightFilter) ([]models.Flight, int, error) {
	return nil, 0, nil
}

func (s *flightRepoStub) FindByID(ctx context.Context, id string) (*models.Flight, error) {
	flight, ok := s.flights[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return flight, nil
}

func (s *flightRepoStub) Create(ctx context.Context, flight *models.Flight) error {
	flight.ID = "generated-id"
	s.created = append(s.created, flight)
	return nil
}

func TestFlightCreateNormalisesCodes(t *testing.T) {
	repo := newFlightRepoStub()
	audit := &auditStub{}
	svc := NewFlightService(repo, audit, nil, nil)

	flight, err := svc.Create(context.Background(), dto.CreateFlightRequest{
		FlightNumber:  "pk301",
		Origin:        "khi",
		Destination:   "isb",
		DepartureTime: at(1, 8, 0),
		ArrivalTime:   at(1, 10, 0),
	}, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, "PK301", flight.FlightNumber)
	assert.Equal(t, "KHI", flight.Origin)
	assert.Equal(t, "ISB", flight.Destination)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionFlightCreate, audit.entries[0].Action)
}

func TestFlightCreateRejectsArrivalBeforeDeparture(t *testing.T) {
	repo := newFlightRepoStub()
	svc := NewFlightService(repo, nil, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateFlightRequest{
		FlightNumber:  "PK301",
		Origin:        "KHI",
		Destination:   "ISB",
		DepartureTime: at(1, 10, 0),
		ArrivalTime:   at(1, 8, 0),
	}, "ops@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestFlightGetUnknown(t *testing.T) {
	svc := NewFlightService(newFlightRepoStub(), nil, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
