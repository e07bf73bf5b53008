package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/crew-roster-api/internal/models"
	"github.com/skyops/crew-roster-api/internal/service"
	"github.com/skyops/crew-roster-api/pkg/response"
)

type flightReaderMock struct {
	flights []models.Flight
}

func (m *flightReaderMock) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Flight, error) {
	return m.flights, nil
}

type crewReaderMock struct {
	leads, supporting []models.CrewMember
}

func (m *crewReaderMock) ListActiveByRole(ctx context.Context, role models.CrewRole) ([]models.CrewMember, error) {
	if role == models.RoleLead {
		return m.leads, nil
	}
	return m.supporting, nil
}

type writerMock struct {
	calls int
}

func (m *writerMock) SaveBuildOutput(ctx context.Context, start, end time.Time, assignments []models.Assignment, duties []models.DutyPeriod, violations []models.Violation) error {
	m.calls++
	return nil
}

func newBuildHandler(writer *writerMock) *RosterHandler {
	dep := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	flights := &flightReaderMock{flights: []models.Flight{{
		ID: "f1", FlightNumber: "PK301", Origin: "KHI", Destination: "ISB",
		DepartureTime: dep, ArrivalTime: dep.Add(2 * time.Hour),
	}}}
	crew := &crewReaderMock{
		leads:      []models.CrewMember{{ID: "L1", EmployeeID: "LCC001", Role: models.RoleLead, Active: true}},
		supporting: []models.CrewMember{{ID: "C1", EmployeeID: "CC001", Role: models.RoleSupporting, Active: true}},
	}
	builder := service.NewRosterBuilderService(flights, crew, nil, writer, nil, nil, service.RosterBuilderConfig{SupportingPerFlight: 1})
	return NewRosterHandler(builder, nil, nil)
}

func postBuild(t *testing.T, handler *RosterHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/roster/build", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	handler.Build(c)
	return w
}

func TestRosterBuildEndpoint(t *testing.T) {
	writer := &writerMock{}
	handler := newBuildHandler(writer)

	w := postBuild(t, handler, `{"start_date":"2024-03-01","end_date":"2024-03-08"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, writer.calls)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["total_assignments"])
	assert.Equal(t, float64(0), data["total_violations"])
}

func TestRosterBuildEndpointRejectsBadDates(t *testing.T) {
	writer := &writerMock{}
	handler := newBuildHandler(writer)

	w := postBuild(t, handler, `{"start_date":"01/03/2024","end_date":"2024-03-08"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, writer.calls)
}

func TestRosterBuildEndpointRejectsInvertedWindow(t *testing.T) {
	writer := &writerMock{}
	handler := newBuildHandler(writer)

	w := postBuild(t, handler, `{"start_date":"2024-03-08","end_date":"2024-03-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, writer.calls)
}

func TestViolationListRejectsUnknownKind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewViolationHandler(&violationListerMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/violations?kind=SOMETHING", nil)
	c.Request = req
	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type violationListerMock struct{}

func (m *violationListerMock) List(ctx context.Context, filter models.ViolationFilter) ([]models.ViolationDetail, int, error) {
	return nil, 0, nil
}
