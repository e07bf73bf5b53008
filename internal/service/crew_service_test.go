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

type crewRepoStub struct {
	members      map[string]*models.CrewMember
	employeeIDs  map[string]bool
	created      []*models.CrewMember
	updated      []*models.CrewMember
	deactivated  []string
	listResponse []models.CrewMember
	listTotal    int
}

func newCrewRepoStub() *crewRepoStub {
	return &crewRepoStub{members: map[string]*models.CrewMember{}, employeeIDs: map[string]bool{}}
}

func (s *crewRepoStub) List(ctx context.Context, filter models.CrewFilter) ([]models.CrewMember, int, error) {
	return s.listResponse, s.listTotal, nil
}

func (s *crewRepoStub) FindByID(ctx context.Context, id string) (*models.CrewMember, error) {
	member, ok := s.members[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *member
	return &copied, nil
}

func (s *crewRepoStub) ExistsByEmployeeID(ctx context.Context, employeeID, excludeID string) (bool, error) {
	return s.employeeIDs[employeeID], nil
}

func (s *crewRepoStub) Create(ctx context.Context, member *models.CrewMember) error {
	member.ID = "generated-id"
	s.created = append(s.created, member)
	return nil
}

func (s *crewRepoStub) Update(ctx context.Context, member *models.CrewMember) error {
	s.updated = append(s.updated, member)
	return nil
}

func (s *crewRepoStub) Deactivate(ctx context.Context, id string) error {
	if _, ok := s.members[id]; !ok {
		return sql.ErrNoRows
	}
	s.deactivated = append(s.deactivated, id)
	return nil
}

func TestCrewCreateRegistersActiveMember(t *testing.T) {
	repo := newCrewRepoStub()
	audit := &auditStub{}
	svc := NewCrewService(repo, audit, nil, nil)

	member, err := svc.Create(context.Background(), dto.CreateCrewRequest{
		EmployeeID: "LCC020",
		FullName:   "Asma Tariq",
		Role:       "LCC",
	}, "ops@example.com")
	require.NoError(t, err)
	assert.True(t, member.Active)
	assert.Equal(t, models.RoleLead, member.Role)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionCrewCreate, audit.entries[0].Action)
}

func TestCrewCreateRejectsDuplicateEmployeeID(t *testing.T) {
	repo := newCrewRepoStub()
	repo.employeeIDs["LCC001"] = true
	svc := NewCrewService(repo, nil, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateCrewRequest{
		EmployeeID: "LCC001",
		FullName:   "Duplicate Person",
		Role:       "LCC",
	}, "ops@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestCrewCreateRejectsUnknownRole(t *testing.T) {
	svc := NewCrewService(newCrewRepoStub(), nil, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateCrewRequest{
		EmployeeID: "X001",
		FullName:   "Wrong Role",
		Role:       "PILOT",
	}, "ops@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCrewUpdatePatchesOnlyProvidedFields(t *testing.T) {
	repo := newCrewRepoStub()
	phone := "+92-300-1234567"
	repo.members["crew-1"] = &models.CrewMember{ID: "crew-1", EmployeeID: "CC001", FullName: "Old Name", Role: models.RoleSupporting, Phone: &phone, Active: true}
	svc := NewCrewService(repo, nil, nil, nil)

	newName := "New Name"
	member, err := svc.Update(context.Background(), "crew-1", dto.UpdateCrewRequest{FullName: &newName}, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, "New Name", member.FullName)
	require.NotNil(t, member.Phone)
	assert.Equal(t, phone, *member.Phone)
	assert.True(t, member.Active)
}

func TestCrewDeactivateUnknownMember(t *testing.T) {
	svc := NewCrewService(newCrewRepoStub(), nil, nil, nil)

	err := svc.Deactivate(context.Background(), "missing", "ops@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
