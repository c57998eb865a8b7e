package services

import (
	"testing"

	"github.com/lucasmrt/planify-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestPlanningService_CreateAsAdmin(t *testing.T) {
	env := setupTestEnv(t)
	service := NewPlanningService(env.planningRepo, env.companyRepo)
	acme := env.createCompany(t, "Acme")
	admin := asCaller(env.createUser(t, "admin@example.com", models.RoleAdmin, &acme.ID))

	planning, err := service.Create(admin, CreatePlanningInput{Name: "Q1"})
	require.NoError(t, err)
	require.Equal(t, acme.ID, planning.CompanyID)
}

func TestPlanningService_CreateAsMaintainerNeedsCompanyID(t *testing.T) {
	env := setupTestEnv(t)
	service := NewPlanningService(env.planningRepo, env.companyRepo)
	maintainer := asCaller(env.createUser(t, "root@example.com", models.RoleMaintainer, nil))
	acme := env.createCompany(t, "Acme")

	_, err := service.Create(maintainer, CreatePlanningInput{Name: "Q1"})
	require.ErrorIs(t, err, ErrCompanyIDRequired)

	planning, err := service.Create(maintainer, CreatePlanningInput{Name: "Q1", CompanyID: &acme.ID})
	require.NoError(t, err)
	require.Equal(t, acme.ID, planning.CompanyID)
}

func TestPlanningService_CreateForbiddenForUser(t *testing.T) {
	env := setupTestEnv(t)
	service := NewPlanningService(env.planningRepo, env.companyRepo)
	acme := env.createCompany(t, "Acme")
	user := asCaller(env.createUser(t, "user@example.com", models.RoleUser, &acme.ID))

	_, err := service.Create(user, CreatePlanningInput{Name: "Q1"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestPlanningService_NameUniquePerCompany(t *testing.T) {
	env := setupTestEnv(t)
	service := NewPlanningService(env.planningRepo, env.companyRepo)
	maintainer := asCaller(env.createUser(t, "root@example.com", models.RoleMaintainer, nil))
	acme := env.createCompany(t, "Acme")
	globex := env.createCompany(t, "Globex")
	env.createPlanning(t, "Q1", acme.ID)

	_, err := service.Create(maintainer, CreatePlanningInput{Name: "q1", CompanyID: &acme.ID})
	require.ErrorIs(t, err, ErrPlanningExists)

	// The same name in another company is fine.
	_, err = service.Create(maintainer, CreatePlanningInput{Name: "Q1", CompanyID: &globex.ID})
	require.NoError(t, err)
}

func TestPlanningService_ListScoping(t *testing.T) {
	env := setupTestEnv(t)
	service := NewPlanningService(env.planningRepo, env.companyRepo)
	acme := env.createCompany(t, "Acme")
	globex := env.createCompany(t, "Globex")
	env.createPlanning(t, "Q1", acme.ID)
	env.createPlanning(t, "Q2", globex.ID)
	maintainer := env.createUser(t, "root@example.com", models.RoleMaintainer, nil)
	user := env.createUser(t, "user@example.com", models.RoleUser, &acme.ID)

	all, err := service.List(asCaller(maintainer), nil, 1, 20)
	require.NoError(t, err)
	require.Len(t, all, 2)

	filtered, err := service.List(asCaller(maintainer), &globex.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	// Filtering by a company that does not exist is a lookup failure.
	missing := uint64(9999)
	_, err = service.List(asCaller(maintainer), &missing, 1, 20)
	require.ErrorIs(t, err, ErrCompanyNotFound)

	scoped, err := service.List(asCaller(user), nil, 1, 20)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, acme.ID, scoped[0].CompanyID)
}

func TestPlanningService_DeleteCascadesEvents(t *testing.T) {
	env := setupTestEnv(t)
	service := NewPlanningService(env.planningRepo, env.companyRepo)
	maintainer := env.createUser(t, "root@example.com", models.RoleMaintainer, nil)
	acme := env.createCompany(t, "Acme")
	planning := env.createPlanning(t, "Q1", acme.ID)
	member := env.createUser(t, "alice@example.com", models.RoleUser, &acme.ID)

	eventService := NewEventService(env.eventRepo, env.planningRepo, env.companyRepo, env.userRepo, env.notificationRepo)
	_, err := eventService.Create(asCaller(member), CreateEventInput{
		Name:       "Kickoff",
		StartDate:  testStart,
		EndDate:    testEnd,
		PlanningID: planning.ID,
	})
	require.NoError(t, err)

	snapshot, err := service.Delete(asCaller(maintainer), planning.ID)
	require.NoError(t, err)
	require.Equal(t, "Q1", snapshot.Name.String())

	var events, memberships int64
	env.db.Model(&models.Event{}).Count(&events)
	env.db.Model(&models.EventMembership{}).Count(&memberships)
	require.Zero(t, events)
	require.Zero(t, memberships)
}
