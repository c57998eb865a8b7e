package policy

import (
	"testing"

	"github.com/lucasmrt/planify-api/internal/models"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint64) *uint64 { return &v }

var (
	maintainer = Caller{ID: 1, Role: models.RoleMaintainer}
	acmeAdmin  = Caller{ID: 2, Role: models.RoleAdmin, CompanyID: uintPtr(10)}
	acmeUser   = Caller{ID: 3, Role: models.RoleUser, CompanyID: uintPtr(10)}
	globexUser = Caller{ID: 4, Role: models.RoleUser, CompanyID: uintPtr(20)}
	floater    = Caller{ID: 5, Role: models.RoleUser}
)

func TestUserScope(t *testing.T) {
	require.True(t, UserScope(maintainer).All)

	scope := UserScope(acmeAdmin)
	require.False(t, scope.All)
	require.Equal(t, uint64(10), *scope.CompanyID)

	require.True(t, UserScope(floater).Empty())
}

func TestCanReadUser(t *testing.T) {
	acmeTarget := &models.User{ID: 99, CompanyID: uintPtr(10)}
	globexTarget := &models.User{ID: 98, CompanyID: uintPtr(20)}

	require.True(t, CanReadUser(maintainer, acmeTarget))
	require.True(t, CanReadUser(acmeUser, acmeTarget))
	require.False(t, CanReadUser(acmeUser, globexTarget))
	require.False(t, CanReadUser(globexUser, acmeTarget))

	self := &models.User{ID: floater.ID}
	require.True(t, CanReadUser(floater, self))
}

func TestCanSeeUserEmail(t *testing.T) {
	target := &models.User{ID: 99, CompanyID: uintPtr(10)}

	require.True(t, CanSeeUserEmail(maintainer, target))
	require.False(t, CanSeeUserEmail(acmeAdmin, target))
	require.False(t, CanSeeUserEmail(acmeUser, target))

	self := &models.User{ID: acmeUser.ID, CompanyID: uintPtr(10)}
	require.True(t, CanSeeUserEmail(acmeUser, self))
}

func TestUserMutationRights(t *testing.T) {
	require.True(t, CanCreateUser(maintainer))
	require.False(t, CanCreateUser(acmeAdmin))

	require.True(t, CanUpdateUser(maintainer, 99))
	require.True(t, CanUpdateUser(acmeUser, acmeUser.ID))
	require.False(t, CanUpdateUser(acmeAdmin, 99))

	require.True(t, CanChangeUserRole(maintainer))
	require.False(t, CanChangeUserRole(acmeAdmin))

	require.True(t, CanDeleteUser(maintainer))
	require.False(t, CanDeleteUser(acmeAdmin))
	require.False(t, CanDeleteUser(acmeUser))
}

func TestCompanyScope(t *testing.T) {
	scope, ok := CompanyScope(maintainer)
	require.True(t, ok)
	require.True(t, scope.All)

	scope, ok = CompanyScope(acmeAdmin)
	require.True(t, ok)
	require.Equal(t, uint64(10), *scope.CompanyID)

	_, ok = CompanyScope(acmeUser)
	require.False(t, ok)
}

func TestCompanyRights(t *testing.T) {
	require.True(t, CanMutateCompany(maintainer))
	require.False(t, CanMutateCompany(acmeAdmin))

	require.True(t, CanSeeCompanyMemberEmail(maintainer, 20))
	require.True(t, CanSeeCompanyMemberEmail(acmeAdmin, 10))
	require.False(t, CanSeeCompanyMemberEmail(acmeAdmin, 20))
	require.False(t, CanSeeCompanyMemberEmail(acmeUser, 10))
}

func TestPlanningScope(t *testing.T) {
	require.True(t, PlanningScope(maintainer, nil).All)

	filtered := PlanningScope(maintainer, uintPtr(20))
	require.Equal(t, uint64(20), *filtered.CompanyID)

	// Non-maintainers cannot escape their own company with the filter.
	scoped := PlanningScope(acmeUser, uintPtr(20))
	require.Equal(t, uint64(10), *scoped.CompanyID)
}

func TestPlanningRights(t *testing.T) {
	require.True(t, CanCreatePlanning(maintainer, 20))
	require.True(t, CanCreatePlanning(acmeAdmin, 10))
	require.False(t, CanCreatePlanning(acmeAdmin, 20))
	require.False(t, CanCreatePlanning(acmeUser, 10))

	require.True(t, CanMutatePlanning(acmeAdmin, 10))
	require.False(t, CanMutatePlanning(acmeUser, 10))
}

func TestEventRights(t *testing.T) {
	require.True(t, CanCreateEvent(maintainer, 10))
	require.True(t, CanCreateEvent(acmeUser, 10))
	require.False(t, CanCreateEvent(acmeUser, 20))
	require.False(t, CanCreateEvent(floater, 10))

	require.True(t, CanMutateEvent(maintainer, 99))
	require.True(t, CanMutateEvent(acmeUser, acmeUser.ID))
	require.False(t, CanMutateEvent(acmeAdmin, acmeUser.ID))
}

func TestCanManageMembership(t *testing.T) {
	acmeTarget := &models.User{ID: 99, CompanyID: uintPtr(10)}
	globexTarget := &models.User{ID: 98, CompanyID: uintPtr(20)}
	unassigned := &models.User{ID: 97}

	require.True(t, CanManageMembership(maintainer, globexTarget, 10))
	require.True(t, CanManageMembership(acmeUser, acmeTarget, 10))
	require.False(t, CanManageMembership(acmeUser, globexTarget, 10))
	require.False(t, CanManageMembership(acmeUser, unassigned, 10))
	require.False(t, CanManageMembership(globexUser, acmeTarget, 10))
}

func TestNotificationRights(t *testing.T) {
	require.True(t, CanCreateNotificationFor(maintainer, 99))
	require.True(t, CanCreateNotificationFor(acmeUser, acmeUser.ID))
	require.False(t, CanCreateNotificationFor(acmeUser, 99))

	require.True(t, CanReadNotification(acmeUser, acmeUser.ID))
	require.False(t, CanReadNotification(maintainer, acmeUser.ID))

	require.True(t, CanDeleteNotification(maintainer, acmeUser.ID))
	require.True(t, CanDeleteNotification(acmeUser, acmeUser.ID))
	require.False(t, CanDeleteNotification(acmeAdmin, acmeUser.ID))
}
