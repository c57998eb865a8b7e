// Package policy is the single authorization checkpoint for every resource
// handler. All decisions are pure functions of the caller and the target, so
// the role/visibility table can be tested without storage or transport.
//
// Role layering is strict: maintainer bypasses all company scoping; admin is
// confined to exactly one company (their own); a plain user can read
// company-scoped lists but has no mutation rights over companies or plannings
// and only self-mutation rights over users.
package policy

import "github.com/lucasmrt/planify-api/internal/models"

// Caller is the authenticated identity derived from a request's bearer token.
// The role and company are re-read from the store per request, never trusted
// from the request body.
type Caller struct {
	ID        uint64
	Role      models.Role
	CompanyID *uint64
}

func (c Caller) IsMaintainer() bool {
	return c.Role == models.RoleMaintainer
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// InCompany reports whether the caller belongs to the given company.
func (c Caller) InCompany(companyID uint64) bool {
	return c.CompanyID != nil && *c.CompanyID == companyID
}

// Scope restricts a listing to a set of rows. All means unrestricted;
// otherwise rows are filtered by CompanyID, and a nil CompanyID yields an
// empty result (the caller has no company to see).
type Scope struct {
	All       bool
	CompanyID *uint64
}

// Empty reports whether the scope matches no rows at all.
func (s Scope) Empty() bool {
	return !s.All && s.CompanyID == nil
}

// --- User ---

// UserScope scopes user listings: maintainers enumerate everyone, everyone
// else sees their own company.
func UserScope(c Caller) Scope {
	if c.IsMaintainer() {
		return Scope{All: true}
	}
	return Scope{CompanyID: c.CompanyID}
}

// CanReadUser reports whether the caller may see the target row at all.
func CanReadUser(c Caller, target *models.User) bool {
	if c.IsMaintainer() || c.ID == target.ID {
		return true
	}
	return target.CompanyID != nil && c.InCompany(*target.CompanyID)
}

// CanSeeUserEmail decides field redaction for user rows: only maintainers
// read other users fully; everyone keeps their own email.
func CanSeeUserEmail(c Caller, target *models.User) bool {
	return c.IsMaintainer() || c.ID == target.ID
}

func CanCreateUser(c Caller) bool {
	return c.IsMaintainer()
}

func CanUpdateUser(c Caller, targetID uint64) bool {
	return c.IsMaintainer() || c.ID == targetID
}

// CanChangeUserRole restricts role (and company) reassignment to maintainers;
// self-mutation covers profile fields only.
func CanChangeUserRole(c Caller) bool {
	return c.IsMaintainer()
}

func CanDeleteUser(c Caller) bool {
	return c.IsMaintainer()
}

// --- Company ---

// CompanyScope scopes company listings; plain users cannot enumerate
// companies at all, which the second return value signals.
func CompanyScope(c Caller) (Scope, bool) {
	if c.IsMaintainer() {
		return Scope{All: true}, true
	}
	if c.IsAdmin() {
		return Scope{CompanyID: c.CompanyID}, true
	}
	return Scope{}, false
}

func CanMutateCompany(c Caller) bool {
	return c.IsMaintainer()
}

// CanSeeCompanyMemberEmail decides whether member emails are included in a
// company projection: maintainers always, admins for their own company.
func CanSeeCompanyMemberEmail(c Caller, companyID uint64) bool {
	if c.IsMaintainer() {
		return true
	}
	return c.IsAdmin() && c.InCompany(companyID)
}

// --- Planning ---

// PlanningScope scopes planning listings. Maintainers may narrow to any
// company via requested; for everyone else the filter is ignored and the
// caller's own company applies.
func PlanningScope(c Caller, requested *uint64) Scope {
	if c.IsMaintainer() {
		if requested != nil {
			return Scope{CompanyID: requested}
		}
		return Scope{All: true}
	}
	return Scope{CompanyID: c.CompanyID}
}

// CanCreatePlanning allows admins in their own company and maintainers for
// any company.
func CanCreatePlanning(c Caller, companyID uint64) bool {
	if c.IsMaintainer() {
		return true
	}
	return c.IsAdmin() && c.InCompany(companyID)
}

func CanMutatePlanning(c Caller, companyID uint64) bool {
	if c.IsMaintainer() {
		return true
	}
	return c.IsAdmin() && c.InCompany(companyID)
}

// --- Event ---

// EventScope scopes event listings exactly like plannings: own company,
// maintainer filterable.
func EventScope(c Caller, requested *uint64) Scope {
	return PlanningScope(c, requested)
}

// CanCreateEvent allows any member of the planning's company, and
// maintainers anywhere.
func CanCreateEvent(c Caller, planningCompanyID uint64) bool {
	return c.IsMaintainer() || c.InCompany(planningCompanyID)
}

// CanMutateEvent allows the event owner and maintainers.
func CanMutateEvent(c Caller, ownerID uint64) bool {
	return c.IsMaintainer() || c.ID == ownerID
}

// CanSeeEventMemberEmail decides redaction of member emails in event
// projections.
func CanSeeEventMemberEmail(c Caller, memberID uint64) bool {
	return c.IsMaintainer() || c.ID == memberID
}

// CanManageMembership gates invite/remove: the target user and the caller
// must share the event's company unless the caller is a maintainer.
func CanManageMembership(c Caller, target *models.User, eventCompanyID uint64) bool {
	if c.IsMaintainer() {
		return true
	}
	if target.CompanyID == nil || *target.CompanyID != eventCompanyID {
		return false
	}
	return c.InCompany(eventCompanyID)
}

// --- Notification ---

func CanCreateNotificationFor(c Caller, targetUserID uint64) bool {
	return c.IsMaintainer() || c.ID == targetUserID
}

func CanReadNotification(c Caller, ownerID uint64) bool {
	return c.ID == ownerID
}

func CanDeleteNotification(c Caller, ownerID uint64) bool {
	return c.IsMaintainer() || c.ID == ownerID
}
