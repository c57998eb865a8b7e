package repository

import (
	"github.com/lucasmrt/planify-api/internal/models"
)

// ListFilter holds the common scoping and pagination options for listings.
// All=true enumerates every row; otherwise rows are restricted to CompanyID,
// and a nil CompanyID matches nothing.
type ListFilter struct {
	All       bool
	CompanyID *uint64
	Page      int
	PageSize  int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmailKey finds a user by the deterministic email lookup key
	FindByEmailKey(key string) (*models.User, error)

	// List retrieves users within the given scope
	List(filter ListFilter) ([]models.User, error)

	// Save persists changes to a user
	Save(user *models.User) error

	// Delete removes a user together with their memberships and notifications
	Delete(id uint64) error
}

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	// Create creates a new company
	Create(company *models.Company) error

	// FindByID finds a company by ID
	FindByID(id uint64) (*models.Company, error)

	// FindByNameKey finds a company by the deterministic name lookup key
	FindByNameKey(key string) (*models.Company, error)

	// List retrieves companies within the given scope
	List(filter ListFilter) ([]models.Company, error)

	// ListUsers lists the users assigned to a company
	ListUsers(companyID uint64) ([]models.User, error)

	// ListPlannings lists the plannings owned by a company
	ListPlannings(companyID uint64) ([]models.Planning, error)

	// Save persists changes to a company
	Save(company *models.Company) error

	// Delete removes a company and cascades to its plannings, their events
	// and memberships; company members are unassigned, not deleted.
	Delete(id uint64) error
}

// PlanningRepository defines the interface for planning data access
type PlanningRepository interface {
	// Create creates a new planning
	Create(planning *models.Planning) error

	// FindByID finds a planning by ID
	FindByID(id uint64) (*models.Planning, error)

	// FindInCompanyByNameKey finds a planning by name lookup key within a company
	FindInCompanyByNameKey(companyID uint64, key string) (*models.Planning, error)

	// List retrieves plannings within the given scope
	List(filter ListFilter) ([]models.Planning, error)

	// Save persists changes to a planning
	Save(planning *models.Planning) error

	// Delete removes a planning and cascades to its events and memberships
	Delete(id uint64) error
}

// EventRepository defines the interface for event and membership data access
type EventRepository interface {
	// Create creates an event and the owner's accepted membership atomically
	Create(event *models.Event, owner *models.EventMembership) error

	// FindByID finds an event by ID with its planning preloaded
	FindByID(id uint64) (*models.Event, error)

	// List retrieves events within the given scope, planning preloaded
	List(filter ListFilter) ([]models.Event, error)

	// Save persists changes to an event
	Save(event *models.Event) error

	// Delete removes an event and its memberships
	Delete(id uint64) error

	// FindMembership finds the participation record for a (event, user) pair
	FindMembership(eventID, userID uint64) (*models.EventMembership, error)

	// AddMembership creates a participation record
	AddMembership(membership *models.EventMembership) error

	// SaveMembership persists changes to a participation record
	SaveMembership(membership *models.EventMembership) error

	// RemoveMembership deletes the participation record for a pair
	RemoveMembership(eventID, userID uint64) error

	// ListMembers lists all participation records of an event, users preloaded
	ListMembers(eventID uint64) ([]models.EventMembership, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create creates a new notification
	Create(notification *models.Notification) error

	// FindByID finds a notification by ID
	FindByID(id uint64) (*models.Notification, error)

	// ListByUser lists a user's notifications, newest first
	ListByUser(userID uint64, page, pageSize int) ([]models.Notification, error)

	// Save persists changes to a notification
	Save(notification *models.Notification) error

	// Delete removes a notification
	Delete(id uint64) error
}
