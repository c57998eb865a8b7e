package repository

import (
	"github.com/lucasmrt/planify-api/internal/models"
	"gorm.io/gorm"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// Create creates an event and the owner's accepted membership atomically.
func (r *GormEventRepository) Create(event *models.Event, owner *models.EventMembership) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		owner.EventID = event.ID
		return tx.Create(owner).Error
	})
}

// FindByID finds an event by ID with its planning preloaded
func (r *GormEventRepository) FindByID(id uint64) (*models.Event, error) {
	var event models.Event
	if err := r.db.Preload("Planning").First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List retrieves events within the given scope. An event's company is derived
// through its planning, hence the join.
func (r *GormEventRepository) List(filter ListFilter) ([]models.Event, error) {
	if !filter.All && filter.CompanyID == nil {
		return []models.Event{}, nil
	}

	query := r.db.Model(&models.Event{}).Order("events.id ASC")
	if !filter.All {
		query = query.
			Joins("JOIN plannings ON plannings.id = events.planning_id").
			Where("plannings.company_id = ?", *filter.CompanyID)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var events []models.Event
	if err := query.Preload("Planning").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Save persists changes to an event
func (r *GormEventRepository) Save(event *models.Event) error {
	return r.db.Save(event).Error
}

// Delete removes an event and its memberships in one transaction
func (r *GormEventRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventMembership{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Event{}, id).Error
	})
}

// FindMembership finds the participation record for a (event, user) pair
func (r *GormEventRepository) FindMembership(eventID, userID uint64) (*models.EventMembership, error) {
	var membership models.EventMembership
	if err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// AddMembership creates a participation record
func (r *GormEventRepository) AddMembership(membership *models.EventMembership) error {
	return r.db.Create(membership).Error
}

// SaveMembership persists changes to a participation record
func (r *GormEventRepository) SaveMembership(membership *models.EventMembership) error {
	return r.db.Model(&models.EventMembership{}).
		Where("event_id = ? AND user_id = ?", membership.EventID, membership.UserID).
		Updates(map[string]interface{}{
			"accepted":   membership.Accepted,
			"updated_at": membership.UpdatedAt,
		}).Error
}

// RemoveMembership deletes the participation record for a pair
func (r *GormEventRepository) RemoveMembership(eventID, userID uint64) error {
	return r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventMembership{}).Error
}

// ListMembers lists all participation records of an event, users preloaded
func (r *GormEventRepository) ListMembers(eventID uint64) ([]models.EventMembership, error) {
	var members []models.EventMembership
	if err := r.db.Preload("User").
		Where("event_id = ?", eventID).
		Order("added_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
