package repository

import (
	"github.com/lucasmrt/planify-api/internal/models"
	"gorm.io/gorm"
)

// GormPlanningRepository is a GORM implementation of PlanningRepository
type GormPlanningRepository struct {
	db *gorm.DB
}

// NewPlanningRepository creates a new PlanningRepository
func NewPlanningRepository(db *gorm.DB) PlanningRepository {
	return &GormPlanningRepository{db: db}
}

// Create creates a new planning
func (r *GormPlanningRepository) Create(planning *models.Planning) error {
	return r.db.Create(planning).Error
}

// FindByID finds a planning by ID
func (r *GormPlanningRepository) FindByID(id uint64) (*models.Planning, error) {
	var planning models.Planning
	if err := r.db.First(&planning, id).Error; err != nil {
		return nil, err
	}
	return &planning, nil
}

// FindInCompanyByNameKey finds a planning by name lookup key within a company
func (r *GormPlanningRepository) FindInCompanyByNameKey(companyID uint64, key string) (*models.Planning, error) {
	var planning models.Planning
	if err := r.db.Where("company_id = ? AND name_key = ?", companyID, key).
		First(&planning).Error; err != nil {
		return nil, err
	}
	return &planning, nil
}

// List retrieves plannings within the given scope
func (r *GormPlanningRepository) List(filter ListFilter) ([]models.Planning, error) {
	if !filter.All && filter.CompanyID == nil {
		return []models.Planning{}, nil
	}

	query := r.db.Model(&models.Planning{}).Order("plannings.id ASC")
	if !filter.All {
		query = query.Where("plannings.company_id = ?", *filter.CompanyID)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var plannings []models.Planning
	if err := query.Find(&plannings).Error; err != nil {
		return nil, err
	}
	return plannings, nil
}

// Save persists changes to a planning
func (r *GormPlanningRepository) Save(planning *models.Planning) error {
	return r.db.Save(planning).Error
}

// Delete removes a planning and cascades to its events and their memberships
// in one transaction.
func (r *GormPlanningRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var eventIDs []uint64
		if err := tx.Model(&models.Event{}).
			Where("planning_id = ?", id).
			Pluck("id", &eventIDs).Error; err != nil {
			return err
		}

		if len(eventIDs) > 0 {
			if err := tx.Where("event_id IN ?", eventIDs).Delete(&models.EventMembership{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", eventIDs).Delete(&models.Event{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Planning{}, id).Error
	})
}
