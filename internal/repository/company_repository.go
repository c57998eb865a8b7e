package repository

import (
	"github.com/lucasmrt/planify-api/internal/models"
	"gorm.io/gorm"
)

// GormCompanyRepository is a GORM implementation of CompanyRepository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Create creates a new company
func (r *GormCompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(id uint64) (*models.Company, error) {
	var company models.Company
	if err := r.db.First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByNameKey finds a company by the deterministic name lookup key
func (r *GormCompanyRepository) FindByNameKey(key string) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("name_key = ?", key).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// List retrieves companies within the given scope
func (r *GormCompanyRepository) List(filter ListFilter) ([]models.Company, error) {
	if !filter.All && filter.CompanyID == nil {
		return []models.Company{}, nil
	}

	query := r.db.Model(&models.Company{}).Order("companies.id ASC")
	if !filter.All {
		query = query.Where("companies.id = ?", *filter.CompanyID)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var companies []models.Company
	if err := query.Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// ListUsers lists the users assigned to a company
func (r *GormCompanyRepository) ListUsers(companyID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("company_id = ?", companyID).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListPlannings lists the plannings owned by a company
func (r *GormCompanyRepository) ListPlannings(companyID uint64) ([]models.Planning, error) {
	var plannings []models.Planning
	if err := r.db.Where("company_id = ?", companyID).Order("id ASC").Find(&plannings).Error; err != nil {
		return nil, err
	}
	return plannings, nil
}

// Delete removes a company and cascades to its plannings, their events and
// memberships, all in one transaction so a crash mid-cascade cannot leave
// orphaned rows. Company members are unassigned rather than deleted.
func (r *GormCompanyRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var planningIDs []uint64
		if err := tx.Model(&models.Planning{}).
			Where("company_id = ?", id).
			Pluck("id", &planningIDs).Error; err != nil {
			return err
		}

		if len(planningIDs) > 0 {
			var eventIDs []uint64
			if err := tx.Model(&models.Event{}).
				Where("planning_id IN ?", planningIDs).
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

			if err := tx.Where("id IN ?", planningIDs).Delete(&models.Planning{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.User{}).
			Where("company_id = ?", id).
			Update("company_id", gorm.Expr("NULL")).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Company{}, id).Error
	})
}

// Save persists changes to a company
func (r *GormCompanyRepository) Save(company *models.Company) error {
	return r.db.Save(company).Error
}
