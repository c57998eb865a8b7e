package repository

import (
	"github.com/lucasmrt/planify-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailKey finds a user by the deterministic email lookup key
func (r *GormUserRepository) FindByEmailKey(key string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email_key = ?", key).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users within the given scope
func (r *GormUserRepository) List(filter ListFilter) ([]models.User, error) {
	if !filter.All && filter.CompanyID == nil {
		return []models.User{}, nil
	}

	query := r.db.Model(&models.User{}).Order("users.id ASC")
	if !filter.All {
		query = query.Where("users.company_id = ?", *filter.CompanyID)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Save persists changes to a user
func (r *GormUserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user together with their memberships and notifications
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.EventMembership{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
