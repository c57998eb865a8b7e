package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasmrt/planify-api/internal/crypt"
	"github.com/lucasmrt/planify-api/internal/models"
	"github.com/lucasmrt/planify-api/internal/policy"
	"github.com/lucasmrt/planify-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrCompanyExists      = errors.New("company already exists")
	ErrInvalidCompanyName = errors.New("company name cannot be empty")
	ErrUserNotInCompany   = errors.New("user does not belong to a company")
)

// CompanyService provides business logic for company operations.
type CompanyService struct {
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
	}
}

// CompanyDetail is a company with its members and plannings, assembled from
// sequential fetches on one session.
type CompanyDetail struct {
	Company   models.Company
	Users     []models.User
	Plannings []models.Planning
}

// List returns the companies visible to the caller. Plain users cannot
// enumerate companies.
func (s *CompanyService) List(caller policy.Caller, page, pageSize int) ([]models.Company, error) {
	scope, ok := policy.CompanyScope(caller)
	if !ok {
		return nil, ErrForbidden
	}

	companies, err := s.companyRepo.List(repository.ListFilter{
		All:       scope.All,
		CompanyID: scope.CompanyID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// Get returns a company with its members and plannings.
func (s *CompanyService) Get(caller policy.Caller, id uint64) (*CompanyDetail, error) {
	scope, ok := policy.CompanyScope(caller)
	if !ok {
		return nil, ErrForbidden
	}
	if !scope.All && !caller.InCompany(id) {
		return nil, ErrCompanyNotFound
	}

	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}

	users, err := s.companyRepo.ListUsers(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list company users: %w", err)
	}

	plannings, err := s.companyRepo.ListPlannings(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list company plannings: %w", err)
	}

	return &CompanyDetail{
		Company:   *company,
		Users:     users,
		Plannings: plannings,
	}, nil
}

// CreateCompanyInput represents parameters to create a new company.
type CreateCompanyInput struct {
	Name    string
	Website string
	City    string
	Country string
}

// Create creates a new company. Maintainer only.
func (s *CompanyService) Create(caller policy.Caller, input CreateCompanyInput) (*models.Company, error) {
	if !policy.CanMutateCompany(caller) {
		return nil, ErrForbidden
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidCompanyName
	}

	nameKey := crypt.LookupKey(name)
	if _, err := s.companyRepo.FindByNameKey(nameKey); err == nil {
		return nil, ErrCompanyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check company name: %w", err)
	}

	company := &models.Company{
		Name:    crypt.EncryptedString(name),
		NameKey: nameKey,
		Website: crypt.EncryptedString(input.Website),
		City:    crypt.EncryptedString(input.City),
		Country: crypt.EncryptedString(input.Country),
	}

	if err := s.companyRepo.Create(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return company, nil
}

// UpdateCompanyInput represents a partial patch; nil fields are left unchanged.
type UpdateCompanyInput struct {
	Name    *string
	Website *string
	City    *string
	Country *string
}

// Update applies a partial patch to a company. Maintainer only.
func (s *CompanyService) Update(caller policy.Caller, id uint64, input UpdateCompanyInput) (*models.Company, error) {
	if !policy.CanMutateCompany(caller) {
		return nil, ErrForbidden
	}

	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidCompanyName
		}
		nameKey := crypt.LookupKey(name)
		if nameKey != company.NameKey {
			if _, err := s.companyRepo.FindByNameKey(nameKey); err == nil {
				return nil, ErrCompanyExists
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check company name: %w", err)
			}
		}
		company.Name = crypt.EncryptedString(name)
		company.NameKey = nameKey
	}
	if input.Website != nil {
		company.Website = crypt.EncryptedString(*input.Website)
	}
	if input.City != nil {
		company.City = crypt.EncryptedString(*input.City)
	}
	if input.Country != nil {
		company.Country = crypt.EncryptedString(*input.Country)
	}

	if err := s.companyRepo.Save(company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	return company, nil
}

// Delete removes a company, cascading to its plannings and events, and
// returns the pre-deletion snapshot. Maintainer only.
func (s *CompanyService) Delete(caller policy.Caller, id uint64) (*models.Company, error) {
	if !policy.CanMutateCompany(caller) {
		return nil, ErrForbidden
	}

	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}

	if err := s.companyRepo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete company: %w", err)
	}

	return company, nil
}

// AddUser assigns a user to a company. Maintainer only; maintainers
// themselves stay unscoped.
func (s *CompanyService) AddUser(caller policy.Caller, userID, companyID uint64) (*models.User, error) {
	if !policy.CanMutateCompany(caller) {
		return nil, ErrForbidden
	}

	if _, err := s.companyRepo.FindByID(companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Role == models.RoleMaintainer {
		return nil, ErrMaintainerHasCompany
	}

	user.CompanyID = &companyID
	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to assign user to company: %w", err)
	}

	return user, nil
}

// RemoveUser unassigns a user from their company. Maintainer only.
func (s *CompanyService) RemoveUser(caller policy.Caller, userID uint64) (*models.User, error) {
	if !policy.CanMutateCompany(caller) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.CompanyID == nil {
		return nil, ErrUserNotInCompany
	}

	user.CompanyID = nil
	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to remove user from company: %w", err)
	}

	return user, nil
}
