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
	ErrPlanningNotFound    = errors.New("planning not found")
	ErrPlanningExists      = errors.New("planning with this name already exists")
	ErrInvalidPlanningName = errors.New("planning name cannot be empty")
	ErrCompanyIDRequired   = errors.New("company_id is required")
)

// PlanningService provides business logic for planning operations.
type PlanningService struct {
	planningRepo repository.PlanningRepository
	companyRepo  repository.CompanyRepository
}

// NewPlanningService creates a new PlanningService.
func NewPlanningService(planningRepo repository.PlanningRepository, companyRepo repository.CompanyRepository) *PlanningService {
	return &PlanningService{
		planningRepo: planningRepo,
		companyRepo:  companyRepo,
	}
}

// List returns the plannings visible to the caller. Maintainers may narrow
// to one company with companyID; everyone else is confined to their own.
func (s *PlanningService) List(caller policy.Caller, companyID *uint64, page, pageSize int) ([]models.Planning, error) {
	if caller.IsMaintainer() && companyID != nil {
		if _, err := s.companyRepo.FindByID(*companyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCompanyNotFound
			}
			return nil, fmt.Errorf("failed to find company: %w", err)
		}
	}

	scope := policy.PlanningScope(caller, companyID)

	plannings, err := s.planningRepo.List(repository.ListFilter{
		All:       scope.All,
		CompanyID: scope.CompanyID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list plannings: %w", err)
	}
	return plannings, nil
}

// CreatePlanningInput represents parameters to create a new planning.
// CompanyID is required for maintainers and ignored for admins, whose own
// company always applies.
type CreatePlanningInput struct {
	Name      string
	CompanyID *uint64
}

// Create creates a new planning. Admin (own company) or maintainer (any).
func (s *PlanningService) Create(caller policy.Caller, input CreatePlanningInput) (*models.Planning, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidPlanningName
	}

	var companyID uint64
	if caller.IsMaintainer() {
		if input.CompanyID == nil {
			return nil, ErrCompanyIDRequired
		}
		companyID = *input.CompanyID
	} else {
		if caller.CompanyID == nil {
			return nil, ErrForbidden
		}
		companyID = *caller.CompanyID
	}

	if !policy.CanCreatePlanning(caller, companyID) {
		return nil, ErrForbidden
	}

	if _, err := s.companyRepo.FindByID(companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}

	nameKey := crypt.LookupKey(name)
	if _, err := s.planningRepo.FindInCompanyByNameKey(companyID, nameKey); err == nil {
		return nil, ErrPlanningExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check planning name: %w", err)
	}

	planning := &models.Planning{
		Name:      crypt.EncryptedString(name),
		NameKey:   nameKey,
		CompanyID: companyID,
	}

	if err := s.planningRepo.Create(planning); err != nil {
		return nil, fmt.Errorf("failed to create planning: %w", err)
	}

	return planning, nil
}

// UpdatePlanningInput represents a partial patch; nil fields are left unchanged.
type UpdatePlanningInput struct {
	Name *string
}

// Update applies a partial patch to a planning. Admin (own company) or
// maintainer.
func (s *PlanningService) Update(caller policy.Caller, id uint64, input UpdatePlanningInput) (*models.Planning, error) {
	planning, err := s.planningRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanningNotFound
		}
		return nil, fmt.Errorf("failed to find planning: %w", err)
	}

	if !policy.CanMutatePlanning(caller, planning.CompanyID) {
		return nil, ErrForbidden
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidPlanningName
		}
		nameKey := crypt.LookupKey(name)
		if nameKey != planning.NameKey {
			if _, err := s.planningRepo.FindInCompanyByNameKey(planning.CompanyID, nameKey); err == nil {
				return nil, ErrPlanningExists
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check planning name: %w", err)
			}
		}
		planning.Name = crypt.EncryptedString(name)
		planning.NameKey = nameKey
	}

	if err := s.planningRepo.Save(planning); err != nil {
		return nil, fmt.Errorf("failed to update planning: %w", err)
	}

	return planning, nil
}

// Delete removes a planning, cascading to its events, and returns the
// pre-deletion snapshot. Admin (own company) or maintainer.
func (s *PlanningService) Delete(caller policy.Caller, id uint64) (*models.Planning, error) {
	planning, err := s.planningRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanningNotFound
		}
		return nil, fmt.Errorf("failed to find planning: %w", err)
	}

	if !policy.CanMutatePlanning(caller, planning.CompanyID) {
		return nil, ErrForbidden
	}

	if err := s.planningRepo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete planning: %w", err)
	}

	return planning, nil
}
