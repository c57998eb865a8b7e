package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasmrt/planify-api/internal/constants"
	"github.com/lucasmrt/planify-api/internal/crypt"
	"github.com/lucasmrt/planify-api/internal/models"
	"github.com/lucasmrt/planify-api/internal/policy"
	"github.com/lucasmrt/planify-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already used")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidRole          = errors.New("invalid role")
	ErrMaintainerHasCompany = errors.New("a maintainer cannot belong to a company")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService provides business logic for user management.
type UserService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, companyRepo repository.CompanyRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
	}
}

// List returns the users visible to the caller.
func (s *UserService) List(caller policy.Caller, page, pageSize int) ([]models.User, error) {
	scope := policy.UserScope(caller)

	users, err := s.userRepo.List(repository.ListFilter{
		All:       scope.All,
		CompanyID: scope.CompanyID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Search looks up a single user by id, bounded by the caller's visibility.
func (s *UserService) Search(caller policy.Caller, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Out-of-scope rows read as missing to avoid leaking their existence.
	if !policy.CanReadUser(caller, user) {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      models.Role
	CompanyID *uint64
}

// Register creates a new user. Maintainer only.
func (s *UserService) Register(caller policy.Caller, input RegisterInput) (*models.User, error) {
	if !policy.CanCreateUser(caller) {
		return nil, ErrForbidden
	}

	if input.Role == "" {
		input.Role = models.RoleUser
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if input.Role == models.RoleMaintainer && input.CompanyID != nil {
		return nil, ErrMaintainerHasCompany
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if input.CompanyID != nil {
		if _, err := s.companyRepo.FindByID(*input.CompanyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCompanyNotFound
			}
			return nil, fmt.Errorf("failed to find company: %w", err)
		}
	}

	email := strings.TrimSpace(input.Email)
	emailKey := crypt.LookupKey(email)

	if _, err := s.userRepo.FindByEmailKey(emailKey); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		FirstName:    crypt.EncryptedString(input.FirstName),
		LastName:     crypt.EncryptedString(input.LastName),
		Email:        crypt.EncryptedString(email),
		EmailKey:     emailKey,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		CompanyID:    input.CompanyID,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateUserInput represents a partial patch; nil fields are left unchanged.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	Role      *models.Role
}

// Update applies a partial patch to a user. Self or maintainer; role changes
// are maintainer-only.
func (s *UserService) Update(caller policy.Caller, id uint64, input UpdateUserInput) (*models.User, error) {
	if !policy.CanUpdateUser(caller, id) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.FirstName != nil {
		user.FirstName = crypt.EncryptedString(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = crypt.EncryptedString(*input.LastName)
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		emailKey := crypt.LookupKey(email)
		if emailKey != user.EmailKey {
			if _, err := s.userRepo.FindByEmailKey(emailKey); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
		}
		user.Email = crypt.EncryptedString(email)
		user.EmailKey = emailKey
	}
	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashed)
	}
	if input.Role != nil {
		if !policy.CanChangeUserRole(caller) {
			return nil, ErrForbidden
		}
		if !input.Role.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = *input.Role
		if user.Role == models.RoleMaintainer {
			// Maintainers are platform-global.
			user.CompanyID = nil
		}
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes a user and returns the pre-deletion snapshot. Maintainer only.
func (s *UserService) Delete(caller policy.Caller, id uint64) (*models.User, error) {
	if !policy.CanDeleteUser(caller) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return user, nil
}
