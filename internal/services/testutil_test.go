package services

import (
	"testing"
	"time"

	"github.com/lucasmrt/planify-api/internal/auth"
	"github.com/lucasmrt/planify-api/internal/crypt"
	"github.com/lucasmrt/planify-api/internal/database"
	"github.com/lucasmrt/planify-api/internal/models"
	"github.com/lucasmrt/planify-api/internal/policy"
	"github.com/lucasmrt/planify-api/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db               *gorm.DB
	userRepo         repository.UserRepository
	companyRepo      repository.CompanyRepository
	planningRepo     repository.PlanningRepository
	eventRepo        repository.EventRepository
	notificationRepo repository.NotificationRepository
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	require.NoError(t, crypt.Init("test-encryption-secret", "test-lookup-secret"))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Planning{},
		&models.Event{},
		&models.EventMembership{},
		&models.Notification{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		companyRepo:      repository.NewCompanyRepository(db),
		planningRepo:     repository.NewPlanningRepository(db),
		eventRepo:        repository.NewEventRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}
}

func testTokenManager() *auth.TokenManager {
	return auth.NewTokenManager("test-jwt-secret", time.Hour, "planify-test")
}

// Fixture event window: one hour, well above the minimum duration.
var (
	testStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
)

func (env testEnv) createUser(t *testing.T, email string, role models.Role, companyID *uint64) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        crypt.EncryptedString(email),
		EmailKey:     crypt.LookupKey(email),
		PasswordHash: string(hash),
		Role:         role,
		CompanyID:    companyID,
	}
	require.NoError(t, env.userRepo.Create(user))
	return user
}

func (env testEnv) createCompany(t *testing.T, name string) *models.Company {
	t.Helper()

	company := &models.Company{
		Name:    crypt.EncryptedString(name),
		NameKey: crypt.LookupKey(name),
		City:    crypt.EncryptedString("Paris"),
		Country: crypt.EncryptedString("France"),
	}
	require.NoError(t, env.companyRepo.Create(company))
	return company
}

func (env testEnv) createPlanning(t *testing.T, name string, companyID uint64) *models.Planning {
	t.Helper()

	planning := &models.Planning{
		Name:      crypt.EncryptedString(name),
		NameKey:   crypt.LookupKey(name),
		CompanyID: companyID,
	}
	require.NoError(t, env.planningRepo.Create(planning))
	return planning
}

func asCaller(user *models.User) policy.Caller {
	return policy.Caller{ID: user.ID, Role: user.Role, CompanyID: user.CompanyID}
}
