package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lucasmrt/planify-api/internal/auth"
	"github.com/lucasmrt/planify-api/internal/crypt"
	"github.com/lucasmrt/planify-api/internal/database"
	"github.com/lucasmrt/planify-api/internal/models"
	"github.com/lucasmrt/planify-api/internal/repository"
	"github.com/lucasmrt/planify-api/internal/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db      *gorm.DB
	router  *gin.Engine
	tokens  *auth.TokenManager
	usersDB repository.UserRepository
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	require.NoError(t, crypt.Init("test-encryption-secret", "test-lookup-secret"))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	tokens := auth.NewTokenManager("test-jwt-secret", time.Hour, "planify-test")
	userRepo := repository.NewUserRepository(db)
	handler := NewAuthHandler(services.NewAuthService(userRepo, tokens))

	r := gin.New()
	r.POST("/login", handler.Login)

	return authTestEnv{db: db, router: r, tokens: tokens, usersDB: userRepo}
}

func (env authTestEnv) seedUser(t *testing.T, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        crypt.EncryptedString(email),
		EmailKey:     crypt.LookupKey(email),
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	require.NoError(t, env.usersDB.Create(user))
	return user
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.seedUser(t, "alice@example.com", "password123")

	w := postJSON(t, env.router, "/login", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		User        struct {
			ID    uint64 `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "bearer", response.TokenType)
	require.Equal(t, user.ID, response.User.ID)
	require.Equal(t, "alice@example.com", response.User.Email)

	subject, err := env.tokens.Validate(response.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, subject)
}

func TestAuthHandler_LoginBadCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.seedUser(t, "alice@example.com", "password123")

	w := postJSON(t, env.router, "/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var response struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "INVALID_CREDENTIALS", response.Code)
}

func TestAuthHandler_LoginValidation(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/login", map[string]string{
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
