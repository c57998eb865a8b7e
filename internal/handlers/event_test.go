package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lucasmrt/planify-api/internal/auth"
	"github.com/lucasmrt/planify-api/internal/crypt"
	"github.com/lucasmrt/planify-api/internal/database"
	"github.com/lucasmrt/planify-api/internal/dto"
	"github.com/lucasmrt/planify-api/internal/middleware"
	"github.com/lucasmrt/planify-api/internal/models"
	"github.com/lucasmrt/planify-api/internal/repository"
	"github.com/lucasmrt/planify-api/internal/services"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// EventHandlerTestSuite exercises the event routes end to end: one company
// with a planning and an event, plus a second company to probe visibility.
type EventHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.TokenManager

	acme       *models.Company
	globex     *models.Company
	planning   *models.Planning
	maintainer *models.User
	owner      *models.User
	invitee    *models.User
	outsider   *models.User
	event      dto.EventDTO
}

// SetupTest runs before each test
func (suite *EventHandlerTestSuite) SetupTest() {
	var err error

	suite.Require().NoError(crypt.Init("test-encryption-secret", "test-lookup-secret"))

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Planning{},
		&models.Event{},
		&models.EventMembership{},
		&models.Notification{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.tokens = auth.NewTokenManager("test-jwt-secret", time.Hour, "planify-test")

	eventRepo := repository.NewEventRepository(suite.db)
	planningRepo := repository.NewPlanningRepository(suite.db)
	companyRepo := repository.NewCompanyRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	notificationRepo := repository.NewNotificationRepository(suite.db)
	eventService := services.NewEventService(eventRepo, planningRepo, companyRepo, userRepo, notificationRepo)
	handler := NewEventHandler(eventService)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	api := suite.router.Group("/")
	api.Use(middleware.RequireAuth(suite.tokens))
	{
		api.GET("/events", handler.ListEvents)
		api.POST("/events", handler.CreateEvent)
		api.GET("/event/:id", handler.GetEvent)
		api.PATCH("/event/:id", handler.UpdateEvent)
		api.DELETE("/event/:id", handler.DeleteEvent)
		api.POST("/event-add-user/:eventId", handler.AddUser)
		api.POST("/event-remove-user/:eventId", handler.RemoveUser)
		api.POST("/event-accept-invite/:eventId", handler.AcceptInvite)
	}

	suite.acme = suite.seedCompany("Acme")
	suite.globex = suite.seedCompany("Globex")
	suite.planning = suite.seedPlanning("Q1", suite.acme.ID)
	suite.maintainer = suite.seedUser("root@example.com", models.RoleMaintainer, nil)
	suite.owner = suite.seedUser("owner@example.com", models.RoleUser, &suite.acme.ID)
	suite.invitee = suite.seedUser("invitee@example.com", models.RoleUser, &suite.acme.ID)
	suite.outsider = suite.seedUser("outsider@example.com", models.RoleUser, &suite.globex.ID)
	suite.event = suite.seedEvent()
}

// TearDownTest runs after each test
func (suite *EventHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *EventHandlerTestSuite) seedCompany(name string) *models.Company {
	company := &models.Company{
		Name:    crypt.EncryptedString(name),
		NameKey: crypt.LookupKey(name),
	}
	suite.Require().NoError(suite.db.Create(company).Error)
	return company
}

func (suite *EventHandlerTestSuite) seedPlanning(name string, companyID uint64) *models.Planning {
	planning := &models.Planning{
		Name:      crypt.EncryptedString(name),
		NameKey:   crypt.LookupKey(name),
		CompanyID: companyID,
	}
	suite.Require().NoError(suite.db.Create(planning).Error)
	return planning
}

func (suite *EventHandlerTestSuite) seedUser(email string, role models.Role, companyID *uint64) *models.User {
	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        crypt.EncryptedString(email),
		EmailKey:     crypt.LookupKey(email),
		PasswordHash: "hashedpassword",
		Role:         role,
		CompanyID:    companyID,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *EventHandlerTestSuite) seedEvent() dto.EventDTO {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	w := suite.request(suite.owner, http.MethodPost, "/events", map[string]interface{}{
		"name":        "Kickoff",
		"place":       "HQ",
		"start_date":  start.Unix(),
		"end_date":    start.Add(time.Hour).Unix(),
		"planning_id": suite.planning.ID,
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var event dto.EventDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &event))
	return event
}

// request performs an authenticated request as the given user.
func (suite *EventHandlerTestSuite) request(user *models.User, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	token, err := suite.tokens.Generate(user.ID)
	suite.Require().NoError(err)

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *EventHandlerTestSuite) TestCreateSetsOwnerMembership() {
	suite.Equal(suite.owner.ID, suite.event.OwnerID)
	suite.Equal(suite.acme.ID, suite.event.CompanyID)
	suite.Equal(1, suite.event.MembersNb)
	suite.True(suite.event.Members[0].Accepted)
}

func (suite *EventHandlerTestSuite) TestGetVisibility() {
	path := fmt.Sprintf("/event/%d", suite.event.ID)

	// Company members and maintainers see the event.
	suite.Equal(http.StatusOK, suite.request(suite.invitee, http.MethodGet, path, nil).Code)
	suite.Equal(http.StatusOK, suite.request(suite.maintainer, http.MethodGet, path, nil).Code)

	// Other companies get a 404, not a 403.
	suite.Equal(http.StatusNotFound, suite.request(suite.outsider, http.MethodGet, path, nil).Code)
}

func (suite *EventHandlerTestSuite) TestUnauthenticatedRequestsRejected() {
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *EventHandlerTestSuite) TestInviteAcceptRemoveFlow() {
	invitePath := fmt.Sprintf("/event-add-user/%d?userId=%d", suite.event.ID, suite.invitee.ID)
	suite.Equal(http.StatusOK, suite.request(suite.owner, http.MethodPost, invitePath, nil).Code)

	// Second invite conflicts.
	suite.Equal(http.StatusConflict, suite.request(suite.owner, http.MethodPost, invitePath, nil).Code)

	acceptPath := fmt.Sprintf("/event-accept-invite/%d", suite.event.ID)
	suite.Equal(http.StatusOK, suite.request(suite.invitee, http.MethodPost, acceptPath, nil).Code)
	suite.Equal(http.StatusConflict, suite.request(suite.invitee, http.MethodPost, acceptPath, nil).Code)

	removePath := fmt.Sprintf("/event-remove-user/%d?userId=%d", suite.event.ID, suite.invitee.ID)
	suite.Equal(http.StatusOK, suite.request(suite.owner, http.MethodPost, removePath, nil).Code)
	suite.Equal(http.StatusConflict, suite.request(suite.owner, http.MethodPost, removePath, nil).Code)
}

func (suite *EventHandlerTestSuite) TestSelfJoinAndLeaveWithoutUserID() {
	// Omitting userId targets the caller: joining yourself is accepted
	// immediately, no pending invitation.
	joinPath := fmt.Sprintf("/event-add-user/%d", suite.event.ID)
	suite.Equal(http.StatusOK, suite.request(suite.invitee, http.MethodPost, joinPath, nil).Code)

	var membership models.EventMembership
	err := suite.db.Where("event_id = ? AND user_id = ?", suite.event.ID, suite.invitee.ID).
		First(&membership).Error
	suite.Require().NoError(err)
	suite.True(membership.Accepted)

	leavePath := fmt.Sprintf("/event-remove-user/%d", suite.event.ID)
	suite.Equal(http.StatusOK, suite.request(suite.invitee, http.MethodPost, leavePath, nil).Code)

	var count int64
	suite.db.Model(&models.EventMembership{}).
		Where("event_id = ? AND user_id = ?", suite.event.ID, suite.invitee.ID).
		Count(&count)
	suite.Zero(count)
}

func (suite *EventHandlerTestSuite) TestInviteOutsiderForbidden() {
	path := fmt.Sprintf("/event-add-user/%d?userId=%d", suite.event.ID, suite.outsider.ID)
	suite.Equal(http.StatusForbidden, suite.request(suite.owner, http.MethodPost, path, nil).Code)
}

func (suite *EventHandlerTestSuite) TestMemberEmailRedaction() {
	path := fmt.Sprintf("/event/%d", suite.event.ID)

	// The maintainer sees member emails.
	var event dto.EventDTO
	w := suite.request(suite.maintainer, http.MethodGet, path, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &event))
	suite.Equal("owner@example.com", event.Members[0].User.Email)

	// A plain member sees everyone else's email redacted. Unmarshal into a
	// fresh value: email is omitempty, and decoding an absent field into the
	// previous response's struct would leave the old value in place.
	var redacted dto.EventDTO
	w = suite.request(suite.invitee, http.MethodGet, path, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &redacted))
	suite.Empty(redacted.Members[0].User.Email)
}

func (suite *EventHandlerTestSuite) TestUpdateRejectsBadRange() {
	path := fmt.Sprintf("/event/%d", suite.event.ID)
	w := suite.request(suite.owner, http.MethodPatch, path, map[string]interface{}{
		"end_date": suite.event.StartDate - 60,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	var response struct {
		Code string `json:"code"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("INVALID_RANGE", response.Code)
}

func (suite *EventHandlerTestSuite) TestDeleteOnlyOwnerOrMaintainer() {
	path := fmt.Sprintf("/event/%d", suite.event.ID)

	suite.Equal(http.StatusForbidden, suite.request(suite.invitee, http.MethodDelete, path, nil).Code)

	w := suite.request(suite.owner, http.MethodDelete, path, nil)
	suite.Equal(http.StatusOK, w.Code)

	var snapshot dto.EventDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &snapshot))
	suite.Equal("Kickoff", snapshot.Name)

	suite.Equal(http.StatusNotFound, suite.request(suite.owner, http.MethodGet, path, nil).Code)
}

func (suite *EventHandlerTestSuite) TestListScoping() {
	// Owner sees the Acme event, the outsider sees nothing.
	var list dto.EventListResponse
	w := suite.request(suite.owner, http.MethodGet, "/events", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Len(list.Events, 1)

	w = suite.request(suite.outsider, http.MethodGet, "/events", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Empty(list.Events)

	// Maintainers can filter by company.
	w = suite.request(suite.maintainer, http.MethodGet, fmt.Sprintf("/events?company_id=%d", suite.globex.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Empty(list.Events)
}

func TestEventHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EventHandlerTestSuite))
}
