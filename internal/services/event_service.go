package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lucasmrt/planify-api/internal/constants"
	"github.com/lucasmrt/planify-api/internal/crypt"
	"github.com/lucasmrt/planify-api/internal/models"
	"github.com/lucasmrt/planify-api/internal/policy"
	"github.com/lucasmrt/planify-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidEventName  = errors.New("event name cannot be empty")
	ErrInvalidEventRange = errors.New("start date must be before end date and the event must last at least 15 minutes")
	ErrAlreadyInEvent    = errors.New("user is already in the event")
	ErrNotInEvent        = errors.New("user is not in the event")
	ErrInviteNotFound    = errors.New("no pending invitation for this event")
	ErrAlreadyAccepted   = errors.New("invitation already accepted")
)

// EventService provides business logic for events and the membership state
// machine: Absent -> Pending (invite) -> Accepted (accept); removal deletes
// the row from either state.
type EventService struct {
	eventRepo        repository.EventRepository
	planningRepo     repository.PlanningRepository
	companyRepo      repository.CompanyRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

// NewEventService creates a new EventService.
func NewEventService(
	eventRepo repository.EventRepository,
	planningRepo repository.PlanningRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *EventService {
	return &EventService{
		eventRepo:        eventRepo,
		planningRepo:     planningRepo,
		companyRepo:      companyRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// EventDetail is an event with its participation records.
type EventDetail struct {
	Event   models.Event
	Members []models.EventMembership
}

// List returns the events visible to the caller, each with its members.
// Maintainers may narrow to one company with companyID.
func (s *EventService) List(caller policy.Caller, companyID *uint64, page, pageSize int) ([]EventDetail, error) {
	if caller.IsMaintainer() && companyID != nil {
		if _, err := s.companyRepo.FindByID(*companyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCompanyNotFound
			}
			return nil, fmt.Errorf("failed to find company: %w", err)
		}
	}

	scope := policy.EventScope(caller, companyID)

	events, err := s.eventRepo.List(repository.ListFilter{
		All:       scope.All,
		CompanyID: scope.CompanyID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	details := make([]EventDetail, 0, len(events))
	for _, event := range events {
		members, err := s.eventRepo.ListMembers(event.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list event members: %w", err)
		}
		details = append(details, EventDetail{Event: event, Members: members})
	}

	return details, nil
}

// Get returns one event with its members, bounded by the caller's visibility.
func (s *EventService) Get(caller policy.Caller, id uint64) (*EventDetail, error) {
	event, err := s.findVisibleEvent(caller, id)
	if err != nil {
		return nil, err
	}

	members, err := s.eventRepo.ListMembers(event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list event members: %w", err)
	}

	return &EventDetail{Event: *event, Members: members}, nil
}

// CreateEventInput represents parameters to create a new event.
type CreateEventInput struct {
	Name       string
	Place      string
	StartDate  time.Time
	EndDate    time.Time
	PlanningID uint64
}

// Create creates an event bound to a planning of the caller's own company
// (maintainers may target any company). The creator becomes an accepted
// member in the same transaction.
func (s *EventService) Create(caller policy.Caller, input CreateEventInput) (*EventDetail, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidEventName
	}

	planning, err := s.planningRepo.FindByID(input.PlanningID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanningNotFound
		}
		return nil, fmt.Errorf("failed to find planning: %w", err)
	}

	if !policy.CanCreateEvent(caller, planning.CompanyID) {
		return nil, ErrForbidden
	}

	if err := validateEventRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:       crypt.EncryptedString(name),
		Place:      crypt.EncryptedString(input.Place),
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		PlanningID: planning.ID,
		OwnerID:    caller.ID,
	}

	now := time.Now()
	owner := &models.EventMembership{
		UserID:    caller.ID,
		Accepted:  true,
		AddedAt:   now,
		UpdatedAt: now,
	}

	if err := s.eventRepo.Create(event, owner); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return s.Get(caller, event.ID)
}

// UpdateEventInput represents a partial patch; nil fields are left unchanged.
type UpdateEventInput struct {
	Name       *string
	Place      *string
	StartDate  *time.Time
	EndDate    *time.Time
	PlanningID *uint64
}

// Update applies a partial patch to an event. Owner or maintainer.
func (s *EventService) Update(caller policy.Caller, id uint64, input UpdateEventInput) (*EventDetail, error) {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	if !policy.CanMutateEvent(caller, event.OwnerID) {
		return nil, ErrForbidden
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidEventName
		}
		event.Name = crypt.EncryptedString(name)
	}
	if input.Place != nil {
		event.Place = crypt.EncryptedString(*input.Place)
	}
	if input.StartDate != nil {
		event.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		event.EndDate = *input.EndDate
	}
	if err := validateEventRange(event.StartDate, event.EndDate); err != nil {
		return nil, err
	}

	if input.PlanningID != nil && *input.PlanningID != event.PlanningID {
		planning, err := s.planningRepo.FindByID(*input.PlanningID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPlanningNotFound
			}
			return nil, fmt.Errorf("failed to find planning: %w", err)
		}
		if !policy.CanCreateEvent(caller, planning.CompanyID) {
			return nil, ErrForbidden
		}
		// Swap the loaded association too, or Save would write the old
		// planning's id back into the foreign key.
		event.PlanningID = planning.ID
		event.Planning = *planning
	}

	if err := s.eventRepo.Save(event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return s.Get(caller, event.ID)
}

// Delete removes an event and its memberships and returns the pre-deletion
// snapshot. Owner or maintainer.
func (s *EventService) Delete(caller policy.Caller, id uint64) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	if !policy.CanMutateEvent(caller, event.OwnerID) {
		return nil, ErrForbidden
	}

	if err := s.eventRepo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete event: %w", err)
	}

	return event, nil
}

// Invite adds a user to an event as a pending member; inviting yourself
// auto-accepts. The target must share the event's company unless the caller
// is a maintainer.
func (s *EventService) Invite(caller policy.Caller, eventID, targetUserID uint64) error {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event: %w", err)
	}

	target, err := s.userRepo.FindByID(targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if !policy.CanManageMembership(caller, target, event.Planning.CompanyID) {
		return ErrForbidden
	}

	if _, err := s.eventRepo.FindMembership(eventID, targetUserID); err == nil {
		return ErrAlreadyInEvent
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	now := time.Now()
	membership := &models.EventMembership{
		EventID:   event.ID,
		UserID:    target.ID,
		Accepted:  target.ID == caller.ID,
		AddedAt:   now,
		UpdatedAt: now,
	}

	if err := s.eventRepo.AddMembership(membership); err != nil {
		return fmt.Errorf("failed to add membership: %w", err)
	}

	if target.ID != caller.ID {
		s.notifyInvited(target.ID, event)
	}

	return nil
}

// Accept transitions the caller's pending invitation to accepted.
func (s *EventService) Accept(caller policy.Caller, eventID uint64) error {
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event: %w", err)
	}

	membership, err := s.eventRepo.FindMembership(eventID, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInviteNotFound
		}
		return fmt.Errorf("failed to find membership: %w", err)
	}

	if membership.Accepted {
		return ErrAlreadyAccepted
	}

	membership.Accepted = true
	membership.UpdatedAt = time.Now()
	if err := s.eventRepo.SaveMembership(membership); err != nil {
		return fmt.Errorf("failed to accept invitation: %w", err)
	}

	return nil
}

// Remove deletes a user's participation record. No history is retained.
func (s *EventService) Remove(caller policy.Caller, eventID, targetUserID uint64) error {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event: %w", err)
	}

	target, err := s.userRepo.FindByID(targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if !policy.CanManageMembership(caller, target, event.Planning.CompanyID) {
		return ErrForbidden
	}

	if _, err := s.eventRepo.FindMembership(eventID, targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotInEvent
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}

	if err := s.eventRepo.RemoveMembership(eventID, targetUserID); err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
	}

	return nil
}

// findVisibleEvent loads an event and hides it from callers outside its
// company; out-of-scope rows read as missing.
func (s *EventService) findVisibleEvent(caller policy.Caller, id uint64) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	if !caller.IsMaintainer() && !caller.InCompany(event.Planning.CompanyID) {
		return nil, ErrEventNotFound
	}

	return event, nil
}

// notifyInvited records a notification for the invited user. Best effort:
// the invitation itself already committed.
func (s *EventService) notifyInvited(userID uint64, event *models.Event) {
	notification := &models.Notification{
		Content: fmt.Sprintf("You have been invited to %s", event.Name),
		UserID:  userID,
	}
	_ = s.notificationRepo.Create(notification)
}

func validateEventRange(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidEventRange
	}
	if end.Sub(start) < constants.MinEventDuration {
		return ErrInvalidEventRange
	}
	return nil
}
