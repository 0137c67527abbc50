package event

import (
	"errors"
	"log/slog"
	"time"

	app "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/core/enums"
	"github.com/clubware/club-management/internal/datastore"
)

// Repository defines the data access methods for events and registrations.
// RegisterAttendee must enforce the capacity and uniqueness invariants inside
// the store: a conditional insert that fails with ErrEventFull when the
// registered count has reached max_attendees, and ErrConflict on a duplicate
// (event, user) pair.
type Repository interface {
	Create(e *Event) error
	GetByID(id string) (*Event, error)
	List(filters map[string]any) ([]*Event, error)
	Update(id string, fields map[string]any) (*Event, error)
	Delete(id string) (bool, error)

	RegisterAttendee(eventID, userID string) (*Registration, error)
	GetRegistration(eventID, userID string) (*Registration, error)
	ListRegistrations(eventID string) ([]*Registration, error)
	CountRegistrations(eventID, status string) (int, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(filters ListFilters) ([]*Event, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	columns := map[string]any{}
	if filters.IsActive != nil {
		columns["is_active"] = *filters.IsActive
	}
	if filters.Status != "" {
		columns["status"] = filters.Status
	}
	if filters.Department != "" {
		columns["department"] = filters.Department
	}

	events, err := s.repo.List(columns)
	if err != nil {
		return nil, app.NewDataAccessError("failed to list events", err)
	}

	if filters.Upcoming {
		now := time.Now()
		upcoming := events[:0]
		for _, e := range events {
			if e.StartTime.After(now) {
				upcoming = append(upcoming, e)
			}
		}
		events = upcoming
	}

	return events, nil
}

// GetByID loads an event and recomputes currentAttendees from the registered
// rows instead of trusting the stored counter.
func (s *Service) GetByID(id string) (*Event, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, app.ErrEventNotFound
		}
		return nil, app.NewDataAccessError("failed to load event", err)
	}

	count, err := s.repo.CountRegistrations(id, enums.RegistrationStatusRegistered)
	if err != nil {
		return nil, app.NewDataAccessError("failed to count registrations", err)
	}
	e.CurrentAttendees = count

	return e, nil
}

func (s *Service) Create(dto CreateEventDTO, createdBy string) (*Event, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e := &Event{
		Title:        dto.Title,
		Description:  dto.Description,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		Location:     dto.Location,
		Department:   dto.Department,
		Difficulty:   dto.Difficulty,
		MaxAttendees: dto.MaxAttendees,
		Status:       enums.EventStatusDraft,
		IsActive:     false,
		CreatedBy:    createdBy,
	}

	if err := s.repo.Create(e); err != nil {
		return nil, app.NewDataAccessError("failed to create event", err)
	}

	s.logger.Info("event created", "event_id", e.ID, "title", e.Title)
	return e, nil
}

// Update applies the allow-listed fields. The first transition of isActive to
// true stamps activationDate; later activations never re-stamp it.
func (s *Service) Update(id string, dto UpdateEventDTO) (*Event, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, app.ErrEventNotFound
		}
		return nil, app.NewDataAccessError("failed to load event", err)
	}

	fields := dto.Fields()
	if dto.IsActive != nil && *dto.IsActive && existing.ActivationDate == nil {
		fields["activation_date"] = time.Now()
	}
	if len(fields) == 0 {
		return existing, nil
	}
	fields["updated_at"] = time.Now()

	updated, err := s.repo.Update(id, fields)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, app.ErrEventNotFound
		}
		return nil, app.NewDataAccessError("failed to update event", err)
	}

	return updated, nil
}

// Delete removes an event; its registrations go with it through the store's
// foreign-key cascade.
func (s *Service) Delete(id string) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return app.NewDataAccessError("failed to delete event", err)
	}
	if !deleted {
		return app.ErrEventNotFound
	}

	s.logger.Info("event deleted", "event_id", id)
	return nil
}

// Register checks existence, the activation gate and prior registration, then
// hands the capacity decision to the store's conditional insert. The unique
// index catches duplicate submissions that race past the pre-check.
func (s *Service) Register(eventID string, dto RegisterDTO) (*Registration, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, app.ErrEventNotFound
		}
		return nil, app.NewDataAccessError("failed to load event", err)
	}

	if !e.IsActive {
		return nil, app.ErrEventNotActive
	}

	existing, err := s.repo.GetRegistration(eventID, dto.UserID)
	if err != nil && !errors.Is(err, datastore.ErrNotFound) {
		return nil, app.NewDataAccessError("failed to check registration", err)
	}
	if existing != nil {
		return nil, app.ErrAlreadyRegistered
	}

	registration, err := s.repo.RegisterAttendee(eventID, dto.UserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrCapacityReached):
			return nil, app.ErrEventFull
		case errors.Is(err, datastore.ErrConflict):
			return nil, app.ErrAlreadyRegistered
		}
		return nil, app.NewDataAccessError("failed to register for event", err)
	}

	s.logger.Info("registration created",
		"event_id", eventID,
		"user_id", dto.UserID)

	return registration, nil
}

// Registrations builds the admin report: event summary, per-status counts,
// full registration list.
func (s *Service) Registrations(eventID string) (*RegistrationReport, error) {
	e, err := s.repo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, app.ErrEventNotFound
		}
		return nil, app.NewDataAccessError("failed to load event", err)
	}

	registrations, err := s.repo.ListRegistrations(eventID)
	if err != nil {
		return nil, app.NewDataAccessError("failed to list registrations", err)
	}

	counts := map[string]int{}
	for _, status := range enums.RegistrationStatuses {
		counts[status] = 0
	}
	for _, r := range registrations {
		counts[r.Status]++
	}

	return &RegistrationReport{
		Event: EventSummary{
			ID:           e.ID,
			Title:        e.Title,
			StartTime:    e.StartTime,
			MaxAttendees: e.MaxAttendees,
		},
		Counts:        counts,
		Registrations: registrations,
	}, nil
}

// ErrCapacityReached is returned by the repository when the conditional
// insert finds the event at capacity.
var ErrCapacityReached = errors.New("event: capacity reached")
