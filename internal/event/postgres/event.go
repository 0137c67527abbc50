package postgres

import (
	"time"

	"github.com/clubware/club-management/internal/core/enums"
	"github.com/clubware/club-management/internal/datastore"
	"github.com/clubware/club-management/internal/event"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRepository struct {
	db            *gorm.DB
	events        *datastore.Store[event.Event]
	registrations *datastore.Store[event.Registration]
}

func NewEventRepository(db *gorm.DB) event.Repository {
	return &EventRepository{
		db:            db,
		events:        datastore.NewStore[event.Event](db),
		registrations: datastore.NewStore[event.Registration](db),
	}
}

func (r *EventRepository) Create(e *event.Event) error {
	return r.events.Insert(e)
}

func (r *EventRepository) GetByID(id string) (*event.Event, error) {
	return r.events.FindByID(id)
}

func (r *EventRepository) List(filters map[string]any) ([]*event.Event, error) {
	return r.events.Query(datastore.QueryOptions{
		Filters: filters,
		OrderBy: "start_time ASC",
	})
}

func (r *EventRepository) Update(id string, fields map[string]any) (*event.Event, error) {
	return r.events.Update(id, fields)
}

func (r *EventRepository) Delete(id string) (bool, error) {
	return r.events.Delete(id)
}

// RegisterAttendee inserts a registration with a single conditional statement
// so the capacity invariant holds against concurrent registrations: the row
// only lands when the event has no capacity limit or the registered count is
// still below it. The unique (event_id, user_id) index rejects duplicates.
func (r *EventRepository) RegisterAttendee(eventID, userID string) (*event.Registration, error) {
	id := uuid.NewString()
	now := time.Now()

	result := r.db.Exec(`
		INSERT INTO event_registrations (id, event_id, user_id, status, created_at, updated_at)
		SELECT ?, ?, ?, ?, ?, ?
		WHERE (SELECT max_attendees FROM events WHERE id = ?) IS NULL
		   OR (SELECT COUNT(*) FROM event_registrations WHERE event_id = ? AND status = ?)
		      < (SELECT max_attendees FROM events WHERE id = ?)`,
		id, eventID, userID, enums.RegistrationStatusRegistered, now, now,
		eventID,
		eventID, enums.RegistrationStatusRegistered,
		eventID,
	)
	if result.Error != nil {
		return nil, datastore.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, event.ErrCapacityReached
	}

	return r.registrations.FindByID(id)
}

func (r *EventRepository) GetRegistration(eventID, userID string) (*event.Registration, error) {
	var reg event.Registration
	err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&reg).Error
	if err != nil {
		return nil, datastore.Translate(err)
	}
	return &reg, nil
}

func (r *EventRepository) ListRegistrations(eventID string) ([]*event.Registration, error) {
	return r.registrations.Query(datastore.QueryOptions{
		Filters: map[string]any{"event_id": eventID},
		OrderBy: "created_at ASC",
	})
}

func (r *EventRepository) CountRegistrations(eventID, status string) (int, error) {
	count, err := r.registrations.Count(map[string]any{
		"event_id": eventID,
		"status":   status,
	})
	return int(count), err
}
