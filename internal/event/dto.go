package event

import (
	"strings"
	"time"

	errors "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/core/common/validation"
	"github.com/clubware/club-management/internal/core/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a club event. Status tracks the lifecycle; IsActive is an
// independent registration gate flipped by admins.
type Event struct {
	ID               string     `json:"id" gorm:"primaryKey;column:id"`
	Title            string     `json:"title" gorm:"column:title;not null"`
	Description      string     `json:"description,omitempty" gorm:"column:description"`
	StartTime        time.Time  `json:"startTime" gorm:"column:start_time;not null"`
	EndTime          *time.Time `json:"endTime,omitempty" gorm:"column:end_time"`
	Location         string     `json:"location,omitempty" gorm:"column:location"`
	Department       string     `json:"department,omitempty" gorm:"column:department"`
	Difficulty       string     `json:"difficulty,omitempty" gorm:"column:difficulty"`
	MaxAttendees     *int       `json:"maxAttendees,omitempty" gorm:"column:max_attendees"`
	CurrentAttendees int        `json:"currentAttendees" gorm:"column:current_attendees;default:0"`
	Status           string     `json:"status" gorm:"column:status;default:draft"`
	IsActive         bool       `json:"isActive" gorm:"column:is_active;default:false"`
	ActivationDate   *time.Time `json:"activationDate,omitempty" gorm:"column:activation_date"`
	CreatedBy        string     `json:"createdBy,omitempty" gorm:"column:created_by"`
	CreatedAt        time.Time  `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" gorm:"column:updated_at"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Registration links a user to an event. (event, user) is unique in the store.
type Registration struct {
	ID        string    `json:"id" gorm:"primaryKey;column:id"`
	EventID   string    `json:"eventId" gorm:"column:event_id;uniqueIndex:idx_event_user;not null"`
	UserID    string    `json:"userId" gorm:"column:user_id;uniqueIndex:idx_event_user;not null"`
	Status    string    `json:"status" gorm:"column:status;default:registered"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Registration) TableName() string {
	return "event_registrations"
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type CreateEventDTO struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	Location     string     `json:"location"`
	Department   string     `json:"department"`
	Difficulty   string     `json:"difficulty"`
	MaxAttendees *int       `json:"maxAttendees"`
}

func (dto CreateEventDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLength(200)
	v.Field("description", dto.Description).MaxLength(5000)
	v.Field("startTime", dto.StartTime).Custom(func(value interface{}) *errors.AppError {
		if t, ok := value.(time.Time); ok && t.IsZero() {
			return errors.NewValidationFieldError("startTime", "startTime is required", errors.ErrCodeValidationFailed)
		}
		return nil
	})
	v.Field("location", dto.Location).MaxLength(255)
	v.Field("department", dto.Department).OneOf(enums.Departments)
	v.Field("difficulty", dto.Difficulty).OneOf(enums.EventDifficulties)
	v.Field("maxAttendees", dto.MaxAttendees).Positive()
	return v.Validate()
}

// UpdateEventDTO carries the allow-listed mutable event fields, including the
// status and isActive gates. Nil means leave unchanged.
type UpdateEventDTO struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	StartTime    *time.Time `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	Location     *string    `json:"location"`
	Department   *string    `json:"department"`
	Difficulty   *string    `json:"difficulty"`
	MaxAttendees *int       `json:"maxAttendees"`
	Status       *string    `json:"status"`
	IsActive     *bool      `json:"isActive"`
}

func (dto UpdateEventDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("title", dto.Title).MinLength(1).MaxLength(200)
	v.Field("description", dto.Description).MaxLength(5000)
	v.Field("location", dto.Location).MaxLength(255)
	v.Field("department", dto.Department).OneOf(enums.Departments)
	v.Field("difficulty", dto.Difficulty).OneOf(enums.EventDifficulties)
	v.Field("maxAttendees", dto.MaxAttendees).Positive()
	v.Field("status", dto.Status).OneOf(enums.EventStatuses)
	return v.Validate()
}

func (dto UpdateEventDTO) Fields() map[string]any {
	fields := map[string]any{}
	if dto.Title != nil {
		fields["title"] = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		fields["description"] = *dto.Description
	}
	if dto.StartTime != nil {
		fields["start_time"] = *dto.StartTime
	}
	if dto.EndTime != nil {
		fields["end_time"] = *dto.EndTime
	}
	if dto.Location != nil {
		fields["location"] = strings.TrimSpace(*dto.Location)
	}
	if dto.Department != nil {
		fields["department"] = *dto.Department
	}
	if dto.Difficulty != nil {
		fields["difficulty"] = *dto.Difficulty
	}
	if dto.MaxAttendees != nil {
		fields["max_attendees"] = *dto.MaxAttendees
	}
	if dto.Status != nil {
		fields["status"] = *dto.Status
	}
	if dto.IsActive != nil {
		fields["is_active"] = *dto.IsActive
	}
	return fields
}

type RegisterDTO struct {
	UserID string `json:"userId"`
}

func (dto RegisterDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("userId", dto.UserID).Required()
	return v.Validate()
}

// ListFilters narrows the event list.
type ListFilters struct {
	IsActive   *bool
	Status     string
	Department string
	Upcoming   bool
}

func (f ListFilters) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("status", f.Status).OneOf(enums.EventStatuses)
	v.Field("department", f.Department).OneOf(enums.Departments)
	return v.Validate()
}

// EventSummary heads the registrations listing.
type EventSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	StartTime    time.Time `json:"startTime"`
	MaxAttendees *int      `json:"maxAttendees,omitempty"`
}

// RegistrationReport is the admin view of an event's registrations.
type RegistrationReport struct {
	Event         EventSummary    `json:"event"`
	Counts        map[string]int  `json:"counts"`
	Registrations []*Registration `json:"registrations"`
}
