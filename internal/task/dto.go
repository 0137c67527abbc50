package task

import (
	"strings"
	"time"

	errors "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/core/common/validation"
	"github.com/clubware/club-management/internal/core/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a unit of club work assigned to a member. Progress and status are
// coupled: reaching 100 completes the task and completing forces 100.
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey;column:id"`
	Title       string     `json:"title" gorm:"column:title;not null"`
	Description string     `json:"description,omitempty" gorm:"column:description"`
	Status      string     `json:"status" gorm:"column:status;default:pending"`
	Priority    string     `json:"priority" gorm:"column:priority;default:medium"`
	Progress    int        `json:"progress" gorm:"column:progress;default:0"`
	AssignedTo  string     `json:"assignedTo,omitempty" gorm:"column:assigned_to"`
	AssignedBy  string     `json:"assignedBy,omitempty" gorm:"column:assigned_by"`
	Department  string     `json:"department,omitempty" gorm:"column:department"`
	DueDate     *time.Time `json:"dueDate,omitempty" gorm:"column:due_date"`
	CompletedAt *time.Time `json:"completedAt,omitempty" gorm:"column:completed_at"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type CreateTaskDTO struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	AssignedTo  string     `json:"assignedTo"`
	Department  string     `json:"department"`
	DueDate     *time.Time `json:"dueDate"`
}

func (dto CreateTaskDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLength(200)
	v.Field("description", dto.Description).MaxLength(5000)
	v.Field("priority", dto.Priority).OneOf(enums.TaskPriorities)
	v.Field("assignedTo", dto.AssignedTo).Required()
	v.Field("department", dto.Department).OneOf(enums.Departments)
	return v.Validate()
}

// UpdateTaskDTO carries the allow-listed mutable task fields. A progress
// value outside [0,100] is rejected outright rather than silently dropped,
// matching the strictness of creation.
type UpdateTaskDTO struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	Progress    *int       `json:"progress"`
	AssignedTo  *string    `json:"assignedTo"`
	Department  *string    `json:"department"`
	DueDate     *time.Time `json:"dueDate"`
}

func (dto UpdateTaskDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("title", dto.Title).MinLength(1).MaxLength(200)
	v.Field("description", dto.Description).MaxLength(5000)
	v.Field("status", dto.Status).OneOf(enums.TaskStatuses)
	v.Field("priority", dto.Priority).OneOf(enums.TaskPriorities)
	v.Field("progress", dto.Progress).IntRange(0, 100, errors.ErrCodeInvalidProgress)
	v.Field("department", dto.Department).OneOf(enums.Departments)
	return v.Validate()
}

func (dto UpdateTaskDTO) Fields() map[string]any {
	fields := map[string]any{}
	if dto.Title != nil {
		fields["title"] = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		fields["description"] = *dto.Description
	}
	if dto.Status != nil {
		fields["status"] = *dto.Status
	}
	if dto.Priority != nil {
		fields["priority"] = *dto.Priority
	}
	if dto.Progress != nil {
		fields["progress"] = *dto.Progress
	}
	if dto.AssignedTo != nil {
		fields["assigned_to"] = *dto.AssignedTo
	}
	if dto.Department != nil {
		fields["department"] = *dto.Department
	}
	if dto.DueDate != nil {
		fields["due_date"] = *dto.DueDate
	}
	return fields
}

// ListFilters narrows the task list.
type ListFilters struct {
	AssignedTo string
	AssignedBy string
	Status     string
	Priority   string
	Department string
}

func (f ListFilters) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("status", f.Status).OneOf(enums.TaskStatuses)
	v.Field("priority", f.Priority).OneOf(enums.TaskPriorities)
	v.Field("department", f.Department).OneOf(enums.Departments)
	return v.Validate()
}
