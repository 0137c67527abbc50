package task

import (
	"errors"
	"log/slog"
	"time"

	app "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/core/enums"
	"github.com/clubware/club-management/internal/datastore"
)

// Repository defines the data access methods for tasks.
type Repository interface {
	Create(t *Task) error
	GetByID(id string) (*Task, error)
	List(filters map[string]any) ([]*Task, error)
	Update(id string, fields map[string]any) (*Task, error)
	Delete(id string) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(filters ListFilters) ([]*Task, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	columns := map[string]any{}
	if filters.AssignedTo != "" {
		columns["assigned_to"] = filters.AssignedTo
	}
	if filters.AssignedBy != "" {
		columns["assigned_by"] = filters.AssignedBy
	}
	if filters.Status != "" {
		columns["status"] = filters.Status
	}
	if filters.Priority != "" {
		columns["priority"] = filters.Priority
	}
	if filters.Department != "" {
		columns["department"] = filters.Department
	}

	tasks, err := s.repo.List(columns)
	if err != nil {
		return nil, app.NewDataAccessError("failed to list tasks", err)
	}
	return tasks, nil
}

func (s *Service) GetByID(id string) (*Task, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, app.ErrTaskNotFound
		}
		return nil, app.NewDataAccessError("failed to load task", err)
	}
	return t, nil
}

// Create stores a new task. Status and progress always start at pending/0,
// whatever the caller sent.
func (s *Service) Create(dto CreateTaskDTO, assignedBy string) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	priority := dto.Priority
	if priority == "" {
		priority = enums.TaskPriorityMedium
	}

	t := &Task{
		Title:       dto.Title,
		Description: dto.Description,
		Status:      enums.TaskStatusPending,
		Priority:    priority,
		Progress:    0,
		AssignedTo:  dto.AssignedTo,
		AssignedBy:  assignedBy,
		Department:  dto.Department,
		DueDate:     dto.DueDate,
	}

	if err := s.repo.Create(t); err != nil {
		return nil, app.NewDataAccessError("failed to create task", err)
	}

	s.logger.Info("task created", "task_id", t.ID, "assigned_to", t.AssignedTo)
	return t, nil
}

// Update applies the allow-listed fields and the completion rule: moving
// status to completed forces progress to 100, and raising progress to 100
// completes the task. Both stamp completedAt once.
func (s *Service) Update(id string, dto UpdateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, app.ErrTaskNotFound
		}
		return nil, app.NewDataAccessError("failed to load task", err)
	}

	fields := dto.Fields()

	wasCompleted := existing.Status == enums.TaskStatusCompleted
	completing := false
	if dto.Status != nil && *dto.Status == enums.TaskStatusCompleted && !wasCompleted {
		completing = true
	}
	if dto.Progress != nil && *dto.Progress == 100 && !wasCompleted {
		completing = true
	}

	if completing {
		now := time.Now()
		fields["status"] = enums.TaskStatusCompleted
		fields["progress"] = 100
		fields["completed_at"] = now
	}

	if len(fields) == 0 {
		return existing, nil
	}
	fields["updated_at"] = time.Now()

	updated, err := s.repo.Update(id, fields)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, app.ErrTaskNotFound
		}
		return nil, app.NewDataAccessError("failed to update task", err)
	}

	return updated, nil
}

func (s *Service) Delete(id string) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return app.NewDataAccessError("failed to delete task", err)
	}
	if !deleted {
		return app.ErrTaskNotFound
	}
	return nil
}
