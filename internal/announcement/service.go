package announcement

import (
	"errors"
	"log/slog"
	"time"

	app "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/core/enums"
	"github.com/clubware/club-management/internal/datastore"
)

// Repository defines the data access methods for announcements.
type Repository interface {
	Create(a *Announcement) error
	GetByID(id string) (*Announcement, error)
	List(filters map[string]any) ([]*Announcement, error)
	Update(id string, fields map[string]any) (*Announcement, error)
	Delete(id string) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(filters ListFilters) ([]*Announcement, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	columns := map[string]any{}
	if filters.Category != "" {
		columns["category"] = filters.Category
	}
	if filters.IsImportant != nil {
		columns["is_important"] = *filters.IsImportant
	}
	if filters.TargetAudience != "" {
		columns["target_audience"] = filters.TargetAudience
	}
	if filters.TargetDepartment != "" {
		columns["target_department"] = filters.TargetDepartment
	}

	announcements, err := s.repo.List(columns)
	if err != nil {
		return nil, app.NewDataAccessError("failed to list announcements", err)
	}
	return announcements, nil
}

func (s *Service) GetByID(id string) (*Announcement, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, app.ErrAnnouncementNotFound
		}
		return nil, app.NewDataAccessError("failed to load announcement", err)
	}
	return a, nil
}

func (s *Service) Create(dto CreateAnnouncementDTO, createdBy string) (*Announcement, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	audience := dto.TargetAudience
	if audience == "" {
		audience = enums.AudienceAll
	}

	a := &Announcement{
		Title:            dto.Title,
		Content:          dto.Content,
		IsImportant:      dto.IsImportant,
		Category:         dto.Category,
		TargetAudience:   audience,
		TargetDepartment: dto.TargetDepartment,
		CreatedBy:        createdBy,
	}

	if err := s.repo.Create(a); err != nil {
		return nil, app.NewDataAccessError("failed to create announcement", err)
	}

	s.logger.Info("announcement created", "announcement_id", a.ID, "audience", a.TargetAudience)
	return a, nil
}

func (s *Service) Update(id string, dto UpdateAnnouncementDTO) (*Announcement, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	fields := dto.Fields()
	if len(fields) == 0 {
		return s.GetByID(id)
	}
	fields["updated_at"] = time.Now()

	updated, err := s.repo.Update(id, fields)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, app.ErrAnnouncementNotFound
		}
		return nil, app.NewDataAccessError("failed to update announcement", err)
	}
	return updated, nil
}

func (s *Service) Delete(id string) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return app.NewDataAccessError("failed to delete announcement", err)
	}
	if !deleted {
		return app.ErrAnnouncementNotFound
	}
	return nil
}
