package application

import (
	"errors"
	"log/slog"
	"time"

	app "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/core/common/validation"
	"github.com/clubware/club-management/internal/core/enums"
	"github.com/clubware/club-management/internal/datastore"
)

// Repository defines the data access methods for applications.
type Repository interface {
	Create(a *Application) error
	GetByID(id string) (*Application, error)
	List(status string) ([]*Application, error)
	Update(id string, fields map[string]any) (*Application, error)
	EmailExists(email string) (bool, error)
}

// UserDirectory is the slice of the user domain the application flow needs:
// the duplicate-email check on submit and member provisioning on approval.
type UserDirectory interface {
	EmailExists(email string) (bool, error)
	ProvisionMember(firstName, lastName, email, department, academicYear string) error
}

type Service struct {
	repo   Repository
	users  UserDirectory
	logger *slog.Logger
}

func NewService(repo Repository, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, logger: logger}
}

// Submit validates and stores a new pending application. One application and
// one account per email; the unique index backs up the pre-checks against
// concurrent submissions.
func (s *Service) Submit(dto SubmitApplicationDTO) (*Application, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if exists, err := s.repo.EmailExists(dto.Email); err != nil {
		return nil, app.NewDataAccessError("failed to check existing applications", err)
	} else if exists {
		return nil, app.ErrEmailExists
	}

	if exists, err := s.users.EmailExists(dto.Email); err != nil {
		return nil, app.NewDataAccessError("failed to check existing users", err)
	} else if exists {
		return nil, app.ErrEmailExists
	}

	application := &Application{
		FirstName:           dto.FirstName,
		LastName:            dto.LastName,
		Email:               dto.Email,
		Phone:               dto.Phone,
		StudentID:           dto.StudentID,
		AcademicYear:        dto.AcademicYear,
		PreferredDepartment: dto.PreferredDepartment,
		SecondaryDepartment: dto.SecondaryDepartment,
		Motivation:          dto.Motivation,
		Skills:              dto.Skills,
		Status:              enums.ApplicationStatusPending,
	}

	if err := s.repo.Create(application); err != nil {
		if errors.Is(err, datastore.ErrConflict) {
			return nil, app.ErrEmailExists
		}
		return nil, app.NewDataAccessError("failed to store application", err)
	}

	s.logger.Info("application submitted",
		"application_id", application.ID,
		"department", application.PreferredDepartment)

	return application, nil
}

// List returns applications newest first, optionally narrowed to one status.
func (s *Service) List(status string) ([]*Application, error) {
	v := validation.NewValidator()
	v.Field("status", status).OneOf(enums.ApplicationStatuses)
	if err := v.Validate(); err != nil {
		return nil, err
	}

	applications, err := s.repo.List(status)
	if err != nil {
		return nil, app.NewDataAccessError("failed to list applications", err)
	}
	return applications, nil
}

func (s *Service) GetByID(id string) (*Application, error) {
	application, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, app.ErrApplicationNotFound
		}
		return nil, app.NewDataAccessError("failed to load application", err)
	}
	return application, nil
}

// UpdateStatus moves an application through review and stamps the reviewer.
// Approval also provisions a member account for the applicant unless one
// already exists for that email.
func (s *Service) UpdateStatus(id string, dto UpdateStatusDTO) (*Application, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	fields := map[string]any{
		"status":      dto.Status,
		"reviewed_at": now,
		"updated_at":  now,
	}
	if dto.ReviewerID != nil {
		fields["reviewed_by"] = *dto.ReviewerID
	}

	updated, err := s.repo.Update(id, fields)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, app.ErrApplicationNotFound
		}
		return nil, app.NewDataAccessError("failed to update application", err)
	}

	if dto.Status == enums.ApplicationStatusApproved {
		if err := s.provisionApplicant(updated); err != nil {
			s.logger.Error("failed to provision member for approved application",
				"application_id", updated.ID, "error", err)
		}
	}

	s.logger.Info("application reviewed",
		"application_id", updated.ID,
		"status", updated.Status)

	return updated, nil
}

func (s *Service) provisionApplicant(a *Application) error {
	exists, err := s.users.EmailExists(a.Email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.users.ProvisionMember(a.FirstName, a.LastName, a.Email, a.PreferredDepartment, a.AcademicYear)
}
