package user

import (
	"errors"
	"log/slog"
	"strings"

	app "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/core/enums"
	"github.com/clubware/club-management/internal/datastore"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Repository defines the data access methods for users.
type Repository interface {
	Create(u *User) error
	GetByID(id string) (*User, error)
	List(filters map[string]any) ([]*User, error)
	Update(id string, fields map[string]any) (*User, error)
	EmailExists(email string) (bool, error)
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, bcryptCost: bcryptCost, logger: logger}
}

func (s *Service) List(filters ListFilters) ([]*User, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	columns := map[string]any{}
	if filters.Role != "" {
		columns["role"] = filters.Role
	}
	if filters.Department != "" {
		columns["department"] = filters.Department
	}
	if filters.IsActive != nil {
		columns["is_active"] = *filters.IsActive
	}

	users, err := s.repo.List(columns)
	if err != nil {
		return nil, app.NewDataAccessError("failed to list users", err)
	}
	return users, nil
}

func (s *Service) GetByID(id string) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, app.ErrUserNotFound
		}
		return nil, app.NewDataAccessError("failed to load user", err)
	}
	return u, nil
}

// Provision creates a user account, merging the caller's overrides onto the
// default member profile template.
func (s *Service) Provision(dto CreateUserDTO) (*User, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, app.NewInternalError("failed to hash password", err)
	}

	u := s.defaultProfile()
	u.FirstName = dto.FirstName
	u.LastName = dto.LastName
	u.Email = dto.Email
	u.Phone = dto.Phone
	u.StudentID = dto.StudentID
	u.PasswordHash = string(hash)
	if dto.AcademicYear != "" {
		u.AcademicYear = dto.AcademicYear
	}
	if dto.Role != "" {
		u.Role = dto.Role
	}
	if dto.Department != "" {
		u.Department = dto.Department
	}

	if err := s.repo.Create(u); err != nil {
		if errors.Is(err, datastore.ErrConflict) {
			return nil, app.ErrEmailExists
		}
		return nil, app.NewDataAccessError("failed to create user", err)
	}

	s.logger.Info("user provisioned", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// ProvisionMember creates a member account for an approved applicant with a
// random placeholder password; the member sets a real one through the
// upstream identity provider.
func (s *Service) ProvisionMember(firstName, lastName, email, department, academicYear string) error {
	_, err := s.Provision(CreateUserDTO{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Password:     uuid.NewString(),
		Department:   department,
		AcademicYear: academicYear,
	})
	return err
}

func (s *Service) Update(id string, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	fields := dto.Fields()
	if len(fields) == 0 {
		return s.GetByID(id)
	}

	updated, err := s.repo.Update(id, fields)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return nil, app.ErrUserNotFound
		}
		return nil, app.NewDataAccessError("failed to update user", err)
	}
	return updated, nil
}

func (s *Service) EmailExists(email string) (bool, error) {
	return s.repo.EmailExists(strings.ToLower(strings.TrimSpace(email)))
}

// SeedAdmin creates the initial administrator account if no account exists
// for the configured email. Exposed to the seed command only, never routed.
func (s *Service) SeedAdmin(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	exists, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, app.NewDataAccessError("failed to check admin account", err)
	}
	if exists {
		return nil, app.ErrAdminExists
	}

	return s.Provision(CreateUserDTO{
		FirstName: "Club",
		LastName:  "Admin",
		Email:     email,
		Password:  password,
		Role:      enums.RoleAdmin,
	})
}

func (s *Service) defaultProfile() *User {
	return &User{
		Role:     enums.RoleMember,
		IsActive: true,
	}
}
