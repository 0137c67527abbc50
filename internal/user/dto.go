package user

import (
	"strings"
	"time"

	errors "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/core/common/validation"
	"github.com/clubware/club-management/internal/core/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a club member profile. The password hash never serializes.
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;column:id"`
	FirstName    string     `json:"firstName" gorm:"column:first_name;not null"`
	LastName     string     `json:"lastName" gorm:"column:last_name;not null"`
	Email        string     `json:"email" gorm:"column:email;uniqueIndex;not null"`
	Phone        string     `json:"phone,omitempty" gorm:"column:phone"`
	StudentID    string     `json:"studentId,omitempty" gorm:"column:student_id"`
	AcademicYear string     `json:"academicYear,omitempty" gorm:"column:academic_year"`
	Role         string     `json:"role" gorm:"column:role;default:member"`
	Department   string     `json:"department,omitempty" gorm:"column:department"`
	IsActive     bool       `json:"isActive" gorm:"column:is_active;default:true"`
	PasswordHash string     `json:"-" gorm:"column:password_hash"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" gorm:"column:last_login_at"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// CreateUserDTO is the admin provisioning payload. Unset optional fields fall
// back to the default member profile template.
type CreateUserDTO struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone"`
	StudentID    string `json:"studentId"`
	AcademicYear string `json:"academicYear"`
	Role         string `json:"role"`
	Department   string `json:"department"`
}

func (dto *CreateUserDTO) Normalize() {
	dto.FirstName = strings.TrimSpace(dto.FirstName)
	dto.LastName = strings.TrimSpace(dto.LastName)
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	dto.Phone = strings.TrimSpace(dto.Phone)
	dto.StudentID = strings.TrimSpace(dto.StudentID)
}

func (dto CreateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("firstName", dto.FirstName).Required().MaxLength(100)
	v.Field("lastName", dto.LastName).Required().MaxLength(100)
	v.Field("email", dto.Email).Required().Email().MaxLength(255)
	v.Field("password", dto.Password).Required().MinLength(8).MaxLength(128)
	v.Field("phone", dto.Phone).MaxLength(30)
	v.Field("studentId", dto.StudentID).MaxLength(30)
	v.Field("academicYear", dto.AcademicYear).OneOf(enums.AcademicYears)
	v.Field("role", dto.Role).OneOf(enums.Roles)
	v.Field("department", dto.Department).OneOf(enums.Departments)
	return v.Validate()
}

// UpdateUserDTO carries the allow-listed mutable profile fields. Nil means
// leave unchanged.
type UpdateUserDTO struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Phone        *string `json:"phone"`
	StudentID    *string `json:"studentId"`
	AcademicYear *string `json:"academicYear"`
	Role         *string `json:"role"`
	Department   *string `json:"department"`
	IsActive     *bool   `json:"isActive"`
}

func (dto UpdateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("firstName", dto.FirstName).MaxLength(100)
	v.Field("lastName", dto.LastName).MaxLength(100)
	v.Field("phone", dto.Phone).MaxLength(30)
	v.Field("studentId", dto.StudentID).MaxLength(30)
	v.Field("academicYear", dto.AcademicYear).OneOf(enums.AcademicYears)
	v.Field("role", dto.Role).OneOf(enums.Roles)
	v.Field("department", dto.Department).OneOf(enums.Departments)
	return v.Validate()
}

// Fields maps the set values onto the allow-listed columns.
func (dto UpdateUserDTO) Fields() map[string]any {
	fields := map[string]any{}
	if dto.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*dto.FirstName)
	}
	if dto.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*dto.LastName)
	}
	if dto.Phone != nil {
		fields["phone"] = strings.TrimSpace(*dto.Phone)
	}
	if dto.StudentID != nil {
		fields["student_id"] = strings.TrimSpace(*dto.StudentID)
	}
	if dto.AcademicYear != nil {
		fields["academic_year"] = *dto.AcademicYear
	}
	if dto.Role != nil {
		fields["role"] = *dto.Role
	}
	if dto.Department != nil {
		fields["department"] = *dto.Department
	}
	if dto.IsActive != nil {
		fields["is_active"] = *dto.IsActive
	}
	return fields
}

// ListFilters narrows the user list.
type ListFilters struct {
	Role       string
	Department string
	IsActive   *bool
}

func (f ListFilters) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("role", f.Role).OneOf(enums.Roles)
	v.Field("department", f.Department).OneOf(enums.Departments)
	return v.Validate()
}
