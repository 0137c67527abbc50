package application

import (
	"strings"
	"time"

	errors "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/core/common/validation"
	"github.com/clubware/club-management/internal/core/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application is a membership application submitted through the public form.
type Application struct {
	ID                  string     `json:"id" gorm:"primaryKey;column:id"`
	FirstName           string     `json:"firstName" gorm:"column:first_name;not null"`
	LastName            string     `json:"lastName" gorm:"column:last_name;not null"`
	Email               string     `json:"email" gorm:"column:email;uniqueIndex;not null"`
	Phone               string     `json:"phone,omitempty" gorm:"column:phone"`
	StudentID           string     `json:"studentId,omitempty" gorm:"column:student_id"`
	AcademicYear        string     `json:"academicYear,omitempty" gorm:"column:academic_year"`
	PreferredDepartment string     `json:"preferredDepartment" gorm:"column:preferred_department;not null"`
	SecondaryDepartment *string    `json:"secondaryDepartment,omitempty" gorm:"column:secondary_department"`
	Motivation          string     `json:"motivation,omitempty" gorm:"column:motivation"`
	Skills              string     `json:"skills,omitempty" gorm:"column:skills"`
	Status              string     `json:"status" gorm:"column:status;default:pending"`
	ReviewedBy          *string    `json:"reviewedBy,omitempty" gorm:"column:reviewed_by"`
	ReviewedAt          *time.Time `json:"reviewedAt,omitempty" gorm:"column:reviewed_at"`
	CreatedAt           time.Time  `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" gorm:"column:updated_at"`
}

func (Application) TableName() string {
	return "join_applications"
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// SubmitApplicationDTO is the public submission payload.
type SubmitApplicationDTO struct {
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	Email               string  `json:"email"`
	Phone               string  `json:"phone"`
	StudentID           string  `json:"studentId"`
	AcademicYear        string  `json:"academicYear"`
	PreferredDepartment string  `json:"preferredDepartment"`
	SecondaryDepartment *string `json:"secondaryDepartment"`
	Motivation          string  `json:"motivation"`
	Skills              string  `json:"skills"`
}

// Normalize trims whitespace and folds the email to lower case so the
// uniqueness check cannot be dodged by casing.
func (dto *SubmitApplicationDTO) Normalize() {
	dto.FirstName = strings.TrimSpace(dto.FirstName)
	dto.LastName = strings.TrimSpace(dto.LastName)
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	dto.Phone = strings.TrimSpace(dto.Phone)
	dto.StudentID = strings.TrimSpace(dto.StudentID)
	dto.Motivation = strings.TrimSpace(dto.Motivation)
	dto.Skills = strings.TrimSpace(dto.Skills)
}

func (dto SubmitApplicationDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("firstName", dto.FirstName).Required().MaxLength(100)
	v.Field("lastName", dto.LastName).Required().MaxLength(100)
	v.Field("email", dto.Email).Required().Email().MaxLength(255)
	v.Field("phone", dto.Phone).MaxLength(30)
	v.Field("studentId", dto.StudentID).MaxLength(30)
	v.Field("academicYear", dto.AcademicYear).OneOf(enums.AcademicYears)
	v.Field("preferredDepartment", dto.PreferredDepartment).Required().OneOf(enums.Departments)
	v.Field("secondaryDepartment", dto.SecondaryDepartment).OneOf(enums.Departments)
	v.Field("motivation", dto.Motivation).MaxLength(2000)
	v.Field("skills", dto.Skills).MaxLength(1000)
	return v.Validate()
}

// UpdateStatusDTO moves an application through review.
type UpdateStatusDTO struct {
	Status     string  `json:"status"`
	ReviewerID *string `json:"reviewerId"`
}

func (dto UpdateStatusDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("status", dto.Status).Required().OneOf(enums.ApplicationStatuses)
	return v.Validate()
}

// SubmitReceipt is the response shape for a successful submission.
type SubmitReceipt struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
