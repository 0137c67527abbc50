package announcement

import (
	"strings"
	"time"

	errors "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/core/common/validation"
	"github.com/clubware/club-management/internal/core/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Announcement is a club-wide or targeted notice.
type Announcement struct {
	ID               string    `json:"id" gorm:"primaryKey;column:id"`
	Title            string    `json:"title" gorm:"column:title;not null"`
	Content          string    `json:"content" gorm:"column:content;not null"`
	IsImportant      bool      `json:"isImportant" gorm:"column:is_important;default:false"`
	Category         string    `json:"category,omitempty" gorm:"column:category"`
	TargetAudience   string    `json:"targetAudience" gorm:"column:target_audience;default:all"`
	TargetDepartment *string   `json:"targetDepartment,omitempty" gorm:"column:target_department"`
	CreatedBy        string    `json:"createdBy,omitempty" gorm:"column:created_by"`
	CreatedAt        time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt        time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Announcement) TableName() string {
	return "announcements"
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type CreateAnnouncementDTO struct {
	Title            string  `json:"title"`
	Content          string  `json:"content"`
	IsImportant      bool    `json:"isImportant"`
	Category         string  `json:"category"`
	TargetAudience   string  `json:"targetAudience"`
	TargetDepartment *string `json:"targetDepartment"`
}

func (dto CreateAnnouncementDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLength(200)
	v.Field("content", dto.Content).Required().MaxLength(10000)
	v.Field("category", dto.Category).MaxLength(50)
	v.Field("targetAudience", dto.TargetAudience).OneOf(enums.Audiences)
	v.Field("targetDepartment", dto.TargetDepartment).OneOf(enums.Departments)
	v.Field("targetDepartment", dto.TargetDepartment).Custom(func(value interface{}) *errors.AppError {
		if dto.TargetAudience == enums.AudienceDepartment {
			if dto.TargetDepartment == nil || *dto.TargetDepartment == "" {
				return errors.NewValidationFieldError("targetDepartment",
					"targetDepartment is required when targetAudience is department",
					errors.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	return v.Validate()
}

// UpdateAnnouncementDTO carries the allow-listed mutable fields.
type UpdateAnnouncementDTO struct {
	Title            *string `json:"title"`
	Content          *string `json:"content"`
	IsImportant      *bool   `json:"isImportant"`
	Category         *string `json:"category"`
	TargetAudience   *string `json:"targetAudience"`
	TargetDepartment *string `json:"targetDepartment"`
}

func (dto UpdateAnnouncementDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("title", dto.Title).MinLength(1).MaxLength(200)
	v.Field("content", dto.Content).MinLength(1).MaxLength(10000)
	v.Field("category", dto.Category).MaxLength(50)
	v.Field("targetAudience", dto.TargetAudience).OneOf(enums.Audiences)
	v.Field("targetDepartment", dto.TargetDepartment).OneOf(enums.Departments)
	return v.Validate()
}

func (dto UpdateAnnouncementDTO) Fields() map[string]any {
	fields := map[string]any{}
	if dto.Title != nil {
		fields["title"] = strings.TrimSpace(*dto.Title)
	}
	if dto.Content != nil {
		fields["content"] = *dto.Content
	}
	if dto.IsImportant != nil {
		fields["is_important"] = *dto.IsImportant
	}
	if dto.Category != nil {
		fields["category"] = *dto.Category
	}
	if dto.TargetAudience != nil {
		fields["target_audience"] = *dto.TargetAudience
	}
	if dto.TargetDepartment != nil {
		fields["target_department"] = *dto.TargetDepartment
	}
	return fields
}

// ListFilters narrows the announcement list.
type ListFilters struct {
	Category         string
	IsImportant      *bool
	TargetAudience   string
	TargetDepartment string
}

func (f ListFilters) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("targetAudience", f.TargetAudience).OneOf(enums.Audiences)
	v.Field("targetDepartment", f.TargetDepartment).OneOf(enums.Departments)
	return v.Validate()
}
