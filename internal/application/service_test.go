package application_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	app "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/application"
	"github.com/clubware/club-management/internal/core/enums"
	"github.com/clubware/club-management/internal/datastore"
	"github.com/google/uuid"
)

func TestApplicationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Application Service Suite")
}

// Mock repository for testing
type mockApplicationRepository struct {
	applications map[string]*application.Application
	createError  error
	getError     error
	listError    error
	updateError  error
}

func newMockApplicationRepository() *mockApplicationRepository {
	return &mockApplicationRepository{
		applications: make(map[string]*application.Application),
	}
}

func (m *mockApplicationRepository) Create(a *application.Application) error {
	if m.createError != nil {
		return m.createError
	}
	for _, existing := range m.applications {
		if existing.Email == a.Email {
			return datastore.ErrConflict
		}
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	m.applications[a.ID] = a
	return nil
}

func (m *mockApplicationRepository) GetByID(id string) (*application.Application, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	a, exists := m.applications[id]
	if !exists {
		return nil, datastore.ErrNotFound
	}
	return a, nil
}

func (m *mockApplicationRepository) List(status string) ([]*application.Application, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	result := make([]*application.Application, 0)
	for _, a := range m.applications {
		if status == "" || a.Status == status {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockApplicationRepository) Update(id string, fields map[string]any) (*application.Application, error) {
	if m.updateError != nil {
		return nil, m.updateError
	}
	a, exists := m.applications[id]
	if !exists {
		return nil, datastore.ErrNotFound
	}
	if status, ok := fields["status"].(string); ok {
		a.Status = status
	}
	if reviewedBy, ok := fields["reviewed_by"].(string); ok {
		a.ReviewedBy = &reviewedBy
	}
	if reviewedAt, ok := fields["reviewed_at"].(time.Time); ok {
		a.ReviewedAt = &reviewedAt
	}
	a.UpdatedAt = time.Now()
	return a, nil
}

func (m *mockApplicationRepository) EmailExists(email string) (bool, error) {
	for _, a := range m.applications {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Mock user directory for testing
type mockUserDirectory struct {
	emails         map[string]bool
	provisioned    []string
	existsError    error
	provisionError error
}

func newMockUserDirectory() *mockUserDirectory {
	return &mockUserDirectory{emails: make(map[string]bool)}
}

func (m *mockUserDirectory) EmailExists(email string) (bool, error) {
	if m.existsError != nil {
		return false, m.existsError
	}
	return m.emails[email], nil
}

func (m *mockUserDirectory) ProvisionMember(firstName, lastName, email, department, academicYear string) error {
	if m.provisionError != nil {
		return m.provisionError
	}
	m.emails[email] = true
	m.provisioned = append(m.provisioned, email)
	return nil
}

var _ = Describe("ApplicationService", func() {
	var (
		service  *application.Service
		mockRepo *mockApplicationRepository
		mockDir  *mockUserDirectory
		logger   *slog.Logger
	)

	validDTO := func() application.SubmitApplicationDTO {
		return application.SubmitApplicationDTO{
			FirstName:           "Ada",
			LastName:            "Lovelace",
			Email:               "ada@university.edu",
			AcademicYear:        "2",
			PreferredDepartment: enums.DepartmentIT,
			Motivation:          "I want to build things",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockApplicationRepository()
		mockDir = newMockUserDirectory()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = application.NewService(mockRepo, mockDir, logger)
	})

	Describe("Submit", func() {
		Context("when the submission is valid", func() {
			It("should store a pending application", func() {
				result, err := service.Submit(validDTO())

				Expect(err).ToNot(HaveOccurred())
				Expect(result).ToNot(BeNil())
				Expect(result.ID).ToNot(BeEmpty())
				Expect(result.Status).To(Equal(enums.ApplicationStatusPending))
				Expect(result.Email).To(Equal("ada@university.edu"))
			})

			It("should fold the email to lower case", func() {
				dto := validDTO()
				dto.Email = "  Ada@University.EDU "

				result, err := service.Submit(dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Email).To(Equal("ada@university.edu"))
			})
		})

		Context("when required fields are missing", func() {
			It("should return a validation error listing each field", func() {
				result, err := service.Submit(application.SubmitApplicationDTO{
					Email: "not-an-email",
				})

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())

				appErr, ok := app.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(app.ErrorTypeValidation))

				details, ok := appErr.Details.(app.ValidationErrors)
				Expect(ok).To(BeTrue())
				fields := make([]string, 0)
				for _, e := range details.Errors {
					fields = append(fields, e.Field)
				}
				Expect(fields).To(ContainElements("firstName", "lastName", "email", "preferredDepartment"))
			})
		})

		Context("when the department is unknown", func() {
			It("should reject the submission", func() {
				dto := validDTO()
				dto.PreferredDepartment = "marketing"

				_, err := service.Submit(dto)

				Expect(err).To(HaveOccurred())
				appErr, _ := app.IsAppError(err)
				Expect(appErr.Type).To(Equal(app.ErrorTypeValidation))
			})
		})

		Context("when an application already uses the email", func() {
			It("should return the email conflict", func() {
				_, err := service.Submit(validDTO())
				Expect(err).ToNot(HaveOccurred())

				result, err := service.Submit(validDTO())

				Expect(err).To(Equal(app.ErrEmailExists))
				Expect(result).To(BeNil())
			})

			It("should catch casing variations of the same email", func() {
				_, err := service.Submit(validDTO())
				Expect(err).ToNot(HaveOccurred())

				dto := validDTO()
				dto.Email = "ADA@university.edu"
				_, err = service.Submit(dto)

				Expect(err).To(Equal(app.ErrEmailExists))
			})
		})

		Context("when a member account already uses the email", func() {
			It("should return the email conflict", func() {
				mockDir.emails["ada@university.edu"] = true

				result, err := service.Submit(validDTO())

				Expect(err).To(Equal(app.ErrEmailExists))
				Expect(result).To(BeNil())
			})
		})

		Context("when the store reports a conflict past the pre-check", func() {
			It("should map it to the email conflict", func() {
				mockRepo.createError = datastore.ErrConflict

				_, err := service.Submit(validDTO())

				Expect(err).To(Equal(app.ErrEmailExists))
			})
		})

		Context("when the repository fails", func() {
			It("should return a data access error", func() {
				mockRepo.createError = errors.New("database error")

				_, err := service.Submit(validDTO())

				Expect(err).To(HaveOccurred())
				appErr, _ := app.IsAppError(err)
				Expect(appErr.Type).To(Equal(app.ErrorTypeDataAccess))
			})
		})
	})

	Describe("List", func() {
		It("should reject an unknown status filter", func() {
			_, err := service.List("archived")

			Expect(err).To(HaveOccurred())
			appErr, _ := app.IsAppError(err)
			Expect(appErr.Type).To(Equal(app.ErrorTypeValidation))
		})

		It("should narrow results to the requested status", func() {
			_, err := service.Submit(validDTO())
			Expect(err).ToNot(HaveOccurred())

			pending, err := service.List(enums.ApplicationStatusPending)
			Expect(err).ToNot(HaveOccurred())
			Expect(pending).To(HaveLen(1))

			approved, err := service.List(enums.ApplicationStatusApproved)
			Expect(err).ToNot(HaveOccurred())
			Expect(approved).To(BeEmpty())
		})
	})

	Describe("GetByID", func() {
		It("should return not found for an unknown id", func() {
			_, err := service.GetByID("missing")

			Expect(err).To(Equal(app.ErrApplicationNotFound))
		})
	})

	Describe("UpdateStatus", func() {
		var submitted *application.Application

		BeforeEach(func() {
			var err error
			submitted, err = service.Submit(validDTO())
			Expect(err).ToNot(HaveOccurred())
		})

		Context("when approving", func() {
			It("should stamp the review and provision a member account", func() {
				reviewer := "board-1"
				updated, err := service.UpdateStatus(submitted.ID, application.UpdateStatusDTO{
					Status:     enums.ApplicationStatusApproved,
					ReviewerID: &reviewer,
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(updated.Status).To(Equal(enums.ApplicationStatusApproved))
				Expect(updated.ReviewedAt).ToNot(BeNil())
				Expect(updated.ReviewedBy).ToNot(BeNil())
				Expect(*updated.ReviewedBy).To(Equal("board-1"))
				Expect(mockDir.provisioned).To(ContainElement("ada@university.edu"))
			})

			It("should not provision twice for the same email", func() {
				mockDir.emails["ada@university.edu"] = true

				_, err := service.UpdateStatus(submitted.ID, application.UpdateStatusDTO{
					Status: enums.ApplicationStatusApproved,
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(mockDir.provisioned).To(BeEmpty())
			})

			It("should still approve when provisioning fails", func() {
				mockDir.provisionError = errors.New("directory unavailable")

				updated, err := service.UpdateStatus(submitted.ID, application.UpdateStatusDTO{
					Status: enums.ApplicationStatusApproved,
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(updated.Status).To(Equal(enums.ApplicationStatusApproved))
			})
		})

		Context("when rejecting", func() {
			It("should not provision an account", func() {
				updated, err := service.UpdateStatus(submitted.ID, application.UpdateStatusDTO{
					Status: enums.ApplicationStatusRejected,
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(updated.Status).To(Equal(enums.ApplicationStatusRejected))
				Expect(mockDir.provisioned).To(BeEmpty())
			})
		})

		Context("when the status value is unknown", func() {
			It("should return a validation error", func() {
				_, err := service.UpdateStatus(submitted.ID, application.UpdateStatusDTO{
					Status: "on-hold",
				})

				Expect(err).To(HaveOccurred())
				appErr, _ := app.IsAppError(err)
				Expect(appErr.Type).To(Equal(app.ErrorTypeValidation))
			})
		})

		Context("when the application does not exist", func() {
			It("should return not found", func() {
				_, err := service.UpdateStatus("missing", application.UpdateStatusDTO{
					Status: enums.ApplicationStatusApproved,
				})

				Expect(err).To(Equal(app.ErrApplicationNotFound))
			})
		})
	})
})
