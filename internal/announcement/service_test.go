package announcement_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	app "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/announcement"
	"github.com/clubware/club-management/internal/core/enums"
	"github.com/clubware/club-management/internal/datastore"
	"github.com/google/uuid"
)

func TestAnnouncementService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Announcement Service Suite")
}

// Mock repository for testing
type mockAnnouncementRepository struct {
	announcements map[string]*announcement.Announcement
	createError   error
}

func newMockAnnouncementRepository() *mockAnnouncementRepository {
	return &mockAnnouncementRepository{
		announcements: make(map[string]*announcement.Announcement),
	}
}

func (m *mockAnnouncementRepository) Create(a *announcement.Announcement) error {
	if m.createError != nil {
		return m.createError
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	m.announcements[a.ID] = a
	return nil
}

func (m *mockAnnouncementRepository) GetByID(id string) (*announcement.Announcement, error) {
	a, exists := m.announcements[id]
	if !exists {
		return nil, datastore.ErrNotFound
	}
	return a, nil
}

func (m *mockAnnouncementRepository) List(filters map[string]any) ([]*announcement.Announcement, error) {
	result := make([]*announcement.Announcement, 0)
	for _, a := range m.announcements {
		if category, ok := filters["category"].(string); ok && a.Category != category {
			continue
		}
		if important, ok := filters["is_important"].(bool); ok && a.IsImportant != important {
			continue
		}
		if audience, ok := filters["target_audience"].(string); ok && a.TargetAudience != audience {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *mockAnnouncementRepository) Update(id string, fields map[string]any) (*announcement.Announcement, error) {
	a, exists := m.announcements[id]
	if !exists {
		return nil, datastore.ErrNotFound
	}
	if title, ok := fields["title"].(string); ok {
		a.Title = title
	}
	if content, ok := fields["content"].(string); ok {
		a.Content = content
	}
	if important, ok := fields["is_important"].(bool); ok {
		a.IsImportant = important
	}
	a.UpdatedAt = time.Now()
	return a, nil
}

func (m *mockAnnouncementRepository) Delete(id string) (bool, error) {
	if _, exists := m.announcements[id]; !exists {
		return false, nil
	}
	delete(m.announcements, id)
	return true, nil
}

var _ = Describe("AnnouncementService", func() {
	var (
		service  *announcement.Service
		mockRepo *mockAnnouncementRepository
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockAnnouncementRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = announcement.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		It("should default the audience to all", func() {
			created, err := service.Create(announcement.CreateAnnouncementDTO{
				Title:   "Welcome",
				Content: "First meeting is on Friday.",
			}, "admin-1")

			Expect(err).ToNot(HaveOccurred())
			Expect(created.TargetAudience).To(Equal(enums.AudienceAll))
			Expect(created.IsImportant).To(BeFalse())
			Expect(created.CreatedBy).To(Equal("admin-1"))
		})

		It("should require title and content", func() {
			_, err := service.Create(announcement.CreateAnnouncementDTO{}, "admin-1")

			Expect(err).To(HaveOccurred())
			appErr, _ := app.IsAppError(err)
			Expect(appErr.Type).To(Equal(app.ErrorTypeValidation))
		})

		Context("when the audience is a department", func() {
			It("should require a target department", func() {
				_, err := service.Create(announcement.CreateAnnouncementDTO{
					Title:          "IT only",
					Content:        "Server maintenance tonight.",
					TargetAudience: enums.AudienceDepartment,
				}, "admin-1")

				Expect(err).To(HaveOccurred())
				appErr, _ := app.IsAppError(err)
				Expect(appErr.Type).To(Equal(app.ErrorTypeValidation))
			})

			It("should accept a valid target department", func() {
				dept := enums.DepartmentIT
				created, err := service.Create(announcement.CreateAnnouncementDTO{
					Title:            "IT only",
					Content:          "Server maintenance tonight.",
					TargetAudience:   enums.AudienceDepartment,
					TargetDepartment: &dept,
				}, "admin-1")

				Expect(err).ToNot(HaveOccurred())
				Expect(*created.TargetDepartment).To(Equal(enums.DepartmentIT))
			})
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			_, err := service.Create(announcement.CreateAnnouncementDTO{
				Title:       "Urgent",
				Content:     "Room change for tonight.",
				IsImportant: true,
				Category:    "logistics",
			}, "admin-1")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Create(announcement.CreateAnnouncementDTO{
				Title:   "Newsletter",
				Content: "Monthly roundup.",
			}, "admin-1")
			Expect(err).ToNot(HaveOccurred())
		})

		It("should filter by importance", func() {
			important := true
			result, err := service.List(announcement.ListFilters{IsImportant: &important})

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].Title).To(Equal("Urgent"))
		})

		It("should filter by category", func() {
			result, err := service.List(announcement.ListFilters{Category: "logistics"})

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
		})

		It("should reject an unknown audience filter", func() {
			_, err := service.List(announcement.ListFilters{TargetAudience: "everyone"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("should apply allow-listed fields", func() {
			created, err := service.Create(announcement.CreateAnnouncementDTO{
				Title:   "Draft title",
				Content: "Draft content.",
			}, "admin-1")
			Expect(err).ToNot(HaveOccurred())

			title := "Final title"
			important := true
			updated, err := service.Update(created.ID, announcement.UpdateAnnouncementDTO{
				Title:       &title,
				IsImportant: &important,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Title).To(Equal("Final title"))
			Expect(updated.IsImportant).To(BeTrue())
			Expect(updated.Content).To(Equal("Draft content."))
		})

		It("should return not found for an unknown announcement", func() {
			title := "New"
			_, err := service.Update("missing", announcement.UpdateAnnouncementDTO{Title: &title})

			Expect(err).To(Equal(app.ErrAnnouncementNotFound))
		})
	})

	Describe("Delete", func() {
		It("should remove the announcement", func() {
			created, err := service.Create(announcement.CreateAnnouncementDTO{
				Title:   "Obsolete",
				Content: "Old news.",
			}, "admin-1")
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Delete(created.ID)).To(Succeed())

			_, err = service.GetByID(created.ID)
			Expect(err).To(Equal(app.ErrAnnouncementNotFound))
		})

		It("should return not found for an unknown announcement", func() {
			Expect(service.Delete("missing")).To(Equal(app.ErrAnnouncementNotFound))
		})
	})
})
