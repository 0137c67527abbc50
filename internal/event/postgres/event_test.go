package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/clubware/club-management/internal/core/enums"
	"github.com/clubware/club-management/internal/datastore"
	"github.com/clubware/club-management/internal/event"
)

func TestEventRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "EventRepository Suite")
}

var _ = Describe("EventRepository", func() {
	var (
		db   *gorm.DB
		repo event.Repository
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&event.Event{}, &event.Registration{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewEventRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	createEvent := func(maxAttendees *int) *event.Event {
		e := &event.Event{
			Title:        "Go Workshop",
			StartTime:    time.Now().Add(48 * time.Hour),
			Status:       enums.EventStatusDraft,
			MaxAttendees: maxAttendees,
		}
		err := repo.Create(e)
		Expect(err).NotTo(HaveOccurred())
		Expect(e.ID).NotTo(BeEmpty())
		return e
	}

	Describe("Create and GetByID", func() {
		It("should store and retrieve an event", func() {
			created := createEvent(nil)

			retrieved, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.ID).To(Equal(created.ID))
			Expect(retrieved.Title).To(Equal("Go Workshop"))
			Expect(retrieved.MaxAttendees).To(BeNil())
		})

		It("should return ErrNotFound for a missing id", func() {
			retrieved, err := repo.GetByID("missing")
			Expect(err).To(Equal(datastore.ErrNotFound))
			Expect(retrieved).To(BeNil())
		})
	})

	Describe("Update", func() {
		It("should apply fields and return the fresh row", func() {
			created := createEvent(nil)

			updated, err := repo.Update(created.ID, map[string]any{
				"title":     "Renamed Workshop",
				"is_active": true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Title).To(Equal("Renamed Workshop"))
			Expect(updated.IsActive).To(BeTrue())
		})

		It("should return ErrNotFound for a missing id", func() {
			_, err := repo.Update("missing", map[string]any{"title": "x"})
			Expect(err).To(Equal(datastore.ErrNotFound))
		})
	})

	Describe("Delete", func() {
		It("should report whether a row was removed", func() {
			created := createEvent(nil)

			deleted, err := repo.Delete(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			deleted, err = repo.Delete(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeFalse())
		})
	})

	Describe("RegisterAttendee", func() {
		Context("with no capacity limit", func() {
			It("should insert registrations freely", func() {
				e := createEvent(nil)

				for _, userID := range []string{"u1", "u2", "u3"} {
					reg, err := repo.RegisterAttendee(e.ID, userID)
					Expect(err).NotTo(HaveOccurred())
					Expect(reg.EventID).To(Equal(e.ID))
					Expect(reg.Status).To(Equal(enums.RegistrationStatusRegistered))
				}

				count, err := repo.CountRegistrations(e.ID, enums.RegistrationStatusRegistered)
				Expect(err).NotTo(HaveOccurred())
				Expect(count).To(Equal(3))
			})
		})

		Context("with a capacity limit", func() {
			It("should refuse the insert once the event is full", func() {
				two := 2
				e := createEvent(&two)

				_, err := repo.RegisterAttendee(e.ID, "u1")
				Expect(err).NotTo(HaveOccurred())
				_, err = repo.RegisterAttendee(e.ID, "u2")
				Expect(err).NotTo(HaveOccurred())

				reg, err := repo.RegisterAttendee(e.ID, "u3")
				Expect(err).To(Equal(event.ErrCapacityReached))
				Expect(reg).To(BeNil())

				count, err := repo.CountRegistrations(e.ID, enums.RegistrationStatusRegistered)
				Expect(err).NotTo(HaveOccurred())
				Expect(count).To(Equal(2))
			})
		})

		Context("with a duplicate (event, user) pair", func() {
			It("should hit the unique index and report a conflict", func() {
				e := createEvent(nil)

				_, err := repo.RegisterAttendee(e.ID, "u1")
				Expect(err).NotTo(HaveOccurred())

				_, err = repo.RegisterAttendee(e.ID, "u1")
				Expect(err).To(Equal(datastore.ErrConflict))
			})

			It("should still allow the same user on another event", func() {
				first := createEvent(nil)
				second := createEvent(nil)

				_, err := repo.RegisterAttendee(first.ID, "u1")
				Expect(err).NotTo(HaveOccurred())

				_, err = repo.RegisterAttendee(second.ID, "u1")
				Expect(err).NotTo(HaveOccurred())
			})
		})
	})

	Describe("GetRegistration", func() {
		It("should find a registration by event and user", func() {
			e := createEvent(nil)
			created, err := repo.RegisterAttendee(e.ID, "u1")
			Expect(err).NotTo(HaveOccurred())

			found, err := repo.GetRegistration(e.ID, "u1")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(created.ID))
		})

		It("should return ErrNotFound when the pair is unregistered", func() {
			e := createEvent(nil)

			_, err := repo.GetRegistration(e.ID, "nobody")
			Expect(err).To(Equal(datastore.ErrNotFound))
		})
	})

	Describe("ListRegistrations", func() {
		It("should list registrations oldest first", func() {
			e := createEvent(nil)
			_, err := repo.RegisterAttendee(e.ID, "u1")
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.RegisterAttendee(e.ID, "u2")
			Expect(err).NotTo(HaveOccurred())

			registrations, err := repo.ListRegistrations(e.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(registrations).To(HaveLen(2))
		})
	})

	Describe("List", func() {
		It("should order events by start time", func() {
			later := &event.Event{
				Title:     "Later",
				StartTime: time.Now().Add(72 * time.Hour),
				Status:    enums.EventStatusDraft,
			}
			Expect(repo.Create(later)).To(Succeed())

			sooner := &event.Event{
				Title:     "Sooner",
				StartTime: time.Now().Add(24 * time.Hour),
				Status:    enums.EventStatusDraft,
			}
			Expect(repo.Create(sooner)).To(Succeed())

			events, err := repo.List(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(2))
			Expect(events[0].Title).To(Equal("Sooner"))
			Expect(events[1].Title).To(Equal("Later"))
		})

		It("should filter by column values", func() {
			active := &event.Event{
				Title:     "Active",
				StartTime: time.Now().Add(24 * time.Hour),
				Status:    enums.EventStatusActive,
				IsActive:  true,
			}
			Expect(repo.Create(active)).To(Succeed())

			draft := &event.Event{
				Title:     "Draft",
				StartTime: time.Now().Add(24 * time.Hour),
				Status:    enums.EventStatusDraft,
			}
			Expect(repo.Create(draft)).To(Succeed())

			events, err := repo.List(map[string]any{"is_active": true})
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(1))
			Expect(events[0].Title).To(Equal("Active"))
		})
	})
})
