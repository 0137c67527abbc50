package postgres

import (
	"github.com/clubware/club-management/internal/announcement"
	"github.com/clubware/club-management/internal/datastore"
	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	store *datastore.Store[announcement.Announcement]
}

func NewAnnouncementRepository(db *gorm.DB) announcement.Repository {
	return &AnnouncementRepository{store: datastore.NewStore[announcement.Announcement](db)}
}

func (r *AnnouncementRepository) Create(a *announcement.Announcement) error {
	return r.store.Insert(a)
}

func (r *AnnouncementRepository) GetByID(id string) (*announcement.Announcement, error) {
	return r.store.FindByID(id)
}

func (r *AnnouncementRepository) List(filters map[string]any) ([]*announcement.Announcement, error) {
	return r.store.Query(datastore.QueryOptions{
		Filters: filters,
		OrderBy: "created_at DESC",
	})
}

func (r *AnnouncementRepository) Update(id string, fields map[string]any) (*announcement.Announcement, error) {
	return r.store.Update(id, fields)
}

func (r *AnnouncementRepository) Delete(id string) (bool, error) {
	return r.store.Delete(id)
}
