package postgres

import (
	"github.com/clubware/club-management/internal/application"
	"github.com/clubware/club-management/internal/datastore"
	"gorm.io/gorm"
)

// ApplicationRepository implements application.Repository over the generic
// data access layer.
type ApplicationRepository struct {
	store *datastore.Store[application.Application]
}

func NewApplicationRepository(db *gorm.DB) application.Repository {
	return &ApplicationRepository{store: datastore.NewStore[application.Application](db)}
}

func (r *ApplicationRepository) Create(a *application.Application) error {
	return r.store.Insert(a)
}

func (r *ApplicationRepository) GetByID(id string) (*application.Application, error) {
	return r.store.FindByID(id)
}

func (r *ApplicationRepository) List(status string) ([]*application.Application, error) {
	filters := map[string]any{}
	if status != "" {
		filters["status"] = status
	}
	return r.store.Query(datastore.QueryOptions{
		Filters: filters,
		OrderBy: "created_at DESC",
	})
}

func (r *ApplicationRepository) Update(id string, fields map[string]any) (*application.Application, error) {
	return r.store.Update(id, fields)
}

func (r *ApplicationRepository) EmailExists(email string) (bool, error) {
	count, err := r.store.Count(map[string]any{"email": email})
	return count > 0, err
}
