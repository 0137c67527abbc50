package postgres

import (
	"github.com/clubware/club-management/internal/datastore"
	"github.com/clubware/club-management/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	store *datastore.Store[user.User]
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{store: datastore.NewStore[user.User](db)}
}

func (r *UserRepository) Create(u *user.User) error {
	return r.store.Insert(u)
}

func (r *UserRepository) GetByID(id string) (*user.User, error) {
	return r.store.FindByID(id)
}

func (r *UserRepository) List(filters map[string]any) ([]*user.User, error) {
	return r.store.Query(datastore.QueryOptions{
		Filters: filters,
		OrderBy: "created_at DESC",
	})
}

func (r *UserRepository) Update(id string, fields map[string]any) (*user.User, error) {
	return r.store.Update(id, fields)
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	count, err := r.store.Count(map[string]any{"email": email})
	return count > 0, err
}
