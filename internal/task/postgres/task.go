package postgres

import (
	"github.com/clubware/club-management/internal/datastore"
	"github.com/clubware/club-management/internal/task"
	"gorm.io/gorm"
)

type TaskRepository struct {
	store *datastore.Store[task.Task]
}

func NewTaskRepository(db *gorm.DB) task.Repository {
	return &TaskRepository{store: datastore.NewStore[task.Task](db)}
}

func (r *TaskRepository) Create(t *task.Task) error {
	return r.store.Insert(t)
}

func (r *TaskRepository) GetByID(id string) (*task.Task, error) {
	return r.store.FindByID(id)
}

func (r *TaskRepository) List(filters map[string]any) ([]*task.Task, error) {
	return r.store.Query(datastore.QueryOptions{
		Filters: filters,
		OrderBy: "created_at DESC",
	})
}

func (r *TaskRepository) Update(id string, fields map[string]any) (*task.Task, error) {
	return r.store.Update(id, fields)
}

func (r *TaskRepository) Delete(id string) (bool, error) {
	return r.store.Delete(id)
}
