// Package datastore is the single seam between resource logic and the
// relational store. It exposes uniform query/insert/update/delete/findById
// operations over a GORM connection and performs no validation or business
// rules of its own.
package datastore

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound marks a lookup that matched no row. Distinct from a true
	// store failure so callers can answer 404 instead of 500.
	ErrNotFound = errors.New("datastore: record not found")

	// ErrConflict marks a constraint violation (uniqueness).
	ErrConflict = errors.New("datastore: constraint violation")
)

// QueryOptions parameterizes a read. Filters are column-equality conditions,
// ANDed together.
type QueryOptions struct {
	Filters map[string]any
	OrderBy string
	Limit   int
}

// Store provides the generic operations for one table, chosen by the
// record type's GORM table mapping.
type Store[T any] struct {
	db *gorm.DB
}

func NewStore[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

// DB exposes the underlying connection for repository methods that need a
// transaction or a raw statement.
func (s *Store[T]) DB() *gorm.DB {
	return s.db
}

func (s *Store[T]) Query(opts QueryOptions) ([]*T, error) {
	tx := s.db.Model(new(T))
	for column, value := range opts.Filters {
		tx = tx.Where(column+" = ?", value)
	}
	if opts.OrderBy != "" {
		tx = tx.Order(opts.OrderBy)
	}
	if opts.Limit > 0 {
		tx = tx.Limit(opts.Limit)
	}

	var records []*T
	if err := tx.Find(&records).Error; err != nil {
		return nil, translate(err)
	}
	return records, nil
}

func (s *Store[T]) Insert(record *T) error {
	if err := s.db.Create(record).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update applies a partial record to the row with the given id and returns
// the updated row, or ErrNotFound when no row matched.
func (s *Store[T]) Update(id string, fields map[string]any) (*T, error) {
	result := s.db.Model(new(T)).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(id)
}

func (s *Store[T]) Delete(id string) (bool, error) {
	result := s.db.Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *Store[T]) FindByID(id string) (*T, error) {
	var record T
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (s *Store[T]) Count(filters map[string]any) (int64, error) {
	tx := s.db.Model(new(T))
	for column, value := range filters {
		tx = tx.Where(column+" = ?", value)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}

// Translate maps a raw GORM error onto the store's sentinel errors. Exported
// for repository methods that run their own statements.
func Translate(err error) error {
	return translate(err)
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// isUniqueViolation detects unique-index violations for both the production
// driver (pgx surfaces SQLSTATE 23505) and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
