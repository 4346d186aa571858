package repository

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("record not found")

// Repository is the storage port used by catalog resources.
type Repository[T any] interface {
	// Insert persists a new record; the generated id is written back into rec
	Insert(ctx context.Context, rec *T) error

	// Find retrieves a record by id, or ErrNotFound
	Find(ctx context.Context, id int64) (*T, error)

	// All retrieves every record ordered by id
	All(ctx context.Context) ([]T, error)

	// Update replaces the given columns of the record with id
	Update(ctx context.Context, id int64, fields map[string]interface{}) error

	// Delete removes the record with id, or returns ErrNotFound
	Delete(ctx context.Context, id int64) error

	// Paginate retrieves one page of records ordered by id
	Paginate(ctx context.Context, req PageRequest) (*Page[T], error)

	// Exists reports whether a record with id exists
	Exists(ctx context.Context, id int64) (bool, error)
}

// GormRepository is the GORM implementation of Repository
type GormRepository[T any] struct {
	db *gorm.DB
}

// NewGormRepository creates a new GORM-based repository
func NewGormRepository[T any](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db}
}

func (r *GormRepository[T]) model(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T))
}

func (r *GormRepository[T]) Insert(ctx context.Context, rec *T) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return errors.Wrap(err, "insert")
	}
	return nil
}

func (r *GormRepository[T]) Find(ctx context.Context, id int64) (*T, error) {
	var rec T
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find")
	}
	return &rec, nil
}

func (r *GormRepository[T]) All(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := r.model(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list")
	}
	return rows, nil
}

func (r *GormRepository[T]) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	result := r.model(ctx).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return errors.Wrap(result.Error, "update")
	}
	return nil
}

func (r *GormRepository[T]) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository[T]) Paginate(ctx context.Context, req PageRequest) (*Page[T], error) {
	req = req.normalize()

	var total int64
	if err := r.model(ctx).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count")
	}

	rows := make([]T, 0, req.PerPage)
	if err := r.model(ctx).Order("id ASC").Offset(req.offset()).Limit(req.PerPage).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "paginate")
	}
	return newPage(rows, total, req), nil
}

func (r *GormRepository[T]) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.model(ctx).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "exists")
	}
	return count > 0, nil
}

// TableChecker answers foreign-key-exists lookups against arbitrary tables.
type TableChecker struct {
	db     *gorm.DB
	tables map[string]bool
}

// NewTableChecker limits lookups to the given table names.
func NewTableChecker(db *gorm.DB, tables ...string) *TableChecker {
	allowed := make(map[string]bool, len(tables))
	for _, t := range tables {
		allowed[t] = true
	}
	return &TableChecker{db: db, tables: allowed}
}

func (c *TableChecker) Exists(ctx context.Context, table string, id int64) (bool, error) {
	if !c.tables[table] {
		return false, fmt.Errorf("table %q is not referenceable", table)
	}
	var count int64
	if err := c.db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "lookup %s", table)
	}
	return count > 0, nil
}
