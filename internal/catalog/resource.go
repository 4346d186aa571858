// Package catalog implements validated CRUD over the catalog entities.
package catalog

import (
	"context"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/vinoteca/catalog/internal/repository"
	"github.com/vinoteca/catalog/internal/validation"
)

// Resource is the create/read/update/delete surface of one entity.
type Resource[T any] struct {
	entity    string
	repo      repository.Repository[T]
	validator *validation.Validator
	rules     validation.Rules
}

func NewResource[T any](entity string, repo repository.Repository[T], v *validation.Validator, rules validation.Rules) *Resource[T] {
	return &Resource[T]{entity: entity, repo: repo, validator: v, rules: rules}
}

// Entity returns the resource name used in NotFound errors
func (r *Resource[T]) Entity() string {
	return r.entity
}

// List returns every record when req is nil, otherwise one page.
func (r *Resource[T]) List(ctx context.Context, req *repository.PageRequest) (*repository.Page[T], error) {
	if req == nil {
		rows, err := r.repo.All(ctx)
		if err != nil {
			return nil, err
		}
		return repository.Whole(rows), nil
	}
	return r.repo.Paginate(ctx, *req)
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	rec, err := r.repo.Find(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFound{Entity: r.entity, ID: id}
	}
	return rec, err
}

func (r *Resource[T]) Create(ctx context.Context, fields map[string]any) (*T, error) {
	values, err := r.validate(ctx, fields)
	if err != nil {
		return nil, err
	}
	rec, err := r.decode(values)
	if err != nil {
		return nil, err
	}
	if err := r.repo.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update replaces every rule-table field of the record.
func (r *Resource[T]) Update(ctx context.Context, id int64, fields map[string]any) (*T, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}
	values, err := r.validate(ctx, fields)
	if err != nil {
		return nil, err
	}
	if err := r.repo.Update(ctx, id, values); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	err := r.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFound{Entity: r.entity, ID: id}
	}
	return err
}

func (r *Resource[T]) validate(ctx context.Context, fields map[string]any) (map[string]any, error) {
	values, err := r.validator.Validate(ctx, r.rules, fields)
	var verr *validation.Errors
	if errors.As(err, &verr) {
		return nil, fromValidation(verr)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "validate %s", r.entity)
	}
	return values, nil
}

func (r *Resource[T]) decode(values map[string]any) (*T, error) {
	rec := new(T)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  rec,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(values); err != nil {
		return nil, errors.Wrapf(err, "decode %s", r.entity)
	}
	return rec, nil
}
