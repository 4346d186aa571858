package catalog

import (
	"context"
	"errors"

	"github.com/vinoteca/catalog/internal/assets"
	"github.com/vinoteca/catalog/internal/domain"
	"github.com/vinoteca/catalog/internal/repository"
	"github.com/vinoteca/catalog/internal/validation"
	"go.uber.org/zap"
)

// ProductService is the product resource with its image lifecycle.
type ProductService struct {
	*Resource[domain.Product]
	store        *assets.Store
	strictDelete bool
	requireImage bool
}

type ProductOption func(*ProductService)

// WithStrictDelete makes a missing image abort the product delete.
func WithStrictDelete(strict bool) ProductOption {
	return func(s *ProductService) { s.strictDelete = strict }
}

// WithImageRequired makes the image mandatory on create.
func WithImageRequired(required bool) ProductOption {
	return func(s *ProductService) { s.requireImage = required }
}

func NewProductService(repo repository.Repository[domain.Product], v *validation.Validator, store *assets.Store, opts ...ProductOption) *ProductService {
	s := &ProductService{
		Resource:     NewResource[domain.Product]("producto", repo, v, ProductRules),
		store:        store,
		strictDelete: true,
		requireImage: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ProductService) deletePolicy() assets.MissingPolicy {
	if s.strictDelete {
		return assets.MissingIsError
	}
	return assets.MissingIsSuccess
}

// Create validates the fields, stores the image and inserts the product.
// The stored image is removed again when the insert fails.
func (s *ProductService) Create(ctx context.Context, fields map[string]any, up *assets.Upload) (*domain.Product, error) {
	values, err := s.validate(ctx, fields)
	if s.requireImage && up == nil {
		err = requireFile(err)
	}
	if err != nil {
		return nil, err
	}

	rec, err := s.decode(values)
	if err != nil {
		return nil, err
	}
	var staged assets.Ref
	if up != nil {
		if staged, err = s.store.Put(ctx, *up); err != nil {
			return nil, err
		}
		key := staged.String()
		rec.Imagen = &key
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		s.unstage(ctx, staged)
		return nil, err
	}
	return rec, nil
}

// Update replaces the product fields. A new image is staged first, the
// record is switched to it and only then the previous image is reclaimed.
func (s *ProductService) Update(ctx context.Context, id int64, fields map[string]any, up *assets.Upload) (*domain.Product, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	values, err := s.validate(ctx, fields)
	if err != nil {
		return nil, err
	}

	var staged assets.Ref
	if up != nil {
		if staged, err = s.store.Put(ctx, *up); err != nil {
			return nil, err
		}
		values["imagen"] = staged.String()
	}

	if err := s.repo.Update(ctx, id, values); err != nil {
		s.unstage(ctx, staged)
		return nil, err
	}

	if staged != "" && current.HasImage() {
		old := assets.Ref(*current.Imagen)
		if err := s.store.Reclaim(ctx, old, assets.MissingIsSuccess); err != nil {
			zap.L().Warn("previous product image left orphaned",
				zap.Int64("id", id),
				zap.String("orphan", old.String()),
				zap.Error(err))
		}
	}
	return s.Get(ctx, id)
}

// Delete reclaims the product image first and keeps the record when that
// fails.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.HasImage() {
		if err := s.store.Reclaim(ctx, assets.Ref(*current.Imagen), s.deletePolicy()); err != nil {
			zap.L().Error("product image reclaim failed, delete aborted",
				zap.Int64("id", id),
				zap.String("ref", *current.Imagen),
				zap.Error(err))
			return err
		}
	}
	return s.Resource.Delete(ctx, id)
}

func (s *ProductService) unstage(ctx context.Context, ref assets.Ref) {
	if ref == "" {
		return
	}
	if err := s.store.Reclaim(ctx, ref, assets.MissingIsSuccess); err != nil {
		zap.L().Warn("staged product image left orphaned",
			zap.String("orphan", ref.String()),
			zap.Error(err))
	}
}

// requireFile adds the missing file message to a validation result.
func requireFile(err error) error {
	if err == nil {
		err = &ValidationFailed{}
	}
	var vf *ValidationFailed
	if errors.As(err, &vf) {
		vf.Add("file", "The file field is required.")
	}
	return err
}
