package app

import (
	"context"
	"path"

	"github.com/pkg/errors"

	"github.com/vinoteca/catalog/config"
	"github.com/vinoteca/catalog/internal/assets"
)

// newAssetBackend opens the backend selected by storage.driver. The
// returned closer may be nil.
func newAssetBackend(ctx context.Context, cfg *config.AppConfig) (assets.Backend, func() error, error) {
	switch cfg.Storage.Driver {
	case "", "local":
		b, err := assets.NewLocalBackend(cfg.GetPublicDir())
		if err != nil {
			return nil, nil, errors.Wrap(err, "local asset storage")
		}
		return b, nil, nil
	case "bolt":
		file := cfg.Storage.Bolt.Path
		if file == "" {
			file = path.Join(cfg.GetDataDir(), "assets.db")
		}
		b, err := assets.NewBoltBackend(file)
		if err != nil {
			return nil, nil, errors.Wrap(err, "bolt asset storage")
		}
		return b, b.Close, nil
	case "s3":
		s3cfg := cfg.Storage.S3
		b, err := assets.NewS3Backend(ctx, assets.S3Options{
			Bucket:    s3cfg.Bucket,
			Region:    s3cfg.Region,
			Endpoint:  s3cfg.Endpoint,
			AccessKey: s3cfg.AccessKey,
			SecretKey: s3cfg.SecretKey,
		})
		if err != nil {
			return nil, nil, errors.Wrap(err, "s3 asset storage")
		}
		return b, nil, nil
	default:
		return nil, nil, errors.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
