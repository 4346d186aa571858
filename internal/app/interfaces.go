package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/vinoteca/catalog/config"
	"github.com/vinoteca/catalog/internal/assets"
	"github.com/vinoteca/catalog/internal/catalog"
	"github.com/vinoteca/catalog/internal/domain"
	"github.com/vinoteca/catalog/internal/identity"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AssetProvider provides the image store and its public URL resolver
type AssetProvider interface {
	Assets() *assets.Store
	Resolver() *assets.URLResolver
}

// IdentityProvider provides account and token management
type IdentityProvider interface {
	Identity() *identity.Service
}

// CatalogProvider provides the catalog resources
type CatalogProvider interface {
	Denominations() *catalog.Resource[domain.Denomination]
	Types() *catalog.Resource[domain.ProductType]
	Products() *catalog.ProductService
}

// AppContext is what the web layer sees of the running application.
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider
	AssetProvider
	IdentityProvider
	CatalogProvider

	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
