package app

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/vinoteca/catalog/config"
	"github.com/vinoteca/catalog/internal/assets"
	"github.com/vinoteca/catalog/internal/catalog"
	"github.com/vinoteca/catalog/internal/domain"
	"github.com/vinoteca/catalog/internal/identity"
	"github.com/vinoteca/catalog/internal/repository"
	"github.com/vinoteca/catalog/internal/validation"
)

type Application struct {
	appConfig     *config.AppConfig
	gormDB        *gorm.DB
	sched         *cron.Cron
	assetStore    *assets.Store
	assetCloser   func() error
	resolver      *assets.URLResolver
	identity      *identity.Service
	denominations *catalog.Resource[domain.Denomination]
	types         *catalog.Resource[domain.ProductType]
	products      *catalog.ProductService
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AssetProvider     = (*Application)(nil)
	_ IdentityProvider  = (*Application)(nil)
	_ CatalogProvider   = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

// OverrideAssets replaces the asset backend (used in tests). Call Wire
// afterwards so the services pick it up.
func (a *Application) OverrideAssets(backend assets.Backend) {
	a.assetStore = a.newStore(backend)
}

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	initLogger(cfg)

	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB = getDatabase(cfg.Database, cfg.System.Workdir)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	backend, closer, err := newAssetBackend(context.Background(), cfg)
	if err != nil {
		return err
	}
	a.assetStore = a.newStore(backend)
	a.assetCloser = closer
	zap.S().Infof("Asset storage ready, driver: %s", cfg.Storage.Driver)

	a.Wire()

	go func() {
		time.Sleep(3 * time.Second)
		a.checkAdmin()
		a.checkDenominations()
		a.checkTypes()
	}()

	a.initJob()
	return nil
}

// Wire builds the services on top of the database and asset store.
func (a *Application) Wire() {
	cfg := a.appConfig
	refs := repository.NewTableChecker(a.gormDB,
		domain.Denomination{}.TableName(),
		domain.ProductType{}.TableName())
	v := validation.New(refs)

	a.resolver = assets.NewURLResolver(cfg.Web.PublicBaseURL)
	a.identity = identity.NewService(a.gormDB, cfg.Web.Secret, cfg.TokenTTL())
	a.denominations = catalog.NewResource[domain.Denomination]("denominacion",
		repository.NewGormRepository[domain.Denomination](a.gormDB), v, catalog.DenominationRules)
	a.types = catalog.NewResource[domain.ProductType]("tipo",
		repository.NewGormRepository[domain.ProductType](a.gormDB), v, catalog.TypeRules)
	a.products = catalog.NewProductService(
		repository.NewGormRepository[domain.Product](a.gormDB), v, a.assetStore,
		catalog.WithStrictDelete(cfg.Storage.StrictDelete),
		catalog.WithImageRequired(cfg.Storage.RequireImageOnCreate))
}

func (a *Application) newStore(backend assets.Backend) *assets.Store {
	return assets.NewStore(backend,
		assets.WithNamespace(a.appConfig.Storage.Namespace),
		assets.WithMaxBytes(a.appConfig.Storage.MaxBytes))
}

func initLogger(cfg *config.AppConfig) {
	logger, err := newLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// newLogger writes to stdout and, when enabled, to a rotated JSON file.
func newLogger(lc config.LogConfig) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	console := zap.NewDevelopmentEncoderConfig()
	if lc.Mode == "production" {
		level.SetLevel(zapcore.InfoLevel)
		console = zap.NewProductionEncoderConfig()
	}
	if lc.Level != "" {
		if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
			return nil, err
		}
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(console), zapcore.Lock(os.Stdout), level),
	}
	if lc.FileEnable {
		sink := &lumberjack.Logger{
			Filename:   lc.Filename,
			MaxSize:    orDefault(lc.MaxSizeMB, 64),
			MaxBackups: orDefault(lc.MaxBackups, 7),
			MaxAge:     orDefault(lc.MaxAgeDays, 7),
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(sink),
			level,
		))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// MigrateDB runs AutoMigrate for every catalog table. A panic inside the
// migrator is returned as an error.
func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if os.Getenv("CATALOG_DEBUG_TRACE") != "" {
			debug.PrintStack()
		}
		err = fmt.Errorf("migrate: %v", r)
		zap.L().Error("database migration panicked", zap.Error(err))
	}()
	db := a.gormDB
	if track {
		db = db.Debug()
	}
	return db.Migrator().AutoMigrate(domain.Tables...)
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

// InitDb recreates every table from scratch
func (a *Application) InitDb() {
	a.DropAll()
	if err := a.MigrateDB(false); err != nil {
		zap.L().Error("database init failed", zap.Error(err))
	}
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Assets returns the product image store
func (a *Application) Assets() *assets.Store {
	return a.assetStore
}

// Resolver returns the public URL resolver for asset keys
func (a *Application) Resolver() *assets.URLResolver {
	return a.resolver
}

func (a *Application) Identity() *identity.Service {
	return a.identity
}

func (a *Application) Denominations() *catalog.Resource[domain.Denomination] {
	return a.denominations
}

func (a *Application) Types() *catalog.Resource[domain.ProductType] {
	return a.types
}

func (a *Application) Products() *catalog.ProductService {
	return a.products
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.assetCloser != nil {
		if err := a.assetCloser(); err != nil {
			zap.L().Warn("asset backend close failed", zap.Error(err))
		}
	}
	_ = zap.L().Sync()
}
