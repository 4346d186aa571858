package config

import (
	"os"
	"path"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/vinoteca/catalog/pkg/common"
)

// DBConfig Database config
type DBConfig struct {
	Type     string `yaml:"type"` // postgres or sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// SysConfig System config
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig WEB config
type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// PublicBaseURL prefixes stored asset keys when records are serialized.
	PublicBaseURL string `yaml:"public_base_url"`
	Secret        string `yaml:"secret"`
	// TokenTTL is the access token lifetime in hours
	TokenTTL int `yaml:"token_ttl"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type BoltConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig asset storage config
type StorageConfig struct {
	Driver               string     `yaml:"driver"` // local, s3 or bolt
	Namespace            string     `yaml:"namespace"`
	MaxBytes             int64      `yaml:"max_bytes"`
	StrictDelete         bool       `yaml:"strict_delete"`
	RequireImageOnCreate bool       `yaml:"require_image_on_create"`
	S3                   S3Config   `yaml:"s3"`
	Bolt                 BoltConfig `yaml:"bolt"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`  // development or production
	Level      string `yaml:"level"` // overrides the mode's level when set
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system"`
	Web      WebConfig     `yaml:"web"`
	Database DBConfig      `yaml:"database"`
	Storage  StorageConfig `yaml:"storage"`
	Logger   LogConfig     `yaml:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetPublicDir() string {
	return path.Join(c.System.Workdir, "public")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

// TokenTTL returns the access token lifetime
func (c *AppConfig) TokenTTL() time.Duration {
	if c.Web.TokenTTL <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Web.TokenTTL) * time.Hour
}

func (c *AppConfig) initDirs() {
	for _, dir := range []string{c.GetLogDir(), c.GetPublicDir(), c.GetDataDir()} {
		_ = os.MkdirAll(dir, 0o755)
	}
}

// DefaultAppConfig returns the development defaults
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "Vinoteca",
			Location: "Europe/Madrid",
			Workdir:  "/var/vinoteca",
			Debug:    true,
		},
		Web: WebConfig{
			Host:          "0.0.0.0",
			Port:          8000,
			PublicBaseURL: "http://localhost:8000/storage",
			Secret:        "9b6de5cc-0731-4b6f-8f1b-vinoteca-dev",
			TokenTTL:      24,
		},
		Database: DBConfig{
			Type:     "postgres",
			Host:     "127.0.0.1",
			Port:     5432,
			Name:     "vinoteca",
			User:     "postgres",
			Passwd:   "postgres",
			MaxConn:  100,
			IdleConn: 10,
			Debug:    false,
		},
		Storage: StorageConfig{
			Driver:               "local",
			Namespace:            "images",
			MaxBytes:             2 << 20,
			StrictDelete:         true,
			RequireImageOnCreate: true,
			S3: S3Config{
				Bucket:   "vinoteca",
				Region:   "us-east-1",
				Endpoint: "http://127.0.0.1:9000/",
			},
			Bolt: BoltConfig{Path: ""},
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/vinoteca/logs/vinoteca.log",
		},
	}
}

// LoadConfig loads defaults, overlays the YAML file if present, then a
// .env file in the working directory and finally CATALOG_* variables.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig()
	cfile = common.IfEmptyStr(cfile, "vinoteca.yml")
	if data, err := os.ReadFile(cfile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			panic(err)
		}
	}

	_ = godotenv.Load()
	applyEnv(cfg)
	cfg.initDirs()
	return cfg
}

func setEnvValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvInt(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := cast.ToIntE(v); err == nil {
			*val = n
		}
	}
}

func setEnvInt64(name string, val *int64) {
	if v := os.Getenv(name); v != "" {
		if n, err := cast.ToInt64E(v); err == nil {
			*val = n
		}
	}
}

func setEnvBool(name string, val *bool) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			*val = b
		}
	}
}

func applyEnv(cfg *AppConfig) {
	setEnvValue("CATALOG_SYSTEM_WORKER_DIR", &cfg.System.Workdir)
	setEnvValue("CATALOG_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBool("CATALOG_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("CATALOG_WEB_HOST", &cfg.Web.Host)
	setEnvInt("CATALOG_WEB_PORT", &cfg.Web.Port)
	setEnvValue("CATALOG_WEB_PUBLIC_BASE_URL", &cfg.Web.PublicBaseURL)
	setEnvValue("CATALOG_WEB_SECRET", &cfg.Web.Secret)
	setEnvInt("CATALOG_WEB_TOKEN_TTL", &cfg.Web.TokenTTL)

	setEnvValue("CATALOG_DB_TYPE", &cfg.Database.Type)
	setEnvValue("CATALOG_DB_HOST", &cfg.Database.Host)
	setEnvInt("CATALOG_DB_PORT", &cfg.Database.Port)
	setEnvValue("CATALOG_DB_NAME", &cfg.Database.Name)
	setEnvValue("CATALOG_DB_USER", &cfg.Database.User)
	setEnvValue("CATALOG_DB_PWD", &cfg.Database.Passwd)
	setEnvBool("CATALOG_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("CATALOG_STORAGE_DRIVER", &cfg.Storage.Driver)
	setEnvInt64("CATALOG_STORAGE_MAX_BYTES", &cfg.Storage.MaxBytes)
	setEnvBool("CATALOG_STORAGE_STRICT_DELETE", &cfg.Storage.StrictDelete)
	setEnvBool("CATALOG_STORAGE_REQUIRE_IMAGE", &cfg.Storage.RequireImageOnCreate)
	setEnvValue("CATALOG_S3_BUCKET", &cfg.Storage.S3.Bucket)
	setEnvValue("CATALOG_S3_REGION", &cfg.Storage.S3.Region)
	setEnvValue("CATALOG_S3_ENDPOINT", &cfg.Storage.S3.Endpoint)
	setEnvValue("CATALOG_S3_ACCESS_KEY", &cfg.Storage.S3.AccessKey)
	setEnvValue("CATALOG_S3_SECRET_KEY", &cfg.Storage.S3.SecretKey)
	setEnvValue("CATALOG_BOLT_PATH", &cfg.Storage.Bolt.Path)

	setEnvValue("CATALOG_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvValue("CATALOG_LOGGER_LEVEL", &cfg.Logger.Level)
	setEnvBool("CATALOG_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("CATALOG_LOGGER_FILENAME", &cfg.Logger.Filename)
}
