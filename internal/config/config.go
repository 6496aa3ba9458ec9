package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort         = 3000
	defaultEnv          = "development"
	defaultDBHost       = "127.0.0.1"
	defaultDBPort       = 3306
	defaultDBUser       = "root"
	defaultDBPassword   = ""
	defaultDBName       = "blogs"
	defaultDBCharset    = "utf8mb4"
	defaultDBLoc        = "Local"
	defaultDBPoolSize   = 10
	defaultUploadSubdir = "public/uploads"
)

// Environment variable overrides. These win over the YAML file so the
// service can run fully env-configured in containers.
const (
	EnvPort       = "BLOG_PORT"
	EnvEnv        = "BLOG_ENV"
	EnvDBHost     = "BLOG_DB_HOST"
	EnvDBPort     = "BLOG_DB_PORT"
	EnvDBUser     = "BLOG_DB_USER"
	EnvDBPassword = "BLOG_DB_PASSWORD"
	EnvDBName     = "BLOG_DB_NAME"
	EnvDBPoolSize = "BLOG_DB_POOL_SIZE"
	EnvUploadDir  = "BLOG_UPLOAD_DIR"
)

// AppConfig holds runtime startup configuration.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	Database       DatabaseConfig `yaml:"database"`
	Paths          PathsConfig    `yaml:"paths"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	DSN       string `yaml:"dsn"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Name      string `yaml:"name"`
	Charset   string `yaml:"charset"`
	ParseTime bool   `yaml:"parse_time"`
	Loc       string `yaml:"loc"`
	PoolSize  int    `yaml:"pool_size"`
}

type PathsConfig struct {
	Uploads string `yaml:"uploads"`
}

// Load reads the YAML config at configPath, applies defaults and
// environment overrides. A missing file at the default path is not an
// error; the service can run on defaults plus environment alone.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case os.IsNotExist(err):
		// env-only deployment
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	normalize(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		return nil, fmt.Errorf("invalid database.port %d, expected 1-65535", cfg.Database.Port)
	}
	if cfg.Database.PoolSize < 1 {
		return nil, fmt.Errorf("invalid database.pool_size %d, expected >= 1", cfg.Database.PoolSize)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Host:      defaultDBHost,
			Port:      defaultDBPort,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
			PoolSize:  defaultDBPoolSize,
		},
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v, ok := envInt(EnvPort); ok {
		cfg.Port = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvEnv)); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDBHost)); v != "" {
		cfg.Database.Host = v
	}
	if v, ok := envInt(EnvDBPort); ok {
		cfg.Database.Port = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDBUser)); v != "" {
		cfg.Database.User = v
	}
	if v, ok := os.LookupEnv(EnvDBPassword); ok {
		cfg.Database.Password = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDBName)); v != "" {
		cfg.Database.Name = v
	}
	if v, ok := envInt(EnvDBPoolSize); ok {
		cfg.Database.PoolSize = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvUploadDir)); v != "" {
		cfg.Paths.Uploads = v
	}
}

func envInt(key string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func normalize(cfg *AppConfig) {
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}

	db := &cfg.Database
	db.DSN = strings.TrimSpace(db.DSN)
	db.Host = strings.TrimSpace(db.Host)
	db.User = strings.TrimSpace(db.User)
	db.Name = strings.TrimSpace(db.Name)
	db.Charset = strings.TrimSpace(db.Charset)
	db.Loc = strings.TrimSpace(db.Loc)
	if db.Host == "" {
		db.Host = defaultDBHost
	}
	if db.Port == 0 {
		db.Port = defaultDBPort
	}
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Name == "" {
		db.Name = defaultDBName
	}
	if db.Charset == "" {
		db.Charset = defaultDBCharset
	}
	if db.Loc == "" {
		db.Loc = defaultDBLoc
	}
	if db.PoolSize == 0 {
		db.PoolSize = defaultDBPoolSize
	}

	cfg.Paths.Uploads = strings.TrimSpace(cfg.Paths.Uploads)

	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	cfg.AllowedOrigins = origins
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// UploadDir returns the absolute path of the image upload directory.
func (c *AppConfig) UploadDir() string {
	if c == nil {
		return ResolveRuntimePath("", defaultUploadSubdir)
	}
	return ResolveRuntimePath(c.Paths.Uploads, defaultUploadSubdir)
}
