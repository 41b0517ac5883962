package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// RosterEntry is one login-capable account. Either Code (compared verbatim)
// or CodeHash (bcrypt) must be set.
type RosterEntry struct {
	Name     string `mapstructure:"name" json:"name"`
	Code     string `mapstructure:"code" json:"code"`
	CodeHash string `mapstructure:"code_hash" json:"code_hash"`
}

// AppConfig holds configuration values sourced from config/config.json and the environment.
// Secrets have no defaults and must be provided via the file, a .env file, or the environment.
type AppConfig struct {
	AppEnv             string
	AppPort            string
	StaticDir          string
	AllowedOrigins     []string
	RateLimitPerMinute int
	// Gin framework configuration
	GinMode string
	GinPath string
	// Session cookie signing
	SessionSecret string
	SessionTTL    time.Duration
	// Database
	DBDriver    string
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Redis for session revocation and response caching; empty host disables it
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
	// Object storage for uploads
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3BasePath      string
	S3PublicBaseURL string
	S3UsePathStyle  bool
	// Account roster, fixed for the life of the process
	Teacher  RosterEntry
	Students []RosterEntry
}

// IsProduction reports whether cookies should be marked Secure.
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// ConfigPath is the JSON file read by Load. The CLI may override it.
var ConfigPath = filepath.Join("config", "config.json")

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	// Precedence: .env -> config/config.json -> defaults -> environment variable overrides
	_ = godotenv.Load()

	c, err := LoadFile(ConfigPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	cfg = c
	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// envBindings maps config keys to the environment variables that override them.
// The first variable that is set wins.
var envBindings = map[string][]string{
	"app.env":                   {"APP_ENV"},
	"app.port":                  {"APP_PORT", "PORT"},
	"app.static_dir":            {"STATIC_DIR"},
	"app.allowed_origins":       {"CORS_ALLOWED_ORIGINS"},
	"app.rate_limit_per_minute": {"RATE_LIMIT_PER_MINUTE"},
	"gin.mode":                  {"GIN_MODE"},
	"gin.log_path":              {"GIN_PATH", "GIN_LOG_PATH"},
	"session.secret":            {"SESSION_SECRET"},
	"session.ttl_hours":         {"SESSION_TTL_HOURS"},
	"database.driver":           {"DB_DRIVER"},
	"database.uri":              {"DATABASE_URI"},
	"database.host":             {"DB_HOST"},
	"database.port":             {"DB_PORT"},
	"database.user":             {"DB_USER"},
	"database.password":         {"DB_PASSWORD"},
	"database.name":             {"DB_NAME"},
	"redis.host":                {"REDIS_HOST"},
	"redis.port":                {"REDIS_PORT"},
	"redis.db":                  {"REDIS_DB"},
	"redis.password":            {"REDIS_PASSWORD"},
	"log.level":                 {"LOG_LEVEL"},
	"log.path":                  {"LOG_PATH"},
	"log.max_size_mb":           {"LOG_MAX_SIZE_MB"},
	"log.max_backups":           {"LOG_MAX_BACKUPS"},
	"log.max_age_days":          {"LOG_MAX_AGE_DAYS"},
	"log.compress":              {"LOG_COMPRESS"},
	"s3.bucket":                 {"S3_BUCKET"},
	"s3.region":                 {"S3_REGION", "AWS_REGION"},
	"s3.endpoint":               {"S3_ENDPOINT"},
	"s3.base_path":              {"S3_BASE_PATH"},
	"s3.public_base_url":        {"S3_PUBLIC_BASE_URL"},
	"s3.use_path_style":         {"S3_USE_PATH_STYLE"},
}

// LoadFile builds an AppConfig from the JSON file at path (optional) plus
// environment overrides. It does not touch the cached configuration.
func LoadFile(path string) (AppConfig, error) {
	v := viper.New()
	v.SetConfigType("json")

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return AppConfig{}, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return AppConfig{}, fmt.Errorf("read %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return AppConfig{}, err
		}
	}

	c := AppConfig{
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		StaticDir:          v.GetString("app.static_dir"),
		AllowedOrigins:     stringList(v.Get("app.allowed_origins")),
		RateLimitPerMinute: v.GetInt("app.rate_limit_per_minute"),
		GinMode:            v.GetString("gin.mode"),
		GinPath:            v.GetString("gin.log_path"),
		SessionSecret:      v.GetString("session.secret"),
		SessionTTL:         time.Duration(v.GetInt("session.ttl_hours")) * time.Hour,
		DBDriver:           strings.ToLower(v.GetString("database.driver")),
		DatabaseURI:        v.GetString("database.uri"),
		DBHost:             v.GetString("database.host"),
		DBPort:             v.GetString("database.port"),
		DBUser:             v.GetString("database.user"),
		DBPassword:         v.GetString("database.password"),
		DBName:             v.GetString("database.name"),
		RedisHost:          v.GetString("redis.host"),
		RedisPort:          v.GetInt("redis.port"),
		RedisDB:            v.GetInt("redis.db"),
		RedisPassword:      v.GetString("redis.password"),
		LogLevel:           v.GetString("log.level"),
		LogPath:            v.GetString("log.path"),
		LogMaxSizeMB:       v.GetInt("log.max_size_mb"),
		LogMaxBackups:      v.GetInt("log.max_backups"),
		LogMaxAgeDays:      v.GetInt("log.max_age_days"),
		LogCompress:        v.GetBool("log.compress"),
		S3Bucket:           v.GetString("s3.bucket"),
		S3Region:           v.GetString("s3.region"),
		S3Endpoint:         v.GetString("s3.endpoint"),
		S3BasePath:         v.GetString("s3.base_path"),
		S3PublicBaseURL:    strings.TrimRight(v.GetString("s3.public_base_url"), "/"),
		S3UsePathStyle:     v.GetBool("s3.use_path_style"),
	}

	if err := v.UnmarshalKey("roster.teacher", &c.Teacher); err != nil {
		return AppConfig{}, fmt.Errorf("decode roster.teacher: %w", err)
	}
	if err := v.UnmarshalKey("roster.students", &c.Students); err != nil {
		return AppConfig{}, fmt.Errorf("decode roster.students: %w", err)
	}

	applyDefaults(&c)

	if c.SessionSecret == "" {
		return AppConfig{}, errors.New("SESSION_SECRET must be set in config or environment")
	}
	if err := validateRoster(c.Teacher, c.Students); err != nil {
		return AppConfig{}, err
	}
	return c, nil
}

// applyDefaults fills zero values.
func applyDefaults(c *AppConfig) {
	if c.AppEnv == "" {
		c.AppEnv = "development"
	}
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.StaticDir == "" {
		c.StaticDir = "./static"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 60
	}
	if c.GinPath == "" {
		c.GinPath = filepath.Join("logs", "gin.log")
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = 7 * 24 * time.Hour
	}
	if c.DBDriver == "" {
		c.DBDriver = "mysql"
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		switch c.DBDriver {
		case "postgres":
			c.DBPort = "5432"
		default:
			c.DBPort = "3306"
		}
	}
	if c.DBUser == "" {
		c.DBUser = "root"
	}
	if c.DBName == "" {
		c.DBName = "classboard"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
	if c.S3Region == "" {
		c.S3Region = "ap-northeast-2"
	}
	if c.S3BasePath == "" {
		c.S3BasePath = "uploads"
	}
	if c.Teacher.Name == "" {
		c.Teacher = DefaultTeacher
	}
	if len(c.Students) == 0 {
		c.Students = append([]RosterEntry(nil), DefaultStudents...)
	}
}

// stringList accepts either a JSON array or a comma separated string.
func stringList(raw any) []string {
	var parts []string
	switch t := raw.(type) {
	case []any:
		for _, it := range t {
			if s, ok := it.(string); ok {
				parts = append(parts, s)
			}
		}
	case []string:
		parts = t
	case string:
		parts = strings.Split(t, ",")
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
