package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env          string        `yaml:"env" validate:"oneof=development production test"`
	Addr         string        `yaml:"addr" validate:"required"`
	APITimeout   time.Duration `yaml:"timeout" validate:"gt=0"`
	DatabasePath string        `yaml:"database_path" validate:"required"`
	ForeignKeys  bool          `yaml:"enforce_foreign_keys"`
	BusyTimeout  time.Duration `yaml:"busy_timeout" validate:"gte=0"`
	LogLevel     string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	StaticDir    string        `yaml:"static_dir"`
	Admin        AdminConfig   `yaml:"admin"`
}

// AdminConfig holds the account seeded when no admin exists.
type AdminConfig struct {
	Email    string `yaml:"email" validate:"required,email"`
	Password string `yaml:"password" validate:"required"`
	Name     string `yaml:"name"`
}

// DotEnvFile is loaded by LoadConfig before reading the environment.
var DotEnvFile = ".env"

// LoadConfig builds the configuration from defaults, the environment and,
// when path is not empty, a YAML file whose keys override both.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg := &Config{
		Env:          getEnv("QUICKGIG_ENV", "development"),
		Addr:         getEnv("QUICKGIG_ADDR", ":3000"),
		APITimeout:   15 * time.Second,
		DatabasePath: getEnv("QUICKGIG_DATABASE_PATH", "quickgig.db"),
		BusyTimeout:  5 * time.Second,
		LogLevel:     getEnv("QUICKGIG_LOG_LEVEL", "info"),
		StaticDir:    getEnv("QUICKGIG_STATIC_DIR", ""),
		Admin: AdminConfig{
			Email:    getEnv("QUICKGIG_ADMIN_EMAIL", "admin@quickgig.com"),
			Password: getEnv("QUICKGIG_ADMIN_PASSWORD", "admin123"),
			Name:     "System Admin",
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks the configuration. The bootstrap admin password is only
// allowed to keep its default outside production.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed on '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return err
	}

	if c.Env == "production" && c.Admin.Password == "admin123" {
		return fmt.Errorf("invalid config: default admin password is not allowed in production")
	}

	return nil
}

// DSN returns the SQLite data source name with the connection pragmas applied.
func (c *Config) DSN() string {
	fk := 0
	if c.ForeignKeys {
		fk = 1
	}

	sep := "?"
	if strings.Contains(c.DatabasePath, "?") {
		sep = "&"
	}

	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)&_pragma=foreign_keys(%d)", c.DatabasePath, sep, c.BusyTimeout.Milliseconds(), fk)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
