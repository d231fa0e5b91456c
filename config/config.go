package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/stowgate"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for stowgate.
type Config struct {
	// Env labels the deployment; "prod" and "production" switch to JSON logs.
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"server"`
	Admin    AdminConfig    `mapstructure:"admin"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Uploads  UploadsConfig  `mapstructure:"uploads"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// AdminConfig holds the shared admin secret. TokenFile, when set, replaces
// Token. An empty token disables every admin route.
type AdminConfig struct {
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"token_file"`
}

// CORSConfig holds the allowed origin sent on every response.
type CORSConfig struct {
	AllowOrigin string `mapstructure:"allow_origin" validate:"required"`
}

// UploadsConfig holds upload workflow configuration.
type UploadsConfig struct {
	PublicBaseURL string `mapstructure:"public_base_url" validate:"omitempty,url"`
}

// StorageConfig selects and configures the object store.
type StorageConfig struct {
	Type     string   `mapstructure:"type" validate:"required,oneof=none filesystem s3 minio"`
	Path     string   `mapstructure:"path" validate:"required_if=Type filesystem"`
	MetaPath string   `mapstructure:"meta_path"`
	S3       S3Config `mapstructure:"s3"`
}

// S3Config configures the s3 and minio storage types.
type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
	Secure          bool   `mapstructure:"secure"`
}

// DatabaseConfig selects and configures the row store.
type DatabaseConfig struct {
	Type   string          `mapstructure:"type" validate:"required,oneof=none sqlite postgres"`
	DSN    string          `mapstructure:"dsn" validate:"required_unless=Type none"`
	Tables stowgate.Tables `mapstructure:"tables"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"env":              "env",
	"port":             "server.port",
	"admin-token":      "admin.token",
	"admin-token-file": "admin.token_file",
	"allow-origin":     "cors.allow_origin",
	"public-base-url":  "uploads.public_base_url",
	"storage-type":     "storage.type",
	"storage-path":     "storage.path",
	"db-type":          "database.type",
	"db-dsn":           "database.dsn",
	"log-level":        "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey, ok := flagToViperKey[f.Name]
		if !ok {
			return
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance. Every key
// needs a default so that AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "")

	v.SetDefault("server.port", 5708)

	v.SetDefault("admin.token", "")
	v.SetDefault("admin.token_file", "")

	v.SetDefault("cors.allow_origin", "*")

	v.SetDefault("uploads.public_base_url", "")

	v.SetDefault("storage.type", "filesystem")
	v.SetDefault("storage.path", "./data")
	v.SetDefault("storage.meta_path", "")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.region", "auto")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key_id", "")
	v.SetDefault("storage.s3.secret_access_key", "")
	v.SetDefault("storage.s3.use_path_style", false)
	v.SetDefault("storage.s3.secure", true)

	v.SetDefault("database.type", "none")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.tables.users", "users")

	v.SetDefault("log.level", "")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	v.SetEnvPrefix("STOWGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		bindFlags(v, flags)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := cfg.Database.Tables.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := cfg.Storage.validateRemote(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (s StorageConfig) validateRemote() error {
	switch s.Type {
	case "s3":
		if s.S3.Bucket == "" {
			return errors.New("storage.s3.bucket is required for storage type s3")
		}
	case "minio":
		if s.S3.Bucket == "" || s.S3.Endpoint == "" {
			return errors.New("storage.s3.bucket and storage.s3.endpoint are required for storage type minio")
		}
	}
	return nil
}

// IsProduction reports whether Env names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}
