package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Auth          AuthConfig
	Upload        UploadConfig
	S3            S3Config
	Cloudinary    CloudinaryConfig
	Mail          MailConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL        string
	MaxConns   int32
	MinConns   int32
	CACertPath string
}

type AuthConfig struct {
	JWTSecret       string
	JWTIssuer       string
	SessionTTLHours int
	PasswordScheme  string
	BcryptCost      int
}

type UploadConfig struct {
	AssetHost      string
	MaxBytes       int64
	TimeoutSeconds int
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	UsePathStyle    bool
}

type CloudinaryConfig struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string
}

type MailConfig struct {
	SendGridAPIKey string
	FromAddress    string
	FromName       string
	TimeoutSeconds int
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

const minProductionSecretLen = 32

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	cfg := FromViper(newViper())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")

	v.SetDefault("JWT_ISSUER", "mentor-directory-api")
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("AUTH_PASSWORD_SCHEME", "bcrypt")
	v.SetDefault("BCRYPT_COST", 12)

	v.SetDefault("UPLOAD_MAX_BYTES", 5*1024*1024)
	v.SetDefault("UPLOAD_TIMEOUT_SECONDS", 30)
	v.SetDefault("S3_REGION", "us-east-1")

	v.SetDefault("MAIL_FROM_NAME", "Mentor Directory")
	v.SetDefault("MAIL_TIMEOUT_SECONDS", 10)

	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "") // OTLP over HTTP, empty disables tracing
	v.SetDefault("O11Y_BE_SERVICE_NAME", "mentor-directory-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "mentor-directory")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "mentor-directory-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,inuse_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	return v
}

// FromViper maps viper keys onto Config without validating
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			URL:        v.GetString("DATABASE_URL"),
			MaxConns:   v.GetInt32("DB_MAX_CONNS"),
			MinConns:   v.GetInt32("DB_MIN_CONNS"),
			CACertPath: v.GetString("DATABASE_CA_CERT"),
		},
		Auth: AuthConfig{
			JWTSecret:       v.GetString("JWT_SECRET"),
			JWTIssuer:       v.GetString("JWT_ISSUER"),
			SessionTTLHours: v.GetInt("SESSION_TTL_HOURS"),
			PasswordScheme:  strings.ToLower(v.GetString("AUTH_PASSWORD_SCHEME")),
			BcryptCost:      v.GetInt("BCRYPT_COST"),
		},
		Upload: UploadConfig{
			AssetHost:      strings.ToLower(strings.TrimSpace(v.GetString("ASSET_HOST"))),
			MaxBytes:       v.GetInt64("UPLOAD_MAX_BYTES"),
			TimeoutSeconds: v.GetInt("UPLOAD_TIMEOUT_SECONDS"),
		},
		S3: S3Config{
			Bucket:          v.GetString("S3_BUCKET"),
			Region:          v.GetString("S3_REGION"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
			PublicBaseURL:   v.GetString("S3_PUBLIC_BASE_URL"),
			UsePathStyle:    v.GetBool("S3_USE_PATH_STYLE"),
		},
		Cloudinary: CloudinaryConfig{
			URL:       v.GetString("CLOUDINARY_URL"),
			CloudName: v.GetString("CLOUDINARY_CLOUD_NAME"),
			APIKey:    v.GetString("CLOUDINARY_API_KEY"),
			APISecret: v.GetString("CLOUDINARY_API_SECRET"),
		},
		Mail: MailConfig{
			SendGridAPIKey: v.GetString("SENDGRID_API_KEY"),
			FromAddress:    v.GetString("MAIL_FROM_ADDRESS"),
			FromName:       v.GetString("MAIL_FROM_NAME"),
			TimeoutSeconds: v.GetInt("MAIL_TIMEOUT_SECONDS"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}
}

func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.Auth.JWTSecret) < minProductionSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d characters in production", minProductionSecretLen)
	}
	if c.Auth.SessionTTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}
	switch c.Auth.PasswordScheme {
	case "bcrypt", "argon2id":
	default:
		return fmt.Errorf("AUTH_PASSWORD_SCHEME must be bcrypt or argon2id, got %q", c.Auth.PasswordScheme)
	}

	switch c.Upload.AssetHost {
	case "":
	case "s3":
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when ASSET_HOST=s3")
		}
	case "cloudinary":
		if c.Cloudinary.URL == "" && (c.Cloudinary.CloudName == "" || c.Cloudinary.APIKey == "" || c.Cloudinary.APISecret == "") {
			return fmt.Errorf("CLOUDINARY_URL or CLOUDINARY_CLOUD_NAME/API_KEY/API_SECRET is required when ASSET_HOST=cloudinary")
		}
	default:
		return fmt.Errorf("ASSET_HOST must be s3 or cloudinary, got %q", c.Upload.AssetHost)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if c.Upload.TimeoutSeconds <= 0 {
		return fmt.Errorf("UPLOAD_TIMEOUT_SECONDS must be positive")
	}

	if c.Mail.SendGridAPIKey != "" && c.Mail.FromAddress == "" {
		return fmt.Errorf("MAIL_FROM_ADDRESS is required when SENDGRID_API_KEY is set")
	}
	if c.Mail.TimeoutSeconds <= 0 {
		return fmt.Errorf("MAIL_TIMEOUT_SECONDS must be positive")
	}

	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// SessionTTL returns the admin token lifetime
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Auth.SessionTTLHours) * time.Hour
}

// UploadTimeout bounds a single call to the asset host
func (c *Config) UploadTimeout() time.Duration {
	return time.Duration(c.Upload.TimeoutSeconds) * time.Second
}

// MailTimeout bounds a single call to the mail transport
func (c *Config) MailTimeout() time.Duration {
	return time.Duration(c.Mail.TimeoutSeconds) * time.Second
}
