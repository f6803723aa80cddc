package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DBconfig struct {
	URL      string
	MaxConns int32
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URL string
}

type RESTconfig struct {
	PORT               string
	CORSAllowedOrigins []string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

type JWTConfig struct {
	SigningKey     string
	AccessTokenTTL time.Duration
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	BaseURL   string
}

type UploadConfig struct {
	Timeout   time.Duration
	MaxBytes  int64
	MaxImages int
}

type WizardConfig struct {
	DraftTTL time.Duration
}

type ContentConfig struct {
	CacheTTL time.Duration
}

type AdminConfig struct {
	Email    string
	Password string
}

type NotifyConfig struct {
	AWSRegion  string
	FromEmail  string
	AdminEmail string
	AdminPhone string
}

// AppConfig holds the configuration of both processes.
type AppConfig struct {
	AppName      string
	Database     DBconfig
	Redis        RedisConfig
	RabbitMQ     RabbitMQConfig
	Rest         RESTconfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
	JWT          JWTConfig
	Cloudinary   CloudinaryConfig
	Upload       UploadConfig
	Wizard       WizardConfig
	Content      ContentConfig
	Admin        AdminConfig
	Notify       NotifyConfig
}

// LoadConfig reads .env (optional) and the environment. Real env vars win.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: no .env file loaded (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "amg-portal")

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	cfg.Database.MaxConns = int32(getEnvAsInt("DATABASE_MAX_CONNS", 10))

	cfg.Redis.Address = getEnvAsString("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvAsString("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL environment variable is required")
	}

	cfg.Rest.PORT = getEnvAsString("PORT", "8080")
	cfg.Rest.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}
	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	cfg.JWT.SigningKey = getEnvAsString("JWT_SIGNING_KEY", "")
	cfg.JWT.AccessTokenTTL = getEnvAsDuration("ACCESS_TOKEN_TTL", 12*time.Hour)

	cfg.Cloudinary.CloudName = getEnvAsString("CLOUDINARY_CLOUD_NAME", "")
	cfg.Cloudinary.APIKey = getEnvAsString("CLOUDINARY_API_KEY", "")
	cfg.Cloudinary.APISecret = getEnvAsString("CLOUDINARY_API_SECRET", "")
	cfg.Cloudinary.Folder = getEnvAsString("CLOUDINARY_FOLDER", "amg")
	cfg.Cloudinary.BaseURL = getEnvAsString("CLOUDINARY_BASE_URL", "https://api.cloudinary.com")

	cfg.Upload.Timeout = getEnvAsDuration("UPLOAD_TIMEOUT", 30*time.Second)
	cfg.Upload.MaxBytes = int64(getEnvAsInt("MAX_UPLOAD_BYTES", 10<<20))
	cfg.Upload.MaxImages = getEnvAsInt("MAX_IMAGES_PER_LISTING", 10)

	cfg.Wizard.DraftTTL = getEnvAsDuration("DRAFT_TTL", 24*time.Hour)
	cfg.Content.CacheTTL = getEnvAsDuration("CONTENT_CACHE_TTL", 10*time.Minute)

	cfg.Admin.Email = getEnvAsString("ADMIN_EMAIL", "")
	cfg.Admin.Password = getEnvAsString("ADMIN_PASSWORD", "")

	cfg.Notify.AWSRegion = getEnvAsString("AWS_REGION", "eu-central-1")
	cfg.Notify.FromEmail = getEnvAsString("NOTIFY_FROM_EMAIL", "")
	cfg.Notify.AdminEmail = getEnvAsString("NOTIFY_ADMIN_EMAIL", "")
	cfg.Notify.AdminPhone = getEnvAsString("NOTIFY_ADMIN_PHONE", "")

	return cfg, nil
}

// ValidateAPI checks settings only the HTTP process needs.
func (c *AppConfig) ValidateAPI() error {
	if c.JWT.SigningKey == "" {
		return fmt.Errorf("JWT_SIGNING_KEY environment variable is required")
	}
	if c.Cloudinary.CloudName == "" || c.Cloudinary.APIKey == "" || c.Cloudinary.APISecret == "" {
		return fmt.Errorf("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
	}
	return nil
}

// ValidateWorker checks settings only the notification worker needs.
func (c *AppConfig) ValidateWorker() error {
	if c.Notify.FromEmail == "" {
		return fmt.Errorf("NOTIFY_FROM_EMAIL environment variable is required")
	}
	if c.Notify.AdminEmail == "" && c.Notify.AdminPhone == "" {
		return fmt.Errorf("at least one of NOTIFY_ADMIN_EMAIL or NOTIFY_ADMIN_PHONE is required")
	}
	return nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
