// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the API needs at startup.
type Config struct {
	Port string

	DBDriver   string
	DBURL      string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	AccessTokenSecret  string
	RefreshTokenSecret string
	ResetTokenSecret   string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	ResetTokenExpiry   time.Duration
	OTPExpiry          time.Duration
	AutoActivateUsers  bool

	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string
	EmailFrom string

	StorageDriver       string
	UploadDir           string
	MaxUploadSize       int64
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	RedisAddr       string
	RedisPassword   string
	RateLimitMax    int
	RateLimitWindow time.Duration

	CORSOrigins string
}

// Load reads configuration from a .env file (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_PORT", "")
	v.SetDefault("ACCESS_TOKEN_EXPIRY", "15m")
	v.SetDefault("REFRESH_TOKEN_EXPIRY", "168h")
	v.SetDefault("RESET_TOKEN_EXPIRY", "10m")
	v.SetDefault("OTP_EXPIRY", "3m")
	v.SetDefault("AUTO_ACTIVATE_USERS", true)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("MAX_UPLOAD_SIZE", 10*1024*1024)
	v.SetDefault("CLOUDINARY_FOLDER", "uploads")
	v.SetDefault("RATE_LIMIT_MAX", 20)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("CORS_ORIGINS", "*")

	return &Config{
		Port: v.GetString("PORT"),

		DBDriver:   strings.ToLower(v.GetString("DB_DRIVER")),
		DBURL:      v.GetString("DATABASE_URL"),
		DBHost:     v.GetString("DATABASE_HOST"),
		DBPort:     v.GetString("DATABASE_PORT"),
		DBName:     v.GetString("DATABASE_NAME"),
		DBUser:     v.GetString("DATABASE_USERNAME"),
		DBPassword: v.GetString("DATABASE_PASSWORD"),

		AccessTokenSecret:  v.GetString("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: v.GetString("REFRESH_TOKEN_SECRET"),
		ResetTokenSecret:   v.GetString("JWT_SECRET"),
		AccessTokenExpiry:  parseDuration(v.GetString("ACCESS_TOKEN_EXPIRY"), 15*time.Minute),
		RefreshTokenExpiry: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRY"), 7*24*time.Hour),
		ResetTokenExpiry:   parseDuration(v.GetString("RESET_TOKEN_EXPIRY"), 10*time.Minute),
		OTPExpiry:          parseDuration(v.GetString("OTP_EXPIRY"), 3*time.Minute),
		AutoActivateUsers:  v.GetBool("AUTO_ACTIVATE_USERS"),

		SMTPHost:  v.GetString("SMTP_HOST"),
		SMTPPort:  v.GetInt("SMTP_PORT"),
		EmailUser: v.GetString("EMAIL_USER"),
		EmailPass: v.GetString("EMAIL_PASS"),
		EmailFrom: v.GetString("EMAIL_FROM"),

		StorageDriver:       strings.ToLower(v.GetString("STORAGE_DRIVER")),
		UploadDir:           v.GetString("UPLOAD_DIR"),
		MaxUploadSize:       v.GetInt64("MAX_UPLOAD_SIZE"),
		CloudinaryCloudName: v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    v.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: v.GetString("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    v.GetString("CLOUDINARY_FOLDER"),

		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		RateLimitMax:    v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow: parseDuration(v.GetString("RATE_LIMIT_WINDOW"), time.Minute),

		CORSOrigins: v.GetString("CORS_ORIGINS"),
	}
}

// Validate reports the first missing setting the server cannot start without.
func (c *Config) Validate() error {
	switch {
	case c.AccessTokenSecret == "":
		return errors.New("ACCESS_TOKEN_SECRET is not set")
	case c.RefreshTokenSecret == "":
		return errors.New("REFRESH_TOKEN_SECRET is not set")
	case c.ResetTokenSecret == "":
		return errors.New("JWT_SECRET is not set")
	case c.StorageDriver != "local" && c.StorageDriver != "cloudinary":
		return errors.New("STORAGE_DRIVER must be local or cloudinary")
	}
	return nil
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
