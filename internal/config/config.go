package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server configuration
	Port int    `json:"port"`
	Host string `json:"host"`

	// Database configuration
	DBDriver   string `json:"db_driver"`
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBName     string `json:"db_name"`
	DBSSLMode  string `json:"db_ssl_mode"`
	DBPath     string `json:"db_path"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security configuration
	JWTSecret string        `json:"jwt_secret"`
	TokenTTL  time.Duration `json:"token_ttl"`

	// Payment gateway configuration
	GatewayKeyID     string `json:"gateway_key_id"`
	GatewayKeySecret string `json:"gateway_key_secret"`
	GatewayBaseURL   string `json:"gateway_base_url"`
	Currency         string `json:"currency"`

	// Email configuration
	EmailEnabled  bool   `json:"email_enabled"`
	SMTPHost      string `json:"smtp_host"`
	SMTPPort      int    `json:"smtp_port"`
	SMTPUser      string `json:"smtp_user"`
	SMTPPassword  string `json:"smtp_password"`
	EmailFrom     string `json:"email_from"`
	EmailFromName string `json:"email_from_name"`
	ClientURL     string `json:"client_url"`

	// Inventory monitor configuration
	MonitorInterval time.Duration `json:"monitor_interval"`

	// Optional infrastructure (empty value disables the integration)
	RedisAddr   string `json:"redis_addr"`
	KafkaBroker string `json:"kafka_broker"`
	KafkaTopic  string `json:"kafka_topic"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, DBDriver: %s, DBHost: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], "+
		"LogLevel: %s, JWTSecret: [REDACTED], GatewayKeyID: %s, GatewayKeySecret: [REDACTED], "+
		"EmailEnabled: %t, SMTPHost: %s, MonitorInterval: %s, RedisAddr: %s, KafkaBroker: %s}",
		c.Port, c.Host, c.DBDriver, c.DBHost, c.DBName, c.DBUser,
		c.LogLevel, c.GatewayKeyID, c.EmailEnabled, c.SMTPHost, c.MonitorInterval, c.RedisAddr, c.KafkaBroker)
}

// LoadConfig reads the proper configuration from environment variables and returns a Config struct
// Returns an error if any required environment variable is missing or invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	smtpPort, err := strconv.Atoi(GetEnvWithDefault("SMTP_PORT", "587"))
	if err != nil {
		return nil, err
	}

	monitorMinutes := GetEnvAsType("MONITOR_INTERVAL_MINUTES", 30)
	if monitorMinutes <= 0 {
		return nil, errors.New("MONITOR_INTERVAL_MINUTES must be positive")
	}

	tokenHours := GetEnvAsType("TOKEN_TTL_HOURS", 24)
	if tokenHours <= 0 {
		return nil, errors.New("TOKEN_TTL_HOURS must be positive")
	}

	config := &Config{
		Port: port,
		Host: GetEnvWithDefault("APP_HOST", "localhost"),

		DBDriver:   GetEnvWithDefault("DB_DRIVER", "sqlite"),
		DBHost:     GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     GetEnvWithDefault("DB_PORT", "5432"),
		DBUser:     GetEnvWithDefault("DB_USER", "user"),
		DBPassword: GetEnvWithDefault("DB_PASSWORD", "password"),
		DBName:     GetEnvWithDefault("DB_NAME", "pizzadb"),
		DBSSLMode:  GetEnvWithDefault("DB_SSL_MODE", "disable"),
		DBPath:     GetEnvWithDefault("DB_PATH", "pizza.sqlite"),

		LogLevel: GetEnvWithDefault("LOG_LEVEL", "info"),

		JWTSecret: GetEnvWithDefault("JWT_SECRET", "secret"),
		TokenTTL:  time.Duration(tokenHours) * time.Hour,

		GatewayKeyID:     GetEnvWithDefault("GATEWAY_KEY_ID", ""),
		GatewayKeySecret: GetEnvWithDefault("GATEWAY_KEY_SECRET", ""),
		GatewayBaseURL:   GetEnvWithDefault("GATEWAY_BASE_URL", "https://api.razorpay.com"),
		Currency:         GetEnvWithDefault("CURRENCY", "INR"),

		EmailEnabled:  GetEnvAsType("EMAIL_ENABLED", false),
		SMTPHost:      GetEnvWithDefault("SMTP_HOST", ""),
		SMTPPort:      smtpPort,
		SMTPUser:      GetEnvWithDefault("SMTP_USER", ""),
		SMTPPassword:  GetEnvWithDefault("SMTP_PASSWORD", ""),
		EmailFrom:     GetEnvWithDefault("EMAIL_FROM", "noreply@pizzaorder.com"),
		EmailFromName: GetEnvWithDefault("EMAIL_FROM_NAME", "Pizza Order"),
		ClientURL:     GetEnvWithDefault("CLIENT_URL", "http://localhost:3000"),

		MonitorInterval: time.Duration(monitorMinutes) * time.Minute,

		RedisAddr:   GetEnvWithDefault("REDIS_ADDR", ""),
		KafkaBroker: GetEnvWithDefault("KAFKA_BROKER", ""),
		KafkaTopic:  GetEnvWithDefault("KAFKA_TOPIC", "order-events"),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
