package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	JWTSecret       string
	TokenLifetime   time.Duration
	AppBaseURL      string
	FrontendURL     string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPass          string
	DBName          string
	DBNameTest      string
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
	MinioHost       string
	MinioPort       string
	MinioUsername   string
	MinioPassword   string
	BucketName      string
	BucketNameTest  string
	RabbitMQURL     string
	RabbitMQHost    string
	RabbitMQPort    string
	RabbitMQUser    string
	RabbitMQPass    string
	RabbitMQVhost   string
	MailPrefetch    int
	MailRate        float64
	MailBurst       int
	MailRetryMax    int
	MailRetryDelays []time.Duration
	SMTPHost        string
	SMTPPort        string
	SMTPUser        string
	SMTPPass        string
	SMTPFrom        string
	OtpTTL          time.Duration
	InviteTTL       time.Duration
	LinkCacheTTL    time.Duration
	BcryptCost      int
}

var AppConfig Config

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDurationList(key string, defaultValue []time.Duration) []time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]time.Duration, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parsed, err := time.ParseDuration(part)
		if err != nil {
			return defaultValue
		}
		out = append(out, parsed)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// InitConfig loads configuration from the environment.
func InitConfig() {
	rabbitHost := getEnv("RABBITMQ_HOST", "localhost")
	rabbitPort := getEnv("RABBITMQ_PORT", "5672")
	rabbitUser := getEnv("RABBITMQ_USER", "guest")
	rabbitPass := getEnv("RABBITMQ_PASSWORD", "guest")
	rabbitVhost := getEnv("RABBITMQ_VHOST", "/")
	rabbitURL := getEnv("RABBITMQ_URL", "")
	if rabbitURL == "" {
		rabbitURL = "amqp://" + url.PathEscape(rabbitUser) + ":" + url.PathEscape(rabbitPass) +
			"@" + rabbitHost + ":" + rabbitPort + "/" + url.PathEscape(rabbitVhost)
	}
	retryDelays := getEnvDurationList(
		"MAIL_RETRY_DELAYS",
		[]time.Duration{10 * time.Second, 30 * time.Second, 2 * time.Minute, 10 * time.Minute},
	)
	AppConfig = Config{
		JWTSecret:       getEnv("JWT_SECRET", "cloud-vault-dev"),
		TokenLifetime:   getEnvDuration("TOKEN_LIFETIME", 24*time.Hour),
		AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:8000"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "root"),
		DBPass:          getEnv("DB_PASS", "root"),
		DBName:          getEnv("DB_NAME", "cloud_vault"),
		DBNameTest:      getEnv("DB_NAME_TEST", "cloud_vault_test"),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         0,
		MinioHost:       getEnv("MINIO_HOST", "localhost"),
		MinioPort:       getEnv("MINIO_PORT", "9000"),
		MinioUsername:   getEnv("MINIO_USERNAME", "minioadmin"),
		MinioPassword:   getEnv("MINIO_PASSWORD", "minioadmin"),
		BucketName:      getEnv("BUCKET_NAME", "cloud-vault-media-files"),
		BucketNameTest:  getEnv("BUCKET_NAME_TEST", "cloud-vault-test"),
		RabbitMQURL:     rabbitURL,
		RabbitMQHost:    rabbitHost,
		RabbitMQPort:    rabbitPort,
		RabbitMQUser:    rabbitUser,
		RabbitMQPass:    rabbitPass,
		RabbitMQVhost:   rabbitVhost,
		MailPrefetch:    getEnvInt("MAIL_PREFETCH", 8),
		MailRate:        getEnvFloat("MAIL_RATE", 5),
		MailBurst:       getEnvInt("MAIL_BURST", 10),
		MailRetryMax:    getEnvInt("MAIL_RETRY_MAX", 4),
		MailRetryDelays: retryDelays,
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUser:        getEnv("SMTP_USER", ""),
		SMTPPass:        getEnv("SMTP_PASS", ""),
		SMTPFrom:        getEnv("SMTP_FROM", ""),
		OtpTTL:          getEnvDuration("OTP_TTL", 10*time.Minute),
		InviteTTL:       getEnvDuration("INVITE_TTL", 7*24*time.Hour),
		LinkCacheTTL:    getEnvDuration("LINK_CACHE_TTL", 5*time.Minute),
		BcryptCost:      getEnvInt("BCRYPT_COST", 10),
	}
}
