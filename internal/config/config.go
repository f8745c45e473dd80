package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/inc-tasks/task-api/internal/constants"
	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only acceptable when running in debug mode
const DefaultJWTSecret = "default-secret-key-change-me"

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBDSN          string
	DBMaxOpenConns int
	DBMaxIdleConns int

	JWTSecret          string
	JWTExpiresIn       time.Duration
	RefreshTokenSecret string
	RefreshExpiresIn   time.Duration
	OTPTTL             time.Duration

	EmailHost   string
	EmailPort   int
	EmailSecure bool
	EmailUser   string
	EmailPass   string
	EmailFrom   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthRateLimitPerMinute int
	CORSAllowedOrigins     []string
	TrustedProxies         []string

	OpenAIAPIKey  string
	OpenAIBaseURL string
}

// Load reads the configuration from the environment, after loading a .env file when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	jwtSecret := getEnv("JWT_SECRET", DefaultJWTSecret)

	return &Config{
		Port:     getEnv("PORT", "8000"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "taskuser"),
		DBPassword:     getEnv("DB_PASSWORD", "taskpassword"),
		DBName:         getEnv("DB_NAME", "task_management"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		DBDSN:          getEnv("DB_DSN", ""),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),

		JWTSecret:          jwtSecret,
		JWTExpiresIn:       getEnvAsDuration("JWT_EXPIRES_IN", constants.DefaultAccessTokenTTL),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", jwtSecret),
		RefreshExpiresIn:   getEnvAsDuration("REFRESH_TOKEN_EXPIRES_IN", constants.DefaultRefreshTokenTTL),
		OTPTTL:             getEnvAsDuration("OTP_TTL", constants.DefaultOTPTTL),

		EmailHost:   getEnv("EMAIL_HOST", ""),
		EmailPort:   getEnvAsInt("EMAIL_PORT", 587),
		EmailSecure: getEnvAsBool("EMAIL_SECURE", false),
		EmailUser:   getEnv("EMAIL_USER", ""),
		EmailPass:   getEnv("EMAIL_PASS", ""),
		EmailFrom:   getEnv("EMAIL_FROM", "no-reply@localhost"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		AuthRateLimitPerMinute: getEnvAsInt("RATE_LIMIT_AUTH_PER_MINUTE", 30),
		CORSAllowedOrigins:     getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:         getEnvAsList("TRUSTED_PROXIES", nil),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
	}
}

// IsDevelopment reports whether error details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// Validate rejects settings that are unsafe outside debug mode
func (c *Config) Validate() error {
	if c.IsDevelopment() {
		return nil
	}
	if c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set when GIN_MODE=%s", c.GinMode)
	}
	if c.RefreshTokenSecret == DefaultJWTSecret {
		return fmt.Errorf("REFRESH_TOKEN_SECRET must not use the default secret when GIN_MODE=%s", c.GinMode)
	}
	return nil
}

// DSN builds the connection string for the configured driver unless DB_DSN overrides it.
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}

	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
	case "sqlite":
		return c.DBName + ".db"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}

// ParseDuration accepts Go durations plus a day suffix ("7d").
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	return d, nil
}
