package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	AppPort           string
	DbDriver          string
	SqlitePath        string
	DbHost            string
	DbPort            string
	DbUser            string
	DbPassword        string
	DbName            string
	DbParams          string
	TrustedProxies    []string
	TranslationFolder string
	SessionSecret     string
	SessionTTL        time.Duration
	CookieSecure      bool
	SMTPHost          string
	SMTPPort          int
	MailUsername      string
	MailPassword      string
	MailSubject       string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		DbDriver:          strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		SqlitePath:        getEnv("SQLITE_PATH", "tasks.db"),
		DbHost:            getEnv("MYSQL_HOST", "db"),
		DbPort:            getEnv("MYSQL_PORT", "3306"),
		DbUser:            getEnv("MYSQL_USER", "planner"),
		DbPassword:        getEnv("MYSQL_PASSWORD", "planner"),
		DbName:            getEnv("MYSQL_DATABASE", "planner"),
		DbParams:          getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		TrustedProxies:    parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		TranslationFolder: getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 12*time.Hour),
		CookieSecure:      getEnvBool("COOKIE_SECURE", false),
		SMTPHost:          getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:          getEnvInt("SMTP_PORT", 465),
		// Mail credentials stay optional here; sending fails without them.
		// EDUNET_* are the names used by existing planner .env files.
		MailUsername: getEnvAny("MAIL_USERNAME", "EDUNET_EMAIL"),
		MailPassword: getEnvAny("MAIL_PASSWORD", "EDUNET_EMAIL_PASSWORD"),
		MailSubject:  getEnv("MAIL_SUBJECT", "Your Study Tasks"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAny returns the first non-empty value among keys.
func getEnvAny(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
