package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingCredentials is returned by Validate when the bot token or chat id is empty.
var ErrMissingCredentials = errors.New("missing destination credentials")

const (
	DefaultProcessFilter = "NS"
	DefaultAPIURL        = "https://api.telegram.org"
	DefaultParseMode     = "HTML"
)

// Config holds everything the reporter reads from the environment, once, at startup.
type Config struct {
	BotToken      string
	ChatID        string
	ProcessFilter string
	ServerName    string

	APIURL      string
	ParseMode   string
	SendTimeout time.Duration

	DiskPath         string
	ReportContainers bool
	PingTargets      []string
	PingCount        int

	LogLevel string

	// EnvFileLoaded is false when no .env was found and only the process environment was used.
	EnvFileLoaded bool
}

// Load reads .env (if any) and then the process environment.
func Load() *Config {
	// .env is optional, plain env vars work too
	loaded := godotenv.Load() == nil

	cfg := FromEnv()
	cfg.EnvFileLoaded = loaded
	return cfg
}

// FromEnv builds a Config from the current process environment without touching .env.
func FromEnv() *Config {
	token := getEnv("BOT_TOKEN", "")
	if token == "" {
		token = getEnv("TELEGRAM_BOT_TOKEN", "")
	}

	return &Config{
		BotToken:         token,
		ChatID:           getEnv("CHAT_ID", ""),
		ProcessFilter:    lookupEnv("PROCESS_FILTER", DefaultProcessFilter),
		ServerName:       getEnv("SERVER_NAME", ""),
		APIURL:           strings.TrimRight(getEnv("API_URL", DefaultAPIURL), "/"),
		ParseMode:        getEnv("PARSE_MODE", DefaultParseMode),
		SendTimeout:      time.Duration(getEnvInt("SEND_TIMEOUT_SECONDS", 10)) * time.Second,
		DiskPath:         getEnv("DISK_PATH", defaultDiskPath()),
		ReportContainers: getEnvBool("REPORT_CONTAINERS", false),
		PingTargets:      splitList(getEnv("PING_TARGETS", "")),
		PingCount:        getEnvInt("PING_COUNT", 3),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports which required keys are missing.
func (c *Config) Validate() error {
	var missing []string
	if c.BotToken == "" {
		missing = append(missing, "BOT_TOKEN")
	}
	if c.ChatID == "" {
		missing = append(missing, "CHAT_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// PlainText reports whether the destination should receive the report without markup.
func (c *Config) PlainText() bool {
	switch strings.ToLower(c.ParseMode) {
	case "", "none", "plain", "text":
		return true
	}
	return false
}

func defaultDiskPath() string {
	if runtime.GOOS == "windows" {
		return "C:\\"
	}
	return "/"
}

// getEnv returns the variable, or fallback when unset or empty
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// lookupEnv is getEnv for keys where an explicit empty value is meaningful.
// PROCESS_FILTER="" matches every process.
func lookupEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
