package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ConfigPath  string        // endpoint file, YAML sequence
	LogDir      string        // logs directory
	LogLevel    string        // debug | info | warn | error
	HTTPTimeout time.Duration // transport timeout for one probe
	Addr        string        // status API bind address; empty disables the API
	DNSDiagnose bool          // classify DNS on transport failures
}

func FromEnv() Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	level := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	switch level {
	case "debug", "info", "warn", "error":
	default:
		level = "info"
	}

	timeout := 5 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
	}

	diagnose := false
	if v := os.Getenv("DNS_DIAGNOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			diagnose = b
		}
	}

	return Config{
		ConfigPath:  path,
		LogDir:      logDir,
		LogLevel:    level,
		HTTPTimeout: timeout,
		Addr:        strings.TrimSpace(os.Getenv("API_ADDR")),
		DNSDiagnose: diagnose,
	}
}
