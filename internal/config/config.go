// Package config handles configuration loading and management
package config

import (
	"fmt"
	"net/url"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the tool configuration loaded from environment variables.
// Command-line flags override every field.
type Config struct {
	GameExecutable string
	RecordingsDir  string
	Manifest       string
	Concurrency    int
	CaseTimeout    time.Duration
	ArgStyle       string
	ResultsDSN     string
	LcdTool        string
	ShaderCompiler string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		GameExecutable: getEnv("PSYDOOM_EXE", ""),
		RecordingsDir:  getEnv("DEMOTEST_DIR", ""),
		Manifest:       getEnv("DEMOTEST_MANIFEST", ""),
		ArgStyle:       getEnv("DEMOTEST_ARG_STYLE", "long"),
		ResultsDSN:     getEnv("DEMOTEST_RESULTS_DSN", ""),
		LcdTool:        getEnv("LCD_TOOL", "LcdTool"),
		ShaderCompiler: getEnv("GLSLC", "glslc"),
	}

	concurrency, err := strconv.Atoi(getEnv("DEMOTEST_CONCURRENCY", strconv.Itoa(runtime.NumCPU())))
	if err != nil {
		return nil, fmt.Errorf("invalid DEMOTEST_CONCURRENCY: %w", err)
	}
	cfg.Concurrency = concurrency

	timeout, err := time.ParseDuration(getEnv("DEMOTEST_CASE_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEMOTEST_CASE_TIMEOUT: %w", err)
	}
	cfg.CaseTimeout = timeout

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) String() string {
	return fmt.Sprintf(`Current Configuration:
======================
Game Executable:   %s
Recordings Dir:    %s
Manifest:          %s
Concurrency:       %s
Case Timeout:      %s
Argument Style:    %s
Results DSN:       %s
LCD Tool:          %s
Shader Compiler:   %s`,
		orNotSet(c.GameExecutable),
		orNotSet(c.RecordingsDir),
		orNotSet(c.Manifest),
		concurrencyDisplay(c.Concurrency),
		timeoutDisplay(c.CaseTimeout),
		c.ArgStyle,
		orNotSet(redactDSN(c.ResultsDSN)),
		c.LcdTool,
		c.ShaderCompiler,
	)
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func concurrencyDisplay(n int) string {
	if n <= 0 {
		return "(unbounded)"
	}
	return strconv.Itoa(n)
}

func timeoutDisplay(d time.Duration) string {
	if d <= 0 {
		return "(none)"
	}
	return d.String()
}

// redactDSN masks any password embedded in a connection string.
func redactDSN(dsn string) string {
	if dsn == "" {
		return ""
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return "********"
	}

	return u.Redacted()
}
