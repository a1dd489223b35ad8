package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	FeedsFile    string
	KeywordsFile string
	OutputDir    string

	// WindowHours 为 0 时关闭时间窗口过滤
	WindowHours      int
	MaxItems         int
	HTMLSourceLimit  int
	FetchTimeout     time.Duration
	FetchConcurrency int
	ExtractBody      bool

	UserAgent string

	CronSpec string
	AppPort  string
}

const defaultUserAgent = "Mozilla/5.0 (compatible; NewsClipBot/1.0; +https://github.com/rlwrld/newsclip)"

func Load() *Config {
	cfg := &Config{
		FeedsFile:        getEnv("FEEDS_FILE", "feeds.yml"),
		KeywordsFile:     getEnv("KEYWORDS_FILE", "keywords.yml"),
		OutputDir:        getEnv("OUTPUT_DIR", "docs"),
		WindowHours:      getEnvInt("WINDOW_HOURS", 24),
		MaxItems:         getEnvInt("MAX_ITEMS", 200),
		HTMLSourceLimit:  getEnvInt("HTML_SOURCE_LIMIT", 20),
		FetchTimeout:     time.Duration(getEnvInt("FETCH_TIMEOUT_SEC", 20)) * time.Second,
		FetchConcurrency: getEnvInt("FETCH_CONCURRENCY", 4),
		ExtractBody:      getEnv("EXTRACT_BODY", "1") == "1",
		UserAgent:        getEnv("USER_AGENT", defaultUserAgent),
		CronSpec:         getEnv("CRON_SPEC", "0 * * * *"),
		AppPort:          getEnv("APP_PORT", "9000"),
	}

	log.Printf("config loaded: feeds=%s keywords=%s out=%s window=%dh max=%d",
		cfg.FeedsFile, cfg.KeywordsFile, cfg.OutputDir, cfg.WindowHours, cfg.MaxItems)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("ignore invalid %s=%q, use default %d", key, v, def)
		return def
	}
	return n
}
