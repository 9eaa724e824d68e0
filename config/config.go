package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string

	// Backend API
	APIBaseURL string
	APITimeout time.Duration

	// Resilient fetch behaviour
	FetchRetries    int
	FetchRetryDelay time.Duration

	// Home-page polling (public previews)
	HomePollInterval time.Duration
	PollRatePerSec   float64
	PollBurst        int

	// Local durable state
	StateFile string

	// Cache TTLs for storefront reads
	CacheProductTTL time.Duration
	CacheGalleryTTL time.Duration

	// Media host (Cloudinary unsigned upload)
	CloudinaryURL string
	UploadPreset  string
	GalleryFolder string
	ProductFolder string
	MaxGalleryMB  int64
	MaxImageMB    int64
	UploadTimeout time.Duration

	// OS hint for the default theme when none is persisted
	PrefersDark bool
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: Try loading .env (standard local dev)
		// We don't error here because in CI/prod envs, .env might not exist,
		// and we rely on system env vars.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:5000/api"),
		APITimeout: getDurationEnv("API_TIMEOUT", 15*time.Second),

		// List fetches: 3 silent retries, 5s apart
		FetchRetries:    getIntEnv("FETCH_RETRIES", 3),
		FetchRetryDelay: getDurationEnv("FETCH_RETRY_DELAY", 5*time.Second),

		HomePollInterval: getDurationEnv("HOME_POLL_INTERVAL", 8*time.Second),
		PollRatePerSec:   getFloatEnv("POLL_RATE_PER_SEC", 2),
		PollBurst:        getIntEnv("POLL_BURST", 4),

		StateFile: getEnv("STATE_FILE", ".lashup/state.json"),

		CacheProductTTL: getDurationEnv("CACHE_PRODUCT_TTL", 30*time.Second),
		CacheGalleryTTL: getDurationEnv("CACHE_GALLERY_TTL", 30*time.Second),

		CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
		UploadPreset:  getEnv("CLOUDINARY_UPLOAD_PRESET", ""),
		GalleryFolder: getEnv("CLOUDINARY_GALLERY_FOLDER", "lashup/gallery"),
		ProductFolder: getEnv("CLOUDINARY_PRODUCT_FOLDER", "lashup/products"),
		MaxGalleryMB:  getInt64Env("MAX_GALLERY_UPLOAD_MB", 50),
		MaxImageMB:    getInt64Env("MAX_IMAGE_UPLOAD_MB", 5),
		UploadTimeout: getDurationEnv("UPLOAD_TIMEOUT", 60*time.Second),

		PrefersDark: getBoolEnv("PREFERS_DARK", false),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.APIBaseURL == "" {
		log.Fatal("CRITICAL: API_BASE_URL environment variable is required")
	}
	if c.CloudinaryURL == "" {
		log.Println("WARNING: CLOUDINARY_URL not set, media uploads will be unavailable")
	}
	if c.FetchRetries < 0 {
		c.FetchRetries = 0
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
		log.Printf("Invalid int64 for %s, using fallback", key)
	}
	return fallback
}
