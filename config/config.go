package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultListingURL = "https://www.bdo.com.ph/branches-atms-locator-0?type=atm&branch_location=2&area={area}" +
		"&keyword=&title=&aid=0&form_build_id=form-MzZyboi6IBXkcLIYApR9muiRba7F18QO74gIGDF1txY&form_id=branch_atm_page_form"

	defaultUserAgent = "Mozilla/5.0 (Linux; Android 6.0; Nexus 5 Build/MRA58N) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/127.0.0.0 Mobile Safari/537.36 Edg/127.0.0.0"
)

// Store backends.
const (
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
	BackendMemory    = "memory"
)

// Fetch modes.
const (
	FetchHTTP    = "http"
	FetchBrowser = "browser"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ListingURLTemplate string
	Areas              []string
	BankDocumentPath   string
	Collection         string

	StoreBackend       string
	FirestoreProjectID string
	CredentialsFile    string
	GoogleMapsAPIKey   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	FetchMode      string
	HTTPTimeoutSec int
	UserAgent      string
	RateLimitMs    int
	ChromeBin      string

	GeocodeRPS    float64
	GeocodeStrict bool

	Timezone          string
	QRCodePlaceholder string
	RawCSVPath        string
	MaxRetries        int
	LogLevel          string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		ListingURLTemplate: getEnv("LISTING_URL_TEMPLATE", defaultListingURL),
		Areas:              getEnvList("AREAS", []string{"13"}),
		BankDocumentPath:   getEnv("BANK_DOCUMENT_PATH", "banks/97EvAbFBAF1J8X7eMaYG"),
		Collection:         getEnv("COLLECTION", "atms"),

		StoreBackend:       strings.ToLower(getEnv("STORE_BACKEND", BackendFirestore)),
		FirestoreProjectID: getEnv("FIRESTORE_PROJECT_ID", "*detect-project-id*"),
		CredentialsFile:    getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		GoogleMapsAPIKey:   getEnv("GOOGLE_MAPS_API_KEY", ""),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "locator_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		FetchMode:      strings.ToLower(getEnv("FETCH_MODE", FetchHTTP)),
		HTTPTimeoutSec: getEnvInt("HTTP_TIMEOUT_SEC", 30),
		UserAgent:      getEnv("USER_AGENT", defaultUserAgent),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 0),
		ChromeBin:      getEnv("CHROME_BIN", ""),

		GeocodeRPS:    getEnvFloat("GEOCODE_RPS", 10),
		GeocodeStrict: getEnvBool("GEOCODE_STRICT", true),

		Timezone:          getEnv("TIMEZONE", "Asia/Manila"),
		QRCodePlaceholder: getEnv("QR_CODE_PLACEHOLDER", "https://example.com/qrcode/ "),
		RawCSVPath:        getEnv("RAW_CSV_PATH", ""),
		MaxRetries:        getEnvInt("MAX_RETRIES", 3),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// AreaURL expands the listing URL template for one area.
func (c *Config) AreaURL(area string) string {
	return strings.ReplaceAll(c.ListingURLTemplate, "{area}", area)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
