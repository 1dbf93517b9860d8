package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Env struct {
	AppAddr  string
	GinMode  string
	LogLevel string
	// LogFormat is "json" or "text".
	LogFormat string

	BackendBaseURL string
	BackendTimeout time.Duration
	RequestTimeout time.Duration

	// DatabaseDSN enables the MySQL session store. Empty keeps sessions in memory.
	DatabaseDSN string

	// RedisAddr enables the hotel catalog cache. Empty disables it.
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	HotelCacheTTL   time.Duration
	CatalogWarmSpec string

	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	// AdminTokenSecret verifies bearer tokens on admin routes. Empty
	// disables those routes.
	AdminTokenSecret string

	CORSAllowedOrigins []string

	// TaxPolicy is "none" or "gst12".
	TaxPolicy string

	StatusPollAttempts  int
	StatusPollBaseDelay time.Duration
	StatusPollMaxDelay  time.Duration

	SiteName  string
	SitePhone string
	SiteEmail string
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:8081",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("BACKEND_BASE_URL", "http://localhost:5000/api")
	v.SetDefault("BACKEND_TIMEOUT", "15s")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("HOTEL_CACHE_TTL", "5m")
	v.SetDefault("CATALOG_WARM_SPEC", "*/5 * * * *")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("ADMIN_TOKEN_SECRET", "")
	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("TAX_POLICY", "none")
	v.SetDefault("STATUS_POLL_ATTEMPTS", 5)
	v.SetDefault("STATUS_POLL_BASE_DELAY", "1s")
	v.SetDefault("STATUS_POLL_MAX_DELAY", "16s")
	v.SetDefault("SITE_NAME", "HotelBook")
	v.SetDefault("SITE_PHONE", "+1 (555) 123-4567")
	v.SetDefault("SITE_EMAIL", "contact@hotelbook.com")
}

// LoadEnv reads configuration from the process environment, after loading
// a .env file from the working directory when one exists.
func LoadEnv() Env {
	if err := godotenv.Load(); err == nil {
		logrus.Debug("loaded .env")
	}
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) Env {
	env := Env{
		AppAddr:             strings.TrimSpace(v.GetString("APP_ADDR")),
		GinMode:             strings.TrimSpace(v.GetString("GIN_MODE")),
		LogLevel:            strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:           strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
		BackendBaseURL:      strings.TrimRight(strings.TrimSpace(v.GetString("BACKEND_BASE_URL")), "/"),
		BackendTimeout:      v.GetDuration("BACKEND_TIMEOUT"),
		RequestTimeout:      v.GetDuration("REQUEST_TIMEOUT"),
		DatabaseDSN:         strings.TrimSpace(v.GetString("DATABASE_DSN")),
		RedisAddr:           strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		RedisDB:             v.GetInt("REDIS_DB"),
		HotelCacheTTL:       v.GetDuration("HOTEL_CACHE_TTL"),
		CatalogWarmSpec:     strings.TrimSpace(v.GetString("CATALOG_WARM_SPEC")),
		SessionSecret:       v.GetString("SESSION_SECRET"),
		AdminTokenSecret:    strings.TrimSpace(v.GetString("ADMIN_TOKEN_SECRET")),
		SessionTTL:          v.GetDuration("SESSION_TTL"),
		CookieSecure:        v.GetBool("COOKIE_SECURE"),
		TaxPolicy:           strings.ToLower(strings.TrimSpace(v.GetString("TAX_POLICY"))),
		StatusPollAttempts:  v.GetInt("STATUS_POLL_ATTEMPTS"),
		StatusPollBaseDelay: v.GetDuration("STATUS_POLL_BASE_DELAY"),
		StatusPollMaxDelay:  v.GetDuration("STATUS_POLL_MAX_DELAY"),
		SiteName:            strings.TrimSpace(v.GetString("SITE_NAME")),
		SitePhone:           strings.TrimSpace(v.GetString("SITE_PHONE")),
		SiteEmail:           strings.TrimSpace(v.GetString("SITE_EMAIL")),
	}

	env.CORSAllowedOrigins = defaultOrigins
	if raw := strings.TrimSpace(v.GetString("CORS_ALLOWED_ORIGINS")); raw != "" {
		env.CORSAllowedOrigins = nil
		for _, o := range strings.Split(raw, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				env.CORSAllowedOrigins = append(env.CORSAllowedOrigins, o)
			}
		}
		if len(env.CORSAllowedOrigins) == 0 {
			env.CORSAllowedOrigins = defaultOrigins
		}
	}

	if env.AppAddr == "" {
		env.AppAddr = ":8080"
	}
	if env.BackendTimeout <= 0 {
		env.BackendTimeout = 15 * time.Second
	}
	if env.SessionTTL <= 0 {
		env.SessionTTL = 2 * time.Hour
	}
	if env.StatusPollAttempts < 1 {
		env.StatusPollAttempts = 1
	}
	return env
}
