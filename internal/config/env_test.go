package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	env := fromViper(v)

	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, "none", env.TaxPolicy)
	assert.Equal(t, 15*time.Second, env.BackendTimeout)
	assert.Equal(t, 2*time.Hour, env.SessionTTL)
	assert.Equal(t, 5, env.StatusPollAttempts)
	assert.Equal(t, "HotelBook", env.SiteName)
	assert.Equal(t, defaultOrigins, env.CORSAllowedOrigins)
	assert.Empty(t, env.DatabaseDSN)
	assert.Empty(t, env.AdminTokenSecret)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("BACKEND_BASE_URL", "https://api.example.com/v1/")
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	v.Set("TAX_POLICY", " GST12 ")
	v.Set("STATUS_POLL_ATTEMPTS", 0)
	v.Set("ADMIN_TOKEN_SECRET", " s3cret ")

	env := fromViper(v)

	assert.Equal(t, "https://api.example.com/v1", env.BackendBaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, env.CORSAllowedOrigins)
	assert.Equal(t, "gst12", env.TaxPolicy)
	assert.Equal(t, 1, env.StatusPollAttempts)
	assert.Equal(t, "s3cret", env.AdminTokenSecret)
}

func TestFromViperBlankOriginsFallBackToDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("CORS_ALLOWED_ORIGINS", " , ,")

	env := fromViper(v)

	assert.Equal(t, defaultOrigins, env.CORSAllowedOrigins)
}
