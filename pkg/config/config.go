package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the service settings. Storage credentials are not part of it:
// they are resolved on every request by ResolveStorage.
type Config struct {
	Port    string
	GinMode string

	LogLevel  string
	LogFormat string
	LogOutput string
	LogFile   string

	AllowedOrigins     []string
	TrustedProxies     []string
	MetricsAddr        string
	RateLimitPerMinute int
	RateLimitBurst     int
	MaxBodyBytes       int64
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return &Config{
		Port:               v.GetString("PORT"),
		GinMode:            v.GetString("GIN_MODE"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
		LogOutput:          v.GetString("LOG_OUTPUT"),
		LogFile:            v.GetString("LOG_FILE"),
		AllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		TrustedProxies:     splitList(v.GetString("TRUSTED_PROXIES")),
		MetricsAddr:        strings.TrimSpace(v.GetString("METRICS_ADDR")),
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
		MaxBodyBytes:       v.GetInt64("MAX_BODY_BYTES"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("LOG_FILE", "logs/contact.log")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("METRICS_ADDR", "")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 20)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("MAX_BODY_BYTES", 64<<10)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
