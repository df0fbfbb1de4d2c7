package ratelimit

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // Maximum requests per window; zero means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
//
//	RATE_LIMIT_ENABLED           default true
//	RATE_LIMIT_DEFAULT_LIMIT     requests per window for pages and state polling (1000)
//	RATE_LIMIT_DEFAULT_WINDOW    (1m)
//	RATE_LIMIT_ANALYZE_LIMIT     analyses per window per client (30)
//	RATE_LIMIT_ANALYZE_WINDOW    (1h)
//	RATE_LIMIT_ANALYZE_BURST     (5)
//	RATE_LIMIT_CLEANUP_INTERVAL  (5m)
//	RATE_LIMIT_IDLE_TIMEOUT      (1h)
//	RATE_LIMIT_WHITELIST, RATE_LIMIT_BLACKLIST  comma-separated client IPs
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	analyze := AnalyzeLimit{
		Limit:  envInt("RATE_LIMIT_ANALYZE_LIMIT", DefaultAnalyzeLimit.Limit),
		Window: envDuration("RATE_LIMIT_ANALYZE_WINDOW", DefaultAnalyzeLimit.Window),
		Burst:  envInt("RATE_LIMIT_ANALYZE_BURST", DefaultAnalyzeLimit.Burst),
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTimeout:     envDuration("RATE_LIMIT_IDLE_TIMEOUT", time.Hour),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: analyze.EndpointConfigs(),
	}
}

// AnalyzeLimit is the per-client budget for analysis requests. Each analysis
// is one upstream model call, so it is much tighter than the default.
type AnalyzeLimit struct {
	Limit  int
	Window time.Duration
	Burst  int
}

// DefaultAnalyzeLimit allows 30 analyses an hour with bursts of 5.
var DefaultAnalyzeLimit = AnalyzeLimit{Limit: 30, Window: time.Hour, Burst: 5}

// EndpointConfigs applies the limit to both the form and the JSON endpoint.
// They have separate buckets.
func (a AnalyzeLimit) EndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/analyze", Method: http.MethodPost, Limit: a.Limit, Window: a.Window, Burst: a.Burst},
		{Path: "/api/analyze", Method: http.MethodPost, Limit: a.Limit, Window: a.Window, Burst: a.Burst},
	}
}

// DefaultEndpointConfigs returns the endpoint configurations used without overrides.
func DefaultEndpointConfigs() []EndpointConfig {
	return DefaultAnalyzeLimit.EndpointConfigs()
}

func envInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func envBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func envDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
