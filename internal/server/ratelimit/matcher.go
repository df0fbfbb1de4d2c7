package ratelimit

import (
	"strings"
)

// unlimitedEndpoints are never rate limited.
var unlimitedEndpoints = map[string]bool{
	"GET /health": true,
}

// MatchEndpoint returns the configuration for a request, or nil to use the
// default limit. Exact paths win over prefixes (paths ending in "/"), and the
// longest prefix wins among prefixes.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimitedEndpoints[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	var best *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		if config.Path == path {
			return config
		}
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			if best == nil || len(config.Path) > len(best.Path) {
				best = config
			}
		}
	}
	return best
}
