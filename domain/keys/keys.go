package keys

import (
	"strconv"
	"strings"
)

const (
	PfxHealthCheck = "healthcheck"
	PfxPreference  = "preference"

	sep = ":"
)

// RedisKey joins components with ":"
func RedisKey(components ...string) string {
	return strings.Join(components, sep)
}

// PreferenceKey scopes operator preferences to one chain
func PreferenceKey(chainId int64) string {
	return RedisKey(PfxPreference, strconv.FormatInt(chainId, 10))
}

// GetPrefix drops the last component of a key and keeps at most two, it
// tags metrics without leaking per item keys
func GetPrefix(key string) string {
	parts := strings.SplitN(key, sep, 3)
	switch len(parts) {
	case 3:
		return parts[0] + sep + parts[1]
	case 2:
		return parts[0]
	}
	return ""
}
