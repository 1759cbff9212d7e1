// Package env reads forcetypes configuration from environment variables.
package env

import (
	"os"
	"strconv"
	"strings"
)

const (
	Disable  = "FORCETYPES_DISABLE"   // Disable turns off call validation when set to a true value.
	MaxDepth = "FORCETYPES_MAX_DEPTH" // MaxDepth sets the nesting limit of the default matcher.
)

var (
	trueVals  = []string{"1", "yes", "true", "on"}
	falseVals = []string{"0", "no", "false", "off"}
)

// lookup finds a variable by key, ignoring case.
func lookup(key string) (string, bool) {
	if val, ok := os.LookupEnv(key); ok {
		return val, true
	}
	for _, kv := range os.Environ() {
		k, v, found := strings.Cut(kv, "=")
		if found && strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// Val returns the trimmed value of an environment variable, or defaultVal if it's unset or blank.
func Val(key string, defaultVal string) string {
	val, ok := lookup(key)
	if !ok {
		return defaultVal
	}
	val = strings.TrimSpace(val)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

// Bool interprets a variable as a boolean with values like "true", "yes", "on", or "1".
// The defaultVal is returned if the variable isn't set, or isn't recognized.
func Bool(key string, defaultVal bool) bool {
	val := strings.ToLower(Val(key, ""))
	for _, t := range trueVals {
		if val == t {
			return true
		}
	}
	for _, f := range falseVals {
		if val == f {
			return false
		}
	}
	return defaultVal
}

// Int interprets a variable as a base 10 integer, returning defaultVal if the variable isn't set or can't be parsed.
func Int(key string, defaultVal int) int {
	val := Val(key, "")
	if len(val) == 0 {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
