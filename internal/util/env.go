package util

import (
	"os"
	"strconv"
)

// Getenv returns the environment variable named by key, or defaultValue
// if it is unset or empty
func Getenv(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultValue
}

// GetenvInt returns the environment variable named by key parsed as an
// integer, or defaultValue if it is unset. A set but unparseable value
// is an error.
func GetenvInt(key string, defaultValue int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue, nil
	}

	return strconv.Atoi(val)
}
