package env

import "os"

// Get reads an environment variable, treating empty as unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
