package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvFiles are tried in order when no env file is given.
var DefaultEnvFiles = []string{".env", ".env.local"}

// LoadEnv loads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are skipped.
// It returns the files that were loaded.
func LoadEnv(files ...string) ([]string, error) {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}
	var loaded []string
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return loaded, err
		}
		loaded = append(loaded, f)
	}
	return loaded, nil
}
