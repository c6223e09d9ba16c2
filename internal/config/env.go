package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/linkfix/internal/foundation/errors"
)

// Environment variables consulted after the config file is read.
const (
	EnvRoot            = "LINKFIX_ROOT"
	EnvDecoding        = "LINKFIX_DECODING"
	EnvLogLevel        = "LINKFIX_LOG_LEVEL"
	EnvLogFormat       = "LINKFIX_LOG_FORMAT"
	EnvMetricsTextfile = "LINKFIX_METRICS_TEXTFILE"
)

// envFiles are tried in order; the first one that exists is loaded.
var envFiles = []string{".env", ".env.local"}

// LoadEnv loads environment variables from the first .env/.env.local file found.
// Existing process environment variables are not overwritten. A missing file is not an error.
func LoadEnv() error {
	for _, envPath := range envFiles {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "failed to load env file").
				Fatal().
				WithContext("path", envPath).
				Build()
		}
		fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", envPath)
		return nil
	}
	return nil
}
