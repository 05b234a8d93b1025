package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment win over it.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	lookup(&config.EndpointAddr, "ENDPOINT_ADDR")
	lookup(&config.DataDir, "DATA_DIR")
	lookup(&config.StorageBackend, "STORAGE_BACKEND")
	lookup(&config.DatabaseDSN, "DATABASE_DSN")
	lookup(&config.SecretKey, "SECRET_KEY")
	lookup(&config.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			panic(fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES: %w", err))
		}
		config.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute
	}

	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		config.CORSAllowOrigins = splitOrigins(v)
	}
}

func lookup(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// splitOrigins parses a comma separated origin list. "*" alone allows any
// origin.
func splitOrigins(v string) []string {
	v = strings.TrimSpace(v)
	if v == "*" {
		return []string{"*"}
	}
	origins := []string{}
	for _, o := range strings.Split(v, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
