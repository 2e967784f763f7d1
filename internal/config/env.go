package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	// token signing material, fixed for the process lifetime
	TokenSecret     string
	TokenTTL        time.Duration
	DefaultPassword string
}

func LoadEnv() Env {
	env := Env{
		AppAddr: envOr("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: envOr("DB_USER", "root"),
		DBPass: strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost: envOr("DB_HOST", "127.0.0.1:3306"),
		DBName: envOr("DB_NAME", "laxin"),

		TokenSecret:     envOr("TOKEN_SECRET", "super-secret-key-change-me"),
		TokenTTL:        24 * time.Hour,
		DefaultPassword: envOr("DEFAULT_PASSWORD", "Qwert654321"),
	}

	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS")); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			env.TokenTTL = time.Duration(hours) * time.Hour
		}
	}

	return env
}

func envOr(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return fallback
}
