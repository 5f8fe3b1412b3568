package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	defaultHTTPPort           = "8080"
	defaultStaleClaimAfter    = 2 * time.Hour
	defaultStaleClaimSchedule = "0 */5 * * * *"
)

// Config is the process configuration. Every field comes from an environment
// variable of the same name in upper snake case (HTTP_PORT, DB_HOST, ...).
// StaleClaimAfter is a Go duration and StaleClaimSchedule a six field cron spec.
type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	VerifierToken      string
	StaleClaimAfter    time.Duration
	StaleClaimSchedule string
}

// LoadConfig reads the environment, after loading envFile when it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	config := Config{
		HTTPPort:           envOr("HTTP_PORT", defaultHTTPPort),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             envOr("DB_PORT", "5432"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBSslMode:          envOr("DB_SSLMODE", "disable"),
		VerifierToken:      os.Getenv("VERIFIER_TOKEN"),
		StaleClaimAfter:    defaultStaleClaimAfter,
		StaleClaimSchedule: envOr("STALE_CLAIM_SCHEDULE", defaultStaleClaimSchedule),
	}

	var errs []error
	if raw := os.Getenv("STALE_CLAIM_AFTER"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("STALE_CLAIM_AFTER: %q is not a positive duration", raw))
		} else {
			config.StaleClaimAfter = d
		}
	}
	if _, err := cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	).Parse(config.StaleClaimSchedule); err != nil {
		errs = append(errs, fmt.Errorf("STALE_CLAIM_SCHEDULE: %w", err))
	}
	for key, value := range map[string]string{
		"DB_HOST":        config.DBHost,
		"DB_USER":        config.DBUser,
		"DB_NAME":        config.DBName,
		"VERIFIER_TOKEN": config.VerifierToken,
	} {
		if value == "" {
			errs = append(errs, fmt.Errorf("%s is required", key))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return config, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
