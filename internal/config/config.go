package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	Redis       RedisConfig
	Definitions DefinitionsConfig
	Skills      SkillsConfig
	Resources   ResourcesConfig
	HUD         HUDConfig
	XP          XPConfig
}

// RedisConfig holds Redis-specific configuration. An empty URL means no Redis;
// callers fall back to in-memory repositories.
type RedisConfig struct {
	URL string
}

// DefinitionsConfig locates the definition catalog files
type DefinitionsConfig struct {
	Dir string
}

// SkillsConfig tunes the casting pipeline
type SkillsConfig struct {
	// EnabledTriggers limits which input triggers cast skills; empty means
	// all triggers are enabled
	EnabledTriggers []string
}

// ResourcesConfig tunes the regen loop
type ResourcesConfig struct {
	RegenPeriodTicks int
	PrimaryRegen     float64
	SecondaryRegen   float64
}

// HUDConfig tunes the actionbar loop
type HUDConfig struct {
	Enabled     bool
	PeriodTicks int
}

// XPConfig tunes progression
type XPConfig struct {
	TalentPointsPerLevel int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Definitions: DefinitionsConfig{
			Dir: getEnvOrDefault("RPGCORE_DEFINITIONS_DIR", "definitions"),
		},
		Skills: SkillsConfig{
			EnabledTriggers: getEnvAsList("RPGCORE_ENABLED_TRIGGERS"),
		},
		Resources: ResourcesConfig{
			RegenPeriodTicks: getEnvAsIntOrDefault("RPGCORE_REGEN_PERIOD_TICKS", 20),
			PrimaryRegen:     getEnvAsFloatOrDefault("RPGCORE_PRIMARY_REGEN", 2.0),
			SecondaryRegen:   getEnvAsFloatOrDefault("RPGCORE_SECONDARY_REGEN", 2.5),
		},
		HUD: HUDConfig{
			Enabled:     getEnvAsBoolOrDefault("RPGCORE_HUD_ENABLED", true),
			PeriodTicks: getEnvAsIntOrDefault("RPGCORE_HUD_PERIOD_TICKS", 10),
		},
		XP: XPConfig{
			TalentPointsPerLevel: getEnvAsIntOrDefault("RPGCORE_TALENT_POINTS_PER_LEVEL", 1),
		},
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blank entries
func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
