package config

import (
	"connect3d/game"
	"connect3d/meta"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const envPrefix = "CONNECT3D_"

type Config struct {
	Snapshot   string
	Depth      int
	Player     game.Cell
	Goroutines int
	Timeout    time.Duration // Zero means no limit
	LogLevel   zerolog.Level
	Dimensions game.Dimensions
}

// LoadDotEnv loads variables from the given .env files (".env" if none) without overriding
// ones already set. It reports whether any file was read.
func LoadDotEnv(filenames ...string) bool {
	if err := godotenv.Load(filenames...); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
		return false
	}
	return true
}

// Load reads the configuration from CONNECT3D_* environment variables, falling back to the
// defaults in meta for missing or malformed values.
func Load() *Config {
	cfg := &Config{
		Snapshot:   GetEnv("SNAPSHOT", meta.DefaultSnapshot),
		Depth:      GetEnvAsInt("DEPTH", meta.DefaultDepth),
		Goroutines: GetEnvAsInt("GOROUTINES", meta.DefaultGoroutines),
		Timeout:    GetEnvAsDuration("TIMEOUT", 0),
		Dimensions: game.Dimensions{
			Length: GetEnvAsInt("LENGTH", meta.DefaultLength),
			Width:  GetEnvAsInt("WIDTH", meta.DefaultWidth),
			Height: GetEnvAsInt("HEIGHT", meta.DefaultHeight),
		},
	}

	player, err := game.ParsePlayer(GetEnv("PLAYER", meta.DefaultPlayer))
	if err != nil {
		log.Warn().Err(err).Msgf("using default player %s", meta.DefaultPlayer)
		player, _ = game.ParsePlayer(meta.DefaultPlayer)
	}
	cfg.Player = player

	level, err := zerolog.ParseLevel(strings.ToLower(GetEnv("LOG_LEVEL", meta.DefaultLogLevel)))
	if err != nil {
		log.Warn().Err(err).Msgf("using default log level %s", meta.DefaultLogLevel)
		level = zerolog.InfoLevel
	}
	cfg.LogLevel = level

	if cfg.Depth < 0 {
		log.Warn().Msgf("negative depth %d, using default: %d", cfg.Depth, meta.DefaultDepth)
		cfg.Depth = meta.DefaultDepth
	}
	if err := cfg.Dimensions.Validate(); err != nil {
		log.Warn().Err(err).Msg("using default dimensions")
		cfg.Dimensions = game.StandardDimensions
	}
	return cfg
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(envPrefix + key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Msgf("invalid integer value for %s%s: %s, using default: %d", envPrefix, key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Warn().Msgf("invalid duration value for %s%s: %s, using default: %s", envPrefix, key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
