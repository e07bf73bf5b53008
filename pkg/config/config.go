package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	CORS        CORSConfig
	Log         LogConfig
	FDTL        FDTLConfig
	Roster      RosterConfig
	Utilization UtilizationConfig
	Exports     ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// FDTLConfig carries the flight-duty-time-limitation caps. Defaults follow
// the CAA limits the original roster operated under; override per
// regulatory regime via environment.
type FDTLConfig struct {
	MinRestHours         float64
	MaxFDPHours          float64
	MaxDailyFlyHours     float64
	MaxWeeklyFlyHours    float64
	MaxRolling28FlyHours float64
}

// RosterConfig tunes the roster builder.
type RosterConfig struct {
	SupportingPerFlight int
	DefaultWindowDays   int
	SeedDutyHistory     bool
	BuildQueueWorkers   int
}

// UtilizationConfig governs caching for crew utilization summaries.
type UtilizationConfig struct {
	Enabled  bool
	CacheTTL time.Duration
}

// ExportsConfig toggles roster/violation export endpoints.
type ExportsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.FDTL = FDTLConfig{
		MinRestHours:         v.GetFloat64("FDTL_MIN_REST_HOURS"),
		MaxFDPHours:          v.GetFloat64("FDTL_MAX_FDP_HOURS"),
		MaxDailyFlyHours:     v.GetFloat64("FDTL_MAX_DAILY_FLY_HOURS"),
		MaxWeeklyFlyHours:    v.GetFloat64("FDTL_MAX_WEEKLY_FLY_HOURS"),
		MaxRolling28FlyHours: v.GetFloat64("FDTL_MAX_ROLLING28_FLY_HOURS"),
	}

	cfg.Roster = RosterConfig{
		SupportingPerFlight: v.GetInt("ROSTER_SUPPORTING_PER_FLIGHT"),
		DefaultWindowDays:   v.GetInt("ROSTER_DEFAULT_WINDOW_DAYS"),
		SeedDutyHistory:     v.GetBool("ROSTER_SEED_DUTY_HISTORY"),
		BuildQueueWorkers:   v.GetInt("ROSTER_BUILD_QUEUE_WORKERS"),
	}

	cfg.Utilization = UtilizationConfig{
		Enabled:  v.GetBool("ENABLE_UTILIZATION_CACHE"),
		CacheTTL: parseDuration(v.GetString("UTILIZATION_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "crew_roster")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "crew-roster-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("FDTL_MIN_REST_HOURS", 12)
	v.SetDefault("FDTL_MAX_FDP_HOURS", 13)
	v.SetDefault("FDTL_MAX_DAILY_FLY_HOURS", 8)
	v.SetDefault("FDTL_MAX_WEEKLY_FLY_HOURS", 40)
	v.SetDefault("FDTL_MAX_ROLLING28_FLY_HOURS", 100)

	v.SetDefault("ROSTER_SUPPORTING_PER_FLIGHT", 3)
	v.SetDefault("ROSTER_DEFAULT_WINDOW_DAYS", 30)
	v.SetDefault("ROSTER_SEED_DUTY_HISTORY", false)
	v.SetDefault("ROSTER_BUILD_QUEUE_WORKERS", 1)

	v.SetDefault("ENABLE_UTILIZATION_CACHE", false)
	v.SetDefault("UTILIZATION_CACHE_TTL", "10m")

	v.SetDefault("ENABLE_EXPORTS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
