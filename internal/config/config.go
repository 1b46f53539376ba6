package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/football-standings/internal/domain/division"
	"github.com/riskibarqy/football-standings/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	ProviderFootballData = "footballdata"
	ProviderSportMonks   = "sportmonks"
)

// defaultFootballDataCompetitions maps divisions to football-data.org codes
// available on the free tier. Scottish and Swiss leagues have no code there.
const defaultFootballDataCompetitions = "ENGLISH_PREMIERSHIP:PL,GERMAN_BUNDESLIGA:BL1,FRENCH_LIGUE1:FL1,SPANISH_PRIMERA:PD,DUTCH_EREDIVISE:DED,PORTUGUESE_LIGA:PPL"

// defaultSportMonksCompetitions maps divisions to SportMonks league ids.
const defaultSportMonksCompetitions = "ENGLISH_PREMIERSHIP:8,SCOTTISH_PREMIERSHIP:501,GERMAN_BUNDESLIGA:82,FRENCH_LIGUE1:301,SPANISH_PRIMERA:564,DUTCH_EREDIVISE:72,PORTUGUESE_LIGA:462"

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	LogLevel                logging.Level
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	CORSAllowedOrigins      []string
	DBURL                   string
	DBDisablePreparedBinary bool
	CacheEnabled            bool
	CacheTTL                time.Duration
	FetchMaxWorkers         int

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	StandingsProvider string
	FootballData      ProviderConfig
	SportMonks        ProviderConfig

	SyncInterval   time.Duration
	SyncMaxWorkers int
}

// ProviderConfig configures one upstream standings provider.
type ProviderConfig struct {
	Enabled               bool
	BaseURL               string
	Token                 string
	Timeout               time.Duration
	MaxRetries            int
	CircuitEnabled        bool
	CircuitFailureCount   int
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int
	Competitions          map[division.Division]string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        strings.TrimSpace(getEnv("SERVICE_NAME", "football-standings-api")),
		ServiceVersion:     strings.TrimSpace(getEnv("SERVICE_VERSION", "dev")),
		HTTPAddr:           strings.TrimSpace(getEnv("HTTP_ADDR", ":8080")),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "")),
		PprofAddr:          strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		UptraceDSN:         strings.TrimSpace(getEnv("UPTRACE_DSN", "")),

		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if cfg.ServiceName == "" {
		return Config{}, fmt.Errorf("SERVICE_NAME cannot be empty")
	}
	if cfg.HTTPAddr == "" {
		return Config{}, fmt.Errorf("HTTP_ADDR cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	if cfg.DBDisablePreparedBinary, err = getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", true); err != nil {
		return Config{}, err
	}
	if cfg.CacheEnabled, err = getEnvAsBool("CACHE_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvAsPositiveDuration("CACHE_TTL", "60s"); err != nil {
		return Config{}, err
	}
	if cfg.FetchMaxWorkers, err = getEnvAsInt("FETCH_MAX_WORKERS", 4); err != nil {
		return Config{}, fmt.Errorf("parse FETCH_MAX_WORKERS: %w", err)
	}
	if cfg.FetchMaxWorkers < 1 {
		return Config{}, fmt.Errorf("FETCH_MAX_WORKERS must be >= 1")
	}

	if cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.PyroscopeUploadRate, err = getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return Config{}, err
	}
	if cfg.PyroscopeEnabled {
		if cfg.PyroscopeServerAddress == "" {
			return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
		}
		if cfg.PyroscopeAppName == "" {
			return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
		}
	}

	cfg.StandingsProvider = strings.ToLower(strings.TrimSpace(getEnv("STANDINGS_PROVIDER", ProviderFootballData)))
	if cfg.StandingsProvider != ProviderFootballData && cfg.StandingsProvider != ProviderSportMonks {
		return Config{}, fmt.Errorf("invalid STANDINGS_PROVIDER %q: valid values are %s, %s", cfg.StandingsProvider, ProviderFootballData, ProviderSportMonks)
	}
	if cfg.FootballData, err = loadProvider("FOOTBALLDATA", "https://api.football-data.org/v4", defaultFootballDataCompetitions); err != nil {
		return Config{}, err
	}
	if cfg.SportMonks, err = loadProvider("SPORTMONKS", "https://api.sportmonks.com/v3/football", defaultSportMonksCompetitions); err != nil {
		return Config{}, err
	}

	if cfg.SyncInterval, err = getEnvAsPositiveDuration("SYNC_INTERVAL", "30m"); err != nil {
		return Config{}, err
	}
	if cfg.SyncMaxWorkers, err = getEnvAsInt("SYNC_MAX_WORKERS", 3); err != nil {
		return Config{}, fmt.Errorf("parse SYNC_MAX_WORKERS: %w", err)
	}
	if cfg.SyncMaxWorkers < 1 {
		return Config{}, fmt.Errorf("SYNC_MAX_WORKERS must be >= 1")
	}

	return cfg, nil
}

// loadProvider reads the <prefix>_* variables of one provider.
func loadProvider(prefix, defaultBaseURL, defaultCompetitions string) (ProviderConfig, error) {
	var (
		out ProviderConfig
		err error
	)

	out.BaseURL = strings.TrimRight(strings.TrimSpace(getEnv(prefix+"_BASE_URL", defaultBaseURL)), "/")
	out.Token = strings.TrimSpace(getEnv(prefix+"_TOKEN", ""))

	if out.Enabled, err = getEnvAsBool(prefix+"_ENABLED", false); err != nil {
		return out, err
	}
	if out.Timeout, err = getEnvAsPositiveDuration(prefix+"_TIMEOUT", "10s"); err != nil {
		return out, err
	}
	if out.MaxRetries, err = getEnvAsInt(prefix+"_MAX_RETRIES", 2); err != nil {
		return out, fmt.Errorf("parse %s_MAX_RETRIES: %w", prefix, err)
	}
	if out.MaxRetries < 0 {
		return out, fmt.Errorf("%s_MAX_RETRIES must be >= 0", prefix)
	}
	if out.CircuitEnabled, err = getEnvAsBool(prefix+"_CIRCUIT_ENABLED", true); err != nil {
		return out, err
	}
	if out.CircuitFailureCount, err = getEnvAsInt(prefix+"_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return out, fmt.Errorf("parse %s_CIRCUIT_FAILURE_COUNT: %w", prefix, err)
	}
	if out.CircuitFailureCount < 1 {
		return out, fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be >= 1", prefix)
	}
	if out.CircuitOpenTimeout, err = getEnvAsPositiveDuration(prefix+"_CIRCUIT_OPEN_TIMEOUT", "30s"); err != nil {
		return out, err
	}
	if out.CircuitHalfOpenMaxReq, err = getEnvAsInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", 1); err != nil {
		return out, fmt.Errorf("parse %s_CIRCUIT_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if out.CircuitHalfOpenMaxReq < 1 {
		return out, fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}
	if out.Competitions, err = parseCompetitions(getEnv(prefix+"_COMPETITIONS", defaultCompetitions)); err != nil {
		return out, fmt.Errorf("parse %s_COMPETITIONS: %w", prefix, err)
	}

	if out.Enabled {
		if out.Token == "" {
			return out, fmt.Errorf("%s_TOKEN is required when %s_ENABLED=true", prefix, prefix)
		}
		if out.BaseURL == "" {
			return out, fmt.Errorf("%s_BASE_URL cannot be empty when %s_ENABLED=true", prefix, prefix)
		}
	}

	return out, nil
}

// parseCompetitions reads DIVISION:CODE pairs separated by commas.
func parseCompetitions(raw string) (map[division.Division]string, error) {
	out := make(map[division.Division]string)
	for _, item := range splitCSV(raw) {
		name, code, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("invalid item %q, expected DIVISION:CODE", item)
		}

		div, ok := division.Parse(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown division in item %q", item)
		}
		code = strings.TrimSpace(code)
		if code == "" {
			return nil, fmt.Errorf("empty competition code in item %q", item)
		}
		if _, exists := out[div]; exists {
			return nil, fmt.Errorf("duplicate division %s", div)
		}

		out[div] = code
	}
	return out, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	out, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

// ActiveProvider returns the provider selected by STANDINGS_PROVIDER.
func (c Config) ActiveProvider() ProviderConfig {
	if c.StandingsProvider == ProviderSportMonks {
		return c.SportMonks
	}
	return c.FootballData
}
