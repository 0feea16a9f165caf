package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"github.com/riskibarqy/esports-sync/internal/platform/scheduler"
)

// Job ids mirrored from the use case layer; config must not import it.
const (
	jobFetchLeagues          = "fetch_leagues"
	jobFetchTournaments      = "fetch_tournaments"
	jobFetchTeams            = "fetch_teams"
	jobFetchPlayers          = "fetch_players"
	jobFetchSchedule         = "fetch_schedule"
	jobFetchGamesFromMatches = "fetch_games_from_matches"
	jobUpdateGameStates      = "update_game_states"
	jobFetchPlayerMetadata   = "fetch_player_metadata"
	jobFetchPlayerStats      = "fetch_player_stats"
)

// DefaultTriggers is the out-of-the-box job plan. Reference data refreshes
// nightly, the live pipeline polls every few minutes.
func DefaultTriggers() map[string]scheduler.Trigger {
	return map[string]scheduler.Trigger{
		jobFetchLeagues:          scheduler.Cron{Hour: "0", Minute: "0"},
		jobFetchTournaments:      scheduler.Cron{Hour: "0", Minute: "10"},
		jobFetchTeams:            scheduler.Cron{Hour: "0", Minute: "20"},
		jobFetchPlayers:          scheduler.Cron{Hour: "0", Minute: "30"},
		jobFetchSchedule:         scheduler.Interval{Every: 30 * time.Minute},
		jobFetchGamesFromMatches: scheduler.Interval{Every: 45 * time.Minute},
		jobUpdateGameStates:      scheduler.Interval{Every: 45 * time.Minute},
		jobFetchPlayerMetadata:   scheduler.Interval{Every: 5 * time.Minute},
		jobFetchPlayerStats:      scheduler.Interval{Every: 5 * time.Minute},
	}
}

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	CORSAllowedOrigins []string

	// DBURL empty selects the in-memory store.
	DBURL        string
	MigrationDir string

	CacheEnabled bool
	CacheTTL     time.Duration

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	FeedBaseURL               string
	FeedLiveStatsBaseURL      string
	FeedAPIKey                string
	FeedLocale                string
	FeedTimeout               time.Duration
	FeedRateLimitPerSecond    float64
	FeedRateLimitBurst        int
	FeedCircuitEnabled        bool
	FeedCircuitFailureCount   int
	FeedCircuitOpenTimeout    time.Duration
	FeedCircuitHalfOpenMaxReq int

	InternalJobToken   string
	SchedulerEnabled   bool
	JobMaxAttempts     int
	JobRetryDelay      time.Duration
	JobTriggers        map[string]scheduler.Trigger
	DiscoveryBatchSize int
	StatsFinalPulls    int
	TournamentWorkers  int
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:               appEnv,
		ServiceName:          getEnv("APP_SERVICE_NAME", "esports-sync"),
		ServiceVersion:       getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:             getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:             logging.ParseLevel(getEnv("LOG_LEVEL", "info")),
		DBURL:                strings.TrimSpace(os.Getenv("DB_URL")),
		MigrationDir:         getEnv("DB_MIGRATION_DIR", "db/migrations"),
		PprofAddr:            strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		PyroscopeAuthToken:   strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		FeedBaseURL:          strings.TrimSpace(getEnv("FEED_BASE_URL", "")),
		FeedLiveStatsBaseURL: strings.TrimSpace(getEnv("FEED_LIVESTATS_BASE_URL", "")),
		FeedAPIKey:           strings.TrimSpace(getEnv("FEED_API_KEY", "")),
		FeedLocale:           strings.TrimSpace(getEnv("FEED_LOCALE", "en-US")),
		InternalJobToken:     strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		CORSAllowedOrigins:   splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))

	p := parser{}
	cfg.ReadTimeout = p.positiveDuration("APP_READ_TIMEOUT", "10s")
	cfg.WriteTimeout = p.positiveDuration("APP_WRITE_TIMEOUT", "15s")

	cfg.CacheEnabled = p.boolean("CACHE_ENABLED", "true")
	cfg.CacheTTL = p.positiveDuration("CACHE_TTL", "60s")

	cfg.PprofEnabled = p.boolean("PPROF_ENABLED", "false")
	cfg.UptraceEnabled = p.boolean("UPTRACE_ENABLED", "false")
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	cfg.PyroscopeEnabled = p.boolean("PYROSCOPE_ENABLED", "false")
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeUploadRate = p.positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")

	cfg.FeedTimeout = p.positiveDuration("FEED_TIMEOUT", "20s")
	cfg.FeedRateLimitPerSecond = p.float("FEED_RATE_LIMIT_PER_SECOND", 5)
	cfg.FeedRateLimitBurst = p.atLeast("FEED_RATE_LIMIT_BURST", 5, 1)
	cfg.FeedCircuitEnabled = p.boolean("FEED_CIRCUIT_ENABLED", "true")
	cfg.FeedCircuitFailureCount = p.atLeast("FEED_CIRCUIT_FAILURE_COUNT", 5, 1)
	cfg.FeedCircuitOpenTimeout = p.positiveDuration("FEED_CIRCUIT_OPEN_TIMEOUT", "30s")
	cfg.FeedCircuitHalfOpenMaxReq = p.atLeast("FEED_CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1)

	cfg.SchedulerEnabled = p.boolean("SCHEDULER_ENABLED", "true")
	cfg.JobMaxAttempts = p.atLeast("JOB_MAX_ATTEMPTS", 3, 1)
	cfg.JobRetryDelay = p.duration("JOB_RETRY_DELAY", "0s")
	cfg.DiscoveryBatchSize = p.atLeast("DISCOVERY_BATCH_SIZE", 25, 1)
	cfg.StatsFinalPulls = p.atLeast("STATS_FINAL_PULLS", 1, 1)
	cfg.TournamentWorkers = p.atLeast("TOURNAMENT_WORKERS", 4, 1)
	if p.err != nil {
		return Config{}, p.err
	}

	triggers, err := loadTriggers()
	if err != nil {
		return Config{}, err
	}
	cfg.JobTriggers = triggers

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.UptraceEnabled && c.UptraceDSN == "":
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	case c.PprofEnabled && c.PprofAddr == "":
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	case c.PyroscopeEnabled && c.PyroscopeServerAddress == "":
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	case c.PyroscopeEnabled && c.PyroscopeAppName == "":
		return fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	case c.AppEnv == EnvProd && c.InternalJobToken == "":
		return fmt.Errorf("INTERNAL_JOB_TOKEN is required when APP_ENV=%s", EnvProd)
	case len(c.CORSAllowedOrigins) == 0:
		return fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	case c.FeedRateLimitPerSecond < 0:
		return fmt.Errorf("FEED_RATE_LIMIT_PER_SECOND must be >= 0")
	case c.JobRetryDelay < 0:
		return fmt.Errorf("JOB_RETRY_DELAY must be >= 0")
	}
	return nil
}

// loadTriggers starts from DefaultTriggers and applies JOB_<ID>_TRIGGER
// overrides, e.g. JOB_FETCH_SCHEDULE_TRIGGER=interval:minutes=10.
func loadTriggers() (map[string]scheduler.Trigger, error) {
	triggers := DefaultTriggers()
	for jobID := range triggers {
		key := "JOB_" + strings.ToUpper(jobID) + "_TRIGGER"
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			continue
		}
		trigger, err := scheduler.ParseTrigger(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", key, err)
		}
		triggers[jobID] = trigger
	}
	return triggers, nil
}

// parser keeps the first parse error so Load reads like a list of fields.
type parser struct {
	err error
}

func (p *parser) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("parse %s: %w", key, err)
	}
}

func (p *parser) boolean(key, fallback string) bool {
	v, err := strconv.ParseBool(getEnv(key, fallback))
	if err != nil {
		p.fail(key, err)
	}
	return v
}

func (p *parser) duration(key, fallback string) time.Duration {
	v, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		p.fail(key, err)
	}
	return v
}

func (p *parser) positiveDuration(key, fallback string) time.Duration {
	v := p.duration(key, fallback)
	if v <= 0 && p.err == nil {
		p.err = fmt.Errorf("%s must be > 0", key)
	}
	return v
}

func (p *parser) atLeast(key string, fallback, minimum int) int {
	v, err := getEnvAsInt(key, fallback)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	if v < minimum && p.err == nil {
		p.err = fmt.Errorf("%s must be >= %d", key, minimum)
	}
	return v
}

func (p *parser) float(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, err)
	}
	return v
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
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

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
