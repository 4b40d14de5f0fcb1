package module

import (
	"time"

	"openscout/internal/platform/config"
)

// Config carries fusion runtime knobs read once at construction
type Config struct {
	OracleBaseURL string
	OracleAPIKey  string
	OracleTimeout time.Duration
	OracleRetries int

	Workers    int
	MaxSignals int
}

// FromConfig reads the FUSION_ namespace.
// An empty ORACLE_URL disables the oracle; every bucket then scores via
// the heuristic fallback, which keeps local development honest
func FromConfig(cfg config.Conf) Config {
	c := cfg.Prefix("FUSION_")
	return Config{
		OracleBaseURL: c.MayString("ORACLE_URL", ""),
		OracleAPIKey:  c.MayString("ORACLE_API_KEY", ""),
		OracleTimeout: c.MayDuration("ORACLE_TIMEOUT", 30*time.Second),
		OracleRetries: c.MayInt("ORACLE_RETRIES", 3),
		Workers:       c.MayInt("WORKERS", 4),
		MaxSignals:    c.MayInt("MAX_SIGNALS", 10),
	}
}
