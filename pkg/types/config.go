package types

import "time"

// HTTPConfig holds shared HTTP settings for the network client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// NetworkConfig holds settings for the session/search adapter.
type NetworkConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the root of the people-search gateway.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// CredentialsPath is a JSON credentials file or a secrets directory
	// holding "username" and "password" files.
	CredentialsPath string `json:"credentials" yaml:"credentials" mapstructure:"credentials"`

	// RequestsPerSecond caps raw API calls. Zero or less disables the limiter.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// MinDelay and MaxDelay bound the random pause after each accepted hit.
	MinDelay time.Duration `json:"min_delay" yaml:"min_delay" mapstructure:"min_delay"`
	MaxDelay time.Duration `json:"max_delay" yaml:"max_delay" mapstructure:"max_delay"`
}

// ReportConfig holds settings for the orchestrator.
type ReportConfig struct {
	// OutputDir is where per-company CSV files are written.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// DefaultCount is the total contacts per company when --count is not given.
	DefaultCount int `json:"default_count" yaml:"default_count" mapstructure:"default_count"`
}

// LedgerConfig holds settings for the SQLite run history.
type LedgerConfig struct {
	// Path is the database file. Empty disables the ledger.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups all component configurations.
type Config struct {
	Network NetworkConfig `json:"network" yaml:"network" mapstructure:"network"`
	Report  ReportConfig  `json:"report" yaml:"report" mapstructure:"report"`
	Ledger  LedgerConfig  `json:"ledger" yaml:"ledger" mapstructure:"ledger"`
}

// DefaultConfig returns the configuration used when no file, env or flag
// overrides a value.
func DefaultConfig() Config {
	return Config{
		Network: NetworkConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "contact-finder/0.1",
			},
			BaseURL:           "https://www.linkedin.com/voyager/api",
			CredentialsPath:   "credentials.json",
			RequestsPerSecond: 0.5,
			MinDelay:          2 * time.Second,
			MaxDelay:          5 * time.Second,
		},
		Report: ReportConfig{
			OutputDir:    ".",
			DefaultCount: 10,
		},
	}
}
