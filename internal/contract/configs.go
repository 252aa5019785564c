package contract

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/botspot/schema"
)

// Default values for configuration.
const (
	DefaultMaxCommits  = 200
	DefaultTimeoutSecs = 30
	DefaultMarker      = "generated with"
	DefaultModel       = "gemini-2.0-flash"
)

// DefaultGitHubAPIBase is the REST endpoint for repository lookups.
const DefaultGitHubAPIBase = "https://api.github.com"

// DefaultCompletionAPIBase is the generative-AI endpoint base.
const DefaultCompletionAPIBase = "https://generativelanguage.googleapis.com/v1beta"

// DefaultCutoff is the competition eligibility cutoff instant. Repositories
// created before this instant are ineligible; the boundary is inclusive.
var DefaultCutoff = time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Thresholds holds every tunable constant of the decision logic. Hoisting
// them out of the components keeps tests deterministic across regimes.
type Thresholds struct {
	RapidWindow       time.Duration // Max delta between adjacent commits to count as rapid
	RapidBurst        int           // Rapid count above which "multiple rapid changes" fires
	RapidFrequent     int           // Rapid count above which "frequent rapid commits" fires
	HighVerification  int           // Verification ratio percent above which the finding fires
	OffHoursFraction  float64       // Fraction of off-hours commits above which the finding fires
	LikelyAutomated   int           // Likelihood above which the verdict flags automation
	HighLikelihood    int           // Likelihood above which derived confidence is high
	MediumLikelihood  int           // Likelihood above which derived confidence is medium
	FallbackHighRapid int           // Rapid count at or above which fallback confidence is high
	FallbackMedRapid  int           // Rapid count at or above which fallback confidence is medium
	Cutoff            time.Time     // Eligibility cutoff instant (inclusive)
}

// DefaultThresholds returns the production threshold regime.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RapidWindow:       5 * time.Minute,
		RapidBurst:        5,
		RapidFrequent:     10,
		HighVerification:  70,
		OffHoursFraction:  0.3,
		LikelyAutomated:   70,
		HighLikelihood:    80,
		MediumLikelihood:  60,
		FallbackHighRapid: 10,
		FallbackMedRapid:  5,
		Cutoff:            DefaultCutoff,
	}
}

// Config holds the runtime configuration for a classification run.
// This struct remains the "final, validated" config.
type Config struct {
	RepoURL   string
	Owner     string
	Name      string
	Source    schema.CommitSource
	LocalPath string // Path to a clone; only used with LocalSource

	GitHubToken   string
	GitHubAPIBase string

	CompletionKey  string
	CompletionBase string
	Model          string
	NoAI           bool

	Marker     string
	MaxCommits int
	Timeout    time.Duration

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	Thresholds Thresholds
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoURLStr string

	Source         string `mapstructure:"source"`
	LocalPath      string `mapstructure:"local-path"`
	GitHubToken    string `mapstructure:"github-token"`
	GitHubAPIBase  string `mapstructure:"github-api"`
	CompletionKey  string `mapstructure:"gemini-api-key"`
	CompletionBase string `mapstructure:"gemini-api"`
	Model          string `mapstructure:"model"`
	NoAI           bool   `mapstructure:"no-ai"`
	Marker         string `mapstructure:"marker"`
	MaxCommits     int    `mapstructure:"max-commits"`
	TimeoutSecs    int    `mapstructure:"timeout"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Cutoff         string `mapstructure:"cutoff"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ParseRepoURL extracts owner and repository name from a GitHub URL or a
// bare "owner/name" pair. Anything else is an input error.
func ParseRepoURL(raw string) (owner, name string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("%w: repository URL is required", ErrInput)
	}

	path := raw
	if strings.Contains(raw, "://") {
		u, perr := url.Parse(raw)
		if perr != nil {
			return "", "", fmt.Errorf("%w: invalid repository URL %q: %v", ErrInput, raw, perr)
		}
		if u.Host != "github.com" && u.Host != "www.github.com" {
			return "", "", fmt.Errorf("%w: unsupported host %q, expected github.com", ErrInput, u.Host)
		}
		path = strings.Trim(u.Path, "/")
	} else {
		path = strings.TrimPrefix(path, "github.com/")
	}

	path = strings.TrimSuffix(path, ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: cannot extract owner/name from %q", ErrInput, raw)
	}
	return parts[0], parts[1], nil
}

// ProcessAndValidate populates cfg from input, running all validation and
// complex parsing. Input errors, enum errors and credential errors carry
// their respective categories.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	owner, name, err := ParseRepoURL(input.RepoURLStr)
	if err != nil {
		return err
	}
	cfg.Owner = owner
	cfg.Name = name
	cfg.RepoURL = "https://github.com/" + owner + "/" + name

	return ProcessBaseConfig(cfg, input)
}

// ProcessBaseConfig populates everything except the repository identity.
// Used directly by server modes where the repository arrives per request.
func ProcessBaseConfig(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := validateCredentials(cfg, input); err != nil {
		return err
	}
	return processThresholds(cfg, input)
}

// validateSimpleInputs handles enum and scalar validation.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	source := schema.CommitSource(input.Source)
	if _, ok := schema.ValidCommitSources[source]; !ok {
		return fmt.Errorf("%w: invalid source %q, expected github or local", ErrConfig, input.Source)
	}
	cfg.Source = source
	cfg.LocalPath = input.LocalPath
	if cfg.Source == schema.LocalSource && cfg.LocalPath == "" {
		cfg.LocalPath = "."
	}

	output := schema.OutputMode(input.Output)
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("%w: invalid output %q, expected text, csv or json", ErrConfig, input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	if input.Width < 0 {
		return fmt.Errorf("%w: width must be non-negative", ErrConfig)
	}
	cfg.Width = input.Width
	cfg.UseColors = parseYesNo(input.Color)

	if input.MaxCommits <= 0 || input.MaxCommits > DefaultMaxCommits {
		return fmt.Errorf("%w: max-commits must be in (0, %d]", ErrConfig, DefaultMaxCommits)
	}
	cfg.MaxCommits = input.MaxCommits

	if input.TimeoutSecs <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrConfig)
	}
	cfg.Timeout = time.Duration(input.TimeoutSecs) * time.Second

	cfg.Marker = input.Marker
	if cfg.Marker == "" {
		cfg.Marker = DefaultMarker
	}
	cfg.Model = input.Model
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	cfg.NoAI = input.NoAI
	return nil
}

// validateBackendConfigs handles verdict store settings.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend := schema.DatabaseBackend(input.StoreBackend)
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("%w: invalid store backend %q, expected sqlite, mysql, postgresql or none", ErrConfig, input.StoreBackend)
	}
	if err := ValidateDatabaseConnectionString(backend, input.StoreDBConnect); err != nil {
		return err
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = input.StoreDBConnect
	return nil
}

// validateCredentials enforces the credential contract: a missing AI key is
// a configuration error unless the AI call is disabled entirely.
func validateCredentials(cfg *Config, input *ConfigRawInput) error {
	cfg.GitHubToken = input.GitHubToken // optional; raises rate limits
	cfg.GitHubAPIBase = input.GitHubAPIBase
	if cfg.GitHubAPIBase == "" {
		cfg.GitHubAPIBase = DefaultGitHubAPIBase
	}

	cfg.CompletionKey = input.CompletionKey
	cfg.CompletionBase = input.CompletionBase
	if cfg.CompletionBase == "" {
		cfg.CompletionBase = DefaultCompletionAPIBase
	}
	if !cfg.NoAI && cfg.CompletionKey == "" {
		return fmt.Errorf("%w: BOTSPOT_GEMINI_API_KEY is required unless --no-ai is set", ErrConfig)
	}
	return nil
}

// processThresholds applies the cutoff override on top of the defaults.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	cfg.Thresholds = DefaultThresholds()
	if input.Cutoff != "" {
		cutoff, err := time.Parse(time.RFC3339, input.Cutoff)
		if err != nil {
			return fmt.Errorf("%w: invalid cutoff %q, expected RFC3339: %v", ErrConfig, input.Cutoff, err)
		}
		cfg.Thresholds.Cutoff = cutoff
	}
	return nil
}

// ValidateDatabaseConnectionString checks that server backends carry a
// connection string and file backends do not require one.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if strings.TrimSpace(connStr) == "" {
			return fmt.Errorf("%w: store backend %s requires a connection string", ErrConfig, backend)
		}
	case schema.SQLiteBackend, schema.NoneBackend:
		// connStr optional (SQLite path override) or ignored
	}
	return nil
}

// parseYesNo interprets the user's color preference.
func parseYesNo(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "no", "false", "0", "off":
		return false
	default:
		return true
	}
}

// GetStoreDBFilePath returns the path to the SQLite DB file for verdict storage.
func GetStoreDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".botspot_verdicts.db")
	}
	return filepath.Join(home, ".botspot_verdicts.db")
}
