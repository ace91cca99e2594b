// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Matching      MatchingConfig          `mapstructure:"matching"`
	Taxonomy      TaxonomyConfig          `mapstructure:"taxonomy"`
	Embedding     EmbeddingConfig         `mapstructure:"embedding"`
	Catalog       CatalogConfig           `mapstructure:"catalog"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Registry      RegistryConfig          `mapstructure:"registry"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	JobsIndex  string   `mapstructure:"jobs_index"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Matching Configuration ---

// MatchingConfig carries the scoring weights, confidence-band thresholds and
// experience policy. All values have defaults; deployments tune them without
// touching scoring code.
type MatchingConfig struct {
	Weights    WeightsConfig    `mapstructure:"weights"`
	Bands      BandsConfig      `mapstructure:"bands"`
	Experience ExperienceConfig `mapstructure:"experience"`
	SkillMatch SkillMatchConfig `mapstructure:"skill_match"`
	BatchSize  int              `mapstructure:"batch_size"` // max parallel match computations
}

// WeightsConfig holds the sub-score weights. They must sum to 1.
type WeightsConfig struct {
	Semantic   float64 `mapstructure:"semantic"`
	Skill      float64 `mapstructure:"skill"`
	Experience float64 `mapstructure:"experience"`
	Lexical    float64 `mapstructure:"lexical"`
}

// Sum returns the total of all sub-score weights.
func (w WeightsConfig) Sum() float64 {
	return w.Semantic + w.Skill + w.Experience + w.Lexical
}

// BandsConfig holds the confidence-band percentage thresholds.
type BandsConfig struct {
	AutoThreshold   float64 `mapstructure:"auto_threshold"`   // percentage, inclusive
	ReviewThreshold float64 `mapstructure:"review_threshold"` // percentage, inclusive
}

type ExperienceConfig struct {
	OverqualifiedFloor float64 `mapstructure:"overqualified_floor"` // score floor above max years
	OverqualifiedDecay float64 `mapstructure:"overqualified_decay"` // score lost per surplus year
	UnknownDefault     float64 `mapstructure:"unknown_default"`     // score when years are unknown
}

type SkillMatchConfig struct {
	CategoryCredit float64 `mapstructure:"category_credit"` // partial credit for same-category match
	BonusReward    float64 `mapstructure:"bonus_reward"`    // additive reward per matched bonus skill
	BonusCap       float64 `mapstructure:"bonus_cap"`       // total additive bonus ceiling
}

// TaxonomyConfig points at the skill alias/category table.
type TaxonomyConfig struct {
	Path string `mapstructure:"path"`
}

// EmbeddingConfig configures the embedding-provider collaborator.
type EmbeddingConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	Timeout  int    `mapstructure:"timeout"`   // milliseconds
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds, Redis vector cache
}

// CatalogConfig configures the job-requirement catalog.
type CatalogConfig struct {
	SnapshotTTL int `mapstructure:"snapshot_ttl"` // seconds, Redis snapshot cache
	MaxJobs     int `mapstructure:"max_jobs"`     // hard cap on snapshot size
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// NotificationConfig holds settings for the send-review-notification worker.
type NotificationConfig struct {
	Email struct {
		Enabled       bool   `mapstructure:"enabled"`
		FromEmail     string `mapstructure:"from_email"`
		ReviewerQueue string `mapstructure:"reviewer_queue"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled       bool   `mapstructure:"enabled"`
		BandThreshold string `mapstructure:"band_threshold"` // lowest band that triggers SMS
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// RegistryConfig points at the activity registry file.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}
