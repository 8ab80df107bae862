package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "autopost/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// StoreConfig holds settings for the WordPress content store gateway.
type StoreConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the site root (e.g. "https://example.com"); the client
	// appends /wp-json/wp/v2.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Username is the WordPress account used for API writes.
	Username string `json:"username" yaml:"username"`

	// AppPassword is the WordPress application password for Username.
	AppPassword string `json:"app_password,omitempty" yaml:"app_password,omitempty"`

	// CandidateMetaKey is the post meta field holding the profiled
	// candidate's name (default "candidate_name").
	CandidateMetaKey string `json:"candidate_meta_key" yaml:"candidate_meta_key"`
}

// AIProvider selects the generation backend.
type AIProvider string

const (
	ProviderGemini AIProvider = "gemini"
	ProviderOpenAI AIProvider = "openai"
	ProviderCodex  AIProvider = "codex"
)

// AIConfig holds shared settings for the generation backends.
type AIConfig struct {
	// Provider selects the backend: gemini, openai, or codex.
	Provider AIProvider `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "gemini-2.0-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Timeout bounds a single generation call. The run fails when the
	// backend does not answer in time.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// GenerationConfig holds settings for the generation stage.
type GenerationConfig struct {
	AIConfig `yaml:",inline"`

	// Topic is the research topic fed to the prompt.
	Topic string `json:"topic" yaml:"topic"`

	// ElectionDate is the target election date in YYYY-MM-DD format.
	ElectionDate string `json:"election_date" yaml:"election_date"`

	// CodexBin is an explicit path to the Codex CLI binary. When empty the
	// CODEX_BIN environment variable and then PATH are consulted.
	CodexBin string `json:"codex_bin,omitempty" yaml:"codex_bin,omitempty"`
}

// GateConfig holds the validation gate policy.
type GateConfig struct {
	// MinSources is the minimum number of sources and distinct source
	// domains a draft must cite (default 8).
	MinSources int `json:"min_sources" yaml:"min_sources"`

	// MinConfidence is the floor for the draft's overall confidence and
	// every key fact's confidence, 0-100 (default 85).
	MinConfidence int `json:"min_confidence" yaml:"min_confidence"`

	// PostStatus is the status applied to created posts.
	PostStatus PostStatus `json:"post_status" yaml:"post_status"`

	// CategoryName is the default category when the draft names none.
	CategoryName string `json:"category_name" yaml:"category_name"`

	// RequireFAQ demands an FAQ section with at least 3 question headings
	// in the content. Defaults on for publish status.
	RequireFAQ bool `json:"require_faq" yaml:"require_faq"`
}

// JournalConfig holds settings for the run journal.
type JournalConfig struct {
	// Dir is the directory holding the journal database (default "journal").
	Dir string `json:"dir" yaml:"dir"`
}

// PipelineConfig groups all stage configurations for one automation run.
type PipelineConfig struct {
	Store      StoreConfig      `json:"store" yaml:"store"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
	Gate       GateConfig       `json:"gate" yaml:"gate"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`

	// DryRun validates fully but skips the store write.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// LockPath is the overlap-guard lock file (default "autopost.lock").
	LockPath string `json:"lock_path" yaml:"lock_path"`

	// StaleLockAge is how old a lock may be before it is broken (default 2h).
	StaleLockAge time.Duration `json:"stale_lock_age" yaml:"stale_lock_age"`

	// LogFile receives the timestamped run log (default "logs/autopost.log").
	LogFile string `json:"log_file" yaml:"log_file"`
}
