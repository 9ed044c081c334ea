package config

import (
	"fmt"
	"os"
	"time"

	"github.com/adhocore/gronx"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:watchmon.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Sweep scheduler configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for action generation"`

	Sources SourcesConfig `yaml:"sources" json:"sources" jsonschema:"description=Content source adapters"`
}

// ScheduleConfig holds sweep scheduling settings
type ScheduleConfig struct {
	Interval          int           `yaml:"interval" json:"interval" jsonschema:"default=15,description=Sweep interval in minutes"`
	Cron              string        `yaml:"cron" json:"cron" jsonschema:"description=Cron expression, overrides interval when set"`
	ItemDelay         time.Duration `yaml:"item_delay" json:"item_delay" jsonschema:"default=500ms,description=Pause between watched items to throttle classifier calls"`
	FetchTimeout      time.Duration `yaml:"fetch_timeout" json:"fetch_timeout" jsonschema:"default=30s,description=Timeout for a single content fetch"`
	ClassifyTimeout   time.Duration `yaml:"classify_timeout" json:"classify_timeout" jsonschema:"default=60s,description=Timeout for a single classifier call"`
	FetchWorkers      int           `yaml:"fetch_workers" json:"fetch_workers" jsonschema:"default=1,minimum=1,description=Concurrent fetches per sweep"`
	RetryAttempts     int           `yaml:"retry_attempts" json:"retry_attempts" jsonschema:"default=5,description=Attempts for database writes"`
	RetryInitialDelay time.Duration `yaml:"retry_initial_delay" json:"retry_initial_delay" jsonschema:"default=100ms,description=Initial retry delay"`
	RetryMaxDelay     time.Duration `yaml:"retry_max_delay" json:"retry_max_delay" jsonschema:"default=5s,description=Maximum retry delay"`
}

// LLMConfig holds LLM configuration for action generation
type LLMConfig struct {
	Provider        string        `yaml:"provider" json:"provider" jsonschema:"default=openai,enum=openai,enum=openrouter,enum=gemini,description=LLM provider"`
	Endpoint        string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey          string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model           string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. gpt-4o-mini or gemini-2.0-flash)"`
	Temperature     float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.2,description=Temperature for response generation"`
	MaxTokens       int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=500,description=Maximum tokens in response"`
	Timeout         time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	SystemPrompt    string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
	UseJSONMode     bool          `yaml:"use_json_mode" json:"use_json_mode" jsonschema:"default=false,description=Use JSON response format (not all models support this)"`
	MaxMessages     int           `yaml:"max_messages" json:"max_messages" jsonschema:"default=15,minimum=1,description=Maximum new messages sent per classifier call"`
	MaxMessageChars int           `yaml:"max_message_chars" json:"max_message_chars" jsonschema:"default=500,minimum=1,description=Maximum characters per message in the prompt"`
}

// SourcesConfig holds content adapter settings
type SourcesConfig struct {
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP timeout for source requests"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Watchmon/1.0,description=User agent for HTTP requests"`
	RecentLimit int           `yaml:"recent_limit" json:"recent_limit" jsonschema:"default=100,description=Maximum recent messages requested per source"`

	Telegram struct {
		Token string `yaml:"token" json:"token" jsonschema:"description=Telegram bot token"`
	} `yaml:"telegram" json:"telegram" jsonschema:"description=Telegram bot adapter"`

	Bridge struct {
		Discord  string `yaml:"discord" json:"discord" jsonschema:"description=Discord local agent base URL"`
		WhatsApp string `yaml:"whatsapp" json:"whatsapp" jsonschema:"description=WhatsApp local agent base URL"`
		Slack    string `yaml:"slack" json:"slack" jsonschema:"description=Slack local agent base URL"`
		Email    string `yaml:"email" json:"email" jsonschema:"description=Mailbox local agent base URL"`
	} `yaml:"bridge" json:"bridge" jsonschema:"description=Local agent bridges serving recent activity as JSON"`

	GitHub struct {
		APIURL string `yaml:"api_url" json:"api_url" jsonschema:"default=https://api.github.com,description=GitHub API base URL"`
		Token  string `yaml:"token" json:"token" jsonschema:"description=GitHub token"`
	} `yaml:"github" json:"github" jsonschema:"description=GitHub repository adapter"`

	Feed struct {
		Enabled bool `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable RSS/Atom feed adapter"`
	} `yaml:"feed" json:"feed" jsonschema:"description=RSS/Atom feed adapter"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Config{}
	cfg.Sources.Feed.Enabled = true
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// setDefaults fills zero values with defaults
func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:watchmon.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// schedule
	if cfg.Schedule.Interval == 0 {
		cfg.Schedule.Interval = 15
	}
	if cfg.Schedule.ItemDelay == 0 {
		cfg.Schedule.ItemDelay = 500 * time.Millisecond
	}
	if cfg.Schedule.FetchTimeout == 0 {
		cfg.Schedule.FetchTimeout = 30 * time.Second
	}
	if cfg.Schedule.ClassifyTimeout == 0 {
		cfg.Schedule.ClassifyTimeout = 60 * time.Second
	}
	if cfg.Schedule.FetchWorkers == 0 {
		cfg.Schedule.FetchWorkers = 1
	}
	if cfg.Schedule.RetryAttempts == 0 {
		cfg.Schedule.RetryAttempts = 5
	}
	if cfg.Schedule.RetryInitialDelay == 0 {
		cfg.Schedule.RetryInitialDelay = 100 * time.Millisecond
	}
	if cfg.Schedule.RetryMaxDelay == 0 {
		cfg.Schedule.RetryMaxDelay = 5 * time.Second
	}

	// llm
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.2
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 500
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60 * time.Second
	}
	if cfg.LLM.MaxMessages == 0 {
		cfg.LLM.MaxMessages = 15
	}
	if cfg.LLM.MaxMessageChars == 0 {
		cfg.LLM.MaxMessageChars = 500
	}

	// sources
	if cfg.Sources.Timeout == 0 {
		cfg.Sources.Timeout = 30 * time.Second
	}
	if cfg.Sources.UserAgent == "" {
		cfg.Sources.UserAgent = "Watchmon/1.0"
	}
	if cfg.Sources.RecentLimit == 0 {
		cfg.Sources.RecentLimit = 100
	}
	if cfg.Sources.GitHub.APIURL == "" {
		cfg.Sources.GitHub.APIURL = "https://api.github.com"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	switch cfg.LLM.Provider {
	case "openai", "openrouter", "gemini":
	default:
		return fmt.Errorf("llm.provider %q is not supported", cfg.LLM.Provider)
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Provider == "gemini" && cfg.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required for gemini")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.MaxMessages < 1 {
		return fmt.Errorf("llm.max_messages must be at least 1")
	}
	if cfg.LLM.MaxMessageChars < 1 {
		return fmt.Errorf("llm.max_message_chars must be at least 1")
	}

	if cfg.Schedule.Interval < 1 {
		return fmt.Errorf("schedule.interval must be at least 1 minute")
	}
	if cfg.Schedule.Cron != "" && !gronx.IsValid(cfg.Schedule.Cron) {
		return fmt.Errorf("schedule.cron %q is not a valid cron expression", cfg.Schedule.Cron)
	}
	if cfg.Schedule.ItemDelay < 0 {
		return fmt.Errorf("schedule.item_delay must be non-negative")
	}
	if cfg.Schedule.FetchWorkers < 1 {
		return fmt.Errorf("schedule.fetch_workers must be at least 1")
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
