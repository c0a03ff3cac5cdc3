package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	AI      AIConfig      `yaml:"ai"`
	Store   StoreConfig   `yaml:"store"`
	JobPage JobPageConfig `yaml:"jobpage"`
	Render  RenderConfig  `yaml:"render"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port           string `yaml:"port"`
	AllowedOrigins string `yaml:"allowed_origins"`
	BodyLimitMB    int    `yaml:"body_limit_mb"`
}

// AIConfig selects and tunes the text-generation provider.
type AIConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	PromptsFile string        `yaml:"prompts_file"`
}

// StoreConfig configures where uploaded files live and for how long.
type StoreConfig struct {
	Driver        string        `yaml:"driver"`
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	MaxEntries    int           `yaml:"max_entries"`
	DatabaseURL   string        `yaml:"database_url"`
}

type JobPageConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	MinChars  int           `yaml:"min_chars"`
}

type RenderConfig struct {
	ChromePath string        `yaml:"chrome_path"`
	Timeout    time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// defaultModels is used when ai.model is empty.
var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-sonnet-4-20250514",
	ProviderGemini:    "gemini-2.0-flash",
}

// apiKeyEnv names the conventional API key variable of each provider.
var apiKeyEnv = map[string]string{
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderGemini:    "GEMINI_API_KEY",
}

// Default returns a configuration with every default applied.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           "8000",
			AllowedOrigins: "http://localhost:5173",
			BodyLimitMB:    10,
		},
		AI: AIConfig{
			Provider:    ProviderOpenAI,
			Timeout:     120 * time.Second,
			Temperature: 0.2,
			MaxTokens:   4096,
		},
		Store: StoreConfig{
			Driver:        DriverMemory,
			TTL:           time.Hour,
			SweepInterval: 5 * time.Minute,
			MaxEntries:    1000,
		},
		JobPage: JobPageConfig{
			Timeout:   30 * time.Second,
			UserAgent: "resumetuner/1.0",
			MinChars:  200,
		},
		Render: RenderConfig{
			Timeout: 60 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads .env (if any), then the YAML file at path (if given), then
// environment overrides, and validates the result.
func Load(path string) (cfg Config, err error) {
	_ = godotenv.Load()

	cfg = Default()
	if path != "" {
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to read config file: %s", path)
			return cfg, err
		}
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	}

	err = cfg.applyEnv()
	if err != nil {
		return cfg, err
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, env string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.AllowedOrigins, "ALLOWED_ORIGINS")
	setString(&c.AI.Provider, "AI_PROVIDER")
	setString(&c.AI.Model, "AI_MODEL")
	setString(&c.AI.BaseURL, "AI_BASE_URL")
	setString(&c.Store.Driver, "FILE_STORE_DRIVER")
	setString(&c.Store.DatabaseURL, "FILE_STORE_DATABASE_URL")
	setString(&c.Render.ChromePath, "CHROME_PATH")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	c.AI.Provider = strings.ToLower(c.AI.Provider)
	if env, ok := apiKeyEnv[c.AI.Provider]; ok {
		setString(&c.AI.APIKey, env)
	}
	setString(&c.AI.APIKey, "AI_API_KEY")

	if v := os.Getenv("FILE_STORE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "invalid FILE_STORE_TTL: %s", v)
		}
		c.Store.TTL = d
	}
	if v := os.Getenv("BODY_LIMIT_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid BODY_LIMIT_MB: %s", v)
		}
		c.Server.BodyLimitMB = n
	}
	return nil
}

// Validate checks required settings and fills derived defaults.
func (c *Config) Validate() error {
	model, ok := defaultModels[c.AI.Provider]
	if !ok {
		return errors.Errorf("unknown ai.provider %q (want openai, anthropic or gemini)", c.AI.Provider)
	}
	if c.AI.Model == "" {
		c.AI.Model = model
	}
	if c.AI.APIKey == "" {
		return errors.Errorf("ai.api_key is required (set in config or %s)", apiKeyEnv[c.AI.Provider])
	}
	if c.AI.Timeout <= 0 {
		return errors.New("ai.timeout must be positive")
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("store.database_url is required for the postgres driver (or FILE_STORE_DATABASE_URL)")
		}
	default:
		return errors.Errorf("unknown store.driver %q (want memory or postgres)", c.Store.Driver)
	}
	if c.Store.TTL <= 0 {
		return errors.New("store.ttl must be positive")
	}

	if c.Server.Port == "" {
		c.Server.Port = "8000"
	}
	if c.Server.BodyLimitMB <= 0 {
		c.Server.BodyLimitMB = 10
	}
	return nil
}

// Origins splits the comma-separated allow-list.
func (s ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(s.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
