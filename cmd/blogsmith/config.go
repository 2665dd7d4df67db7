package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	ai "github.com/spetersoncode/blogsmith"
	"github.com/spetersoncode/blogsmith/blog"
)

// Config holds the CLI configuration. Values come from defaults, then an
// optional YAML file, then the environment, then command-line flags.
type Config struct {
	TextProvider string  `yaml:"text_provider" validate:"required,oneof=openai google anthropic gemini claude"`
	TextModel    string  `yaml:"text_model"`
	Temperature  float64 `yaml:"temperature" validate:"min=0,max=2"`

	ImageProvider string `yaml:"image_provider" validate:"required,oneof=openai google none"`
	ImageModel    string `yaml:"image_model"`
	ImageSize     string `yaml:"image_size" validate:"omitempty,oneof=1024x1024 1024x1792 1792x1024"`
	ImageQuality  string `yaml:"image_quality" validate:"omitempty,oneof=standard hd"`
	ImageStyle    string `yaml:"image_style" validate:"omitempty,oneof=vivid natural"`
	// ImageFormat b64_json keeps images inline so stored posts outlive
	// expiring DALL-E URLs.
	ImageFormat string `yaml:"image_format" validate:"omitempty,oneof=url b64_json"`

	SearchProvider string `yaml:"search_provider" validate:"required,oneof=tavily google none"`
	TrendQuery     string `yaml:"trend_query" validate:"required"`
	TrendResults   int    `yaml:"trend_results" validate:"min=1,max=10"`

	RewriteMode string `yaml:"rewrite_mode" validate:"required,oneof=auto manual"`
	Threshold   int    `yaml:"threshold" validate:"min=0,max=100"`
	MaxRewrites int    `yaml:"max_rewrites" validate:"min=0,max=10"`
	ScoreFormat string `yaml:"score_format" validate:"required,oneof=json text"`

	FetchTimeout    time.Duration `yaml:"fetch_timeout" validate:"min=0"`
	Browser         bool          `yaml:"browser"`
	InsecureTLS     bool          `yaml:"insecure_tls"`
	GenerateTimeout time.Duration `yaml:"generate_timeout" validate:"min=0"`
	StageTimeout    time.Duration `yaml:"stage_timeout" validate:"min=0"`
	RunTimeout      time.Duration `yaml:"run_timeout" validate:"min=0"`

	// StoreDir keeps finished posts by run ID when set.
	StoreDir string `yaml:"store_dir"`

	LogLevel  string `yaml:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"required,oneof=text json"`

	// Credentials are only read from the environment.
	OpenAIKey       string `yaml:"-"`
	GoogleKey       string `yaml:"-"`
	AnthropicKey    string `yaml:"-"`
	TavilyKey       string `yaml:"-"`
	GoogleSearchKey string `yaml:"-"`
	GoogleSearchCX  string `yaml:"-"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		TextProvider:    "openai",
		Temperature:     0.7,
		ImageProvider:   "openai",
		ImageSize:       string(ai.ImageSize1024x1024),
		ImageQuality:    string(ai.ImageQualityStandard),
		SearchProvider:  "tavily",
		TrendQuery:      blog.DefaultTrendQuery,
		TrendResults:    blog.DefaultTrendResults,
		RewriteMode:     string(blog.RewriteAuto),
		Threshold:       blog.DefaultThreshold,
		MaxRewrites:     blog.DefaultMaxRewrites,
		ScoreFormat:     string(blog.ScoreFormatJSON),
		FetchTimeout:    15 * time.Second,
		GenerateTimeout: 2 * time.Minute,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// LoadConfig builds a Config from defaults, the YAML file at path (if
// any) and the environment read through getenv. It does not validate.
func LoadConfig(path string, getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	c.OpenAIKey = getenv("OPENAI_API_KEY")
	c.GoogleKey = firstNonEmpty(getenv("GOOGLE_API_KEY"), getenv("GEMINI_API_KEY"))
	c.AnthropicKey = getenv("ANTHROPIC_API_KEY")
	c.TavilyKey = getenv("TAVILY_API_KEY")
	c.GoogleSearchKey = getenv("GOOGLE_SEARCH_API_KEY")
	c.GoogleSearchCX = getenv("GOOGLE_SEARCH_CX")

	setString(&c.TextProvider, getenv("BLOGSMITH_TEXT_PROVIDER"))
	setString(&c.TextModel, getenv("BLOGSMITH_TEXT_MODEL"))
	setString(&c.ImageProvider, getenv("BLOGSMITH_IMAGE_PROVIDER"))
	setString(&c.ImageModel, getenv("BLOGSMITH_IMAGE_MODEL"))
	setString(&c.ImageStyle, getenv("BLOGSMITH_IMAGE_STYLE"))
	setString(&c.ImageFormat, getenv("BLOGSMITH_IMAGE_FORMAT"))
	setString(&c.SearchProvider, getenv("BLOGSMITH_SEARCH_PROVIDER"))
	setString(&c.RewriteMode, getenv("BLOGSMITH_REWRITE_MODE"))
	setString(&c.ScoreFormat, getenv("BLOGSMITH_SCORE_FORMAT"))
	setString(&c.StoreDir, getenv("BLOGSMITH_STORE_DIR"))
	setString(&c.LogLevel, getenv("BLOGSMITH_LOG_LEVEL"))
	setString(&c.LogFormat, getenv("BLOGSMITH_LOG_FORMAT"))

	var errs []error
	errs = append(errs, setInt(&c.Threshold, "BLOGSMITH_THRESHOLD", getenv))
	errs = append(errs, setInt(&c.MaxRewrites, "BLOGSMITH_MAX_REWRITES", getenv))
	errs = append(errs, setBool(&c.Browser, "BLOGSMITH_BROWSER", getenv))
	errs = append(errs, setDuration(&c.FetchTimeout, "BLOGSMITH_FETCH_TIMEOUT", getenv))
	errs = append(errs, setDuration(&c.StageTimeout, "BLOGSMITH_STAGE_TIMEOUT", getenv))
	errs = append(errs, setDuration(&c.RunTimeout, "BLOGSMITH_RUN_TIMEOUT", getenv))
	return errors.Join(errs...)
}

// applyFlags copies the flags the user set on cmd over c.
func (c *Config) applyFlags(cmd *cobra.Command, f *flagValues) {
	flags := cmd.Flags()
	if flags.Changed("text-provider") {
		c.TextProvider = f.textProvider
	}
	if flags.Changed("text-model") {
		c.TextModel = f.textModel
	}
	if flags.Changed("image-provider") {
		c.ImageProvider = f.imageProvider
	}
	if flags.Changed("image-model") {
		c.ImageModel = f.imageModel
	}
	if flags.Changed("search") {
		c.SearchProvider = f.search
	}
	if flags.Changed("rewrite-mode") {
		c.RewriteMode = f.rewriteMode
	}
	if flags.Changed("threshold") {
		c.Threshold = f.threshold
	}
	if flags.Changed("max-rewrites") {
		c.MaxRewrites = f.maxRewrites
	}
	if flags.Changed("score-format") {
		c.ScoreFormat = f.scoreFormat
	}
	if flags.Changed("browser") {
		c.Browser = f.browser
	}
	if flags.Changed("insecure-tls") {
		c.InsecureTLS = f.insecureTLS
	}
	if flags.Changed("store-dir") {
		c.StoreDir = f.storeDir
	}
	if flags.Changed("log-level") {
		c.LogLevel = f.logLevel
	}
	if flags.Changed("log-format") {
		c.LogFormat = f.logFormat
	}
}

// Validate checks field constraints and that every selected provider has
// its credentials.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	text, _ := ai.ParseProvider(c.TextProvider)
	if c.keyFor(text) == "" {
		return fmt.Errorf("%s is required for text provider %s", keyEnv(text), text)
	}
	if c.ImageProvider != "none" {
		image, _ := ai.ParseProvider(c.ImageProvider)
		if c.keyFor(image) == "" {
			return fmt.Errorf("%s is required for image provider %s", keyEnv(image), image)
		}
	}

	switch c.SearchProvider {
	case "tavily":
		if c.TavilyKey == "" {
			return fmt.Errorf("TAVILY_API_KEY is required for tavily search")
		}
	case "google":
		if c.GoogleSearchKey == "" || c.GoogleSearchCX == "" {
			return fmt.Errorf("GOOGLE_SEARCH_API_KEY and GOOGLE_SEARCH_CX are required for google search")
		}
	}
	return nil
}

func (c *Config) keyFor(p ai.Provider) string {
	switch p {
	case ai.ProviderOpenAI:
		return c.OpenAIKey
	case ai.ProviderGoogle:
		return c.GoogleKey
	case ai.ProviderAnthropic:
		return c.AnthropicKey
	}
	return ""
}

func keyEnv(p ai.Provider) string {
	switch p {
	case ai.ProviderGoogle:
		return "GOOGLE_API_KEY"
	case ai.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	}
	return "OPENAI_API_KEY"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func setString(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string, getenv func(string) string) error {
	value := getenv(key)
	if value == "" {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = i
	return nil
}

func setBool(dst *bool, key string, getenv func(string) string) error {
	value := getenv(key)
	if value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string, getenv func(string) string) error {
	value := getenv(key)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
