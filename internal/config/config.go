// Package config loads themeforge settings from an optional YAML file,
// THEMEFORGE_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	AI         AIConfig         `mapstructure:"ai"`
	Capture    CaptureConfig    `mapstructure:"capture"`
	Generation GenerationConfig `mapstructure:"generation"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Deploy     DeployConfig     `mapstructure:"deploy"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider" validate:"oneof=claude anthropic openai gpt gemini google"`
	Model        string        `mapstructure:"model"`
	VisionModel  string        `mapstructure:"vision_model"`
	ImageModel   string        `mapstructure:"image_model"`
	Temperature  float64       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens    int           `mapstructure:"max_tokens" validate:"gt=0"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
	AnthropicKey string        `mapstructure:"anthropic_key"`
	OpenAIKey    string        `mapstructure:"openai_key"`
	GeminiKey    string        `mapstructure:"gemini_key"`
}

type CaptureConfig struct {
	DesktopWidth     int           `mapstructure:"desktop_width" validate:"gt=0"`
	DesktopHeight    int           `mapstructure:"desktop_height" validate:"gt=0"`
	MobileWidth      int           `mapstructure:"mobile_width" validate:"gt=0"`
	MobileHeight     int           `mapstructure:"mobile_height" validate:"gt=0"`
	Timeout          time.Duration `mapstructure:"timeout" validate:"gt=0"`
	SelectorTimeout  time.Duration `mapstructure:"selector_timeout" validate:"gt=0"`
	HydrationWaitFor []string      `mapstructure:"hydration_selectors"`
	HTMLLimit        int           `mapstructure:"html_limit" validate:"gt=0"`
	VisionMaxWidth   uint          `mapstructure:"vision_max_width" validate:"gt=0"`
	ProfileDir       string        `mapstructure:"profile_dir"`
}

type GenerationConfig struct {
	MaxSupportingSections int  `mapstructure:"max_supporting_sections" validate:"gt=0"`
	GenerateAssets        bool `mapstructure:"generate_assets"`
}

type StorageConfig struct {
	Root    string `mapstructure:"root" validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"required"`
}

type DeployConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Human bool   `mapstructure:"human"`
}

// Defaults installs the built-in values on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("ai.provider", "claude")
	v.SetDefault("ai.temperature", 0.4)
	v.SetDefault("ai.max_tokens", 8192)
	v.SetDefault("ai.timeout", 3*time.Minute)
	v.SetDefault("ai.image_model", "imagen-3.0-generate-002")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.vision_model", "")
	v.SetDefault("ai.anthropic_key", "")
	v.SetDefault("ai.openai_key", "")
	v.SetDefault("ai.gemini_key", "")

	v.SetDefault("capture.desktop_width", 1440)
	v.SetDefault("capture.desktop_height", 900)
	v.SetDefault("capture.mobile_width", 390)
	v.SetDefault("capture.mobile_height", 844)
	v.SetDefault("capture.timeout", 45*time.Second)
	v.SetDefault("capture.selector_timeout", 3*time.Second)
	v.SetDefault("capture.hydration_selectors", []string{"main", "header", "footer", "[data-reactroot]", "#__next"})
	v.SetDefault("capture.html_limit", 5000)
	v.SetDefault("capture.vision_max_width", 1280)
	v.SetDefault("capture.profile_dir", "")

	v.SetDefault("generation.max_supporting_sections", 5)
	v.SetDefault("generation.generate_assets", false)

	v.SetDefault("storage.root", ".themeforge/assets")
	v.SetDefault("storage.base_url", "http://localhost:8787/assets")

	v.SetDefault("deploy.base_url", "")
	v.SetDefault("deploy.token", "")
	v.SetDefault("deploy.timeout", 30*time.Second)

	v.SetDefault("server.addr", ":8787")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.human", true)
}

// Load reads configuration. path may be empty, in which case ./themeforge.yaml
// is used when present. Environment variables use the THEMEFORGE_ prefix with
// dots replaced by underscores (THEMEFORGE_AI_PROVIDER).
func Load(path string) (*Config, error) {
	v := viper.New()
	Defaults(v)

	v.SetEnvPrefix("themeforge")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("themeforge")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyKeyFallbacks()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyKeyFallbacks picks up the vendor SDK environment variable names when
// no themeforge-specific key is set.
func (c *Config) applyKeyFallbacks() {
	if c.AI.AnthropicKey == "" {
		c.AI.AnthropicKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if c.AI.OpenAIKey == "" {
		c.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.AI.GeminiKey == "" {
		c.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	}
}

var validate = validator.New()

// Validate checks struct constraints and reports the first failing field.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) && len(ves) > 0 {
			fe := ves[0]
			return fmt.Errorf("config: %s failed validation for tag '%s'", fieldName(fe), fe.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, ".")
}
