package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/billcraft/billcraft/internal/types"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Templates  TemplatesConfig  `validate:"required"`
	Render     RenderConfig     `validate:"required"`
	Rates      RatesConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// TemplatesConfig configures the external template source
type TemplatesConfig struct {
	// BaseURL is the read-only template source endpoint; template source
	// is fetched from <base_url>/<template_id>
	BaseURL string `mapstructure:"base_url" validate:"required"`
	// FetchTimeout bounds a single template fetch
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	// MaxConcurrentFetches bounds parallel fetches in a single Load call
	MaxConcurrentFetches int `mapstructure:"max_concurrent_fetches"`
}

// RenderConfig configures the document rendering pipeline
type RenderConfig struct {
	// StrictImages fails the whole render when an embedded image cannot be
	// loaded; when false a placeholder box is drawn instead
	StrictImages bool `mapstructure:"strict_images"`
	// ImageTimeout bounds the wait for all embedded images of one render
	ImageTimeout time.Duration `mapstructure:"image_timeout"`
	// Page geometry in pixels, A4 at 96dpi by default
	PageWidthPx  int `mapstructure:"page_width_px"`
	PageHeightPx int `mapstructure:"page_height_px"`
	PageMarginPx int `mapstructure:"page_margin_px"`
	// OutputDir is where saved artifacts are written
	OutputDir string `mapstructure:"output_dir"`
}

// RateEntry is one directed conversion rate, configuration-supplied
type RateEntry struct {
	From string `validate:"required,len=3"`
	To   string `validate:"required,len=3"`
	Rate string `validate:"required"`
}

type RatesConfig struct {
	Entries []RateEntry
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/billcraft")

	v.SetEnvPrefix("BILLCRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	// strict image policy holds unless explicitly disabled; a plain bool
	// cannot distinguish unset from false after unmarshal
	v.SetDefault("render.strict_images", true)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Configuration) applyDefaults() {
	if c.Templates.FetchTimeout <= 0 {
		c.Templates.FetchTimeout = 10 * time.Second
	}
	if c.Templates.MaxConcurrentFetches <= 0 {
		c.Templates.MaxConcurrentFetches = 4
	}
	if c.Render.ImageTimeout <= 0 {
		c.Render.ImageTimeout = 15 * time.Second
	}
	if c.Render.PageWidthPx <= 0 {
		c.Render.PageWidthPx = 794
	}
	if c.Render.PageHeightPx <= 0 {
		c.Render.PageHeightPx = 1123
	}
	if c.Render.PageMarginPx <= 0 {
		c.Render.PageMarginPx = 48
	}
	if c.Render.OutputDir == "" {
		c.Render.OutputDir = "out"
	}
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	cfg := &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Templates: TemplatesConfig{
			BaseURL: "http://localhost:8089/templates",
		},
		Render: RenderConfig{
			StrictImages: true,
		},
		Rates: RatesConfig{
			Entries: []RateEntry{
				{From: "usd", To: "ngn", Rate: "800"},
				{From: "eur", To: "usd", Rate: "1.08"},
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}
