package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Chart     ChartConfig     `mapstructure:"chart"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
}

type APIConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,http_url"`
	SuccessCode    string `mapstructure:"success_code" validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=0"`
	Concurrency    int    `mapstructure:"concurrency" validate:"min=1,max=12"`
}

// Timeout returns the per-request timeout. Zero means no timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ChartConfig struct {
	WidthInches  float64 `mapstructure:"width_inches" validate:"gt=0"`
	HeightInches float64 `mapstructure:"height_inches" validate:"gt=0"`
}

type TemplatesConfig struct {
	ReportTemplate string `mapstructure:"report_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	ReportDirectory string `mapstructure:"report_directory"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/attendchart")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("api.base_url", "https://kimcodi.kr/external_api/dashboard/")
	v.SetDefault("api.success_code", "001")
	v.SetDefault("api.timeout_seconds", 0)
	v.SetDefault("api.concurrency", 4)
	v.SetDefault("chart.width_inches", 8.0)
	v.SetDefault("chart.height_inches", 4.0)
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.report_template", "")
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "reports"))
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")

	if err := v.BindEnv("api.base_url", "ATTENDCHART_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind ATTENDCHART_API_BASE_URL environment variable: %w", err)
	}
	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, fmt.Errorf("validator.Struct > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
