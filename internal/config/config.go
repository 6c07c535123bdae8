package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Enrich   EnrichConfig   `yaml:"enrich" mapstructure:"enrich"`
	Outreach OutreachConfig `yaml:"outreach" mapstructure:"outreach"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// EnrichConfig configures the contact enrichment stage.
type EnrichConfig struct {
	PeopleDataKey     string  `yaml:"peopledata_api_key" mapstructure:"peopledata_api_key"`
	PeopleDataBaseURL string  `yaml:"peopledata_base_url" mapstructure:"peopledata_base_url"`
	RatePerSecond     float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	LookupTimeoutSecs int     `yaml:"lookup_timeout_secs" mapstructure:"lookup_timeout_secs"`
	DelayMillis       int     `yaml:"delay_millis" mapstructure:"delay_millis"`
	Seed              int64   `yaml:"seed" mapstructure:"seed"`
}

// OutreachConfig configures email template selection.
type OutreachConfig struct {
	TemplateFile string `yaml:"template_file" mapstructure:"template_file"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "leads.db")
	v.SetDefault("enrich.rate_per_second", 5.0)
	v.SetDefault("enrich.lookup_timeout_secs", 10)
	v.SetDefault("enrich.delay_millis", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields a command mode depends on. Modes: "store"
// (any command touching the database), "serve" (the HTTP API).
func (c *Config) Validate(mode string) error {
	var problems []string

	checkStore := func() {
		switch c.Store.Driver {
		case "sqlite", "postgres":
		default:
			problems = append(problems, "store.driver must be sqlite or postgres")
		}
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required")
		}
	}

	switch mode {
	case "store":
		checkStore()
	case "serve":
		checkStore()
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Enrich.RatePerSecond < 0 {
		problems = append(problems, "enrich.rate_per_second must be >= 0")
	}
	if c.Enrich.LookupTimeoutSecs < 0 {
		problems = append(problems, "enrich.lookup_timeout_secs must be >= 0")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
