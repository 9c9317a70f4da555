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
	API        APIConfig        `yaml:"api" mapstructure:"api"`
	University UniversityConfig `yaml:"university" mapstructure:"university"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Report     ReportConfig     `yaml:"report" mapstructure:"report"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// APIConfig configures the remote prediction service client.
type APIConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// UniversityConfig holds institution settings used for default company
// lists and report copy.
type UniversityConfig struct {
	Name       string `yaml:"name" mapstructure:"name"`
	TargetCity string `yaml:"target_city" mapstructure:"target_city"`
}

// StoreConfig configures the local session/activity database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ReportConfig configures PDF export.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// ServerConfig configures the dashboard HTTP facade.
type ServerConfig struct {
	Port          int      `yaml:"port" mapstructure:"port"`
	AllowedOrigin []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
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
	v.SetEnvPrefix("SPONSOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("api.base_url", "http://127.0.0.1:5000")
	v.SetDefault("api.timeout_secs", 30)
	v.SetDefault("university.name", "University of Wisconsin-Milwaukee")
	v.SetDefault("university.target_city", "Milwaukee")
	v.SetDefault("store.path", "sponsor.db")
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
