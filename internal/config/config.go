// Package config loads geneloc settings from GENELOC_* environment
// variables (optionally seeded from a .env file) and command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/geneloc/pkg/model"
)

const envPrefix = "GENELOC"

// Keys double as flag names.
const (
	KeySpecies  = "species"
	KeyOutput   = "output"
	KeyDB       = "db"
	KeyFromCSV  = "from-csv"
	KeyMartHost = "mart-host"
	KeyTimeout  = "timeout"
	KeyLogLevel = "log-level"
	KeyNoColor  = "no-color"
)

type Config struct {
	Species      string        `mapstructure:"species"`
	OutputFolder string        `mapstructure:"output"`
	DBPath       string        `mapstructure:"db"`
	FromCSV      string        `mapstructure:"from-csv"`
	MartHost     string        `mapstructure:"mart-host"`
	Timeout      time.Duration `mapstructure:"timeout"`
	LogLevel     string        `mapstructure:"log-level"`
	NoColor      bool          `mapstructure:"no-color"`
}

func Default() Config {
	return Config{
		Species:      string(model.Human),
		OutputFolder: "Localization",
		Timeout:      60 * time.Second,
		LogLevel:     "info",
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	d := Default()
	v.SetDefault(KeySpecies, d.Species)
	v.SetDefault(KeyOutput, d.OutputFolder)
	v.SetDefault(KeyDB, d.DBPath)
	v.SetDefault(KeyFromCSV, d.FromCSV)
	v.SetDefault(KeyMartHost, d.MartHost)
	v.SetDefault(KeyTimeout, d.Timeout)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyNoColor, d.NoColor)
	return v
}

// LoadDotEnv reads .env files into the process environment without
// overriding variables that are already set. A missing file is reported but
// is not fatal.
func LoadDotEnv(paths ...string) error {
	return godotenv.Load(paths...)
}

// Load merges defaults, GENELOC_* variables and any flags changed on the
// command line, in increasing order of precedence, then validates.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := newViper()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := model.ResolveSpecies(c.Species); err != nil {
		return err
	}
	if strings.TrimSpace(c.OutputFolder) == "" {
		return errors.New("output folder is empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.DBPath != "" && c.FromCSV != "" {
		return fmt.Errorf("--%s and --%s are mutually exclusive", KeyDB, KeyFromCSV)
	}
	return nil
}
