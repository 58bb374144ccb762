package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/mcalc/foundation/core/error"
	mdwlog "github.com/msto63/mcalc/foundation/core/log"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "MCALC_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General   GeneralConfig   `toml:"general" yaml:"general"`
	Evaluator EvaluatorConfig `toml:"evaluator" yaml:"evaluator"`
	REPL      REPLConfig      `toml:"repl" yaml:"repl"`
	History   HistoryConfig   `toml:"history" yaml:"history"`
	Shell     ShellConfig     `toml:"shell" yaml:"shell"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// EvaluatorConfig holds evaluator limits
type EvaluatorConfig struct {
	MaxDepth       int  `toml:"max_depth" yaml:"max_depth"`
	MaxInputLength int  `toml:"max_input_length" yaml:"max_input_length"`
	Strict         bool `toml:"strict" yaml:"strict"`
}

// REPLConfig holds line driver settings
type REPLConfig struct {
	Prompt       string   `toml:"prompt" yaml:"prompt"`
	Color        bool     `toml:"color" yaml:"color"`
	ExitCommands []string `toml:"exit_commands" yaml:"exit_commands"`
}

// HistoryConfig holds evaluation history settings
type HistoryConfig struct {
	Enabled     bool     `toml:"enabled" yaml:"enabled"`
	Path        string   `toml:"path" yaml:"path"`
	Limit       int      `toml:"limit" yaml:"limit"`
	BusyTimeout Duration `toml:"busy_timeout" yaml:"busy_timeout"`
}

// ShellConfig holds calc shell settings
type ShellConfig struct {
	Scrollback int `toml:"scrollback" yaml:"scrollback"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{REPL: REPLConfig{Color: true}}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML or YAML file. The format follows
// the file extension; anything but .yaml and .yml is read as TOML.
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mdwerror.Wrap(err, "config file not found").
				WithCode(mdwerror.CodeMissingConfig).
				WithDetail("path", path)
		}
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}

	// Values absent from the file keep their defaults
	cfg := &Config{REPL: REPLConfig{Color: true}}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		_, err = toml.Decode(string(data), cfg)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from the MCALC_CONFIG environment
// variable or the first default location that exists.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, mdwerror.New("no config file found, set MCALC_CONFIG or create configs/config.toml").
			WithCode(mdwerror.CodeMissingConfig)
	}

	return Load(path)
}

// LoadOrDefault loads the file at path, or searches the default locations
// when path is empty. A missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = Load(path)
	} else {
		cfg, err = LoadFromEnv()
	}
	if err != nil {
		if path == "" && mdwerror.HasCode(err, mdwerror.CodeMissingConfig) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// DefaultPaths lists the locations searched by LoadFromEnv
func DefaultPaths() []string {
	return []string{
		"./configs/config.toml",
		"./config.toml",
		filepath.Join(os.Getenv("HOME"), ".config/mcalc/config.toml"),
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "mCalc"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Evaluator
	if c.Evaluator.MaxDepth == 0 {
		c.Evaluator.MaxDepth = 256
	}
	if c.Evaluator.MaxInputLength == 0 {
		c.Evaluator.MaxInputLength = 4096
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "> "
	}
	if len(c.REPL.ExitCommands) == 0 {
		c.REPL.ExitCommands = []string{"exit", "quit", "q"}
	}

	// History
	if c.History.Path == "" {
		c.History.Path = "$HOME/.local/share/mcalc/history.db"
	}
	if c.History.Limit == 0 {
		c.History.Limit = 20
	}
	if c.History.BusyTimeout.Duration == 0 {
		c.History.BusyTimeout.Duration = 5 * time.Second
	}

	// Shell
	if c.Shell.Scrollback == 0 {
		c.Shell.Scrollback = 500
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	invalid := func(key string, value interface{}, msg string) error {
		return mdwerror.New(msg).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("key", key).
			WithDetail("value", value)
	}

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel, "unknown log level")
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat, "unknown log format")
	}
	if c.Evaluator.MaxDepth < 0 {
		return invalid("evaluator.max_depth", c.Evaluator.MaxDepth, "max_depth must be positive")
	}
	if c.Evaluator.MaxInputLength < 0 {
		return invalid("evaluator.max_input_length", c.Evaluator.MaxInputLength, "max_input_length must be positive")
	}
	if c.History.Limit < 0 {
		return invalid("history.limit", c.History.Limit, "limit must be positive")
	}
	if c.Shell.Scrollback < 0 {
		return invalid("shell.scrollback", c.Shell.Scrollback, "scrollback must be positive")
	}
	return nil
}

// IsExitCommand reports whether line is one of the configured exit commands
func (c *Config) IsExitCommand(line string) bool {
	for _, cmd := range c.REPL.ExitCommands {
		if line == cmd {
			return true
		}
	}
	return false
}
