// Package config loads CLI settings from defaults, a TOML file, the
// environment and flags, in that order of precedence.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	DefaultConfigFile = "todo.toml"
	DefaultTheme      = "classic"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
	DefaultStartID    = 1
)

var Themes = []string{"classic", "neon", "mono"}

// Config holds the settings the REPL and store are built from.
type Config struct {
	Theme     string `toml:"theme"`
	Group     bool   `toml:"group"`
	Seed      bool   `toml:"seed"`
	AssumeYes bool   `toml:"assume_yes"`
	StartID   int    `toml:"start_id"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// File is the config file that was read, if any.
	File string `toml:"-"`
}

func Default() *Config {
	return &Config{
		Theme:     DefaultTheme,
		StartID:   DefaultStartID,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Load parses args with fs and resolves the final configuration.
// Remaining positional arguments are available from fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()

	var (
		path      = fs.String("config", "", "path to a TOML config file (default ./todo.toml)")
		theme     = fs.String("theme", cfg.Theme, "color theme: classic, neon or mono")
		group     = fs.Bool("group", cfg.Group, "group listing by pending/done")
		seed      = fs.Bool("seed", cfg.Seed, "start with sample tasks")
		yes       = fs.Bool("yes", cfg.AssumeYes, "do not ask before deleting")
		startID   = fs.Int("start-id", cfg.StartID, "first task id")
		logLevel  = fs.String("log-level", cfg.LogLevel, "log level: debug, info, warn, error")
		logFormat = fs.String("log-format", cfg.LogFormat, "log format: text, json, logfmt")
	)
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parsing flags")
	}

	file, required := *path, *path != ""
	if !required {
		if env := os.Getenv("TODO_CONFIG"); env != "" {
			file, required = env, true
		} else {
			file = DefaultConfigFile
		}
	}
	if err := loadFile(cfg, file, required); err != nil {
		return nil, err
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "theme":
			cfg.Theme = *theme
		case "group":
			cfg.Group = *group
		case "seed":
			cfg.Seed = *seed
		case "yes":
			cfg.AssumeYes = *yes
		case "start-id":
			cfg.StartID = *startID
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrapf(err, "config file %s", path)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return errors.Wrapf(err, "decoding config file %s", path)
	}
	cfg.File = path
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TODO_SEED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "TODO_SEED=%q", v)
		}
		cfg.Seed = b
	}
	if v := os.Getenv("TODO_START_ID"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "TODO_START_ID=%q", v)
		}
		cfg.StartID = n
	}
	return nil
}

// Validate checks values that cannot be clamped silently.
func (c *Config) Validate() error {
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	valid := false
	for _, t := range Themes {
		if c.Theme == t {
			valid = true
			break
		}
	}
	if !valid {
		return errors.Errorf("unknown theme %q (want one of %s)", c.Theme, strings.Join(Themes, ", "))
	}
	if c.StartID < 1 {
		return errors.Errorf("start id must be >= 1, got %d", c.StartID)
	}
	return nil
}
