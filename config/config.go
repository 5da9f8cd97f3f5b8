// Package config loads the x68kbd TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
)

const DefaultPath = "/etc/x68kbd/x68kbd.conf"

// Embedded defaults, used when no config file can be read.
const Toml = `# x68kbd default config

[Table]
Extended = false

[Input]
Source = "evdev"
Device = ""
Bypass = "(?i)Video|Camera|Consumer"
Grab = false
Baud = 2400

[Output]
Port = ""
Baud = 2400

[Unmapped]
Action = "log"
Exec = ""
# Seconds; 0 = no limit. Running hooks are killed on shutdown either way.
Timeout = 2.0
MaxReply = 4096

[Metrics]
Listen = ""

[Log]
Level = "info"
`

type TTable struct {
	Extended bool `toml:"Extended"`
}

type TInput struct {
	Source   string         `toml:"Source"`
	Device   string         `toml:"Device"`
	Bypass   string         `toml:"Bypass"`
	BypassRE *regexp.Regexp `toml:"-"`
	Grab     bool           `toml:"Grab"`
	Baud     int            `toml:"Baud"`
}

type TOutput struct {
	Port string `toml:"Port"`
	Baud int    `toml:"Baud"`
}

type TUnmapped struct {
	Action   string  `toml:"Action"`
	Exec     string  `toml:"Exec"`
	Timeout  float64 `toml:"Timeout"`
	MaxReply int64   `toml:"MaxReply"`
}

type TMetrics struct {
	Listen string `toml:"Listen"`
}

type TLog struct {
	Level string `toml:"Level"`
}

// Config is the parsed file. Sections mirror the TOML tables.
type Config struct {
	Table    TTable    `toml:"Table"`
	Input    TInput    `toml:"Input"`
	Output   TOutput   `toml:"Output"`
	Unmapped TUnmapped `toml:"Unmapped"`
	Metrics  TMetrics  `toml:"Metrics"`
	Log      TLog      `toml:"Log"`
}

// HookTimeout is Unmapped.Timeout as a duration.
func (c *Config) HookTimeout() time.Duration {
	return time.Duration(c.Unmapped.Timeout * float64(time.Second))
}

// Default parses the embedded config.
func Default() *Config {
	c, err := Parse([]byte(Toml))
	if err != nil {
		panic(fmt.Errorf("embedded config: %w", err))
	}
	return c
}

// Parse decodes and validates a config document. Keys the document leaves out
// keep their embedded default; keys the defaults don't know are rejected.
func Parse(data []byte) (*Config, error) {
	tree, err := toml.LoadBytes([]byte(Toml))
	if err != nil {
		return nil, fmt.Errorf("embedded config: %w", err)
	}
	user, err := toml.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	if err := merge(tree, user, ""); err != nil {
		return nil, err
	}

	var c Config
	if err := tree.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func merge(dst, src *toml.Tree, section string) error {
	for _, key := range src.Keys() {
		if !dst.Has(key) {
			if section == "" {
				return fmt.Errorf("unknown section name [%s]", key)
			}
			return fmt.Errorf("unknown key %q in [%s] section", key, section)
		}
		dsub, dstIsTree := dst.Get(key).(*toml.Tree)
		sub, srcIsTree := src.Get(key).(*toml.Tree)
		switch {
		case dstIsTree && srcIsTree:
			if err := merge(dsub, sub, key); err != nil {
				return err
			}
		case dstIsTree != srcIsTree:
			return fmt.Errorf("[%s] must be a section", key)
		default:
			v := src.Get(key)
			// Timeout = 5 means 5.0.
			if i, ok := v.(int64); ok {
				if _, isFloat := dst.Get(key).(float64); isFloat {
					v = float64(i)
				}
			}
			dst.Set(key, v)
		}
	}
	return nil
}

// ErrNotFound is returned by Load when the file does not exist.
var ErrNotFound = errors.New("config file not found")

// Load reads path. A missing file yields ErrNotFound together with the
// embedded defaults, so callers may warn and carry on.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *Config) validate() error {
	c.Input.Source = strings.ToLower(c.Input.Source)
	switch c.Input.Source {
	case "evdev", "serial", "stdin":
	default:
		return fmt.Errorf("[Input] Source must be evdev, serial or stdin, not %q", c.Input.Source)
	}
	if c.Input.Source == "serial" && c.Input.Device == "" {
		return errors.New("[Input] Device is required for the serial source")
	}
	re, err := regexp.Compile(c.Input.Bypass)
	if err != nil {
		return fmt.Errorf("[Input] invalid regexp for Bypass: %w", err)
	}
	c.Input.BypassRE = re
	if c.Input.Baud <= 0 || c.Output.Baud <= 0 {
		return errors.New("[Input] and [Output] Baud must be positive")
	}

	c.Unmapped.Action = strings.ToLower(c.Unmapped.Action)
	switch c.Unmapped.Action {
	case "ignore", "log":
	case "exec":
		if strings.TrimSpace(c.Unmapped.Exec) == "" {
			return errors.New("[Unmapped] Exec is required when Action = \"exec\"")
		}
	default:
		return fmt.Errorf("[Unmapped] Action must be ignore, log or exec, not %q", c.Unmapped.Action)
	}
	if c.Unmapped.Timeout < 0 {
		return errors.New("[Unmapped] Timeout must not be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
		c.Log.Level = strings.ToLower(c.Log.Level)
	default:
		return fmt.Errorf("[Log] unknown Level %q", c.Log.Level)
	}
	return nil
}
