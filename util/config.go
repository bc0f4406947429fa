package util

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/lint"
)

type LintConfig struct {
	Enabled       bool     `yaml:"enabled"`
	DisabledRules []string `yaml:"disabledRules"`
}

// Config holds the server defaults. Client settings sent at initialize or
// with didChangeConfiguration override the compile options per connection.
type Config struct {
	EnableLabelScope bool       `yaml:"enableLabelScope"`
	UseGR8AsSp       bool       `yaml:"useGR8AsSp"`
	DebounceMillis   int        `yaml:"debounceMillis"`
	TCPAddress       string     `yaml:"tcpAddress"`
	WSAddress        string     `yaml:"wsAddress"`
	Lint             LintConfig `yaml:"lint"`
}

func DefaultConfig() Config {
	return Config{
		EnableLabelScope: true,
		UseGR8AsSp:       false,
		DebounceMillis:   200,
		TCPAddress:       ":2035",
		WSAddress:        ":2036",
		Lint:             LintConfig{Enabled: true},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	if path == "" {
		return conf, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return conf, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &conf); err != nil {
		return conf, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if conf.DebounceMillis < 0 {
		return conf, fmt.Errorf("parsing config %s: debounceMillis must not be negative", path)
	}
	for _, rule := range conf.Lint.DisabledRules {
		if !slices.Contains(lint.Rules(), rule) {
			return conf, fmt.Errorf("parsing config %s: unknown lint rule %q", path, rule)
		}
	}
	return conf, nil
}

func (c Config) CompileOption() casl2.CompileOption {
	return casl2.CompileOption{
		UseGR8AsSp:       c.UseGR8AsSp,
		EnableLabelScope: c.EnableLabelScope,
	}
}

func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}
