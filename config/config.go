// Package config loads the apiveritas YAML configuration file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/mariogalea/qualitymatters-apiveritas/comparer"
	"github.com/mariogalea/qualitymatters-apiveritas/internal/naming"
	"github.com/mariogalea/qualitymatters-apiveritas/runner"
)

// DefaultPath is the config file looked up when none is given on the CLI.
const DefaultPath = "apiveritas.yaml"

// Config is the complete apiveritas configuration.
type Config struct {
	Suite      string           `yaml:"suite"`
	Payloads   string           `yaml:"payloads_dir"`
	Reports    string           `yaml:"reports_dir"`
	LogLevel   string           `yaml:"log_level"`
	Comparison ComparisonConfig `yaml:"comparison"`
	Request    RequestConfig    `yaml:"request"`
	Tests      []TestCase       `yaml:"tests"`
	Mock       MockConfig       `yaml:"mock"`
}

// ComparisonConfig mirrors the comparison strictness options.
type ComparisonConfig struct {
	StrictSchema           bool `yaml:"strict_schema"`
	StrictValues           bool `yaml:"strict_values"`
	TolerateEmptyResponses bool `yaml:"tolerate_empty_responses"`
}

// RequestConfig tunes the HTTP test case executor.
type RequestConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	MaxRetries     int `yaml:"max_retries"`
}

// TestCase declares one HTTP request whose response is snapshotted.
type TestCase struct {
	Name    string            `yaml:"name"`
	Method  string            `yaml:"method"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
	Body    string            `yaml:"body"`
}

// MockConfig declares the optional CI mock server.
type MockConfig struct {
	Addr   string      `yaml:"addr"`
	Routes []MockRoute `yaml:"routes"`
}

// MockRoute is one canned response served by the mock server.
type MockRoute struct {
	Method   string `yaml:"method"`
	Path     string `yaml:"path"`
	Status   int    `yaml:"status"`
	Body     string `yaml:"body"`
	BodyFile string `yaml:"body_file"`
}

// Load reads and validates a config file, applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Suite == "" {
		c.Suite = "default"
	}
	if c.Payloads == "" {
		c.Payloads = "payloads"
	}
	if c.Reports == "" {
		c.Reports = "reports"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Request.TimeoutSeconds <= 0 {
		c.Request.TimeoutSeconds = 30
	}
	if c.Request.MaxRetries < 0 {
		c.Request.MaxRetries = 0
	}
	if c.Mock.Addr == "" {
		c.Mock.Addr = ":8787"
	}
}

// Validate checks the configuration for per-field and cross-field problems.
func (c *Config) Validate() error {
	seen := make(map[string]string, len(c.Tests))
	for i, tc := range c.Tests {
		if tc.Name == "" {
			return fmt.Errorf("test %d: name is required", i)
		}
		if tc.URL == "" {
			return fmt.Errorf("test %q: url is required", tc.Name)
		}
		if u, err := url.Parse(tc.URL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("test %q: url %q is not an absolute http(s) url", tc.Name, tc.URL)
		}
		// Names collide on disk after sanitization, not just verbatim.
		safe := naming.SafeFileName(tc.Name)
		if prev, dup := seen[safe]; dup {
			return fmt.Errorf("test %q: name collides with %q after sanitization", tc.Name, prev)
		}
		seen[safe] = tc.Name
	}

	for i, route := range c.Mock.Routes {
		if route.Path == "" {
			return fmt.Errorf("mock route %d: path is required", i)
		}
		if route.Body != "" && route.BodyFile != "" {
			return fmt.Errorf("mock route %s: body and body_file are mutually exclusive", route.Path)
		}
	}
	return nil
}

// Options converts the comparison section into comparer options.
func (c *Config) Options() comparer.Options {
	return comparer.Options{
		StrictSchema:           c.Comparison.StrictSchema,
		StrictValues:           c.Comparison.StrictValues,
		TolerateEmptyResponses: c.Comparison.TolerateEmptyResponses,
	}
}

// Requests converts the declared test cases into runner requests.
func (c *Config) Requests() []runner.Request {
	reqs := make([]runner.Request, 0, len(c.Tests))
	for _, tc := range c.Tests {
		reqs = append(reqs, runner.Request{
			Name:    tc.Name,
			Method:  tc.Method,
			URL:     tc.URL,
			Headers: tc.Headers,
			Body:    tc.Body,
		})
	}
	return reqs
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Request.TimeoutSeconds) * time.Second
}
