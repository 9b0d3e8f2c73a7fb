package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/domscan/domain"
	"github.com/ludo-technologies/domscan/internal/constants"
)

// Default analysis settings
const (
	// DefaultScope counts the whole document, as a browser console would
	DefaultScope = string(domain.ScopeDocument)

	// DefaultParser picks a parser from the file extension
	DefaultParser = string(domain.ParserModeAuto)

	// DefaultFailOn fails a check only for documents that need optimization
	DefaultFailOn = string(domain.FailOnCritical)
)

// Default fetch settings
const (
	DefaultFetchTimeoutSeconds = 30
	DefaultFetchMaxBytes       = 10 << 20
	DefaultViewportWidth       = 1366
	DefaultViewportHeight      = 768
	DefaultUserAgent           = "Mozilla/5.0 (compatible; domscan/1.0; +https://github.com/ludo-technologies/domscan)"
)

// DefaultTimeoutSeconds bounds a whole analysis run
const DefaultTimeoutSeconds = 300

// Config represents the main configuration structure
type Config struct {
	// Analysis holds what to analyze and how
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`

	// Fetch holds settings for URL sources
	Fetch FetchConfig `json:"fetch" mapstructure:"fetch" yaml:"fetch"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Check holds CI gate settings
	Check CheckConfig `json:"check" mapstructure:"check" yaml:"check"`

	// Performance holds concurrency settings
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// AnalysisConfig holds general analysis configuration
type AnalysisConfig struct {
	// Scope is what the total node count covers: document or subtree
	Scope string `json:"scope" mapstructure:"scope" yaml:"scope"`

	// Root is the selector of the analysis root (empty = body)
	Root string `json:"root" mapstructure:"root" yaml:"root"`

	// Parser is auto, html, source or tree
	Parser string `json:"parser" mapstructure:"parser" yaml:"parser"`

	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether to analyze directories recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`
}

// FetchConfig holds configuration for remote documents
type FetchConfig struct {
	TimeoutSeconds int    `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	UserAgent      string `json:"user_agent" mapstructure:"user_agent" yaml:"user_agent"`
	MaxBytes       int64  `json:"max_bytes" mapstructure:"max_bytes" yaml:"max_bytes"`

	// Render loads URLs in headless Chrome and analyzes the live DOM
	Render bool `json:"render" mapstructure:"render" yaml:"render"`

	ViewportWidth  int `json:"viewport_width" mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight int `json:"viewport_height" mapstructure:"viewport_height" yaml:"viewport_height"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv, html
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowRecommendations controls whether suggestions are printed
	ShowRecommendations bool `json:"show_recommendations" mapstructure:"show_recommendations" yaml:"show_recommendations"`

	// Color enables colored terminal output
	Color bool `json:"color" mapstructure:"color" yaml:"color"`

	// Directory specifies the output directory for reports (empty = current directory)
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`
}

// CheckConfig holds configuration for the check command
type CheckConfig struct {
	// FailOn is warning or critical
	FailOn string `json:"fail_on" mapstructure:"fail_on" yaml:"fail_on"`
}

// PerformanceConfig holds concurrency configuration
type PerformanceConfig struct {
	// MaxGoroutines limits concurrent documents (0 = number of CPUs)
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds the whole run (0 = no limit)
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Scope:  DefaultScope,
			Root:   domain.DefaultRootSelector,
			Parser: DefaultParser,
			IncludePatterns: []string{
				"**/*.html",
				"**/*.htm",
				"**/*.xhtml",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/.git/**",
			},
			Recursive: true,
		},
		Fetch: FetchConfig{
			TimeoutSeconds: DefaultFetchTimeoutSeconds,
			UserAgent:      DefaultUserAgent,
			MaxBytes:       DefaultFetchMaxBytes,
			Render:         false,
			ViewportWidth:  DefaultViewportWidth,
			ViewportHeight: DefaultViewportHeight,
		},
		Output: OutputConfig{
			Format:              "text",
			ShowRecommendations: true,
			Color:               true,
		},
		Check: CheckConfig{
			FailOn: DefaultFailOn,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  0,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// FetchTimeout returns the per-document fetch timeout
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// Timeout returns the run timeout (0 = none)
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Performance.TimeoutSeconds) * time.Second
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// An empty configPath triggers discovery starting at targetPath.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads a configuration file, layering DOMSCAN_* environment
// variables on top. An empty path yields defaults plus environment.
func loadConfigFromFile(configPath string) (*Config, error) {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	setDefaults(v, config)

	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults registers every key so environment overrides are seen by Unmarshal
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("analysis.scope", c.Analysis.Scope)
	v.SetDefault("analysis.root", c.Analysis.Root)
	v.SetDefault("analysis.parser", c.Analysis.Parser)
	v.SetDefault("analysis.include_patterns", c.Analysis.IncludePatterns)
	v.SetDefault("analysis.exclude_patterns", c.Analysis.ExcludePatterns)
	v.SetDefault("analysis.recursive", c.Analysis.Recursive)

	v.SetDefault("fetch.timeout_seconds", c.Fetch.TimeoutSeconds)
	v.SetDefault("fetch.user_agent", c.Fetch.UserAgent)
	v.SetDefault("fetch.max_bytes", c.Fetch.MaxBytes)
	v.SetDefault("fetch.render", c.Fetch.Render)
	v.SetDefault("fetch.viewport_width", c.Fetch.ViewportWidth)
	v.SetDefault("fetch.viewport_height", c.Fetch.ViewportHeight)

	v.SetDefault("output.format", c.Output.Format)
	v.SetDefault("output.show_recommendations", c.Output.ShowRecommendations)
	v.SetDefault("output.color", c.Output.Color)
	v.SetDefault("output.directory", c.Output.Directory)

	v.SetDefault("check.fail_on", c.Check.FailOn)

	v.SetDefault("performance.max_goroutines", c.Performance.MaxGoroutines)
	v.SetDefault("performance.timeout_seconds", c.Performance.TimeoutSeconds)
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations.
// targetPath is the path being analyzed; URLs are ignored.
func findDefaultConfig(targetPath string) string {
	candidates := constants.ConfigFileNames

	if targetPath != "" && !isURL(targetPath) {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			// If it's a file, start from its directory
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	// Check XDG config directory (Linux/Mac standard)
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName), candidates); config != "" {
			return config
		}
	}

	// Check ~/.config/domscan/ (XDG default)
	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", constants.ToolName)
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}
		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv(constants.ConfigEnvVar); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	switch domain.CountScope(c.Analysis.Scope) {
	case domain.ScopeDocument, domain.ScopeSubtree:
	default:
		return fmt.Errorf("invalid analysis.scope '%s', must be one of: document, subtree", c.Analysis.Scope)
	}

	switch domain.ParserMode(c.Analysis.Parser) {
	case domain.ParserModeAuto, domain.ParserModeHTML, domain.ParserModeSource, domain.ParserModeTree:
	default:
		return fmt.Errorf("invalid analysis.parser '%s', must be one of: auto, html, source, tree", c.Analysis.Parser)
	}

	if c.Analysis.Root != "" {
		if _, ok := domain.ParseSelector(c.Analysis.Root); !ok {
			return fmt.Errorf("invalid analysis.root '%s': only tag, #id, .class and compounds are supported", c.Analysis.Root)
		}
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	if c.Fetch.TimeoutSeconds < 1 {
		return fmt.Errorf("fetch.timeout_seconds must be >= 1, got %d", c.Fetch.TimeoutSeconds)
	}
	if c.Fetch.MaxBytes < 1 {
		return fmt.Errorf("fetch.max_bytes must be >= 1, got %d", c.Fetch.MaxBytes)
	}
	if c.Fetch.ViewportWidth < 0 || c.Fetch.ViewportHeight < 0 {
		return fmt.Errorf("fetch viewport must not be negative, got %dx%d", c.Fetch.ViewportWidth, c.Fetch.ViewportHeight)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
		"csv":  true,
		"html": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv, html", c.Output.Format)
	}

	switch domain.FailLevel(c.Check.FailOn) {
	case domain.FailOnWarning, domain.FailOnCritical:
	default:
		return fmt.Errorf("invalid check.fail_on '%s', must be one of: warning, critical", c.Check.FailOn)
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}
	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("analysis", config.Analysis)
	v.Set("fetch", config.Fetch)
	v.Set("output", config.Output)
	v.Set("check", config.Check)
	v.Set("performance", config.Performance)

	return v.WriteConfig()
}
