package service

import (
	"github.com/ludo-technologies/domscan/domain"
	"github.com/ludo-technologies/domscan/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.AnalysisRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}

	req := c.convertToAnalysisRequest(cfg)
	req.ConfigPath = path
	return req, nil
}

// LoadConfigForTarget discovers a configuration file starting at target
func (c *ConfigurationLoaderImpl) LoadConfigForTarget(target string) (*domain.AnalysisRequest, error) {
	cfg, err := config.LoadConfigWithTarget("", target)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return c.convertToAnalysisRequest(cfg), nil
}

// LoadDefaultConfig loads the discovered configuration, falling back to built-in defaults
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.AnalysisRequest {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err == nil {
		return c.convertToAnalysisRequest(cfg)
	}
	return c.convertToAnalysisRequest(config.DefaultConfig())
}

// MergeConfig merges CLI flags with configuration file. Only non-zero
// override values win; boolean switches can only be turned on here.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.AnalysisRequest, override *domain.AnalysisRequest) *domain.AnalysisRequest {
	merged := *base

	// sources always come from command arguments
	if len(override.Sources) > 0 {
		merged.Sources = override.Sources
	}

	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	if override.OutputDirectory != "" {
		merged.OutputDirectory = override.OutputDirectory
	}

	if override.RootSelector != "" {
		merged.RootSelector = override.RootSelector
	}
	if override.Scope != "" {
		merged.Scope = override.Scope
	}
	if override.ParserMode != "" {
		merged.ParserMode = override.ParserMode
	}

	if override.Render {
		merged.Render = true
	}
	if override.FetchTimeout > 0 {
		merged.FetchTimeout = override.FetchTimeout
	}
	if override.UserAgent != "" {
		merged.UserAgent = override.UserAgent
	}

	if override.Concurrency > 0 {
		merged.Concurrency = override.Concurrency
	}
	if override.Timeout > 0 {
		merged.Timeout = override.Timeout
	}

	if override.FailOn != "" {
		merged.FailOn = override.FailOn
	}

	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}

	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}

// convertToAnalysisRequest converts a Config to AnalysisRequest
func (c *ConfigurationLoaderImpl) convertToAnalysisRequest(cfg *config.Config) *domain.AnalysisRequest {
	return &domain.AnalysisRequest{
		// Sources are set by the caller, not from config
		Sources: []string{},

		OutputFormat:        domain.OutputFormat(cfg.Output.Format),
		ShowRecommendations: cfg.Output.ShowRecommendations,
		Color:               cfg.Output.Color,
		OutputDirectory:     cfg.Output.Directory,

		RootSelector: cfg.Analysis.Root,
		Scope:        domain.CountScope(cfg.Analysis.Scope),
		ParserMode:   domain.ParserMode(cfg.Analysis.Parser),

		Render:         cfg.Fetch.Render,
		FetchTimeout:   cfg.FetchTimeout(),
		UserAgent:      cfg.Fetch.UserAgent,
		MaxFetchBytes:  cfg.Fetch.MaxBytes,
		ViewportWidth:  cfg.Fetch.ViewportWidth,
		ViewportHeight: cfg.Fetch.ViewportHeight,

		Concurrency: cfg.Performance.MaxGoroutines,
		Timeout:     cfg.Timeout(),

		FailOn: domain.FailLevel(cfg.Check.FailOn),

		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	}
}
