package config

import (
	"strconv"
	"strings"
)

// ProjectType represents the kind of site being analyzed
type ProjectType string

const (
	ProjectTypeGeneric    ProjectType = "generic"
	ProjectTypeStaticSite ProjectType = "static"
	ProjectTypeSPA        ProjectType = "spa"
	ProjectTypeFixtures   ProjectType = "fixtures"
)

// Strictness represents the check strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds configuration presets for different project types
type ProjectPreset struct {
	IncludePatterns []string
	ExcludePatterns []string
	Parser          string
	Render          bool
}

// StrictnessPreset holds check settings for different strictness levels
type StrictnessPreset struct {
	FailOn              string
	ShowRecommendations bool
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: []string{
				"**/*.html",
				"**/*.htm",
				"**/*.xhtml",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/.git/**",
			},
			Parser: "auto",
		},
		ProjectTypeStaticSite: {
			IncludePatterns: []string{
				"_site/**/*.html",
				"public/**/*.html",
				"dist/**/*.html",
				"out/**/*.html",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/.git/**",
				"**/drafts/**",
			},
			Parser: "html",
		},
		ProjectTypeSPA: {
			IncludePatterns: []string{
				"**/*.html",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/.git/**",
				"**/coverage/**",
			},
			Parser: "html",
			Render: true,
		},
		ProjectTypeFixtures: {
			IncludePatterns: []string{
				"**/*.json",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/package.json",
				"**/tsconfig*.json",
			},
			Parser: "tree",
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			FailOn:              "critical",
			ShowRecommendations: false,
		},
		StrictnessStandard: {
			FailOn:              "critical",
			ShowRecommendations: true,
		},
		StrictnessStrict: {
			FailOn:              "warning",
			ShowRecommendations: true,
		},
	}
}

// resolvePresets looks up both presets, falling back to generic and standard
func resolvePresets(projectType ProjectType, strictness Strictness) (ProjectPreset, StrictnessPreset) {
	preset, ok := GetProjectPresets()[projectType]
	if !ok {
		preset = GetProjectPresets()[ProjectTypeGeneric]
	}
	strict, ok := GetStrictnessPresets()[strictness]
	if !ok {
		strict = GetStrictnessPresets()[StrictnessStandard]
	}
	return preset, strict
}

// PresetConfig returns the default configuration with both presets applied
func PresetConfig(projectType ProjectType, strictness Strictness) *Config {
	preset, strict := resolvePresets(projectType, strictness)

	cfg := DefaultConfig()
	cfg.Analysis.Parser = preset.Parser
	cfg.Analysis.IncludePatterns = preset.IncludePatterns
	cfg.Analysis.ExcludePatterns = preset.ExcludePatterns
	cfg.Fetch.Render = preset.Render
	cfg.Output.ShowRecommendations = strict.ShowRecommendations
	cfg.Check.FailOn = strict.FailOn
	return cfg
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	preset, strict := resolvePresets(projectType, strictness)

	return `# domscan Configuration
# Documentation: https://github.com/ludo-technologies/domscan
#
# Thresholds are fixed:
#   total_node_count     EXCELLENT <= 800   WARNING <= 1400   CRITICAL above
#   max_depth            EXCELLENT <= 12    WARNING <= 25     CRITICAL above
#   largest_child_count  EXCELLENT <= 20    WARNING <= 60     CRITICAL above

# ============================================================================
# ANALYSIS
# ============================================================================
analysis:
  # What the total node count covers:
  #   document - every element of the page (browser console behaviour)
  #   subtree  - only the analysis root and its descendants
  scope: document

  # Analysis root selector: tag, #id, .class or a compound like main#app.content
  # When the page has no <body>, the first top-level element is used.
  root: body

  # Parser: auto (by extension), html (browser tree), source (as written), tree (JSON)
  parser: ` + preset.Parser + `

  # File patterns to include (gitignore syntax)
  include_patterns:
` + formatYAMLList(preset.IncludePatterns) + `

  # File patterns to exclude (gitignore syntax)
  exclude_patterns:
` + formatYAMLList(preset.ExcludePatterns) + `

  # Walk directories recursively
  recursive: true

# ============================================================================
# FETCH (http:// and https:// sources)
# ============================================================================
fetch:
  timeout_seconds: ` + strconv.Itoa(DefaultFetchTimeoutSeconds) + `
  user_agent: "` + DefaultUserAgent + `"

  # Pages larger than this are rejected
  max_bytes: ` + strconv.Itoa(DefaultFetchMaxBytes) + `

  # Load pages in headless Chrome and analyze the rendered DOM
  render: ` + strconv.FormatBool(preset.Render) + `
  viewport_width: ` + strconv.Itoa(DefaultViewportWidth) + `
  viewport_height: ` + strconv.Itoa(DefaultViewportHeight) + `

# ============================================================================
# OUTPUT
# ============================================================================
output:
  # Output format: text, json, yaml, csv, html
  format: text

  # Print optimization suggestions for metrics above EXCELLENT
  show_recommendations: ` + strconv.FormatBool(strict.ShowRecommendations) + `

  # Use colors in terminal output (disable for CI logs)
  color: true

  # Directory for reports written with --output (empty = current directory)
  directory: ""

# ============================================================================
# CHECK (CI gate)
# ============================================================================
check:
  # warning  - fail any page that is not EXCELLENT
  # critical - fail pages that NEED_OPTIMIZATION
  fail_on: ` + strict.FailOn + `

# ============================================================================
# PERFORMANCE
# ============================================================================
performance:
  # Documents analyzed in parallel (0 = number of CPUs)
  max_goroutines: 0

  # Whole-run timeout in seconds (0 = no limit)
  timeout_seconds: ` + strconv.Itoa(DefaultTimeoutSeconds) + `
`
}

// formatYAMLList formats a string slice as an indented YAML block sequence
func formatYAMLList(items []string) string {
	if len(items) == 0 {
		return "    []"
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, `    - "`+item+`"`)
	}
	return strings.Join(lines, "\n")
}
