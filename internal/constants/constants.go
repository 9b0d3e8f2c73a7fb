package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "domscan"

	// ConfigFileName is the default config file name
	ConfigFileName = ".domscan.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "DOMSCAN"

	// ConfigEnvVar points at an explicit config file
	ConfigEnvVar = "DOMSCAN_CONFIG"
)

// ConfigFileNames lists the config files searched in each directory, in order
var ConfigFileNames = []string{
	".domscan.yaml",
	".domscan.yml",
	".domscan.toml",
	".domscan.json",
}

// Document file extensions picked up when walking directories
var DocumentExtensions = []string{".html", ".htm", ".xhtml", ".json"}

// Exit codes for the check command
const (
	ExitOK        = 0
	ExitViolation = 1
	ExitError     = 2
)
