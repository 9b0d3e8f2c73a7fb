package version

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/domscan/internal/constants"
)

// Version information (set via ldflags during build)
var (
	// Version is the current version of domscan
	Version = "dev"

	// Commit is the git commit hash
	Commit = "unknown"

	// Date is the build date
	Date = "unknown"

	// BuiltBy indicates how the binary was built
	BuiltBy = "source"
)

// GetVersion returns the current version
func GetVersion() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// Short returns the version without a leading "v"
func Short() string {
	return strings.TrimPrefix(GetVersion(), "v")
}

// GetFullVersion returns the full version information
func GetFullVersion() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, by: %s)",
		constants.ToolName, GetVersion(), Commit, Date, BuiltBy)
}

// GetCommit returns the git commit hash
func GetCommit() string {
	return Commit
}

// GetDate returns the build date
func GetDate() string {
	return Date
}

// GetBuiltBy returns how the binary was built
func GetBuiltBy() string {
	return BuiltBy
}
