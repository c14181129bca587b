package version

// Version is the version of the features CLI, set at build time with
// -ldflags "-X github.com/rxtech-lab/argo-features/internal/version.Version=1.2.3".
// "main" indicates a development build.
var Version = "main"

// GetVersion returns the current version of the CLI.
func GetVersion() string {
	return Version
}
