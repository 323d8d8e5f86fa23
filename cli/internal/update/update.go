package update

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-version"

	"github.com/dmql/dmql-go/cli/internal/ui"
)

// latestKnownVersion is the newest release this build knows about. A real
// deployment would fetch it from the release API.
const latestKnownVersion = "0.1.0"

// CheckForUpdates compares the running version against the latest release
// and prints an upgrade hint when the running version is behind.
func CheckForUpdates(currentVersion string) error {
	current, err := version.NewVersion(currentVersion)
	if err != nil {
		return fmt.Errorf("invalid version format: %w", err)
	}

	latest, err := version.NewVersion(latestKnownVersion)
	if err != nil {
		return fmt.Errorf("invalid latest version format: %w", err)
	}

	if current.LessThan(latest) {
		ui.PrintWarning("A new version is available!")
		fmt.Printf("Current version: %s\n", currentVersion)
		fmt.Printf("Latest version:  %s\n", latestKnownVersion)
		fmt.Printf("\nUpdate with: go install github.com/dmql/dmql-go/cli@latest\n")
	}
	return nil
}

// GetDownloadURL returns the release download URL for the current platform.
func GetDownloadURL(v string) string {
	return fmt.Sprintf("https://github.com/dmql/dmql-go/releases/download/v%s/dmql-%s-%s",
		v, runtime.GOOS, runtime.GOARCH)
}
