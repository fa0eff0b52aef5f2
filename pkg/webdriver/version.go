// Package webdriver stages a browser driver binary matched to the installed
// browser version. It resolves the driver version against a remote release
// index, falls back to an alternate, differently-templated download source
// when the index lookup fails, and downloads, unpacks and stages the binary.
package webdriver

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// versionRE matches a dotted version number inside the browser's
// `--version` output, e.g. "Google Chrome 114.0.5735.90".
var versionRE = regexp.MustCompile(`\d+(?:\.\d+)+`)

// ParseBrowserVersion extracts the full version string and its major
// component from raw `--version` output.
func ParseBrowserVersion(out string) (full, major string, err error) {
	full = versionRE.FindString(out)
	if full == "" {
		return "", "", fmt.Errorf("no version found in output %q", strings.TrimSpace(out))
	}

	major, _, _ = strings.Cut(full, ".")

	return full, major, nil
}

// BrowserVersion runs the installed browser with --version and parses the
// result. The returned major component selects the matching driver release.
func BrowserVersion(ctx context.Context, binPath string) (full, major string, err error) {
	out, err := exec.CommandContext(ctx, binPath, "--version").Output()
	if err != nil {
		return "", "", fmt.Errorf("could not run %q: %w", binPath, err)
	}

	return ParseBrowserVersion(string(out))
}
