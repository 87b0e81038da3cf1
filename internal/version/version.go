// Package version checks GitHub releases for a newer tabsync and compares
// semantic versions.
package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const modulePath = "github.com/marcus/tabsync"

// releaseURL is the latest-release endpoint. Tests point it at a local
// server.
var releaseURL = "https://api.github.com/repos/marcus/tabsync/releases/latest"

// Release is the part of a GitHub release response we read.
type Release struct {
	TagName     string    `json:"tag_name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
}

// CheckResult holds the result of a version check.
type CheckResult struct {
	CurrentVersion string
	LatestVersion  string
	UpdateURL      string
	HasUpdate      bool
	Error          error
}

// Check fetches the latest release and compares it with currentVersion.
// Development builds are never checked.
func Check(currentVersion string) CheckResult {
	result := CheckResult{CurrentVersion: currentVersion}
	if IsDevelopmentVersion(currentVersion) {
		return result
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(releaseURL)
	if err != nil {
		result.Error = err
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Errorf("github api: %s", resp.Status)
		return result
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		result.Error = fmt.Errorf("decode release: %w", err)
		return result
	}

	result.LatestVersion = release.TagName
	result.UpdateURL = release.HTMLURL
	result.HasUpdate = isNewer(release.TagName, currentVersion)
	return result
}

// IsDevelopmentVersion reports whether v is a local or untagged build.
func IsDevelopmentVersion(v string) bool {
	switch v {
	case "", "unknown", "dev", "devel":
		return true
	}
	return strings.HasPrefix(v, "devel+")
}

// releaseTag matches tags safe to paste into a shell: v1.2.3 with an
// optional dotted or hyphenated prerelease.
var releaseTag = regexp.MustCompile(`^v?\d+\.\d+\.\d+(-[a-zA-Z0-9]+([.-][a-zA-Z0-9]+)*)?$`)

// UpdateCommand returns the go install command for version, or "" when the
// tag does not look like a release.
func UpdateCommand(version string) string {
	if !releaseTag.MatchString(version) {
		return ""
	}
	return fmt.Sprintf("go install -ldflags \"-X main.Version=%s\" %s@%s", version, modulePath, version)
}
