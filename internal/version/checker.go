package version

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// UpdateAvailableMsg is sent when a newer release exists.
type UpdateAvailableMsg struct {
	CurrentVersion string
	LatestVersion  string
	UpdateCommand  string
}

// CheckAsync returns a command that checks for an update, preferring a
// fresh cached result. It yields nil when up to date or on failure.
func CheckAsync(currentVersion string) tea.Cmd {
	return func() tea.Msg {
		if IsDevelopmentVersion(currentVersion) {
			return nil
		}
		if cached, err := LoadCache(); err == nil && IsCacheValid(cached, currentVersion) {
			if cached.HasUpdate {
				return updateMsg(currentVersion, cached.LatestVersion)
			}
			return nil
		}

		result := Check(currentVersion)
		// Network failures are not cached so the next launch retries.
		if result.Error == nil {
			_ = SaveCache(&CacheEntry{
				LatestVersion:  result.LatestVersion,
				CurrentVersion: currentVersion,
				CheckedAt:      time.Now(),
				HasUpdate:      result.HasUpdate,
			})
		}
		if result.HasUpdate {
			return updateMsg(currentVersion, result.LatestVersion)
		}
		return nil
	}
}

func updateMsg(current, latest string) UpdateAvailableMsg {
	return UpdateAvailableMsg{
		CurrentVersion: current,
		LatestVersion:  latest,
		UpdateCommand:  UpdateCommand(latest),
	}
}
