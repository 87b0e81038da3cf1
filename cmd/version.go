package cmd

import (
	"fmt"
	"time"

	"github.com/marcus/tabsync/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show version and check for updates",
	GroupID: "system",
	Run: func(cmd *cobra.Command, args []string) {
		short, _ := cmd.Flags().GetBool("short")
		if short {
			fmt.Print(versionStr)
			return
		}

		checkUpdates, _ := cmd.Flags().GetBool("check")

		fmt.Printf("tabsync version %s\n", versionStr)

		// Skip check if dev version or --check=false
		if !checkUpdates || version.IsDevelopmentVersion(versionStr) {
			return
		}

		if cached, err := version.LoadCache(); err == nil && version.IsCacheValid(cached, versionStr) {
			if cached.HasUpdate {
				printUpdate(cached.LatestVersion)
			}
			return
		}

		result := version.Check(versionStr)
		if result.Error != nil {
			// Network errors are not worth reporting here
			return
		}
		_ = version.SaveCache(&version.CacheEntry{
			LatestVersion:  result.LatestVersion,
			CurrentVersion: versionStr,
			CheckedAt:      time.Now(),
			HasUpdate:      result.HasUpdate,
		})
		if result.HasUpdate {
			printUpdate(result.LatestVersion)
		}
	},
}

func printUpdate(latest string) {
	fmt.Printf("\nUpdate available: %s → %s\n", versionStr, latest)
	if cmd := version.UpdateCommand(latest); cmd != "" {
		fmt.Printf("Run: %s\n", cmd)
	}
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the version")
	versionCmd.Flags().Bool("check", true, "check for a newer release")
	rootCmd.AddCommand(versionCmd)
}
