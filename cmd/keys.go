package cmd

import (
	"os"

	"github.com/marcus/tabsync/internal/output"
	"github.com/marcus/tabsync/pkg/tabview/keymap"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:     "keys",
	Short:   "Show key bindings, including overrides",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		km := keymap.NewRegistry()
		keymap.RegisterDefaults(km)
		path := keymap.ConfigPath(getBaseDir())
		kcfg, err := keymap.LoadConfig(path)
		if err != nil {
			output.Warning("ignoring %s: %v", path, err)
		} else {
			keymap.ApplyConfig(km, kcfg)
		}

		plain, _ := cmd.Flags().GetBool("plain")
		return output.PrintMarkdown(os.Stdout, "# Key bindings\n\n"+km.MarkdownReference(), plain)
	},
}

var keysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example keymap.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := keymap.ConfigPath(getBaseDir())
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			output.Warning("%s exists (use --force to overwrite)", path)
			return nil
		}
		if err := keymap.SaveConfig(path, keymap.ExampleConfig()); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("wrote %s", path)
		return nil
	},
}

func init() {
	keysCmd.Flags().Bool("plain", false, "print markdown source instead of rendering it")
	keysInitCmd.Flags().Bool("force", false, "overwrite an existing keymap.json")
	keysCmd.AddCommand(keysInitCmd)
	rootCmd.AddCommand(keysCmd)
}
