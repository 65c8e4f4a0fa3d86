package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hrimport/config"
)

var configDeleteYes bool

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by hrimport.

Custom header aliases and license codes stored in the file are listed before the prompt,
since imports fall back to the built-in catalog afterwards. The employee database is not
touched.`,
	Example: `
  # Delete active config
  hrimport config delete

  # Delete config at a custom path without prompting
  hrimport --configFile ./planta-norte.yaml config delete --yes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			return fmt.Errorf("no configuration file found")
		}

		for _, line := range customSettings(readConfigSnapshot(path)) {
			fmt.Fprintln(deletePromptOutput, line)
		}
		if !configDeleteYes {
			confirmed, err := confirmDeletePrompt(deletePromptInput, deletePromptOutput, "configuration file "+path)
			if err != nil {
				return err
			}
			if !confirmed {
				return fmt.Errorf("delete aborted: confirmation was not 'Y'")
			}
		}

		if err := removeConfigFile(path); err != nil {
			return err
		}
		fmt.Printf("Configuration file deleted: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)

	configDeleteCmd.Flags().BoolVarP(&configDeleteYes, "yes", "y", false, "Delete without the confirmation prompt")
}

// customSettings lists the aliases and license codes that only exist in cfg.
func customSettings(cfg *config.Config) []string {
	if cfg == nil {
		return nil
	}
	var lines []string
	for _, entry := range configEntries(*cfg) {
		if isCustomEntry(entry.Key) {
			lines = append(lines, fmt.Sprintf("will drop %s: %s", entry.Key, entry.Value))
		}
	}
	return lines
}

func isCustomEntry(key string) bool {
	for _, prefix := range []string{config.KeyAliases + ".", config.KeyLicenseClasses + "."} {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

func removeConfigFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file not found: %s", path)
		}
		return fmt.Errorf("stat config file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path is a directory: %s", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete config file: %w", err)
	}
	return nil
}
