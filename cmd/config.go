package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hrimport configuration file values.",
	Long: `Create, edit, display, and delete the hrimport configuration file.

The configuration stores the import settings and the field vocabulary:
- import.strategy / import.status_filter / import.active_status / import.legacy_min_fields
- log.level
- aliases.<field_key>: extra header aliases per employee field
- license_classes.<code>: extra driver's license codes`,
	Example: `
  # Create default config in $HOME/.hrimport.yaml
  hrimport config create

  # Show active config and source file
  hrimport config show

  # Open active config in editor (creates example if missing)
  hrimport config edit

  # Delete active config file
  hrimport config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
