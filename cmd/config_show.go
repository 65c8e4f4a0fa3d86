package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hrimport/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  hrimport config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", viper.ConfigFileUsed())
		}
		fmt.Println("Configuration:")
		for _, line := range describeConfig(*cfg) {
			fmt.Println(line)
		}
	},
}

type configEntry struct {
	Key   string
	Value string
}

// configEntries flattens the effective configuration to dotted keys, map
// entries in key order.
func configEntries(cfg config.Config) []configEntry {
	entries := []configEntry{
		{Key: config.KeyImportStrategy, Value: cfg.Import.Strategy},
		{Key: config.KeyImportStatusFilter, Value: fmt.Sprintf("%t", cfg.Import.StatusFilter)},
		{Key: config.KeyImportActiveStatus, Value: cfg.Import.ActiveStatus},
		{Key: config.KeyImportLegacyMinFields, Value: fmt.Sprintf("%d", cfg.Import.LegacyMinFields)},
		{Key: config.KeyLogLevel, Value: cfg.Log.Level},
	}

	fields := make([]string, 0, len(cfg.Aliases))
	for field := range cfg.Aliases {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		entries = append(entries, configEntry{Key: config.KeyAliases + "." + field, Value: strings.Join(cfg.Aliases[field], ", ")})
	}

	codes := make([]string, 0, len(cfg.LicenseClasses))
	for code := range cfg.LicenseClasses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		entries = append(entries, configEntry{Key: config.KeyLicenseClasses + "." + strings.ToUpper(code), Value: cfg.LicenseClasses[code]})
	}
	return entries
}

// describeConfig renders the effective configuration one key per line.
func describeConfig(cfg config.Config) []string {
	entries := configEntries(cfg)
	lines := make([]string, 0, len(entries)+2)
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("%s: %s", entry.Key, entry.Value))
	}
	lines = append(lines,
		fmt.Sprintf("aliases: %d fields", len(cfg.Aliases)),
		fmt.Sprintf("license_classes: %d codes", len(cfg.LicenseClasses)),
	)
	return lines
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
