package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hrimport/config"
	"hrimport/importer"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the active config and review what changed.",
	Long: `Open the active hrimport config file in $VISUAL, $EDITOR or vi.

A missing config file is created from the example template first. After the editor exits
the file is validated, the changed settings are listed, and header aliases or license
codes that clash with the built-in employee catalog are reported as warnings.`,
	Example: `
  # Edit active config
  hrimport config edit

  # Edit a roster-specific config
  hrimport --configFile ./planta-norte.yaml config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		created, err := ensureExampleConfig(path)
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("No config file found. Created example config at: %s\n", path)
		}
		before := readConfigSnapshot(path)

		editor, err := editorCommand(editorFromEnv(os.Getenv("VISUAL"), os.Getenv("EDITOR")), path)
		if err != nil {
			return err
		}
		editor.Stdin, editor.Stdout, editor.Stderr = os.Stdin, os.Stdout, os.Stderr
		if err := editor.Run(); err != nil {
			return fmt.Errorf("run editor: %w", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read edited config: %w", err)
		}
		report, err := reviewConfigEdit(before, content)
		if err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}

		fmt.Printf("Configuration saved and validated: %s\n", path)
		for _, line := range report {
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configEditCmd)
}

// configFilePath picks --configFile, then the file viper loaded, then
// $HOME/.hrimport.yaml.
func configFilePath(flagValue, loaded string) (string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue, nil
	}
	if strings.TrimSpace(loaded) != "" {
		return loaded, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".hrimport.yaml"), nil
}

func ensureExampleConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return false, fmt.Errorf("write example config: %w", err)
	}
	return true, nil
}

// readConfigSnapshot returns the validated config stored at path, or nil when
// the file is missing or invalid.
func readConfigSnapshot(path string) *config.Config {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return nil
	}
	return cfg
}

func editorFromEnv(visual, editor string) string {
	for _, value := range []string{visual, editor} {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return "vi"
}

func editorCommand(editor, path string) (*exec.Cmd, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return exec.Command(fields[0], append(fields[1:], path)...), nil
}

// reviewConfigEdit validates edited content and reports the settings that
// differ from before, followed by catalog warnings. A nil before lists every
// setting as added.
func reviewConfigEdit(before *config.Config, content []byte) ([]string, error) {
	after, err := config.ValidateYAMLContent(content)
	if err != nil {
		return nil, err
	}

	var previous []configEntry
	if before != nil {
		previous = configEntries(*before)
	}
	report := configChanges(previous, configEntries(*after))
	if len(report) == 0 {
		report = append(report, "No settings changed.")
	}
	return append(report, catalogWarnings(*after)...), nil
}

func configChanges(before, after []configEntry) []string {
	old := make(map[string]string, len(before))
	for _, entry := range before {
		old[entry.Key] = entry.Value
	}

	var changes []string
	for _, entry := range after {
		previous, ok := old[entry.Key]
		delete(old, entry.Key)
		switch {
		case !ok:
			changes = append(changes, fmt.Sprintf("added %s: %s", entry.Key, entry.Value))
		case previous != entry.Value:
			changes = append(changes, fmt.Sprintf("changed %s: %s -> %s", entry.Key, previous, entry.Value))
		}
	}

	removed := make([]string, 0, len(old))
	for key := range old {
		removed = append(removed, key)
	}
	sort.Strings(removed)
	for _, key := range removed {
		changes = append(changes, "removed "+key)
	}
	return changes
}

// catalogWarnings flags configured aliases that another field already answers
// to, and license codes that remap a built-in code to a different class.
func catalogWarnings(cfg config.Config) []string {
	catalog := importer.EmployeeCatalog()
	var warnings []string

	fields := make([]string, 0, len(cfg.Aliases))
	for field := range cfg.Aliases {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, alias := range cfg.Aliases[field] {
			if owner, ok := importer.AliasOwner(catalog, alias); ok && owner != field {
				warnings = append(warnings, fmt.Sprintf("warning: aliases.%s: %q already names %s", field, alias, owner))
			}
		}
	}

	codes := make([]string, 0, len(cfg.LicenseClasses))
	for code := range cfg.LicenseClasses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		upper := strings.ToUpper(strings.TrimSpace(code))
		builtin, ok := importer.DefaultLicenseClasses[upper]
		if ok && builtin != cfg.LicenseClasses[code] {
			warnings = append(warnings, fmt.Sprintf("warning: license_classes.%s: %s replaces built-in %s", upper, cfg.LicenseClasses[code], builtin))
		}
	}
	return warnings
}
