package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"hrimport/config"
)

func TestConfigFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name   string
		flag   string
		loaded string
		want   string
	}{
		{name: "flag wins", flag: "./planta.yaml", loaded: "/etc/hrimport.yaml", want: "./planta.yaml"},
		{name: "loaded file", loaded: "/etc/hrimport.yaml", want: "/etc/hrimport.yaml"},
		{name: "home default", want: filepath.Join(home, ".hrimport.yaml")},
	}
	for _, tt := range tests {
		got, err := configFilePath(tt.flag, tt.loaded)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("%s: want %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestEnsureExampleConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "hrimport.yaml")
	created, err := ensureExampleConfig(path)
	if err != nil || !created {
		t.Fatalf("expected example config to be created, created=%v err=%v", created, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %o", info.Mode().Perm())
	}
	if cfg := readConfigSnapshot(path); cfg == nil || cfg.Import.ActiveStatus != "ACTIVO" {
		t.Fatalf("expected the example to validate, got %+v", cfg)
	}

	created, err = ensureExampleConfig(path)
	if err != nil || created {
		t.Fatalf("existing config must be kept, created=%v err=%v", created, err)
	}
}

func TestReadConfigSnapshot_InvalidOrMissingIsNil(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("import:\n  strategy: magic\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if cfg := readConfigSnapshot(invalid); cfg != nil {
		t.Fatalf("expected nil for invalid config, got %+v", cfg)
	}
	if cfg := readConfigSnapshot(filepath.Join(dir, "missing.yaml")); cfg != nil {
		t.Fatalf("expected nil for missing config, got %+v", cfg)
	}
}

func TestEditorCommand(t *testing.T) {
	t.Parallel()

	if got := editorFromEnv("", ""); got != "vi" {
		t.Fatalf("expected vi fallback, got %q", got)
	}
	if got := editorFromEnv("  ", "nano"); got != "nano" {
		t.Fatalf("expected $EDITOR when $VISUAL is blank, got %q", got)
	}

	cmd, err := editorCommand(editorFromEnv("code --wait", "nano"), "/tmp/hrimport.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"code", "--wait", "/tmp/hrimport.yaml"}; !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("want args %v, got %v", want, cmd.Args)
	}

	if _, err := editorCommand("   ", "/tmp/hrimport.yaml"); err == nil {
		t.Fatal("expected error for empty editor")
	}
}

func TestReviewConfigEdit_ReportsChangedSettings(t *testing.T) {
	t.Parallel()

	before, err := config.ValidateYAMLContent([]byte(config.ExampleYAML()))
	if err != nil {
		t.Fatalf("validate example: %v", err)
	}
	edited := []byte(`import:
  strategy: legacy
  active_status: "VIGENTE"
aliases:
  national_id: ["nro doc"]
license_classes:
  B3: clase-b
`)

	report, err := reviewConfigEdit(before, edited)
	if err != nil {
		t.Fatalf("review edit: %v", err)
	}

	want := []string{
		"changed import.strategy: structured -> legacy",
		"changed import.active_status: ACTIVO -> VIGENTE",
		"added aliases.national_id: nro doc",
		"added license_classes.B3: clase-b",
	}
	if !reflect.DeepEqual(report, want) {
		t.Fatalf("want report\n%v\ngot\n%v", want, report)
	}
}

func TestReviewConfigEdit_UnchangedAndInvalid(t *testing.T) {
	t.Parallel()

	before, err := config.ValidateYAMLContent([]byte(config.ExampleYAML()))
	if err != nil {
		t.Fatalf("validate example: %v", err)
	}

	report, err := reviewConfigEdit(before, []byte(config.ExampleYAML()))
	if err != nil {
		t.Fatalf("review edit: %v", err)
	}
	if !reflect.DeepEqual(report, []string{"No settings changed."}) {
		t.Fatalf("unexpected report %v", report)
	}

	if _, err := reviewConfigEdit(before, []byte("aliases:\n  salary: [\"sueldo\"]\n")); err == nil ||
		!strings.Contains(err.Error(), "aliases.salary") {
		t.Fatalf("expected unknown alias field to be rejected, got %v", err)
	}
}

func TestReviewConfigEdit_RemovedSettings(t *testing.T) {
	t.Parallel()

	before, err := config.ValidateYAMLContent([]byte("aliases:\n  phone: [\"movil\"]\n"))
	if err != nil {
		t.Fatalf("validate config: %v", err)
	}

	report, err := reviewConfigEdit(before, []byte("aliases: {}\n"))
	if err != nil {
		t.Fatalf("review edit: %v", err)
	}
	if !reflect.DeepEqual(report, []string{"removed aliases.phone"}) {
		t.Fatalf("unexpected report %v", report)
	}
}

func TestCatalogWarnings(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Aliases: map[string][]string{
			"department":  {"Estado", "planta"},
			"national_id": {"DNI"},
		},
		LicenseClasses: map[string]string{"b1": "clase-c", "b3": "clase-b", "a1": "clase-a"},
	}

	want := []string{
		`warning: aliases.department: "Estado" already names status`,
		"warning: license_classes.B1: clase-c replaces built-in clase-b",
	}
	if got := catalogWarnings(cfg); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestCustomSettingsAndRemoveConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hrimport.yaml")
	content := "aliases:\n  phone: [\"movil\"]\nlicense_classes:\n  B3: clase-b\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	want := []string{"will drop aliases.phone: movil", "will drop license_classes.B3: clase-b"}
	if got := customSettings(readConfigSnapshot(path)); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	if got := customSettings(nil); got != nil {
		t.Fatalf("expected no settings for a missing config, got %v", got)
	}

	if err := removeConfigFile(path); err != nil {
		t.Fatalf("remove config: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected config file to be gone, stat err=%v", err)
	}
	if err := removeConfigFile(path); err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if err := removeConfigFile(filepath.Dir(path)); err == nil || !strings.Contains(err.Error(), "is a directory") {
		t.Fatalf("expected directory error, got %v", err)
	}
}
