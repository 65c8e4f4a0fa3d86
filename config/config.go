package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"hrimport/importer"
)

const (
	KeyImportStrategy        = "import.strategy"
	KeyImportStatusFilter    = "import.status_filter"
	KeyImportActiveStatus    = "import.active_status"
	KeyImportLegacyMinFields = "import.legacy_min_fields"
	KeyLogLevel              = "log.level"
	KeyAliases               = "aliases"
	KeyLicenseClasses        = "license_classes"
)

type Config struct {
	Import         ImportConfig        `mapstructure:"import"`
	Log            LogConfig           `mapstructure:"log"`
	Aliases        map[string][]string `mapstructure:"aliases"`
	LicenseClasses map[string]string   `mapstructure:"license_classes" validate:"dive,keys,required,endkeys,required"`
}

type ImportConfig struct {
	Strategy        string `mapstructure:"strategy" validate:"omitempty,oneof=structured legacy"`
	StatusFilter    bool   `mapstructure:"status_filter"`
	ActiveStatus    string `mapstructure:"active_status" validate:"required"`
	LegacyMinFields int    `mapstructure:"legacy_min_fields" validate:"gte=1,lte=25"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
}

// NormalizerOptions translates the import settings for importer.NewNormalizer.
// License codes are upper-cased since viper lowercases map keys.
func (c Config) NormalizerOptions() importer.NormalizerOptions {
	classes := make(map[string]string, len(c.LicenseClasses))
	for code, class := range c.LicenseClasses {
		classes[strings.ToUpper(code)] = class
	}
	return importer.NormalizerOptions{
		StatusFilter:   c.Import.StatusFilter,
		ActiveStatus:   c.Import.ActiveStatus,
		LicenseClasses: classes,
	}
}

// LegacyOptions translates the import settings for the legacy text reader.
func (c Config) LegacyOptions() importer.LegacyOptions {
	return importer.LegacyOptions{
		StatusToken: c.Import.ActiveStatus,
		MinFields:   c.Import.LegacyMinFields,
	}
}

// Catalog returns the employee catalog extended with the configured aliases.
func (c Config) Catalog() []importer.FieldDefinition {
	return importer.WithAliases(importer.EmployeeCatalog(), c.Aliases)
}

// LogLevel returns the configured logrus level, info when unset.
func (c Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(c.Log.Level))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# hrimport configuration
import:
  # structured: first sheet, first row as headers (xlsx, xls, csv)
  # legacy: tab-delimited text, one employee per line tagged with active_status
  strategy: structured
  status_filter: true
  active_status: "ACTIVO"
  legacy_min_fields: 20

log:
  level: info

# Extra header aliases per field, e.g.
# aliases:
#   national_id: ["nro doc"]
aliases: {}

# Extra driver's license codes, e.g.
# license_classes:
#   B3: clase-b
license_classes: {}
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateAliases(cfg.Aliases); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyImportStrategy, string(importer.StrategyStructured))
	v.SetDefault(KeyImportStatusFilter, true)
	v.SetDefault(KeyImportActiveStatus, importer.DefaultStatusToken)
	v.SetDefault(KeyImportLegacyMinFields, importer.DefaultLegacyMinFields)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyAliases, map[string][]string{})
	v.SetDefault(KeyLicenseClasses, map[string]string{})
}

func validateAliases(aliases map[string][]string) error {
	keys := make([]string, 0, len(aliases))
	for key := range aliases {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !importer.IsCatalogKey(key) {
			return fmt.Errorf("validation failed: aliases.%s is not a known field", key)
		}
		for i, alias := range aliases[key] {
			if strings.TrimSpace(alias) == "" {
				return fmt.Errorf("validation failed: aliases.%s[%d] is empty", key, i)
			}
		}
	}
	return nil
}
