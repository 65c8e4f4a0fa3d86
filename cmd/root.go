/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hrimport/config"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hrimport",
	Short: "Import employee rosters from spreadsheets into a local employee store.",
	Long: `
**********************************************
*              HR IMPORT                     *
**********************************************

This CLI reads employee rosters from heterogeneous spreadsheets, maps their columns to the
canonical employee fields, normalizes every row, drops duplicates by national ID and stores
the new employees in a local SQLite database.

Supported input formats:
- Excel: .xlsx, .xlsm, .xls
- CSV: .csv
- Legacy tab-delimited text extracts: .txt, .tsv (strategy "legacy")
`,
	Example: `
  # Create configuration file
  hrimport config create

  # Import a roster, resolving columns from its headers
  hrimport import -i Nomina2026.xlsx

  # Bind columns interactively and save the mapping
  hrimport map -i Nomina2026.xlsx --save ./nomina.mapping.yaml

  # Import with a saved mapping
  hrimport import -i Nomina2026.xlsx --mapping ./nomina.mapping.yaml

  # Import a legacy text extract
  hrimport import -i legajos.txt --strategy legacy

  # Export the stored roster
  hrimport export --mode roster --output ./roster.xlsx

  # Serve the import API locally
  hrimport serve
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := configureLogging(cmd); err != nil {
			return err
		}
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.hrimport.yaml, then ./.hrimport.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override: trace|debug|info|warn|error")
}

func requiresConfig(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	switch cmd.Name() {
	case "import", "map", "serve":
		return true
	default:
		return false
	}
}

// configureLogging sends logrus output to stderr at the level given by
// --log-level, falling back to log.level from the config.
func configureLogging(cmd *cobra.Command) error {
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	raw := strings.TrimSpace(logLevel)
	if raw == "" {
		raw = viper.GetString(config.KeyLogLevel)
	}
	if raw == "" {
		logrus.SetLevel(logrus.InfoLevel)
		return nil
	}

	level, err := logrus.ParseLevel(raw)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", raw, err)
	}
	logrus.SetLevel(level)
	return nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".hrimport" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hrimport")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: hrimport config create")
	}
}

// commandLogger returns the logger entry commands hand to the import pipeline.
func commandLogger(cmd *cobra.Command) *logrus.Entry {
	return logrus.WithField("command", cmd.Name())
}
