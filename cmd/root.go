package cmd

import (
	"fmt"
	"strings"

	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/ClemoAcevedo/vaxseries/internal/provenance"
	"github.com/ClemoAcevedo/vaxseries/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "vaxseries",
	Short:              "Explore and repair the Chile vaccination time series.",
	Long:               `Vaxseries diagnoses the artificial jump in the preprocessed vaccination CSV and writes corrected variants for the downstream chart.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".vaxseries") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("VAXSERIES")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("value-column", contract.DefaultValueColumn)
	viper.SetDefault("around", contract.DefaultAround)
	viper.SetDefault("band", contract.DefaultBand)
	viper.SetDefault("lead-days", contract.DefaultLeadDays)
	viper.SetDefault("spacing", schema.LinearSpacing)
	viper.SetDefault("population", contract.DefaultPopulation)
	viper.SetDefault("epi-year", contract.DefaultEpiYear)
	viper.SetDefault("region", contract.DefaultDoseFilter["Region"])
	viper.SetDefault("dose", contract.DefaultDoseFilter["Dosis"])
	viper.SetDefault("window-start", contract.DefaultWindowStart)
	viper.SetDefault("window-end", contract.DefaultWindowEnd)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("color", "yes")
	viper.SetDefault("provenance", "sqlite")
	viper.SetDefault("provenance-db", "")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle the positional argument (which Viper doesn't do).
	if len(args) == 1 {
		input.DataPathStr = args[0]
	}

	// 4. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	return contract.ProcessAndValidate(cfg, input)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".vaxseries")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// openProvenanceStore opens the patch audit store when enabled. A nil store
// means provenance tracking is off and fix commands skip recording.
func openProvenanceStore() (contract.ProvenanceStore, error) {
	if !cfg.ProvenanceEnabled {
		return nil, nil
	}
	path := cfg.ProvenanceDB
	if path == "" {
		path = contract.GetProvenanceDBFilePath()
	}
	store, err := provenance.NewStore(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open provenance store: %w", err)
	}
	return store, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
