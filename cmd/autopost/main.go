// Copyright Electionwire Media, 2026. All rights reserved.

// Package main is the entry point for the autopost CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/electionwire/autopost/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the autopost CLI.
var rootCmd = &cobra.Command{
	Use:   "autopost",
	Short: "Unattended candidate-profile publishing for WordPress",
	Long: `autopost researches one election candidate with a generative-AI backend,
validates the result against the live WordPress index, and publishes the
profile as a new post. It is designed to run unattended from cron: one
invocation produces at most one post, duplicate topics are skipped, and
every run is journaled.

Use "autopost run" for a full automation run, "autopost store" to inspect
the WordPress index, and "autopost journal" to review past runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./autopost.yaml or ~/.config/autopost/config.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "WordPress site root URL")
	rootCmd.PersistentFlags().String("username", "", "WordPress account for API writes")
	rootCmd.PersistentFlags().String("app-password", "", "WordPress application password (or WORDPRESS_APP_PASSWORD)")
	rootCmd.PersistentFlags().String("candidate-meta-key", "", "post meta key holding the candidate name")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("autopost")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "autopost"))
		}
	}

	viper.SetEnvPrefix("AUTOPOST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
