// Copyright Electionwire Media, 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of autopost",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("autopost %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
