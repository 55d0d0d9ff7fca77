package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rcupdate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rcupdate version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
