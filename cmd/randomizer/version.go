package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/randomizer"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of randomizer",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "randomizer version %s\n", strings.TrimSpace(randomizer.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
