package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/randomizer"
	"github.com/aretw0/randomizer/internal/cli"
	"github.com/aretw0/randomizer/internal/presentation/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo [name]",
	Short: "Run a built-in demo",
	Long:  "Runs one of the built-in demos. Without a name, lists them.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			tui.PrintBanner(out)
			for _, d := range cli.Demos {
				fmt.Fprintf(out, "  %-16s %s\n", d.Name, d.Description)
			}
			return nil
		}

		d, ok := cli.FindDemo(args[0])
		if !ok {
			names := make([]string, len(cli.Demos))
			for i, d := range cli.Demos {
				names[i] = d.Name
			}
			return fmt.Errorf("unknown demo %q (want one of %s)", args[0], strings.Join(names, ", "))
		}

		seed, _ := cmd.Flags().GetString("seed")
		return cli.RunDemo(d, seed, out, randomizer.WithLogger(logger))
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringP("seed", "s", "", "Seed overriding the demo seed")
}
