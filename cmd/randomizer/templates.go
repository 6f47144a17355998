package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/randomizer/internal/cli"
)

var templatesCmd = &cobra.Command{
	Use:   "templates [dir]",
	Short: "List the blueprints of a template directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := templatesDir(cmd)
		if !cmd.Flags().Changed("templates") && len(args) > 0 {
			dir = args[0]
		}
		lib, err := cli.OpenLibrary(dir)
		if err != nil {
			return err
		}
		if lib == nil {
			return errors.New("no template directory given")
		}

		infos, err := lib.List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", info.ID, info.Name, info.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
