package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/randomizer"
	"github.com/aretw0/randomizer/internal/compiler"
	"github.com/aretw0/randomizer/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <blueprint>...",
	Short: "Check blueprints without drawing values",
	Long:  `Parses, validates and compiles each blueprint and reports every problem found.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			if err := validateFile(cmd, path); err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d blueprints are invalid", failed, len(args))
		}
		return nil
	},
}

func validateFile(cmd *cobra.Command, path string) error {
	doc, err := readBlueprint(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	bp, err := schema.Parse(doc)
	if err != nil {
		return err
	}

	seed := bp.Seed
	if seed == "" {
		seed = "validate"
	}
	s, err := randomizer.New(seed)
	if err != nil {
		return err
	}
	_, err = compiler.New(s).Compile(bp.Root)
	return err
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
