package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/randomizer/internal/cli"
	"github.com/aretw0/randomizer/pkg/domain"
	"github.com/aretw0/randomizer/pkg/registry"
	"github.com/aretw0/randomizer/pkg/runner"
)

var generateCmd = &cobra.Command{
	Use:   "generate [blueprint]",
	Short: "Draw values from a blueprint",
	Long: `Compiles a blueprint file (or a template from the template directory)
and prints the values it produces. Use "-" to read the blueprint from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		templateID, _ := cmd.Flags().GetString("template")
		if (len(args) == 0) == (templateID == "") {
			return errors.New("pass either a blueprint file or --template")
		}

		storeRef, _ := cmd.Flags().GetString("store")
		if storeRef == "" {
			storeRef = cfg.Store
		}
		save, _ := cmd.Flags().GetBool("save")
		if save && storeRef == "" {
			return errors.New("--save needs --store")
		}

		store, closer, err := cli.OpenStore(cmd.Context(), storeRef, cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		source, _ := cmd.Flags().GetString("source")
		r, err := newRunner(store, source, nil)
		if err != nil {
			return err
		}

		opts := runner.RunOptions{Seed: cfg.Seed, Save: save}
		if seed, _ := cmd.Flags().GetString("seed"); seed != "" {
			opts.Seed = seed
		}
		opts.Count, _ = cmd.Flags().GetInt("count")
		opts.Workers, _ = cmd.Flags().GetInt("workers")

		var fixture *domain.Fixture
		if templateID != "" {
			lib, err := cli.OpenLibrary(templatesDir(cmd))
			if err != nil {
				return err
			}
			if lib == nil {
				return errors.New("--template needs --templates or RANDOMIZER_TEMPLATES")
			}
			fixture, err = r.RunTemplate(cmd.Context(), lib, templateID, opts)
			if err != nil {
				return err
			}
		} else {
			doc, err := readBlueprint(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			fixture, err = r.RunDocument(cmd.Context(), doc, opts)
			if err != nil {
				return err
			}
		}

		out := cli.OutputOptions{}
		out.Format, _ = cmd.Flags().GetString("format")
		out.ValuesOnly, _ = cmd.Flags().GetBool("values-only")
		out.Children, _ = cmd.Flags().GetString("children")
		out.Label, _ = cmd.Flags().GetString("label")
		return cli.WriteFixture(cmd.OutOrStdout(), fixture, out)
	},
}

func readBlueprint(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint: %w", err)
	}
	return doc, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("template", "t", "", "Template ID from the template directory")
	generateCmd.Flags().StringP("seed", "s", "", "Seed overriding the blueprint seed")
	generateCmd.Flags().IntP("count", "n", 0, "Number of values (default: blueprint count)")
	generateCmd.Flags().IntP("workers", "w", 0, "Parallel workers; output depends on the worker count")
	generateCmd.Flags().StringP("format", "f", cli.FormatJSON, "Output format: json, yaml, markdown or mermaid")
	generateCmd.Flags().Bool("values-only", false, "Print only the values, without the fixture envelope")
	generateCmd.Flags().String("children", "", "Child list key for mermaid output")
	generateCmd.Flags().String("label", "", "Label key for mermaid output")
	generateCmd.Flags().String("store", "", "Fixture store: memory, file[:dir] or redis[:addr]")
	generateCmd.Flags().Bool("save", false, "Persist the fixture in the store")
	generateCmd.Flags().String("source", "pcg", "Bit-stream source: "+strings.Join(registry.Default().Names(), " or "))
}
