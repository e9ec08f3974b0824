package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/annocheck/internal/config"
	"github.com/fyrsmithlabs/annocheck/internal/logging"
	"github.com/fyrsmithlabs/annocheck/internal/report"
)

var validateThreshold float64

var validateCmd = &cobra.Command{
	Use:   "validate <file.yaml>",
	Short: "Validate an annotation file",
	Long: `Validate every supporting text entry in an annotation YAML file against
the publications it references, and print a report.

Exits with status 1 when any entry fails validation.

Examples:
  # Validate with the default threshold
  annocheck validate annotations.yaml

  # Require closer fuzzy matches
  annocheck validate --threshold 0.9 annotations.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Float64Var(&validateThreshold, "threshold", 0, "similarity threshold for fuzzy matching (overrides config)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	d, err := buildDeps(func(cfg *config.Config) {
		if validateThreshold != 0 {
			cfg.Validation.Threshold = validateThreshold
		}
	})
	if err != nil {
		return err
	}
	defer logging.Sync(d.logger)

	fmt.Printf("Loading annotation file: %s\n", args[0])

	result, err := d.validate.ValidateFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	report.Write(os.Stdout, result)

	if failed := report.Failed(result.Entries); failed > 0 {
		fmt.Printf("\nValidation failed: %d supporting text entries could not be verified.\n", failed)
		logging.Sync(d.logger)
		os.Exit(1)
	}

	fmt.Println("\nAll supporting text entries validated successfully!")
	return nil
}
