package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aldervale/rpg-core/internal/campaign"
	"github.com/aldervale/rpg-core/internal/validation"
)

var showPassed bool

var validateCmd = &cobra.Command{
	Use:   "validate <campaign-dir>",
	Short: "Validate a campaign directory",
	Long:  `Validate loads a campaign directory and runs every cross-reference and configuration check, printing the results grouped by category.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&showPassed, "show-passed", false, "also print passed checks")
}

func severityTag(severity validation.Severity) string {
	switch severity {
	case validation.SeverityError:
		return "ERROR"
	case validation.SeverityWarning:
		return "WARN "
	case validation.SeverityInfo:
		return "INFO "
	default:
		return "OK   "
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	loader := campaign.NewLoader()
	result, err := loader.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load campaign: %w", err)
	}
	for _, fe := range result.Errors {
		fmt.Printf("LOAD  [%s] %s: %v\n", fe.Kind, fe.Path, fe.Err)
	}

	results := validation.Validate(result.Data, result.Manifest)

	var lastCategory validation.Category
	for _, r := range results {
		if r.Severity == validation.SeverityPassed && !showPassed {
			continue
		}
		if r.Category != lastCategory {
			fmt.Printf("\n== %s ==\n", r.Category)
			lastCategory = r.Category
		}
		fmt.Printf("%s %s\n", severityTag(r.Severity), r.Message)
	}

	summary := validation.Summarize(results)
	fmt.Printf("\n%d errors, %d warnings, %d info, %d passed\n",
		summary.ErrorCount, summary.WarningCount, summary.InfoCount, summary.PassedCount)

	if summary.HasErrors() {
		return fmt.Errorf("validation failed with %d errors", summary.ErrorCount)
	}
	return nil
}
