package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aldervale/rpg-core/internal/campaign"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <campaign-dir>",
	Short: "Show a campaign's manifest and content counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	loader := campaign.NewLoader()
	result, err := loader.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load campaign: %w", err)
	}

	m := result.Manifest
	fmt.Printf("%s (%s) v%s by %s\n", m.Name, m.ID, m.Version, m.Author)
	if m.Description != "" {
		fmt.Println(m.Description)
	}
	fmt.Printf("starting map: %s  party: %d  roster: %d  levels: %d-%d  difficulty: %s\n",
		m.StartingMap, m.MaxPartySize, m.MaxRosterSize, m.StartingLevel, m.MaxLevel, m.Difficulty)

	counts := result.Store.Counts()
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	fmt.Println("\ncontent:")
	for _, kind := range kinds {
		fmt.Printf("  %-15s %d\n", kind, counts[kind])
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\n%d files failed to load:\n", len(result.Errors))
		for _, fe := range result.Errors {
			fmt.Printf("  [%s] %s: %v\n", fe.Kind, fe.Path, fe.Err)
		}
	}
	return nil
}
