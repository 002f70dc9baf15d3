package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackink-studio/inkwell/internal/core/domain"
)

var (
	searchTopK     int
	searchCategory string
	searchSource   string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the studio knowledge base",
	Long: `Performs hybrid search across the ingested knowledge base.
Combines semantic (vector) similarity with keyword matching.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "n", 0, "maximum number of results (default 5)")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "restrict to one knowledge category")
	searchCmd.Flags().StringVar(&searchSource, "source", "", "restrict to one document source")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if retrieverSvc == nil {
		return errors.New("retrieval not configured: set embedding.provider and vectorstore.provider")
	}

	opts := domain.QueryOptions{TopK: searchTopK}
	filter := domain.MetadataFilter{}
	if searchCategory != "" {
		filter["category"] = searchCategory
	}
	if searchSource != "" {
		filter["source"] = searchSource
	}
	if len(filter) > 0 {
		opts.Filter = filter
	}

	results, err := retrieverSvc.Search(context.Background(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchList(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RetrievalResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchList(cmd *cobra.Command, results []domain.RetrievalResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, results[i].Source, results[i].Score)
		if results[i].Category != "" {
			cmd.Printf("      Category: %s\n", results[i].Category)
		}
		content := results[i].Content
		if len(content) > 200 {
			content = content[:200] + "..."
		}
		cmd.Printf("      %s\n", content)
		cmd.Println()
	}
	return nil
}
