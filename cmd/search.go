package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/rhaitools/rhaidocs/internal/search"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed documentation",
	Example: `  rhaidocs search "push array"
  rhaidocs search --namespace global/my_module add
  rhaidocs search --limit 5 --json iterator`,
	Args: cobra.ExactArgs(1),
	Run:  runSearch,
}

var (
	searchNamespaces []string
	searchLimit      int
	searchJSON       bool
)

func init() {
	searchCmd.Flags().StringSliceVar(&searchNamespaces, "namespace", nil, "filter to specific module namespaces (repeatable)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "max results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	database := openDB()
	defer database.Close()

	results, err := search.NewSearcher(database).Search(args[0], searchNamespaces, searchLimit)
	if err != nil {
		log.Fatalf("search failed: %v", err)
	}

	if searchJSON {
		out, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(out))
		return
	}

	if len(results) == 0 {
		fmt.Println("no results")
		return
	}

	for i, r := range results {
		fmt.Printf("%d. [%d] %s %s (%s)\n", i+1, r.Score, r.Kind, r.Name, r.URI)
		if r.Snippet != "" {
			fmt.Printf("   %s\n", r.Snippet)
		}
	}
}
