package cmd

import (
	"fmt"
	"log"

	"github.com/rhaitools/rhaidocs/internal/cas"
	"github.com/rhaitools/rhaidocs/internal/db"
	"github.com/rhaitools/rhaidocs/internal/docs"
	"github.com/rhaitools/rhaidocs/internal/render"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index <metadata.json>",
	Short: "Index engine metadata for search and MCP serving",
	Long: `Build the documentation model from exported metadata and store every
item in the local index: rendered markdown goes to the content store,
names and signatures to the search database. Reindexing a namespace
replaces its items.`,
	Example: `  rhaidocs index api.json
  rhaidocs index --include-standard api.json
  my-engine --export-metadata | rhaidocs index -`,
	Args: cobra.ExactArgs(1),
	Run:  runIndex,
}

var indexIncludeStandard bool

func init() {
	indexCmd.Flags().BoolVar(&indexIncludeStandard, "include-standard", false, "index the engine's standard builtins")

	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) {
	data := readInput(args[0])

	root, err := docs.Build(data, docs.Options{
		Order:           docs.OrderAlphabetical,
		IncludeStandard: indexIncludeStandard,
	})
	if err != nil {
		log.Fatalf("building documentation model: %v", err)
	}

	database := openDB()
	defer database.Close()

	total := 0
	err = root.Walk(func(m *docs.Module) error {
		mod, err := database.UpsertModule(m.Namespace, m.Name, m.Docs)
		if err != nil {
			return fmt.Errorf("upserting module %s: %w", m.Namespace, err)
		}
		if err := database.DeleteItemsByModule(mod.ID); err != nil {
			return fmt.Errorf("clearing module %s: %w", m.Namespace, err)
		}

		for _, item := range m.Items {
			hash, err := cas.Write(render.ItemDoc(item))
			if err != nil {
				return fmt.Errorf("storing doc for %s: %w", item.Name(), err)
			}

			var kind, signature string
			switch it := item.(type) {
			case *docs.FunctionItem:
				kind = it.Kind
				signature = it.Signatures()
			case *docs.TypeItem:
				kind = "type"
			}

			err = database.InsertItem(&db.Item{
				ModuleID:    mod.ID,
				Name:        item.Name(),
				Kind:        kind,
				HeadingID:   item.HeadingID(),
				Signature:   signature,
				Doc:         render.SectionText(item),
				ContentHash: hash,
			})
			if err != nil {
				return fmt.Errorf("indexing %s in %s: %w", item.Name(), m.Namespace, err)
			}
		}

		fmt.Printf("  %s: %d items indexed\n", m.Namespace, len(m.Items))
		total += len(m.Items)
		return nil
	})
	if err != nil {
		log.Fatalf("indexing failed: %v", err)
	}

	fmt.Printf("%d items across the tree\n", total)
}
