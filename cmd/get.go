package cmd

import (
	"fmt"
	"log"
	"strings"

	md "github.com/rhaitools/rhaidocs/internal/markdown"
	"github.com/rhaitools/rhaidocs/internal/search"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <rhaidoc://namespace/item>",
	Short: "Read a documentation item by URI",
	Example: `  rhaidocs get rhaidoc://global/my_module/add
  rhaidocs get global/my_module/add
  rhaidocs get rhaidoc://global/print`,
	Args: cobra.ExactArgs(1),
	Run:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) {
	uri := args[0]
	if !strings.HasPrefix(uri, "rhaidoc://") {
		uri = "rhaidoc://" + uri
	}
	namespace, name, err := search.ParseURI(uri)
	if err != nil {
		log.Fatalf("invalid URI: %v", err)
	}

	database := openDB()
	defer database.Close()

	item, err := database.GetItem(namespace, name)
	if err != nil {
		log.Fatalf("looking up item: %v", err)
	}
	if item == nil {
		log.Fatalf("item not found: %s", uri)
	}

	text, err := search.NewSearcher(database).ItemMarkdown(item, namespace)
	if err != nil {
		log.Fatalf("reading doc: %v", err)
	}

	fmt.Print(md.AddFrontMatter(text, map[string]string{
		"uri":       uri,
		"namespace": namespace,
		"kind":      item.Kind,
	}))
}
