package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/rhaitools/rhaidocs/internal/cas"
	"github.com/rhaitools/rhaidocs/internal/db"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show indexed modules and content store size",
	Run:   runStatus,
}

var statusJSON bool

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Drop the documentation index and content store",
	Run:   runClearCache,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(clearCacheCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	database := openDB()
	defer database.Close()

	stats, err := database.ListModuleStats()
	if err != nil {
		slog.Error("failed to list modules", "error", err)
		os.Exit(1)
	}
	blobs, size, err := cas.Stats()
	if err != nil {
		slog.Error("failed to scan content store", "error", err)
		os.Exit(1)
	}

	if statusJSON {
		out, _ := json.MarshalIndent(struct {
			Modules    []db.ModuleStat `json:"modules"`
			StoreBlobs int             `json:"store_blobs"`
			StoreBytes int64           `json:"store_bytes"`
		}{stats, blobs, size}, "", "  ")
		fmt.Println(string(out))
		return
	}

	if len(stats) == 0 {
		fmt.Println("no modules indexed")
		return
	}

	for _, m := range stats {
		fmt.Printf("  %-30s %d items\n", m.Namespace, m.Items)
	}
	fmt.Printf("content store: %d blobs, %d bytes\n", blobs, size)
}

func runClearCache(cmd *cobra.Command, args []string) {
	database := openDB()
	defer database.Close()

	if err := database.Clear(); err != nil {
		slog.Error("failed to clear index", "error", err)
		os.Exit(1)
	}
	if err := cas.Clear(); err != nil {
		slog.Error("failed to clear content store", "error", err)
		os.Exit(1)
	}
	fmt.Println("cache cleared")
}
