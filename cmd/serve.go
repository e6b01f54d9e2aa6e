package cmd

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rhaitools/rhaidocs/internal/config"
	"github.com/rhaitools/rhaidocs/internal/db"
	"github.com/rhaitools/rhaidocs/internal/mcp"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rhaidocs",
	Short: "Script API documentation generator and MCP search server",
	Long: `rhaidocs renders documentation pages from a scripting engine's exported
metadata JSON, and serves an indexed copy over the Model Context Protocol.
Run without a subcommand to start the MCP server on stdio.`,
	Run: runServe,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// openDB opens the index database at the configured cache path.
func openDB() *db.DB {
	database, err := db.New(config.DBPath())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	return database
}

// readInput reads a metadata file, or stdin when the argument is "-".
func readInput(arg string) []byte {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("reading stdin: %v", err)
		}
		return data
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		log.Fatalf("reading metadata: %v", err)
	}
	return data
}

func runServe(cmd *cobra.Command, args []string) {
	server := mcp.NewServer(openDB())

	errCh := make(chan error)
	go func() { errCh <- server.Run() }()

	if err := waitForSignal(errCh); err != nil {
		log.Fatalf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

func waitForSignal(errCh chan error) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		log.Printf("received signal: %s", sig)
		return nil
	case err := <-errCh:
		return err
	}
}
