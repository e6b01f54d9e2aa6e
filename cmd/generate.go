package cmd

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rhaitools/rhaidocs/internal/config"
	"github.com/rhaitools/rhaidocs/internal/docs"
	"github.com/rhaitools/rhaidocs/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var generateCmd = &cobra.Command{
	Use:   "generate <metadata.json>",
	Short: "Render documentation pages from engine metadata",
	Long: `Turn a scripting engine's exported metadata JSON into documentation
pages, one file per module. Pass "-" to read the metadata from stdin.
Flags override the matching settings from the config file.`,
	Example: `  rhaidocs generate api.json
  rhaidocs generate --flavor mdbook --order by-index api.json
  rhaidocs generate --out docs/api --slug /docs/api --glossary api.json`,
	Args: cobra.ExactArgs(1),
	Run:  runGenerate,
}

var (
	generateOut             string
	generateFlavor          string
	generateOrder           string
	generateSections        string
	generateSlug            string
	generateGlossary        bool
	generateIncludeStandard bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", ".", "output directory")
	generateCmd.Flags().StringVar(&generateFlavor, "flavor", "", "output flavor: docusaurus, mdbook or json")
	generateCmd.Flags().StringVar(&generateOrder, "order", "", "item order: alphabetical or by-index")
	generateCmd.Flags().StringVar(&generateSections, "sections", "", "section layout: rust or tabs")
	generateCmd.Flags().StringVar(&generateSlug, "slug", "", "slug prefix for docusaurus pages")
	generateCmd.Flags().BoolVar(&generateGlossary, "glossary", false, "also write a glossary page")
	generateCmd.Flags().BoolVar(&generateIncludeStandard, "include-standard", false, "document the engine's standard builtins")

	rootCmd.AddCommand(generateCmd)
}

// generateSettings merges config file defaults with explicit flags. Flags
// win when set.
func generateSettings(cmd *cobra.Command) config.GenerateConfig {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	gen := cfg.Generate

	flags := cmd.Flags()
	if flags.Changed("flavor") {
		gen.Flavor, err = render.ParseFlavor(generateFlavor)
		if err != nil {
			log.Fatalf("invalid --flavor: %v", err)
		}
	}
	if flags.Changed("order") {
		gen.Order, err = docs.ParseOrder(generateOrder)
		if err != nil {
			log.Fatalf("invalid --order: %v", err)
		}
	}
	if flags.Changed("sections") {
		gen.Sections, err = render.ParseSectionFormat(generateSections)
		if err != nil {
			log.Fatalf("invalid --sections: %v", err)
		}
	}
	if flags.Changed("slug") {
		gen.Slug = generateSlug
	}
	if flags.Changed("glossary") {
		gen.Glossary = generateGlossary
	}
	if flags.Changed("include-standard") {
		gen.IncludeStandard = generateIncludeStandard
	}
	return gen
}

func runGenerate(cmd *cobra.Command, args []string) {
	gen := generateSettings(cmd)
	data := readInput(args[0])

	root, err := docs.Build(data, docs.Options{
		Order:           gen.Order,
		IncludeStandard: gen.IncludeStandard,
	})
	if err != nil {
		log.Fatalf("building documentation model: %v", err)
	}

	pages, err := render.Render(root, render.Options{
		Flavor:   gen.Flavor,
		Sections: gen.Sections,
		Slug:     gen.Slug,
	})
	if err != nil {
		log.Fatalf("rendering: %v", err)
	}

	if gen.Glossary {
		if gen.Flavor == render.FlavorJSON {
			slog.Warn("glossary page skipped, json flavor has no glossary")
		} else {
			glossary, err := render.Glossary(data, render.GlossaryOptions{
				Flavor:          gen.Flavor,
				IncludeStandard: gen.IncludeStandard,
			})
			if err != nil {
				log.Fatalf("rendering glossary: %v", err)
			}
			pages["glossary"] = glossary
		}
	}

	if err := os.MkdirAll(generateOut, 0755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	var g errgroup.Group
	for name, content := range pages {
		path := filepath.Join(generateOut, name+gen.Flavor.Extension())
		g.Go(func() error {
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			slog.Debug("wrote page", "path", path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("writing pages: %v", err)
	}

	fmt.Printf("wrote %d pages to %s\n", len(pages), generateOut)
}
