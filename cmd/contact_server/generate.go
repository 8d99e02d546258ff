package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwalker/contact-validator/internal/config"
	"github.com/mwalker/contact-validator/internal/db"
	"github.com/mwalker/contact-validator/internal/generator"
	"github.com/mwalker/contact-validator/internal/rendering"
)

var (
	generateStyle    string
	generateFilename string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the contact report once and exit",
	Long:  `Fetch all contacts, render the HTML report with the requested style and write it to the output directory without starting the HTTP server.`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateStyle, "style", "", "Template style (modern, dark, neon, retro or random; defaults to TEMPLATE_STYLE)")
	generateCmd.Flags().StringVar(&generateFilename, "output", "index.html", "Output filename inside the output directory")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if generateStyle == "" {
		generateStyle = cfg.TemplateStyle
	}

	store := db.NewStore(cfg.DatabaseURL())
	contacts, err := store.FetchContacts(context.Background())
	if err != nil {
		return err
	}
	if len(contacts) == 0 {
		return fmt.Errorf("no contacts found")
	}

	gen := generator.New(cfg.OutputDir, rendering.New(cfg.TemplatesDir))
	path, style, err := gen.Generate(contacts, generateStyle, generateFilename)
	if err != nil {
		return err
	}

	cmd.Printf("Generated %s (style: %s, contacts: %d)\n", path, style, len(contacts))
	return nil
}
