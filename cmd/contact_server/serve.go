package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwalker/contact-validator/internal/config"
	"github.com/mwalker/contact-validator/internal/db"
	"github.com/mwalker/contact-validator/internal/generator"
	"github.com/mwalker/contact-validator/internal/rendering"
	"github.com/mwalker/contact-validator/internal/server"
	"github.com/mwalker/contact-validator/internal/smarty"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server exposing the contact, validation and report generation endpoints.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store := db.NewStore(cfg.DatabaseURL())
	validator := smarty.New(cfg.SmartyAuthID, cfg.SmartyAuthToken)
	renderer := rendering.New(cfg.TemplatesDir)
	gen := generator.New(cfg.OutputDir, renderer)

	if err := gen.EnsureOutputDir(); err != nil {
		return fmt.Errorf("failed to prepare output directory: %w", err)
	}

	srv := server.New(cfg, store, validator, gen)
	return srv.Start()
}
