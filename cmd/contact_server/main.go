// Package main provides the entry point for the contact validator server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "contact_server",
	Short: "Contact address validation and report server",
	Long:  "Contact server lists contacts from PostgreSQL, validates their postal addresses against the SmartyStreets API and renders styled HTML reports.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
