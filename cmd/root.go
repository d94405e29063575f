package cmd

import (
	"fmt"
	"os"

	"github.com/OpenPecha/wikisource-automation/internal/config"
	"github.com/OpenPecha/wikisource-automation/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wikisource",
	Short: "Kagyur text splitting and wikisource upload automation",
	Long: `wikisource automates the Kagyur etext pipeline: splitting raw text
exports into per-section files, building upload worklists from a tracking
sheet, and pushing page texts onto their proofread wikisource pages.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("wikisource %s\n", version.String()))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
