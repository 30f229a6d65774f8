package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "assist",
	Short: "Retrieval-augmented support assistant for the TalentPath chat widget",
	Long: `Assist answers user questions from a curated help-center knowledge base.
Each chat turn redacts PII, retrieves the most relevant help passages,
asks an LLM for a grounded answer, scores its confidence, and returns a
structured response with sources, suggested next steps, and an
escalation signal.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".assist.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
