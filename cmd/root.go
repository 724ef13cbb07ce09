package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "petscribe",
		Short: "Pet photo description tool powered by local vision-language models",
		Long: `Petscribe analyzes pet photos and generates natural-language
descriptions using vision-capable models (llava or qwen-vl) served by a
local Ollama instance.

It offers a web interface for uploads and a CLI for one-off descriptions.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newDescribeCmd())

	return cmd
}
