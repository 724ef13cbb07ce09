package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pawprint-labs/petscribe/internal/describe"
	"github.com/pawprint-labs/petscribe/internal/images"
	"github.com/pawprint-labs/petscribe/internal/params"
)

func newDescribeCmd() *cobra.Command {
	var engine, language, prompt, baseURL, paramsPath string
	var temperature float64
	var maxTokens int

	cmd := &cobra.Command{
		Use:   "describe IMAGE",
		Short: "Describe a pet photo from the command line",
		Long: `Sends a pet photo to the configured vision-language model and prints
the generated description.

Options not set on the command line fall back to the options file and
then to built-in defaults.`,
		Example: `  petscribe describe pet.jpg
  petscribe describe pet.jpg --llm-engine llava --language english
  petscribe describe pet.jpg --llm-engine qwen-vl --language hebrew
  petscribe describe pet.jpg --llm-engine llava --temperature 0.8 --max-tokens 1024`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only flags the user actually set become overrides, so file
			// values keep their precedence slot.
			overrides := params.Overrides{}
			if cmd.Flags().Changed("llm-engine") {
				overrides.Engine = engine
			}
			if cmd.Flags().Changed("language") {
				overrides.Language = language
			}
			if cmd.Flags().Changed("temperature") {
				overrides.Temperature = &temperature
			}
			if cmd.Flags().Changed("max-tokens") {
				overrides.MaxTokens = &maxTokens
			}
			if cmd.Flags().Changed("prompt") {
				overrides.Prompt = prompt
			}
			if cmd.Flags().Changed("ollama-base-url") {
				overrides.BaseURL = baseURL
			}

			svc := describe.NewService(paramsPath)
			result := svc.Describe(cmd.Context(), images.PathSource(args[0]), overrides)
			if !result.Success {
				return errors.New(result.Error)
			}

			fmt.Printf("Model used: %s\n", result.ModelUsed)
			fmt.Printf("Language used: %s\n", result.LanguageUsed)
			fmt.Printf("\nDescription:\n%s\n", result.Description)
			return nil
		},
	}

	cmd.Flags().StringVar(&engine, "llm-engine", "", "LLM engine to use: llava or qwen-vl")
	cmd.Flags().StringVar(&language, "language", "", "Prompt language: english or hebrew")
	cmd.Flags().Float64Var(&temperature, "temperature", 0.7, "Temperature for generation")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 512, "Maximum tokens to generate")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Custom prompt for the model")
	cmd.Flags().StringVar(&baseURL, "ollama-base-url", "", "Base URL for the Ollama API")
	cmd.Flags().StringVar(&paramsPath, "params", params.DefaultFilePath, "Path to the options file")

	return cmd
}
