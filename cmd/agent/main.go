package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/NoobProgrammer008/ai-agent-scraper/internal/app"
	"github.com/NoobProgrammer008/ai-agent-scraper/internal/config"
)

var (
	configFile   string
	verbose      bool
	withInsights bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "agent",
		Short: "AI research agent - classify a request and fetch matching data",
		Long: `A research agent that classifies a free-text request into crypto, news,
or general research, fetches data from the matching source (CoinGecko,
NewsAPI, Wikipedia), and prints a formatted report.`,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	researchCmd := &cobra.Command{
		Use:   "research [task...]",
		Short: "Run one research task",
		Long:  `Classify the task, fetch data from the matching connector, and print the analysis.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runResearch,
	}
	researchCmd.Flags().BoolVar(&withInsights, "insights", false, "append an OpenAI-written narrative summary")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configInitCmd := &cobra.Command{
		Use:   "init [filename]",
		Short: "Create a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}

	configValidateCmd := &cobra.Command{
		Use:   "validate [filename]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigValidate,
	}

	configCmd.AddCommand(configInitCmd, configValidateCmd)
	rootCmd.AddCommand(researchCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runResearch(cmd *cobra.Command, args []string) error {
	task := strings.Join(args, " ")

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := app.ParseLogLevel(cfg.LogLevel)
	if !verbose {
		level = log.ErrorLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	researchAgent := app.BuildAgent(cfg, logger)

	ctx := context.Background()
	result := researchAgent.Run(ctx, task)

	if !result.Success {
		fmt.Printf("Research failed: %s\n", result.Error)
		if len(result.AvailableConnectors) > 0 {
			fmt.Printf("Available connectors: %s\n", strings.Join(result.AvailableConnectors, ", "))
		}
		return nil
	}

	fmt.Println(result.Analysis)

	if withInsights {
		summarizer := app.BuildSummarizer(cfg, logger)
		if summarizer == nil {
			fmt.Println("Insights unavailable: no OpenAI API key configured")
		} else {
			narrative, err := summarizer.Summarize(ctx, researchAgent.History())
			if err != nil {
				fmt.Printf("Insights failed: %v\n", err)
			} else {
				fmt.Printf("\nInsights:\n%s\n", narrative)
			}
		}
	}

	if verbose {
		summary, err := json.MarshalIndent(researchAgent.Summary(), "", "  ")
		if err == nil {
			fmt.Printf("\nResearch summary:\n%s\n", summary)
		}
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	filename := "scraper-config.json"
	if len(args) > 0 {
		filename = args[0]
	}

	cfg := config.DefaultConfig()
	if err := cfg.SaveToFile(filename); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Printf("Default configuration saved to: %s\n", filename)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("Configuration file %q is valid\n", args[0])
	if verbose {
		fmt.Println(cfg.String())
	}
	return nil
}
