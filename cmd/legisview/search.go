package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/legisview/internal/cli"
	"github.com/hyperjump/legisview/internal/models"
	"github.com/hyperjump/legisview/internal/search"
)

var (
	searchDocumentType string
	searchFormat       string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the archive from the terminal",
	Long: `Search the archive index for one facet and print the hits with their deep links.

Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.

Examples:
  legisview search banjir
  legisview search --type speech "tanah runtuh"
  legisview search --type respond --format json banjir`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchDocumentType, "type", "t", string(models.DefaultDocumentType),
		"document type: inquiry-title, inquiry, respond, question, answer, speech")
	searchCmd.Flags().StringVarP(&searchFormat, "format", "f", string(cli.OutputText), "output format: text or json")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	text := buildSearchQuery(args)
	if text == "" {
		return errors.New("query is required")
	}
	dt, err := models.ParseDocumentType(searchDocumentType)
	if err != nil {
		return err
	}
	format, err := cli.ParseOutputFormat(searchFormat)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger := zap.NewNop()
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		return err
	}
	defer components.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Upstream.Timeout)
	defer cancel()
	res, err := components.Client.Search(ctx, models.SearchQuery{Query: text, DocumentType: dt})
	if err != nil {
		return err
	}
	view := search.NewDispatcher(nil).Dispatch(string(dt), res)
	return cli.WriteSearchResults(cmd.OutOrStdout(), text, view, cfg.Server.PublicURL, format)
}
