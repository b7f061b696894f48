package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperjump/legisview/internal/config"
	"github.com/hyperjump/legisview/internal/storage"
)

var cacheListLimit int

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the document cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache size and the most recently fetched documents",
	Args:  cobra.NoArgs,
	RunE:  runCacheStatus,
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove every cached document",
	Args:  cobra.NoArgs,
	RunE:  runCachePurge,
}

func init() {
	cacheStatusCmd.Flags().IntVarP(&cacheListLimit, "limit", "n", 10, "number of recent entries to list")
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCache() (*config.Config, *storage.SQLiteCache, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Cache.Enabled {
		return cfg, nil, nil
	}
	cache, err := storage.NewSQLiteCache(cfg.Cache.DatabasePath, cfg.Cache.TTL)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cache, nil
}

func runCacheStatus(cmd *cobra.Command, _ []string) error {
	cfg, cache, err := openCache()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if cache == nil {
		fmt.Fprintln(out, "Document cache is disabled.")
		return nil
	}
	defer cache.Close()

	ctx := cmd.Context()
	count, err := cache.Count(ctx)
	if err != nil {
		return err
	}
	size, err := storage.DiskUsageBytes(storage.SQLiteFiles(cfg.Cache.DatabasePath)...)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Database:  %s\n", cfg.Cache.DatabasePath)
	fmt.Fprintf(out, "Documents: %d\n", count)
	fmt.Fprintf(out, "Disk:      %d bytes\n", size)
	fmt.Fprintf(out, "TTL:       %s\n", cfg.Cache.TTL)

	entries, err := cache.List(ctx, cacheListLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tBYTES\tFETCHED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Key, e.Size, e.FetchedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func runCachePurge(cmd *cobra.Command, _ []string) error {
	_, cache, err := openCache()
	if err != nil {
		return err
	}
	if cache == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Document cache is disabled.")
		return nil
	}
	defer cache.Close()
	n, err := cache.Purge(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached documents.\n", n)
	return nil
}
