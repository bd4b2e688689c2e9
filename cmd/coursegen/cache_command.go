package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"coursegen/internal/cache"
	"coursegen/internal/config"
)

func newCacheCommand(cctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the analysis cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(cctx))
	cacheCmd.AddCommand(newCacheClearCommand(cctx))

	return cacheCmd
}

func openCacheStore(cctx *commandContext) (*cache.Store, *config.Config, error) {
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Cache.Enabled {
		return nil, nil, fmt.Errorf("analysis cache is disabled; enable it under [cache] in the configuration")
	}
	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open analysis cache: %w", err)
	}
	return store, cfg, nil
}

func newCacheListCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached analysis results",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openCacheStore(cctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Cache is empty")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for i, entry := range entries {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					entry.PlaylistID,
					entry.Model,
					entry.CreatedAt.Local().Format(time.RFC3339),
					shortKey(entry.ContentKey),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Playlist", "Model", "Created", "Key"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d entries, newest %s\n", stats.Entries, stats.Newest.Local().Format(time.RFC3339))
			return nil
		},
	}
}

func newCacheClearCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached analysis results",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openCacheStore(cctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cache entries\n", removed)
			return nil
		},
	}
}

func shortKey(key string) string {
	if len(key) <= 12 {
		return key
	}
	return key[:12]
}
