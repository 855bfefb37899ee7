package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the message cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		if store == nil {
			return fmt.Errorf("cache database unavailable")
		}
		defer store.Close()

		stats, err := store.Stats()
		if err != nil {
			return err
		}

		fmt.Printf("Entries:  %d\n", stats.Entries)
		fmt.Printf("Hits:     %d\n", stats.Hits)
		fmt.Printf("Misses:   %d\n", stats.Misses)
		fmt.Printf("Hit rate: %.1f%%\n", stats.HitRate())
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		if store == nil {
			return fmt.Errorf("cache database unavailable")
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("Cache cleared.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
