package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently generated messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		if store == nil {
			return fmt.Errorf("history database unavailable")
		}
		defer store.Close()

		entries, err := store.History(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No history yet.")
			return nil
		}

		for _, entry := range entries {
			// keep multi-line verbose messages on one row
			message := strings.ReplaceAll(entry.Message, "\n", " ⏎ ")
			fmt.Printf("%s  [%s/%s]  %s\n",
				entry.Timestamp.Local().Format("2006-01-02 15:04"),
				entry.Model, entry.Style, message)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all history entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		if store == nil {
			return fmt.Errorf("history database unavailable")
		}
		defer store.Close()

		if err := store.ClearHistory(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum entries to show (0 = all)")
	historyCmd.AddCommand(historyClearCmd)
}
