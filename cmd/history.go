// Package cmd — history commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/sheetpress/config"
	"github.com/gaurav-prasanna/sheetpress/history"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or edit the recent-conversion list",
	RunE:  runHistoryList,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove one entry from the conversion history",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the conversion history",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func openStore() (*history.Store, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.HistoryDir)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	entries := store.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "No conversions recorded.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%s  %s  %-30s  %d rows\n",
			e.ID, e.Date.Local().Format("2006-01-02 15:04"), e.FileName, e.RowCount)
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	return store.Delete(args[0])
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	return store.Clear()
}
