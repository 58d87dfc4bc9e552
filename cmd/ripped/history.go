package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vmunix/ripped/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent downloads",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if cfg.History.Path == "" {
		fmt.Fprintln(out, "History is disabled. Set [history] path in the config to enable it.")
		return nil
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(historyLimit)
	if err != nil {
		return err
	}
	printHistory(out, records)
	return nil
}

func printHistory(w io.Writer, records []history.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No downloads recorded")
		return
	}

	fmt.Fprintf(w, "Recent Downloads (%d):\n\n", len(records))
	fmt.Fprintf(w, "  %-16s %-10s %-11s %-9s %s\n", "FINISHED", "STATUS", "REQUEST", "SIZE", "URL")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 72))
	for _, r := range records {
		size := "-"
		if r.Size > 0 {
			size = humanize.Bytes(uint64(r.Size))
		}
		fmt.Fprintf(w, "  %-16s %-10s %-11s %-9s %s\n",
			r.FinishedAt.Local().Format("2006-01-02 15:04"),
			r.Status,
			r.Mode+"/"+r.Quality,
			size,
			r.URL,
		)
		if r.Error != "" {
			fmt.Fprintf(w, "  %16s %s\n", "", r.Error)
		}
	}
}
