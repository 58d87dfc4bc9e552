package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/ripped/internal/request"
)

// runDownload handles the positional form: ripped <mode> <quality> <url>.
func runDownload(cmd *cobra.Command, args []string) error {
	req, err := request.Normalize(args[0], args[1], args[2])
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.engine.Available(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Downloading %s\n", req)
	s := a.runner.Run(cmd.Context(), req)
	printSummary(out, s)
	return summaryErr(s)
}
