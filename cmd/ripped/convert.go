package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <path>",
	Short: "Convert existing webm/mkv files to mp4",
	Long: `Converts a single file, or every .webm and .mkv file below a directory,
to mp4 with AAC audio. Originals are deleted only after their replacement
is written. Files that are already mp4 are left alone.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: convert requires exactly one path", ErrUsage)
		}
		return nil
	},
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.batch.ConvertPath(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if s.Attempted == 0 {
		fmt.Fprintln(out, "No webm/mkv files found.")
		return nil
	}
	printSummary(out, s)
	return summaryErr(s)
}
