package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	verbose    bool
)

// ErrUsage marks malformed command lines.
var ErrUsage = errors.New("usage")

// ErrInterrupted is returned when the menu stops on Ctrl-C.
var ErrInterrupted = errors.New("interrupted")

var rootCmd = &cobra.Command{
	Use:   "ripped [<mode> <quality> <url>]",
	Short: "Download audio and video and normalize it for editing",
	Long: `ripped - fetch audio or video and normalize it for editors

With three arguments, downloads one URL:
  ripped video 1080 https://youtu.be/...
  ripped audio max https://youtu.be/...

Mode is audio or video. Quality is max or a maximum height in pixels.
Video ends up as mp4 with AAC audio; audio ends up as mp3.

With no arguments, opens the interactive menu.`,
	Args:          downloadArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runMenu(cmd)
		}
		return runDownload(cmd, args)
	},
}

// downloadArgs accepts either nothing (menu) or exactly mode, quality, url.
func downloadArgs(_ *cobra.Command, args []string) error {
	switch len(args) {
	case 0, 3:
		return nil
	default:
		return fmt.Errorf("%w: expected <mode> <quality> <url>, got %d argument(s)", ErrUsage, len(args))
	}
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	// After the first interrupt, restore default handling so a second one
	// terminates the process.
	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, ErrUsage) {
			fmt.Fprintln(os.Stderr, "Run 'ripped --help' for usage.")
		}
		return exitCode(err)
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("ripped {{.Version}}\n")
}
