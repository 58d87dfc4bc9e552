package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/ripped/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates ripped.toml syntax, values, and environment variable substitution.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var (
	configInitForce    bool
	configInitResolved bool
)

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Long: `Writes the commented example configuration, with ${VAR} references intact.

With --resolved, writes the active configuration instead (the file given by
--config or discovered, or the defaults), with environment references expanded.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
	configInitCmd.Flags().BoolVar(&configInitResolved, "resolved", false, "Write the active configuration with variables expanded")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		path = found
	}

	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Output:    %s (template %s)\n", cfg.Output.Dir, cfg.Output.Template)
	fmt.Fprintf(w, "  Audio:     %s @ %s\n", cfg.Audio.Format, cfg.Audio.Bitrate)
	fmt.Fprintf(w, "  Video:     %s, AAC @ %s\n", cfg.Video.Container, cfg.Video.AudioBitrate)
	fmt.Fprintf(w, "  Tools:     ffmpeg=%s yt-dlp=%s\n", cfg.Tools.FFmpeg, cfg.Tools.YtDlp)
	if cfg.Clipboard.Enabled {
		fmt.Fprintf(w, "  Clipboard: polling every %s\n", cfg.Clipboard.PollInterval)
	} else {
		fmt.Fprintln(w, "  Clipboard: disabled")
	}
	fmt.Fprintf(w, "  Log level: %s\n", cfg.Log.Level)
	if cfg.History.Path != "" {
		fmt.Fprintf(w, "  History:   %s\n", cfg.History.Path)
	} else {
		fmt.Fprintln(w, "  History:   disabled")
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%w: %s already exists, use --force to overwrite", ErrUsage, path)
	}
	if err := writeConfig(path, configPath, configInitResolved); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// writeConfig writes the example file, or with resolved set the config that
// source (or discovery) resolves to.
func writeConfig(path, source string, resolved bool) error {
	if !resolved {
		return config.WriteDefault(path)
	}
	cfg, _, err := config.Resolve(source)
	if err != nil {
		return err
	}
	return cfg.Write(path)
}
