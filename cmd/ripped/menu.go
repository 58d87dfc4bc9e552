package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/ripped/internal/clipboard"
	"github.com/vmunix/ripped/internal/report"
	"github.com/vmunix/ripped/internal/request"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd)
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

// menu is the interactive loop. Mode and quality persist for the session.
type menu struct {
	in     *bufio.Reader
	out    io.Writer
	prefs  request.Preferences
	clip   clipboard.Source
	status string

	download func(ctx context.Context, req request.Request) report.Summary
	convert  func(ctx context.Context, path string) (report.Summary, error)
	bulk     func(ctx context.Context, prefs request.Preferences, in *bufio.Reader, out io.Writer) (report.Summary, error)
}

func runMenu(cmd *cobra.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	m := &menu{
		in:       bufio.NewReader(cmd.InOrStdin()),
		out:      cmd.OutOrStdout(),
		prefs:    request.DefaultPreferences(),
		clip:     a.clipboardSource(),
		download: a.runner.Run,
		convert:  a.batch.ConvertPath,
		bulk:     a.runBulk,
	}
	return m.run(cmd.Context())
}

func (a *app) clipboardSource() clipboard.Source {
	if !a.cfg.Clipboard.Enabled {
		return &clipboard.Static{}
	}
	return clipboard.NewSystem(a.log.With("component", "clipboard"))
}

// run loops until Exit, end of input or cancellation of ctx. Individual
// action failures are reported in the status line and never end the session.
func (m *menu) run(ctx context.Context) error {
	m.status = "Ready"
	for {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(m.out, "\nInterrupted.")
			return fmt.Errorf("%w: %w", ErrInterrupted, err)
		}
		m.render()
		choice, ok := m.readLine("Select option: ")
		if !ok {
			fmt.Fprintln(m.out)
			return nil
		}

		switch choice {
		case "":
			continue
		case "1":
			m.single(ctx)
		case "2":
			m.runBulk(ctx)
		case "3":
			m.runConvert(ctx)
		case "4":
			m.chooseMode()
		case "5":
			m.chooseQuality()
		case "6", "q", "exit":
			fmt.Fprintln(m.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please select 1-6.")
		}
	}
}

func (m *menu) render() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, strings.Repeat("=", 48))
	fmt.Fprintf(m.out, " ripped   mode: %-6s quality: %s\n", m.prefs.Mode, m.prefs.Quality)
	fmt.Fprintf(m.out, " last:    %s\n", m.status)
	fmt.Fprintln(m.out, strings.Repeat("=", 48))
	fmt.Fprintln(m.out, " 1) Download single URL")
	fmt.Fprintln(m.out, " 2) Bulk download (q to start)")
	fmt.Fprintln(m.out, " 3) Convert existing videos to MP4")
	fmt.Fprintln(m.out, " 4) Change mode")
	fmt.Fprintln(m.out, " 5) Change quality")
	fmt.Fprintln(m.out, " 6) Exit")
}

func (m *menu) readLine(prompt string) (string, bool) {
	fmt.Fprint(m.out, prompt)
	line, err := m.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// promptURL reads a URL, falling back to the clipboard on empty input.
func (m *menu) promptURL() (string, bool) {
	clip, _ := m.clip.Poll()
	clip = request.CleanInput(clip)
	if !request.LooksLikeURL(clip) {
		clip = ""
	}
	if clip != "" {
		fmt.Fprintf(m.out, "(Clipboard detected: %s)\n", clip)
	}

	url, ok := m.readLine("Enter URL (press Enter to use clipboard): ")
	if !ok {
		return "", false
	}
	if url == "" {
		url = clip
	}
	if url == "" {
		fmt.Fprintln(m.out, "No URL provided.")
		return "", false
	}
	return url, true
}

func (m *menu) single(ctx context.Context) {
	url, ok := m.promptURL()
	if !ok {
		return
	}
	req, err := m.prefs.For(url)
	if err != nil {
		fmt.Fprintln(m.out, err)
		m.status = "Invalid URL"
		return
	}

	fmt.Fprintf(m.out, "Downloading %s\n", req)
	s := m.download(ctx, req)
	printSummary(m.out, s)
	m.status = s.Tally()
}

func (m *menu) runBulk(ctx context.Context) {
	s, err := m.bulk(ctx, m.prefs, m.in, m.out)
	if err != nil {
		fmt.Fprintln(m.out, err)
	}
	if s.Attempted == 0 {
		fmt.Fprintln(m.out, "No URLs provided.")
		m.status = "Bulk: nothing queued"
		return
	}
	printSummary(m.out, s)
	m.status = "Bulk: " + s.Tally()
}

func (m *menu) runConvert(ctx context.Context) {
	path, ok := m.readLine("Path to file or folder: ")
	if !ok || path == "" {
		fmt.Fprintln(m.out, "No path provided.")
		return
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(m.out, "Path does not exist.")
		m.status = "Convert: path not found"
		return
	}

	s, err := m.convert(ctx, path)
	if err != nil {
		fmt.Fprintln(m.out, err)
		m.status = "Convert failed"
		return
	}
	if s.Attempted == 0 {
		fmt.Fprintln(m.out, "No webm/mkv files found.")
	}
	printSummary(m.out, s)
	m.status = "Convert: " + s.Tally()
}

func (m *menu) chooseMode() {
	fmt.Fprintln(m.out, "\nSelect mode:")
	for i, mode := range request.Modes {
		fmt.Fprintf(m.out, " %d) %s\n", i+1, mode)
	}
	choice, ok := m.readLine("Mode: ")
	if !ok {
		return
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(request.Modes) {
		fmt.Fprintln(m.out, "Invalid choice.")
		return
	}
	m.prefs.Mode = request.Modes[idx-1]
	m.status = "Mode set to " + string(m.prefs.Mode)
}

func (m *menu) chooseQuality() {
	fmt.Fprintln(m.out, "\nSelect quality:")
	for i, q := range request.Presets {
		label := q.String()
		if !q.IsMax() {
			label += "p"
		}
		fmt.Fprintf(m.out, " %d) %s\n", i+1, label)
	}
	choice, ok := m.readLine("Quality: ")
	if !ok {
		return
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(request.Presets) {
		fmt.Fprintln(m.out, "Invalid choice.")
		return
	}
	m.prefs.Quality = request.Presets[idx-1]
	m.status = "Quality set to " + m.prefs.Quality.String()
}
