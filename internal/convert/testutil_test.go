package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writeOutput simulates a successful ffmpeg run.
func writeOutput(_ context.Context, _, output string, _ []string) error {
	return os.WriteFile(output, []byte("converted"), 0644)
}

// writePartial simulates ffmpeg dying halfway through the output.
func writePartial(_ context.Context, _, output string, _ []string) error {
	if err := os.WriteFile(output, []byte("trunc"), 0644); err != nil {
		return err
	}
	return errors.New("exit status 1: Invalid data found when processing input")
}
