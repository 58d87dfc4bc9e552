package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/ripped/internal/convert"
	"github.com/vmunix/ripped/internal/convert/mocks"
	"github.com/vmunix/ripped/internal/report"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// fakeTranscoder writes the output file unless the input name contains "bad".
type fakeTranscoder struct {
	unavailable bool
	inputs      []string
}

func (f *fakeTranscoder) Available() error {
	if f.unavailable {
		return fmt.Errorf("%w: ffmpeg", convert.ErrToolUnavailable)
	}
	return nil
}

func (f *fakeTranscoder) Transcode(_ context.Context, input, output string, _ []string) error {
	f.inputs = append(f.inputs, input)
	if strings.Contains(filepath.Base(input), "bad") {
		return errors.New("exit status 1")
	}
	return os.WriteFile(output, []byte("mp4"), 0644)
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		require.NoError(t, err)
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(out)
	return out
}

func TestDiscover_SortedCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b", "two.MKV"), "x")
	writeFile(t, filepath.Join(root, "a", "one.webm"), "x")
	writeFile(t, filepath.Join(root, "a", "keep.mp4"), "x")
	writeFile(t, filepath.Join(root, "notes.txt"), "x")
	writeFile(t, filepath.Join(root, "z.webm"), "x")

	files, err := Discover(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a", "one.webm"),
		filepath.Join(root, "b", "two.MKV"),
		filepath.Join(root, "z.webm"),
	}, files)
}

func TestConvertPath_DirectoryIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.webm"), "x")
	writeFile(t, filepath.Join(root, "sub", "b.mkv"), "x")
	writeFile(t, filepath.Join(root, "c.mp4"), "x")

	tc := &fakeTranscoder{}
	c := New(convert.NewGate(tc, convert.Options{}, nil), nil)

	first, err := c.ConvertPath(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Attempted)
	assert.Equal(t, 2, first.Succeeded)
	assert.True(t, first.OK())
	assert.Equal(t, []string{"a.mp4", "c.mp4", "sub/b.mp4"}, listFiles(t, root))

	second, err := c.ConvertPath(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Attempted)
	assert.Equal(t, 0, second.Succeeded)
	assert.Equal(t, []string{"a.mp4", "c.mp4", "sub/b.mp4"}, listFiles(t, root))
}

func TestConvertPath_FailuresDoNotAbortScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "1.webm"), "x")
	writeFile(t, filepath.Join(root, "2-bad.webm"), "original")
	writeFile(t, filepath.Join(root, "3.mkv"), "x")

	tc := &fakeTranscoder{}
	c := New(convert.NewGate(tc, convert.Options{}, nil), nil)

	summary, err := c.ConvertPath(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Attempted)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.False(t, summary.OK())
	assert.Len(t, tc.inputs, 3, "every file must be attempted")
	assert.Equal(t, report.StatusFailed, summary.Items[1].Status)
	assert.ErrorIs(t, summary.Items[1].Err, convert.ErrConversionFailed)

	content, err := os.ReadFile(filepath.Join(root, "2-bad.webm"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))
}

func TestConvertPath_ToolUnavailableFailsOnce(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.webm"), "x")
	writeFile(t, filepath.Join(root, "b.webm"), "x")

	tc := &fakeTranscoder{unavailable: true}
	c := New(convert.NewGate(tc, convert.Options{}, nil), nil)

	summary, err := c.ConvertPath(context.Background(), root)
	assert.ErrorIs(t, err, convert.ErrToolUnavailable)
	assert.Equal(t, 0, summary.Attempted)
	assert.Empty(t, tc.inputs)
}

func TestConvertPath_SingleFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	tc := mocks.NewMockTranscoder(ctrl)
	root := t.TempDir()
	src := filepath.Join(root, "clip.mkv")
	writeFile(t, src, "x")

	tc.EXPECT().Available().Return(nil).Times(2)
	tc.EXPECT().Transcode(gomock.Any(), src, filepath.Join(root, "clip.mp4"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, output string, _ []string) error {
			return os.WriteFile(output, []byte("mp4!"), 0644)
		})

	c := New(convert.NewGate(tc, convert.Options{}, nil), nil)
	summary, err := c.ConvertPath(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, []string{filepath.Join(root, "clip.mp4")}, summary.Items[0].Outputs)
	assert.Equal(t, int64(4), summary.Items[0].Size)
}

func TestConvertPath_CompliantFileIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	tc := mocks.NewMockTranscoder(ctrl)
	src := filepath.Join(t.TempDir(), "clip.mp4")
	writeFile(t, src, "x")

	tc.EXPECT().Available().Return(nil)

	c := New(convert.NewGate(tc, convert.Options{}, nil), nil)
	summary, err := c.ConvertPath(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.True(t, summary.OK())
}

func TestConvertPath_Missing(t *testing.T) {
	c := New(convert.NewGate(&fakeTranscoder{}, convert.Options{}, nil), nil)
	_, err := c.ConvertPath(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestConvertPath_ToolCheckedBeforeScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.mp4"), "x")

	tests := []struct {
		name string
		path string
	}{
		{"empty directory", t.TempDir()},
		{"directory without legacy files", root},
		{"compliant file", filepath.Join(root, "a.mp4")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := &fakeTranscoder{unavailable: true}
			c := New(convert.NewGate(tc, convert.Options{}, nil), nil)

			summary, err := c.ConvertPath(context.Background(), tt.path)
			assert.ErrorIs(t, err, convert.ErrToolUnavailable)
			assert.Equal(t, 0, summary.Attempted)
		})
	}
}
