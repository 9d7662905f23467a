package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunetap/tunetap/internal/model"
)

func writePlaylistFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playlist.m3u")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseM3U_ExtendedFormat(t *testing.T) {
	content := `#EXTM3U
#EXTINF:213,Artist - First Song
first.mp3
#EXTINF:-1,Live Stream
https://example.com/stream.m4a
#PLAYLIST:ignored directive
/abs/path/second.mp3
`
	path := writePlaylistFile(t, content)

	tracks, err := ParseM3U(path)
	require.NoError(t, err)
	require.Len(t, tracks, 3)

	baseDir := filepath.Dir(path)

	assert.Equal(t, "Artist - First Song", tracks[0].Title)
	assert.Equal(t, "03:33", tracks[0].Duration)
	assert.Equal(t, filepath.Join(baseDir, "first.mp3"), tracks[0].Source)

	assert.Equal(t, "Live Stream", tracks[1].Title)
	assert.Empty(t, tracks[1].Duration)
	assert.Equal(t, "https://example.com/stream.m4a", tracks[1].Source)
	assert.True(t, tracks[1].IsRemote())

	// Metadata must not leak from earlier #EXTINF lines
	assert.Empty(t, tracks[2].Title)
	assert.Equal(t, "/abs/path/second.mp3", tracks[2].Source)
}

func TestParseM3U_PlainFormat(t *testing.T) {
	content := "a.mp3\nb.mp3\n"
	path := writePlaylistFile(t, content)

	tracks, err := ParseM3U(path)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "a.mp3"), tracks[0].Source)
}

func TestParseM3U_MissingFile(t *testing.T) {
	_, err := ParseM3U(filepath.Join(t.TempDir(), "nope.m3u"))
	assert.Error(t, err)
}

func TestWriteM3U_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.m3u")

	in := []*model.Track{
		{Title: "First Song", Source: "/music/first.mp3", Duration: "03:33"},
		{Title: "Stream", Source: "https://example.com/stream"},
	}
	require.NoError(t, WriteM3U(path, in))

	out, err := ParseM3U(path)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "First Song", out[0].Title)
	assert.Equal(t, "03:33", out[0].Duration)
	assert.Equal(t, "/music/first.mp3", out[0].Source)

	assert.Equal(t, "Stream", out[1].Title)
	assert.Equal(t, "https://example.com/stream", out[1].Source)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{45, "00:45"},
		{213, "03:33"},
		{3725, "01:02:05"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, FormatDuration(test.seconds))
	}
}

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		formatted string
		expected  int
	}{
		{"", -1},
		{"00:45", 45},
		{"03:33", 213},
		{"01:02:05", 3725},
		{"garbage", -1},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, parseDurationSeconds(test.formatted))
	}
}
