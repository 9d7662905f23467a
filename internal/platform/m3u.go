package platform

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tunetap/tunetap/internal/model"
)

// M3U format markers
const (
	M3UHeader     = "#EXTM3U"
	M3UInfoPrefix = "#EXTINF:"
)

// Time formatting constants
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

// ParseM3U reads a .m3u/.m3u8 playlist file into tracks. Entries may be
// absolute paths, paths relative to the playlist file, or stream URLs.
// Comment lines other than #EXTINF are ignored.
func ParseM3U(path string) ([]*model.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist: %w", err)
	}
	defer f.Close()

	baseDir := filepath.Dir(path)
	var tracks []*model.Track

	// Pending #EXTINF metadata applied to the next entry line
	pendingTitle := ""
	pendingDuration := ""

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == M3UHeader {
			continue
		}

		if strings.HasPrefix(line, M3UInfoPrefix) {
			pendingDuration, pendingTitle = parseExtInf(line)
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		source := line
		if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") && !filepath.IsAbs(source) {
			source = filepath.Join(baseDir, source)
		}

		tracks = append(tracks, &model.Track{
			Title:    pendingTitle,
			Source:   source,
			Duration: pendingDuration,
			AddedAt:  time.Now(),
		})
		pendingTitle = ""
		pendingDuration = ""
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read playlist: %w", err)
	}

	return tracks, nil
}

// WriteM3U writes tracks to an extended-M3U playlist file
func WriteM3U(path string, tracks []*model.Track) error {
	var b strings.Builder
	b.WriteString(M3UHeader + "\n")

	for _, track := range tracks {
		duration := parseDurationSeconds(track.Duration)
		b.WriteString(fmt.Sprintf("%s%d,%s\n", M3UInfoPrefix, duration, track.DisplayTitle()))
		b.WriteString(track.Source + "\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write playlist: %w", err)
	}
	return nil
}

// parseExtInf parses "#EXTINF:duration,title" into formatted duration and title
func parseExtInf(line string) (duration, title string) {
	payload := strings.TrimPrefix(line, M3UInfoPrefix)
	parts := strings.SplitN(payload, ",", 2)

	if seconds, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil && seconds > 0 {
		duration = FormatDuration(seconds)
	}
	if len(parts) == 2 {
		title = strings.TrimSpace(parts[1])
	}
	return duration, title
}

// parseDurationSeconds converts a formatted hh:mm:ss or mm:ss duration back to
// seconds, returning -1 when unknown (the conventional M3U placeholder)
func parseDurationSeconds(formatted string) int {
	if formatted == "" {
		return -1
	}

	parts := strings.Split(formatted, ":")
	seconds := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return -1
		}
		seconds = seconds*SecondsPerMinute + n
	}
	return seconds
}

// FormatDuration formats seconds into HH:MM:SS or MM:SS
func FormatDuration(seconds int) string {
	hours := seconds / SecondsPerHour
	minutes := (seconds % SecondsPerHour) / SecondsPerMinute
	secs := seconds % SecondsPerMinute
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
