package model

import "testing"

func TestGetETAString(t *testing.T) {
	tests := []struct {
		name     string
		etaSec   int
		expected string
	}{
		{"unknown ETA", -1, "—"},
		{"zero ETA", 0, "—"},
		{"seconds only", 45, "00:45"},
		{"minutes and seconds", 125, "02:05"},
		{"hours", 3725, "01:02:05"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			task := &DownloadTask{ETASec: test.etaSec}
			if got := task.GetETAString(); got != test.expected {
				t.Errorf("GetETAString() = %s, expected %s", got, test.expected)
			}
		})
	}
}

func TestGetDisplayTitle(t *testing.T) {
	tests := []struct {
		name     string
		task     DownloadTask
		expected string
	}{
		{
			name:     "title preferred",
			task:     DownloadTask{Title: "Some Song", OutputPath: "/downloads/file.mp3", URL: "https://example.com/watch?v=1"},
			expected: "Some Song",
		},
		{
			name:     "URL-looking title skipped",
			task:     DownloadTask{Title: "https://example.com/watch?v=1", OutputPath: "/downloads/Track Name.mp3"},
			expected: "Track Name",
		},
		{
			name:     "filename without extension",
			task:     DownloadTask{OutputPath: "/downloads/Artist - Song.m4a"},
			expected: "Artist - Song",
		},
		{
			name:     "windows path separators",
			task:     DownloadTask{OutputPath: `C:\Downloads\Artist - Song.mp3`},
			expected: "Artist - Song",
		},
		{
			name:     "fallback to URL",
			task:     DownloadTask{URL: "https://example.com/watch?v=1"},
			expected: "https://example.com/watch?v=1",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.task.GetDisplayTitle(); got != test.expected {
				t.Errorf("GetDisplayTitle() = %q, expected %q", got, test.expected)
			}
		})
	}
}
