package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tunetap/tunetap/internal/model"
)

func TestNewService(t *testing.T) {
	service := NewService()

	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}
}

func TestStartConversion_MissingFile(t *testing.T) {
	service := NewService()

	_, err := service.StartConversion(filepath.Join(t.TempDir(), "missing.mp4"), "mp3")
	if err == nil {
		t.Error("Expected error for missing input file, got nil")
	}
}

func TestStartConversion_UnsupportedFormat(t *testing.T) {
	service := NewService()

	input := filepath.Join(t.TempDir(), "input.mp4")
	if err := os.WriteFile(input, []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to create input file: %v", err)
	}

	_, err := service.StartConversion(input, "wav")
	if err == nil {
		t.Error("Expected error for unsupported format, got nil")
	}
}

func TestStopConversion_NotFound(t *testing.T) {
	service := NewService()

	if err := service.StopConversion("missing"); err == nil {
		t.Error("Expected error for unknown task, got nil")
	}
}

func TestBuildFFmpegArgs(t *testing.T) {
	service := NewService()

	args := service.BuildFFmpegArgs("/in/video.mp4", "/out/audio.mp3", "mp3")

	joined := strings.Join(args, " ")
	expected := []string{
		"-i /in/video.mp4",
		"-vn",
		"-c:a " + CodecMP3,
		"-b:a " + AudioBitrate,
		"-progress " + ProgressPipeTarget,
		"/out/audio.mp3",
	}
	for _, part := range expected {
		if !strings.Contains(joined, part) {
			t.Errorf("Expected args to contain %q, got: %s", part, joined)
		}
	}
}

func TestCodecForFormat(t *testing.T) {
	tests := []struct {
		format   string
		expected string
	}{
		{"mp3", CodecMP3},
		{"m4a", CodecM4A},
		{"opus", CodecOpus},
		{"wav", ""},
		{"", ""},
	}

	for _, test := range tests {
		if got := codecForFormat(test.format); got != test.expected {
			t.Errorf("codecForFormat(%s) = %q, expected %q", test.format, got, test.expected)
		}
	}
}

func TestGenerateOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		format   string
		expected string
	}{
		{"/videos/clip.mp4", "mp3", "/videos/clip.mp3"},
		{"/videos/clip.webm", "opus", "/videos/clip.opus"},
		{"/music/song.mp3", "mp3", "/music/song-audio.mp3"},
	}

	for _, test := range tests {
		if got := generateOutputPath(test.input, test.format); got != test.expected {
			t.Errorf("generateOutputPath(%s, %s) = %s, expected %s", test.input, test.format, got, test.expected)
		}
	}
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	id2 := generateTaskID()

	if id1 == id2 {
		t.Error("Expected different task IDs")
	}

	if !strings.HasPrefix(id1, TaskIDPrefix) {
		t.Errorf("Expected ID to start with %q, got: %s", TaskIDPrefix, id1)
	}
}

func TestUpdateCallback(t *testing.T) {
	service := NewService()

	updateCalled := false
	service.SetUpdateCallback(func(task *model.ConversionTask) {
		updateCalled = true
	})

	task := &model.ConversionTask{
		ID:     "test-id",
		Status: model.TaskStatusDownloading,
	}
	service.notifyUpdate(task)

	if !updateCalled {
		t.Error("Expected update callback to be called")
	}
}
