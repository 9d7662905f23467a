// Package convert transcodes local media files into audio-only formats
// using ffmpeg, reporting progress per task.
package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tunetap/tunetap/internal/model"
)

// FFmpeg constants for audio extraction settings
const (
	// Audio codec settings per target container
	CodecMP3  = "libmp3lame"
	CodecM4A  = "aac"
	CodecOpus = "libopus"

	AudioBitrate = "192k"

	// Executable and I/O constants
	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
	TaskIDPrefix        = "convert-"
)

// Service handles audio conversion operations
type Service struct {
	tasks      map[string]*model.ConversionTask
	tasksMutex sync.RWMutex
	onUpdate   func(*model.ConversionTask) // callback for UI updates
}

// NewService creates a new conversion service
func NewService() *Service {
	return &Service{
		tasks: make(map[string]*model.ConversionTask),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ConversionTask)) {
	s.onUpdate = callback
}

// StartConversion starts extracting audio from a media file into the
// given format (mp3, m4a or opus)
func (s *Service) StartConversion(inputPath, format string) (*model.ConversionTask, error) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	// Check if conversion is already in progress for this file
	for _, task := range s.tasks {
		if task.InputPath == inputPath && task.Status.IsActive() {
			return nil, fmt.Errorf("conversion already in progress for file: %s", inputPath)
		}
	}

	// Check if input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", inputPath)
	}

	if codecForFormat(format) == "" {
		return nil, fmt.Errorf("unsupported audio format: %s", format)
	}

	task := &model.ConversionTask{
		ID:         generateTaskID(),
		InputPath:  inputPath,
		OutputPath: generateOutputPath(inputPath, format),
		Status:     model.TaskStatusPending,
		Progress:   0.0,
		Percent:    0,
		StartedAt:  time.Now(),
	}

	s.tasks[task.ID] = task

	// Start conversion in background
	go s.startConversion(task, format)

	return task, nil
}

// StopConversion stops a running conversion task
func (s *Service) StopConversion(taskID string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return fmt.Errorf("conversion task not found: %s", taskID)
	}

	if !task.Status.IsActive() {
		return fmt.Errorf("conversion task is not active: %s", task.Status)
	}

	// Set stopping status
	task.Status = model.TaskStatusStopping
	s.notifyUpdate(task)

	return nil
}

// GetTask returns a conversion task by ID
func (s *Service) GetTask(taskID string) (*model.ConversionTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	return task, exists
}

// startConversion performs the actual conversion
func (s *Service) startConversion(task *model.ConversionTask, format string) {
	// Update status to starting
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusStarting
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	// Get duration of input file for progress calculation
	duration, err := s.getMediaDuration(task.InputPath)
	if err != nil {
		log.Printf("Failed to get media duration for %s: %v", task.InputPath, err)
		s.setTaskError(task, err)
		return
	}

	// Create context for cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Monitor for stop requests
	go func() {
		for {
			s.tasksMutex.RLock()
			status := task.Status
			s.tasksMutex.RUnlock()

			if status == model.TaskStatusStopping {
				cancel()
				return
			}
			if status.IsFinished() {
				return
			}
			time.Sleep(100 * time.Millisecond)
		}
	}()

	// Update status to converting
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusDownloading
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	// Build ffmpeg command
	args := s.BuildFFmpegArgs(task.InputPath, task.OutputPath, format)
	cmd := exec.CommandContext(ctx, FFmpegCommand, args...)

	// Setup progress monitoring
	stderr, err := cmd.StderrPipe()
	if err != nil {
		s.setTaskError(task, fmt.Errorf("failed to create stderr pipe: %w", err))
		return
	}

	// Start ffmpeg process
	if err := cmd.Start(); err != nil {
		s.setTaskError(task, fmt.Errorf("failed to start ffmpeg: %w", err))
		return
	}

	// Monitor progress
	go s.monitorProgress(stderr, task, duration)

	// Wait for completion
	err = cmd.Wait()

	// Handle result
	s.tasksMutex.Lock()
	if ctx.Err() == context.Canceled {
		task.Status = model.TaskStatusStopped
		// Remove partial output file
		os.Remove(task.OutputPath)
	} else if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
		// Remove partial output file
		os.Remove(task.OutputPath)
	} else {
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// BuildFFmpegArgs builds the ffmpeg command arguments for audio extraction
func (s *Service) BuildFFmpegArgs(inputPath, outputPath, format string) []string {
	return []string{
		"-y",            // Overwrite output file
		"-i", inputPath, // Input file
		"-vn",                      // Drop video streams
		"-c:a", codecForFormat(format), // Audio codec
		"-b:a", AudioBitrate, // Audio bitrate
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats", // No stats output
		outputPath, // Output file
	}
}

// getMediaDuration gets the duration of a media file using ffprobe
func (s *Service) getMediaDuration(filePath string) (float64, error) {
	cmd := exec.Command(FFprobeCommand, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	durationStr := strings.TrimSpace(string(output))
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return duration, nil
}

// monitorProgress monitors ffmpeg progress output
func (s *Service) monitorProgress(stderr io.ReadCloser, task *model.ConversionTask, totalDuration float64) {
	defer stderr.Close()
	scanner := bufio.NewScanner(stderr)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Parse progress line: out_time_us=123456
		if strings.HasPrefix(line, ProgressTimePrefix) {
			timeStr := strings.TrimPrefix(line, ProgressTimePrefix)
			timeMicroseconds, err := strconv.ParseInt(timeStr, 10, 64)
			if err != nil {
				continue
			}

			// Convert to seconds
			timeSeconds := float64(timeMicroseconds) / 1000000.0

			// Calculate progress percentage
			if totalDuration > 0 {
				progress := timeSeconds / totalDuration
				if progress > 1.0 {
					progress = 1.0
				}

				s.tasksMutex.Lock()
				task.Progress = progress
				task.Percent = int(progress * 100)
				s.tasksMutex.Unlock()

				s.notifyUpdate(task)
			}
		}
	}
}

// setTaskError sets an error state for a task
func (s *Service) setTaskError(task *model.ConversionTask, err error) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ConversionTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// codecForFormat maps a target container to its ffmpeg encoder
func codecForFormat(format string) string {
	switch format {
	case "mp3":
		return CodecMP3
	case "m4a":
		return CodecM4A
	case "opus":
		return CodecOpus
	default:
		return ""
	}
}

// generateOutputPath generates the output path for the extracted audio.
// When the input already carries the target extension, a suffix keeps the
// output from clobbering the input.
func generateOutputPath(inputPath, format string) string {
	ext := filepath.Ext(inputPath)
	baseName := strings.TrimSuffix(inputPath, ext)

	outputPath := baseName + "." + format
	if outputPath == inputPath {
		outputPath = baseName + "-audio." + format
	}
	return outputPath
}

// generateTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
