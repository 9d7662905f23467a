package config

import (
	"fyne.io/fyne/v2"

	"github.com/tunetap/tunetap/internal/platform"
)

// AudioFormat is the target container/codec for downloaded audio
type AudioFormat string

const (
	FormatMP3  AudioFormat = "mp3"
	FormatM4A  AudioFormat = "m4a"
	FormatOpus AudioFormat = "opus"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir   = "download_directory"
	KeyAudioFormat   = "audio_format"
	KeyMaxParallel   = "max_parallel_downloads"
	KeyLanguage      = "app_language"
	KeyAutoPlayOnAdd = "auto_play_on_add"
)

// Default values
const (
	DefaultMaxParallel   = 2
	DefaultAudioFormat   = FormatMP3
	DefaultLanguage      = "system"
	DefaultAutoPlayOnAdd = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetAudioFormat returns the configured target audio format
func (s *Settings) GetAudioFormat() AudioFormat {
	format := s.app.Preferences().String(KeyAudioFormat)
	if format == "" {
		s.SetAudioFormat(DefaultAudioFormat)
		return DefaultAudioFormat
	}
	return AudioFormat(format)
}

// SetAudioFormat sets the target audio format
func (s *Settings) SetAudioFormat(format AudioFormat) {
	s.app.Preferences().SetString(KeyAudioFormat, string(format))
}

// GetAudioFormatOptions returns available audio format options
func (s *Settings) GetAudioFormatOptions() []AudioFormat {
	return []AudioFormat{FormatMP3, FormatM4A, FormatOpus}
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetAutoPlayOnAdd returns whether newly added tracks start playing immediately
func (s *Settings) GetAutoPlayOnAdd() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoPlayOnAdd, DefaultAutoPlayOnAdd)
}

// SetAutoPlayOnAdd sets whether newly added tracks start playing immediately
func (s *Settings) SetAutoPlayOnAdd(autoPlay bool) {
	s.app.Preferences().SetBool(KeyAutoPlayOnAdd, autoPlay)
}
