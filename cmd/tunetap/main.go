package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"github.com/tunetap/tunetap/internal/config"
	"github.com/tunetap/tunetap/internal/download"
	"github.com/tunetap/tunetap/internal/extract"
	"github.com/tunetap/tunetap/internal/platform"
	"github.com/tunetap/tunetap/internal/player"
	"github.com/tunetap/tunetap/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.tunetap.tunetap"
	AppName = "TuneTap"

	WindowWidth  = 720
	WindowHeight = 420
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		fmt.Printf("failed to ensure downloads dir: %v\n", err)
	}

	resolver := extract.NewYouTubeResolver()
	downloadSvc := download.NewService(downloadsDir, settings.GetMaxParallelDownloads(), string(settings.GetAudioFormat()))
	playerSvc := player.NewService(player.NewFFplayPlayer(), resolver)

	// Create and setup UI
	ui.NewPlayerUI(myWindow, myApp, resolver, downloadSvc, playerSvc)

	if !player.Available() {
		dialog.ShowError(fmt.Errorf("ffplay/ffprobe not found in PATH; playback is unavailable"), myWindow)
	}

	// Show and run
	myWindow.ShowAndRun()
}
