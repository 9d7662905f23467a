package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"github.com/tunetap/tunetap/internal/convert"
	"github.com/tunetap/tunetap/internal/extract"
	"github.com/tunetap/tunetap/internal/player"
	"github.com/tunetap/tunetap/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.tunetap.tunetap-playlist"
	AppName = "TuneTap Playlist"

	WindowWidth  = 640
	WindowHeight = 480
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	resolver := extract.NewYouTubeResolver()
	playerSvc := player.NewService(player.NewFFplayPlayer(), resolver)
	convertSvc := convert.NewService()

	// Create and setup UI
	ui.NewPlaylistUI(myWindow, myApp, playerSvc, resolver, convertSvc)

	if !player.Available() {
		dialog.ShowError(fmt.Errorf("ffplay/ffprobe not found in PATH; playback is unavailable"), myWindow)
	}

	// Show and run
	myWindow.ShowAndRun()
}
