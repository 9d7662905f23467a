package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/tunetap/tunetap/internal/config"
	"github.com/tunetap/tunetap/internal/convert"
	"github.com/tunetap/tunetap/internal/extract"
	"github.com/tunetap/tunetap/internal/model"
	"github.com/tunetap/tunetap/internal/platform"
	"github.com/tunetap/tunetap/internal/player"
)

// File dialog filters
var (
	playlistExtensions = []string{".m3u", ".m3u8"}
	videoExtensions    = []string{".mp4", ".webm", ".mkv", ".mov", ".avi"}
)

// PlaylistUI is the main window of the playlist player: an ordered list
// of local files and stream URLs with transport controls.
type PlaylistUI struct {
	window fyne.Window

	trackList   *widget.List
	trackLabel  *widget.Label
	statusLabel *widget.Label
	transport   *TransportBar

	playerSvc    *player.Service
	resolver     extract.Resolver
	convertSvc   convert.Converter
	settings     *config.Settings
	localization *Localization
}

// NewPlaylistUI creates and initializes the playlist player window
func NewPlaylistUI(window fyne.Window, app fyne.App, playerSvc *player.Service, resolver extract.Resolver, convertSvc convert.Converter) *PlaylistUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &PlaylistUI{
		window:       window,
		playerSvc:    playerSvc,
		resolver:     resolver,
		convertSvc:   convertSvc,
		settings:     settings,
		localization: localization,
	}

	window.SetTitle(localization.GetText(KeyPlaylistTitle))

	ui.playerSvc.SetStateCallback(ui.onPlaybackStateChange)
	ui.playerSvc.SetTrackChangeCallback(ui.onTrackChange)
	ui.playerSvc.SetErrorCallback(ui.onPlaybackError)
	ui.convertSvc.SetUpdateCallback(ui.onConversionUpdate)

	ui.setupUI()
	ui.startPositionTicker()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *PlaylistUI) setupUI() {
	// Toolbar
	addFileBtn := widget.NewButton(ui.localization.GetText(KeyAddFile), ui.onAddFile)
	addURLBtn := widget.NewButton(ui.localization.GetText(KeyAddURL), ui.onAddURL)
	openBtn := widget.NewButton(ui.localization.GetText(KeyOpenPlaylist), ui.onOpenPlaylist)
	saveBtn := widget.NewButton(ui.localization.GetText(KeySavePlaylist), ui.onSavePlaylist)
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	toolbar := container.NewHBox(addFileBtn, addURLBtn, openBtn, saveBtn, settingsBtn)

	// Track list
	ui.trackList = widget.NewList(
		func() int {
			return len(ui.playerSvc.Tracks())
		},
		func() fyne.CanvasObject {
			row := NewTrackRow()
			row.SetCallbacks(ui.onPlayTrack, ui.onRemoveTrack)
			return row
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			ui.updateTrackItem(id, obj)
		},
	)
	ui.trackList.OnSelected = func(id widget.ListItemID) {
		ui.trackList.Unselect(id)
		ui.onPlayTrack(id)
	}

	// Now playing / status
	ui.trackLabel = widget.NewLabel(DashPlaceholder)
	ui.trackLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.trackLabel.Truncation = fyne.TextTruncateEllipsis
	ui.statusLabel = widget.NewLabel(ui.localization.GetText(KeyReady))

	// Transport
	ui.transport = NewTransportBar()
	ui.transport.SetCallbacks(
		ui.onPrevClick,
		ui.onPlayPauseClick,
		ui.onStopClick,
		ui.onNextClick,
	)

	bottom := container.NewVBox(
		widget.NewSeparator(),
		ui.trackLabel,
		ui.statusLabel,
		ui.transport.Container(),
	)

	content := container.NewBorder(
		toolbar,      // top
		bottom,       // bottom
		nil,          // left
		nil,          // right
		ui.trackList, // center
	)

	ui.window.SetContent(content)
}

// updateTrackItem updates a list row with current data
func (ui *PlaylistUI) updateTrackItem(id widget.ListItemID, item fyne.CanvasObject) {
	tracks := ui.playerSvc.Tracks()
	if id >= len(tracks) {
		return
	}

	row, ok := item.(*TrackRow)
	if !ok {
		return
	}

	row.SetCallbacks(ui.onPlayTrack, ui.onRemoveTrack)
	row.UpdateTrack(id, tracks[id], id == ui.playerSvc.CurrentIndex())
}

// onAddFile adds a local audio file to the playlist
func (ui *PlaylistUI) onAddFile() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		// Video files get their audio extracted first; the resulting
		// file is queued when the conversion completes
		if !platform.IsAudioFile(path) {
			ui.startConversion(path)
			return
		}

		ui.addTrack(&model.Track{
			Source:  path,
			AddedAt: time.Now(),
		})
	}, ui.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(append(platform.AudioExtensions, videoExtensions...)))
	fileDialog.Show()
}

// startConversion extracts the audio track from a video file
func (ui *PlaylistUI) startConversion(path string) {
	task, err := ui.convertSvc.StartConversion(path, string(ui.settings.GetAudioFormat()))
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	log.Printf("Conversion started: id=%s input=%s output=%s", task.ID, task.InputPath, task.OutputPath)
	ui.statusLabel.SetText(ui.localization.GetText(KeyResolvingStream))
}

// onConversionUpdate queues the extracted audio once conversion finishes
func (ui *PlaylistUI) onConversionUpdate(task *model.ConversionTask) {
	fyne.Do(func() {
		switch task.Status {
		case model.TaskStatusCompleted:
			ui.statusLabel.SetText(ui.localization.GetText(KeyReady))
			ui.addTrack(&model.Track{
				Source:  task.OutputPath,
				AddedAt: time.Now(),
			})
		case model.TaskStatusError:
			ui.statusLabel.SetText(ui.localization.GetText(KeyReady))
			dialog.ShowError(fmt.Errorf("conversion failed: %s", task.LastError), ui.window)
		}
	})
}

// onAddURL prompts for a stream or watch-page URL and queues it
func (ui *PlaylistUI) onAddURL() {
	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))

	form := []*widget.FormItem{
		widget.NewFormItem("URL", urlEntry),
	}

	dialog.ShowForm(ui.localization.GetText(KeyAddURL), ui.localization.GetText(KeySave), ui.localization.GetText(KeyCancel), form, func(confirmed bool) {
		if !confirmed {
			return
		}

		urlText := strings.TrimSpace(urlEntry.Text)
		if urlText == "" {
			dialog.ShowError(fmt.Errorf("%s", ui.localization.GetText(KeyPleaseEnterURL)), ui.window)
			return
		}
		if !strings.HasPrefix(urlText, "http://") && !strings.HasPrefix(urlText, "https://") {
			dialog.ShowError(fmt.Errorf("%s: %s", ui.localization.GetText(KeyInvalidURL), urlText), ui.window)
			return
		}

		ui.statusLabel.SetText(ui.localization.GetText(KeyResolvingStream))

		// Watch-page URLs are resolved to direct streams in the background;
		// anything else is assumed to be a playable stream already
		go func() {
			track := &model.Track{
				Source:  urlText,
				AddedAt: time.Now(),
			}

			if info, err := ui.resolver.Resolve(context.Background(), urlText); err == nil {
				track.Title = info.Title
				track.Source = info.URL
				track.Duration = formatPosition(info.Duration)
			} else {
				log.Printf("Using URL as-is, resolution failed for %s: %v", urlText, err)
			}

			fyne.Do(func() {
				ui.statusLabel.SetText(ui.localization.GetText(KeyReady))
				ui.addTrack(track)
			})
		}()
	}, ui.window)
}

// addTrack appends the track, refreshes the list and honors auto-play
func (ui *PlaylistUI) addTrack(track *model.Track) {
	index := ui.playerSvc.AddTrack(track)
	ui.trackList.Refresh()

	if ui.settings.GetAutoPlayOnAdd() && !ui.playerSvc.State().IsActive() {
		if err := ui.playerSvc.PlayIndex(context.Background(), index); err != nil {
			dialog.ShowError(err, ui.window)
		}
	}
}

// onOpenPlaylist loads an M3U playlist file, replacing the current list
func (ui *PlaylistUI) onOpenPlaylist() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		tracks, err := platform.ParseM3U(path)
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}

		if err := ui.playerSvc.LoadTracks(tracks); err != nil {
			dialog.ShowError(err, ui.window)
			return
		}

		log.Printf("Loaded playlist %s with %d tracks", path, len(tracks))
		ui.trackList.Refresh()
	}, ui.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(playlistExtensions))
	fileDialog.Show()
}

// onSavePlaylist writes the current list to an M3U playlist file
func (ui *PlaylistUI) onSavePlaylist() {
	tracks := ui.playerSvc.Tracks()
	if len(tracks) == 0 {
		dialog.ShowError(fmt.Errorf("%s", ui.localization.GetText(KeyPlaylistEmpty)), ui.window)
		return
	}

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := platform.WriteM3U(path, tracks); err != nil {
			dialog.ShowError(err, ui.window)
			return
		}

		log.Printf("Saved playlist %s with %d tracks", path, len(tracks))
	}, ui.window)
	fileDialog.SetFileName("playlist.m3u")
	fileDialog.SetFilter(storage.NewExtensionFileFilter(playlistExtensions))
	fileDialog.Show()
}

// onPlayTrack plays the track at the given index
func (ui *PlaylistUI) onPlayTrack(index int) {
	if err := ui.playerSvc.PlayIndex(context.Background(), index); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	ui.trackList.Refresh()
}

// onRemoveTrack removes the track at the given index
func (ui *PlaylistUI) onRemoveTrack(index int) {
	if err := ui.playerSvc.RemoveTrack(index); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	ui.trackList.Refresh()
}

// Transport handlers

func (ui *PlaylistUI) onPlayPauseClick() {
	if ui.playerSvc.State().IsActive() {
		if err := ui.playerSvc.TogglePause(); err != nil {
			dialog.ShowError(err, ui.window)
		}
		return
	}

	if err := ui.playerSvc.PlayCurrent(context.Background()); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

func (ui *PlaylistUI) onStopClick() {
	if err := ui.playerSvc.Stop(); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

func (ui *PlaylistUI) onNextClick() {
	if err := ui.playerSvc.Next(context.Background()); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

func (ui *PlaylistUI) onPrevClick() {
	if err := ui.playerSvc.Prev(context.Background()); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

// onPlaybackStateChange reflects engine state in the status label and
// transport buttons
func (ui *PlaylistUI) onPlaybackStateChange(state model.PlaybackState) {
	fyne.Do(func() {
		ui.statusLabel.SetText(state.String())
		ui.transport.SetPlaying(state == model.PlaybackPlaying)

		if !state.IsActive() {
			ui.transport.Reset()
		}
	})
}

// onPlaybackError surfaces playback failures from background goroutines
func (ui *PlaylistUI) onPlaybackError(err error) {
	fyne.Do(func() {
		dialog.ShowError(err, ui.window)
	})
}

// onTrackChange highlights the new current track
func (ui *PlaylistUI) onTrackChange(index int, track *model.Track) {
	fyne.Do(func() {
		ui.trackLabel.SetText(track.DisplayTitle())
		ui.trackList.Refresh()
		ui.trackList.ScrollTo(index)
	})
}

// onShowSettings shows the settings dialog
func (ui *PlaylistUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, nil).Show()
}

// startPositionTicker refreshes the transport progress while playing
func (ui *PlaylistUI) startPositionTicker() {
	go func() {
		ticker := time.NewTicker(PositionTickInterval)
		defer ticker.Stop()

		for range ticker.C {
			state := ui.playerSvc.State()
			if !state.IsActive() {
				continue
			}

			position := ui.playerSvc.Position()
			duration := ui.playerSvc.Duration()
			fyne.Do(func() {
				ui.transport.SetProgress(position, duration)
			})
		}
	}()
}
