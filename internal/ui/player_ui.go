package ui

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/dustin/go-humanize"

	"github.com/tunetap/tunetap/internal/config"
	"github.com/tunetap/tunetap/internal/download"
	"github.com/tunetap/tunetap/internal/extract"
	"github.com/tunetap/tunetap/internal/model"
	"github.com/tunetap/tunetap/internal/platform"
	"github.com/tunetap/tunetap/internal/player"
)

// PlayerUI is the main window of the stream player: paste a URL, then
// either stream its audio directly or download it as an audio file.
type PlayerUI struct {
	window fyne.Window

	urlEntry    *widget.Entry
	streamBtn   *widget.Button
	downloadBtn *widget.Button
	statusLabel *widget.Label
	trackLabel  *widget.Label

	downloadProgress *widget.ProgressBar
	downloadLabel    *widget.Label

	transport *TransportBar

	resolver     extract.Resolver
	downloadSvc  download.Downloader
	playerSvc    *player.Service
	sitePlaylist *platform.SitePlaylistService
	settings     *config.Settings
	localization *Localization
}

// NewPlayerUI creates and initializes the stream player window
func NewPlayerUI(window fyne.Window, app fyne.App, resolver extract.Resolver, downloadSvc download.Downloader, playerSvc *player.Service) *PlayerUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	// Ensure download directory exists
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Printf("Failed to ensure downloads dir %s: %v", downloadsDir, err)
	}

	ui := &PlayerUI{
		window:       window,
		resolver:     resolver,
		downloadSvc:  downloadSvc,
		playerSvc:    playerSvc,
		sitePlaylist: platform.NewSitePlaylistService(),
		settings:     settings,
		localization: localization,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.downloadSvc.SetUpdateCallback(ui.onTaskUpdate)
	ui.playerSvc.SetStateCallback(ui.onPlaybackStateChange)
	ui.playerSvc.SetTrackChangeCallback(ui.onTrackChange)
	ui.playerSvc.SetErrorCallback(ui.onPlaybackError)

	ui.setupUI()
	ui.startPositionTicker()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *PlayerUI) setupUI() {
	ui.createMenu()

	// URL entry row
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.Validator = ui.validateURL
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onStreamClick()
	}

	ui.streamBtn = widget.NewButton(ui.localization.GetText(KeyStream), ui.onStreamClick)
	ui.streamBtn.Importance = widget.HighImportance
	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownload), ui.onDownloadClick)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	folderBtn := widget.NewButton(IconFolder, ui.onChooseFolder)
	folderBtn.Importance = widget.LowImportance

	actionButtons := container.NewHBox(ui.streamBtn, ui.downloadBtn, folderBtn)
	topPanel := container.NewBorder(nil, nil, settingsBtn, actionButtons, ui.urlEntry)

	// Status / now playing
	ui.statusLabel = widget.NewLabel(ui.localization.GetText(KeyReady))
	ui.trackLabel = widget.NewLabel(DashPlaceholder)
	ui.trackLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.trackLabel.Truncation = fyne.TextTruncateEllipsis

	// Download progress (hidden until a download starts)
	ui.downloadProgress = widget.NewProgressBar()
	ui.downloadLabel = widget.NewLabel("")
	ui.downloadProgress.Hide()
	ui.downloadLabel.Hide()

	// Transport
	ui.transport = NewTransportBar()
	ui.transport.SetCallbacks(
		ui.onPrevClick,
		ui.onPlayPauseClick,
		ui.onStopClick,
		ui.onNextClick,
	)

	content := container.NewVBox(
		topPanel,
		widget.NewSeparator(),
		ui.trackLabel,
		ui.statusLabel,
		ui.transport.Container(),
		widget.NewSeparator(),
		ui.downloadLabel,
		ui.downloadProgress,
	)

	ui.window.SetContent(content)
}

// createMenu creates the application menu
func (ui *PlayerUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)
	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *PlayerUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *PlayerUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.streamBtn.SetText(ui.localization.GetText(KeyStream))
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
}

// validateURL validates the entered URL
func (ui *PlayerUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	return nil
}

// takeURL validates and returns the entered URL, showing errors inline
func (ui *PlayerUI) takeURL() (string, bool) {
	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		dialog.ShowError(fmt.Errorf("%s", ui.localization.GetText(KeyPleaseEnterURL)), ui.window)
		return "", false
	}

	if err := ui.validateURL(urlText); err != nil {
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyInvalidURL), err), ui.window)
		return "", false
	}

	return urlText, true
}

// setBusy disables the URL actions while background work is running
func (ui *PlayerUI) setBusy(busy bool) {
	if busy {
		ui.streamBtn.Disable()
		ui.downloadBtn.Disable()
		ui.urlEntry.Disable()
	} else {
		ui.streamBtn.Enable()
		ui.downloadBtn.Enable()
		ui.urlEntry.Enable()
	}
}

// onStreamClick resolves the URL to an audio stream and plays it
func (ui *PlayerUI) onStreamClick() {
	urlText, ok := ui.takeURL()
	if !ok {
		return
	}

	ui.setBusy(true)
	ui.statusLabel.SetText(ui.localization.GetText(KeyResolvingStream))

	if ui.sitePlaylist.IsPlaylistURL(urlText) {
		ui.streamPlaylist(urlText)
		return
	}

	go func() {
		info, err := ui.resolver.Resolve(context.Background(), urlText)

		fyne.Do(func() {
			ui.setBusy(false)

			if err != nil {
				log.Printf("Stream resolution failed for %s: %v", urlText, err)
				ui.statusLabel.SetText(ui.localization.GetText(KeyReady))
				dialog.ShowError(err, ui.window)
				return
			}

			track := &model.Track{
				Title:    info.Title,
				Source:   info.URL,
				Duration: formatPosition(info.Duration),
				AddedAt:  time.Now(),
			}
			index := ui.playerSvc.AddTrack(track)
			ui.urlEntry.SetText("")

			if err := ui.playerSvc.PlayIndex(context.Background(), index); err != nil {
				dialog.ShowError(err, ui.window)
			}
		})
	}()
}

// streamPlaylist expands a playlist URL and queues all its entries
func (ui *PlayerUI) streamPlaylist(urlText string) {
	ui.statusLabel.SetText(ui.localization.GetText(KeyExpandingPlaylist))

	go func() {
		tracks, err := ui.sitePlaylist.ExpandPlaylist(context.Background(), urlText)

		fyne.Do(func() {
			ui.setBusy(false)

			if err != nil {
				log.Printf("Playlist expansion failed for %s: %v", urlText, err)
				ui.statusLabel.SetText(ui.localization.GetText(KeyReady))
				dialog.ShowError(err, ui.window)
				return
			}

			firstIndex := -1
			for _, track := range tracks {
				index := ui.playerSvc.AddTrack(track)
				if firstIndex < 0 {
					firstIndex = index
				}
			}
			ui.urlEntry.SetText("")

			if firstIndex < 0 {
				dialog.ShowError(fmt.Errorf("%s", ui.localization.GetText(KeyPlaylistEmpty)), ui.window)
				return
			}

			if !ui.playerSvc.State().IsActive() {
				if err := ui.playerSvc.PlayIndex(context.Background(), firstIndex); err != nil {
					dialog.ShowError(err, ui.window)
				}
			}
		})
	}()
}

// onDownloadClick queues the URL for audio download
func (ui *PlayerUI) onDownloadClick() {
	urlText, ok := ui.takeURL()
	if !ok {
		return
	}

	task, err := ui.downloadSvc.AddTask(urlText)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			dialog.ShowError(fmt.Errorf("%s", ui.localization.GetText(KeyAlreadyInQueue)), ui.window)
		} else {
			dialog.ShowError(err, ui.window)
		}
		return
	}

	log.Printf("Download task added: id=%s url=%s", task.ID, task.URL)

	ui.urlEntry.SetText("")
	ui.downloadLabel.SetText(ui.localization.GetText(KeyDownloadStarted))
	ui.downloadLabel.Show()
	ui.downloadProgress.SetValue(0)
	ui.downloadProgress.Show()
}

// onChooseFolder selects the download directory from the main window
func (ui *PlayerUI) onChooseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if uri == nil {
			return
		}

		dir := uri.Path()
		ui.settings.SetDownloadDirectory(dir)
		ui.downloadSvc.SetDownloadDirectory(dir)
		log.Printf("Download directory set to %s", dir)
	}, ui.window)
}

// onTaskUpdate handles task updates from the download service
func (ui *PlayerUI) onTaskUpdate(task *model.DownloadTask) {
	fyne.Do(func() {
		switch {
		case task.Status == model.TaskStatusCompleted:
			ui.downloadProgress.SetValue(1)
			label := ui.localization.GetText(KeyDownloadCompleted) + MiddleDotSeparator + task.GetDisplayTitle()
			if task.FileSize > 0 {
				label += MiddleDotSeparator + humanize.Bytes(uint64(task.FileSize))
			}
			ui.downloadLabel.SetText(label)
			ui.onDownloadCompleted(task)
		case task.Status == model.TaskStatusError:
			ui.downloadLabel.SetText(task.GetDisplayTitle() + MiddleDotSeparator + task.LastError)
			dialog.ShowError(fmt.Errorf("download failed: %s", task.LastError), ui.window)
		case task.Status.IsActive():
			ui.downloadProgress.SetValue(task.Progress)
			label := task.GetDisplayTitle()
			if task.Speed != "" {
				label += MiddleDotSeparator + task.Speed
			}
			if task.ETASec > 0 {
				label += MiddleDotSeparator + task.GetETAString()
			}
			ui.downloadLabel.SetText(label)
		}
	})
}

// onDownloadCompleted queues the downloaded file and notifies the user
func (ui *PlayerUI) onDownloadCompleted(task *model.DownloadTask) {
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyDownloadCompleted),
		Content: task.GetDisplayTitle(),
	})

	if task.OutputPath == "" {
		return
	}

	track := &model.Track{
		Title:   task.GetDisplayTitle(),
		Source:  task.OutputPath,
		AddedAt: time.Now(),
	}
	index := ui.playerSvc.AddTrack(track)

	if ui.settings.GetAutoPlayOnAdd() && !ui.playerSvc.State().IsActive() {
		if err := ui.playerSvc.PlayIndex(context.Background(), index); err != nil {
			dialog.ShowError(err, ui.window)
		}
	}
}

// Transport handlers

func (ui *PlayerUI) onPlayPauseClick() {
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

func (ui *PlayerUI) onStopClick() {
	if err := ui.playerSvc.Stop(); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

func (ui *PlayerUI) onNextClick() {
	if err := ui.playerSvc.Next(context.Background()); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

func (ui *PlayerUI) onPrevClick() {
	if err := ui.playerSvc.Prev(context.Background()); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

// onPlaybackStateChange reflects engine state in the status label and
// transport buttons
func (ui *PlayerUI) onPlaybackStateChange(state model.PlaybackState) {
	fyne.Do(func() {
		ui.statusLabel.SetText(state.String())
		ui.transport.SetPlaying(state == model.PlaybackPlaying)

		if !state.IsActive() {
			ui.transport.Reset()
		}
	})
}

// onPlaybackError surfaces playback failures from background goroutines
func (ui *PlayerUI) onPlaybackError(err error) {
	fyne.Do(func() {
		dialog.ShowError(err, ui.window)
	})
}

// onTrackChange reflects the new current track in the header
func (ui *PlayerUI) onTrackChange(index int, track *model.Track) {
	fyne.Do(func() {
		ui.trackLabel.SetText(track.DisplayTitle())
	})
}

// onShowSettings shows the settings dialog
func (ui *PlayerUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		// Propagate changed settings to the download service
		ui.downloadSvc.SetDownloadDirectory(ui.settings.GetDownloadDirectory())
		ui.downloadSvc.SetAudioFormat(string(ui.settings.GetAudioFormat()))
		ui.downloadSvc.SetMaxParallelDownloads(ui.settings.GetMaxParallelDownloads())
	}).Show()
}

// startPositionTicker refreshes the transport progress while playing
func (ui *PlayerUI) startPositionTicker() {
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
