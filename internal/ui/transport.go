package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// TransportBar groups the playback controls shared by both windows:
// previous, play/pause, stop, next, a progress bar and a position label.
type TransportBar struct {
	prevBtn      *widget.Button
	playPauseBtn *widget.Button
	stopBtn      *widget.Button
	nextBtn      *widget.Button

	progressBar   *widget.ProgressBar
	positionLabel *widget.Label

	container *fyne.Container

	// Callbacks
	onPrev      func()
	onPlayPause func()
	onStop      func()
	onNext      func()
}

// NewTransportBar creates a new transport bar
func NewTransportBar() *TransportBar {
	tb := &TransportBar{}

	tb.prevBtn = widget.NewButton(IconPrev, func() {
		if tb.onPrev != nil {
			tb.onPrev()
		}
	})
	tb.playPauseBtn = widget.NewButton(IconPlay, func() {
		if tb.onPlayPause != nil {
			tb.onPlayPause()
		}
	})
	tb.stopBtn = widget.NewButton(IconStop, func() {
		if tb.onStop != nil {
			tb.onStop()
		}
	})
	tb.nextBtn = widget.NewButton(IconNext, func() {
		if tb.onNext != nil {
			tb.onNext()
		}
	})

	tb.progressBar = widget.NewProgressBar()
	tb.positionLabel = widget.NewLabel(DashPlaceholder)

	buttons := container.NewHBox(tb.prevBtn, tb.playPauseBtn, tb.stopBtn, tb.nextBtn)
	tb.container = container.NewBorder(nil, nil, buttons, tb.positionLabel, tb.progressBar)

	return tb
}

// Container returns the transport bar layout
func (tb *TransportBar) Container() *fyne.Container {
	return tb.container
}

// SetCallbacks sets the transport control callbacks
func (tb *TransportBar) SetCallbacks(onPrev, onPlayPause, onStop, onNext func()) {
	tb.onPrev = onPrev
	tb.onPlayPause = onPlayPause
	tb.onStop = onStop
	tb.onNext = onNext
}

// SetEnabled enables or disables all transport buttons
func (tb *TransportBar) SetEnabled(enabled bool) {
	buttons := []*widget.Button{tb.prevBtn, tb.playPauseBtn, tb.stopBtn, tb.nextBtn}
	for _, btn := range buttons {
		if enabled {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
}

// SetPlaying switches the play/pause button icon
func (tb *TransportBar) SetPlaying(playing bool) {
	if playing {
		tb.playPauseBtn.SetText(IconPause)
	} else {
		tb.playPauseBtn.SetText(IconPlay)
	}
}

// SetProgress updates the progress bar and position label. Duration 0
// means unknown; the bar then stays empty and only elapsed time is shown.
func (tb *TransportBar) SetProgress(position, duration time.Duration) {
	if duration > 0 {
		tb.progressBar.SetValue(float64(position) / float64(duration))
		tb.positionLabel.SetText(fmt.Sprintf(PositionLabelFormat, formatPosition(position), formatPosition(duration)))
	} else {
		tb.progressBar.SetValue(0)
		tb.positionLabel.SetText(formatPosition(position))
	}
}

// Reset clears the progress display
func (tb *TransportBar) Reset() {
	tb.progressBar.SetValue(0)
	tb.positionLabel.SetText(DashPlaceholder)
	tb.SetPlaying(false)
}

// formatPosition renders a duration as MM:SS or HH:MM:SS
func formatPosition(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
