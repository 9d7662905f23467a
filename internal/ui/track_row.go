package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/tunetap/tunetap/internal/model"
)

// TrackRow represents a compact playlist row widget
type TrackRow struct {
	widget.BaseWidget

	track *model.Track
	index int

	// UI components
	markerLabel   *widget.Label
	titleLabel    *widget.Label
	durationLabel *widget.Label
	playBtn       *widget.Button
	removeBtn     *widget.Button

	// Callbacks
	onPlay   func(index int)
	onRemove func(index int)
}

// NewTrackRow creates a new track row widget
func NewTrackRow() *TrackRow {
	tr := &TrackRow{
		track: &model.Track{},
		index: -1,
	}
	tr.ExtendBaseWidget(tr)

	tr.markerLabel = widget.NewLabel(" ")
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis
	tr.durationLabel = widget.NewLabel(DashPlaceholder)

	tr.playBtn = widget.NewButton(IconPlay, func() {
		if tr.onPlay != nil && tr.index >= 0 {
			tr.onPlay(tr.index)
		}
	})
	tr.playBtn.Importance = widget.LowImportance

	tr.removeBtn = widget.NewButton(IconDelete, func() {
		if tr.onRemove != nil && tr.index >= 0 {
			tr.onRemove(tr.index)
		}
	})
	tr.removeBtn.Importance = widget.LowImportance

	return tr
}

// SetCallbacks sets the action callbacks
func (tr *TrackRow) SetCallbacks(onPlay, onRemove func(index int)) {
	tr.onPlay = onPlay
	tr.onRemove = onRemove
}

// UpdateTrack updates the row with track data. The current track is
// marked and rendered bold.
func (tr *TrackRow) UpdateTrack(index int, track *model.Track, current bool) {
	if track == nil {
		return
	}
	tr.index = index
	tr.track = track

	tr.titleLabel.SetText(track.DisplayTitle())
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: current}

	if track.Duration != "" {
		tr.durationLabel.SetText(track.Duration)
	} else {
		tr.durationLabel.SetText(DashPlaceholder)
	}

	if current {
		tr.markerLabel.SetText(IconMusic)
	} else {
		tr.markerLabel.SetText(" ")
	}

	tr.Refresh()
}

// MinSize returns the minimum row size
func (tr *TrackRow) MinSize() fyne.Size {
	tr.ExtendBaseWidget(tr)
	min := tr.BaseWidget.MinSize()
	if min.Height < RowMinHeight {
		min.Height = RowMinHeight
	}
	return min
}

// CreateRenderer creates the row renderer
func (tr *TrackRow) CreateRenderer() fyne.WidgetRenderer {
	actions := container.NewHBox(tr.durationLabel, tr.playBtn, tr.removeBtn)
	content := container.NewBorder(nil, nil, tr.markerLabel, actions, tr.titleLabel)
	return widget.NewSimpleRenderer(content)
}
