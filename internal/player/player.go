package player

import (
	"context"
	"time"

	"github.com/tunetap/tunetap/internal/model"
)

// Player defines the interface for a single-source audio playback engine.
type Player interface {
	// Play starts playback of a local file path or stream URL, replacing
	// any source currently playing
	Play(ctx context.Context, source string) error

	// Pause suspends playback; no-op unless playing
	Pause() error

	// Resume continues paused playback; no-op unless paused
	Resume() error

	// Stop ends playback and releases the source
	Stop() error

	// State returns the current playback state
	State() model.PlaybackState

	// Position returns elapsed playback time, excluding paused intervals
	Position() time.Duration

	// Duration returns the total source duration, 0 if unknown
	Duration() time.Duration

	// SetStateCallback sets the callback invoked on every state change
	SetStateCallback(func(model.PlaybackState))

	// SetFinishedCallback sets the callback invoked when a source plays
	// to its natural end (not on Stop)
	SetFinishedCallback(func())
}
