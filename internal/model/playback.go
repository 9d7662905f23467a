package model

// PlaybackState represents the state of the audio playback engine
type PlaybackState string

const (
	// PlaybackIdle means no track has been loaded yet
	PlaybackIdle PlaybackState = "Idle"

	// PlaybackLoading means a source is being resolved or buffered
	PlaybackLoading PlaybackState = "Loading"

	// PlaybackPlaying means audio is being rendered
	PlaybackPlaying PlaybackState = "Playing"

	// PlaybackPaused means playback is suspended and can be resumed
	PlaybackPaused PlaybackState = "Paused"

	// PlaybackStopped means playback ended or was stopped by user
	PlaybackStopped PlaybackState = "Stopped"

	// PlaybackError means the engine failed to play the source
	PlaybackError PlaybackState = "Error"
)

// String returns the string representation of PlaybackState
func (ps PlaybackState) String() string {
	return string(ps)
}

// IsActive returns true while the engine holds a source (loading, playing or paused)
func (ps PlaybackState) IsActive() bool {
	return ps == PlaybackLoading || ps == PlaybackPlaying || ps == PlaybackPaused
}
