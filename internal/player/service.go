package player

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/tunetap/tunetap/internal/extract"
	"github.com/tunetap/tunetap/internal/model"
)

// Service drives playlist transport over a playback engine: it owns the
// track order and current pointer, and reacts to track completion.
// Watch-page sources are resolved to direct stream URLs just before
// playback, so queued playlist entries and reloaded playlists keep their
// stable page URLs instead of expiring stream links.
type Service struct {
	mu       sync.Mutex
	engine   Player
	resolver extract.Resolver
	playlist *model.Playlist

	onTrackChange func(index int, track *model.Track) // callback for UI updates
	onError       func(error)
}

// NewService creates a transport service over the given engine. The
// resolver may be nil when all sources are direct streams or local files.
func NewService(engine Player, resolver extract.Resolver) *Service {
	s := &Service{
		engine:   engine,
		resolver: resolver,
		playlist: model.NewPlaylist(),
	}
	engine.SetFinishedCallback(s.handleTrackFinished)
	return s
}

// SetTrackChangeCallback sets the callback invoked when the current track changes
func (s *Service) SetTrackChangeCallback(callback func(index int, track *model.Track)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTrackChange = callback
}

// SetErrorCallback sets the callback invoked when playback started in the
// background fails
func (s *Service) SetErrorCallback(callback func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = callback
}

// SetStateCallback sets the callback invoked on engine state changes
func (s *Service) SetStateCallback(callback func(model.PlaybackState)) {
	s.engine.SetStateCallback(callback)
}

// AddTrack appends a track to the playlist and returns its index
func (s *Service) AddTrack(track *model.Track) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlist.Append(track)
	return s.playlist.Len() - 1
}

// Tracks returns a snapshot of the playlist order
func (s *Service) Tracks() []*model.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	tracks := make([]*model.Track, len(s.playlist.Tracks))
	copy(tracks, s.playlist.Tracks)
	return tracks
}

// CurrentIndex returns the current track pointer
func (s *Service) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlist.Current
}

// CurrentTrack returns the current track, or false when the playlist is empty
func (s *Service) CurrentTrack() (*model.Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlist.CurrentTrack()
}

// RemoveTrack removes the track at index i. Removing the playing track
// stops playback first.
func (s *Service) RemoveTrack(i int) error {
	s.mu.Lock()
	removingCurrent := i == s.playlist.Current
	ok := s.playlist.Remove(i)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("track index out of range: %d", i)
	}

	if removingCurrent && s.engine.State().IsActive() {
		if err := s.engine.Stop(); err != nil {
			return fmt.Errorf("failed to stop removed track: %w", err)
		}
	}
	return nil
}

// ClearPlaylist stops playback and removes all tracks
func (s *Service) ClearPlaylist() error {
	if err := s.engine.Stop(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlist.Clear()
	return nil
}

// LoadTracks replaces the playlist contents, resetting the pointer
func (s *Service) LoadTracks(tracks []*model.Track) error {
	if err := s.engine.Stop(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlist.Clear()
	for _, track := range tracks {
		s.playlist.Append(track)
	}
	return nil
}

// PlayIndex jumps the pointer to index i and starts playback
func (s *Service) PlayIndex(ctx context.Context, i int) error {
	s.mu.Lock()
	if !s.playlist.JumpTo(i) {
		s.mu.Unlock()
		return fmt.Errorf("track index out of range: %d", i)
	}
	track := s.playlist.Tracks[i]
	s.mu.Unlock()

	s.playTrack(ctx, i, track)
	return nil
}

// PlayCurrent starts playback of the current track
func (s *Service) PlayCurrent(ctx context.Context) error {
	s.mu.Lock()
	track, ok := s.playlist.CurrentTrack()
	index := s.playlist.Current
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("playlist is empty")
	}
	s.playTrack(ctx, index, track)
	return nil
}

// TogglePause pauses a playing track or resumes a paused one
func (s *Service) TogglePause() error {
	switch s.engine.State() {
	case model.PlaybackPlaying:
		return s.engine.Pause()
	case model.PlaybackPaused:
		return s.engine.Resume()
	default:
		return fmt.Errorf("nothing to pause or resume")
	}
}

// Stop ends playback, keeping the playlist and pointer intact
func (s *Service) Stop() error {
	return s.engine.Stop()
}

// Next advances to the next track (wrapping) and plays it
func (s *Service) Next(ctx context.Context) error {
	s.mu.Lock()
	track, ok := s.playlist.Next()
	index := s.playlist.Current
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("playlist is empty")
	}
	s.playTrack(ctx, index, track)
	return nil
}

// Prev moves back to the previous track (wrapping) and plays it
func (s *Service) Prev(ctx context.Context) error {
	s.mu.Lock()
	track, ok := s.playlist.Prev()
	index := s.playlist.Current
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("playlist is empty")
	}
	s.playTrack(ctx, index, track)
	return nil
}

// State returns the engine playback state
func (s *Service) State() model.PlaybackState {
	return s.engine.State()
}

// Position returns the engine playback position
func (s *Service) Position() time.Duration {
	return s.engine.Position()
}

// Duration returns the current source duration, 0 if unknown
func (s *Service) Duration() time.Duration {
	return s.engine.Duration()
}

// playTrack notifies the track change and starts engine playback on a
// goroutine, keeping stream resolution and media probing off the caller's
// goroutine. Failures are reported through the error callback.
func (s *Service) playTrack(ctx context.Context, index int, track *model.Track) {
	s.notifyTrackChange(index, track)

	go func() {
		source := track.Source
		if s.resolver != nil && track.IsRemote() && extract.IsWatchURL(source) {
			info, err := s.resolver.Resolve(ctx, source)
			if err != nil {
				s.notifyError(fmt.Errorf("failed to resolve %s: %w", track.DisplayTitle(), err))
				return
			}
			source = info.URL
		}

		if err := s.engine.Play(ctx, source); err != nil {
			s.notifyError(fmt.Errorf("failed to play %s: %w", track.DisplayTitle(), err))
		}
	}()
}

// handleTrackFinished advances to the next track when one ends naturally.
// Playback stops after the last track instead of wrapping around.
func (s *Service) handleTrackFinished() {
	s.mu.Lock()
	hasNext := s.playlist.HasNext()
	s.mu.Unlock()

	if !hasNext {
		return
	}

	if err := s.Next(context.Background()); err != nil {
		log.Printf("Failed to advance to next track: %v", err)
	}
}

// notifyError logs the playback failure and calls the error callback if set
func (s *Service) notifyError(err error) {
	log.Printf("Playback failed: %v", err)

	s.mu.Lock()
	callback := s.onError
	s.mu.Unlock()

	if callback != nil {
		callback(err)
	}
}

// notifyTrackChange calls the track change callback if set
func (s *Service) notifyTrackChange(index int, track *model.Track) {
	s.mu.Lock()
	callback := s.onTrackChange
	s.mu.Unlock()

	if callback != nil {
		callback(index, track)
	}
}
