package model

import (
	"strings"
	"time"
)

// Track represents a single playlist entry: a local audio file or a remote
// stream URL.
type Track struct {
	ID       string
	Title    string
	Source   string // local file path or stream URL
	Duration string // formatted duration, empty if unknown
	AddedAt  time.Time
}

// IsRemote returns true when the track source is a network stream URL
func (t *Track) IsRemote() bool {
	return strings.HasPrefix(t.Source, "http://") || strings.HasPrefix(t.Source, "https://")
}

// DisplayTitle returns title, filename, or source in order of preference
func (t *Track) DisplayTitle() string {
	if t.Title != "" && !strings.HasPrefix(t.Title, "http") {
		return t.Title
	}

	if !t.IsRemote() && t.Source != "" {
		parts := strings.FieldsFunc(t.Source, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return t.Source
}

// Playlist is an ordered sequence of tracks with a current-track pointer.
// Invariant: 0 <= Current < len(Tracks) whenever the playlist is non-empty.
// Callers guard concurrent access; Playlist itself is not synchronized.
type Playlist struct {
	Tracks  []*Track
	Current int
}

// NewPlaylist creates an empty playlist
func NewPlaylist() *Playlist {
	return &Playlist{
		Tracks: make([]*Track, 0),
	}
}

// Len returns the number of tracks
func (p *Playlist) Len() int {
	return len(p.Tracks)
}

// IsEmpty returns true when the playlist has no tracks
func (p *Playlist) IsEmpty() bool {
	return len(p.Tracks) == 0
}

// Append adds a track to the end of the playlist
func (p *Playlist) Append(track *Track) {
	p.Tracks = append(p.Tracks, track)
}

// CurrentTrack returns the track at the current pointer, or false when empty
func (p *Playlist) CurrentTrack() (*Track, bool) {
	if p.IsEmpty() {
		return nil, false
	}
	p.clamp()
	return p.Tracks[p.Current], true
}

// JumpTo moves the pointer to index i; out-of-range indexes are rejected
func (p *Playlist) JumpTo(i int) bool {
	if i < 0 || i >= len(p.Tracks) {
		return false
	}
	p.Current = i
	return true
}

// Next advances the pointer, wrapping to the first track after the last one.
// Returns the new current track, or false when the playlist is empty.
func (p *Playlist) Next() (*Track, bool) {
	if p.IsEmpty() {
		return nil, false
	}
	p.Current = (p.Current + 1) % len(p.Tracks)
	return p.Tracks[p.Current], true
}

// Prev moves the pointer back, wrapping to the last track before the first one.
// Returns the new current track, or false when the playlist is empty.
func (p *Playlist) Prev() (*Track, bool) {
	if p.IsEmpty() {
		return nil, false
	}
	p.Current = (p.Current - 1 + len(p.Tracks)) % len(p.Tracks)
	return p.Tracks[p.Current], true
}

// HasNext reports whether the current track is not the last one
func (p *Playlist) HasNext() bool {
	return p.Current < len(p.Tracks)-1
}

// Remove deletes the track at index i, keeping the pointer in bounds.
// Removing the current track keeps the pointer position so the track that
// followed becomes current; removing the last track moves the pointer back.
func (p *Playlist) Remove(i int) bool {
	if i < 0 || i >= len(p.Tracks) {
		return false
	}

	p.Tracks = append(p.Tracks[:i], p.Tracks[i+1:]...)

	if i < p.Current {
		p.Current--
	}
	p.clamp()
	return true
}

// Clear removes all tracks and resets the pointer
func (p *Playlist) Clear() {
	p.Tracks = p.Tracks[:0]
	p.Current = 0
}

// clamp restores the index invariant after mutation
func (p *Playlist) clamp() {
	if p.Current < 0 {
		p.Current = 0
	}
	if max := len(p.Tracks) - 1; p.Current > max && max >= 0 {
		p.Current = max
	}
	if len(p.Tracks) == 0 {
		p.Current = 0
	}
}
