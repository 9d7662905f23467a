package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/tunetap/tunetap/internal/model"
)

// Timeout constants
const (
	DefaultExpandTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// URL templates
const (
	WatchURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// SitePlaylistService expands a pasted site playlist URL into individual
// stream tracks using the extraction library.
type SitePlaylistService struct {
	timeout time.Duration
}

// NewSitePlaylistService creates a new playlist expansion service
func NewSitePlaylistService() *SitePlaylistService {
	return &SitePlaylistService{
		timeout: DefaultExpandTimeout,
	}
}

// SetTimeout sets the timeout for expansion operations
func (s *SitePlaylistService) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// IsPlaylistURL checks if the URL references a site playlist
func (s *SitePlaylistService) IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// ExpandPlaylist fetches playlist items and returns one track per entry
func (s *SitePlaylistService) ExpandPlaylist(ctx context.Context, url string) ([]*model.Track, error) {
	if !s.IsPlaylistURL(url) {
		return nil, fmt.Errorf("invalid playlist URL: %s", url)
	}

	playlistID := s.ExtractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	tracks := make([]*model.Track, 0, len(items))
	for _, it := range items {
		tracks = append(tracks, &model.Track{
			ID:      it.VideoID,
			Title:   it.Title,
			Source:  fmt.Sprintf(WatchURLTemplate, it.VideoID),
			AddedAt: time.Now(),
		})
	}

	return tracks, nil
}

// ExtractPlaylistID extracts the playlist ID from various URL formats:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
func (s *SitePlaylistService) ExtractPlaylistID(url string) string {
	if !strings.Contains(url, PlaylistParam) {
		return ""
	}

	parts := strings.Split(url, PlaylistParam)
	if len(parts) < 2 {
		return ""
	}

	playlistID := parts[1]
	if strings.Contains(playlistID, ParamSeparator) {
		playlistID = strings.Split(playlistID, ParamSeparator)[0]
	}
	return playlistID
}
