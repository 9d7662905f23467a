// Package extract resolves site video URLs to direct audio stream URLs
// without downloading the media.
package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
)

// Timeout constants
const (
	DefaultResolveTimeout = 30 * time.Second
)

// Watch-page URL markers
const (
	watchPathMarker  = "watch?v="
	shortLinkMarker  = "youtu.be/"
	shortsPathMarker = "/shorts/"
)

// IsWatchURL reports whether the URL points at a video watch page that
// needs resolution before it can be played, as opposed to a direct media
// stream or a local file.
func IsWatchURL(rawURL string) bool {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return false
	}
	return strings.Contains(rawURL, watchPathMarker) ||
		strings.Contains(rawURL, shortLinkMarker) ||
		strings.Contains(rawURL, shortsPathMarker)
}

// StreamInfo describes a resolved audio stream
type StreamInfo struct {
	URL      string
	Title    string
	Author   string
	Duration time.Duration
}

// Resolver turns a watch-page URL into a playable stream URL
type Resolver interface {
	Resolve(ctx context.Context, url string) (*StreamInfo, error)
}

// YouTubeResolver resolves URLs via the site API client
type YouTubeResolver struct {
	client  youtube.Client
	timeout time.Duration
}

// NewYouTubeResolver creates a new resolver
func NewYouTubeResolver() *YouTubeResolver {
	return &YouTubeResolver{
		timeout: DefaultResolveTimeout,
	}
}

// SetTimeout sets the timeout for resolve operations
func (r *YouTubeResolver) SetTimeout(timeout time.Duration) {
	r.timeout = timeout
}

// Resolve fetches video metadata and returns the best audio-only stream URL.
// Falls back to a muxed stream with audio when no audio-only format exists.
func (r *YouTubeResolver) Resolve(ctx context.Context, url string) (*StreamInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	video, err := r.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}

	format := bestAudioFormat(video.Formats)
	if format == nil {
		return nil, fmt.Errorf("no audio stream found for %s", url)
	}

	streamURL, err := r.client.GetStreamURLContext(ctx, video, format)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream URL: %w", err)
	}

	return &StreamInfo{
		URL:      streamURL,
		Title:    video.Title,
		Author:   video.Author,
		Duration: video.Duration,
	}, nil
}

// bestAudioFormat picks the highest-bitrate audio-only format, falling back
// to the highest-bitrate muxed format that carries audio channels.
func bestAudioFormat(formats youtube.FormatList) *youtube.Format {
	var best *youtube.Format
	for i := range formats {
		f := &formats[i]
		if !strings.HasPrefix(f.MimeType, "audio/") {
			continue
		}
		if best == nil || f.Bitrate > best.Bitrate {
			best = f
		}
	}
	if best != nil {
		return best
	}

	withAudio := formats.WithAudioChannels()
	for i := range withAudio {
		f := &withAudio[i]
		if best == nil || f.Bitrate > best.Bitrate {
			best = f
		}
	}
	return best
}
