package player

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunetap/tunetap/internal/extract"
	"github.com/tunetap/tunetap/internal/model"
)

// fakeEngine is an in-memory Player for transport tests. Playback starts
// on a goroutine, so started sources are delivered through a channel.
type fakeEngine struct {
	mu         sync.Mutex
	state      model.PlaybackState
	played     []string
	playCh     chan string
	blockPlay  chan struct{}
	onState    func(model.PlaybackState)
	onFinished func()
	playErr    error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		state:  model.PlaybackIdle,
		playCh: make(chan string, 16),
	}
}

func (f *fakeEngine) Play(_ context.Context, source string) error {
	if f.blockPlay != nil {
		<-f.blockPlay
	}

	f.mu.Lock()
	if f.playErr != nil {
		f.mu.Unlock()
		return f.playErr
	}
	f.played = append(f.played, source)
	f.state = model.PlaybackPlaying
	f.mu.Unlock()

	f.playCh <- source
	return nil
}

func (f *fakeEngine) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = model.PlaybackPaused
	return nil
}

func (f *fakeEngine) Resume() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = model.PlaybackPlaying
	return nil
}

func (f *fakeEngine) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = model.PlaybackStopped
	return nil
}

func (f *fakeEngine) State() model.PlaybackState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeEngine) Position() time.Duration { return 0 }
func (f *fakeEngine) Duration() time.Duration { return 0 }

func (f *fakeEngine) SetStateCallback(callback func(model.PlaybackState)) {
	f.onState = callback
}

func (f *fakeEngine) SetFinishedCallback(callback func()) {
	f.onFinished = callback
}

func (f *fakeEngine) finishTrack() {
	if f.onFinished != nil {
		f.onFinished()
	}
}

// waitForPlay blocks until the engine starts the next source
func (f *fakeEngine) waitForPlay(t *testing.T) string {
	t.Helper()
	select {
	case source := <-f.playCh:
		return source
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for playback to start")
		return ""
	}
}

// expectNoPlay fails if the engine starts any source within the window
func (f *fakeEngine) expectNoPlay(t *testing.T) {
	t.Helper()
	select {
	case source := <-f.playCh:
		t.Fatalf("unexpected playback of %s", source)
	case <-time.After(200 * time.Millisecond):
	}
}

func (f *fakeEngine) playedSources() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.played))
	copy(out, f.played)
	return out
}

// fakeResolver records resolve calls and returns canned stream info
type fakeResolver struct {
	mu    sync.Mutex
	calls []string
	info  *extract.StreamInfo
	err   error
}

func (r *fakeResolver) Resolve(_ context.Context, url string) (*extract.StreamInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, url)
	if r.err != nil {
		return nil, r.err
	}
	return r.info, nil
}

func (r *fakeResolver) resolvedURLs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func newServiceWithTracks(sources ...string) (*Service, *fakeEngine) {
	engine := newFakeEngine()
	service := NewService(engine, nil)
	for _, source := range sources {
		service.AddTrack(&model.Track{Source: source})
	}
	return service, engine
}

func TestAddTrack(t *testing.T) {
	service, _ := newServiceWithTracks()

	idx := service.AddTrack(&model.Track{Source: "/music/a.mp3"})
	assert.Equal(t, 0, idx)

	idx = service.AddTrack(&model.Track{Source: "/music/b.mp3"})
	assert.Equal(t, 1, idx)

	assert.Len(t, service.Tracks(), 2)
	assert.Equal(t, 0, service.CurrentIndex())
}

func TestPlayCurrent_Empty(t *testing.T) {
	service, _ := newServiceWithTracks()

	err := service.PlayCurrent(context.Background())
	assert.Error(t, err)
}

func TestPlayIndex(t *testing.T) {
	service, engine := newServiceWithTracks("/a.mp3", "/b.mp3", "/c.mp3")

	require.NoError(t, service.PlayIndex(context.Background(), 1))
	assert.Equal(t, 1, service.CurrentIndex())
	assert.Equal(t, "/b.mp3", engine.waitForPlay(t))

	err := service.PlayIndex(context.Background(), 5)
	assert.Error(t, err)
	assert.Equal(t, 1, service.CurrentIndex(), "pointer must not move on rejected index")
}

func TestPlayIndex_DoesNotBlockCaller(t *testing.T) {
	engine := newFakeEngine()
	engine.blockPlay = make(chan struct{})
	service := NewService(engine, nil)
	service.AddTrack(&model.Track{Source: "/a.mp3"})

	// PlayIndex must return while the engine is still starting up
	require.NoError(t, service.PlayIndex(context.Background(), 0))

	close(engine.blockPlay)
	assert.Equal(t, "/a.mp3", engine.waitForPlay(t))
}

func TestPlayIndex_ResolvesWatchPageSource(t *testing.T) {
	engine := newFakeEngine()
	resolver := &fakeResolver{
		info: &extract.StreamInfo{
			URL:   "https://cdn.example.com/audio.webm",
			Title: "Resolved Song",
		},
	}
	service := NewService(engine, resolver)
	service.AddTrack(&model.Track{
		Source: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Title:  "Queued Song",
	})

	require.NoError(t, service.PlayIndex(context.Background(), 0))

	// The engine must receive the direct stream URL, never the page URL
	assert.Equal(t, "https://cdn.example.com/audio.webm", engine.waitForPlay(t))
	assert.Equal(t, []string{"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}, resolver.resolvedURLs())
}

func TestPlayIndex_DirectSourcesSkipResolver(t *testing.T) {
	engine := newFakeEngine()
	resolver := &fakeResolver{}
	service := NewService(engine, resolver)
	service.AddTrack(&model.Track{Source: "/music/local.mp3"})
	service.AddTrack(&model.Track{Source: "https://cdn.example.com/direct.webm"})

	require.NoError(t, service.PlayIndex(context.Background(), 0))
	assert.Equal(t, "/music/local.mp3", engine.waitForPlay(t))

	require.NoError(t, service.PlayIndex(context.Background(), 1))
	assert.Equal(t, "https://cdn.example.com/direct.webm", engine.waitForPlay(t))

	assert.Empty(t, resolver.resolvedURLs())
}

func TestPlayIndex_ResolveFailure(t *testing.T) {
	engine := newFakeEngine()
	resolver := &fakeResolver{err: fmt.Errorf("video unavailable")}
	service := NewService(engine, resolver)
	service.AddTrack(&model.Track{Source: "https://www.youtube.com/watch?v=gone"})

	errCh := make(chan error, 1)
	service.SetErrorCallback(func(err error) {
		errCh <- err
	})

	require.NoError(t, service.PlayIndex(context.Background(), 0))

	select {
	case err := <-errCh:
		assert.ErrorContains(t, err, "video unavailable")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the error callback")
	}
	engine.expectNoPlay(t)
}

func TestNextPrev_Wrap(t *testing.T) {
	service, engine := newServiceWithTracks("/a.mp3", "/b.mp3")

	require.NoError(t, service.PlayCurrent(context.Background()))
	engine.waitForPlay(t)
	require.NoError(t, service.Next(context.Background()))
	engine.waitForPlay(t)
	assert.Equal(t, 1, service.CurrentIndex())

	// Next from the last track wraps to the first
	require.NoError(t, service.Next(context.Background()))
	engine.waitForPlay(t)
	assert.Equal(t, 0, service.CurrentIndex())

	// Prev from the first track wraps to the last
	require.NoError(t, service.Prev(context.Background()))
	engine.waitForPlay(t)
	assert.Equal(t, 1, service.CurrentIndex())

	assert.Equal(t, []string{"/a.mp3", "/b.mp3", "/a.mp3", "/b.mp3"}, engine.playedSources())
}

func TestTogglePause(t *testing.T) {
	service, engine := newServiceWithTracks("/a.mp3")

	// Nothing playing yet
	assert.Error(t, service.TogglePause())

	require.NoError(t, service.PlayCurrent(context.Background()))
	engine.waitForPlay(t)

	require.NoError(t, service.TogglePause())
	assert.Equal(t, model.PlaybackPaused, engine.State())

	require.NoError(t, service.TogglePause())
	assert.Equal(t, model.PlaybackPlaying, engine.State())
}

func TestStop_KeepsPointer(t *testing.T) {
	service, engine := newServiceWithTracks("/a.mp3", "/b.mp3")

	require.NoError(t, service.PlayIndex(context.Background(), 1))
	engine.waitForPlay(t)
	require.NoError(t, service.Stop())

	assert.Equal(t, model.PlaybackStopped, engine.State())
	assert.Equal(t, 1, service.CurrentIndex())
}

func TestAutoAdvance(t *testing.T) {
	service, engine := newServiceWithTracks("/a.mp3", "/b.mp3")

	require.NoError(t, service.PlayCurrent(context.Background()))
	assert.Equal(t, "/a.mp3", engine.waitForPlay(t))

	engine.finishTrack()
	assert.Equal(t, "/b.mp3", engine.waitForPlay(t))
	assert.Equal(t, 1, service.CurrentIndex())

	// Finishing the last track stops instead of wrapping
	engine.finishTrack()
	engine.expectNoPlay(t)
	assert.Equal(t, 1, service.CurrentIndex())
}

func TestTrackChangeCallback(t *testing.T) {
	service, _ := newServiceWithTracks("/a.mp3", "/b.mp3")

	var gotIndex int
	var gotTrack *model.Track
	service.SetTrackChangeCallback(func(index int, track *model.Track) {
		gotIndex = index
		gotTrack = track
	})

	require.NoError(t, service.PlayIndex(context.Background(), 1))
	assert.Equal(t, 1, gotIndex)
	require.NotNil(t, gotTrack)
	assert.Equal(t, "/b.mp3", gotTrack.Source)
}

func TestRemoveTrack(t *testing.T) {
	service, engine := newServiceWithTracks("/a.mp3", "/b.mp3", "/c.mp3")

	require.NoError(t, service.PlayIndex(context.Background(), 1))
	engine.waitForPlay(t)

	// Removing the playing track stops playback
	require.NoError(t, service.RemoveTrack(1))
	assert.Equal(t, model.PlaybackStopped, engine.State())
	assert.Len(t, service.Tracks(), 2)

	assert.Error(t, service.RemoveTrack(9))
}

func TestLoadTracks(t *testing.T) {
	service, engine := newServiceWithTracks("/old.mp3")
	require.NoError(t, service.PlayCurrent(context.Background()))
	engine.waitForPlay(t)

	tracks := []*model.Track{
		{Source: "/new1.mp3"},
		{Source: "/new2.mp3"},
	}
	require.NoError(t, service.LoadTracks(tracks))

	assert.Len(t, service.Tracks(), 2)
	assert.Equal(t, 0, service.CurrentIndex())
	assert.Equal(t, "/new1.mp3", service.Tracks()[0].Source)
}

func TestClearPlaylist(t *testing.T) {
	service, engine := newServiceWithTracks("/a.mp3")
	require.NoError(t, service.PlayCurrent(context.Background()))
	engine.waitForPlay(t)

	require.NoError(t, service.ClearPlaylist())
	assert.Empty(t, service.Tracks())
	assert.Equal(t, model.PlaybackStopped, engine.State())
}
