package player

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"sync"
	"time"

	"github.com/tunetap/tunetap/internal/model"
)

// Executable constants
const (
	FFplayCommand   = "ffplay"
	FFplayLogLevel  = "error"
	NoDisplayFlag   = "-nodisp"
	AutoExitFlag    = "-autoexit"
	NoInfoBarFlag   = "-hide_banner"
)

// FFplayPlayer plays a single audio source through the ffplay binary.
// Pause and resume are implemented by suspending the process, so position
// tracking uses a pause-aware stopwatch instead of decoder timestamps.
type FFplayPlayer struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	cancel context.CancelFunc

	state      model.PlaybackState
	duration   time.Duration
	generation int  // invalidates wait goroutines of replaced sources
	stopping   bool // distinguishes Stop from natural end

	startedAt   time.Time
	pausedAt    time.Time
	pausedTotal time.Duration

	onState    func(model.PlaybackState)
	onFinished func()
}

// NewFFplayPlayer creates a new player
func NewFFplayPlayer() *FFplayPlayer {
	return &FFplayPlayer{
		state: model.PlaybackIdle,
	}
}

// Available reports whether the ffplay and ffprobe binaries can be found
func Available() bool {
	if _, err := exec.LookPath(FFplayCommand); err != nil {
		return false
	}
	if _, err := exec.LookPath(FFprobeCommand); err != nil {
		return false
	}
	return true
}

// SetStateCallback sets the callback invoked on every state change
func (p *FFplayPlayer) SetStateCallback(callback func(model.PlaybackState)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onState = callback
}

// SetFinishedCallback sets the callback invoked on natural end of playback
func (p *FFplayPlayer) SetFinishedCallback(callback func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onFinished = callback
}

// Play starts playback of a local file or stream URL, replacing any
// source currently playing
func (p *FFplayPlayer) Play(ctx context.Context, source string) error {
	if err := p.Stop(); err != nil {
		return err
	}

	// Invalidate the previous wait goroutine so its final state does not
	// override the new source
	p.mu.Lock()
	p.generation++
	p.mu.Unlock()

	p.setState(model.PlaybackLoading)

	// Duration is informational; playback proceeds without it
	duration, err := ProbeDuration(source)
	if err != nil {
		log.Printf("Failed to probe duration for %s: %v", source, err)
		duration = 0
	}

	playCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(playCtx, FFplayCommand,
		NoDisplayFlag,
		AutoExitFlag,
		NoInfoBarFlag,
		"-loglevel", FFplayLogLevel,
		source,
	)

	if err := cmd.Start(); err != nil {
		cancel()
		p.setState(model.PlaybackError)
		return fmt.Errorf("failed to start ffplay: %w", err)
	}

	p.mu.Lock()
	p.cmd = cmd
	p.cancel = cancel
	p.duration = duration
	p.stopping = false
	p.startedAt = time.Now()
	p.pausedAt = time.Time{}
	p.pausedTotal = 0
	p.generation++
	generation := p.generation
	p.mu.Unlock()

	p.setState(model.PlaybackPlaying)

	go p.waitForExit(cmd, generation)

	return nil
}

// waitForExit blocks until the process ends, then settles the final state
func (p *FFplayPlayer) waitForExit(cmd *exec.Cmd, generation int) {
	err := cmd.Wait()

	p.mu.Lock()
	if p.generation != generation {
		// A newer Play replaced this source
		p.mu.Unlock()
		return
	}

	stopped := p.stopping
	finished := p.onFinished
	p.cmd = nil
	p.cancel = nil
	p.mu.Unlock()

	if stopped {
		p.setState(model.PlaybackStopped)
		return
	}

	if err != nil {
		log.Printf("ffplay exited with error: %v", err)
		p.setState(model.PlaybackError)
		return
	}

	p.setState(model.PlaybackStopped)
	if finished != nil {
		finished()
	}
}

// Pause suspends the playback process
func (p *FFplayPlayer) Pause() error {
	p.mu.Lock()

	if p.state != model.PlaybackPlaying || p.cmd == nil || p.cmd.Process == nil {
		state := p.state
		p.mu.Unlock()
		return fmt.Errorf("cannot pause in state %s", state)
	}

	if err := suspendProcess(p.cmd.Process); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("failed to pause playback: %w", err)
	}

	p.pausedAt = time.Now()
	p.mu.Unlock()

	p.setState(model.PlaybackPaused)
	return nil
}

// Resume continues a paused playback process
func (p *FFplayPlayer) Resume() error {
	p.mu.Lock()

	if p.state != model.PlaybackPaused || p.cmd == nil || p.cmd.Process == nil {
		state := p.state
		p.mu.Unlock()
		return fmt.Errorf("cannot resume in state %s", state)
	}

	if err := resumeProcess(p.cmd.Process); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("failed to resume playback: %w", err)
	}

	p.pausedTotal += time.Since(p.pausedAt)
	p.pausedAt = time.Time{}
	p.mu.Unlock()

	p.setState(model.PlaybackPlaying)
	return nil
}

// Stop ends playback and releases the source
func (p *FFplayPlayer) Stop() error {
	p.mu.Lock()

	if p.cmd == nil {
		p.mu.Unlock()
		return nil
	}

	p.stopping = true
	cancel := p.cancel

	// A suspended process ignores SIGKILL delivery order issues, resume first
	if p.state == model.PlaybackPaused && p.cmd.Process != nil {
		if err := resumeProcess(p.cmd.Process); err != nil {
			log.Printf("Failed to resume process before stop: %v", err)
		}
	}
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	return nil
}

// State returns the current playback state
func (p *FFplayPlayer) State() model.PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Position returns elapsed playback time, excluding paused intervals
func (p *FFplayPlayer) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case model.PlaybackPlaying:
		return time.Since(p.startedAt) - p.pausedTotal
	case model.PlaybackPaused:
		return p.pausedAt.Sub(p.startedAt) - p.pausedTotal
	default:
		return 0
	}
}

// Duration returns the probed source duration, 0 if unknown
func (p *FFplayPlayer) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// setState updates the state and notifies the callback
func (p *FFplayPlayer) setState(state model.PlaybackState) {
	p.mu.Lock()
	p.state = state
	callback := p.onState
	p.mu.Unlock()

	if callback != nil {
		callback(state)
	}
}
