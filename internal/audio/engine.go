package audio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/jscyril/wpl_player/api"
	"github.com/jscyril/wpl_player/internal/playlist"
	playerrors "github.com/jscyril/wpl_player/pkg/errors"
	"github.com/jscyril/wpl_player/pkg/events"
)

// Ensure Engine implements Player interface at compile time
var _ api.Player = (*Engine)(nil)

// DefaultProgressInterval is how often the progress worker samples
const DefaultProgressInterval = 100 * time.Millisecond

// resampleQuality is passed to beep.Resample when the device rate differs
const resampleQuality = 4

// Engine plays the tracks of a playlist one at a time. Transport calls are
// serialised; each returns once the previous session's workers have exited
// and its file is closed.
type Engine struct {
	mu        sync.Mutex
	playlist  *playlist.Playlist
	current   *api.Track
	status    api.PlaybackStatus
	progress  atomic.Int64
	length    int64
	session   *session
	sessionID uint64

	output   Output
	decode   DecodeFunc
	interval time.Duration
	bus      *events.EventBus
	logger   *slog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithDecoder replaces the MP3 decoder
func WithDecoder(decode DecodeFunc) Option {
	return func(e *Engine) { e.decode = decode }
}

// WithProgressInterval sets the progress sampling period
func WithProgressInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithLogger sets the engine's logger
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithEventBus publishes engine events on an existing bus
func WithEventBus(bus *events.EventBus) Option {
	return func(e *Engine) {
		if bus != nil {
			e.bus = bus
		}
	}
}

// NewEngine creates an engine over pl, making its first track current. A
// nil output is allowed; starting playback then fails with ErrPlaybackIO.
func NewEngine(pl *playlist.Playlist, output Output, opts ...Option) *Engine {
	e := &Engine{
		output:   output,
		decode:   DecodeMP3,
		interval: DefaultProgressInterval,
		bus:      events.NewEventBus(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if pl == nil {
		pl = playlist.New("", "")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.playlist = pl
	if first := pl.First(); first != nil {
		// A bad first file leaves the engine paused on it.
		_ = e.setCurrentLocked(first)
	}
	return e
}

// Events returns a channel receiving every engine event
func (e *Engine) Events() <-chan api.AudioEvent {
	return e.bus.SubscribeAll()
}

// Unsubscribe stops delivery to a channel returned by Events
func (e *Engine) Unsubscribe(ch <-chan api.AudioEvent) {
	e.bus.Unsubscribe(ch)
}

func (e *Engine) publish(eventType api.EventType, payload any) {
	e.bus.Publish(api.AudioEvent{Type: eventType, Payload: payload})
}

func (e *Engine) setStatusLocked(status api.PlaybackStatus) {
	if e.status == status {
		return
	}
	e.status = status
	e.publish(api.EventStateChange, status)
}

// PlayPause pauses while playing; otherwise it resumes the current track,
// taking the playlist's first track when nothing is current.
func (e *Engine) PlayPause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == api.StatusPlaying {
		e.pauseLocked()
		return nil
	}
	if e.current == nil {
		first := e.playlist.First()
		if first == nil {
			return playerrors.ErrNoCurrentTrack
		}
		return e.playLocked(first, 0)
	}
	return e.playLocked(e.current, e.progress.Load())
}

// Play starts the playlist track at index from the beginning
func (e *Engine) Play(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	track := e.playlist.Track(index)
	if track == nil {
		return fmt.Errorf("%w: %d", playerrors.ErrIndexOutOfRange, index)
	}
	return e.playLocked(track, 0)
}

// Pause stops output and closes the file, keeping track and progress
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == api.StatusPlaying {
		e.pauseLocked()
	}
	return nil
}

func (e *Engine) pauseLocked() {
	e.stopSessionLocked()
	e.setStatusLocked(api.StatusPaused)
}

// Resume continues the current track from the retained progress
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == api.StatusPlaying {
		return nil
	}
	if e.current == nil {
		return playerrors.ErrNoCurrentTrack
	}
	return e.playLocked(e.current, e.progress.Load())
}

// SkipForward plays the next track from the start. At the last track it
// stops with progress reset and the same track current.
func (e *Engine) SkipForward() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.skipForwardLocked()
}

func (e *Engine) skipForwardLocked() error {
	if e.current == nil {
		return playerrors.ErrNoCurrentTrack
	}
	if e.playlist.Size() == 0 {
		return nil
	}

	next := e.playlist.After(e.current)
	if next == nil {
		e.stopSessionLocked()
		e.progress.Store(0)
		e.setStatusLocked(api.StatusPaused)
		e.publish(api.EventProgress, int64(0))
		return nil
	}
	return e.playLocked(next, 0)
}

// SkipBack plays the previous track from the start, or restarts the current
// track when it is first or no longer in the playlist.
func (e *Engine) SkipBack() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return playerrors.ErrNoCurrentTrack
	}

	target := e.playlist.Before(e.current)
	if target == nil {
		target = e.current
	}
	return e.playLocked(target, 0)
}

// SetProgress moves the progress to offset, clamped to the track length. Playback
// continues from the new position if it was running.
func (e *Engine) SetProgress(offset int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return playerrors.ErrNoCurrentTrack
	}
	offset = max(0, min(offset, e.length))

	if e.status == api.StatusPlaying {
		return e.playLocked(e.current, offset)
	}
	e.progress.Store(offset)
	e.publish(api.EventProgress, offset)
	return nil
}

// SetCurrentTrack stops playback and loads track with progress zero
func (e *Engine) SetCurrentTrack(track *api.Track) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setCurrentLocked(track)
}

func (e *Engine) setCurrentLocked(track *api.Track) error {
	e.stopSessionLocked()
	e.current = track
	e.progress.Store(0)
	e.length = 0

	if track == nil {
		e.setStatusLocked(api.StatusIdle)
		return nil
	}

	info, err := os.Stat(track.Path)
	if err != nil {
		e.setStatusLocked(api.StatusPaused)
		return e.failLocked(playerrors.PlaybackIO("stat", track.Path, err))
	}
	e.length = info.Size()
	e.setStatusLocked(api.StatusStopped)
	return nil
}

// UpdatePlaylist replaces the playlist and makes its first track current
func (e *Engine) UpdatePlaylist(pl *playlist.Playlist) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if pl == nil {
		pl = playlist.New("", "")
	}
	e.playlist = pl
	return e.setCurrentLocked(pl.First())
}

// SplitCurrentTrack copies the bytes before the current progress, or from
// it to the end, into dest. The part is written to a temporary file next to
// dest and renamed over it, so a failed split leaves dest as it was. A dest
// that is the source file itself is rejected with ErrSameFile.
func (e *Engine) SplitCurrentTrack(dest string, keepFirstHalf bool) error {
	e.mu.Lock()
	track := e.current
	progress := e.progress.Load()
	length := e.length
	e.mu.Unlock()

	if track == nil {
		return playerrors.ErrNoCurrentTrack
	}

	start, size := int64(0), progress
	if !keepFirstHalf {
		start, size = progress, max(0, length-progress)
	}

	src, err := os.Open(track.Path)
	if err != nil {
		return playerrors.PlaybackIO("split", track.Path, err)
	}
	defer src.Close()

	srcInfo, err := src.Stat()
	if err != nil {
		return playerrors.PlaybackIO("split", track.Path, err)
	}
	if destInfo, err := os.Stat(dest); err == nil && os.SameFile(srcInfo, destInfo) {
		return playerrors.NewPlayerError("split", track.Path, playerrors.ErrSameFile)
	}

	written, err := writeAtomic(dest, io.NewSectionReader(src, start, size), size)
	if err != nil {
		return playerrors.PlaybackIO("split", track.Path, err)
	}

	e.logger.Debug("split track", "track", track.Path, "dest", dest, "start", start, "bytes", written)
	return nil
}

// writeAtomic copies exactly size bytes from r into a temporary file in
// dest's directory and renames it to dest. On failure the temporary file is
// removed and dest is untouched.
func writeAtomic(dest string, r io.Reader, size int64) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, r)
	if err == nil && written != size {
		err = io.ErrUnexpectedEOF
	}
	if err == nil {
		err = tmp.Chmod(0644)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return written, err
	}
	return written, os.Rename(tmp.Name(), dest)
}

// playLocked stops any session and starts track at offset. Failures leave
// the engine paused on track with progress at offset.
func (e *Engine) playLocked(track *api.Track, offset int64) error {
	e.stopSessionLocked()

	if track != e.current {
		e.current = track
		e.length = 0
	}
	e.progress.Store(offset)

	if e.output == nil {
		e.setStatusLocked(api.StatusPaused)
		return e.failLocked(playerrors.PlaybackIO("open output", track.Path, errors.New("no audio output")))
	}

	file, err := os.Open(track.Path)
	if err != nil {
		e.setStatusLocked(api.StatusPaused)
		return e.failLocked(playerrors.PlaybackIO("open", track.Path, err))
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		e.setStatusLocked(api.StatusPaused)
		return e.failLocked(playerrors.PlaybackIO("stat", track.Path, err))
	}
	e.length = info.Size()

	if offset >= e.length && e.length > 0 {
		file.Close()
		e.progress.Store(e.length)
		e.publish(api.EventTrackEnded, track)
		e.setStatusLocked(api.StatusPaused)
		return e.skipForwardLocked()
	}

	if offset > 0 {
		if _, err := file.SetProgress(offset, io.SeekStart); err != nil {
			file.Close()
			e.setStatusLocked(api.StatusPaused)
			return e.failLocked(playerrors.PlaybackIO("seek", track.Path, err))
		}
	}

	pos := &atomic.Int64{}
	pos.Store(offset)

	source, format, err := safeDecode(e.decode, &countingReader{r: file, pos: pos})
	if err != nil {
		file.Close()
		e.setStatusLocked(api.StatusPaused)
		return e.failLocked(playerrors.PlaybackIO("decode", track.Path, err))
	}

	var stream beep.Streamer = source
	rate := format.SampleRate
	if deviceRate := e.output.SampleRate(); deviceRate > 0 && deviceRate != rate {
		stream = beep.Resample(resampleQuality, rate, deviceRate, source)
		rate = deviceRate
	}
	outFormat := outputFormat(rate)

	sink, err := e.output.Open(outFormat)
	if err != nil {
		source.Close()
		e.setStatusLocked(api.StatusPaused)
		return e.failLocked(playerrors.PlaybackIO("open output", track.Path, err))
	}

	e.sessionID++
	s := &session{
		id:           e.sessionID,
		track:        track,
		source:       source,
		stream:       stream,
		format:       outFormat,
		sink:         sink,
		pos:          pos,
		stop:         make(chan struct{}),
		decodeDone:   make(chan struct{}),
		progressDone: make(chan struct{}),
	}
	e.session = s

	go e.decodeLoop(s)
	go e.progressLoop(s, e.interval)

	e.logger.Debug("playback started", "track", track.Path, "offset", offset, "rate", int(rate))
	e.publish(api.EventTrackStarted, track)
	e.setStatusLocked(api.StatusPlaying)
	return nil
}

// stopSessionLocked joins the running session, if any, and keeps its final
// position as the progress.
func (e *Engine) stopSessionLocked() {
	if e.session == nil {
		return
	}
	s := e.session
	e.session = nil
	e.progress.Store(s.close())
	e.logger.Debug("playback stopped", "track", s.track.Path, "progress", e.progress.Load())
}

// finishSession handles the end of a session's decode worker. Callbacks
// from sessions that have since been replaced are ignored.
func (e *Engine) finishSession(id uint64, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.session.id != id {
		return
	}

	track := e.session.track
	e.stopSessionLocked()
	e.setStatusLocked(api.StatusPaused)

	if err != nil {
		e.failLocked(err)
		return
	}

	e.logger.Debug("track ended", "track", track.Path)
	e.publish(api.EventTrackEnded, track)
	if err := e.skipForwardLocked(); err != nil {
		e.logger.Warn("auto advance failed", "error", err)
	}
}

func (e *Engine) failLocked(err error) error {
	e.logger.Error("playback failed", "error", err)
	e.publish(api.EventError, err)
	return err
}

// Close stops playback and closes all event channels
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopSessionLocked()
	if e.current != nil {
		e.setStatusLocked(api.StatusPaused)
	}
	if n := e.bus.Dropped(); n > 0 {
		e.logger.Debug("events dropped by slow subscribers", "count", n)
	}
	e.bus.Close()
	return nil
}

// CurrentTrack returns the current track, or nil
func (e *Engine) CurrentTrack() *api.Track {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Progress returns the last sampled byte offset into the current track
func (e *Engine) Progress() int64 {
	return e.progress.Load()
}

// Length returns the current track's file size in bytes
func (e *Engine) Length() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.length
}

// Status returns the transport state
func (e *Engine) Status() api.PlaybackStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Playlist returns the playlist the engine navigates
func (e *Engine) Playlist() *playlist.Playlist {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playlist
}

// GetState returns a snapshot of the engine. CurrentTrack is the engine's
// own instance so it can be located in the playlist by identity.
func (e *Engine) GetState() *api.PlaybackState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return &api.PlaybackState{
		Status:       e.status,
		CurrentTrack: e.current,
		Progress:     e.progress.Load(),
		Length:       e.length,
	}
}
