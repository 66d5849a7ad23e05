package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound          = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMalformedPlaylist = errors.New("malformed playlist")
	ErrPlaybackIO        = errors.New("playback i/o failed")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrNoCurrentTrack    = errors.New("no current track")
	ErrSameFile          = errors.New("destination is the source file")
)

// PlayerError wraps errors with additional context
type PlayerError struct {
	Op    string // Operation that failed
	Track string // Track path if applicable
	Err   error  // Underlying error
}

func (e *PlayerError) Error() string {
	if e.Track != "" {
		return fmt.Sprintf("%s failed for track %s: %v", e.Op, e.Track, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PlayerError) Unwrap() error {
	return e.Err
}

// NewPlayerError creates a new PlayerError
func NewPlayerError(op, track string, err error) *PlayerError {
	return &PlayerError{Op: op, Track: track, Err: err}
}

// PlaybackIO wraps err as a playback failure of op on the given track.
func PlaybackIO(op, track string, err error) *PlayerError {
	return &PlayerError{Op: op, Track: track, Err: fmt.Errorf("%w: %w", ErrPlaybackIO, err)}
}

// ScanError represents an error while expanding track paths
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error at %s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
