package api

import "time"

// Track is a single MP3 file with its display metadata. Tracks are compared
// by identity: two instances built from the same path are distinct entries.
type Track struct {
	ID       string        `json:"id"`
	Path     string        `json:"path"`
	Title    string        `json:"title"`
	Artist   string        `json:"artist"`
	Album    string        `json:"album"`
	Duration time.Duration `json:"duration"`
	Size     int64         `json:"size"`
	Cover    *CoverArt     `json:"-"`
}

// Seconds returns the duration in whole seconds.
func (t *Track) Seconds() int {
	return int(t.Duration / time.Second)
}

// PlaybackStatus represents the engine's transport state
type PlaybackStatus int

const (
	StatusIdle PlaybackStatus = iota
	StatusStopped
	StatusPlaying
	StatusPaused
)

func (s PlaybackStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusStopped:
		return "stopped"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	}
	return "unknown"
}

// PlaybackState is a snapshot of the engine. Progress and Length are byte
// offsets into the current track's file.
type PlaybackState struct {
	Status       PlaybackStatus
	CurrentTrack *Track
	Progress     int64
	Length       int64
}

// EventType identifies what an AudioEvent reports
type EventType int

const (
	EventTrackStarted EventType = iota
	EventTrackEnded
	EventProgress
	EventStateChange
	EventError
)

// AudioEvent is published by the engine. Payload is the *Track for track
// events, the byte offset for progress, the PlaybackStatus for state changes
// and the error for EventError.
type AudioEvent struct {
	Type    EventType
	Payload any
}

// Player is the transport surface a front-end drives.
type Player interface {
	PlayPause() error
	Play(index int) error
	Pause() error
	Resume() error
	SkipForward() error
	SkipBack() error
	SetProgress(offset int64) error
	SetCurrentTrack(track *Track) error
	SplitCurrentTrack(dest string, keepFirstHalf bool) error
	GetState() *PlaybackState
	Events() <-chan AudioEvent
}
