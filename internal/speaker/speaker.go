// Package speaker plays engine output on the system audio device.
package speaker

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/faiface/beep"
	playerrors "github.com/jscyril/wpl_player/pkg/errors"
)

// DefaultSampleRate is the device rate; tracks at other rates are resampled
const DefaultSampleRate beep.SampleRate = 44100

const (
	channels       = 2
	bytesPerSample = 2
)

// Output is an audio.Output backed by the process-wide device context.
// The device is opened on first use so a machine without audio can still
// edit playlists.
type Output struct {
	rate       beep.SampleRate
	bufferSize int
}

// New creates an output playing at rate with roughly buffer of latency
func New(rate beep.SampleRate, buffer time.Duration) *Output {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	if buffer <= 0 {
		buffer = 100 * time.Millisecond
	}
	return &Output{
		rate:       rate,
		bufferSize: rate.N(buffer) * channels * bytesPerSample,
	}
}

// SampleRate returns the device rate
func (o *Output) SampleRate() beep.SampleRate {
	return o.rate
}

// Open starts a player on the device
func (o *Output) Open(format beep.Format) (io.WriteCloser, error) {
	if format.SampleRate != o.rate || format.NumChannels != channels || format.Precision != bytesPerSample {
		return nil, fmt.Errorf("%w: device plays %d Hz stereo 16-bit, got %d Hz %d channels %d bytes",
			playerrors.ErrPlaybackIO, o.rate, format.SampleRate, format.NumChannels, format.Precision)
	}
	player, err := openPlayer(int(o.rate), o.bufferSize)
	if err != nil {
		return nil, err
	}
	return newSink(player, o.bufferSize), nil
}

// sink forwards writes to a device player in buffer-sized pieces so Close
// only has to wait for the piece in flight before releasing the player.
type sink struct {
	player io.WriteCloser
	chunk  int
	mu     sync.Mutex
	done   chan struct{}
	once   sync.Once
}

func newSink(player io.WriteCloser, chunk int) *sink {
	return &sink{
		player: player,
		chunk:  max(chunk, 1),
		done:   make(chan struct{}),
	}
}

func (s *sink) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		select {
		case <-s.done:
			return written, io.ErrClosedPipe
		default:
		}

		end := min(written+s.chunk, len(p))
		s.mu.Lock()
		n, err := s.player.Write(p[written:end])
		s.mu.Unlock()
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

func (s *sink) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		defer s.mu.Unlock()
		err = s.player.Close()
	})
	return err
}
