package audio

import (
	"io"

	"github.com/faiface/beep"
)

// Output is an audio device the engine writes PCM to
type Output interface {
	// SampleRate is the rate the device plays at. Zero means it accepts
	// whatever rate the stream has.
	SampleRate() beep.SampleRate

	// Open starts a sink for one playback session. Writes carry
	// interleaved signed little-endian samples in format and block while
	// the device is busy. Close must unblock a pending Write.
	Open(format beep.Format) (io.WriteCloser, error)
}

// outputFormat is the PCM layout written to every sink
func outputFormat(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}
