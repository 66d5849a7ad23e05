package audio

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	playerrors "github.com/jscyril/wpl_player/pkg/errors"
)

// DecodeFunc turns a byte stream into PCM. The returned streamer owns rc
// and closes it on Close.
type DecodeFunc func(rc io.ReadCloser) (beep.StreamCloser, beep.Format, error)

// DecodeMP3 decodes an MP3 stream. The stream may start at any byte offset;
// the decoder resynchronises on the next frame header.
func DecodeMP3(rc io.ReadCloser) (beep.StreamCloser, beep.Format, error) {
	return mp3.Decode(rc)
}

// safeDecode runs decode, converting a decoder panic into an error
func safeDecode(decode DecodeFunc, rc io.ReadCloser) (s beep.StreamCloser, f beep.Format, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: decoder panic: %v", playerrors.ErrPlaybackIO, r)
		}
	}()
	return decode(rc)
}

// countingReader counts the bytes read from the underlying file. It has no
// Seek method so the MP3 decoder cannot rewind to the start of the file.
type countingReader struct {
	r   io.ReadCloser
	pos *atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.pos.Add(int64(n))
	return n, err
}

func (c *countingReader) Close() error {
	return c.r.Close()
}
