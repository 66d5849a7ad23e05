package audio

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/jscyril/wpl_player/api"
	playerrors "github.com/jscyril/wpl_player/pkg/errors"
)

// samplesPerChunk is how many frames the decode worker streams per write
const samplesPerChunk = 512

// session is one run of the decode and progress workers over a track. The
// workers never take the engine lock; the engine joins them through the
// done channels before touching the session's resources.
type session struct {
	id     uint64
	track  *api.Track
	source beep.StreamCloser
	stream beep.Streamer
	format beep.Format
	sink   io.WriteCloser
	pos    *atomic.Int64

	stop         chan struct{}
	decodeDone   chan struct{}
	progressDone chan struct{}
}

func (s *session) stopped() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

// decodeLoop streams PCM to the sink until the track ends, an error occurs
// or the session is stopped. Natural ends and errors are reported to the
// engine from a separate goroutine so the engine can join this one.
func (e *Engine) decodeLoop(s *session) {
	defer close(s.decodeDone)
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: decoder panic: %v", playerrors.ErrPlaybackIO, r)
			go e.finishSession(s.id, err)
		}
	}()

	samples := make([][2]float64, samplesPerChunk)
	buf := make([]byte, samplesPerChunk*s.format.Width())

	for !s.stopped() {
		n, ok := s.stream.Stream(samples)
		if n > 0 {
			written := 0
			for _, sample := range samples[:n] {
				written += s.format.EncodeSigned(buf[written:], sample)
			}
			if _, err := s.sink.Write(buf[:written]); err != nil {
				if !s.stopped() {
					go e.finishSession(s.id, playerrors.PlaybackIO("write", s.track.Path, err))
				}
				return
			}
		}
		if !ok {
			if s.stopped() {
				return
			}
			var err error
			if cause := s.source.Err(); cause != nil {
				err = playerrors.PlaybackIO("decode", s.track.Path, cause)
			}
			go e.finishSession(s.id, err)
			return
		}
	}
}

// progressLoop samples the byte position every interval until the session
// is stopped or the decode worker exits.
func (e *Engine) progressLoop(s *session, interval time.Duration) {
	defer close(s.progressDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-s.decodeDone:
			e.progress.Store(s.pos.Load())
			return
		case <-ticker.C:
			pos := s.pos.Load()
			e.progress.Store(pos)
			e.publish(api.EventProgress, pos)
		}
	}
}

// close stops both workers, waits for them and releases the sink and file.
// It returns the final byte position.
func (s *session) close() int64 {
	close(s.stop)
	s.sink.Close()
	<-s.decodeDone
	<-s.progressDone
	s.source.Close()
	return s.pos.Load()
}
