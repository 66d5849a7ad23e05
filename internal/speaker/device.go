//go:build (linux && cgo) || (darwin && cgo) || windows

package speaker

import (
	"fmt"
	"io"
	"sync"

	"github.com/hajimehoshi/oto"
	playerrors "github.com/jscyril/wpl_player/pkg/errors"
)

var (
	deviceOnce sync.Once
	device     *oto.Context
	deviceRate int
	deviceErr  error
)

// openPlayer returns a player on the shared context. The context can only
// be created once per process, so every output must agree on its rate.
func openPlayer(rate, bufferSize int) (io.WriteCloser, error) {
	deviceOnce.Do(func() {
		device, deviceErr = oto.NewContext(rate, channels, bytesPerSample, bufferSize)
		deviceRate = rate
	})
	if deviceErr != nil {
		return nil, fmt.Errorf("%w: open audio device: %w", playerrors.ErrPlaybackIO, deviceErr)
	}
	if rate != deviceRate {
		return nil, fmt.Errorf("%w: device already opened at %d Hz", playerrors.ErrPlaybackIO, deviceRate)
	}
	return device.NewPlayer(), nil
}
