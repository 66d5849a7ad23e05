//go:build !((linux && cgo) || (darwin && cgo) || windows)

package speaker

import (
	"fmt"
	"io"
	"runtime"

	playerrors "github.com/jscyril/wpl_player/pkg/errors"
)

func openPlayer(rate, bufferSize int) (io.WriteCloser, error) {
	return nil, fmt.Errorf("%w: no audio device support on %s", playerrors.ErrPlaybackIO, runtime.GOOS)
}
