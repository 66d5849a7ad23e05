package split

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jscyril/wpl_player/internal/audio"
	"github.com/jscyril/wpl_player/internal/cli/common"
	"github.com/jscyril/wpl_player/internal/library"
	"github.com/jscyril/wpl_player/internal/logging"
	"github.com/jscyril/wpl_player/internal/playlist"
	"github.com/spf13/cobra"
)

type Params struct {
	Track  string `pos:"true" required:"true" help:"Track to split."`
	At     int    `help:"Byte offset of the split point."`
	Output string `short:"o" help:"File to write the part to."`
	Second bool   `optional:"true" help:"Keep the part after the split point instead of the part before it."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "split",
		Short:       "Copy the part of a track before or after a byte offset",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			exitCode := Run(params, os.Stdout, os.Stderr)
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func Run(params *Params, stdout, stderr io.Writer) int {
	track, err := library.NewScanner(1, nil).ScanFile(params.Track)
	if err != nil {
		fmt.Fprintf(stderr, "split: %s: %v\n", params.Track, err)
		return 1
	}

	pl := playlist.New("", "")
	pl.Add(track)

	// No output device is needed to split
	engine := audio.NewEngine(pl, nil, audio.WithLogger(logging.Discard()))
	defer engine.Close()

	if err := engine.SetProgress(int64(params.At)); err != nil {
		fmt.Fprintf(stderr, "split: %v\n", err)
		return 1
	}
	if err := engine.SplitCurrentTrack(params.Output, !params.Second); err != nil {
		fmt.Fprintf(stderr, "split: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Split %s at byte %d into %s\n", track.Path, engine.Progress(), params.Output)
	return 0
}
