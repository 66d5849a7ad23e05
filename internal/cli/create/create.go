package create

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jscyril/wpl_player/internal/cli/common"
	"github.com/jscyril/wpl_player/internal/library"
	"github.com/jscyril/wpl_player/internal/playlist"
	"github.com/spf13/cobra"
)

type Params struct {
	Inputs  []string `pos:"true" required:"true" help:"Tracks and directories to add, in order."`
	Output  string   `short:"o" help:"Playlist file to write."`
	Name    string   `short:"n" optional:"true" help:"Playlist name."`
	Author  string   `short:"a" optional:"true" help:"Playlist author."`
	Workers int      `short:"w" optional:"true" help:"Files read in parallel." default:"4"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "create",
		Short:       "Write a playlist from tracks and directories",
		Long:        "Read the given tracks, expanding directories to the MP3 files below them, and save them as a .wpl playlist.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			exitCode := Run(params, os.Stdout, os.Stderr)
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func Run(params *Params, stdout, stderr io.Writer) int {
	scanner := library.NewScanner(params.Workers, nil)
	tracks, err := scanner.Scan(context.Background(), params.Inputs)
	if err != nil {
		fmt.Fprintf(stderr, "create: %v\n", err)
		return 1
	}

	pl := playlist.New(params.Name, params.Author)
	pl.Add(tracks...)

	if err := pl.SaveAs(params.Output, playlist.FormatFromPath(params.Output)); err != nil {
		fmt.Fprintf(stderr, "create: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Wrote %d tracks (%s) to %s\n", pl.Size(), pl.PlayTime(), pl.File())
	return 0
}
