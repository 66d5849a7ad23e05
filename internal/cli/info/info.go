package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/jscyril/wpl_player/internal/cli/common"
	"github.com/jscyril/wpl_player/internal/library"
	"github.com/jscyril/wpl_player/internal/playlist"
	"github.com/jscyril/wpl_player/internal/ui/components"
	"github.com/spf13/cobra"
)

type Params struct {
	Playlist string `pos:"true" required:"true" help:"The .wpl playlist to describe."`
	Workers  int    `short:"w" optional:"true" help:"Files read in parallel." default:"4"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "info",
		Short:       "Show a playlist's details and tracks",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			exitCode := Run(params, os.Stdout, os.Stderr)
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func Run(params *Params, stdout, stderr io.Writer) int {
	pl, err := playlist.Parse(context.Background(), params.Playlist, library.NewScanner(params.Workers, nil))
	if err != nil {
		fmt.Fprintf(stderr, "info: %v\n", err)
		return 1
	}

	saved := text.FgGreen.Sprint("yes")
	if !pl.IsSaved() {
		saved = text.FgYellow.Sprint("no")
	}

	fmt.Fprintf(stdout, "Name:      %s\n", pl.Name())
	fmt.Fprintf(stdout, "Author:    %s\n", pl.Author())
	fmt.Fprintf(stdout, "File:      %s\n", pl.File())
	fmt.Fprintf(stdout, "Tracks:    %d\n", pl.Size())
	fmt.Fprintf(stdout, "Play time: %s\n", pl.PlayTime())
	fmt.Fprintf(stdout, "Saved:     %s\n\n", saved)

	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Title", "Artist", "Album", "Duration", "Size"})
	for i, track := range pl.Tracks() {
		t.AppendRow(table.Row{
			i + 1,
			track.Title,
			track.Artist,
			track.Album,
			playlist.FormatPlayTime(track.Duration),
			components.FormatBytes(track.Size),
		})
	}
	t.Render()

	return 0
}
