package play

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/faiface/beep"
	"github.com/jscyril/wpl_player/internal/audio"
	"github.com/jscyril/wpl_player/internal/cli/common"
	"github.com/jscyril/wpl_player/internal/library"
	"github.com/jscyril/wpl_player/internal/logging"
	"github.com/jscyril/wpl_player/internal/speaker"
	"github.com/jscyril/wpl_player/internal/ui"
	"github.com/spf13/cobra"
)

type Params struct {
	Inputs []string `pos:"true" optional:"true" help:"A .wpl playlist, or tracks and directories to play."`
	Config string   `short:"c" optional:"true" help:"Config file (JSON or TOML)."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "play",
		Short:       "Open the player",
		Long:        "Open the terminal player on a .wpl playlist, or on a new playlist built from the given tracks and directories.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			exitCode := Run(params, os.Stdout, os.Stderr)
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func Run(params *Params, stdout, stderr io.Writer) int {
	cfg, err := common.LoadConfig(params.Config)
	if err != nil {
		fmt.Fprintf(stderr, "play: %v\n", err)
		return 1
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = filepath.Join(os.TempDir(), "wplayer.log")
	}
	logger, closeLog, err := logging.Setup(cfg.LogLevel, logFile)
	if err != nil {
		fmt.Fprintf(stderr, "play: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scanner := library.NewScanner(cfg.LoadWorkers, nil)
	pl, err := common.LoadPlaylist(ctx, params.Inputs, scanner)
	if err != nil {
		fmt.Fprintf(stderr, "play: %v\n", err)
		return 1
	}
	logger.Info("playlist loaded", "name", pl.Name(), "file", pl.File(), "tracks", pl.Size())

	output := speaker.New(beep.SampleRate(cfg.SampleRate), cfg.OutputBuffer())
	engine := audio.NewEngine(pl, output,
		audio.WithLogger(logger),
		audio.WithProgressInterval(cfg.ProgressInterval()),
	)
	defer engine.Close()

	if err := ui.Run(engine, scanner, cfg, logger); err != nil {
		fmt.Fprintf(stderr, "play: %v\n", err)
		return 1
	}
	return 0
}
