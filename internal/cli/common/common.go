// Package common holds helpers shared by the wplayer subcommands.
package common

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jscyril/wpl_player/internal/config"
	"github.com/jscyril/wpl_player/internal/library"
	"github.com/jscyril/wpl_player/internal/playlist"
)

func DefaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}

// LoadConfig reads .env, then the config file at path or the default
// location, writing defaults there on first run
func LoadConfig(path string) (*config.Config, error) {
	config.LoadEnv()
	if path == "" {
		path = config.GetConfigPath()
	}
	return config.LoadOrCreate(path)
}

// LoadPlaylist opens a single .wpl input, or builds an unsaved playlist
// from track files and directories. No inputs gives an empty playlist.
func LoadPlaylist(ctx context.Context, inputs []string, scanner *library.Scanner) (*playlist.Playlist, error) {
	if len(inputs) == 1 && strings.EqualFold(filepath.Ext(inputs[0]), ".wpl") {
		return playlist.Parse(ctx, inputs[0], scanner)
	}

	pl := playlist.New("", "")
	if len(inputs) == 0 {
		return pl, nil
	}
	tracks, err := scanner.Scan(ctx, inputs)
	if err != nil {
		return nil, err
	}
	pl.Add(tracks...)
	return pl, nil
}
