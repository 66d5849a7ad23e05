package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jscyril/wpl_player/internal/cli/create"
	"github.com/jscyril/wpl_player/internal/cli/info"
	"github.com/jscyril/wpl_player/internal/cli/play"
	"github.com/jscyril/wpl_player/internal/cli/split"
	"github.com/spf13/cobra"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "wplayer",
		Short:   "Terminal MP3 player for .wpl playlists",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			play.Cmd(),
			info.Cmd(),
			create.Cmd(),
			split.Cmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuildInfo := debug.ReadBuildInfo()
	if !hasBuildInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
