// Package cli defines the waveplay command line: the interactive player
// and the list and headless subcommands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/llehouerou/waveplay/internal/config"
	"github.com/llehouerou/waveplay/internal/playback"
)

type rootParams struct {
	configPath string
	volume     int
	wrap       bool
}

// NewRootCmd builds the waveplay command tree.
func NewRootCmd() *cobra.Command {
	var params rootParams
	cmd := &cobra.Command{
		Use:   config.AppName + " [paths...]",
		Short: "Terminal audio player",
		Long: "Plays local audio files (mp3, flac, wav, ogg, m4a) from a sortable playlist.\n" +
			"Directories are expanded to the audio files they contain.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(params.configPath)
			if err != nil {
				return err
			}
			paths, err := ExpandPaths(args)
			if err != nil {
				return err
			}
			return runPlayer(cfg, paths, params.overrides(cmd))
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&params.configPath, "config", "", "extra config file, read after the default ones")
	cmd.Flags().IntVar(&params.volume, "volume", playback.DefaultVolume, "initial volume percent (0-100)")
	cmd.Flags().BoolVar(&params.wrap, "wrap", false, "wrap around at the ends of the playlist")

	cmd.AddCommand(newListCmd(&params), newHeadlessCmd())
	return cmd
}

// overrides turns explicitly set flags into coordinator options.
func (p *rootParams) overrides(cmd *cobra.Command) []playback.Option {
	var opts []playback.Option
	if cmd.Flags().Changed("volume") {
		opts = append(opts, playback.WithVolume(p.volume))
	}
	if cmd.Flags().Changed("wrap") {
		opts = append(opts, playback.WithWrap(p.wrap))
	}
	return opts
}

// Execute runs the command line.
func Execute() error {
	return NewRootCmd().Execute()
}
