package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/waveplay/internal/playback"
	"github.com/llehouerou/waveplay/internal/player"
	"github.com/llehouerou/waveplay/internal/playlist"
)

var errNoFiles = errors.New("no audio files")

type headlessParams struct {
	volume int
	limit  time.Duration
	skip   bool
}

// newHeadlessCmd plays files without the TUI and logs every coordinator
// event. It checks that files decode and that playback advances.
func newHeadlessCmd() *cobra.Command {
	var params headlessParams
	cmd := &cobra.Command{
		Use:   "headless [paths...]",
		Short: "Play files headless and log playback events",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := ExpandPaths(args)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			engine := player.New()
			defer engine.Close()
			return runHeadless(ctx, cmd.ErrOrStderr(), engine, paths, params)
		},
	}
	f := cmd.Flags()
	f.IntVar(&params.volume, "volume", playback.DefaultVolume, "volume percent (0-100)")
	f.DurationVar(&params.limit, "limit", 0, "stop after this long (0 plays until the playlist ends)")
	f.BoolVar(&params.skip, "skip", true, "skip files that fail to load")
	return cmd
}

func runHeadless(ctx context.Context, out io.Writer, engine player.Engine, paths []string, params headlessParams) error {
	if len(paths) == 0 {
		return errNoFiles
	}
	if params.limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.limit)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c := playback.New(playlist.NewStore(), engine,
		playback.WithVolume(params.volume),
		playback.WithSkipUnplayable(params.skip),
	)
	defer c.Close()

	logger := log.New(out, "", log.Ltime)
	pl := &headlessLog{log: logger, c: c, done: cancel}
	c.Subscribe(pl.handle)

	c.SetPlaylist(playlist.TracksFromFiles(paths))

	err := c.Run(ctx, engine.Events())
	logger.Printf("done at track %d/%d", c.CurrentIndex()+1, c.PlaylistSize())
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("playback loop: %w", err)
	}
	return nil
}

// headlessLog prints coordinator events and calls done once the last row stops.
type headlessLog struct {
	log        *log.Logger
	c          *playback.Coordinator
	done       func()
	lastSecond time.Duration
}

func (p *headlessLog) handle(e playback.Event) {
	switch e := e.(type) {
	case playback.PositionChange:
		if s := e.Position.Truncate(time.Second); s != p.lastSecond {
			p.lastSecond = s
			p.log.Printf("position %s", playlist.FormatDuration(s))
		}
	case playback.TrackChange:
		p.lastSecond = 0
		p.log.Printf("track %d/%d: %s (%s)", e.Index+1, p.c.PlaylistSize(), e.Track.Title, e.Track.Path)
	case playback.StateChange:
		p.log.Printf("state %s -> %s", e.Previous, e.Current)
		if e.Current == playback.StateStopped && p.c.CurrentIndex() == p.c.PlaylistSize()-1 {
			p.done()
		}
	case playback.ErrorEvent:
		p.log.Printf("error: %s (%s)", e.Message(), e.Path)
	default:
		p.log.Printf("%T %+v", e, e)
	}
}
