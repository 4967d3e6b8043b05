package cli

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/waveplay/internal/app"
	"github.com/llehouerou/waveplay/internal/config"
	"github.com/llehouerou/waveplay/internal/errmsg"
	"github.com/llehouerou/waveplay/internal/icons"
	"github.com/llehouerou/waveplay/internal/mpris"
	"github.com/llehouerou/waveplay/internal/notify"
	"github.com/llehouerou/waveplay/internal/playback"
	"github.com/llehouerou/waveplay/internal/player"
	"github.com/llehouerou/waveplay/internal/state"
	"github.com/llehouerou/waveplay/internal/stderr"
)

func runPlayer(cfg *config.Config, paths []string, opts []playback.Option) error {
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	// decoders and the audio backend write to fd 2, which would corrupt the TUI
	if err := stderr.Start(func(line string) { log.Printf("stderr: %s", line) }); err != nil {
		log.Printf("stderr capture disabled: %v", err)
	}
	defer stderr.Stop()

	icons.Init(cfg.Icons)

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpStateLoad, err))
	}
	defer func() {
		if err := stateMgr.Close(); err != nil {
			log.Printf("%s", errmsg.Format(errmsg.OpStateSave, err))
		}
	}()

	engine := player.New()
	defer engine.Close()

	m := app.New(cfg, engine, stateMgr, opts...)
	m.Load(paths)

	p := tea.NewProgram(m, tea.WithAltScreen())
	defer startIntegrations(cfg, m.Coordinator(), app.Dispatcher(p))()

	log.Printf("starting with %d tracks", len(paths))
	_, err = p.Run()
	m.Close()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}
	return nil
}

// startIntegrations connects MPRIS and desktop notifications when enabled.
// Failures are logged; the player runs without them.
func startIntegrations(cfg *config.Config, c *playback.Coordinator, dispatch mpris.Dispatcher) (stop func()) {
	var stops []func()

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(c, dispatch)
		if err != nil {
			log.Printf("%s", errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			stops = append(stops, func() { _ = adapter.Close() })
		}
	}

	if cfg.NotificationsEnabled() {
		n, err := notify.New()
		if err != nil {
			log.Printf("%s", errmsg.Format(errmsg.OpNotify, err))
		} else {
			np := notify.NewNowPlaying(n)
			stops = append(stops, c.Subscribe(np.Handle), np.Close)
		}
	}

	return func() {
		for _, s := range stops {
			s()
		}
	}
}

func setupLogging(cfg *config.Config) (func(), error) {
	path, err := cfg.LogPath()
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { _ = f.Close() }, nil
}
