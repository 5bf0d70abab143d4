// Command typecast is a terminal typing-combat game: type an enemy's word to cast at it
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/lixenwraith/typecast/audio"
	"github.com/lixenwraith/typecast/config"
	"github.com/lixenwraith/typecast/engine"
	"github.com/lixenwraith/typecast/parameter"
	"github.com/lixenwraith/typecast/scoreboard"
	"github.com/lixenwraith/typecast/terminal"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "typecast: %v\n", err)
		os.Exit(2)
	}

	logFile, log := setupLogging(cfg.Debug, cfg.Level())
	if logFile != nil {
		defer logFile.Close()
	}

	ledger, err := scoreboard.OpenLedger(cfg.DBPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.DBPath).Msg("scoreboard unavailable, keeping runs in memory")
	}
	defer ledger.Close()

	var player *audio.Player
	if cfg.Audio {
		audioCfg := audio.DefaultConfig()
		audioCfg.SetVolumePercent(cfg.Volume)
		player = audio.NewPlayer(audioCfg, audio.WithLogger(log.With().Str("component", "audio").Logger()))
		if err := player.Start(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable, continuing without sound")
			player = nil
		} else {
			defer player.Close()
		}
	}

	ui, err := terminal.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "typecast: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			ui.Close()
			fmt.Fprintf(os.Stderr, "\ntypecast crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	a, err := newApp(cfg, log, ui, player, engine.NewTimeProvider())
	if err != nil {
		ui.Close()
		fmt.Fprintf(os.Stderr, "typecast: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.run(ctx, parameter.FrameUpdateInterval)
	ui.Close()

	run, err := a.finish(context.Background(), ledger, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("run not saved")
	}
	outcome := "survived"
	if run.Defeated {
		outcome = "defeated"
	}
	fmt.Printf("words %d  fired %d  kills %d  global typos %d  accuracy %.0f%%  hp %d  %s  time %s\n",
		run.Words, run.Fired, run.Kills, run.GlobalTypos, run.Accuracy()*100, run.PlayerHP, outcome, run.Duration().Round(time.Second))
}
