package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/typecast/arena"
	"github.com/lixenwraith/typecast/audio"
	"github.com/lixenwraith/typecast/config"
	"github.com/lixenwraith/typecast/engine"
	"github.com/lixenwraith/typecast/event"
	"github.com/lixenwraith/typecast/match"
	"github.com/lixenwraith/typecast/scoreboard"
	"github.com/lixenwraith/typecast/status"
	"github.com/lixenwraith/typecast/terminal"
	"github.com/lixenwraith/typecast/words"
)

const (
	imeWarning         = "Hangul input detected: switch your IME to English or press Tab for Hangul mode"
	imeWarningDuration = 3 * time.Second
)

// loggedEvents are traced at debug level as they are dispatched
var loggedEvents = []event.EventType{
	event.EventWordCompleted,
	event.EventGlobalTypo,
	event.EventTargetReassigned,
	event.EventScriptMismatch,
	event.EventPlayerHit,
	event.EventPlayerDefeated,
	event.EventCastStarted,
	event.EventCastFired,
	event.EventCastFinished,
	event.EventAttackDropped,
	event.EventEnemyDied,
}

// app owns one play session
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	metrics *status.Registry

	game   *engine.Game
	arena  *arena.Arena
	tally  *scoreboard.Tally
	player *audio.Player
	ui     *terminal.UI
	clock  *engine.PausableClock

	warning   string
	warningIn time.Duration
}

// newApp wires the engine, arena and adapters around an initialized UI
func newApp(cfg config.Config, log zerolog.Logger, ui *terminal.UI, player *audio.Player, source engine.TimeSource) (*app, error) {
	supply, err := buildSupply(cfg, log)
	if err != nil {
		return nil, err
	}

	metrics := status.NewRegistry()
	tally := scoreboard.NewTally(cfg.Script.String(), source.Now())
	tally.SetPlayerHP(cfg.PlayerHP)

	world := arena.New(cfg.Enemies,
		arena.WithAttackInterval(cfg.AttackInterval),
		arena.WithPlayerHP(cfg.PlayerHP),
		arena.WithInvincibility(cfg.Invincibility),
		arena.WithMetrics(metrics),
		arena.WithLogger(log.With().Str("component", "arena").Logger()),
	)

	game := engine.NewGame(engine.Deps{
		World:   world,
		Combat:  world,
		Actor:   world,
		Words:   supply,
		Scoring: tally,
		Metrics: metrics,
		Logger:  log,
	}, cfg.Settings())

	a := &app{
		cfg:     cfg,
		log:     log,
		metrics: metrics,
		game:    game,
		arena:   world,
		tally:   tally,
		player:  player,
		ui:      ui,
		clock:   engine.NewPausableClock(source),
	}

	game.Subscribe(tally)
	if player != nil {
		game.Subscribe(player)
	}
	game.Subscribe(event.HandlerFunc[event.Tick]{
		Types: []event.EventType{event.EventPlayerDefeated},
		Fn: func(event.Tick, event.GameEvent) {
			a.warning = ""
			log.Info().Str("run", tally.Current().ID.String()).Msg("player defeated, input closed")
		},
	})
	game.Subscribe(event.HandlerFunc[event.Tick]{
		Types: []event.EventType{event.EventScriptMismatch},
		Fn: func(event.Tick, event.GameEvent) {
			a.warning = imeWarning
			a.warningIn = imeWarningDuration
		},
	})

	game.Subscribe(event.HandlerFunc[event.Tick]{
		Types: loggedEvents,
		Fn: func(tick event.Tick, ev event.GameEvent) {
			log.Debug().Stringer("event", ev.Type).Int64("frame", tick.Frame).Msg("event dispatched")
		},
	})

	world.Attach(game)
	log.Info().
		Str("script", cfg.Script.String()).
		Int("enemies", cfg.Enemies).
		Str("run", tally.Current().ID.String()).
		Msg("session started")
	return a, nil
}

// buildSupply loads the configured word file for the starting script and embedded lists otherwise
func buildSupply(cfg config.Config, log zerolog.Logger) (*words.Supply, error) {
	opts := []words.Option{
		words.WithList(words.Embedded(match.ScriptLatin)),
		words.WithList(words.Embedded(match.ScriptHangul)),
		words.WithLogger(log.With().Str("component", "words").Logger()),
	}
	if cfg.WordsFile != "" {
		list, err := words.LoadFile(cfg.WordsFile, cfg.Script)
		if err != nil {
			return nil, err
		}
		opts = append(opts, words.WithList(list))
	}
	return words.NewSupply(opts...), nil
}

// handleEvent applies one terminal event; returns false to quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(terminal.Translate(ev))
	case *tcell.EventResize:
		a.ui.Sync()
	}
	return true
}

func (a *app) handleKey(in terminal.Input) bool {
	switch in.Action {
	case terminal.ActionQuit:
		return false
	case terminal.ActionPause:
		paused := a.clock.Toggle()
		a.log.Debug().Bool("paused", paused).Msg("pause toggled")
	case terminal.ActionToggleMute:
		if a.player != nil {
			a.player.ToggleMute()
		}
	case terminal.ActionToggleScript:
		next := match.ScriptHangul
		if a.game.Script() == match.ScriptHangul {
			next = match.ScriptLatin
		}
		a.game.SetScript(next)
		a.tally.SetScript(next.String())
		a.warning = ""
	case terminal.ActionSymbol:
		if a.accepting() {
			a.game.SubmitKey(in.Rune, in.Shift)
		}
	case terminal.ActionBackspace:
		if a.accepting() {
			a.game.SubmitBackspace()
		}
	}
	return true
}

func (a *app) accepting() bool {
	return !a.clock.IsPaused() && !a.arena.Defeated()
}

// step advances one frame by the clock's game-time delta and redraws
// After defeat the engine keeps ticking to settle queued events while the arena stands still
func (a *app) step() {
	dt := a.clock.Delta()
	if !a.clock.IsPaused() {
		a.game.Tick(dt)
		if !a.arena.Defeated() {
			a.arena.Update(dt)
		}
	}
	if a.warningIn > 0 {
		a.warningIn -= dt
		if a.warningIn <= 0 {
			a.warning = ""
		}
	}
	a.ui.Draw(a.scene())
}

func (a *app) scene() terminal.Scene {
	_, casting := a.arena.Casting()
	hp, maxHP := a.arena.PlayerHP()
	return terminal.Scene{
		Enemies:    a.arena.Enemies(),
		Facing:     a.arena.Facing(),
		Casting:    casting,
		Script:     a.game.Script(),
		Phase:      a.game.Sequencer().Phase(),
		Pending:    a.game.Sequencer().Pending(),
		TypoActive: a.game.TypoActive(),
		Paused:     a.clock.IsPaused(),
		Muted:      a.player == nil || a.player.IsMuted(),
		Warning:    a.warning,
		Stats:      a.metrics.Entries(),

		PlayerHP:    hp,
		PlayerMaxHP: maxHP,
		Invincible:  a.arena.Invincible(),
		Defeated:    a.arena.Defeated(),
	}
}

// run drives the frame loop until quit, ctx cancellation or the UI closing
func (a *app) run(ctx context.Context, frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-a.ui.Events():
			if !ok || !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.step()
		}
	}
}

// finish stamps the run and stores it
func (a *app) finish(ctx context.Context, ledger scoreboard.Ledger, ended time.Time) (scoreboard.Run, error) {
	run := a.tally.Finish(ended)
	if err := ledger.SaveRun(ctx, run); err != nil {
		return run, fmt.Errorf("save run: %w", err)
	}
	a.log.Info().
		Str("run", run.ID.String()).
		Int("words", run.Words).
		Int("kills", run.Kills).
		Bool("defeated", run.Defeated).
		Msg("session finished")
	return run, nil
}
