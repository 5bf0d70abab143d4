package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/typecast/parameter"
)

// UI owns the screen and the event poller
type UI struct {
	screen tcell.Screen
	view   *View
	events chan tcell.Event
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
}

// Open initializes the process terminal
func Open() (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return NewUI(screen)
}

// NewUI initializes screen and starts polling its events
func NewUI(screen tcell.Screen) (*UI, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()

	u := &UI{
		screen: screen,
		view:   NewView(screen),
		events: make(chan tcell.Event, parameter.InputChannelSize),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go u.poll()
	return u, nil
}

// poll forwards screen events until the screen is finalized or the UI closed
// A reader that stopped draining Events does not keep it alive past Close
func (u *UI) poll() {
	defer close(u.exited)
	defer close(u.events)
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case u.events <- ev:
		case <-u.done:
			return
		}
	}
}

// Events delivers terminal events; closed after Close
func (u *UI) Events() <-chan tcell.Event { return u.events }

func (u *UI) Screen() tcell.Screen { return u.screen }

func (u *UI) Draw(s Scene) { u.view.Draw(s) }

// Sync redraws the whole screen after a resize
func (u *UI) Sync() { u.screen.Sync() }

// Close stops the poller and restores the terminal; safe to call more than once
func (u *UI) Close() {
	u.once.Do(func() {
		close(u.done)
		u.screen.Fini()
	})
}
