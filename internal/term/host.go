package term

import (
	"context"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textengine/internal/config"
	"github.com/dshills/textengine/internal/engine"
	"github.com/dshills/textengine/internal/input/key"
	"github.com/dshills/textengine/internal/logging"
)

// DefaultTickInterval is how often timers are advanced.
const DefaultTickInterval = 100 * time.Millisecond

var quitKey = key.NewRuneEvent('q', key.ModCtrl)

// stop is posted when the run context ends.
type stop struct{}

// Host runs an editor on a tcell screen.
type Host struct {
	screen tcell.Screen
	editor *engine.Editor
	logger *logging.Logger
	now    func() time.Time
	tick   time.Duration

	// top and left are the first visible line and column.
	top, left int
	// follow keeps the cursor in view; wheel scrolling clears it.
	follow bool

	clicks  clickCounter
	pressed engine.Button

	pasting bool
	paste   strings.Builder

	shortcuts map[key.Event]func(*engine.Editor)
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithTickInterval sets how often timers are advanced.
func WithTickInterval(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.tick = d
		}
	}
}

// WithClock sets the time source used for click counting.
func WithClock(now func() time.Time) Option {
	return func(h *Host) {
		if now != nil {
			h.now = now
		}
	}
}

// WithShortcut runs fn when ev is pressed, ahead of the editor's key
// bindings.
func WithShortcut(ev key.Event, fn func(*engine.Editor)) Option {
	return func(h *Host) {
		if h.shortcuts == nil {
			h.shortcuts = make(map[key.Event]func(*engine.Editor))
		}
		h.shortcuts[ev.Normalize()] = fn
	}
}

// NewHost creates a host for e drawing on screen.
func NewHost(screen tcell.Screen, e *engine.Editor, opts ...Option) *Host {
	h := &Host{
		screen: screen,
		editor: e,
		logger: logging.Nop(),
		now:    time.Now,
		tick:   DefaultTickInterval,
		follow: true,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.WithComponent("term")
	return h
}

// NewTerminalHost creates a host on the process terminal.
func NewTerminalHost(e *engine.Editor, opts ...Option) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewHost(screen, e, opts...), nil
}

// Init initializes the screen and enables mouse and bracketed paste.
func (h *Host) Init() error {
	if err := h.screen.Init(); err != nil {
		return err
	}
	h.screen.EnableMouse()
	h.screen.EnablePaste()
	h.resize()
	return nil
}

// Fini restores the terminal.
func (h *Host) Fini() {
	h.screen.Fini()
}

// Editor returns the hosted editor.
func (h *Host) Editor() *engine.Editor {
	return h.editor
}

// Do runs fn on the event loop goroutine.
func (h *Host) Do(fn func(*engine.Editor)) error {
	return h.screen.PostEvent(tcell.NewEventInterrupt(fn))
}

// Reload applies cfg on the event loop goroutine. The page size keeps
// following the screen.
func (h *Host) Reload(cfg *config.Config) error {
	return h.Do(func(e *engine.Editor) {
		if err := cfg.Apply(e); err != nil {
			h.logger.Warn("config not applied: %v", err)
			return
		}
		h.resize()
		h.logger.Info("config applied")
	})
}

// Run processes events until Ctrl+Q is pressed or ctx is done. Init must
// have been called.
func (h *Host) Run(ctx context.Context) error {
	tickCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go h.tickLoop(tickCtx, ctx)

	h.draw()
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return ctx.Err()
		}
		redraw, quit := h.handleEvent(ev)
		if quit {
			return ctx.Err()
		}
		if redraw {
			h.draw()
		}
	}
}

// tickLoop posts the current time so the loop can advance timers. When
// the caller's context ends it posts stop to wake the loop.
func (h *Host) tickLoop(ctx, parent context.Context) {
	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if parent.Err() != nil {
				_ = h.screen.PostEvent(tcell.NewEventInterrupt(stop{}))
			}
			return
		case now := <-ticker.C:
			// Dropped ticks are harmless; the next one catches up.
			_ = h.screen.PostEvent(tcell.NewEventInterrupt(now))
		}
	}
}

// handleEvent applies ev and reports whether to redraw and whether to quit.
func (h *Host) handleEvent(ev tcell.Event) (redraw, quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)

	case *tcell.EventPaste:
		if ev.Start() {
			h.pasting = true
			h.paste.Reset()
			return false, false
		}
		h.pasting = false
		if h.paste.Len() > 0 {
			h.editor.InsertText(h.paste.String())
			h.follow = true
		}
		return true, false

	case *tcell.EventMouse:
		return h.handleMouse(ev), false

	case *tcell.EventResize:
		h.screen.Sync()
		h.resize()
		return true, false

	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case time.Time:
			return h.editor.Tick(data), false
		case func(*engine.Editor):
			data(h.editor)
			h.follow = true
			return true, false
		case stop:
			return false, true
		}
	}
	return false, false
}

func (h *Host) handleKey(ev *tcell.EventKey) (redraw, quit bool) {
	if h.pasting {
		switch ev.Key() {
		case tcell.KeyRune:
			h.paste.WriteRune(ev.Rune())
		case tcell.KeyEnter:
			h.paste.WriteByte('\n')
		case tcell.KeyTab:
			h.paste.WriteByte('\t')
		}
		return false, false
	}

	kev, ok := translateKey(ev)
	if !ok {
		return false, false
	}
	if kev.Normalize() == quitKey.Normalize() {
		return false, true
	}
	if fn, ok := h.shortcuts[kev.Normalize()]; ok {
		fn(h.editor)
		return true, false
	}
	if !h.editor.HandleKey(kev) {
		h.logger.Debug("key %s not handled", kev)
		return false, false
	}
	h.follow = true
	return true, false
}

// resize updates the page size for the visible text rows.
func (h *Host) resize() {
	h.editor.SetPageRows(h.textRows())
}

func (h *Host) scroll(lines int) {
	h.follow = false
	h.top += lines
	if last := h.editor.LineCount() - 1; h.top > last {
		h.top = last
	}
	if h.top < 0 {
		h.top = 0
	}
}
