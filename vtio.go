// Package vtio is a VT/ANSI control sequence interpreter: it consumes
// the byte stream a pseudo-terminal child emits and translates it into
// screen manipulation operations.
//
// The root package wires the byte parser, the sequencer and a screen
// together. Embedders that bring their own display surface implement
// screen.Screen and use the sub-packages directly.
package vtio

import (
	"fmt"
	"runtime/debug"

	"github.com/hnimtadd/vtio/logger"
	"github.com/hnimtadd/vtio/terminal/color"
	"github.com/hnimtadd/vtio/terminal/core"
	"github.com/hnimtadd/vtio/terminal/parser"
	"github.com/hnimtadd/vtio/terminal/screen"
	"github.com/hnimtadd/vtio/terminal/sequencer"
)

type Options struct {
	Rows, Cols int

	// Screen receives the interpreted operations. Defaults to the
	// in-memory reference screen.
	Screen screen.Screen

	// Listener receives application-level side effects (bell,
	// clipboard, replies). Only used when Screen is nil.
	Listener screen.EventListener

	// MaxImageSize bounds Sixel images in pixels.
	MaxImageSize screen.Size

	// BackgroundColor fills opaque Sixel backgrounds.
	BackgroundColor color.RGB

	// Modes overrides the power-on mode state. Only used when Screen
	// is nil.
	Modes map[core.Mode]bool

	Logger logger.Logger
}

// VTIO couples one parser and one sequencer. Each instance is an
// independent interpreter; no process-wide state is shared.
type VTIO struct {
	screen    screen.Screen
	sequencer *sequencer.Sequencer
	parser    *parser.Parser
	logger    logger.Logger
}

func New(opts Options) *VTIO {
	if opts.Logger == nil {
		opts.Logger = logger.Discard
	}
	scr := opts.Screen
	if scr == nil {
		scr = screen.NewMemory(screen.MemoryOptions{
			Rows:     opts.Rows,
			Cols:     opts.Cols,
			Listener: opts.Listener,
			Logger:   opts.Logger,
			Modes:    opts.Modes,
		})
	}
	seq := sequencer.New(scr, sequencer.Options{
		MaxImageSize:    opts.MaxImageSize,
		BackgroundColor: opts.BackgroundColor,
		Logger:          opts.Logger,
	})
	return &VTIO{
		screen:    scr,
		sequencer: seq,
		parser:    parser.New(seq),
		logger:    opts.Logger,
	}
}

// Screen returns the driven screen. When constructed without an
// explicit screen this is a *screen.Memory.
func (v *VTIO) Screen() screen.Screen { return v.screen }

// Sequencer exposes the dispatcher, mostly for its instruction
// counter.
func (v *VTIO) Sequencer() *sequencer.Sequencer { return v.sequencer }

// Write feeds child process output through the interpreter. It
// implements io.Writer, always consumes the whole buffer and never
// blocks; partial escape sequences carry over to the next call.
func (v *VTIO) Write(p []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("panic while interpreting output", "recover", r)
			v.logger.Debug(string(debug.Stack()))
			err = fmt.Errorf("panic while interpreting output: %v", r)
		}
	}()
	v.parser.Parse(p)
	return len(p), nil
}

// Reset abandons any in-flight sequence or device control string and
// disables synchronized output. The screen keeps its content.
func (v *VTIO) Reset() {
	v.parser.Reset()
	v.sequencer.Reset()
}

// Snapshot renders the grid as text when the reference screen is in
// use; otherwise it returns the empty string.
func (v *VTIO) Snapshot() string {
	if m, ok := v.screen.(*screen.Memory); ok {
		return m.Snapshot()
	}
	return ""
}
