// Package sequencer is the semantic layer of the interpreter. It
// consumes byte parser events, forms complete sequences, resolves them
// against the function table and applies the effects to the Screen.
package sequencer

import (
	"fmt"

	"github.com/hnimtadd/vtio/logger"
	"github.com/hnimtadd/vtio/terminal/ansi"
	"github.com/hnimtadd/vtio/terminal/color"
	"github.com/hnimtadd/vtio/terminal/functions"
	"github.com/hnimtadd/vtio/terminal/screen"
	"github.com/hnimtadd/vtio/terminal/sequence"
	"github.com/hnimtadd/vtio/terminal/sixel"
)

// ApplyResult reports how a recognized function was handled.
type ApplyResult uint8

const (
	// ApplyOk means the function took effect.
	ApplyOk ApplyResult = iota
	// ApplyInvalid means the function received out-of-range or missing
	// parameters; no screen mutation happened.
	ApplyInvalid
	// ApplyUnsupported marks functions whose effect is deliberately
	// unimplemented; no mutation, nothing surfaced to the user.
	ApplyUnsupported
)

// extension is an embedded parser activated by a DCS hook. It receives
// the data string codepoint-wise and finalizes on unhook.
type extension interface {
	Start()
	Pass(cp rune)
	Finalize()
}

type batchKind uint8

const (
	batchChar batchKind = iota
	batchSeq
	batchImage
)

// batchItem is one deferred unit of work while synchronized output
// (mode 2026) is active.
type batchItem struct {
	kind batchKind
	char rune
	seq  *sequence.Sequence
	size screen.Size
	rgba []byte
}

// batchQueueSoftLimit bounds the synchronized output queue. Exceeding
// it forces a flush without leaving batching mode.
const batchQueueSoftLimit = 8192

type Options struct {
	// MaxImageSize bounds Sixel images, in pixels.
	MaxImageSize screen.Size
	// MaxImageRegisters is stored on the Sequencer; it does not limit
	// anything, and private Sixel palettes always hold 256 registers.
	MaxImageRegisters int
	// BackgroundColor fills non-transparent Sixel backgrounds.
	BackgroundColor color.RGB
	// Palette shared with Sixel image builders unless private color
	// registers are enabled.
	Palette *color.Palette
	Logger  logger.Logger
}

// Sequencer owns the in-flight sequence, the batching queue and the
// active DCS extension. It is not safe for concurrent use; the whole
// interpreter is single-threaded by design.
type Sequencer struct {
	seq    *sequence.Sequence
	screen screen.Screen
	logger logger.Logger

	batching bool
	batch    []batchItem

	instructionCounter int64

	hooked       extension
	sixelBuilder *sixel.Builder

	imagePalette             *color.Palette
	usePrivateColorRegisters bool
	maxImageSize             screen.Size
	maxImageRegisters        int
	backgroundColor          color.RGB

	seenUnknownC0 map[byte]bool
}

func New(scr screen.Screen, opts Options) *Sequencer {
	if opts.Logger == nil {
		opts.Logger = logger.Discard
	}
	if opts.Palette == nil {
		opts.Palette = color.NewPalette()
	}
	if opts.MaxImageSize == (screen.Size{}) {
		opts.MaxImageSize = screen.Size{Width: 800, Height: 600}
	}
	if opts.MaxImageRegisters == 0 {
		opts.MaxImageRegisters = 256
	}
	return &Sequencer{
		seq:               sequence.New(),
		screen:            scr,
		logger:            opts.Logger,
		imagePalette:      opts.Palette,
		maxImageSize:      opts.MaxImageSize,
		maxImageRegisters: opts.MaxImageRegisters,
		backgroundColor:   opts.BackgroundColor,
		seenUnknownC0:     make(map[byte]bool),
	}
}

// InstructionCounter counts applied printable characters and dispatched
// sequences.
func (s *Sequencer) InstructionCounter() int64 { return s.instructionCounter }

func (s *Sequencer) ResetInstructionCounter() { s.instructionCounter = 0 }

// Batching reports whether synchronized output is active.
func (s *Sequencer) Batching() bool { return s.batching }

// SetUsePrivateColorRegisters toggles per-image Sixel palettes.
func (s *Sequencer) SetUsePrivateColorRegisters(v bool) { s.usePrivateColorRegisters = v }

// SetMaxImageSize adjusts the Sixel image bound.
func (s *Sequencer) SetMaxImageSize(size screen.Size) { s.maxImageSize = size }

// Reset discards the in-flight sequence and any hooked extension and
// leaves batching disabled. The only way to abandon a partially built
// sequence between writes.
func (s *Sequencer) Reset() {
	s.seq.Clear()
	s.hooked = nil
	s.sixelBuilder = nil
	s.batching = false
	s.batch = s.batch[:0]
}

// Error implements parser.Events.
func (s *Sequencer) Error(msg string) {
	s.logger.Warn("parser error", "err", msg)
}

// Print implements parser.Events.
func (s *Sequencer) Print(cp rune) {
	if s.batching {
		s.enqueue(batchItem{kind: batchChar, char: cp})
		return
	}
	s.instructionCounter++
	s.screen.WriteText(cp)
}

// Execute implements parser.Events.
func (s *Sequencer) Execute(b byte) {
	s.executeControlFunction(b)
}

// Clear implements parser.Events.
func (s *Sequencer) Clear() {
	s.seq.Clear()
}

// Collect implements parser.Events.
func (s *Sequencer) Collect(b byte) {
	s.seq.Collect(b)
}

// CollectLeader implements parser.Events.
func (s *Sequencer) CollectLeader(b byte) {
	s.seq.SetLeader(b)
}

// Param implements parser.Events.
func (s *Sequencer) Param(b byte) {
	s.seq.Param(b)
}

// DispatchESC implements parser.Events.
func (s *Sequencer) DispatchESC(final byte) {
	s.seq.SetCategory(functions.CategoryESC)
	s.seq.SetFinal(final)
	s.handleSequence()
}

// DispatchCSI implements parser.Events.
func (s *Sequencer) DispatchCSI(final byte) {
	s.seq.SetCategory(functions.CategoryCSI)
	s.seq.SetFinal(final)
	s.handleSequence()
}

// StartOSC implements parser.Events.
func (s *Sequencer) StartOSC() {
	s.seq.Clear()
	s.seq.SetCategory(functions.CategoryOSC)
}

// PutOSC implements parser.Events.
func (s *Sequencer) PutOSC(cp rune) {
	s.seq.PutOSC(cp)
}

// Put implements parser.Events.
func (s *Sequencer) Put(cp rune) {
	if s.hooked != nil {
		s.hooked.Pass(cp)
	}
}

// Unhook implements parser.Events.
func (s *Sequencer) Unhook() {
	if s.hooked != nil {
		s.hooked.Finalize()
		s.hooked = nil
	}
}

func (s *Sequencer) executeControlFunction(c0 byte) {
	if s.batching {
		// Route through the dispatch path so batchable controls queue
		// in order with everything else.
		s.seq.Clear()
		s.seq.SetCategory(functions.CategoryC0)
		s.seq.SetFinal(c0)
		s.handleSequence()
		return
	}

	s.instructionCounter++
	switch c0 {
	case ansi.C0.BEL:
		s.screen.EventListener().Bell()
	case ansi.C0.BS:
		s.screen.Backspace()
	case ansi.C0.HT:
		s.screen.MoveCursorToNextTab()
	case ansi.C0.LF:
		s.screen.Linefeed()
	case ansi.C0.VT, ansi.C0.FF:
		// xterm performs an IND for both, so do we.
		s.screen.Index()
	case ansi.C0.CR:
		s.screen.MoveCursorToBeginOfLine()
	case 0x37:
		s.screen.SaveCursor()
	case 0x38:
		s.screen.RestoreCursor()
	default:
		if !s.seenUnknownC0[c0] {
			s.seenUnknownC0[c0] = true
			s.logger.Info("unsupported control code", "code", fmt.Sprintf("0x%02X", c0))
		}
	}
}

func (s *Sequencer) handleSequence() {
	s.instructionCounter++

	def := s.seq.Definition()
	if def == nil {
		s.logger.Info("unknown VT sequence", "seq", s.seq.Text())
		return
	}

	switch {
	case def.ID == functions.DECSM && s.seq.ContainsParameter(2026):
		// Enable batching before applying so the mode change itself is
		// visible to the screen immediately.
		s.batching = true
		s.apply(def, s.seq)
	case def.ID == functions.DECRM && s.seq.ContainsParameter(2026):
		s.flushBatch()
		s.batching = false
		s.apply(def, s.seq)
	case s.batching && def.Batchable:
		s.enqueue(batchItem{kind: batchSeq, seq: s.seq.Clone()})
	default:
		s.apply(def, s.seq)
	}
}

func (s *Sequencer) enqueue(item batchItem) {
	s.batch = append(s.batch, item)
	if len(s.batch) >= batchQueueSoftLimit {
		s.logger.Warn("synchronized output queue full, forcing flush", "items", len(s.batch))
		s.flushBatch()
	}
}

// flushBatch drains the queue in FIFO order, applying each item exactly
// once through the non-batching path. Batching is still enabled while
// it runs, both on DECRM(2026) and on a forced flush.
func (s *Sequencer) flushBatch() {
	for i := range s.batch {
		item := &s.batch[i]
		switch item.kind {
		case batchChar:
			s.instructionCounter++
			s.screen.WriteText(item.char)
		case batchSeq:
			if def := item.seq.Definition(); def != nil {
				s.apply(def, item.seq)
			}
		case batchImage:
			s.screen.SixelImage(item.size, item.rgba)
		}
	}
	s.batch = s.batch[:0]
}
