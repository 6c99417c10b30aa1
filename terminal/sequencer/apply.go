package sequencer

import (
	"github.com/hnimtadd/vtio/terminal/core"
	"github.com/hnimtadd/vtio/terminal/functions"
	"github.com/hnimtadd/vtio/terminal/screen"
	"github.com/hnimtadd/vtio/terminal/sequence"
)

// apply carries out a resolved function. The switch is exhaustive over
// the registry; ApplyInvalid and ApplyUnsupported leave the screen
// untouched.
func (s *Sequencer) apply(def *functions.Definition, seq *sequence.Sequence) ApplyResult {
	result := s.applyFunction(def, seq)
	switch result {
	case ApplyInvalid:
		s.logger.Debug("invalid sequence parameters", "seq", seq.Text())
	case ApplyUnsupported:
		s.logger.Debug("unsupported sequence", "seq", seq.Text())
	}
	return result
}

func (s *Sequencer) applyFunction(def *functions.Definition, seq *sequence.Sequence) ApplyResult {
	scr := s.screen
	switch def.ID {
	// C0
	case functions.BEL:
		scr.EventListener().Bell()
	case functions.BS:
		scr.Backspace()
	case functions.TAB:
		scr.MoveCursorToNextTab()
	case functions.LF:
		scr.Linefeed()
	case functions.VT, functions.FF:
		scr.Index()
	case functions.CR:
		scr.MoveCursorToBeginOfLine()
	case functions.EOT, functions.SO, functions.SI:
		return ApplyUnsupported

	// ESC
	case functions.SCSG0Special:
		scr.DesignateCharset(screen.CharsetTableG0, screen.CharsetSpecial)
	case functions.SCSG0USASCII:
		scr.DesignateCharset(screen.CharsetTableG0, screen.CharsetUSASCII)
	case functions.SCSG1Special:
		scr.DesignateCharset(screen.CharsetTableG1, screen.CharsetSpecial)
	case functions.SCSG1USASCII:
		scr.DesignateCharset(screen.CharsetTableG1, screen.CharsetUSASCII)
	case functions.DECALN:
		scr.ScreenAlignmentPattern()
	case functions.DECBI:
		scr.BackIndex()
	case functions.DECFI:
		scr.ForwardIndex()
	case functions.DECKPAM:
		scr.ApplicationKeypadMode(true)
	case functions.DECKPNM:
		scr.ApplicationKeypadMode(false)
	case functions.DECRS:
		scr.RestoreCursor()
	case functions.DECSC:
		scr.SaveCursor()
	case functions.HTS:
		scr.HorizontalTabSet()
	case functions.IND:
		scr.Index()
	case functions.NEL:
		scr.MoveCursorToNextLine(1)
	case functions.RI:
		scr.ReverseIndex()
	case functions.RIS:
		scr.ResetHard()
	case functions.SS2:
		scr.SingleShiftSelect(screen.CharsetTableG2)
	case functions.SS3:
		scr.SingleShiftSelect(screen.CharsetTableG3)

	// CSI
	case functions.ANSISYSSC:
		scr.RestoreCursor()
	case functions.CBT:
		scr.CursorBackwardTab(int(seq.ParamOr(0, 1)))
	case functions.CHA:
		scr.MoveCursorToColumn(int(seq.ParamOr(0, 1)))
	case functions.CHT:
		scr.CursorForwardTab(int(seq.ParamOr(0, 1)))
	case functions.CNL:
		scr.MoveCursorToNextLine(int(seq.ParamOr(0, 1)))
	case functions.CPL:
		scr.MoveCursorToPrevLine(int(seq.ParamOr(0, 1)))
	case functions.CPR:
		return s.applyCPR(seq)
	case functions.CUB:
		scr.MoveCursorBackward(int(seq.ParamOr(0, 1)))
	case functions.CUD:
		scr.MoveCursorDown(int(seq.ParamOr(0, 1)))
	case functions.CUF:
		scr.MoveCursorForward(int(seq.ParamOr(0, 1)))
	case functions.CUP, functions.HVP:
		scr.MoveCursorTo(screen.Coordinate{
			Row: int(seq.ParamOr(0, 1)),
			Col: int(seq.ParamOr(1, 1)),
		})
	case functions.CUU:
		scr.MoveCursorUp(int(seq.ParamOr(0, 1)))
	case functions.DA1:
		scr.SendDeviceAttributes()
	case functions.DA2:
		scr.SendTerminalID()
	case functions.DA3:
		return ApplyUnsupported
	case functions.DCH:
		scr.DeleteCharacters(int(seq.ParamOr(0, 1)))
	case functions.DECDC:
		scr.DeleteColumns(int(seq.ParamOr(0, 1)))
	case functions.DECIC:
		scr.InsertColumns(int(seq.ParamOr(0, 1)))
	case functions.DECMODERESTORE:
		return s.restoreDECModes(seq)
	case functions.DECMODESAVE:
		return s.saveDECModes(seq)
	case functions.DECRM:
		for i := 0; i < seq.ParameterCount(); i++ {
			s.setModeDEC(seq, i, false)
		}
	case functions.DECRQM:
		return requestModeDEC(seq.ParamAt(0))
	case functions.DECRQMANSI:
		return requestModeANSI(seq.ParamAt(0))
	case functions.DECRQPSR:
		return s.applyDECRQPSR(seq)
	case functions.DECSCL:
		return ApplyUnsupported
	case functions.DECSCPP:
		if columns := int(seq.ParamOr(0, 80)); columns == 80 || columns == 132 {
			scr.ResizeColumns(columns, false)
			return ApplyOk
		}
		return ApplyInvalid
	case functions.DECSCUSR:
		return s.applyDECSCUSR(seq)
	case functions.DECSLRM:
		scr.SetLeftRightMargin(int(seq.ParamOr(0, 0)), int(seq.ParamOr(1, 0)))
	case functions.DECSM:
		for i := 0; i < seq.ParameterCount(); i++ {
			s.setModeDEC(seq, i, true)
		}
	case functions.DECSTBM:
		scr.SetTopBottomMargin(int(seq.ParamOr(0, 0)), int(seq.ParamOr(1, 0)))
	case functions.DECSTR:
		scr.ResetSoft()
	case functions.DECXCPR:
		scr.ReportExtendedCursorPosition()
	case functions.DL:
		scr.DeleteLines(int(seq.ParamOr(0, 1)))
	case functions.ECH:
		scr.EraseCharacters(int(seq.ParamOr(0, 1)))
	case functions.ED:
		return s.applyED(seq)
	case functions.EL:
		return s.applyEL(seq)
	case functions.HPA:
		scr.MoveCursorToColumn(int(seq.ParamOr(0, 1)))
	case functions.HPR:
		scr.MoveCursorForward(int(seq.ParamOr(0, 1)))
	case functions.ICH:
		scr.InsertCharacters(int(seq.ParamOr(0, 1)))
	case functions.IL:
		scr.InsertLines(int(seq.ParamOr(0, 1)))
	case functions.RM:
		for i := 0; i < seq.ParameterCount(); i++ {
			s.setModeANSI(seq, i, false)
		}
	case functions.SCOSC:
		scr.SaveCursor()
	case functions.SD:
		scr.ScrollDown(int(seq.ParamOr(0, 1)))
	case functions.SETMARK:
		scr.SetMark()
	case functions.SGR:
		return s.dispatchSGR(seq)
	case functions.SM:
		for i := 0; i < seq.ParameterCount(); i++ {
			s.setModeANSI(seq, i, true)
		}
	case functions.SU:
		scr.ScrollUp(int(seq.ParamOr(0, 1)))
	case functions.TBC:
		return s.applyTBC(seq)
	case functions.VPA:
		scr.MoveCursorToLine(int(seq.ParamOr(0, 1)))
	case functions.WINMANIP:
		return s.applyWindowManip(seq)
	case functions.XTSMGRAPHICS:
		return s.applyXTSMGraphics(seq)

	// DCS functions never reach apply; they take effect at hook time.
	case functions.DECRQSS, functions.DECSIXEL,
		functions.IMGUPLOAD, functions.IMGRENDER,
		functions.IMGRELEASE, functions.IMGONESHOT:
		return ApplyUnsupported

	// OSC
	case functions.SETTITLE, functions.SETWINTITLE:
		scr.SetWindowTitle(string(seq.Intermediates()))
	case functions.SETICON, functions.SETXPROP, functions.COLORSPECIAL:
		return ApplyUnsupported
	case functions.HYPERLINK:
		return s.applyHyperlink(seq)
	case functions.COLORFG:
		return s.setOrRequestDynamicColor(seq, screen.DynamicColorDefaultForeground)
	case functions.COLORBG:
		return s.setOrRequestDynamicColor(seq, screen.DynamicColorDefaultBackground)
	case functions.COLORCURSOR:
		return s.setOrRequestDynamicColor(seq, screen.DynamicColorTextCursor)
	case functions.COLORMOUSEFG:
		return s.setOrRequestDynamicColor(seq, screen.DynamicColorMouseForeground)
	case functions.COLORMOUSEBG:
		return s.setOrRequestDynamicColor(seq, screen.DynamicColorMouseBackground)
	case functions.COLORHIGHLIGHTBG:
		return s.setOrRequestDynamicColor(seq, screen.DynamicColorHighlightBackground)
	case functions.COLORHIGHLIGHTFG:
		return s.setOrRequestDynamicColor(seq, screen.DynamicColorHighlightForeground)
	case functions.CLIPBOARD:
		return s.applyClipboard(seq)
	case functions.RCOLORFG:
		scr.ResetDynamicColor(screen.DynamicColorDefaultForeground)
	case functions.RCOLORBG:
		scr.ResetDynamicColor(screen.DynamicColorDefaultBackground)
	case functions.RCOLORCURSOR:
		scr.ResetDynamicColor(screen.DynamicColorTextCursor)
	case functions.RCOLORMOUSEFG:
		scr.ResetDynamicColor(screen.DynamicColorMouseForeground)
	case functions.RCOLORMOUSEBG:
		scr.ResetDynamicColor(screen.DynamicColorMouseBackground)
	case functions.RCOLORHIGHLIGHTFG:
		scr.ResetDynamicColor(screen.DynamicColorHighlightForeground)
	case functions.RCOLORHIGHLIGHTBG:
		scr.ResetDynamicColor(screen.DynamicColorHighlightBackground)
	case functions.NOTIFY:
		return s.applyNotify(seq)
	case functions.DUMPSTATE:
		scr.DumpState()

	default:
		return ApplyUnsupported
	}
	return ApplyOk
}

// setModeDEC enables or disables one DEC private mode by its parameter
// index. The private-color-register mode is tracked locally as well
// since it gates Sixel palette construction.
func (s *Sequencer) setModeDEC(seq *sequence.Sequence, index int, enable bool) ApplyResult {
	mode, ok := core.DECMode(seq.ParamAt(index))
	if !ok {
		s.logger.Debug("unknown DEC mode", "mode", seq.ParamAt(index))
		return ApplyInvalid
	}
	if mode == core.ModeUsePrivateColorRegisters {
		s.usePrivateColorRegisters = enable
	}
	s.screen.SetMode(mode, enable)
	return ApplyOk
}

func (s *Sequencer) setModeANSI(seq *sequence.Sequence, index int, enable bool) ApplyResult {
	switch seq.ParamAt(index) {
	case 4: // IRM, insert mode
		s.screen.SetMode(core.ModeInsert, enable)
		return ApplyOk
	case 2, 12, 20: // KAM, SRM, LNM
		return ApplyUnsupported
	default:
		return ApplyUnsupported
	}
}

// requestModeDEC recognizes the DECRQM mode set without implementing
// the report.
func requestModeDEC(mode uint16) ApplyResult {
	switch mode {
	case 1, 2, 3, 4, 5, 6, 7, 8, 18, 19, 25, 34, 35, 36, 42, 57,
		60, 61, 64, 66, 67, 68, 69, 73, 81, 95, 96, 97, 98, 99,
		100, 101, 102, 103, 104, 106, 2026:
		return ApplyUnsupported
	default:
		return ApplyInvalid
	}
}

func requestModeANSI(mode uint16) ApplyResult {
	switch mode {
	case 1, 2, 3, 4, 5, 7, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20:
		return ApplyUnsupported
	default:
		return ApplyInvalid
	}
}

func (s *Sequencer) applyCPR(seq *sequence.Sequence) ApplyResult {
	switch seq.ParamAt(0) {
	case 5:
		s.screen.DeviceStatusReport()
	case 6:
		s.screen.ReportCursorPosition()
	default:
		return ApplyUnsupported
	}
	return ApplyOk
}

func (s *Sequencer) applyDECRQPSR(seq *sequence.Sequence) ApplyResult {
	if seq.ParameterCount() != 1 {
		return ApplyInvalid
	}
	switch seq.ParamAt(0) {
	case 1: // DECCIR, cursor information report
		return ApplyInvalid
	case 2:
		s.screen.RequestTabStops()
		return ApplyOk
	default:
		return ApplyInvalid
	}
}

func (s *Sequencer) applyDECSCUSR(seq *sequence.Sequence) ApplyResult {
	if seq.ParameterCount() > 1 {
		return ApplyInvalid
	}
	switch seq.ParamOr(0, 1) {
	case 0, 1:
		s.screen.SetCursorStyle(screen.CursorDisplayBlink, screen.CursorShapeBlock)
	case 2:
		s.screen.SetCursorStyle(screen.CursorDisplaySteady, screen.CursorShapeBlock)
	case 3:
		s.screen.SetCursorStyle(screen.CursorDisplayBlink, screen.CursorShapeUnderscore)
	case 4:
		s.screen.SetCursorStyle(screen.CursorDisplaySteady, screen.CursorShapeUnderscore)
	case 5:
		s.screen.SetCursorStyle(screen.CursorDisplayBlink, screen.CursorShapeBar)
	case 6:
		s.screen.SetCursorStyle(screen.CursorDisplaySteady, screen.CursorShapeBar)
	default:
		return ApplyInvalid
	}
	return ApplyOk
}

func (s *Sequencer) applyED(seq *sequence.Sequence) ApplyResult {
	if seq.ParameterCount() == 0 {
		s.screen.ClearToEndOfScreen()
		return ApplyOk
	}
	for i := 0; i < seq.ParameterCount(); i++ {
		switch seq.ParamAt(i) {
		case 0:
			s.screen.ClearToEndOfScreen()
		case 1:
			s.screen.ClearToBeginOfScreen()
		case 2:
			s.screen.ClearScreen()
		case 3:
			s.screen.ClearScrollbackBuffer()
		}
	}
	return ApplyOk
}

func (s *Sequencer) applyEL(seq *sequence.Sequence) ApplyResult {
	switch seq.ParamOr(0, 0) {
	case 0:
		s.screen.ClearToEndOfLine()
	case 1:
		s.screen.ClearToBeginOfLine()
	case 2:
		s.screen.ClearLine()
	default:
		return ApplyInvalid
	}
	return ApplyOk
}

func (s *Sequencer) applyTBC(seq *sequence.Sequence) ApplyResult {
	if seq.ParameterCount() != 1 {
		s.screen.HorizontalTabClear(screen.TabClearAllTabs)
		return ApplyOk
	}
	switch seq.ParamAt(0) {
	case 0:
		s.screen.HorizontalTabClear(screen.TabClearUnderCursor)
	case 3:
		s.screen.HorizontalTabClear(screen.TabClearAllTabs)
	default:
		return ApplyInvalid
	}
	return ApplyOk
}

func (s *Sequencer) saveDECModes(seq *sequence.Sequence) ApplyResult {
	modes := make([]core.Mode, 0, seq.ParameterCount())
	for i := 0; i < seq.ParameterCount(); i++ {
		if mode, ok := core.DECMode(seq.ParamAt(i)); ok {
			modes = append(modes, mode)
		}
	}
	s.screen.SaveModes(modes)
	return ApplyOk
}

func (s *Sequencer) restoreDECModes(seq *sequence.Sequence) ApplyResult {
	modes := make([]core.Mode, 0, seq.ParameterCount())
	for i := 0; i < seq.ParameterCount(); i++ {
		if mode, ok := core.DECMode(seq.ParamAt(i)); ok {
			modes = append(modes, mode)
		}
	}
	s.screen.RestoreModes(modes)
	return ApplyOk
}

func (s *Sequencer) applyWindowManip(seq *sequence.Sequence) ApplyResult {
	switch seq.ParameterCount() {
	case 3:
		switch seq.ParamAt(0) {
		case 4:
			s.screen.EventListener().ResizeWindow(int(seq.ParamAt(2)), int(seq.ParamAt(1)), true)
		case 8:
			s.screen.EventListener().ResizeWindow(int(seq.ParamAt(2)), int(seq.ParamAt(1)), false)
		case 22:
			s.screen.SaveWindowTitle()
		case 23:
			s.screen.RestoreWindowTitle()
		default:
			return ApplyUnsupported
		}
		return ApplyOk
	case 1:
		switch seq.ParamAt(0) {
		case 4:
			// Zero extents request the full display size.
			s.screen.EventListener().ResizeWindow(0, 0, true)
		case 8:
			s.screen.EventListener().ResizeWindow(0, 0, false)
		case 14:
			s.screen.RequestPixelSize(screen.PixelSizeTextArea)
		default:
			return ApplyUnsupported
		}
		return ApplyOk
	default:
		return ApplyUnsupported
	}
}

func (s *Sequencer) applyXTSMGraphics(seq *sequence.Sequence) ApplyResult {
	pi := seq.ParamAt(0)
	pa := seq.ParamAt(1)
	pv := int(seq.ParamOr(2, 0))
	pu := int(seq.ParamOr(3, 0))

	var item screen.GraphicsItem
	switch pi {
	case 1:
		item = screen.GraphicsItemColorRegisters
	case 2:
		item = screen.GraphicsItemSixelGeometry
	case 3:
		item = screen.GraphicsItemReGISGeometry
	default:
		return ApplyInvalid
	}

	var action screen.GraphicsAction
	switch pa {
	case 1:
		action = screen.GraphicsActionRead
	case 2:
		action = screen.GraphicsActionResetToDefault
	case 3:
		action = screen.GraphicsActionSetToValue
	case 4:
		action = screen.GraphicsActionReadLimit
	default:
		return ApplyInvalid
	}

	var value screen.GraphicsValue
	if action == screen.GraphicsActionSetToValue {
		if item == screen.GraphicsItemColorRegisters {
			value = screen.GraphicsValue{Number: pv, HasNum: true}
		} else {
			value = screen.GraphicsValue{Size: screen.Size{Width: pv, Height: pu}, HasSz: true}
		}
	}

	s.screen.SMGraphics(item, action, value)
	return ApplyOk
}
