package sequencer

import (
	"fmt"

	"github.com/hnimtadd/vtio/terminal/color"
	"github.com/hnimtadd/vtio/terminal/core"
	"github.com/hnimtadd/vtio/terminal/screen"
)

// recordingListener captures application side effects.
type recordingListener struct {
	calls []string
}

func (l *recordingListener) rec(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *recordingListener) Bell()                       { l.rec("bell") }
func (l *recordingListener) CopyToClipboard(data []byte) { l.rec("copyToClipboard(%s)", data) }
func (l *recordingListener) ResizeWindow(w, h int, px bool) {
	l.rec("resizeWindow(%d,%d,%v)", w, h, px)
}
func (l *recordingListener) Reply(data []byte) { l.rec("reply(%q)", data) }

// recordingScreen captures every Screen operation in call order.
type recordingScreen struct {
	listener recordingListener
	calls    []string
}

func (r *recordingScreen) rec(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingScreen) EventListener() screen.EventListener { return &r.listener }

func (r *recordingScreen) WriteText(cp rune)        { r.rec("writeText(%c)", cp) }
func (r *recordingScreen) Backspace()               { r.rec("backspace") }
func (r *recordingScreen) MoveCursorToNextTab()     { r.rec("moveCursorToNextTab") }
func (r *recordingScreen) Linefeed()                { r.rec("linefeed") }
func (r *recordingScreen) Index()                   { r.rec("index") }
func (r *recordingScreen) ReverseIndex()            { r.rec("reverseIndex") }
func (r *recordingScreen) BackIndex()               { r.rec("backIndex") }
func (r *recordingScreen) ForwardIndex()            { r.rec("forwardIndex") }
func (r *recordingScreen) MoveCursorToBeginOfLine() { r.rec("moveCursorToBeginOfLine") }
func (r *recordingScreen) SaveCursor()              { r.rec("saveCursor") }
func (r *recordingScreen) RestoreCursor()           { r.rec("restoreCursor") }

func (r *recordingScreen) MoveCursorUp(n int)       { r.rec("moveCursorUp(%d)", n) }
func (r *recordingScreen) MoveCursorDown(n int)     { r.rec("moveCursorDown(%d)", n) }
func (r *recordingScreen) MoveCursorForward(n int)  { r.rec("moveCursorForward(%d)", n) }
func (r *recordingScreen) MoveCursorBackward(n int) { r.rec("moveCursorBackward(%d)", n) }
func (r *recordingScreen) MoveCursorTo(pos screen.Coordinate) {
	r.rec("moveCursorTo(%d,%d)", pos.Row, pos.Col)
}
func (r *recordingScreen) MoveCursorToColumn(col int)  { r.rec("moveCursorToColumn(%d)", col) }
func (r *recordingScreen) MoveCursorToLine(line int)   { r.rec("moveCursorToLine(%d)", line) }
func (r *recordingScreen) MoveCursorToNextLine(n int)  { r.rec("moveCursorToNextLine(%d)", n) }
func (r *recordingScreen) MoveCursorToPrevLine(n int)  { r.rec("moveCursorToPrevLine(%d)", n) }
func (r *recordingScreen) CursorForwardTab(n int)      { r.rec("cursorForwardTab(%d)", n) }
func (r *recordingScreen) CursorBackwardTab(n int)     { r.rec("cursorBackwardTab(%d)", n) }

func (r *recordingScreen) InsertCharacters(n int) { r.rec("insertCharacters(%d)", n) }
func (r *recordingScreen) DeleteCharacters(n int) { r.rec("deleteCharacters(%d)", n) }
func (r *recordingScreen) EraseCharacters(n int)  { r.rec("eraseCharacters(%d)", n) }
func (r *recordingScreen) InsertLines(n int)      { r.rec("insertLines(%d)", n) }
func (r *recordingScreen) DeleteLines(n int)      { r.rec("deleteLines(%d)", n) }
func (r *recordingScreen) InsertColumns(n int)    { r.rec("insertColumns(%d)", n) }
func (r *recordingScreen) DeleteColumns(n int)    { r.rec("deleteColumns(%d)", n) }

func (r *recordingScreen) ClearToEndOfLine()      { r.rec("clearToEndOfLine") }
func (r *recordingScreen) ClearToBeginOfLine()    { r.rec("clearToBeginOfLine") }
func (r *recordingScreen) ClearLine()             { r.rec("clearLine") }
func (r *recordingScreen) ClearToEndOfScreen()    { r.rec("clearToEndOfScreen") }
func (r *recordingScreen) ClearToBeginOfScreen()  { r.rec("clearToBeginOfScreen") }
func (r *recordingScreen) ClearScreen()           { r.rec("clearScreen") }
func (r *recordingScreen) ClearScrollbackBuffer() { r.rec("clearScrollbackBuffer") }
func (r *recordingScreen) ScreenAlignmentPattern() {
	r.rec("screenAlignmentPattern")
}

func (r *recordingScreen) ScrollUp(n int)   { r.rec("scrollUp(%d)", n) }
func (r *recordingScreen) ScrollDown(n int) { r.rec("scrollDown(%d)", n) }
func (r *recordingScreen) SetTopBottomMargin(top, bottom int) {
	r.rec("setTopBottomMargin(%d,%d)", top, bottom)
}
func (r *recordingScreen) SetLeftRightMargin(left, right int) {
	r.rec("setLeftRightMargin(%d,%d)", left, right)
}
func (r *recordingScreen) ResizeColumns(columns int, clear bool) {
	r.rec("resizeColumns(%d,%v)", columns, clear)
}

func (r *recordingScreen) SetMode(mode core.Mode, enable bool) {
	r.rec("setMode(%s,%v)", mode, enable)
}
func (r *recordingScreen) SaveModes(modes []core.Mode)    { r.rec("saveModes(%d)", len(modes)) }
func (r *recordingScreen) RestoreModes(modes []core.Mode) { r.rec("restoreModes(%d)", len(modes)) }
func (r *recordingScreen) SetGraphicsRendition(rendition screen.GraphicsRendition) {
	r.rec("setGraphicsRendition(%d)", rendition)
}
func (r *recordingScreen) SetForegroundColor(c color.Color) { r.rec("setForegroundColor(%s)", c) }
func (r *recordingScreen) SetBackgroundColor(c color.Color) { r.rec("setBackgroundColor(%s)", c) }
func (r *recordingScreen) SetUnderlineColor(c color.Color)  { r.rec("setUnderlineColor(%s)", c) }
func (r *recordingScreen) SetCursorStyle(display screen.CursorDisplay, shape screen.CursorShape) {
	r.rec("setCursorStyle(%d,%d)", display, shape)
}
func (r *recordingScreen) DesignateCharset(table screen.CharsetTable, id screen.CharsetID) {
	r.rec("designateCharset(%d,%d)", table, id)
}
func (r *recordingScreen) SingleShiftSelect(table screen.CharsetTable) {
	r.rec("singleShiftSelect(%d)", table)
}
func (r *recordingScreen) ApplicationKeypadMode(enable bool) {
	r.rec("applicationKeypadMode(%v)", enable)
}

func (r *recordingScreen) HorizontalTabSet() { r.rec("horizontalTabSet") }
func (r *recordingScreen) HorizontalTabClear(which screen.TabClear) {
	r.rec("horizontalTabClear(%d)", which)
}
func (r *recordingScreen) RequestTabStops() { r.rec("requestTabStops") }

func (r *recordingScreen) DeviceStatusReport()           { r.rec("deviceStatusReport") }
func (r *recordingScreen) ReportCursorPosition()         { r.rec("reportCursorPosition") }
func (r *recordingScreen) ReportExtendedCursorPosition() { r.rec("reportExtendedCursorPosition") }
func (r *recordingScreen) SendDeviceAttributes()         { r.rec("sendDeviceAttributes") }
func (r *recordingScreen) SendTerminalID()               { r.rec("sendTerminalID") }
func (r *recordingScreen) RequestPixelSize(area screen.PixelSizeArea) {
	r.rec("requestPixelSize(%d)", area)
}
func (r *recordingScreen) RequestStatusString(v screen.StatusString) {
	r.rec("requestStatusString(%d)", v)
}
func (r *recordingScreen) RequestDynamicColor(name screen.DynamicColorName) {
	r.rec("requestDynamicColor(%d)", name)
}
func (r *recordingScreen) SetDynamicColor(name screen.DynamicColorName, value color.RGB) {
	r.rec("setDynamicColor(%d,%d,%d,%d)", name, value.R, value.G, value.B)
}
func (r *recordingScreen) ResetDynamicColor(name screen.DynamicColorName) {
	r.rec("resetDynamicColor(%d)", name)
}

func (r *recordingScreen) SetWindowTitle(title string) { r.rec("setWindowTitle(%s)", title) }
func (r *recordingScreen) SaveWindowTitle()            { r.rec("saveWindowTitle") }
func (r *recordingScreen) RestoreWindowTitle()         { r.rec("restoreWindowTitle") }

func (r *recordingScreen) Hyperlink(id, uri string) { r.rec("hyperlink(%s,%s)", id, uri) }
func (r *recordingScreen) Notify(title, body string) {
	r.rec("notify(%s,%s)", title, body)
}
func (r *recordingScreen) SetMark() { r.rec("setMark") }
func (r *recordingScreen) SMGraphics(item screen.GraphicsItem, action screen.GraphicsAction, value screen.GraphicsValue) {
	r.rec("smGraphics(%d,%d)", item, action)
}

func (r *recordingScreen) UploadImage(name string, format screen.ImageFormat, size screen.Size, data []byte) {
	r.rec("uploadImage(%s,%d,%dx%d,%s)", name, format, size.Width, size.Height, data)
}
func (r *recordingScreen) RenderImage(name string, gridSize screen.Size, offset screen.Coordinate,
	imageSize screen.Size, align screen.ImageAlignment, resize screen.ImageResize,
	autoScroll, requestStatus bool,
) {
	r.rec("renderImage(%s,%dx%d,%d:%d,%d,%d,%v,%v)", name,
		gridSize.Width, gridSize.Height, offset.Row, offset.Col,
		align, resize, autoScroll, requestStatus)
}
func (r *recordingScreen) RenderImageData(format screen.ImageFormat, imageSize screen.Size,
	data []byte, gridSize screen.Size, align screen.ImageAlignment,
	resize screen.ImageResize, autoScroll bool,
) {
	r.rec("renderImageData(%d,%dx%d,%d)", format, imageSize.Width, imageSize.Height, len(data))
}
func (r *recordingScreen) ReleaseImage(name string) { r.rec("releaseImage(%s)", name) }
func (r *recordingScreen) SixelImage(size screen.Size, rgba []byte) {
	r.rec("sixelImage(%dx%d)", size.Width, size.Height)
}

func (r *recordingScreen) ResetSoft() { r.rec("resetSoft") }
func (r *recordingScreen) ResetHard() { r.rec("resetHard") }
func (r *recordingScreen) DumpState() { r.rec("dumpState") }
