package screen

import (
	"strings"

	"github.com/hnimtadd/vtio/logger"
	"github.com/hnimtadd/vtio/terminal/color"
	"github.com/hnimtadd/vtio/terminal/core"
	"github.com/hnimtadd/vtio/terminal/style"
	dw "github.com/mattn/go-runewidth"
)

// Cell is one grid position of the reference screen.
type Cell struct {
	Rune  rune
	Width int
	Style style.Style
	Link  string
}

// NullListener ignores every event. Embedders that only want the grid
// can use it as-is.
type NullListener struct{}

func (NullListener) Bell()                                   {}
func (NullListener) CopyToClipboard(data []byte)             {}
func (NullListener) ResizeWindow(width, height int, px bool) {}
func (NullListener) Reply(data []byte)                       {}

// Memory is an in-memory Screen implementation: a flat cell grid with
// cursor, margins, tab stops, mode state and image storage. It backs
// the library facade and the end-to-end tests.
type Memory struct {
	listener EventListener
	logger   logger.Logger

	rows, cols int
	lines      [][]Cell
	altLines   [][]Cell
	onAlt      bool

	cursor      Coordinate // 0-based internally
	savedCursor Coordinate
	savedStyle  style.Style
	wrapPending bool

	style   style.Style
	styleID uint64
	link    string

	modes      *core.ModeState
	savedModes map[core.Mode][]bool

	tabs map[int]bool

	marginTop, marginBottom int // 0-based, inclusive
	marginLeft, marginRight int

	title      string
	titleStack []string

	charsets      [4]CharsetID
	activeCharset CharsetTable
	singleShift   *CharsetTable
	keypadAppMode bool

	cursorDisplay CursorDisplay
	cursorShape   CursorShape

	palette       *color.Palette
	dynamicColors map[DynamicColorName]color.RGB

	// CellPixel is the assumed pixel geometry of one cell, used for
	// pixel reports and image placement.
	CellPixel Size

	images     map[string]storedImage
	placements []Placement
	marks      []int
}

type MemoryOptions struct {
	Rows, Cols int
	Listener   EventListener
	Logger     logger.Logger
	Palette    *color.Palette
	Modes      map[core.Mode]bool
}

func NewMemory(opts MemoryOptions) *Memory {
	if opts.Rows <= 0 {
		opts.Rows = 24
	}
	if opts.Cols <= 0 {
		opts.Cols = 80
	}
	if opts.Listener == nil {
		opts.Listener = NullListener{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard
	}
	if opts.Palette == nil {
		opts.Palette = color.NewPalette()
	}
	m := &Memory{
		listener:      opts.Listener,
		logger:        opts.Logger,
		rows:          opts.Rows,
		cols:          opts.Cols,
		modes:         core.NewModeState(opts.Modes),
		savedModes:    make(map[core.Mode][]bool),
		tabs:          make(map[int]bool),
		palette:       opts.Palette,
		dynamicColors: make(map[DynamicColorName]color.RGB),
		CellPixel:     Size{Width: 8, Height: 16},
		images:        make(map[string]storedImage),
		charsets:      [4]CharsetID{CharsetUSASCII, CharsetUSASCII, CharsetUSASCII, CharsetUSASCII},
	}
	m.lines = newGrid(m.rows, m.cols)
	m.altLines = newGrid(m.rows, m.cols)
	m.resetMargins()
	m.resetTabs()
	return m
}

func newGrid(rows, cols int) [][]Cell {
	grid := make([][]Cell, rows)
	for i := range grid {
		grid[i] = make([]Cell, cols)
	}
	return grid
}

func (m *Memory) EventListener() EventListener { return m.listener }

func (m *Memory) Size() Size             { return Size{Width: m.cols, Height: m.rows} }
func (m *Memory) Title() string          { return m.title }
func (m *Memory) Modes() *core.ModeState { return m.modes }
func (m *Memory) Style() style.Style     { return m.style }

// Cursor reports the 1-based cursor position.
func (m *Memory) Cursor() Coordinate {
	return Coordinate{Row: m.cursor.Row + 1, Col: m.cursor.Col + 1}
}

// Cell returns the cell at 1-based coordinates.
func (m *Memory) Cell(row, col int) Cell {
	return m.grid()[row-1][col-1]
}

func (m *Memory) grid() [][]Cell {
	if m.onAlt {
		return m.altLines
	}
	return m.lines
}

func (m *Memory) resetMargins() {
	m.marginTop = 0
	m.marginBottom = m.rows - 1
	m.marginLeft = 0
	m.marginRight = m.cols - 1
}

func (m *Memory) resetTabs() {
	m.tabs = make(map[int]bool)
	for col := 8; col < m.cols; col += 8 {
		m.tabs[col] = true
	}
}

// decSpecialGraphics maps the DEC Special Character and Line Drawing
// Set onto Unicode box drawing characters for the designatable range
// 0x60..0x7E.
var decSpecialGraphics = map[rune]rune{
	'`': '◆', 'a': '▒', 'b': '␉', 'c': '␌',
	'd': '␍', 'e': '␊', 'f': '°', 'g': '±',
	'h': '␤', 'i': '␋', 'j': '┘', 'k': '┐',
	'l': '┌', 'm': '└', 'n': '┼', 'o': '⎺',
	'p': '⎻', 'q': '─', 'r': '⎼', 's': '⎽',
	't': '├', 'u': '┤', 'v': '┴', 'w': '┬',
	'x': '│', 'y': '≤', 'z': '≥', '{': 'π',
	'|': '≠', '}': '£', '~': '·',
}

func (m *Memory) mapCharset(cp rune) rune {
	table := m.activeCharset
	if m.singleShift != nil {
		table = *m.singleShift
		m.singleShift = nil
	}
	if m.charsets[table] == CharsetSpecial {
		if mapped, ok := decSpecialGraphics[cp]; ok {
			return mapped
		}
	}
	return cp
}

// WriteText places one codepoint at the cursor and advances it,
// wrapping or clamping at the right margin depending on DECAWM.
func (m *Memory) WriteText(cp rune) {
	cp = m.mapCharset(cp)
	width := dw.RuneWidth(cp)
	if width == 0 {
		// Combining characters attach to the previous cell.
		m.attachCombining(cp)
		return
	}

	if m.wrapPending || m.cursor.Col+width > m.cols {
		if m.modes.Get(core.ModeAutoWrap) {
			m.cursor.Col = m.marginLeft
			m.Index()
		} else {
			m.cursor.Col = m.cols - width
		}
		m.wrapPending = false
	}

	if m.modes.Get(core.ModeInsert) {
		m.shiftRight(m.cursor.Row, m.cursor.Col, width)
	}

	grid := m.grid()
	grid[m.cursor.Row][m.cursor.Col] = Cell{
		Rune:  cp,
		Width: width,
		Style: m.style,
		Link:  m.link,
	}
	// Wide characters occupy spacer cells too.
	for i := 1; i < width && m.cursor.Col+i < m.cols; i++ {
		grid[m.cursor.Row][m.cursor.Col+i] = Cell{Width: -1, Style: m.style}
	}

	if m.cursor.Col+width >= m.cols {
		m.cursor.Col = m.cols - 1
		if m.modes.Get(core.ModeAutoWrap) {
			m.wrapPending = true
		}
		return
	}
	m.cursor.Col += width
}

func (m *Memory) attachCombining(cp rune) {
	col := m.cursor.Col - 1
	if col < 0 {
		return
	}
	// Nothing fancy: keep the base rune, drop the mark. A renderer
	// backed by a real grid would store the cluster.
	_ = cp
}

func (m *Memory) shiftRight(row, col, n int) {
	grid := m.grid()
	line := grid[row]
	copy(line[col+n:], line[col:])
	for i := col; i < col+n && i < m.cols; i++ {
		line[i] = Cell{}
	}
}

func (m *Memory) Backspace() {
	m.wrapPending = false
	if m.cursor.Col > m.marginLeft {
		m.cursor.Col--
	}
}

func (m *Memory) MoveCursorToNextTab() {
	for col := m.cursor.Col + 1; col < m.cols; col++ {
		if m.tabs[col] {
			m.cursor.Col = col
			return
		}
	}
	m.cursor.Col = m.cols - 1
}

func (m *Memory) CursorForwardTab(n int) {
	for ; n > 0; n-- {
		m.MoveCursorToNextTab()
	}
}

func (m *Memory) CursorBackwardTab(n int) {
	for ; n > 0; n-- {
		moved := false
		for col := m.cursor.Col - 1; col > 0; col-- {
			if m.tabs[col] {
				m.cursor.Col = col
				moved = true
				break
			}
		}
		if !moved {
			m.cursor.Col = 0
			return
		}
	}
}

func (m *Memory) Linefeed() {
	m.wrapPending = false
	if m.modes.Get(core.ModeAutomaticNewLine) {
		m.cursor.Col = m.marginLeft
	}
	m.Index()
}

func (m *Memory) Index() {
	m.wrapPending = false
	if m.cursor.Row == m.marginBottom {
		m.ScrollUp(1)
		return
	}
	if m.cursor.Row < m.rows-1 {
		m.cursor.Row++
	}
}

func (m *Memory) ReverseIndex() {
	m.wrapPending = false
	if m.cursor.Row == m.marginTop {
		m.ScrollDown(1)
		return
	}
	if m.cursor.Row > 0 {
		m.cursor.Row--
	}
}

func (m *Memory) BackIndex() {
	if m.cursor.Col == m.marginLeft {
		m.insertColumnsAt(m.marginLeft, 1)
		return
	}
	m.cursor.Col--
}

func (m *Memory) ForwardIndex() {
	if m.cursor.Col == m.marginRight {
		m.deleteColumnsAt(m.marginLeft, 1)
		return
	}
	m.cursor.Col++
}

func (m *Memory) MoveCursorToBeginOfLine() {
	m.wrapPending = false
	m.cursor.Col = m.marginLeft
}

func (m *Memory) SaveCursor() {
	m.savedCursor = m.cursor
	m.savedStyle = m.style
}

func (m *Memory) RestoreCursor() {
	m.cursor = m.savedCursor
	m.style = m.savedStyle
	m.clampCursor()
}

func (m *Memory) clampCursor() {
	if m.cursor.Row < 0 {
		m.cursor.Row = 0
	}
	if m.cursor.Row >= m.rows {
		m.cursor.Row = m.rows - 1
	}
	if m.cursor.Col < 0 {
		m.cursor.Col = 0
	}
	if m.cursor.Col >= m.cols {
		m.cursor.Col = m.cols - 1
	}
}

func (m *Memory) MoveCursorUp(n int) {
	m.wrapPending = false
	m.cursor.Row -= n
	if m.cursor.Row < m.marginTop {
		m.cursor.Row = m.marginTop
	}
}

func (m *Memory) MoveCursorDown(n int) {
	m.wrapPending = false
	m.cursor.Row += n
	if m.cursor.Row > m.marginBottom {
		m.cursor.Row = m.marginBottom
	}
}

func (m *Memory) MoveCursorForward(n int) {
	m.wrapPending = false
	m.cursor.Col += n
	if m.cursor.Col > m.cols-1 {
		m.cursor.Col = m.cols - 1
	}
}

func (m *Memory) MoveCursorBackward(n int) {
	m.wrapPending = false
	m.cursor.Col -= n
	if m.cursor.Col < 0 {
		m.cursor.Col = 0
	}
}

// MoveCursorTo positions the cursor with 1-based wire coordinates,
// relative to the margins when origin mode is set.
func (m *Memory) MoveCursorTo(pos Coordinate) {
	m.wrapPending = false
	row := pos.Row - 1
	col := pos.Col - 1
	if m.modes.Get(core.ModeOrigin) {
		row += m.marginTop
		col += m.marginLeft
		if row > m.marginBottom {
			row = m.marginBottom
		}
		if col > m.marginRight {
			col = m.marginRight
		}
	}
	m.cursor = Coordinate{Row: row, Col: col}
	m.clampCursor()
}

func (m *Memory) MoveCursorToColumn(col int) {
	m.wrapPending = false
	m.cursor.Col = col - 1
	m.clampCursor()
}

func (m *Memory) MoveCursorToLine(line int) {
	m.wrapPending = false
	m.cursor.Row = line - 1
	m.clampCursor()
}

func (m *Memory) MoveCursorToNextLine(n int) {
	for ; n > 0; n-- {
		m.Index()
	}
	m.cursor.Col = m.marginLeft
}

func (m *Memory) MoveCursorToPrevLine(n int) {
	for ; n > 0; n-- {
		m.ReverseIndex()
	}
	m.cursor.Col = m.marginLeft
}

func (m *Memory) InsertCharacters(n int) {
	line := m.grid()[m.cursor.Row]
	for i := m.cols - 1; i >= m.cursor.Col+n; i-- {
		line[i] = line[i-n]
	}
	for i := m.cursor.Col; i < m.cursor.Col+n && i < m.cols; i++ {
		line[i] = Cell{Style: m.style}
	}
}

func (m *Memory) DeleteCharacters(n int) {
	line := m.grid()[m.cursor.Row]
	shift := min(n, m.cols-m.cursor.Col)
	copy(line[m.cursor.Col:], line[m.cursor.Col+shift:])
	for i := max(m.cursor.Col, m.cols-shift); i < m.cols; i++ {
		line[i] = Cell{Style: m.style}
	}
}

func (m *Memory) EraseCharacters(n int) {
	line := m.grid()[m.cursor.Row]
	for i := m.cursor.Col; i < m.cursor.Col+n && i < m.cols; i++ {
		line[i] = Cell{Style: m.style}
	}
}

func (m *Memory) InsertLines(n int) {
	if m.cursor.Row < m.marginTop || m.cursor.Row > m.marginBottom {
		return
	}
	m.scrollDownAt(m.cursor.Row, n)
}

func (m *Memory) DeleteLines(n int) {
	if m.cursor.Row < m.marginTop || m.cursor.Row > m.marginBottom {
		return
	}
	m.scrollUpAt(m.cursor.Row, n)
}

func (m *Memory) InsertColumns(n int) {
	m.insertColumnsAt(m.cursor.Col, n)
}

func (m *Memory) DeleteColumns(n int) {
	m.deleteColumnsAt(m.cursor.Col, n)
}

func (m *Memory) insertColumnsAt(col, n int) {
	grid := m.grid()
	for row := m.marginTop; row <= m.marginBottom; row++ {
		line := grid[row]
		for i := m.marginRight; i >= col+n; i-- {
			line[i] = line[i-n]
		}
		for i := col; i < col+n && i <= m.marginRight; i++ {
			line[i] = Cell{}
		}
	}
}

func (m *Memory) deleteColumnsAt(col, n int) {
	grid := m.grid()
	for row := m.marginTop; row <= m.marginBottom; row++ {
		line := grid[row]
		for i := col; i <= m.marginRight; i++ {
			if i+n <= m.marginRight {
				line[i] = line[i+n]
			} else {
				line[i] = Cell{}
			}
		}
	}
}

func (m *Memory) ClearToEndOfLine() {
	line := m.grid()[m.cursor.Row]
	for i := m.cursor.Col; i < m.cols; i++ {
		line[i] = Cell{Style: m.style}
	}
}

func (m *Memory) ClearToBeginOfLine() {
	line := m.grid()[m.cursor.Row]
	for i := 0; i <= m.cursor.Col && i < m.cols; i++ {
		line[i] = Cell{Style: m.style}
	}
}

func (m *Memory) ClearLine() {
	line := m.grid()[m.cursor.Row]
	for i := range line {
		line[i] = Cell{Style: m.style}
	}
}

func (m *Memory) ClearToEndOfScreen() {
	m.ClearToEndOfLine()
	grid := m.grid()
	for row := m.cursor.Row + 1; row < m.rows; row++ {
		for col := range grid[row] {
			grid[row][col] = Cell{Style: m.style}
		}
	}
}

func (m *Memory) ClearToBeginOfScreen() {
	m.ClearToBeginOfLine()
	grid := m.grid()
	for row := 0; row < m.cursor.Row; row++ {
		for col := range grid[row] {
			grid[row][col] = Cell{Style: m.style}
		}
	}
}

func (m *Memory) ClearScreen() {
	grid := m.grid()
	for row := range grid {
		for col := range grid[row] {
			grid[row][col] = Cell{Style: m.style}
		}
	}
}

func (m *Memory) ClearScrollbackBuffer() {
	// The reference screen keeps no scrollback.
}

func (m *Memory) ScreenAlignmentPattern() {
	grid := m.grid()
	for row := range grid {
		for col := range grid[row] {
			grid[row][col] = Cell{Rune: 'E', Width: 1}
		}
	}
	m.resetMargins()
	m.cursor = Coordinate{}
}

func (m *Memory) ScrollUp(n int) {
	m.scrollUpAt(m.marginTop, n)
}

func (m *Memory) ScrollDown(n int) {
	m.scrollDownAt(m.marginTop, n)
}

func (m *Memory) scrollUpAt(top, n int) {
	grid := m.grid()
	if n > m.marginBottom-top+1 {
		n = m.marginBottom - top + 1
	}
	for row := top; row <= m.marginBottom; row++ {
		if row+n <= m.marginBottom {
			copy(grid[row], grid[row+n])
		} else {
			for col := range grid[row] {
				grid[row][col] = Cell{}
			}
		}
	}
}

func (m *Memory) scrollDownAt(top, n int) {
	grid := m.grid()
	if n > m.marginBottom-top+1 {
		n = m.marginBottom - top + 1
	}
	for row := m.marginBottom; row >= top; row-- {
		if row-n >= top {
			copy(grid[row], grid[row-n])
		} else {
			for col := range grid[row] {
				grid[row][col] = Cell{}
			}
		}
	}
}

// SetTopBottomMargin takes 1-based bounds, 0 meaning the respective
// screen edge. Nonsense bounds are ignored.
func (m *Memory) SetTopBottomMargin(top, bottom int) {
	if top == 0 {
		top = 1
	}
	if bottom == 0 {
		bottom = m.rows
	}
	if top >= bottom || bottom > m.rows {
		return
	}
	m.marginTop = top - 1
	m.marginBottom = bottom - 1
	m.cursor = Coordinate{Row: m.marginTop, Col: m.marginLeft}
	if !m.modes.Get(core.ModeOrigin) {
		m.cursor = Coordinate{}
	}
}

func (m *Memory) SetLeftRightMargin(left, right int) {
	if !m.modes.Get(core.ModeLeftRightMargin) {
		return
	}
	if left == 0 {
		left = 1
	}
	if right == 0 {
		right = m.cols
	}
	if left >= right || right > m.cols {
		return
	}
	m.marginLeft = left - 1
	m.marginRight = right - 1
}

func (m *Memory) ResizeColumns(columns int, clear bool) {
	m.cols = columns
	m.lines = newGrid(m.rows, m.cols)
	m.altLines = newGrid(m.rows, m.cols)
	m.resetMargins()
	m.resetTabs()
	m.cursor = Coordinate{}
	if clear {
		m.ClearScreen()
	}
}

func (m *Memory) HorizontalTabSet() {
	m.tabs[m.cursor.Col] = true
}

func (m *Memory) HorizontalTabClear(which TabClear) {
	switch which {
	case TabClearUnderCursor:
		delete(m.tabs, m.cursor.Col)
	case TabClearAllTabs:
		m.tabs = make(map[int]bool)
	}
}

// Snapshot renders the visible grid as text, one line per row, with
// trailing blanks trimmed.
func (m *Memory) Snapshot() string {
	grid := m.grid()
	lines := make([]string, m.rows)
	for row := range grid {
		var sb strings.Builder
		for _, cell := range grid[row] {
			switch {
			case cell.Width < 0:
				// spacer of a wide rune, renders nothing of its own
			case cell.Rune == 0:
				sb.WriteByte(' ')
			default:
				sb.WriteRune(cell.Rune)
			}
		}
		lines[row] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(lines, "\n")
}
