// Package screen defines the contract between the sequencer and the
// display surface it drives, plus an in-memory reference
// implementation.
package screen

import (
	"github.com/hnimtadd/vtio/terminal/color"
	"github.com/hnimtadd/vtio/terminal/core"
)

// Size in cells or pixels depending on context.
type Size struct {
	Width, Height int
}

// Coordinate is a grid position, 1-based the way the wire protocol
// counts.
type Coordinate struct {
	Row, Col int
}

type CursorDisplay uint8

const (
	CursorDisplaySteady CursorDisplay = iota
	CursorDisplayBlink
)

type CursorShape uint8

const (
	CursorShapeBlock CursorShape = iota
	CursorShapeRectangle
	CursorShapeUnderscore
	CursorShapeBar
)

// GraphicsRendition is one text attribute selected by SGR.
type GraphicsRendition uint8

const (
	RenditionReset GraphicsRendition = iota
	RenditionBold
	RenditionFaint
	RenditionItalic
	RenditionUnderline
	RenditionBlinking
	RenditionInverse
	RenditionHidden
	RenditionCrossedOut
	RenditionDoublyUnderlined
	RenditionCurlyUnderlined
	RenditionDottedUnderline
	RenditionDashedUnderline
	RenditionFramed
	RenditionOverline
	RenditionNormal // neither bold nor faint
	RenditionNoItalic
	RenditionNoUnderline
	RenditionNoBlinking
	RenditionNoInverse
	RenditionNoHidden
	RenditionNoCrossedOut
	RenditionNoFramed
	RenditionNoOverline
)

// DynamicColorName groups the OSC color-setting commands.
type DynamicColorName uint8

const (
	DynamicColorDefaultForeground DynamicColorName = iota
	DynamicColorDefaultBackground
	DynamicColorTextCursor
	DynamicColorMouseForeground
	DynamicColorMouseBackground
	DynamicColorHighlightForeground
	DynamicColorHighlightBackground
)

// Code returns the OSC number that sets the dynamic color; the reset
// variant is Code()+100.
func (n DynamicColorName) Code() int {
	switch n {
	case DynamicColorDefaultForeground:
		return 10
	case DynamicColorDefaultBackground:
		return 11
	case DynamicColorTextCursor:
		return 12
	case DynamicColorMouseForeground:
		return 13
	case DynamicColorMouseBackground:
		return 14
	case DynamicColorHighlightForeground:
		return 19
	case DynamicColorHighlightBackground:
		return 17
	}
	return 0
}

// StatusString enumerates the settings DECRQSS can ask for.
type StatusString uint8

const (
	StatusStringSGR StatusString = iota
	StatusStringDECSCL
	StatusStringDECSCUSR
	StatusStringDECSCA
	StatusStringDECSTBM
	StatusStringDECSLRM
	StatusStringDECSLPP
	StatusStringDECSCPP
	StatusStringDECSNLS
)

// TabClear selects what TBC clears.
type TabClear uint8

const (
	TabClearUnderCursor TabClear = iota
	TabClearAllTabs
)

// PixelSizeArea selects what a pixel size report describes.
type PixelSizeArea uint8

const (
	PixelSizeCellArea PixelSizeArea = iota
	PixelSizeTextArea
	PixelSizeWindowArea
)

// CharsetTable selects one of the four designatable tables.
type CharsetTable uint8

const (
	CharsetTableG0 CharsetTable = iota
	CharsetTableG1
	CharsetTableG2
	CharsetTableG3
)

// CharsetID names a character set to designate.
type CharsetID uint8

const (
	CharsetSpecial CharsetID = iota // DEC Special Character and Line Drawing Set
	CharsetUSASCII
)

// GraphicsItem / GraphicsAction / GraphicsValue model XTSMGRAPHICS.
type GraphicsItem uint8

const (
	GraphicsItemColorRegisters GraphicsItem = 1
	GraphicsItemSixelGeometry  GraphicsItem = 2
	GraphicsItemReGISGeometry  GraphicsItem = 3
)

type GraphicsAction uint8

const (
	GraphicsActionRead           GraphicsAction = 1
	GraphicsActionResetToDefault GraphicsAction = 2
	GraphicsActionSetToValue     GraphicsAction = 3
	GraphicsActionReadLimit      GraphicsAction = 4
)

// GraphicsValue carries either nothing, a number, or a size.
type GraphicsValue struct {
	Number int
	Size   Size
	HasNum bool
	HasSz  bool
}

// ImageFormat of an uploaded image body.
type ImageFormat uint8

const (
	ImageFormatRGB ImageFormat = iota + 1
	ImageFormatRGBA
	ImageFormatPNG
)

// ImageAlignment positions an image inside its grid extent, row-major
// over a 3x3 grid.
type ImageAlignment uint8

const (
	AlignTopStart ImageAlignment = iota + 1
	AlignTopCenter
	AlignTopEnd
	AlignMiddleStart
	AlignMiddleCenter
	AlignMiddleEnd
	AlignBottomStart
	AlignBottomCenter
	AlignBottomEnd
)

// ImageResize selects the scaling policy when rendering an image.
type ImageResize uint8

const (
	ResizeNone ImageResize = iota
	ResizeToFit
	ResizeToFill
	ResizeStretchToFill
)

// EventListener receives the side effects destined for the embedding
// application rather than the display surface.
type EventListener interface {
	Bell()
	CopyToClipboard(data []byte)
	// ResizeWindow asks the embedder to resize; zero extents mean
	// "full display size".
	ResizeWindow(width, height int, inPixels bool)
	// Reply carries response bytes (reports, queries) back toward the
	// child process.
	Reply(data []byte)
}

// Screen is the display surface the sequencer drives. Operations are
// described by effect; implementations decide representation. None of
// them return errors: malformed requests were already filtered by the
// dispatcher.
type Screen interface {
	EventListener() EventListener

	// Text and simple controls
	WriteText(cp rune)
	Backspace()
	MoveCursorToNextTab()
	Linefeed()
	Index()
	ReverseIndex()
	BackIndex()
	ForwardIndex()
	MoveCursorToBeginOfLine()
	SaveCursor()
	RestoreCursor()

	// Cursor movement
	MoveCursorUp(n int)
	MoveCursorDown(n int)
	MoveCursorForward(n int)
	MoveCursorBackward(n int)
	MoveCursorTo(pos Coordinate)
	MoveCursorToColumn(col int)
	MoveCursorToLine(line int)
	MoveCursorToNextLine(n int)
	MoveCursorToPrevLine(n int)
	CursorForwardTab(n int)
	CursorBackwardTab(n int)

	// Editing
	InsertCharacters(n int)
	DeleteCharacters(n int)
	EraseCharacters(n int)
	InsertLines(n int)
	DeleteLines(n int)
	InsertColumns(n int)
	DeleteColumns(n int)

	// Erasure
	ClearToEndOfLine()
	ClearToBeginOfLine()
	ClearLine()
	ClearToEndOfScreen()
	ClearToBeginOfScreen()
	ClearScreen()
	ClearScrollbackBuffer()
	ScreenAlignmentPattern()

	// Scrolling and margins
	ScrollUp(n int)
	ScrollDown(n int)
	// SetTopBottomMargin and SetLeftRightMargin take 0 for an absent
	// bound, meaning the respective screen edge.
	SetTopBottomMargin(top, bottom int)
	SetLeftRightMargin(left, right int)
	ResizeColumns(columns int, clear bool)

	// Modes and attributes
	SetMode(mode core.Mode, enable bool)
	SaveModes(modes []core.Mode)
	RestoreModes(modes []core.Mode)
	SetGraphicsRendition(r GraphicsRendition)
	SetForegroundColor(c color.Color)
	SetBackgroundColor(c color.Color)
	SetUnderlineColor(c color.Color)
	SetCursorStyle(display CursorDisplay, shape CursorShape)
	DesignateCharset(table CharsetTable, id CharsetID)
	SingleShiftSelect(table CharsetTable)
	ApplicationKeypadMode(enable bool)

	// Tab stops
	HorizontalTabSet()
	HorizontalTabClear(which TabClear)
	RequestTabStops()

	// Reports; responses go through the EventListener
	DeviceStatusReport()
	ReportCursorPosition()
	ReportExtendedCursorPosition()
	SendDeviceAttributes()
	SendTerminalID()
	RequestPixelSize(area PixelSizeArea)
	RequestStatusString(v StatusString)
	RequestDynamicColor(name DynamicColorName)
	SetDynamicColor(name DynamicColorName, value color.RGB)
	ResetDynamicColor(name DynamicColorName)

	// Window
	SetWindowTitle(title string)
	SaveWindowTitle()
	RestoreWindowTitle()

	// Extensions
	Hyperlink(id, uri string)
	Notify(title, body string)
	SetMark()
	SMGraphics(item GraphicsItem, action GraphicsAction, value GraphicsValue)

	// Images
	UploadImage(name string, format ImageFormat, size Size, data []byte)
	RenderImage(name string, gridSize Size, offset Coordinate, imageSize Size,
		align ImageAlignment, resize ImageResize, autoScroll, requestStatus bool)
	RenderImageData(format ImageFormat, imageSize Size, data []byte,
		gridSize Size, align ImageAlignment, resize ImageResize, autoScroll bool)
	ReleaseImage(name string)
	SixelImage(size Size, rgba []byte)

	// Resets and diagnostics
	ResetSoft()
	ResetHard()
	DumpState()
}
