package screen

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sort"

	"github.com/hnimtadd/vtio/terminal/color"
	"github.com/hnimtadd/vtio/terminal/core"
	"github.com/hnimtadd/vtio/terminal/style"
	xdraw "golang.org/x/image/draw"
)

type storedImage struct {
	format ImageFormat
	size   Size
	data   []byte
}

// Placement is an image placed on the grid, already scaled to its
// final pixel extent.
type Placement struct {
	Name   string
	Offset Coordinate
	Grid   Size
	Pixels image.Image
}

// Placements returns the images placed on the grid so far, sixel
// deliveries included.
func (m *Memory) Placements() []Placement { return m.placements }

func (m *Memory) reply(format string, args ...any) {
	m.listener.Reply([]byte(fmt.Sprintf(format, args...)))
}

func (m *Memory) SetMode(mode core.Mode, enable bool) {
	switch mode {
	case core.ModeUseAlternateScreen, core.ModeExtendedAltScreen:
		if mode == core.ModeExtendedAltScreen && enable {
			m.SaveCursor()
		}
		if enable != m.onAlt {
			m.onAlt = enable
			if enable {
				// the alternate screen starts out clean
				m.altLines = newGrid(m.rows, m.cols)
				m.cursor = Coordinate{}
			}
		}
		if mode == core.ModeExtendedAltScreen && !enable {
			m.RestoreCursor()
		}
	case core.ModeSaveCursor:
		if enable {
			m.SaveCursor()
		} else {
			m.RestoreCursor()
		}
	case core.ModeColumns132:
		if enable {
			m.ResizeColumns(132, true)
		} else {
			m.ResizeColumns(80, true)
		}
	case core.ModeOrigin:
		m.cursor = Coordinate{}
	}
	m.modes.Set(mode, enable)
}

func (m *Memory) SaveModes(modes []core.Mode) {
	for _, mode := range modes {
		m.savedModes[mode] = append(m.savedModes[mode], m.modes.Get(mode))
	}
}

func (m *Memory) RestoreModes(modes []core.Mode) {
	for _, mode := range modes {
		stack := m.savedModes[mode]
		if len(stack) == 0 {
			continue
		}
		value := stack[len(stack)-1]
		m.savedModes[mode] = stack[:len(stack)-1]
		m.SetMode(mode, value)
	}
}

func (m *Memory) SetGraphicsRendition(r GraphicsRendition) {
	switch r {
	case RenditionReset:
		m.style.Reset()
	case RenditionBold:
		m.style.Bold = true
	case RenditionFaint:
		m.style.Faint = true
	case RenditionItalic:
		m.style.Italic = true
	case RenditionUnderline:
		m.style.Underline = style.UnderlineSingle
	case RenditionBlinking:
		m.style.Blink = true
	case RenditionInverse:
		m.style.Inverse = true
	case RenditionHidden:
		m.style.Invisible = true
	case RenditionCrossedOut:
		m.style.Strikethrough = true
	case RenditionDoublyUnderlined:
		m.style.Underline = style.UnderlineDouble
	case RenditionCurlyUnderlined:
		m.style.Underline = style.UnderlineCurly
	case RenditionDottedUnderline:
		m.style.Underline = style.UnderlineDotted
	case RenditionDashedUnderline:
		m.style.Underline = style.UnderlineDashed
	case RenditionFramed:
		m.style.Framed = true
	case RenditionOverline:
		m.style.Overline = true
	case RenditionNormal:
		m.style.Bold = false
		m.style.Faint = false
	case RenditionNoItalic:
		m.style.Italic = false
	case RenditionNoUnderline:
		m.style.Underline = style.UnderlineNone
	case RenditionNoBlinking:
		m.style.Blink = false
	case RenditionNoInverse:
		m.style.Inverse = false
	case RenditionNoHidden:
		m.style.Invisible = false
	case RenditionNoCrossedOut:
		m.style.Strikethrough = false
	case RenditionNoFramed:
		m.style.Framed = false
	case RenditionNoOverline:
		m.style.Overline = false
	}
	m.styleID = m.style.Hash()
}

func (m *Memory) SetForegroundColor(c color.Color) {
	m.style.ForegroundColor = c
	m.styleID = m.style.Hash()
}

func (m *Memory) SetBackgroundColor(c color.Color) {
	m.style.BackgroundColor = c
	m.styleID = m.style.Hash()
}

func (m *Memory) SetUnderlineColor(c color.Color) {
	m.style.UnderlineColor = c
	m.styleID = m.style.Hash()
}

func (m *Memory) SetCursorStyle(display CursorDisplay, shape CursorShape) {
	m.cursorDisplay = display
	m.cursorShape = shape
}

func (m *Memory) DesignateCharset(table CharsetTable, id CharsetID) {
	m.charsets[table] = id
}

func (m *Memory) SingleShiftSelect(table CharsetTable) {
	m.singleShift = &table
}

func (m *Memory) ApplicationKeypadMode(enable bool) {
	m.keypadAppMode = enable
}

func (m *Memory) RequestTabStops() {
	cols := make([]int, 0, len(m.tabs))
	for col := range m.tabs {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	var buf bytes.Buffer
	buf.WriteString("\x1bP2$u")
	for i, col := range cols {
		if i > 0 {
			buf.WriteByte('/')
		}
		fmt.Fprintf(&buf, "%d", col+1)
	}
	buf.WriteString("\x1b\\")
	m.listener.Reply(buf.Bytes())
}

func (m *Memory) DeviceStatusReport() {
	// operating status: OK
	m.reply("\x1b[0n")
}

func (m *Memory) ReportCursorPosition() {
	m.reply("\x1b[%d;%dR", m.cursor.Row+1, m.cursor.Col+1)
}

func (m *Memory) ReportExtendedCursorPosition() {
	m.reply("\x1b[?%d;%d;1R", m.cursor.Row+1, m.cursor.Col+1)
}

func (m *Memory) SendDeviceAttributes() {
	// VT420 with sixel and ANSI color support
	m.reply("\x1b[?64;4;6;22c")
}

func (m *Memory) SendTerminalID() {
	m.reply("\x1b[>41;1;0c")
}

func (m *Memory) RequestPixelSize(area PixelSizeArea) {
	switch area {
	case PixelSizeTextArea, PixelSizeWindowArea:
		m.reply("\x1b[4;%d;%dt", m.rows*m.CellPixel.Height, m.cols*m.CellPixel.Width)
	case PixelSizeCellArea:
		m.reply("\x1b[6;%d;%dt", m.CellPixel.Height, m.CellPixel.Width)
	}
}

// RequestStatusString answers DECRQSS with the current setting, in the
// DCS 1 $ r ... ST reply form. Unsupported requests answer DCS 0 $ r.
func (m *Memory) RequestStatusString(v StatusString) {
	switch v {
	case StatusStringSGR:
		m.reply("\x1bP1$r0m\x1b\\")
	case StatusStringDECSTBM:
		m.reply("\x1bP1$r%d;%dr\x1b\\", m.marginTop+1, m.marginBottom+1)
	case StatusStringDECSLRM:
		m.reply("\x1bP1$r%d;%ds\x1b\\", m.marginLeft+1, m.marginRight+1)
	case StatusStringDECSCUSR:
		n := 1
		switch m.cursorShape {
		case CursorShapeUnderscore:
			n = 3
		case CursorShapeBar:
			n = 5
		}
		if m.cursorDisplay == CursorDisplaySteady {
			n++
		}
		m.reply("\x1bP1$r%d q\x1b\\", n)
	case StatusStringDECSCPP:
		m.reply("\x1bP1$r%d$|\x1b\\", m.cols)
	case StatusStringDECSNLS:
		m.reply("\x1bP1$r%d*|\x1b\\", m.rows)
	default:
		m.reply("\x1bP0$r\x1b\\")
	}
}

func (m *Memory) dynamicColorDefault(name DynamicColorName) color.RGB {
	switch name {
	case DynamicColorDefaultForeground:
		return m.palette[7]
	case DynamicColorDefaultBackground:
		return m.palette[0]
	default:
		return m.palette[7]
	}
}

// RequestDynamicColor emits the bit-exact X11 reply form:
// "ESC ] code ; rgb:RRRR/GGGG/BBBB ESC \".
func (m *Memory) RequestDynamicColor(name DynamicColorName) {
	value, ok := m.dynamicColors[name]
	if !ok {
		value = m.dynamicColorDefault(name)
	}
	m.reply("\x1b]%d;%s\x1b\\", name.Code(), color.FormatX11(value))
}

func (m *Memory) SetDynamicColor(name DynamicColorName, value color.RGB) {
	m.dynamicColors[name] = value
}

func (m *Memory) ResetDynamicColor(name DynamicColorName) {
	delete(m.dynamicColors, name)
}

func (m *Memory) SetWindowTitle(title string) {
	m.title = title
}

func (m *Memory) SaveWindowTitle() {
	m.titleStack = append(m.titleStack, m.title)
}

func (m *Memory) RestoreWindowTitle() {
	if len(m.titleStack) == 0 {
		return
	}
	m.title = m.titleStack[len(m.titleStack)-1]
	m.titleStack = m.titleStack[:len(m.titleStack)-1]
}

func (m *Memory) Hyperlink(id, uri string) {
	if uri == "" {
		m.link = ""
		return
	}
	m.link = uri
	_ = id
}

func (m *Memory) Notify(title, body string) {
	m.logger.Info("notification", "title", title, "body", body)
}

func (m *Memory) SetMark() {
	m.marks = append(m.marks, m.cursor.Row)
}

func (m *Memory) SMGraphics(item GraphicsItem, action GraphicsAction, value GraphicsValue) {
	// Report back current/limit values; setting is accepted silently.
	switch action {
	case GraphicsActionRead, GraphicsActionReadLimit:
		switch item {
		case GraphicsItemColorRegisters:
			m.reply("\x1b[?%d;0;%dS", item, 256)
		case GraphicsItemSixelGeometry:
			m.reply("\x1b[?%d;0;%d;%dS", item,
				m.cols*m.CellPixel.Width, m.rows*m.CellPixel.Height)
		default:
			m.reply("\x1b[?%d;1S", item)
		}
	case GraphicsActionSetToValue, GraphicsActionResetToDefault:
		_ = value
	}
}

func (m *Memory) UploadImage(name string, format ImageFormat, size Size, data []byte) {
	m.images[name] = storedImage{format: format, size: size, data: data}
}

func (m *Memory) RenderImage(name string, gridSize Size, offset Coordinate, imageSize Size,
	align ImageAlignment, resize ImageResize, autoScroll, requestStatus bool,
) {
	stored, ok := m.images[name]
	if !ok {
		if requestStatus {
			m.reply("\x1b]888;render;%s;missing\x1b\\", name)
		}
		return
	}
	img := m.decodeStored(stored)
	if img == nil {
		return
	}
	m.place(name, gridSize, offset, img, resize)
	_ = imageSize
	_ = align
	_ = autoScroll
	if requestStatus {
		m.reply("\x1b]888;render;%s;ok\x1b\\", name)
	}
}

func (m *Memory) RenderImageData(format ImageFormat, imageSize Size, data []byte,
	gridSize Size, align ImageAlignment, resize ImageResize, autoScroll bool,
) {
	img := m.decodeStored(storedImage{format: format, size: imageSize, data: data})
	if img == nil {
		return
	}
	m.place("", gridSize, Coordinate{}, img, resize)
	_ = align
	_ = autoScroll
}

func (m *Memory) ReleaseImage(name string) {
	delete(m.images, name)
}

func (m *Memory) SixelImage(size Size, rgba []byte) {
	img := &image.RGBA{
		Pix:    rgba,
		Stride: size.Width * 4,
		Rect:   image.Rect(0, 0, size.Width, size.Height),
	}
	m.placements = append(m.placements, Placement{
		Offset: Coordinate{Row: m.cursor.Row + 1, Col: m.cursor.Col + 1},
		Pixels: img,
	})
	if m.modes.Get(core.ModeSixelScrolling) {
		rows := (size.Height + m.CellPixel.Height - 1) / m.CellPixel.Height
		for ; rows > 0; rows-- {
			m.Index()
		}
	}
}

func (m *Memory) decodeStored(stored storedImage) image.Image {
	switch stored.format {
	case ImageFormatPNG:
		img, err := png.Decode(bytes.NewReader(stored.data))
		if err != nil {
			m.logger.Warn("png decode failed", "err", err)
			return nil
		}
		return img
	case ImageFormatRGBA:
		if len(stored.data) < stored.size.Width*stored.size.Height*4 {
			return nil
		}
		return &image.RGBA{
			Pix:    stored.data,
			Stride: stored.size.Width * 4,
			Rect:   image.Rect(0, 0, stored.size.Width, stored.size.Height),
		}
	case ImageFormatRGB:
		if len(stored.data) < stored.size.Width*stored.size.Height*3 {
			return nil
		}
		rgba := image.NewRGBA(image.Rect(0, 0, stored.size.Width, stored.size.Height))
		for i := 0; i < stored.size.Width*stored.size.Height; i++ {
			rgba.Pix[i*4+0] = stored.data[i*3+0]
			rgba.Pix[i*4+1] = stored.data[i*3+1]
			rgba.Pix[i*4+2] = stored.data[i*3+2]
			rgba.Pix[i*4+3] = 0xFF
		}
		return rgba
	default:
		return nil
	}
}

// place scales the image to the requested grid extent per the resize
// policy and records the placement.
func (m *Memory) place(name string, gridSize Size, offset Coordinate, img image.Image, resize ImageResize) {
	if gridSize.Width == 0 {
		gridSize.Width = m.cols
	}
	if gridSize.Height == 0 {
		gridSize.Height = m.rows
	}
	boxW := gridSize.Width * m.CellPixel.Width
	boxH := gridSize.Height * m.CellPixel.Height

	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	dstW, dstH := srcW, srcH

	switch resize {
	case ResizeNone:
	case ResizeToFit:
		scaleW := float64(boxW) / float64(srcW)
		scaleH := float64(boxH) / float64(srcH)
		scale := min(scaleW, scaleH)
		dstW = int(float64(srcW) * scale)
		dstH = int(float64(srcH) * scale)
	case ResizeToFill:
		scaleW := float64(boxW) / float64(srcW)
		scaleH := float64(boxH) / float64(srcH)
		scale := max(scaleW, scaleH)
		dstW = int(float64(srcW) * scale)
		dstH = int(float64(srcH) * scale)
	case ResizeStretchToFill:
		dstW, dstH = boxW, boxH
	}

	if dstW != srcW || dstH != srcH {
		scaled := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = scaled
	}

	m.placements = append(m.placements, Placement{
		Name:   name,
		Offset: offset,
		Grid:   gridSize,
		Pixels: img,
	})
}

// ResetSoft restores cursor, margins, attributes and modes without
// touching the grid.
func (m *Memory) ResetSoft() {
	m.style.Reset()
	m.styleID = 0
	m.resetMargins()
	m.modes.Reset()
	m.savedCursor = Coordinate{}
	m.savedStyle = style.Style{}
	m.wrapPending = false
	m.charsets = [4]CharsetID{CharsetUSASCII, CharsetUSASCII, CharsetUSASCII, CharsetUSASCII}
	m.singleShift = nil
	m.keypadAppMode = false
}

// ResetHard is RIS: everything back to the power-on state.
func (m *Memory) ResetHard() {
	m.ResetSoft()
	m.lines = newGrid(m.rows, m.cols)
	m.altLines = newGrid(m.rows, m.cols)
	m.onAlt = false
	m.cursor = Coordinate{}
	m.resetTabs()
	m.title = ""
	m.titleStack = nil
	m.images = make(map[string]storedImage)
	m.placements = nil
	m.marks = nil
	m.dynamicColors = make(map[DynamicColorName]color.RGB)
}

// DumpState writes a snapshot of the visible grid to the logger.
func (m *Memory) DumpState() {
	m.logger.Info("screen state",
		"cursor", fmt.Sprintf("%d:%d", m.cursor.Row+1, m.cursor.Col+1),
		"title", m.title,
		"snapshot", m.Snapshot(),
	)
}
