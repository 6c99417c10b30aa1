// Package sixel wires DECSIXEL device control strings to a pixel
// decoder. The decoding itself is delegated; this package owns the
// introducer parameters, the palette choice and the delivery of the
// finished pixmap.
package sixel

import (
	"bytes"
	"image"
	gocolor "image/color"
	stddraw "image/draw"

	"github.com/hnimtadd/vtio/terminal/color"
	"github.com/hnimtadd/vtio/terminal/screen"
	"github.com/mattn/go-sixel"
)

// AspectVertical maps the DECSIXEL Pa parameter to the vertical pixel
// aspect; the horizontal aspect is always 1.
func AspectVertical(pa int) int {
	switch pa {
	case 7, 8, 9:
		return 1
	case 5, 6:
		return 2
	case 3, 4:
		return 3
	case 2:
		return 5
	default: // 0, 1 and out-of-range values
		return 2
	}
}

// OnComplete receives the decoded image.
type OnComplete func(size screen.Size, rgba []byte)

// Builder accumulates the data string of one DECSIXEL sequence and
// decodes it on finalize.
type Builder struct {
	maxSize          screen.Size
	aspectVertical   int
	aspectHorizontal int
	background       color.RGB
	transparent      bool
	palette          *color.Palette

	buf        bytes.Buffer
	onComplete OnComplete
	onError    func(err error)
}

type Config struct {
	MaxSize        screen.Size
	AspectVertical int
	Background     color.RGB
	Transparent    bool
	Palette        *color.Palette
	OnComplete     OnComplete
	OnError        func(err error)
}

func NewBuilder(cfg Config) *Builder {
	return &Builder{
		maxSize:          cfg.MaxSize,
		aspectVertical:   cfg.AspectVertical,
		aspectHorizontal: 1,
		background:       cfg.Background,
		transparent:      cfg.Transparent,
		palette:          cfg.Palette,
		onComplete:       cfg.OnComplete,
		onError:          cfg.OnError,
	}
}

func (b *Builder) AspectVertical() int     { return b.aspectVertical }
func (b *Builder) AspectHorizontal() int   { return b.aspectHorizontal }
func (b *Builder) Transparent() bool       { return b.transparent }
func (b *Builder) Palette() *color.Palette { return b.palette }

// Start begins a fresh image. The decoder consumes a complete DECSIXEL
// stream, so the introducer is replayed in front of the buffered data.
func (b *Builder) Start() {
	b.buf.Reset()
	b.buf.WriteString("\x1bPq")
}

// Pass appends one data string codepoint.
func (b *Builder) Pass(cp rune) {
	if cp < 0x80 {
		b.buf.WriteByte(byte(cp))
		return
	}
	b.buf.WriteRune(cp)
}

// Finalize decodes the buffered stream and delivers the pixmap. Decode
// failures are reported and produce no image.
func (b *Builder) Finalize() {
	b.buf.WriteString("\x1b\\")

	var img image.Image
	if err := sixel.NewDecoder(bytes.NewReader(b.buf.Bytes())).Decode(&img); err != nil {
		if b.onError != nil {
			b.onError(err)
		}
		return
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if b.maxSize.Width > 0 && width > b.maxSize.Width {
		width = b.maxSize.Width
	}
	if b.maxSize.Height > 0 && height > b.maxSize.Height {
		height = b.maxSize.Height
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	if !b.transparent {
		bg := image.NewUniform(gocolor.RGBA{
			R: b.background.R, G: b.background.G, B: b.background.B, A: 0xFF,
		})
		stddraw.Draw(rgba, rgba.Bounds(), bg, image.Point{}, stddraw.Src)
	}
	stddraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, stddraw.Over)

	if b.onComplete != nil {
		b.onComplete(screen.Size{Width: width, Height: height}, rgba.Pix)
	}
}
