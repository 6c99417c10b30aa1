package sequencer

import (
	"unicode/utf8"

	"github.com/hnimtadd/vtio/terminal/color"
	"github.com/hnimtadd/vtio/terminal/functions"
	"github.com/hnimtadd/vtio/terminal/message"
	"github.com/hnimtadd/vtio/terminal/screen"
	"github.com/hnimtadd/vtio/terminal/sixel"
)

// Hook implements parser.Events. It resolves the device control string
// and installs the matching extension; the data string then flows to
// it via Put until Unhook finalizes it.
func (s *Sequencer) Hook(final byte) {
	s.instructionCounter++
	s.seq.SetCategory(functions.CategoryDCS)
	s.seq.SetFinal(final)

	def := s.seq.Definition()
	if def == nil {
		s.logger.Info("unknown DCS", "seq", s.seq.Text())
		return
	}

	switch def.ID {
	case functions.DECSIXEL:
		s.hooked = s.hookSixel()
	case functions.DECRQSS:
		s.hooked = s.hookStatusString()
	case functions.IMGUPLOAD:
		s.hooked = s.hookImageUpload()
	case functions.IMGRENDER:
		s.hooked = s.hookImageRender()
	case functions.IMGRELEASE:
		s.hooked = s.hookImageRelease()
	case functions.IMGONESHOT:
		s.hooked = s.hookImageOneshot()
	}

	if s.hooked != nil {
		s.hooked.Start()
	}
}

// hookSixel builds the Sixel glue for this image: aspect from Pa,
// transparency unless Pb is 1, and a private palette when the
// corresponding DEC mode is set.
func (s *Sequencer) hookSixel() extension {
	pa := int(s.seq.ParamOr(0, 1))
	pb := int(s.seq.ParamOr(1, 2))

	palette := s.imagePalette
	if s.usePrivateColorRegisters {
		palette = color.NewPalette()
	}

	builder := sixel.NewBuilder(sixel.Config{
		MaxSize:        s.maxImageSize,
		AspectVertical: sixel.AspectVertical(pa),
		Background:     s.backgroundColor,
		Transparent:    pb != 1,
		Palette:        palette,
		OnComplete: func(size screen.Size, rgba []byte) {
			if s.batching {
				s.enqueue(batchItem{kind: batchImage, size: size, rgba: rgba})
				return
			}
			s.screen.SixelImage(size, rgba)
		},
		OnError: func(err error) {
			s.logger.Warn("sixel decode failed", "err", err)
		},
	})
	s.sixelBuilder = builder
	return builder
}

// statusStringCollector accumulates the DECRQSS data string and
// resolves it on finalize.
type statusStringCollector struct {
	data     []byte
	finalize func(data string)
}

func (c *statusStringCollector) Start()       { c.data = c.data[:0] }
func (c *statusStringCollector) Pass(cp rune) { c.data = utf8.AppendRune(c.data, cp) }
func (c *statusStringCollector) Finalize()    { c.finalize(string(c.data)) }

// statusStringRequests is the closed set of valid DECRQSS keys. The
// data string must match one in full; anything else is dropped.
var statusStringRequests = map[string]screen.StatusString{
	"m":   screen.StatusStringSGR,
	"\"p": screen.StatusStringDECSCL,
	" q":  screen.StatusStringDECSCUSR,
	"\"q": screen.StatusStringDECSCA,
	"r":   screen.StatusStringDECSTBM,
	"s":   screen.StatusStringDECSLRM,
	"t":   screen.StatusStringDECSLPP,
	"$|":  screen.StatusStringDECSCPP,
	"*|":  screen.StatusStringDECSNLS,
}

func (s *Sequencer) hookStatusString() extension {
	return &statusStringCollector{
		finalize: func(data string) {
			if v, ok := statusStringRequests[data]; ok {
				s.screen.RequestStatusString(v)
				return
			}
			s.logger.Debug("unrecognized DECRQSS request", "data", data)
		},
	}
}

func headerNumber(m message.Message, key string, def int) int {
	value, ok := m.Header(key)
	if !ok {
		return def
	}
	result := 0
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return def
		}
		result = result*10 + int(value[i]-'0')
	}
	return result
}

func headerImageFormat(m message.Message) (screen.ImageFormat, bool) {
	value, ok := m.Header("f")
	if !ok {
		return screen.ImageFormatRGB, true
	}
	switch value {
	case "1":
		return screen.ImageFormatRGB, true
	case "2":
		return screen.ImageFormatRGBA, true
	case "3":
		return screen.ImageFormatPNG, true
	default:
		return 0, false
	}
}

func headerAlignment(m message.Message) (screen.ImageAlignment, bool) {
	value, ok := m.Header("a")
	if !ok {
		return screen.AlignMiddleCenter, true
	}
	if len(value) == 1 && value[0] >= '1' && value[0] <= '9' {
		return screen.ImageAlignment(value[0] - '0'), true
	}
	return 0, false
}

func headerResizePolicy(m message.Message) (screen.ImageResize, bool) {
	value, ok := m.Header("z")
	if !ok {
		return screen.ResizeNone, true
	}
	if len(value) == 1 && value[0] >= '0' && value[0] <= '3' {
		return screen.ImageResize(value[0] - '0'), true
	}
	return 0, false
}

func (s *Sequencer) hookImageUpload() extension {
	return message.NewParser(func(m message.Message) {
		name, haveName := m.Header("n")
		format, okFormat := headerImageFormat(m)
		width := headerNumber(m, "w", 0)
		height := headerNumber(m, "h", 0)

		// PNG bodies carry their own geometry; raw formats need one.
		valid := okFormat &&
			((format == screen.ImageFormatPNG && width == 0 && height == 0) ||
				(format != screen.ImageFormatPNG && width > 0 && height > 0))
		if !haveName || !valid {
			s.logger.Debug("dropping invalid image upload")
			return
		}
		s.screen.UploadImage(name, format, screen.Size{Width: width, Height: height}, m.Body())
	})
}

func (s *Sequencer) hookImageRender() extension {
	return message.NewParser(func(m message.Message) {
		name, _ := m.Header("n")
		rows := headerNumber(m, "r", 0)
		cols := headerNumber(m, "c", 0)
		x := headerNumber(m, "x", 0)
		y := headerNumber(m, "y", 0)
		width := headerNumber(m, "w", 0)
		height := headerNumber(m, "h", 0)
		align, okAlign := headerAlignment(m)
		resize, okResize := headerResizePolicy(m)
		_, requestStatus := m.Header("s")
		_, autoScroll := m.Header("l")
		if !okAlign || !okResize {
			s.logger.Debug("dropping invalid image render")
			return
		}
		s.screen.RenderImage(
			name,
			screen.Size{Width: cols, Height: rows},
			screen.Coordinate{Row: y, Col: x},
			screen.Size{Width: width, Height: height},
			align,
			resize,
			autoScroll,
			requestStatus,
		)
	})
}

func (s *Sequencer) hookImageRelease() extension {
	return message.NewParser(func(m message.Message) {
		if name, ok := m.Header("n"); ok {
			s.screen.ReleaseImage(name)
		}
	})
}

func (s *Sequencer) hookImageOneshot() extension {
	return message.NewParser(func(m message.Message) {
		format, okFormat := headerImageFormat(m)
		width := headerNumber(m, "w", 0)
		height := headerNumber(m, "h", 0)
		rows := headerNumber(m, "r", 0)
		cols := headerNumber(m, "c", 0)
		align, okAlign := headerAlignment(m)
		resize, okResize := headerResizePolicy(m)
		_, autoScroll := m.Header("l")
		if !okFormat || !okAlign || !okResize {
			s.logger.Debug("dropping invalid oneshot image render")
			return
		}
		s.screen.RenderImageData(
			format,
			screen.Size{Width: width, Height: height},
			m.Body(),
			screen.Size{Width: cols, Height: rows},
			align,
			resize,
			autoScroll,
		)
	})
}
