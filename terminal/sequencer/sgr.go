package sequencer

import (
	"github.com/hnimtadd/vtio/terminal/color"
	"github.com/hnimtadd/vtio/terminal/screen"
	"github.com/hnimtadd/vtio/terminal/sequence"
)

// dispatchSGR walks the parameter groups of an SGR sequence left to
// right. An empty parameter list acts like a single 0.
func (s *Sequencer) dispatchSGR(seq *sequence.Sequence) ApplyResult {
	if seq.ParameterCount() == 0 {
		s.screen.SetGraphicsRendition(screen.RenditionReset)
		return ApplyOk
	}

	for i := 0; i < seq.ParameterCount(); i++ {
		switch p := seq.ParamAt(i); p {
		case 0:
			s.screen.SetGraphicsRendition(screen.RenditionReset)
		case 1:
			s.screen.SetGraphicsRendition(screen.RenditionBold)
		case 2:
			s.screen.SetGraphicsRendition(screen.RenditionFaint)
		case 3:
			s.screen.SetGraphicsRendition(screen.RenditionItalic)
		case 4:
			s.screen.SetGraphicsRendition(underlineVariant(seq, i))
		case 5:
			s.screen.SetGraphicsRendition(screen.RenditionBlinking)
		case 7:
			s.screen.SetGraphicsRendition(screen.RenditionInverse)
		case 8:
			s.screen.SetGraphicsRendition(screen.RenditionHidden)
		case 9:
			s.screen.SetGraphicsRendition(screen.RenditionCrossedOut)
		case 21:
			s.screen.SetGraphicsRendition(screen.RenditionDoublyUnderlined)
		case 22:
			s.screen.SetGraphicsRendition(screen.RenditionNormal)
		case 23:
			s.screen.SetGraphicsRendition(screen.RenditionNoItalic)
		case 24:
			s.screen.SetGraphicsRendition(screen.RenditionNoUnderline)
		case 25:
			s.screen.SetGraphicsRendition(screen.RenditionNoBlinking)
		case 27:
			s.screen.SetGraphicsRendition(screen.RenditionNoInverse)
		case 28:
			s.screen.SetGraphicsRendition(screen.RenditionNoHidden)
		case 29:
			s.screen.SetGraphicsRendition(screen.RenditionNoCrossedOut)
		case 30, 31, 32, 33, 34, 35, 36, 37:
			s.screen.SetForegroundColor(color.Indexed(uint8(p - 30)))
		case 38:
			s.screen.SetForegroundColor(s.parseColorArg(seq, &i))
		case 39:
			s.screen.SetForegroundColor(color.Default())
		case 40, 41, 42, 43, 44, 45, 46, 47:
			s.screen.SetBackgroundColor(color.Indexed(uint8(p - 40)))
		case 48:
			s.screen.SetBackgroundColor(s.parseColorArg(seq, &i))
		case 49:
			s.screen.SetBackgroundColor(color.Default())
		case 51:
			s.screen.SetGraphicsRendition(screen.RenditionFramed)
		case 53:
			s.screen.SetGraphicsRendition(screen.RenditionOverline)
		case 54:
			s.screen.SetGraphicsRendition(screen.RenditionNoFramed)
		case 55:
			s.screen.SetGraphicsRendition(screen.RenditionNoOverline)
		case 58:
			// Reserved, but commonly used for underline coloring.
			s.screen.SetUnderlineColor(s.parseColorArg(seq, &i))
		case 90, 91, 92, 93, 94, 95, 96, 97:
			s.screen.SetForegroundColor(color.Bright(uint8(p - 90)))
		case 100, 101, 102, 103, 104, 105, 106, 107:
			s.screen.SetBackgroundColor(color.Bright(uint8(p - 100)))
		default:
			s.logger.Debug("unknown SGR code", "code", p)
		}
	}
	return ApplyOk
}

// underlineVariant resolves SGR 4 with an optional sub-parameter
// selecting the underline style; an absent sub-parameter means single.
func underlineVariant(seq *sequence.Sequence, index int) screen.GraphicsRendition {
	if seq.SubparameterCount(index) != 1 {
		return screen.RenditionUnderline
	}
	switch seq.Subparam(index, 0) {
	case 0:
		return screen.RenditionNoUnderline
	case 1:
		return screen.RenditionUnderline
	case 2:
		return screen.RenditionDoublyUnderlined
	case 3:
		return screen.RenditionCurlyUnderlined
	case 4:
		return screen.RenditionDottedUnderline
	case 5:
		return screen.RenditionDashedUnderline
	default:
		return screen.RenditionUnderline
	}
}

// parseColorArg consumes the color argument following SGR 38/48/58.
//
// Two forms exist and the choice is exclusive: if the SGR argument
// itself carries sub-parameters the colon form applies
// ("38:2:R:G:B", "38:5:P", and "38:2::R:G:B" with an empty colorspace
// slot); otherwise the following parameter groups are consumed
// ("38;2;R;G;B", "38;5;P"). The index is left at the last consumed
// position so the walker resumes correctly. Any out-of-range channel
// yields Default.
func (s *Sequencer) parseColorArg(seq *sequence.Sequence, pi *int) color.Color {
	i := *pi

	if seq.SubparameterCount(i) >= 1 {
		switch seq.Subparam(i, 0) {
		case 2:
			switch seq.SubparameterCount(i) {
			case 4: // 38:2:R:G:B
				r, g, b := seq.Subparam(i, 1), seq.Subparam(i, 2), seq.Subparam(i, 3)
				if r <= 255 && g <= 255 && b <= 255 {
					return color.FromRGB(uint8(r), uint8(g), uint8(b))
				}
			case 5: // 38:2::R:G:B, colorspace slot present but empty
				r, g, b := seq.Subparam(i, 2), seq.Subparam(i, 3), seq.Subparam(i, 4)
				if r <= 255 && g <= 255 && b <= 255 {
					return color.FromRGB(uint8(r), uint8(g), uint8(b))
				}
			}
		case 5: // 38:5:P
			if seq.SubparameterCount(i) >= 2 {
				if p := seq.Subparam(i, 1); p <= 255 {
					return color.Indexed(uint8(p))
				}
			}
		}
		s.logger.Debug("invalid color argument", "seq", seq.Text())
		return color.Default()
	}

	if i+1 >= seq.ParameterCount() {
		s.logger.Debug("missing color mode", "seq", seq.Text())
		return color.Default()
	}

	i++
	switch seq.ParamAt(i) {
	case 5:
		if i+1 < seq.ParameterCount() {
			i++
			*pi = i
			if p := seq.ParamAt(i); p <= 255 {
				return color.Indexed(uint8(p))
			}
			s.logger.Debug("color index out of range", "seq", seq.Text())
		} else {
			*pi = i
			s.logger.Debug("missing color index", "seq", seq.Text())
		}
	case 2:
		if i+3 < seq.ParameterCount() {
			r, g, b := seq.ParamAt(i+1), seq.ParamAt(i+2), seq.ParamAt(i+3)
			i += 3
			*pi = i
			if r <= 255 && g <= 255 && b <= 255 {
				return color.FromRGB(uint8(r), uint8(g), uint8(b))
			}
			s.logger.Debug("RGB channel out of range", "seq", seq.Text())
		} else {
			*pi = i
			s.logger.Debug("truncated RGB color", "seq", seq.Text())
		}
	default:
		*pi = i
		s.logger.Debug("invalid color mode", "seq", seq.Text())
	}
	return color.Default()
}
