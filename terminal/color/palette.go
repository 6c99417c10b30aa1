package color

import "github.com/hnimtadd/vtio/terminal/utils"

// Palette is the 256 color palette.
type Palette [256]RGB

// NewPalette returns a fresh palette initialized to the defaults.
func NewPalette() *Palette {
	p := Palette(DefaultPalette)
	return &p
}

var DefaultPalette = func() [256]RGB {
	var result [256]RGB

	// Named values:
	var i int
	for ; i < 16; i++ {
		result[i] = namedDefault(uint8(i))
	}
	utils.Assert(i == 16)

	// Cube
	var r, g, b uint8
	for r = 0; r < 6; r++ {
		for g = 0; g < 6; g++ {
			for b = 0; b < 6; b++ {
				rgb := RGB{}
				if r > 0 {
					rgb.R = r*40 + 55
				}
				if g > 0 {
					rgb.G = g*40 + 55
				}
				if b > 0 {
					rgb.B = b*40 + 55
				}
				result[i] = rgb
				i++
			}
		}
	}

	// Gray ramp
	utils.Assert(i == 232) // 16+6*6*6
	for ; i < 256; i++ {
		value := uint8(i-232)*10 + 8
		result[i] = RGB{value, value, value}
	}

	return result
}()

func namedDefault(index uint8) RGB {
	switch index {
	case 0:
		return RGB{0x1D, 0x1F, 0x21}
	case 1:
		return RGB{0xCC, 0x66, 0x66}
	case 2:
		return RGB{0xB5, 0xBD, 0x68}
	case 3:
		return RGB{0xF0, 0xC6, 0x74}
	case 4:
		return RGB{0x81, 0xA2, 0xBE}
	case 5:
		return RGB{0xB2, 0x94, 0xC7}
	case 6:
		return RGB{0x8C, 0xC3, 0xE9}
	case 7:
		return RGB{0xC5, 0xC8, 0xC6}
	case 8:
		return RGB{0x7C, 0x7C, 0x7C}
	case 9:
		return RGB{0xFF, 0x8F, 0x8F}
	case 10:
		return RGB{0xB5, 0xBD, 0x68}
	case 11:
		return RGB{0xF0, 0xC6, 0x74}
	case 12:
		return RGB{0x81, 0xA2, 0xBE}
	case 13:
		return RGB{0xB2, 0x94, 0xC7}
	case 14:
		return RGB{0x8C, 0xC3, 0xE9}
	case 15:
		return RGB{0xFF, 0xFF, 0xFF}
	default:
		return RGB{}
	}
}
