// Package style tracks the graphics rendition state a cell is written
// with.
package style

import (
	"fmt"

	"github.com/hnimtadd/vtio/terminal/color"
	"github.com/hnimtadd/vtio/terminal/utils"
	"github.com/mitchellh/hashstructure/v2"
)

type UnderlineType uint8

const (
	UnderlineNone UnderlineType = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// Style attribute for a cell.
type Style struct {
	ForegroundColor color.Color
	BackgroundColor color.Color
	UnderlineColor  color.Color

	Bold          bool
	Faint         bool
	Italic        bool
	Blink         bool
	Inverse       bool
	Invisible     bool
	Strikethrough bool
	Framed        bool
	Overline      bool
	Underline     UnderlineType
}

func (s *Style) Reset() {
	*s = Style{}
}

func (s *Style) IsDefault() bool {
	return *s == Style{}
}

// Hash returns a stable identity for the style. The reference screen
// uses it to detect attribute changes between writes without comparing
// field by field.
func (s Style) Hash() uint64 {
	hashed, err := hashstructure.Hash(s, hashstructure.FormatV2, nil)
	utils.Assert(err == nil, fmt.Sprintf("failed to hash style: %v", err))
	return hashed
}
