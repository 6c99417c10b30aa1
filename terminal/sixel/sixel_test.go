package sixel

import (
	"testing"

	"github.com/hnimtadd/vtio/terminal/color"
	"github.com/hnimtadd/vtio/terminal/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAspectVertical(t *testing.T) {
	tcs := []struct {
		pa       int
		expected int
	}{
		{0, 2}, {1, 2},
		{2, 5},
		{3, 3}, {4, 3},
		{5, 2}, {6, 2},
		{7, 1}, {8, 1}, {9, 1},
		{42, 2}, // out of range falls back to the default
	}
	for _, tc := range tcs {
		assert.Equal(t, tc.expected, AspectVertical(tc.pa), "Pa=%d", tc.pa)
	}
}

func TestBuilderConfig(t *testing.T) {
	palette := color.NewPalette()
	b := NewBuilder(Config{
		MaxSize:        screen.Size{Width: 100, Height: 100},
		AspectVertical: 5,
		Transparent:    true,
		Palette:        palette,
	})
	assert.Equal(t, 5, b.AspectVertical())
	assert.Equal(t, 1, b.AspectHorizontal())
	assert.True(t, b.Transparent())
	assert.Same(t, palette, b.Palette())
}

func TestBuilderDecodesImage(t *testing.T) {
	var gotSize screen.Size
	var gotRGBA []byte
	completed := false

	b := NewBuilder(Config{
		MaxSize:        screen.Size{Width: 800, Height: 600},
		AspectVertical: 1,
		Transparent:    false,
		Background:     color.RGB{R: 1, G: 2, B: 3},
		Palette:        color.NewPalette(),
		OnComplete: func(size screen.Size, rgba []byte) {
			completed = true
			gotSize = size
			gotRGBA = rgba
		},
	})

	// a 2x6 red block: one color register, two sixel columns of full
	// height
	b.Start()
	for _, cp := range "#0;2;100;0;0#0~~" {
		b.Pass(cp)
	}
	b.Finalize()

	require.True(t, completed, "decoder should deliver an image")
	assert.GreaterOrEqual(t, gotSize.Width, 2)
	assert.GreaterOrEqual(t, gotSize.Height, 6)
	assert.Len(t, gotRGBA, gotSize.Width*gotSize.Height*4)
	// first pixel is the registered color (100% red)
	assert.EqualValues(t, 0xFF, gotRGBA[0])
	assert.EqualValues(t, 0x00, gotRGBA[1])
	assert.EqualValues(t, 0x00, gotRGBA[2])
}

func TestBuilderClampsToMaxSize(t *testing.T) {
	var gotSize screen.Size
	b := NewBuilder(Config{
		MaxSize:        screen.Size{Width: 1, Height: 3},
		AspectVertical: 1,
		Transparent:    true,
		Palette:        color.NewPalette(),
		OnComplete: func(size screen.Size, rgba []byte) {
			gotSize = size
		},
	})
	b.Start()
	for _, cp := range "#0;2;100;0;0#0~~" {
		b.Pass(cp)
	}
	b.Finalize()
	assert.Equal(t, screen.Size{Width: 1, Height: 3}, gotSize)
}

func TestBuilderNeverBothCompletesAndFails(t *testing.T) {
	completed := false
	failed := false
	b := NewBuilder(Config{
		Palette:    color.NewPalette(),
		OnComplete: func(screen.Size, []byte) { completed = true },
		OnError:    func(error) { failed = true },
	})
	b.Start()
	// odd input either decodes to an image or reports an error, never
	// both, and nothing may panic
	for _, cp := range "\x01\x02garbage" {
		b.Pass(cp)
	}
	b.Finalize()
	assert.False(t, completed && failed)
}

func TestBuilderRestartDropsOldData(t *testing.T) {
	delivered := 0
	b := NewBuilder(Config{
		AspectVertical: 1,
		Transparent:    true,
		Palette:        color.NewPalette(),
		OnComplete:     func(screen.Size, []byte) { delivered++ },
	})
	b.Start()
	for _, cp := range "#0;2;0;0;100#0~" {
		b.Pass(cp)
	}
	b.Finalize()
	first := delivered

	b.Start()
	for _, cp := range "#0;2;0;100;0#0~" {
		b.Pass(cp)
	}
	b.Finalize()
	assert.Equal(t, first+1, delivered)
}
