package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSGRBasicAttributes(t *testing.T) {
	tcs := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty acts like reset",
			input:    "\x1b[m",
			expected: []string{"setGraphicsRendition(0)"},
		},
		{
			name:     "explicit reset",
			input:    "\x1b[0m",
			expected: []string{"setGraphicsRendition(0)"},
		},
		{
			name:  "several codes in one sequence",
			input: "\x1b[1;3;4m",
			expected: []string{
				"setGraphicsRendition(1)", // bold
				"setGraphicsRendition(3)", // italic
				"setGraphicsRendition(4)", // underline
			},
		},
		{
			name:     "negations",
			input:    "\x1b[22;24m",
			expected: []string{"setGraphicsRendition(15)", "setGraphicsRendition(17)"},
		},
		{
			name:     "doubly underlined",
			input:    "\x1b[21m",
			expected: []string{"setGraphicsRendition(9)"},
		},
		{
			name:     "unknown codes are skipped",
			input:    "\x1b[6;1m",
			expected: []string{"setGraphicsRendition(1)"},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, scr, p := newTestSequencer()
			feedString(p, tc.input)
			assert.Equal(t, tc.expected, scr.calls)
		})
	}
}

func TestSGRUnderlineVariants(t *testing.T) {
	tcs := []struct {
		input    string
		expected string
	}{
		{"\x1b[4m", "setGraphicsRendition(4)"},    // single
		{"\x1b[4:0m", "setGraphicsRendition(17)"}, // none
		{"\x1b[4:1m", "setGraphicsRendition(4)"},  // single
		{"\x1b[4:2m", "setGraphicsRendition(9)"},  // double
		{"\x1b[4:3m", "setGraphicsRendition(10)"}, // curly
		{"\x1b[4:4m", "setGraphicsRendition(11)"}, // dotted
		{"\x1b[4:5m", "setGraphicsRendition(12)"}, // dashed
		{"\x1b[4:9m", "setGraphicsRendition(4)"},  // unknown variant renders single
	}
	for _, tc := range tcs {
		_, scr, p := newTestSequencer()
		feedString(p, tc.input)
		assert.Equal(t, []string{tc.expected}, scr.calls, "input %q", tc.input)
	}
}

func TestSGRIndexedAndBrightColors(t *testing.T) {
	_, scr, p := newTestSequencer()
	feedString(p, "\x1b[31;42;97;104;39;49m")
	assert.Equal(t, []string{
		"setForegroundColor(Indexed(1))",
		"setBackgroundColor(Indexed(2))",
		"setForegroundColor(Bright(7))",
		"setBackgroundColor(Bright(4))",
		"setForegroundColor(Default)",
		"setBackgroundColor(Default)",
	}, scr.calls)
}

func TestSGRColorArguments(t *testing.T) {
	tcs := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "RGB semicolon form",
			input:    "\x1b[38;2;10;20;30m",
			expected: []string{"setForegroundColor(RGB(10,20,30))"},
		},
		{
			name:     "RGB colon form",
			input:    "\x1b[38:2:10:20:30m",
			expected: []string{"setForegroundColor(RGB(10,20,30))"},
		},
		{
			name:     "RGB colon form with colorspace slot",
			input:    "\x1b[38:2::10:20:30m",
			expected: []string{"setForegroundColor(RGB(10,20,30))"},
		},
		{
			name:     "indexed semicolon form",
			input:    "\x1b[38;5;196m",
			expected: []string{"setForegroundColor(Indexed(196))"},
		},
		{
			name:     "indexed colon form",
			input:    "\x1b[38:5:7m",
			expected: []string{"setForegroundColor(Indexed(7))"},
		},
		{
			name:     "background RGB",
			input:    "\x1b[48;2;1;2;3m",
			expected: []string{"setBackgroundColor(RGB(1,2,3))"},
		},
		{
			name:     "underline color",
			input:    "\x1b[58:2:200:100:50m",
			expected: []string{"setUnderlineColor(RGB(200,100,50))"},
		},
		{
			name:     "out of range channel yields default",
			input:    "\x1b[38;2;300;0;0m",
			expected: []string{"setForegroundColor(Default)"},
		},
		{
			name:     "truncated argument yields default",
			input:    "\x1b[38;2;10m",
			expected: []string{"setForegroundColor(Default)"},
		},
		{
			name:     "missing mode yields default",
			input:    "\x1b[38m",
			expected: []string{"setForegroundColor(Default)"},
		},
		{
			name:  "walker resumes after the color argument",
			input: "\x1b[38;2;1;2;3;1m",
			expected: []string{
				"setForegroundColor(RGB(1,2,3))",
				"setGraphicsRendition(1)",
			},
		},
		{
			name:  "walker resumes after colon form",
			input: "\x1b[38:2:1:2:3;1m",
			expected: []string{
				"setForegroundColor(RGB(1,2,3))",
				"setGraphicsRendition(1)",
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, scr, p := newTestSequencer()
			feedString(p, tc.input)
			assert.Equal(t, tc.expected, scr.calls)
		})
	}
}

func TestSGRColorParsingIsTotal(t *testing.T) {
	// Every in-range RGB triple parses; sample the space.
	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 85 {
			for b := 0; b <= 255; b += 85 {
				_, scr, p := newTestSequencer()
				p.Parse([]byte("\x1b[38;2;" +
					itoa(r) + ";" + itoa(g) + ";" + itoa(b) + "m"))
				assert.Equal(t,
					[]string{"setForegroundColor(RGB(" + itoa(r) + "," + itoa(g) + "," + itoa(b) + "))"},
					scr.calls)
			}
		}
	}
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	digits := []byte{}
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	return string(digits)
}
