package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures every event in call order.
type recorder struct {
	calls []string
}

func (r *recorder) rec(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Print(cp rune)          { r.rec("print(%q)", cp) }
func (r *recorder) Execute(b byte)         { r.rec("execute(0x%02X)", b) }
func (r *recorder) Clear()                 { r.rec("clear") }
func (r *recorder) Collect(b byte)         { r.rec("collect(%c)", b) }
func (r *recorder) CollectLeader(b byte)   { r.rec("leader(%c)", b) }
func (r *recorder) Param(b byte)           { r.rec("param(%c)", b) }
func (r *recorder) DispatchESC(final byte) { r.rec("esc(%c)", final) }
func (r *recorder) DispatchCSI(final byte) { r.rec("csi(%c)", final) }
func (r *recorder) StartOSC()              { r.rec("oscStart") }
func (r *recorder) PutOSC(cp rune)         { r.rec("oscPut(%q)", cp) }
func (r *recorder) DispatchOSC()           { r.rec("oscEnd") }
func (r *recorder) Hook(final byte)        { r.rec("hook(%c)", final) }
func (r *recorder) Put(cp rune)            { r.rec("put(%q)", cp) }
func (r *recorder) Unhook()                { r.rec("unhook") }
func (r *recorder) Error(msg string)       { r.rec("error") }

func parseAll(t *testing.T, input string) *recorder {
	t.Helper()
	events := &recorder{}
	p := New(events)
	p.Parse([]byte(input))
	assert.Equal(t, StateGround, p.State())
	return events
}

// Entering Escape clears, and entering CSI/DCS entry clears again, so
// every 7-bit introducer shows up as a "clear" pair below.
func TestParserCSI(t *testing.T) {
	tcs := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:  "no parameters",
			input: "\x1b[m",
			expected: []string{
				"clear", "clear", "csi(m)",
			},
		},
		{
			name:  "parameters and subparameters",
			input: "\x1b[38:2:5m",
			expected: []string{
				"clear", "clear",
				"param(3)", "param(8)", "param(:)", "param(2)", "param(:)", "param(5)",
				"csi(m)",
			},
		},
		{
			name:  "private leader",
			input: "\x1b[?25h",
			expected: []string{
				"clear", "clear", "leader(?)", "param(2)", "param(5)", "csi(h)",
			},
		},
		{
			name:  "intermediate",
			input: "\x1b[1$p",
			expected: []string{
				"clear", "clear", "param(1)", "collect($)", "csi(p)",
			},
		},
		{
			name:  "C0 executes inside CSI",
			input: "\x1b[1\n2J",
			expected: []string{
				"clear", "clear", "param(1)", "execute(0x0A)", "param(2)", "csi(J)",
			},
		},
		{
			name:  "aborted by new sequence",
			input: "\x1b[3;1\x1b[2J",
			expected: []string{
				"clear", "clear", "param(3)", "param(;)", "param(1)",
				"clear", "clear", "param(2)", "csi(J)",
			},
		},
		{
			name:  "malformed goes to csi ignore",
			input: "\x1b[1;?x",
			expected: []string{
				"clear", "clear", "param(1)", "param(;)",
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			events := parseAll(t, tc.input)
			assert.Equal(t, tc.expected, events.calls)
		})
	}
}

func TestParserESC(t *testing.T) {
	events := parseAll(t, "\x1b(B\x1bM")
	assert.Equal(t, []string{
		"clear", "collect(()", "esc(B)",
		"clear", "esc(M)",
	}, events.calls)
}

func TestParserPrintUTF8(t *testing.T) {
	events := parseAll(t, "hé\xff!")
	assert.Equal(t, []string{
		"print('h')", "print('é')", "print('�')", "print('!')",
	}, events.calls)
}

func TestParserOSC(t *testing.T) {
	t.Run("terminated by ST", func(t *testing.T) {
		events := parseAll(t, "\x1b]0;hi\x1b\\")
		assert.Equal(t, []string{
			"clear", "oscStart",
			"oscPut('0')", "oscPut(';')", "oscPut('h')", "oscPut('i')",
			"oscEnd", "clear",
		}, events.calls)
	})

	t.Run("terminated by BEL", func(t *testing.T) {
		events := parseAll(t, "\x1b]0;hi\x07")
		assert.Equal(t, []string{
			"clear", "oscStart",
			"oscPut('0')", "oscPut(';')", "oscPut('h')", "oscPut('i')",
			"oscEnd",
		}, events.calls)
	})
}

func TestParserDCS(t *testing.T) {
	events := parseAll(t, "\x1bP1;2q#0ab\x1b\\")
	assert.Equal(t, []string{
		"clear", "clear",
		"param(1)", "param(;)", "param(2)",
		"hook(q)",
		"put('#')", "put('0')", "put('a')", "put('b')",
		"unhook", "clear",
	}, events.calls)
}

func TestParserSosPmApcIgnored(t *testing.T) {
	events := parseAll(t, "\x1bXsecret\x1b\\x")
	assert.Equal(t, []string{"clear", "clear", "print('x')"}, events.calls)
}

func TestParserSplitInputEquivalence(t *testing.T) {
	input := "\x1b[?2026hä\x1b]8;id=x;https://y\x1b\\\x1bP$qm\x1b\\done\x1b[0m"

	whole := &recorder{}
	p := New(whole)
	p.Parse([]byte(input))

	for split := 1; split < len(input); split++ {
		halves := &recorder{}
		q := New(halves)
		q.Parse([]byte(input[:split]))
		q.Parse([]byte(input[split:]))
		require.Equal(t, whole.calls, halves.calls, "split at byte %d diverges", split)
	}
}

func TestParserInvalidTransitionRecovers(t *testing.T) {
	events := &recorder{}
	p := New(events)
	// 0x99 (a C1 control) has no transition defined anywhere.
	p.ProcessInput(0x99)
	assert.Equal(t, []string{"error"}, events.calls)
	assert.Equal(t, StateGround, p.State())

	p.Parse([]byte("ok"))
	assert.Equal(t, []string{"error", "print('o')", "print('k')"}, events.calls)
}

func TestParserNeverPanics(t *testing.T) {
	events := &recorder{}
	p := New(events)
	for b := 0; b < 256; b++ {
		for c := 0; c < 256; c += 17 {
			p.Parse([]byte{byte(b), byte(c)})
		}
	}
	// Still in a reachable state and accepting input.
	p.Reset()
	p.Parse([]byte("fin"))
}
