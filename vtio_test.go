package vtio

import (
	"strings"
	"testing"

	"github.com/hnimtadd/vtio/terminal/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureListener struct {
	screen.NullListener
	replies []string
	bells   int
}

func (l *captureListener) Reply(data []byte) { l.replies = append(l.replies, string(data)) }
func (l *captureListener) Bell()             { l.bells++ }

func TestInterpretPlainText(t *testing.T) {
	v := New(Options{Rows: 4, Cols: 10})
	n, err := v.Write([]byte("hello\r\nworld"))
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Equal(t, "hello\nworld\n\n", v.Snapshot())
}

func TestInterpretCursorAndErase(t *testing.T) {
	v := New(Options{Rows: 4, Cols: 10})
	_, err := v.Write([]byte("junkjunk\x1b[2J\x1b[2;3HX"))
	require.NoError(t, err)
	lines := strings.Split(v.Snapshot(), "\n")
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "  X", lines[1])
}

func TestInterpretColorsAndAttributes(t *testing.T) {
	v := New(Options{Rows: 2, Cols: 20})
	_, err := v.Write([]byte("\x1b[1;38;2;10;20;30mhi"))
	require.NoError(t, err)

	mem := v.Screen().(*screen.Memory)
	cell := mem.Cell(1, 1)
	assert.True(t, cell.Style.Bold)
	assert.EqualValues(t, 10, cell.Style.ForegroundColor.RGB.R)
}

func TestSynchronizedOutputEndToEnd(t *testing.T) {
	v := New(Options{Rows: 4, Cols: 10})
	_, _ = v.Write([]byte("old"))

	// inside the batch nothing changes yet
	_, _ = v.Write([]byte("\x1b[?2026h\x1b[2J\x1b[1;1Hnew"))
	assert.Contains(t, v.Snapshot(), "old")
	assert.NotContains(t, v.Snapshot(), "new")

	_, _ = v.Write([]byte("\x1b[?2026l"))
	assert.NotContains(t, v.Snapshot(), "old")
	assert.Contains(t, v.Snapshot(), "new")
}

func TestRepliesFlowThroughListener(t *testing.T) {
	listener := &captureListener{}
	v := New(Options{Rows: 24, Cols: 80, Listener: listener})
	_, _ = v.Write([]byte("\x1b[3;4H\x1b[6n\x07"))
	assert.Equal(t, []string{"\x1b[3;4R"}, listener.replies)
	assert.Equal(t, 1, listener.bells)
}

func TestWindowTitle(t *testing.T) {
	v := New(Options{Rows: 2, Cols: 10})
	_, _ = v.Write([]byte("\x1b]2;my title\x07"))
	mem := v.Screen().(*screen.Memory)
	assert.Equal(t, "my title", mem.Title())
}

func TestResetAbandonsPartialSequence(t *testing.T) {
	v := New(Options{Rows: 2, Cols: 10})
	_, _ = v.Write([]byte("\x1b[12;3"))
	v.Reset()
	_, _ = v.Write([]byte("ok"))
	assert.Contains(t, v.Snapshot(), "ok")
}

func TestArbitraryInputNeverFails(t *testing.T) {
	v := New(Options{Rows: 4, Cols: 10})
	for b := 0; b < 256; b++ {
		_, err := v.Write([]byte{0x1b, byte(b), byte(b), 0x41})
		require.NoError(t, err)
	}
}
