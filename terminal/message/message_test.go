package message

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmpty(t *testing.T) {
	m := Parse("")
	assert.Equal(t, 0, m.HeaderCount())
	assert.Empty(t, m.Body())
}

func TestParseOneHeader(t *testing.T) {
	t.Run("without value", func(t *testing.T) {
		m := Parse("name=")
		v, ok := m.Header("name")
		require.True(t, ok)
		assert.Equal(t, "", v)
	})
	t.Run("with value", func(t *testing.T) {
		m := Parse("name=value")
		v, ok := m.Header("name")
		require.True(t, ok)
		assert.Equal(t, "value", v)
	})
}

func TestParseBase64Value(t *testing.T) {
	m := Parse("name=!" + base64.StdEncoding.EncodeToString([]byte("\x1b\x00\x07")))
	v, ok := m.Header("name")
	require.True(t, ok)
	assert.Equal(t, "\x1b\x00\x07", v)
}

func TestParseManyHeaders(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		m := Parse("name=value,name2=other")
		assert.Empty(t, m.Body())
		v1, ok1 := m.Header("name")
		v2, ok2 := m.Header("name2")
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, "value", v1)
		assert.Equal(t, "other", v2)
	})
	t.Run("mixed empty values", func(t *testing.T) {
		m := Parse("name=,name2=other")
		v1, ok1 := m.Header("name")
		v2, ok2 := m.Header("name2")
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, "", v1)
		assert.Equal(t, "other", v2)
	})
	t.Run("superfluous commas", func(t *testing.T) {
		m := Parse(",,,foo=text,,,bar=other,,,")
		assert.Equal(t, 2, m.HeaderCount())
		foo, _ := m.Header("foo")
		bar, _ := m.Header("bar")
		assert.Equal(t, "text", foo)
		assert.Equal(t, "other", bar)
	})
	t.Run("last writer wins", func(t *testing.T) {
		m := Parse("a=1,a=2")
		assert.Equal(t, 1, m.HeaderCount())
		v, _ := m.Header("a")
		assert.Equal(t, "2", v)
	})
}

func TestParseBody(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		m := Parse(";")
		assert.Equal(t, 0, m.HeaderCount())
		assert.Empty(t, m.Body())
	})
	t.Run("body only", func(t *testing.T) {
		m := Parse(";foo")
		assert.Equal(t, 0, m.HeaderCount())
		assert.Equal(t, []byte("foo"), m.Body())
	})
	t.Run("headers and body", func(t *testing.T) {
		m := Parse("a=A,bee=eeeh;foo")
		assert.Equal(t, []byte("foo"), m.Body())
		a, _ := m.Header("a")
		bee, _ := m.Header("bee")
		assert.Equal(t, "A", a)
		assert.Equal(t, "eeeh", bee)
	})
	t.Run("base64 body", func(t *testing.T) {
		m := Parse("a=A;!" + base64.StdEncoding.EncodeToString([]byte("abc")))
		assert.Equal(t, []byte("abc"), m.Body())
	})
	t.Run("trailing separator drops the pending header", func(t *testing.T) {
		// the ';' moves to body-start without flushing; with no body
		// byte following, the pending header never materializes
		m := Parse("a=A,late=value;")
		a, ok := m.Header("a")
		require.True(t, ok)
		assert.Equal(t, "A", a)
		_, ok = m.Header("late")
		assert.False(t, ok)
		assert.Empty(t, m.Body())
	})
	t.Run("separators inside body are data", func(t *testing.T) {
		m := Parse(";k=v,x;y")
		assert.Equal(t, []byte("k=v,x;y"), m.Body())
	})
}

func TestParserLimits(t *testing.T) {
	t.Run("key length", func(t *testing.T) {
		long := make([]byte, MaxKeyLength+10)
		for i := range long {
			long[i] = 'k'
		}
		m := Parse(string(long) + "=v")
		assert.Equal(t, 1, m.HeaderCount())
		v, ok := m.Header(string(long[:MaxKeyLength]))
		require.True(t, ok)
		assert.Equal(t, "v", v)
	})
	t.Run("param count", func(t *testing.T) {
		input := ""
		for i := 0; i < MaxParamCount+8; i++ {
			input += string(rune('a'+i%26)) + string(rune('a'+i/26)) + "=x,"
		}
		m := Parse(input)
		assert.Equal(t, MaxParamCount, m.HeaderCount())
	})
}

func TestParserIncremental(t *testing.T) {
	var result Message
	p := NewParser(func(m Message) { result = m })
	p.Start()
	for _, cp := range "a=foo,b=bar;body" {
		p.Pass(cp)
	}
	p.Finalize()

	a, _ := result.Header("a")
	b, _ := result.Header("b")
	assert.Equal(t, "foo", a)
	assert.Equal(t, "bar", b)
	assert.Equal(t, []byte("body"), result.Body())
}
