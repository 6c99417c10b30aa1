// Package sequence accumulates the fields of one VT function call as the
// byte parser reports them: leader, parameters with sub-parameters,
// intermediates, final byte and - for DCS - the data string.
package sequence

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hnimtadd/vtio/terminal/functions"
)

const (
	// MaxParameters bounds the number of ';'-separated parameter groups.
	MaxParameters = 16
	// MaxSubParameters bounds the ':'-separated values inside one group.
	MaxSubParameters = 8
	// MaxOscLength bounds the OSC payload in bytes. Excess input is
	// silently dropped; the truncated payload still dispatches.
	MaxOscLength = 8 * 1024
)

// Sequence is the unit of dispatch. It is built up incrementally and
// must be treated as immutable once handed to the dispatcher.
type Sequence struct {
	category      functions.Category
	leader        byte
	parameters    [][]uint16
	intermediates []byte
	final         byte
	data          []byte
}

func New() *Sequence {
	return &Sequence{
		parameters: make([][]uint16, 0, MaxParameters),
	}
}

// Clear resets every field so the value can accumulate the next
// sequence. The backing arrays are retained.
func (s *Sequence) Clear() {
	s.category = functions.CategoryC0
	s.leader = 0
	s.parameters = s.parameters[:0]
	s.intermediates = s.intermediates[:0]
	s.final = 0
	s.data = s.data[:0]
}

func (s *Sequence) SetCategory(c functions.Category) { s.category = c }
func (s *Sequence) Category() functions.Category     { return s.category }

func (s *Sequence) SetLeader(b byte) { s.leader = b }
func (s *Sequence) Leader() byte     { return s.leader }

func (s *Sequence) SetFinal(b byte) { s.final = b }
func (s *Sequence) Final() byte     { return s.final }

// Collect appends an intermediate byte. For OSC the same buffer holds
// the UTF-8 payload instead.
func (s *Sequence) Collect(b byte) {
	s.intermediates = append(s.intermediates, b)
}

func (s *Sequence) Intermediates() []byte { return s.intermediates }

// SetIntermediates replaces the intermediates buffer. Used when the OSC
// payload is split into code and remainder.
func (s *Sequence) SetIntermediates(b []byte) { s.intermediates = b }

// PutOSC appends the UTF-8 encoding of cp to the payload, dropping
// input past MaxOscLength.
func (s *Sequence) PutOSC(cp rune) {
	n := utf8.RuneLen(cp)
	if n < 0 {
		return
	}
	if len(s.intermediates)+n <= MaxOscLength {
		s.intermediates = utf8.AppendRune(s.intermediates, cp)
	}
}

// Param feeds one parameter byte: a digit, ';' (next group) or ':'
// (next sub-parameter). The first byte implicitly allocates the first
// group. Values saturate at 65535.
func (s *Sequence) Param(b byte) {
	if len(s.parameters) == 0 {
		s.parameters = append(s.parameters, []uint16{0})
	}
	switch b {
	case ';':
		if len(s.parameters) < MaxParameters {
			s.parameters = append(s.parameters, []uint16{0})
		}
	case ':':
		last := len(s.parameters) - 1
		if len(s.parameters[last]) < MaxSubParameters {
			s.parameters[last] = append(s.parameters[last], 0)
		}
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		group := s.parameters[len(s.parameters)-1]
		cur := &group[len(group)-1]
		v := uint32(*cur)*10 + uint32(b-'0')
		if v > math.MaxUint16 {
			v = math.MaxUint16
		}
		*cur = uint16(v)
	}
}

// PushParam appends a whole parameter group. Used for the OSC code.
func (s *Sequence) PushParam(v uint16) {
	if len(s.parameters) < MaxParameters {
		s.parameters = append(s.parameters, []uint16{v})
	}
}

func (s *Sequence) ParameterCount() int { return len(s.parameters) }

// SubparameterCount reports how many sub-parameters follow the first
// value of group index.
func (s *Sequence) SubparameterCount(index int) int {
	if index >= len(s.parameters) {
		return 0
	}
	return len(s.parameters[index]) - 1
}

// ParamAt returns the first value of group index. The group must exist.
func (s *Sequence) ParamAt(index int) uint16 {
	return s.parameters[index][0]
}

// Subparam returns sub-parameter subIndex of group index (0 is the
// first value after the group head).
func (s *Sequence) Subparam(index, subIndex int) uint16 {
	return s.parameters[index][subIndex+1]
}

// ParamOpt distinguishes an absent (or zero) parameter from a present
// one. A stored zero reports absent; callers rely on that only where
// zero historically means "use the default".
func (s *Sequence) ParamOpt(index int) (uint16, bool) {
	if index < len(s.parameters) && s.parameters[index][0] != 0 {
		return s.parameters[index][0], true
	}
	return 0, false
}

// ParamOr returns the parameter at index or def when absent or zero.
func (s *Sequence) ParamOr(index int, def uint16) uint16 {
	if v, ok := s.ParamOpt(index); ok {
		return v
	}
	return def
}

// ContainsParameter reports whether any group head equals v.
func (s *Sequence) ContainsParameter(v uint16) bool {
	for i := range s.parameters {
		if s.parameters[i][0] == v {
			return true
		}
	}
	return false
}

func (s *Sequence) Data() []byte        { return s.data }
func (s *Sequence) SetData(data []byte) { s.data = data }
func (s *Sequence) AppendData(b byte)   { s.data = append(s.data, b) }

// Selector derives the function table lookup key. OSC selects by its
// leading code; everything else by leader/intermediate/final shape.
// Only sequences with zero or one intermediate byte are selectable.
func (s *Sequence) Selector() functions.Selector {
	if s.category == functions.CategoryOSC {
		code := 0
		if len(s.parameters) > 0 {
			code = int(s.parameters[0][0])
		}
		return functions.Selector{Category: functions.CategoryOSC, Argc: code}
	}
	var intermediate byte
	if len(s.intermediates) == 1 {
		intermediate = s.intermediates[0]
	}
	return functions.Selector{
		Category:     s.category,
		Leader:       s.leader,
		Argc:         len(s.parameters),
		Intermediate: intermediate,
		Final:        s.final,
	}
}

// Definition resolves the sequence against the function table.
func (s *Sequence) Definition() *functions.Definition {
	if s.category != functions.CategoryOSC && len(s.intermediates) > 1 {
		return nil
	}
	return functions.Select(s.Selector())
}

// Clone deep-copies the sequence so it can outlive the accumulator,
// e.g. on the synchronized-output queue.
func (s *Sequence) Clone() *Sequence {
	c := &Sequence{
		category:      s.category,
		leader:        s.leader,
		final:         s.final,
		parameters:    make([][]uint16, len(s.parameters)),
		intermediates: append([]byte(nil), s.intermediates...),
		data:          append([]byte(nil), s.data...),
	}
	for i, group := range s.parameters {
		c.parameters[i] = append([]uint16(nil), group...)
	}
	return c
}

// Raw reconstructs the byte form of the sequence. Numeric parameters
// normalize (leading zeros are not preserved).
func (s *Sequence) Raw() string {
	var sb strings.Builder
	switch s.category {
	case functions.CategoryC0:
	case functions.CategoryESC:
		sb.WriteString("\x1b")
	case functions.CategoryCSI:
		sb.WriteString("\x1b[")
	case functions.CategoryDCS:
		sb.WriteString("\x1bP")
	case functions.CategoryOSC:
		sb.WriteString("\x1b]")
	}
	if s.category == functions.CategoryOSC {
		if len(s.parameters) > 0 {
			sb.WriteString(strconv.Itoa(int(s.parameters[0][0])))
			if len(s.intermediates) > 0 {
				sb.WriteByte(';')
			}
		}
		sb.Write(s.intermediates)
		sb.WriteString("\x1b\\")
		return sb.String()
	}
	if s.leader != 0 {
		sb.WriteByte(s.leader)
	}
	if len(s.parameters) > 1 || (len(s.parameters) == 1 && s.parameters[0][0] != 0) {
		for i, group := range s.parameters {
			if i > 0 {
				sb.WriteByte(';')
			}
			for k, v := range group {
				if k > 0 {
					sb.WriteByte(':')
				}
				sb.WriteString(strconv.Itoa(int(v)))
			}
		}
	}
	sb.Write(s.intermediates)
	if s.final != 0 {
		sb.WriteByte(s.final)
	}
	if len(s.data) > 0 {
		sb.Write(s.data)
		sb.WriteString("\x1b\\")
	}
	return sb.String()
}

// Text renders a human readable form for diagnostics.
func (s *Sequence) Text() string {
	var sb strings.Builder
	sb.WriteString(s.category.String())
	if s.leader != 0 {
		sb.WriteByte(' ')
		sb.WriteByte(s.leader)
	}
	if len(s.parameters) > 1 || (len(s.parameters) == 1 && s.parameters[0][0] != 0) {
		sb.WriteByte(' ')
		for i, group := range s.parameters {
			if i > 0 {
				sb.WriteByte(';')
			}
			for k, v := range group {
				if k > 0 {
					sb.WriteByte(':')
				}
				sb.WriteString(strconv.Itoa(int(v)))
			}
		}
	}
	if len(s.intermediates) > 0 {
		sb.WriteByte(' ')
		sb.Write(s.intermediates)
	}
	if s.final != 0 {
		sb.WriteByte(' ')
		sb.WriteByte(s.final)
	}
	if len(s.data) > 0 {
		sb.WriteString(" \"")
		sb.Write(s.data)
		sb.WriteString("\" ST")
	}
	return sb.String()
}

func (s *Sequence) String() string { return s.Text() }
