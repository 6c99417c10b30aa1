package core

import "maps"

// Mode enumerates the terminal modes this interpreter understands, both
// ANSI (SM/RM) and DEC private (DECSM/DECRM) ones. Every mode carries a
// two-valued state: set or reset.
type Mode int

const (
	// ANSI modes
	ModeKeyboardAction Mode = iota
	ModeInsert
	ModeSendReceive
	ModeAutomaticNewLine

	// DEC private modes
	ModeUseApplicationCursorKeys
	ModeDesignateCharsetUSASCII
	ModeColumns132
	ModeSmoothScroll
	ModeReverseVideo

	// DECOM. When set, the home position is the upper-left corner
	// within the margins and the cursor cannot leave them.
	ModeOrigin

	// DECAWM. When set, characters received at the right border wrap
	// to the beginning of the next line.
	ModeAutoWrap

	ModeMouseProtocolX10
	ModeMouseProtocolNormalTracking
	ModeMouseProtocolHighlightTracking
	ModeMouseProtocolButtonTracking
	ModeMouseProtocolAnyEventTracking

	ModeShowToolbar
	ModeBlinkingCursor
	ModePrinterExtend
	ModeVisibleCursor // DECTCEM
	ModeShowScrollbar
	ModeAllowColumns80to132 // ?40
	ModeUseAlternateScreen
	ModeLeftRightMargin
	ModeSixelScrolling // ?80
	ModeFocusTracking  // ?1004

	ModeMouseExtended        // ?1005
	ModeMouseSGR             // ?1006
	ModeMouseAlternateScroll // ?1007
	ModeMouseURXVT           // ?1015

	ModeSaveCursor        // ?1048
	ModeExtendedAltScreen // ?1049

	ModeUsePrivateColorRegisters // ?1070
	ModeBracketedPaste           // ?2004

	// Synchronized output. While set, batchable output is queued and
	// replayed as one unit on reset.
	ModeBatchedRendering // ?2026
)

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "UnknownMode"
}

var modeNames = map[Mode]string{
	ModeKeyboardAction:                 "KeyboardAction",
	ModeInsert:                         "Insert",
	ModeSendReceive:                    "SendReceive",
	ModeAutomaticNewLine:               "AutomaticNewLine",
	ModeUseApplicationCursorKeys:       "UseApplicationCursorKeys",
	ModeDesignateCharsetUSASCII:        "DesignateCharsetUSASCII",
	ModeColumns132:                     "Columns132",
	ModeSmoothScroll:                   "SmoothScroll",
	ModeReverseVideo:                   "ReverseVideo",
	ModeOrigin:                         "Origin",
	ModeAutoWrap:                       "AutoWrap",
	ModeMouseProtocolX10:               "MouseProtocolX10",
	ModeMouseProtocolNormalTracking:    "MouseProtocolNormalTracking",
	ModeMouseProtocolHighlightTracking: "MouseProtocolHighlightTracking",
	ModeMouseProtocolButtonTracking:    "MouseProtocolButtonTracking",
	ModeMouseProtocolAnyEventTracking:  "MouseProtocolAnyEventTracking",
	ModeShowToolbar:                    "ShowToolbar",
	ModeBlinkingCursor:                 "BlinkingCursor",
	ModePrinterExtend:                  "PrinterExtend",
	ModeVisibleCursor:                  "VisibleCursor",
	ModeShowScrollbar:                  "ShowScrollbar",
	ModeAllowColumns80to132:            "AllowColumns80to132",
	ModeUseAlternateScreen:             "UseAlternateScreen",
	ModeLeftRightMargin:                "LeftRightMargin",
	ModeSixelScrolling:                 "SixelScrolling",
	ModeFocusTracking:                  "FocusTracking",
	ModeMouseExtended:                  "MouseExtended",
	ModeMouseSGR:                       "MouseSGR",
	ModeMouseAlternateScroll:           "MouseAlternateScroll",
	ModeMouseURXVT:                     "MouseURXVT",
	ModeSaveCursor:                     "SaveCursor",
	ModeExtendedAltScreen:              "ExtendedAltScreen",
	ModeUsePrivateColorRegisters:       "UsePrivateColorRegisters",
	ModeBracketedPaste:                 "BracketedPaste",
	ModeBatchedRendering:               "BatchedRendering",
}

// decModes maps the numeric code carried by DECSM/DECRM onto the mode.
var decModes = map[uint16]Mode{
	1:    ModeUseApplicationCursorKeys,
	2:    ModeDesignateCharsetUSASCII,
	3:    ModeColumns132,
	4:    ModeSmoothScroll,
	5:    ModeReverseVideo,
	6:    ModeOrigin,
	7:    ModeAutoWrap,
	9:    ModeMouseProtocolX10,
	10:   ModeShowToolbar,
	12:   ModeBlinkingCursor,
	19:   ModePrinterExtend,
	25:   ModeVisibleCursor,
	30:   ModeShowScrollbar,
	40:   ModeAllowColumns80to132,
	47:   ModeUseAlternateScreen,
	69:   ModeLeftRightMargin,
	80:   ModeSixelScrolling,
	1000: ModeMouseProtocolNormalTracking,
	1001: ModeMouseProtocolHighlightTracking,
	1002: ModeMouseProtocolButtonTracking,
	1003: ModeMouseProtocolAnyEventTracking,
	1004: ModeFocusTracking,
	1005: ModeMouseExtended,
	1006: ModeMouseSGR,
	1007: ModeMouseAlternateScroll,
	1015: ModeMouseURXVT,
	1047: ModeUseAlternateScreen,
	1048: ModeSaveCursor,
	1049: ModeExtendedAltScreen,
	1070: ModeUsePrivateColorRegisters,
	2004: ModeBracketedPaste,
	2026: ModeBatchedRendering,
}

// ansiModes maps the numeric code carried by SM/RM onto the mode.
var ansiModes = map[uint16]Mode{
	2:  ModeKeyboardAction,
	4:  ModeInsert,
	12: ModeSendReceive,
	20: ModeAutomaticNewLine,
}

// DECMode resolves a DEC private mode number. Unknown numbers report
// false rather than a mode.
func DECMode(value uint16) (Mode, bool) {
	m, ok := decModes[value]
	return m, ok
}

// ANSIMode resolves an ANSI mode number.
func ANSIMode(value uint16) (Mode, bool) {
	m, ok := ansiModes[value]
	return m, ok
}

// Code renders the canonical SM/DECSM parameter for the mode, the DEC
// private ones prefixed with '?'.
func (m Mode) Code() string {
	for v, mode := range ansiModes {
		if mode == m {
			return itoa(v)
		}
	}
	// Two DEC numbers alias ModeUseAlternateScreen; prefer ?47.
	if m == ModeUseAlternateScreen {
		return "?47"
	}
	for v, mode := range decModes {
		if mode == m {
			return "?" + itoa(v)
		}
	}
	return "0"
}

func itoa(v uint16) string {
	if v == 0 {
		return "0"
	}
	var buf [5]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// ModeState maintains the value of every settable mode along with the
// defaults to revert to on reset.
type ModeState struct {
	values   map[Mode]bool
	defaults map[Mode]bool
}

func NewModeState(defaults map[Mode]bool) *ModeState {
	state := &ModeState{
		values:   make(map[Mode]bool, len(defaults)),
		defaults: defaults,
	}
	if state.defaults == nil {
		state.defaults = DefaultModes
	}
	maps.Copy(state.values, state.defaults)
	return state
}

func (s *ModeState) Set(m Mode, value bool) {
	s.values[m] = value
}

func (s *ModeState) Get(m Mode) bool {
	return s.values[m]
}

func (s *ModeState) Reset() {
	s.values = make(map[Mode]bool, len(s.defaults))
	maps.Copy(s.values, s.defaults)
}

// DefaultModes is the power-on mode state.
var DefaultModes = map[Mode]bool{
	ModeAutoWrap:       true,
	ModeVisibleCursor:  true,
	ModeSendReceive:    true,
	ModeSixelScrolling: true,
}
