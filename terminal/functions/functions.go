// Package functions holds the static registry of VT functions: every
// escape, control, device-control and operating-system sequence the
// interpreter knows how to dispatch, keyed by its syntactic shape.
package functions

import "fmt"

// Category classifies a function by its introducer.
type Category uint8

const (
	CategoryC0 Category = iota
	CategoryESC
	CategoryCSI
	CategoryOSC
	CategoryDCS
)

func (c Category) String() string {
	switch c {
	case CategoryC0:
		return "C0"
	case CategoryESC:
		return "ESC"
	case CategoryCSI:
		return "CSI"
	case CategoryOSC:
		return "OSC"
	case CategoryDCS:
		return "DCS"
	}
	return "?"
}

// ID identifies a function. The Sequencer switches over these
// exhaustively, so an unhandled case is visible at review time instead of
// hiding behind a default branch.
type ID uint16

const (
	IDNone ID = iota

	// C0
	EOT
	BEL
	BS
	TAB
	LF
	VT
	FF
	CR
	SO
	SI

	// ESC
	SCSG0Special
	SCSG0USASCII
	SCSG1Special
	SCSG1USASCII
	DECALN
	DECBI
	DECFI
	DECKPAM
	DECKPNM
	DECRS
	DECSC
	HTS
	IND
	NEL
	RI
	RIS
	SS2
	SS3

	// CSI
	ANSISYSSC
	CBT
	CHA
	CHT
	CNL
	CPL
	CPR
	CUB
	CUD
	CUF
	CUP
	CUU
	DA1
	DA2
	DA3
	DCH
	DECDC
	DECIC
	DECMODERESTORE
	DECMODESAVE
	DECRM
	DECRQM
	DECRQMANSI
	DECRQPSR
	DECSCL
	DECSCPP
	DECSCUSR
	DECSLRM
	DECSM
	DECSTBM
	DECSTR
	DECXCPR
	DL
	ECH
	ED
	EL
	HPA
	HPR
	HVP
	ICH
	IL
	RM
	SCOSC
	SD
	SETMARK
	SGR
	SM
	SU
	TBC
	VPA
	WINMANIP
	XTSMGRAPHICS

	// DCS
	DECRQSS
	DECSIXEL
	IMGUPLOAD
	IMGRENDER
	IMGRELEASE
	IMGONESHOT

	// OSC
	SETTITLE
	SETICON
	SETWINTITLE
	SETXPROP
	HYPERLINK
	COLORFG
	COLORBG
	COLORCURSOR
	COLORMOUSEFG
	COLORMOUSEBG
	COLORHIGHLIGHTBG
	COLORHIGHLIGHTFG
	CLIPBOARD
	COLORSPECIAL
	RCOLORFG
	RCOLORBG
	RCOLORCURSOR
	RCOLORMOUSEFG
	RCOLORMOUSEBG
	RCOLORHIGHLIGHTFG
	RCOLORHIGHLIGHTBG
	NOTIFY
	DUMPSTATE
)

// ArgsMax is the maximum parameter count a CSI entry may declare.
const ArgsMax = 127

// Definition describes one function: its syntactic shape, the parameter
// count window used during matching, and meta information.
type Definition struct {
	Category     Category
	Leader       byte // one of < = > ?, or 0 for none
	Intermediate byte // 0x20..0x2F, or 0 for none
	Final        byte // 0x30..0x7E; unused for OSC
	MinParams    int
	MaxParams    int // for OSC this is the numeric OSC code

	ID       ID
	Mnemonic string
	// Batchable marks functions that may be deferred while synchronized
	// output (mode 2026) is active.
	Batchable bool
}

func (d Definition) String() string {
	switch d.Category {
	case CategoryC0:
		return d.Mnemonic
	case CategoryOSC:
		return fmt.Sprintf("OSC %d (%s)", d.MaxParams, d.Mnemonic)
	default:
		return fmt.Sprintf("%s %c %c %c (%s)",
			d.Category, orSpace(d.Leader), orSpace(d.Intermediate), orSpace(d.Final), d.Mnemonic)
	}
}

func orSpace(b byte) byte {
	if b == 0 {
		return ' '
	}
	return b
}

// Selector is the lookup key built from an accumulated sequence.
type Selector struct {
	Category     Category
	Leader       byte
	Argc         int // for OSC: the numeric OSC code
	Intermediate byte
	Final        byte
}

func c0(final byte, id ID, mnemonic string, batchable bool) Definition {
	return Definition{Category: CategoryC0, Final: final, ID: id, Mnemonic: mnemonic, Batchable: batchable}
}

func osc(code int, id ID, mnemonic string, batchable bool) Definition {
	return Definition{Category: CategoryOSC, MaxParams: code, ID: id, Mnemonic: mnemonic, Batchable: batchable}
}

func esc(intermediate byte, final byte, id ID, mnemonic string, batchable bool) Definition {
	return Definition{Category: CategoryESC, Intermediate: intermediate, Final: final, ID: id, Mnemonic: mnemonic, Batchable: batchable}
}

func csi(leader byte, argc0, argc1 int, intermediate byte, final byte, id ID, mnemonic string, batchable bool) Definition {
	return Definition{
		Category:     CategoryCSI,
		Leader:       leader,
		Intermediate: intermediate,
		Final:        final,
		MinParams:    argc0,
		MaxParams:    argc1,
		ID:           id,
		Mnemonic:     mnemonic,
		Batchable:    batchable,
	}
}

func dcs(leader byte, argc0, argc1 int, intermediate byte, final byte, id ID, mnemonic string) Definition {
	return Definition{
		Category:     CategoryDCS,
		Leader:       leader,
		Intermediate: intermediate,
		Final:        final,
		MinParams:    argc0,
		MaxParams:    argc1,
		ID:           id,
		Mnemonic:     mnemonic,
	}
}

// All lists every function the interpreter recognizes, in no particular
// order. A sorted copy is built at package init; Select binary-searches
// that copy.
var All = []Definition{
	// C0
	c0(0x04, EOT, "EOT", false),
	c0(0x07, BEL, "BEL", false),
	c0(0x08, BS, "BS", true),
	c0(0x09, TAB, "TAB", true),
	c0(0x0A, LF, "LF", true),
	c0(0x0B, VT, "VT", true),
	c0(0x0C, FF, "FF", true),
	c0(0x0D, CR, "CR", true),
	c0(0x0E, SO, "SO", false),
	c0(0x0F, SI, "SI", false),

	// ESC
	esc('(', '0', SCSG0Special, "SCS_G0_SPECIAL", true),
	esc('(', 'B', SCSG0USASCII, "SCS_G0_USASCII", true),
	esc(')', '0', SCSG1Special, "SCS_G1_SPECIAL", true),
	esc(')', 'B', SCSG1USASCII, "SCS_G1_USASCII", true),
	esc('#', '8', DECALN, "DECALN", true),
	esc(0, '6', DECBI, "DECBI", true),
	esc(0, '9', DECFI, "DECFI", true),
	esc(0, '=', DECKPAM, "DECKPAM", false),
	esc(0, '>', DECKPNM, "DECKPNM", false),
	esc(0, '8', DECRS, "DECRS", true),
	esc(0, '7', DECSC, "DECSC", true),
	esc(0, 'H', HTS, "HTS", true),
	esc(0, 'D', IND, "IND", true),
	esc(0, 'E', NEL, "NEL", true),
	esc(0, 'M', RI, "RI", true),
	esc(0, 'c', RIS, "RIS", false),
	esc(0, 'N', SS2, "SS2", true),
	esc(0, 'O', SS3, "SS3", true),

	// CSI
	csi(0, 0, 0, 0, 'u', ANSISYSSC, "ANSISYSSC", true),
	csi(0, 0, 1, 0, 'Z', CBT, "CBT", true),
	csi(0, 0, 1, 0, 'G', CHA, "CHA", true),
	csi(0, 0, 1, 0, 'I', CHT, "CHT", true),
	csi(0, 0, 1, 0, 'E', CNL, "CNL", true),
	csi(0, 0, 1, 0, 'F', CPL, "CPL", true),
	csi(0, 1, 1, 0, 'n', CPR, "CPR", false),
	csi(0, 0, 1, 0, 'D', CUB, "CUB", true),
	csi(0, 0, 1, 0, 'B', CUD, "CUD", true),
	csi(0, 0, 1, 0, 'C', CUF, "CUF", true),
	csi(0, 0, 2, 0, 'H', CUP, "CUP", true),
	csi(0, 0, 1, 0, 'A', CUU, "CUU", true),
	csi(0, 0, 1, 0, 'c', DA1, "DA1", false),
	csi('>', 0, 1, 0, 'c', DA2, "DA2", false),
	csi('=', 0, 1, 0, 'c', DA3, "DA3", false),
	csi(0, 0, 1, 0, 'P', DCH, "DCH", true),
	csi(0, 0, 1, '\'', '~', DECDC, "DECDC", true),
	csi(0, 0, 1, '\'', '}', DECIC, "DECIC", true),
	csi('?', 0, ArgsMax, 0, 'r', DECMODERESTORE, "DECMODERESTORE", false),
	csi('?', 0, ArgsMax, 0, 's', DECMODESAVE, "DECMODESAVE", false),
	csi('?', 1, ArgsMax, 0, 'l', DECRM, "DECRM", false),
	csi('?', 1, 1, '$', 'p', DECRQM, "DECRQM", false),
	csi(0, 1, 1, '$', 'p', DECRQMANSI, "DECRQM_ANSI", false),
	csi(0, 1, 1, '$', 'w', DECRQPSR, "DECRQPSR", false),
	csi(0, 2, 2, '"', 'p', DECSCL, "DECSCL", false),
	csi(0, 0, 1, '$', '|', DECSCPP, "DECSCPP", false),
	csi(0, 0, 1, ' ', 'q', DECSCUSR, "DECSCUSR", true),
	csi(0, 2, 2, 0, 's', DECSLRM, "DECSLRM", true),
	csi('?', 1, ArgsMax, 0, 'h', DECSM, "DECSM", false),
	csi(0, 0, 2, 0, 'r', DECSTBM, "DECSTBM", true),
	csi(0, 0, 0, '!', 'p', DECSTR, "DECSTR", false),
	csi(0, 0, 0, 0, '6', DECXCPR, "DECXCPR", false),
	csi(0, 0, 1, 0, 'M', DL, "DL", true),
	csi(0, 0, 1, 0, 'X', ECH, "ECH", true),
	csi(0, 0, ArgsMax, 0, 'J', ED, "ED", true),
	csi(0, 0, 1, 0, 'K', EL, "EL", true),
	csi(0, 1, 1, 0, '`', HPA, "HPA", true),
	csi(0, 1, 1, 0, 'a', HPR, "HPR", true),
	csi(0, 0, 2, 0, 'f', HVP, "HVP", true),
	csi(0, 0, 1, 0, '@', ICH, "ICH", true),
	csi(0, 0, 1, 0, 'L', IL, "IL", true),
	csi(0, 1, ArgsMax, 0, 'l', RM, "RM", false),
	csi(0, 0, 0, 0, 's', SCOSC, "SCOSC", true),
	csi(0, 0, 1, 0, 'T', SD, "SD", true),
	csi('>', 0, 0, 0, 'M', SETMARK, "SETMARK", true),
	csi(0, 0, ArgsMax, 0, 'm', SGR, "SGR", true),
	csi(0, 1, ArgsMax, 0, 'h', SM, "SM", false),
	csi(0, 0, 1, 0, 'S', SU, "SU", true),
	csi(0, 0, 1, 0, 'g', TBC, "TBC", true),
	csi(0, 0, 1, 0, 'd', VPA, "VPA", true),
	csi(0, 1, 3, 0, 't', WINMANIP, "WINMANIP", false),
	csi('?', 2, 4, 0, 'S', XTSMGRAPHICS, "XTSMGRAPHICS", false),

	// DCS
	dcs(0, 0, 0, '$', 'q', DECRQSS, "DECRQSS"),
	dcs(0, 0, 3, 0, 'q', DECSIXEL, "DECSIXEL"),
	dcs(0, 0, 0, 0, 'u', IMGUPLOAD, "IMGUPLOAD"),
	dcs(0, 0, 0, 0, 'r', IMGRENDER, "IMGRENDER"),
	dcs(0, 0, 0, 0, 'd', IMGRELEASE, "IMGRELEASE"),
	dcs(0, 0, 0, 0, 's', IMGONESHOT, "IMGONESHOT"),

	// OSC
	osc(0, SETTITLE, "SETTITLE", false),
	osc(1, SETICON, "SETICON", false),
	osc(2, SETWINTITLE, "SETWINTITLE", false),
	osc(3, SETXPROP, "SETXPROP", false),
	osc(8, HYPERLINK, "HYPERLINK", true),
	osc(10, COLORFG, "COLORFG", false),
	osc(11, COLORBG, "COLORBG", false),
	osc(12, COLORCURSOR, "COLORCURSOR", false),
	osc(13, COLORMOUSEFG, "COLORMOUSEFG", false),
	osc(14, COLORMOUSEBG, "COLORMOUSEBG", false),
	osc(17, COLORHIGHLIGHTBG, "COLORHIGHLIGHTBG", false),
	osc(19, COLORHIGHLIGHTFG, "COLORHIGHLIGHTFG", false),
	osc(52, CLIPBOARD, "CLIPBOARD", false),
	osc(106, COLORSPECIAL, "COLORSPECIAL", false),
	osc(110, RCOLORFG, "RCOLORFG", true),
	osc(111, RCOLORBG, "RCOLORBG", true),
	osc(112, RCOLORCURSOR, "RCOLORCURSOR", true),
	osc(113, RCOLORMOUSEFG, "RCOLORMOUSEFG", true),
	osc(114, RCOLORMOUSEBG, "RCOLORMOUSEBG", true),
	osc(117, RCOLORHIGHLIGHTBG, "RCOLORHIGHLIGHTBG", true),
	osc(119, RCOLORHIGHLIGHTFG, "RCOLORHIGHLIGHTFG", true),
	osc(777, NOTIFY, "NOTIFY", false),
	osc(888, DUMPSTATE, "DUMPSTATE", false),
}
