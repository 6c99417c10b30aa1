package parser

// This contains the state transition table for VT emulation, built once
// at package init.
//
// This is based on the vt100.net state machine
// (https://vt100.net/emu/dec_ansi_parser) with two widely deployed
// extensions: the leading private markers 0x3C..0x3F are collected as a
// distinct leader byte, and BEL is accepted as an OSC terminator.
//
// Input slots 0x00..0xFF are raw bytes; slot 256 stands for any decoded
// codepoint above 0xFF.
const (
	inputCount     = 257
	codepointInput = 256
)

type table struct {
	// transitions maps (state, input) to the next state. StateUndefined
	// means "no transition".
	transitions [stateCount][inputCount]State
	// events maps (state, input) to the action to run.
	events [stateCount][inputCount]Action
	// entry and exit actions per state.
	entry [stateCount]Action
	exit  [stateCount]Action
}

func (t *table) event(s State, a Action, from, to int) {
	for i := from; i <= to; i++ {
		t.events[s][i] = a
	}
}

func (t *table) transition(from, to State, a Action, lo, hi int) {
	for i := lo; i <= hi; i++ {
		t.events[from][i] = a
		t.transitions[from][i] = to
	}
}

var transitionTable = func() *table {
	t := &table{}

	// Ground
	t.event(StateGround, ActionExecute, 0x00, 0x17)
	t.event(StateGround, ActionExecute, 0x19, 0x19)
	t.event(StateGround, ActionExecute, 0x1C, 0x1F)
	t.event(StateGround, ActionPrint, 0x20, 0x7F)
	t.event(StateGround, ActionPrint, 0xA0, 0xFF)
	t.event(StateGround, ActionPrint, codepointInput, codepointInput)

	// Escape
	t.entry[StateEscape] = ActionClear
	t.event(StateEscape, ActionExecute, 0x00, 0x17)
	t.event(StateEscape, ActionExecute, 0x19, 0x19)
	t.event(StateEscape, ActionExecute, 0x1C, 0x1F)
	t.event(StateEscape, ActionIgnore, 0x7F, 0x7F)
	t.transition(StateEscape, StateSosPmApcString, ActionIgnore, 0x58, 0x58)
	t.transition(StateEscape, StateSosPmApcString, ActionIgnore, 0x5E, 0x5F)
	t.transition(StateEscape, StateDCSEntry, ActionIgnore, 0x50, 0x50)
	t.transition(StateEscape, StateOSCString, ActionIgnore, 0x5D, 0x5D)
	t.transition(StateEscape, StateCSIEntry, ActionIgnore, 0x5B, 0x5B)
	t.transition(StateEscape, StateGround, ActionESCDispatch, 0x30, 0x4F)
	t.transition(StateEscape, StateGround, ActionESCDispatch, 0x51, 0x57)
	t.transition(StateEscape, StateGround, ActionESCDispatch, 0x59, 0x5A)
	// ST terminating OSC/DCS arrives here; nothing left to dispatch.
	t.transition(StateEscape, StateGround, ActionIgnore, 0x5C, 0x5C)
	t.transition(StateEscape, StateGround, ActionESCDispatch, 0x60, 0x7E)
	t.transition(StateEscape, StateEscapeIntermediate, ActionCollect, 0x20, 0x2F)

	// EscapeIntermediate
	t.event(StateEscapeIntermediate, ActionExecute, 0x00, 0x17)
	t.event(StateEscapeIntermediate, ActionExecute, 0x19, 0x19)
	t.event(StateEscapeIntermediate, ActionExecute, 0x1C, 0x1F)
	t.event(StateEscapeIntermediate, ActionCollect, 0x20, 0x2F)
	t.event(StateEscapeIntermediate, ActionIgnore, 0x7F, 0x7F)
	t.transition(StateEscapeIntermediate, StateGround, ActionESCDispatch, 0x30, 0x7E)

	// SosPmApcString
	t.event(StateSosPmApcString, ActionIgnore, 0x00, 0x17)
	t.event(StateSosPmApcString, ActionIgnore, 0x19, 0x19)
	t.event(StateSosPmApcString, ActionIgnore, 0x1C, 0x1F)
	t.event(StateSosPmApcString, ActionIgnore, 0x20, 0x7F)

	// CSIEntry
	t.entry[StateCSIEntry] = ActionClear
	t.event(StateCSIEntry, ActionExecute, 0x00, 0x17)
	t.event(StateCSIEntry, ActionExecute, 0x19, 0x19)
	t.event(StateCSIEntry, ActionExecute, 0x1C, 0x1F)
	t.event(StateCSIEntry, ActionIgnore, 0x7F, 0x7F)
	t.transition(StateCSIEntry, StateGround, ActionCSIDispatch, 0x40, 0x7E)
	t.transition(StateCSIEntry, StateCSIIntermediate, ActionCollect, 0x20, 0x2F)
	t.transition(StateCSIEntry, StateCSIIgnore, ActionIgnore, 0x3A, 0x3A)
	t.transition(StateCSIEntry, StateCSIParam, ActionParam, 0x30, 0x39)
	t.transition(StateCSIEntry, StateCSIParam, ActionParam, 0x3B, 0x3B)
	t.transition(StateCSIEntry, StateCSIParam, ActionCollectLeader, 0x3C, 0x3F)

	// CSIParam
	t.event(StateCSIParam, ActionExecute, 0x00, 0x17)
	t.event(StateCSIParam, ActionExecute, 0x19, 0x19)
	t.event(StateCSIParam, ActionExecute, 0x1C, 0x1F)
	t.event(StateCSIParam, ActionParam, 0x30, 0x3B)
	t.event(StateCSIParam, ActionIgnore, 0x7F, 0x7F)
	t.transition(StateCSIParam, StateCSIIgnore, ActionIgnore, 0x3C, 0x3F)
	t.transition(StateCSIParam, StateCSIIntermediate, ActionCollect, 0x20, 0x2F)
	t.transition(StateCSIParam, StateGround, ActionCSIDispatch, 0x40, 0x7E)

	// CSIIntermediate
	t.event(StateCSIIntermediate, ActionExecute, 0x00, 0x17)
	t.event(StateCSIIntermediate, ActionExecute, 0x19, 0x19)
	t.event(StateCSIIntermediate, ActionExecute, 0x1C, 0x1F)
	t.event(StateCSIIntermediate, ActionCollect, 0x20, 0x2F)
	t.event(StateCSIIntermediate, ActionIgnore, 0x7F, 0x7F)
	t.transition(StateCSIIntermediate, StateCSIIgnore, ActionIgnore, 0x30, 0x3F)
	t.transition(StateCSIIntermediate, StateGround, ActionCSIDispatch, 0x40, 0x7E)

	// CSIIgnore
	t.event(StateCSIIgnore, ActionExecute, 0x00, 0x17)
	t.event(StateCSIIgnore, ActionExecute, 0x19, 0x19)
	t.event(StateCSIIgnore, ActionExecute, 0x1C, 0x1F)
	t.event(StateCSIIgnore, ActionIgnore, 0x20, 0x3F)
	t.event(StateCSIIgnore, ActionIgnore, 0x7F, 0x7F)
	t.transition(StateCSIIgnore, StateGround, ActionIgnore, 0x40, 0x7E)

	// DCSEntry
	t.entry[StateDCSEntry] = ActionClear
	t.event(StateDCSEntry, ActionIgnore, 0x00, 0x17)
	t.event(StateDCSEntry, ActionIgnore, 0x19, 0x19)
	t.event(StateDCSEntry, ActionIgnore, 0x1C, 0x1F)
	t.event(StateDCSEntry, ActionIgnore, 0x7F, 0x7F)
	t.transition(StateDCSEntry, StateDCSIntermediate, ActionCollect, 0x20, 0x2F)
	t.transition(StateDCSEntry, StateDCSIgnore, ActionIgnore, 0x3A, 0x3A)
	t.transition(StateDCSEntry, StateDCSParam, ActionParam, 0x30, 0x39)
	t.transition(StateDCSEntry, StateDCSParam, ActionParam, 0x3B, 0x3B)
	t.transition(StateDCSEntry, StateDCSParam, ActionCollectLeader, 0x3C, 0x3F)
	t.transition(StateDCSEntry, StateDCSPassthrough, ActionIgnore, 0x40, 0x7E)

	// DCSParam
	t.event(StateDCSParam, ActionIgnore, 0x00, 0x17)
	t.event(StateDCSParam, ActionIgnore, 0x19, 0x19)
	t.event(StateDCSParam, ActionIgnore, 0x1C, 0x1F)
	t.event(StateDCSParam, ActionParam, 0x30, 0x3B)
	t.event(StateDCSParam, ActionIgnore, 0x7F, 0x7F)
	t.transition(StateDCSParam, StateDCSIgnore, ActionIgnore, 0x3A, 0x3A)
	t.transition(StateDCSParam, StateDCSIgnore, ActionIgnore, 0x3C, 0x3F)
	t.transition(StateDCSParam, StateDCSIntermediate, ActionCollect, 0x20, 0x2F)
	t.transition(StateDCSParam, StateDCSPassthrough, ActionIgnore, 0x40, 0x7E)

	// DCSIntermediate
	t.event(StateDCSIntermediate, ActionIgnore, 0x00, 0x17)
	t.event(StateDCSIntermediate, ActionIgnore, 0x19, 0x19)
	t.event(StateDCSIntermediate, ActionIgnore, 0x1C, 0x1F)
	t.event(StateDCSIntermediate, ActionCollect, 0x20, 0x2F)
	t.event(StateDCSIntermediate, ActionIgnore, 0x7F, 0x7F)
	t.transition(StateDCSIntermediate, StateDCSIgnore, ActionIgnore, 0x30, 0x3F)
	t.transition(StateDCSIntermediate, StateDCSPassthrough, ActionIgnore, 0x40, 0x7E)

	// DCSPassthrough
	t.entry[StateDCSPassthrough] = ActionHook
	t.exit[StateDCSPassthrough] = ActionUnhook
	t.event(StateDCSPassthrough, ActionPut, 0x00, 0x17)
	t.event(StateDCSPassthrough, ActionPut, 0x19, 0x19)
	t.event(StateDCSPassthrough, ActionPut, 0x1C, 0x1F)
	t.event(StateDCSPassthrough, ActionPut, 0x20, 0x7E)
	t.event(StateDCSPassthrough, ActionPut, 0xA0, 0xFF)
	t.event(StateDCSPassthrough, ActionPut, codepointInput, codepointInput)
	t.event(StateDCSPassthrough, ActionIgnore, 0x7F, 0x7F)

	// DCSIgnore
	t.event(StateDCSIgnore, ActionIgnore, 0x00, 0x17)
	t.event(StateDCSIgnore, ActionIgnore, 0x19, 0x19)
	t.event(StateDCSIgnore, ActionIgnore, 0x1C, 0x1F)
	t.event(StateDCSIgnore, ActionIgnore, 0x20, 0x7F)
	t.event(StateDCSIgnore, ActionIgnore, 0xA0, 0xFF)
	t.event(StateDCSIgnore, ActionIgnore, codepointInput, codepointInput)

	// OSCString
	// (xterm extension to also allow BEL (0x07) as OSC terminator)
	t.entry[StateOSCString] = ActionOSCStart
	t.exit[StateOSCString] = ActionOSCEnd
	t.event(StateOSCString, ActionIgnore, 0x00, 0x06)
	t.event(StateOSCString, ActionIgnore, 0x08, 0x17)
	t.event(StateOSCString, ActionIgnore, 0x19, 0x19)
	t.event(StateOSCString, ActionIgnore, 0x1C, 0x1F)
	t.event(StateOSCString, ActionOSCPut, 0x20, 0x7F)
	t.event(StateOSCString, ActionOSCPut, 0xA0, 0xFF)
	t.event(StateOSCString, ActionOSCPut, codepointInput, codepointInput)
	t.transition(StateOSCString, StateGround, ActionIgnore, 0x07, 0x07)

	// anywhere -> elsewhere. These overrule whatever the states above
	// declared for the same inputs.
	for s := StateGround; s <= StateSosPmApcString; s++ {
		t.transition(s, StateGround, ActionIgnore, 0x18, 0x18)
		t.transition(s, StateGround, ActionIgnore, 0x1A, 0x1A)
		t.transition(s, StateGround, ActionIgnore, 0x9C, 0x9C)
		t.transition(s, StateGround, ActionIgnore, 0x80, 0x8F)
		t.transition(s, StateGround, ActionIgnore, 0x91, 0x97)
		t.transition(s, StateEscape, ActionIgnore, 0x1B, 0x1B)
		t.transition(s, StateDCSEntry, ActionIgnore, 0x90, 0x90)
		t.transition(s, StateCSIEntry, ActionIgnore, 0x9B, 0x9B)
		t.transition(s, StateOSCString, ActionIgnore, 0x9D, 0x9D)
		t.transition(s, StateSosPmApcString, ActionIgnore, 0x98, 0x98)
		t.transition(s, StateSosPmApcString, ActionIgnore, 0x9E, 0x9F)
	}

	return t
}()
