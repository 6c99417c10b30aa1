package parser

// State of the escape sequence state machine, per
// https://vt100.net/emu/dec_ansi_parser.
type State uint8

const (
	// StateUndefined marks entries of the transition table that carry
	// no transition.
	StateUndefined State = iota

	// StateGround consumes all characters other than components of
	// escape and control sequences.
	StateGround

	// StateEscape is entered on ESC. It cancels any escape sequence,
	// control sequence or control string in progress.
	StateEscape

	// StateEscapeIntermediate is entered when an intermediate character
	// arrives in an escape sequence.
	StateEscapeIntermediate

	// StateCSIEntry deals with the first character of a control
	// sequence; the private markers 3C-3F may only appear here.
	StateCSIEntry

	// StateCSIParam recognises parameter characters until an
	// intermediate or final character appears.
	StateCSIParam

	// StateCSIIntermediate recognises intermediate characters until a
	// final character appears.
	StateCSIIntermediate

	// StateCSIIgnore consumes the remainder of a control sequence that
	// was disregarded as malformed, exiting on the final character
	// without dispatching.
	StateCSIIgnore

	// StateDCSEntry mirrors CSIEntry for device control strings.
	StateDCSEntry

	// StateDCSParam mirrors CSIParam for device control strings.
	StateDCSParam

	// StateDCSIntermediate mirrors CSIIntermediate.
	StateDCSIntermediate

	// StateDCSPassthrough forwards the data string to the handler
	// selected at hook time until ST terminates it.
	StateDCSPassthrough

	// StateDCSIgnore consumes a malformed device control string until
	// ST.
	StateDCSIgnore

	// StateOSCString collects an operating system command payload.
	StateOSCString

	// StateSosPmApcString ignores everything until ST; no function is
	// defined for these control strings.
	StateSosPmApcString

	stateCount = int(StateSosPmApcString) + 1
)

func (s State) String() string {
	switch s {
	case StateUndefined:
		return "Undefined"
	case StateGround:
		return "Ground"
	case StateEscape:
		return "Escape"
	case StateEscapeIntermediate:
		return "EscapeIntermediate"
	case StateCSIEntry:
		return "CSIEntry"
	case StateCSIParam:
		return "CSIParam"
	case StateCSIIntermediate:
		return "CSIIntermediate"
	case StateCSIIgnore:
		return "CSIIgnore"
	case StateDCSEntry:
		return "DCSEntry"
	case StateDCSParam:
		return "DCSParam"
	case StateDCSIntermediate:
		return "DCSIntermediate"
	case StateDCSPassthrough:
		return "DCSPassthrough"
	case StateDCSIgnore:
		return "DCSIgnore"
	case StateOSCString:
		return "OSCString"
	case StateSosPmApcString:
		return "SosPmApcString"
	}
	return "?"
}

// Action to take for a given (state, input) pair, with or without a
// state change.
type Action uint8

const (
	ActionUndefined Action = iota
	ActionIgnore
	ActionPrint
	ActionExecute
	ActionClear
	ActionCollect
	ActionCollectLeader
	ActionParam
	ActionESCDispatch
	ActionCSIDispatch
	ActionHook
	ActionPut
	ActionUnhook
	ActionOSCStart
	ActionOSCPut
	ActionOSCEnd

	actionCount = int(ActionOSCEnd) + 1
)

func (a Action) String() string {
	switch a {
	case ActionUndefined:
		return "Undefined"
	case ActionIgnore:
		return "Ignore"
	case ActionPrint:
		return "Print"
	case ActionExecute:
		return "Execute"
	case ActionClear:
		return "Clear"
	case ActionCollect:
		return "Collect"
	case ActionCollectLeader:
		return "CollectLeader"
	case ActionParam:
		return "Param"
	case ActionESCDispatch:
		return "ESCDispatch"
	case ActionCSIDispatch:
		return "CSIDispatch"
	case ActionHook:
		return "Hook"
	case ActionPut:
		return "Put"
	case ActionUnhook:
		return "Unhook"
	case ActionOSCStart:
		return "OSCStart"
	case ActionOSCPut:
		return "OSCPut"
	case ActionOSCEnd:
		return "OSCEnd"
	}
	return "?"
}
