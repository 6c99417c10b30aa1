package parser

// Events receives the callbacks the state machine emits. The dispatcher
// implements all of them; tests implement the ones they care about on a
// recording type.
type Events interface {
	// Print emits one displayable codepoint while in ground state.
	Print(cp rune)
	// Execute runs a C0 control function.
	Execute(b byte)
	// Clear forgets any partially accumulated sequence.
	Clear()
	// Collect stores an intermediate byte.
	Collect(b byte)
	// CollectLeader stores the leading private marker (< = > ?).
	CollectLeader(b byte)
	// Param feeds a parameter byte: digit, ';' or ':'.
	Param(b byte)
	// DispatchESC completes an escape sequence.
	DispatchESC(final byte)
	// DispatchCSI completes a control sequence.
	DispatchCSI(final byte)
	// StartOSC begins an operating system command payload.
	StartOSC()
	// PutOSC appends one payload codepoint.
	PutOSC(cp rune)
	// DispatchOSC terminates the payload (ST or BEL).
	DispatchOSC()
	// Hook selects the handler for a device control string.
	Hook(final byte)
	// Put forwards one data string codepoint to the hooked handler.
	Put(cp rune)
	// Unhook finalizes the hooked handler.
	Unhook()
	// Error reports a rejected state/input transition.
	Error(msg string)
}
