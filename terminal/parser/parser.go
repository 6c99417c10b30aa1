// Package parser implements the byte-level ECMA-48 escape sequence
// state machine.
//
// Bytes are UTF-8 decoded up front so printable text and OSC/DCS
// payloads arrive at the listener as codepoints; everything structural
// stays in the ASCII range and drives the transition table directly.
package parser

import "fmt"

const replacementCharacter = 0xFFFD

// Parser drives the transition table and reports actions to an Events
// listener. Feeding may stop at any byte boundary; the parser keeps all
// intermediate state across calls.
type Parser struct {
	state       State
	events      Events
	utf8Decoder *UTF8Decoder
}

func New(events Events) *Parser {
	return &Parser{
		state:       StateGround,
		events:      events,
		utf8Decoder: NewUTF8Decoder(),
	}
}

func (p *Parser) State() State { return p.state }

// Reset drops any partial UTF-8 sequence and returns to ground state.
func (p *Parser) Reset() {
	p.state = StateGround
	p.utf8Decoder.Reset()
}

// Parse feeds a fragment of the byte stream. Splitting input at
// arbitrary boundaries and feeding the halves sequentially behaves
// identically to feeding the whole.
func (p *Parser) Parse(input []byte) {
	for _, c := range input {
		cp, generated, consumed := p.utf8Decoder.Next(c)
		if generated {
			p.ProcessInput(cp)
		}
		if !consumed {
			cp, generated, consumed = p.utf8Decoder.Next(c)
			// The decoder consumes every byte on the second attempt.
			if !consumed {
				p.events.Error(fmt.Sprintf("utf8 decoder refused byte 0x%02X twice", c))
				continue
			}
			if generated {
				p.ProcessInput(cp)
			}
		}
	}
}

// ProcessInput advances the state machine by one decoded codepoint.
func (p *Parser) ProcessInput(cp rune) {
	s := p.state
	ch := int(cp)
	if ch > 0xFF {
		ch = codepointInput
	}

	if next := transitionTable.transitions[s][ch]; next != StateUndefined {
		// Exit the old state, take the transition action, then enter
		// the new state, in that order.
		p.handle(transitionTable.exit[s], cp)
		p.handle(transitionTable.events[s][ch], cp)
		p.state = next
		p.handle(transitionTable.entry[next], cp)
		return
	}
	if a := transitionTable.events[s][ch]; a != ActionUndefined {
		p.handle(a, cp)
		return
	}
	p.events.Error(fmt.Sprintf("unknown action for state/input pair (%s, 0x%02X)", s, ch))
	p.state = StateGround
}

func (p *Parser) handle(a Action, cp rune) {
	switch a {
	case ActionClear:
		p.events.Clear()
	case ActionCollect:
		p.events.Collect(byte(cp))
	case ActionCollectLeader:
		p.events.CollectLeader(byte(cp))
	case ActionParam:
		p.events.Param(byte(cp))
	case ActionExecute:
		p.events.Execute(byte(cp))
	case ActionESCDispatch:
		p.events.DispatchESC(byte(cp))
	case ActionCSIDispatch:
		p.events.DispatchCSI(byte(cp))
	case ActionPrint:
		p.events.Print(cp)
	case ActionOSCStart:
		p.events.StartOSC()
	case ActionOSCPut:
		p.events.PutOSC(cp)
	case ActionOSCEnd:
		p.events.DispatchOSC()
	case ActionHook:
		p.events.Hook(byte(cp))
	case ActionPut:
		p.events.Put(cp)
	case ActionUnhook:
		p.events.Unhook()
	case ActionIgnore, ActionUndefined:
	}
}
