package sequencer

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/hnimtadd/vtio/terminal/color"
	"github.com/hnimtadd/vtio/terminal/screen"
	"github.com/hnimtadd/vtio/terminal/sequence"
)

// DispatchOSC implements parser.Events. The payload splits into a
// leading numeric code and the remainder after the first ';'; routing
// happens through the function table by code.
func (s *Sequencer) DispatchOSC() {
	payload := s.seq.Intermediates()
	code, skip := parseOSCCode(payload)
	if code < 0 || code > 0xFFFF {
		// Letter-leading variants (e.g. "L<label>") are recognized but
		// have no assigned function.
		s.logger.Info("unknown OSC", "payload", string(payload))
		s.seq.Clear()
		return
	}
	s.seq.PushParam(uint16(code))
	s.seq.SetIntermediates(payload[skip:])
	s.handleSequence()
	s.seq.Clear()
}

// parseOSCCode returns the leading numeric code and the offset of the
// first data byte. A leading non-digit encodes negatively, mirroring
// the historic "L"/"l" title variants.
func parseOSCCode(data []byte) (code, skip int) {
	i := 0
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		if code <= 0xFFFF {
			code = code*10 + int(data[i]-'0')
		}
		i++
	}
	if i == 0 && len(data) > 0 && data[0] != ';' {
		code = -int(data[0])
		i++
	}
	if i < len(data) && data[i] == ';' {
		i++
	}
	return code, i
}

// applyHyperlink handles OSC 8:
//
//	OSC 8 ; params ; URI ST
//
// params are key=value pairs joined by ':'; only "id" is recognized.
func (s *Sequencer) applyHyperlink(seq *sequence.Sequence) ApplyResult {
	value := string(seq.Intermediates())
	pos := strings.IndexByte(value, ';')
	if pos < 0 {
		s.screen.Hyperlink("", "")
		return ApplyOk
	}

	var id string
	for _, pair := range strings.Split(value[:pos], ":") {
		if k, v, found := strings.Cut(pair, "="); found && k == "id" {
			id = v
		}
	}
	s.screen.Hyperlink(id, value[pos+1:])
	return ApplyOk
}

// applyClipboard handles OSC 52. Only setting the clipboard is
// supported, not reading.
func (s *Sequencer) applyClipboard(seq *sequence.Sequence) ApplyResult {
	parts := bytes.Split(seq.Intermediates(), []byte{';'})
	if len(parts) != 2 || string(parts[0]) != "c" {
		return ApplyInvalid
	}
	decoded, err := base64.StdEncoding.DecodeString(string(parts[1]))
	if err != nil {
		return ApplyInvalid
	}
	s.screen.EventListener().CopyToClipboard(decoded)
	return ApplyOk
}

// applyNotify handles OSC 777 in the "notify;title;body" form.
func (s *Sequencer) applyNotify(seq *sequence.Sequence) ApplyResult {
	parts := strings.Split(string(seq.Intermediates()), ";")
	if len(parts) != 3 || parts[0] != "notify" {
		return ApplyUnsupported
	}
	s.screen.Notify(parts[1], parts[2])
	return ApplyOk
}

// setOrRequestDynamicColor handles OSC 10..14, 17 and 19: a payload of "?"
// queries the color, anything else must be an X11 "rgb:" form to set
// it.
func (s *Sequencer) setOrRequestDynamicColor(seq *sequence.Sequence, name screen.DynamicColorName) ApplyResult {
	value := string(seq.Intermediates())
	if value == "?" {
		s.screen.RequestDynamicColor(name)
		return ApplyOk
	}
	if rgb, ok := color.ParseX11(value); ok {
		s.screen.SetDynamicColor(name, rgb)
		return ApplyOk
	}
	return ApplyInvalid
}
