package journal

import (
	"strings"
)

// NoneExpanded is the Expanded value when every question is collapsed.
const NoneExpanded = -1

// Form holds the answers being typed on the page and which question is open.
type Form struct {
	Mode      Mode
	Expanded  int
	responses map[string]string
}

// NewForm starts in check-in mode with the first question open.
func NewForm() *Form {
	return &Form{
		Mode:      ModeCheckin,
		Expanded:  0,
		responses: map[string]string{},
	}
}

// Questions returns the questions for the current mode.
func (f *Form) Questions() []Question {
	return Questions(f.Mode)
}

// Toggle opens question i, or collapses it when it is already open.
func (f *Form) Toggle(i int) {
	if i < 0 || i >= len(f.Questions()) {
		return
	}
	if f.Expanded == i {
		f.Expanded = NoneExpanded
		return
	}
	f.Expanded = i
}

// CanAdvance reports whether question i has an answer and a question after it.
func (f *Form) CanAdvance(i int) bool {
	qs := f.Questions()
	if i < 0 || i >= len(qs)-1 {
		return false
	}
	return strings.TrimSpace(f.responses[qs[i].Key]) != ""
}

// Next opens the question after i. It is a no-op unless CanAdvance(i).
func (f *Form) Next(i int) bool {
	if !f.CanAdvance(i) {
		return false
	}
	f.Expanded = i + 1
	return true
}

// Set records the answer for key.
func (f *Form) Set(key, value string) {
	f.responses[key] = value
}

// Answer returns the answer for key, or "" when unanswered.
func (f *Form) Answer(key string) string {
	return f.responses[key]
}

// Responses returns a copy of every answer.
func (f *Form) Responses() map[string]string {
	out := make(map[string]string, len(f.responses))
	for k, v := range f.responses {
		out[k] = v
	}
	return out
}

// CanSave reports whether the first question of the current set has a non-blank answer.
func (f *Form) CanSave() bool {
	qs := f.Questions()
	if len(qs) == 0 {
		return false
	}
	return strings.TrimSpace(f.responses[qs[0].Key]) != ""
}

// SwitchToCheckout moves the form to checkout mode, pre-filled from log.
func (f *Form) SwitchToCheckout(log DailyLog) {
	f.Mode = ModeCheckout
	f.Expanded = 0
	f.responses = map[string]string{
		KeyTIL1:      log.OutTIL1,
		KeyTIL2:      log.OutTIL2,
		KeyTIL3:      log.OutTIL3,
		KeyReading:   log.Reading,
		KeyLinkDumps: strings.Join(log.URLs(), "\n"),
	}
}

// CheckinPayload builds the check-in body from the answers.
func CheckinPayload(responses map[string]string, date string) DailyLogCreate {
	return DailyLogCreate{
		LogDate:     date,
		InAttention: responses[KeyAttention],
		InObsession: responses[KeyObsession],
		InAgency:    responses[KeyAgency],
	}
}

// CheckoutPayload builds the checkout body from the answers.
func CheckoutPayload(responses map[string]string) DailyLogCheckout {
	return DailyLogCheckout{
		OutTIL1:   responses[KeyTIL1],
		OutTIL2:   responses[KeyTIL2],
		OutTIL3:   responses[KeyTIL3],
		Reading:   responses[KeyReading],
		LinkDumps: ParseLinks(responses[KeyLinkDumps]),
	}
}

// ParseLinks turns newline separated text into link dumps. Blank lines are dropped.
func ParseLinks(text string) []LinkDump {
	links := []LinkDump{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		links = append(links, LinkDump{URL: line})
	}
	return links
}
