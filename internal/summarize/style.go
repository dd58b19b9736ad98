package summarize

import "fmt"

// Tone selects the voice of the requested summary.
type Tone string

const (
	TonePrecise  Tone = "precise"
	ToneCasual   Tone = "casual"
	ToneBullet   Tone = "bullet"
	ToneAcademic Tone = "academic"
)

// DefaultMaxUnits is the sentence/bullet budget applied when the caller
// doesn't ask for one.
const DefaultMaxUnits = 3

// MaxUnitsLimit bounds how many sentences or bullets a caller may request.
const MaxUnitsLimit = 10

// ParseTone validates a caller-supplied tone. Empty input means precise.
func ParseTone(s string) (Tone, error) {
	switch Tone(s) {
	case "":
		return TonePrecise, nil
	case TonePrecise, ToneCasual, ToneBullet, ToneAcademic:
		return Tone(s), nil
	}
	return "", fmt.Errorf("unknown tone %q", s)
}

// Style is the tone + length contract applied uniformly to every model call
// of one request. Constructed once per request, never mutated.
type Style struct {
	Tone     Tone
	MaxUnits int
}

// Instruction renders the style contract as a model instruction.
func (s Style) Instruction() string {
	if s.Tone == ToneBullet {
		return fmt.Sprintf("Summarize the content in at most %d concise bullet points.", s.MaxUnits)
	}
	return fmt.Sprintf("Summarize the content in at most %d sentences with a %s tone.", s.MaxUnits, s.Tone)
}
