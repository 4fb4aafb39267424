package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Alternative is a suggested rewrite: either PlainText or Rationalized.
// Consumers read it through Normalize.
type Alternative interface {
	alternative()
}

// PlainText is a rewrite without reasoning, as produced by the fallback templates.
type PlainText string

// Rationalized is a rewrite supplied with the reasoning behind it.
type Rationalized struct {
	Text       string   `json:"text"`
	Rationale  string   `json:"rationale,omitempty"`
	ImprovesOn []string `json:"improvesOn,omitempty"`
}

func (PlainText) alternative()    {}
func (Rationalized) alternative() {}

// Normalize returns any alternative in its rationalized shape. A nil
// alternative normalizes to the zero value.
func Normalize(a Alternative) Rationalized {
	switch v := a.(type) {
	case PlainText:
		return Rationalized{Text: string(v)}
	case Rationalized:
		return v
	case *Rationalized:
		if v != nil {
			return *v
		}
	}
	return Rationalized{}
}

// DecodeAlternative accepts either a JSON string or a {text, rationale,
// improvesOn} object.
func DecodeAlternative(raw json.RawMessage) (Alternative, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return PlainText(s), nil
	}
	var r Rationalized
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("%w: alternative must be a string or an object: %v", ErrInvalidArgument, err)
	}
	return r, nil
}

// Alternatives holds the three rewrite angles offered for a statement.
type Alternatives struct {
	ActionFocused   Alternative `json:"actionFocused"`
	ProblemSolution Alternative `json:"problemSolution"`
	VisionDriven    Alternative `json:"visionDriven"`
}

// UnmarshalJSON accepts both shapes for each angle.
func (a *Alternatives) UnmarshalJSON(data []byte) error {
	var raw struct {
		ActionFocused   json.RawMessage `json:"actionFocused"`
		ProblemSolution json.RawMessage `json:"problemSolution"`
		VisionDriven    json.RawMessage `json:"visionDriven"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var err error
	if a.ActionFocused, err = DecodeAlternative(raw.ActionFocused); err != nil {
		return err
	}
	if a.ProblemSolution, err = DecodeAlternative(raw.ProblemSolution); err != nil {
		return err
	}
	if a.VisionDriven, err = DecodeAlternative(raw.VisionDriven); err != nil {
		return err
	}
	return nil
}

// IsEmpty reports whether no angle carries text.
func (a Alternatives) IsEmpty() bool {
	for _, n := range a.Named() {
		if n.Text != "" {
			return false
		}
	}
	return true
}

// NamedAlternative is a normalized alternative with its display title.
type NamedAlternative struct {
	Key   string
	Icon  string
	Title string
	Rationalized
}

// Named returns the three angles normalized, in display order.
func (a Alternatives) Named() []NamedAlternative {
	return []NamedAlternative{
		{Key: "actionFocused", Icon: "⚡", Title: "Action-Focused", Rationalized: Normalize(a.ActionFocused)},
		{Key: "problemSolution", Icon: "🎯", Title: "Problem-Solution", Rationalized: Normalize(a.ProblemSolution)},
		{Key: "visionDriven", Icon: "🚀", Title: "Vision-Driven", Rationalized: Normalize(a.VisionDriven)},
	}
}

const (
	fallbackActionFocused   = "To transform industries through innovative solutions that empower businesses and communities worldwide."
	fallbackProblemSolution = "We solve complex challenges by delivering cutting-edge technology that creates lasting value for our customers and society."
	fallbackVisionDriven    = "Building a future where technology enhances human potential and creates sustainable prosperity for all."
)

// FallbackAlternatives returns the fixed rewrites used when no generated
// alternatives are available. The output does not depend on the input.
func FallbackAlternatives(text string, overall int) Alternatives {
	return Alternatives{
		ActionFocused:   PlainText(fallbackActionFocused),
		ProblemSolution: PlainText(fallbackProblemSolution),
		VisionDriven:    PlainText(fallbackVisionDriven),
	}
}
