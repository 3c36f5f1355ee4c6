package transcription

import "strings"

// Kind classifies a transcription attempt.
type Kind string

const (
	// KindRecognized means the backend returned non-empty text.
	KindRecognized Kind = "recognized"
	// KindUnrecognized means the backend ran but understood nothing.
	KindUnrecognized Kind = "unrecognized"
	// KindUnavailable means no backend answer was obtained.
	KindUnavailable Kind = "unavailable"
)

// Outcome is the result of asking a backend what was said.
type Outcome struct {
	Kind   Kind   `json:"kind"`
	Text   string `json:"text,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Recognized builds an outcome for heard text. The text is trimmed and
// lower-cased; empty text yields Unrecognized.
func Recognized(text string) Outcome {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return Unrecognized()
	}
	return Outcome{Kind: KindRecognized, Text: text}
}

// Unrecognized builds an outcome for speech that could not be understood.
func Unrecognized() Outcome {
	return Outcome{Kind: KindUnrecognized}
}

// Unavailable builds an outcome for a backend that could not be asked.
func Unavailable(reason string) Outcome {
	return Outcome{Kind: KindUnavailable, Reason: reason}
}

// IsRecognized reports whether text was heard.
func (o Outcome) IsRecognized() bool { return o.Kind == KindRecognized }

// Heard returns the recognized text or "Unknown".
func (o Outcome) Heard() string {
	if o.Kind == KindRecognized {
		return o.Text
	}
	return "Unknown"
}

func (o Outcome) String() string {
	switch o.Kind {
	case KindRecognized:
		return "recognized(" + o.Text + ")"
	case KindUnavailable:
		return "unavailable(" + o.Reason + ")"
	case KindUnrecognized:
		return string(o.Kind)
	default:
		return "unavailable(no attempt)"
	}
}
