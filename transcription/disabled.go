package transcription

import (
	"context"

	"github.com/kbukum/pronounce/errors"
)

// ProviderDisabled is the name of the backend used when transcription is off.
const ProviderDisabled = "disabled"

// Disabled is a backend that is never available.
type Disabled struct{}

func (Disabled) Name() string                     { return ProviderDisabled }
func (Disabled) IsAvailable(context.Context) bool { return false }

func (Disabled) Transcribe(context.Context, Request) (*Response, error) {
	return nil, errors.TranscriptionUnavailable(ProviderDisabled, nil)
}
