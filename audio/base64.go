package audio

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/kbukum/pronounce/errors"
)

// DecodeBase64 decodes a base64 audio payload. It accepts the standard and
// URL-safe alphabets, with or without padding, and an optional
// "data:<mime>;base64," prefix whose MIME type is returned.
func DecodeBase64(payload string) ([]byte, string, error) {
	s := strings.TrimSpace(payload)
	var contentType string
	if strings.HasPrefix(s, "data:") {
		header, body, ok := strings.Cut(s, ",")
		if !ok || !strings.HasSuffix(header, ";base64") {
			return nil, "", errors.Decode("base64", fmt.Errorf("malformed data URL"))
		}
		contentType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		s = body
	}
	if s == "" {
		return nil, contentType, errors.Decode("base64", fmt.Errorf("empty payload"))
	}

	encodings := []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding,
		base64.URLEncoding, base64.RawURLEncoding,
	}
	var lastErr error
	for _, enc := range encodings {
		data, err := enc.DecodeString(s)
		if err == nil {
			return data, contentType, nil
		}
		lastErr = err
	}
	return nil, contentType, errors.Decode("base64", lastErr)
}
