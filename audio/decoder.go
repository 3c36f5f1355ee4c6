package audio

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kbukum/pronounce/errors"
)

// Decoder turns an encoded payload into a mono Buffer at its native rate.
type Decoder interface {
	// Name identifies the decoder in logs and error details.
	Name() string
	// ContentTypes lists the MIME types the decoder accepts.
	ContentTypes() []string
	// Extensions lists file extensions (with the dot) the decoder accepts.
	Extensions() []string
	// Decode decodes data. Failures are DECODE_ERROR app errors.
	Decode(ctx context.Context, data []byte) (*Buffer, error)
}

// AllowedContentTypes is the upload allow list enforced at the HTTP boundary.
var AllowedContentTypes = []string{"audio/wav", "audio/mp3", "audio/mpeg", "audio/m4a"}

// aliases map alternative MIME spellings to the registry key.
var aliases = map[string]string{
	"audio/x-wav":    "audio/wav",
	"audio/wave":     "audio/wav",
	"audio/vnd.wave": "audio/wav",
	"audio/mpeg3":    "audio/mp3",
	"audio/x-mp3":    "audio/mp3",
	"audio/mp4":      "audio/m4a",
	"audio/x-m4a":    "audio/m4a",
	"audio/aac":      "audio/m4a",
}

// NormalizeContentType lower-cases ct, drops parameters and resolves aliases.
func NormalizeContentType(ct string) string {
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		mt = strings.TrimSpace(strings.SplitN(ct, ";", 2)[0])
	}
	mt = strings.ToLower(mt)
	if canonical, ok := aliases[mt]; ok {
		return canonical
	}
	return mt
}

// IsAllowedContentType reports whether ct is on the upload allow list. Only
// parameters and case are ignored; aliases are not accepted here.
func IsAllowedContentType(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return slices.Contains(AllowedContentTypes, strings.ToLower(mt))
}

// Registry selects a decoder by content type, falling back to the file
// extension when the content type is missing or generic.
type Registry struct {
	byType map[string]Decoder
	byExt  map[string]Decoder
	names  []string
}

// NewRegistry registers decoders in order; later decoders win on conflicts.
func NewRegistry(decoders ...Decoder) *Registry {
	r := &Registry{
		byType: make(map[string]Decoder),
		byExt:  make(map[string]Decoder),
	}
	for _, d := range decoders {
		r.Register(d)
	}
	return r
}

// Register adds a decoder.
func (r *Registry) Register(d Decoder) {
	for _, ct := range d.ContentTypes() {
		r.byType[NormalizeContentType(ct)] = d
	}
	for _, ext := range d.Extensions() {
		r.byExt[strings.ToLower(ext)] = d
	}
	r.names = append(r.names, d.Name())
}

// Names returns the registered decoder names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Lookup finds the decoder for a content type or filename.
func (r *Registry) Lookup(contentType, filename string) (Decoder, bool) {
	if d, ok := r.byType[NormalizeContentType(contentType)]; ok {
		return d, true
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		if d, ok := r.byExt[ext]; ok {
			return d, true
		}
	}
	return nil, false
}

// Decode looks up a decoder and decodes data with it.
func (r *Registry) Decode(ctx context.Context, data []byte, contentType, filename string) (*Buffer, error) {
	if len(data) == 0 {
		return nil, errors.Decode(contentType, fmt.Errorf("empty audio payload"))
	}
	d, ok := r.Lookup(contentType, filename)
	if !ok {
		return nil, errors.UnsupportedMedia(contentType, AllowedContentTypes)
	}
	return d.Decode(ctx, data)
}
