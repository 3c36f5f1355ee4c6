package transcription

import (
	"context"

	"github.com/kbukum/pronounce/provider"
)

// Provider is the interface that transcription backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe sends audio for transcription and returns the result.
	Transcribe(ctx context.Context, req Request) (*Response, error)
}

// Factory creates a Provider from the transcription configuration.
type Factory = provider.Factory[Provider, Config]

var registry = provider.NewRegistry[Provider, Config]()

func init() {
	RegisterFactory(ProviderDisabled, func(Config) (Provider, error) {
		return Disabled{}, nil
	})
}

// RegisterFactory makes a backend selectable by name.
func RegisterFactory(name string, f Factory) {
	registry.RegisterFactory(name, f)
}

// Providers lists the registered backend names.
func Providers() []string {
	return registry.List()
}

// New creates the backend named by cfg.Provider. Backends other than
// "disabled" must be linked into the binary (usually by a blank import).
func New(cfg Config) (Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return Disabled{}, nil
	}
	return registry.Create(cfg.Provider, cfg)
}
