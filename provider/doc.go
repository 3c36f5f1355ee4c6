// Package provider is a small generic framework for swappable backends.
//
// A backend implements Provider (Name and IsAvailable) plus its own call
// method. Backends that take one input and return one output can be viewed
// as RequestResponse[I, O] and decorated with middleware:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithTracing[In, Out]("pronounce"),
//	    provider.WithMetrics[In, Out](metrics),
//	)(provider.WithResilience(rawProvider, provider.ResilienceConfig{
//	    CircuitBreaker: breaker,
//	    Retry:          &retryCfg,
//	}))
//
// Registry maps configured backend names to factories:
//
//	reg := provider.NewRegistry[transcription.Provider, transcription.Config]()
//	reg.RegisterFactory("whisper", whisper.Factory())
//	p, err := reg.Create("whisper", cfg)
package provider
