package provider

// Middleware wraps a RequestResponse provider with a cross-cutting concern
// such as logging, tracing or metrics.
type Middleware[I, O any] func(RequestResponse[I, O]) RequestResponse[I, O]

// Chain composes middlewares so the first listed runs outermost:
// Chain(a, b)(p) is a(b(p)).
func Chain[I, O any](middlewares ...Middleware[I, O]) Middleware[I, O] {
	return func(p RequestResponse[I, O]) RequestResponse[I, O] {
		for i := range middlewares {
			p = middlewares[len(middlewares)-1-i](p)
		}
		return p
	}
}
