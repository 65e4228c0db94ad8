package listener

import "reflect"

// OnHandlerFunc is called for every handler an exploration emits, after its
// pattern has been merged with the controller pattern.
type OnHandlerFunc func(prototype reflect.Type, method MethodDescription)

// OnSkipFunc is called for every method that carries no handler metadata.
type OnSkipFunc func(prototype reflect.Type, method string)

// OnClientHookFunc is called for every client hook a scan yields.
type OnClientHookFunc func(prototype reflect.Type, hook ClientProperties)

// hooks holds all configured hook functions.
type hooks struct {
	onHandler    []OnHandlerFunc
	onSkip       []OnSkipFunc
	onClientHook []OnClientHookFunc
}

// WithOnHandler adds a hook called for every discovered handler.
// Multiple hooks are called in order.
//
// Example:
//
//	listener.WithOnHandler(func(t reflect.Type, m listener.MethodDescription) {
//	    metrics.Incr("listener.handler", "event:"+strconv.FormatBool(m.IsEventHandler))
//	})
func WithOnHandler(fn OnHandlerFunc) Option {
	return func(e *Explorer) {
		e.hooks.onHandler = append(e.hooks.onHandler, fn)
	}
}

// WithOnSkip adds a hook called for every method without handler metadata.
// Multiple hooks are called in order.
func WithOnSkip(fn OnSkipFunc) Option {
	return func(e *Explorer) {
		e.hooks.onSkip = append(e.hooks.onSkip, fn)
	}
}

// WithOnClientHook adds a hook called for every client hook found by
// ScanForClientHooks. Multiple hooks are called in order.
//
// Example:
//
//	listener.WithOnClientHook(func(t reflect.Type, h listener.ClientProperties) {
//	    logger.Info("client hook", "type", t.String(), "field", h.Property)
//	})
func WithOnClientHook(fn OnClientHookFunc) Option {
	return func(e *Explorer) {
		e.hooks.onClientHook = append(e.hooks.onClientHook, fn)
	}
}

func (h *hooks) callOnHandler(t reflect.Type, m MethodDescription) {
	for _, fn := range h.onHandler {
		fn(t, m)
	}
}

func (h *hooks) callOnSkip(t reflect.Type, method string) {
	for _, fn := range h.onSkip {
		fn(t, method)
	}
}

func (h *hooks) callOnClientHook(t reflect.Type, hook ClientProperties) {
	for _, fn := range h.onClientHook {
		fn(t, hook)
	}
}
