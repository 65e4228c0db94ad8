package listener

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// ErrMissingPattern is returned when a handler without a pattern is registered.
var ErrMissingPattern = errors.New("handler has no pattern")

// ErrDuplicatePattern is returned when two handlers resolve to the same key.
var ErrDuplicatePattern = errors.New("duplicate pattern")

// Route is a registered handler.
type Route struct {
	// Key is the routing key, Pattern.Key().
	Key string

	// Pattern is the resolved pattern the route was registered with.
	Pattern Pattern

	// Receiver is the controller the handler belongs to.
	Receiver reflect.Value

	// Method describes the handler.
	Method MethodDescription
}

// IsEventHandler reports whether the route consumes events without replying.
func (r Route) IsEventHandler() bool {
	return r.Method.IsEventHandler
}

// Handler returns the handler method bound to its receiver.
func (r Route) Handler() reflect.Value {
	return r.Receiver.MethodByName(r.Method.MethodKey)
}

// OnDuplicateFunc is called when a pattern is registered twice.
// Return nil to keep the first route, return an error to fail registration.
type OnDuplicateFunc func(existing, incoming Route) error

// Router maps resolved pattern keys to handlers.
//
// Usage:
//  1. Create a router with NewRouter
//  2. Add controllers with Mount (or Register for pre-explored methods)
//  3. Resolve handlers with Lookup
//
// Router is safe for concurrent use.
type Router struct {
	mu          sync.RWMutex
	routes      map[string]Route
	order       []string
	logger      *zap.Logger
	onDuplicate []OnDuplicateFunc
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// NewRouter creates an empty Router.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{
		routes: make(map[string]Route),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithRouterLogger sets the router's logger. Registrations are logged at
// debug level.
func WithRouterLogger(l *zap.Logger) RouterOption {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithOnDuplicate adds a hook called when a pattern key is already taken.
// Multiple hooks are called in order; first error wins. Without hooks a
// duplicate fails with ErrDuplicatePattern.
//
// Example:
//
//	listener.WithOnDuplicate(func(existing, incoming listener.Route) error {
//	    logger.Warn("pattern shadowed", zap.String("key", incoming.Key))
//	    return nil // keep the first handler
//	})
func WithOnDuplicate(fn OnDuplicateFunc) RouterOption {
	return func(r *Router) {
		r.onDuplicate = append(r.onDuplicate, fn)
	}
}

// Mount explores every instance with e and registers its handlers.
// Instances are registered in order; registration stops at the first error.
//
// Example:
//
//	r := listener.NewRouter()
//	if err := r.Mount(explorer, &Users{}, &Orders{}); err != nil {
//	    return err
//	}
func (r *Router) Mount(e *Explorer, instances ...any) error {
	for _, instance := range instances {
		if err := r.Register(instance, e.Explore(instance)); err != nil {
			return err
		}
	}
	return nil
}

// Register adds the handlers of instance described by methods, usually the
// output of Explorer.Explore. Handlers registered before an error stay
// registered.
func (r *Router) Register(instance any, methods []MethodDescription) error {
	if len(methods) == 0 {
		return nil
	}
	receiver := reflect.ValueOf(instance)
	if !receiver.IsValid() {
		return errors.New("register: nil instance")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range methods {
		if IsAbsent(m.Pattern) {
			return fmt.Errorf("register %s.%s: %w", typeName(receiver.Type()), m.MethodKey, ErrMissingPattern)
		}

		route := Route{
			Key:      m.Pattern.Key(),
			Pattern:  m.Pattern,
			Receiver: receiver,
			Method:   m,
		}

		if existing, found := r.routes[route.Key]; found {
			if err := r.handleDuplicate(existing, route); err != nil {
				return err
			}
			continue
		}

		r.routes[route.Key] = route
		r.order = append(r.order, route.Key)

		r.logger.Debug("registered route",
			zap.String("key", route.Key),
			zap.Stringer("type", receiver.Type()),
			zap.String("method", m.MethodKey),
			zap.Bool("event", m.IsEventHandler),
		)
	}
	return nil
}

// handleDuplicate runs the duplicate hooks. Called with r.mu held.
func (r *Router) handleDuplicate(existing, incoming Route) error {
	for _, fn := range r.onDuplicate {
		if err := fn(existing, incoming); err != nil {
			return err
		}
	}
	if len(r.onDuplicate) > 0 {
		return nil
	}
	return fmt.Errorf("register %s: %w: %q already handled by %s",
		incoming.Method.MethodKey, ErrDuplicatePattern, incoming.Key, existing.Method.MethodKey)
}

// Lookup returns the route registered for pattern.
func (r *Router) Lookup(pattern Pattern) (Route, bool) {
	if IsAbsent(pattern) {
		return Route{}, false
	}
	return r.LookupKey(pattern.Key())
}

// LookupKey returns the route registered under a routing key.
func (r *Router) LookupKey(key string) (Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.routes[key]
	return route, ok
}

// Routes returns all routes in registration order.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Route, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.routes[k])
	}
	return out
}

// Len returns the number of routes.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
