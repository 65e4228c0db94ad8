package listener

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Explorer extracts handler descriptions from controllers using metadata
// declared ahead of time in a Store.
//
// Explorer only reads the store and is safe for concurrent use as long as
// the store is.
type Explorer struct {
	store   Store
	scanner Scanner
	logger  *zap.Logger
	hooks   hooks
}

// Option configures an Explorer.
type Option func(*Explorer)

// NewExplorer creates an Explorer reading metadata from store.
//
// By default methods are enumerated with MetadataScanner and nothing is
// logged.
//
// Example:
//
//	reg := listener.NewRegistry()
//	reg.Controller((*Users)(nil), listener.String("users"))
//	_ = reg.MessagePattern((*Users)(nil), "Get", listener.String("get"))
//
//	e := listener.NewExplorer(reg, listener.WithLogger(logger))
//	methods := e.Explore(&Users{})
func NewExplorer(store Store, opts ...Option) *Explorer {
	e := &Explorer{
		store:   store,
		scanner: MetadataScanner{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithScanner replaces the method enumerator.
func WithScanner(s Scanner) Option {
	return func(e *Explorer) {
		e.scanner = s
	}
}

// WithLogger sets the logger. Discovery is logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(e *Explorer) {
		if l != nil {
			e.logger = l
		}
	}
}

// Explore returns a description for every handler method of instance, in
// scanner order. Methods without handler metadata are skipped. Each
// handler's pattern is merged with the controller pattern of instance's type.
//
// Explore returns nil for a nil instance.
func (e *Explorer) Explore(instance any) []MethodDescription {
	prototype := reflect.TypeOf(instance)
	if prototype == nil {
		return nil
	}

	var (
		class   ClassDescription
		derived bool
	)
	return e.scanner.ScanFromPrototype(instance, prototype, func(method string) *MethodDescription {
		m := e.ExploreMethodMetadata(prototype, method)
		if m == nil {
			e.logger.Debug("skipping method without handler metadata",
				zap.Stringer("type", prototype),
				zap.String("method", method),
			)
			e.hooks.callOnSkip(prototype, method)
			return nil
		}

		if !derived {
			class = e.ExploreClassMetadata(prototype)
			derived = true
		}
		m.Pattern = MergePatterns(class.Pattern, m.Pattern)

		e.logger.Debug("discovered message handler",
			zap.Stringer("type", prototype),
			zap.String("method", method),
			zap.String("pattern", patternKey(m.Pattern)),
			zap.Bool("event", m.IsEventHandler),
		)
		e.hooks.callOnHandler(prototype, *m)
		return m
	})
}

// ExploreMethodMetadata describes method of prototype if it carries handler
// metadata, and returns nil otherwise. The returned pattern is the method's
// own declaration, without the controller pattern.
//
// It panics if prototype has no such method; scanners must only report
// methods of the type they scan.
func (e *Explorer) ExploreMethodMetadata(prototype reflect.Type, method string) *MethodDescription {
	callback, ok := prototype.MethodByName(method)
	if !ok {
		panic(fmt.Sprintf("listener: %s has no method %q", typeName(prototype), method))
	}

	handlerType, ok := lookup(e.store, HandlerTypeKey, prototype, method)
	if !ok {
		return nil
	}

	var pattern Pattern
	if v, ok := lookup(e.store, PatternKey, prototype, method); ok {
		pattern = mustPattern(v, prototype, method)
	}

	return &MethodDescription{
		MethodKey:      method,
		TargetCallback: callback.Func,
		Pattern:        pattern,
		IsEventHandler: handlerType == Event,
	}
}

// ExploreClassMetadata returns the pattern declared on prototype, wrapped
// under ControllerKey. The wrapping does not depend on the kind of the
// declared pattern.
func (e *Explorer) ExploreClassMetadata(prototype reflect.Type) ClassDescription {
	v, ok := lookup(e.store, PatternKey, prototype, "")
	if !ok {
		return ClassDescription{}
	}
	p := mustPattern(v, prototype, "")
	if p == nil {
		return ClassDescription{}
	}
	return ClassDescription{Pattern: NewMap(Field{Key: ControllerKey, Value: p})}
}

func patternKey(p Pattern) string {
	if IsAbsent(p) {
		return ""
	}
	return p.Key()
}
