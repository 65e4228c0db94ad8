// Package listener discovers message handlers on controller types and
// resolves the patterns they are routed by.
//
// A controller is any Go type whose methods handle messages. Handlers and
// the patterns they accept are declared once, in a Registry, during a
// declaration phase. An Explorer then reads those declarations and produces
// a MethodDescription per handler, with the controller's pattern merged into
// each method's pattern. A Router turns the descriptions into a routing table.
// The package performs no I/O and never decodes messages.
//
// # Quick Start
//
// Declare a controller and its handlers:
//
//	type Users struct {
//	    Notifier Proxy
//	}
//
//	func (u *Users) Get(ctx context.Context, id string) (*User, error) { ... }
//	func (u *Users) Created(ctx context.Context, e UserCreated) error   { ... }
//
//	reg := listener.NewRegistry()
//	reg.Controller((*Users)(nil), listener.String("users"))
//	_ = reg.MessagePattern((*Users)(nil), "Get", listener.String("get"))
//	_ = reg.EventPattern((*Users)(nil), "Created", listener.String("created"))
//	_ = reg.Client((*Users)(nil), "Notifier", listener.ClientOptions{Transport: listener.NATS})
//
// Explore the controller and build a routing table:
//
//	e := listener.NewExplorer(reg)
//	r := listener.NewRouter()
//	if err := r.Mount(e, &Users{}); err != nil {
//	    return err
//	}
//
//	route, ok := r.Lookup(listener.String("users/get"))
//
// # Patterns
//
// A Pattern is one of:
//   - String: a text scalar, "users"
//   - Number: a numeric scalar, 42
//   - *Token: an opaque token matched by identity, NewToken("users")
//   - *Map: an ordered mapping, {"cmd": "sum", "version": 2}
//
// A nil Pattern means nothing was declared. Patterns can also be read from
// JSON with ParsePattern, which keeps the key order of objects.
//
// Every pattern has a canonical routing key, Pattern.Key. Maps render as
// JSON with sorted keys, so {"b":1,"a":2} and {"a":2,"b":1} route alike.
//
// # Merging
//
// The controller's pattern is wrapped as {"controller": <declared>} and
// merged into each handler pattern by MergePatterns:
//
//	controller   method           resolved
//	-            m                m
//	"user"       "getData"        "user/getData"
//	{use:user}   "getData"        "getData"
//	{use:user}   {use:getData}    {controller:{use:user}, use:getData}
//	"user"       {use:getData}    {controller:user, use:getData}
//	{use:user}   -                {controller:{use:user}}
//	"user"       -                {controller:user}
//
// String controller patterns compose with scalar method patterns as paths.
// Any other controller pattern is dropped against a scalar. Maps compose key
// by key and the method's keys win.
//
// # Handler Types
//
// MessagePattern declares a RequestResponse handler and EventPattern an
// Event handler. MethodDescription.IsEventHandler is true only for Event;
// any other stored handler type still makes the method a handler, with
// IsEventHandler false.
//
// # Client Hooks
//
// Fields declared with Registry.Client are outbound client bindings.
// ScanForClientHooks yields them lazily in field order, skipping func-typed
// fields. Configurations decode into ClientOptions with
// ClientProperties.Decode.
//
// # Hooks and Logging
//
// Discovery can be observed without coupling to a metrics system:
//
//	e := listener.NewExplorer(reg,
//	    listener.WithLogger(logger),
//	    listener.WithOnHandler(func(t reflect.Type, m listener.MethodDescription) {
//	        metrics.Incr("listener.handler", "type:"+t.String())
//	    }),
//	    listener.WithOnSkip(func(t reflect.Type, method string) {
//	        metrics.Incr("listener.skip")
//	    }),
//	)
//
// Available hooks:
//   - WithOnHandler: Called for every handler Explore emits
//   - WithOnSkip: Called for every method without handler metadata
//   - WithOnClientHook: Called for every client hook a scan yields
//   - WithOnDuplicate: Called when a Router sees a pattern key twice
//
// # Errors
//
// Exploration never fails: missing metadata is skipped or normalised to a
// nil pattern. Broken contracts panic, for example a Scanner reporting a
// method the type does not have. Declaration and routing return sentinel
// errors (ErrUnknownMember, ErrMissingPattern, ErrDuplicatePattern,
// ErrInvalidJSON, ErrUnsupportedPattern) for use with errors.Is.
//
// # Thread Safety
//
// Registry, Explorer and Router are safe for concurrent use. Exploration only
// reads the registry, so declarations should be complete before it starts.
package listener
