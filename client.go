package listener

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// Transport names the broker an outbound client talks to.
type Transport string

// Supported transports.
const (
	TCP   Transport = "tcp"
	Redis Transport = "redis"
	NATS  Transport = "nats"
	MQTT  Transport = "mqtt"
	GRPC  Transport = "grpc"
	RMQ   Transport = "rmq"
	Kafka Transport = "kafka"
)

// ClientOptions is the usual shape of a client hook configuration.
type ClientOptions struct {
	Transport Transport      `mapstructure:"transport"`
	Options   map[string]any `mapstructure:"options"`
}

// Decode decodes the hook's configuration into out, which must be a pointer
// to a struct or map. A hook without configuration leaves out untouched.
//
// Example:
//
//	var opts listener.ClientOptions
//	if err := hook.Decode(&opts); err != nil {
//	    return err
//	}
func (c ClientProperties) Decode(out any) error {
	if c.Metadata == nil {
		return nil
	}
	if err := mapstructure.Decode(c.Metadata, out); err != nil {
		return fmt.Errorf("decode client %s configuration: %w", c.Property, err)
	}
	return nil
}

// ScanForClientHooks returns the fields of instance declared as client
// hooks, each paired with its configuration.
//
// Fields are visited in declaration order; func-typed fields are never
// reported. The scan is lazy and starts over on every range over the
// returned sequence. Instances that are not structs, or pointers to
// structs, have no hooks.
func (e *Explorer) ScanForClientHooks(instance any) iter.Seq[ClientProperties] {
	return func(yield func(ClientProperties) bool) {
		t := typeOf(instance)
		if t == nil || t.Kind() != reflect.Struct {
			return
		}

		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.Type.Kind() == reflect.Func {
				continue
			}
			if _, ok := lookup(e.store, ClientKey, t, field.Name); !ok {
				continue
			}

			metadata, _ := lookup(e.store, ClientConfigurationKey, t, field.Name)
			hook := ClientProperties{Property: field.Name, Metadata: metadata}

			e.logger.Debug("found client hook",
				zap.Stringer("type", t),
				zap.String("field", field.Name),
			)
			e.hooks.callOnClientHook(t, hook)

			if !yield(hook) {
				return
			}
		}
	}
}
