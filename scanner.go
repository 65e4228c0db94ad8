package listener

import "reflect"

// Scanner enumerates the methods of a controller.
//
// ScanFromPrototype calls fn once for every method of prototype, in a stable
// order, and returns the non-nil results in that order.
type Scanner interface {
	ScanFromPrototype(instance any, prototype reflect.Type, fn func(method string) *MethodDescription) []MethodDescription
}

// MetadataScanner is the default Scanner. It visits the exported methods in
// the method set of prototype, sorted by name. The method set includes
// methods promoted from embedded fields, so handlers declared on an embedded
// type's own methods are visited too, keyed by the outer type.
type MetadataScanner struct{}

// ScanFromPrototype implements Scanner.
func (MetadataScanner) ScanFromPrototype(_ any, prototype reflect.Type, fn func(method string) *MethodDescription) []MethodDescription {
	if prototype == nil {
		return nil
	}

	var out []MethodDescription
	for i := 0; i < prototype.NumMethod(); i++ {
		if d := fn(prototype.Method(i).Name); d != nil {
			out = append(out, *d)
		}
	}
	return out
}
