package listener

// ControllerKey is the key under which a controller type's declared pattern
// is wrapped before it is merged with method patterns.
const ControllerKey = "controller"

// MergePatterns combines a controller pattern with a method pattern into the
// pattern a handler is routed by.
//
// class is either nil (the controller declares nothing) or a Map produced by
// ExploreClassMetadata, holding the declared value under ControllerKey.
// The rules, in order:
//
//  1. No controller pattern: the method pattern is used as is.
//  2. Scalar method pattern: if the controller declared a string, the result
//     is the path "<controller>/<method>". Any other controller value does
//     not compose with a scalar and is dropped.
//  3. Map method pattern: the controller map and the method map are merged
//     key by key. Method keys win on collision.
//  4. No method pattern: a copy of the controller map.
//
// Inputs are never modified.
func MergePatterns(class *Map, method Pattern) Pattern {
	if class == nil {
		return method
	}

	if IsAbsent(method) {
		return class.clone(0)
	}

	switch m := method.(type) {
	case *Map:
		return mergeMaps(class, m)
	default:
		prefix, ok := class.values[ControllerKey].(String)
		if !ok {
			return method
		}
		return String(string(prefix) + "/" + text(method))
	}
}

// mergeMaps spreads override over base. Keys of base keep their slots,
// keys only present in override are appended in override's order.
func mergeMaps(base, override *Map) *Map {
	out := base.clone(override.Len())
	for _, k := range override.keys {
		out.set(k, override.values[k])
	}
	return out
}
