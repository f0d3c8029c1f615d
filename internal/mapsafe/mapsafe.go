// Package mapsafe provides typed lookups over loosely decoded JSON objects.
package mapsafe

// Lookup retrieves a typed value from a map[string]any.
// The boolean is false if the key is missing, null, or holds a value that cannot be converted to T.
// JSON numbers decode as float64, so int targets accept integral float64 values.
func Lookup[T any](m map[string]any, key string) (T, bool) {
	var zero T

	val, ok := m[key]
	if !ok || val == nil {
		return zero, false
	}

	switch any(zero).(type) {
	case int:
		switch x := val.(type) {
		case int:
			return any(x).(T), true
		case float64:
			if x != float64(int(x)) {
				return zero, false
			}
			return any(int(x)).(T), true
		}
	case float64:
		switch x := val.(type) {
		case float64:
			return any(x).(T), true
		case int:
			return any(float64(x)).(T), true
		}
	default:
		if v, ok := val.(T); ok {
			return v, true
		}
	}

	return zero, false
}

// Get retrieves a typed value from a map[string]any.
// If the key is missing or the type cannot be converted, it returns the default value.
func Get[T any](m map[string]any, key string, defaultValue T) T {
	if v, ok := Lookup[T](m, key); ok {
		return v
	}
	return defaultValue
}

// NonEmptyString returns the string stored under key, or false when it is absent,
// not a string, or empty.
func NonEmptyString(m map[string]any, key string) (string, bool) {
	s, ok := Lookup[string](m, key)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
