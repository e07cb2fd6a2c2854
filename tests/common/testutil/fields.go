//go:build unit || e2e

package testutil

// Field sets key on the payload; a nil value removes it.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}

// Nested applies Field to a nested object such as "guest".
func Nested(parent, key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		child, ok := m[parent].(map[string]any)
		if !ok {
			return
		}
		Field(key, value)(child)
	}
}

// Guest edits one entry of additionalGuests.
func Guest(index int, key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		guests, ok := m["additionalGuests"].([]any)
		if !ok || index >= len(guests) {
			return
		}
		if g, ok := guests[index].(map[string]any); ok {
			Field(key, value)(g)
		}
	}
}
