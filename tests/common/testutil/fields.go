//go:build unit || e2e

package testutil

// Field sets key in a wire map. A nil value removes the key.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}

// RuleField changes one field of the i-th refund rule.
func RuleField(i int, key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		switch rules := m["refund_rules"].(type) {
		case []map[string]any:
			if i < len(rules) {
				Field(key, value)(rules[i])
			}
		case []any:
			if i < len(rules) {
				if rule, ok := rules[i].(map[string]any); ok {
					Field(key, value)(rule)
				}
			}
		}
	}
}
