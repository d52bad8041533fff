package common

// StringArg extracts an optional string argument, returning "" when
// absent or of the wrong type.
func StringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

// BoolArg extracts an optional boolean argument, returning false when
// absent or of the wrong type.
func BoolArg(args map[string]interface{}, key string) bool {
	v, _ := args[key].(bool)
	return v
}

// IntArg extracts an optional integer argument. JSON numbers arrive as
// float64; both float64 and int are accepted. Absent or mistyped
// arguments return the fallback.
func IntArg(args map[string]interface{}, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}
