// Package attrs reads values back out of slog-style key/value argument lists
// so one call site can feed both the logger and the audit publisher.
package attrs

import (
	"fmt"
	"log/slog"
)

// ExtractString returns the value logged under key as a string. Errors and
// fmt.Stringer values are rendered; slog.Attr entries are matched by key.
// Unknown keys and other value types yield "".
func ExtractString(args []any, key string) string {
	v, ok := lookup(args, key)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	default:
		return ""
	}
}

func lookup(args []any, key string) (any, bool) {
	for i := 0; i < len(args); i++ {
		switch k := args[i].(type) {
		case slog.Attr:
			if k.Key == key {
				return k.Value.Any(), true
			}
		case string:
			if i+1 >= len(args) {
				return nil, false
			}
			if k == key {
				return args[i+1], true
			}
			i++
		}
	}
	return nil, false
}
