package logger

import (
	"fmt"
	"strings"
)

const redacted = "[REDACTED]"

func (l *Logger) sanitize(kv []interface{}) []interface{} {
	if !l.redact || len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key := toString(kv[i])
		out = append(out, key, sanitizeValue(strings.ToLower(strings.TrimSpace(key)), kv[i+1]))
	}
	return out
}

func sanitizeValue(key string, val interface{}) interface{} {
	if isRedactKey(key) {
		return redacted
	}
	switch v := val.(type) {
	case string:
		if looksLikeJWT(v) {
			return redacted
		}
	case error:
		// Error text can echo a bearer token rejected by the parser.
		if strings.Contains(v.Error(), "Bearer ") {
			return redacted
		}
	}
	return val
}

func isRedactKey(key string) bool {
	if key == "" {
		return false
	}
	for _, marker := range []string{"token", "authorization", "password", "secret", "dsn", "cookie"} {
		if strings.Contains(key, marker) {
			return true
		}
	}
	return false
}

func looksLikeJWT(s string) bool {
	s = strings.TrimPrefix(s, "Bearer ")
	parts := strings.Split(s, ".")
	return len(parts) == 3 && len(parts[0]) > 10 && len(parts[1]) > 10
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}
