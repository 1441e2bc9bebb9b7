// Package env turns environment variables into template context values.
// Variables that look like credentials are never copied into a context, so
// a layout cannot render a secret into a scaffolded file by accident.
package env

import (
	"sort"
	"strings"
)

// ContextPrefix marks variables that contribute to the build context.
// GLUSTIK_CTX_AUTHOR=jane becomes the placeholder %(author)s.
const ContextPrefix = "GLUSTIK_CTX_"

// sensitivePatterns identify variables that must not reach a context.
// Matching is case-insensitive and by substring.
var sensitivePatterns = []string{
	"PASSWORD",
	"PASSWD",
	"PWD",
	"SECRET",
	"_TOKEN",
	"TOKEN_",
	"API_KEY",
	"APIKEY",
	"PRIVATE_KEY",
	"AWS_",
	"AMAZON",
	"_KEY",
	"KEY_",
	"CREDENTIAL",
	"_AUTH",
	"AUTH_",
	"AUTHORIZATION",
	"AUTHENTICATE",
}

// FilterSensitive returns a copy of vars without the sensitive entries,
// along with the sorted names that were dropped.
func FilterSensitive(vars map[string]string) (map[string]string, []string) {
	kept := make(map[string]string, len(vars))
	var dropped []string

	for key, value := range vars {
		if isSensitive(key) {
			dropped = append(dropped, key)
			continue
		}
		kept[key] = value
	}
	sort.Strings(dropped)
	return kept, dropped
}

// ContextFromEnviron collects KEY=value pairs from environ (as returned by
// os.Environ) whose key carries prefix. The prefix is stripped and the rest
// lowercased. Sensitive variables are filtered and their full names returned.
func ContextFromEnviron(environ []string, prefix string) (map[string]string, []string) {
	vars := make(map[string]string)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, prefix) || len(key) == len(prefix) {
			continue
		}
		vars[key] = value
	}

	kept, dropped := FilterSensitive(vars)
	ctx := make(map[string]string, len(kept))
	for key, value := range kept {
		ctx[strings.ToLower(strings.TrimPrefix(key, prefix))] = value
	}
	return ctx, dropped
}

func isSensitive(key string) bool {
	upperKey := strings.ToUpper(key)

	for _, pattern := range sensitivePatterns {
		if strings.Contains(upperKey, pattern) {
			return true
		}
	}

	return false
}
