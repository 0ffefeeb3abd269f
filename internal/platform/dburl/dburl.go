// Package dburl holds helpers for postgres connection strings shared by the
// API and the migration CLI.
package dburl

import (
	"net/url"
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var whitespace = regexp.MustCompile(`\s+`)

// Normalize appends disable_prepared_binary_result=yes when asked to, unless
// the URL already carries an explicit value. DSN style strings are returned
// as is.
func Normalize(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

// Name returns the database name from either URL or key=value DSN form.
func Name(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.Trim(strings.TrimPrefix(token, "dbname="), `"'`)
		if name != "" {
			return name
		}
	}
	return ""
}

// Redact masks the password so the target can be logged.
func Redact(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		return parsed.Redacted()
	}

	tokens := strings.Fields(trimmed)
	for i, token := range tokens {
		if strings.HasPrefix(token, "password=") {
			tokens[i] = "password=xxxxx"
		}
	}
	return strings.Join(tokens, " ")
}

// TraceQuery collapses whitespace and caps the statement length for span
// attributes.
func TraceQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := whitespace.ReplaceAllString(query, " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
