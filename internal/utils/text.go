package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Slugify lowercases s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

var tagPattern = regexp.MustCompile(`(?s)<[^>]*>`)

// StripHTML removes markup tags and collapses whitespace.
func StripHTML(s string) string {
	return strings.Join(strings.Fields(tagPattern.ReplaceAllString(s, " ")), " ")
}

// Truncate cuts s to at most n runes, appending suffix when something was cut.
func Truncate(s string, n int, suffix string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + suffix
}

// Autoformat turns line breaks into <br /> tags.
func Autoformat(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br />\n")
}

// ParseKeyValues reads key=value lines, ignoring blank lines and lines without a key.
func ParseKeyValues(s string) map[string]string {
	m := map[string]string{}
	for line := range strings.Lines(s) {
		k, v, _ := strings.Cut(strings.TrimSpace(line), "=")
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		m[k] = strings.TrimSpace(v)
	}
	return m
}

var lineTerminators = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// SingleLine escapes markup in s and joins its lines, for submitted names and addresses.
func SingleLine(s string) string {
	return lineTerminators.Replace(html.EscapeString(strings.TrimSpace(s)))
}

// WithScheme prefixes a submitted address with http:// unless it already names a scheme. Blank stays blank.
func WithScheme(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return s
	}
	return "http://" + s
}
