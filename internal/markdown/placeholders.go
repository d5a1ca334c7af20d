package markdown

import "regexp"

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandPlaceholders replaces ${NAME} tokens in s with vars[NAME]. Unknown names expand to "".
func ExpandPlaceholders(s string, vars map[string]string) string {
	if s == "" {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(m string) string {
		return vars[m[2:len(m)-1]]
	})
}
