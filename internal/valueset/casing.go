package valueset

import "strings"

// splitNick splits a schema nick on hyphen/underscore delimiters,
// dropping empty segments.
func splitNick(nick string) []string {
	return strings.FieldsFunc(nick, func(r rune) bool {
		return r == '-' || r == '_'
	})
}

// PascalCase converts a nick to a capitalized-word identifier:
// "before-colon" becomes "BeforeColon". Enum variant identifiers use
// this form.
func PascalCase(nick string) string {
	var sb strings.Builder

	for _, seg := range splitNick(nick) {
		sb.WriteString(strings.ToUpper(seg[:1]))
		sb.WriteString(seg[1:])
	}

	return sb.String()
}

// ScreamingSnake converts a nick to an upper-case underscore-delimited
// identifier: "before-colon" becomes "BEFORE_COLON". Flag constant
// identifiers use this form.
func ScreamingSnake(nick string) string {
	segs := splitNick(nick)
	for i, seg := range segs {
		segs[i] = strings.ToUpper(seg)
	}

	return strings.Join(segs, "_")
}
