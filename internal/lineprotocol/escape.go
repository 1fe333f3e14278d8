package lineprotocol

import "strings"

// tagEscaper escapes in a single pass; strings.Replacer never rescans
// its own output, so inserted backslashes are not matched again.
var tagEscaper = strings.NewReplacer(
	" ", `\ `,
	",", `\,`,
	"=", `\=`,
)

// EscapeTag backslash-escapes spaces, commas and equals signs in a tag value.
// No other characters are changed.
func EscapeTag(s string) string {
	return tagEscaper.Replace(s)
}
