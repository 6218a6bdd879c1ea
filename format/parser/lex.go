package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/smasher164/xid"
)

const (
	marker    = '%'
	separator = '-'
	openArg   = '{'
	closeArg  = '}'
)

// isIdentRune is a predicate controlling the characters accepted as the ith
// rune in a field name. These follow the Unicode [identifier syntax], with
// the addition of an underscore as a start character.
//
// [identifier syntax]: https://www.unicode.org/reports/tr31/
func isIdentRune(ch rune, i int) bool {
	if i == 0 {
		return ch == '_' || xid.Start(ch)
	}
	return xid.Continue(ch)
}

// splitToken splits the body of a token into a field name and directive
// segments. Returns false if body does not start with an identifier, or if
// the identifier is followed by anything other than a separator.
func splitToken(body string) (string, []string, bool) {
	end := identEnd(body)
	if end == 0 {
		return "", nil, false
	}

	name, rest := body[:end], body[end:]
	if rest == "" {
		return name, nil, true
	}
	if rest[0] != separator {
		return "", nil, false
	}

	return name, strings.Split(rest[1:], string(separator)), true
}

// identEnd returns the byte offset of the end of the identifier at the
// start of str, or zero if str does not start with an identifier.
func identEnd(str string) int {
	pos := 0
	for i := 0; pos < len(str); i++ {
		ch, size := utf8.DecodeRuneInString(str[pos:])
		if ch == utf8.RuneError || !isIdentRune(ch, i) {
			break
		}
		pos += size
	}
	return pos
}
