package grammar

import (
	"strings"
	"unicode"
)

type itemKind int

const (
	itemWord itemKind = iota
	itemNumber
	itemColon
	itemSlash
	itemDash
)

// item is one lexical element of a constraint token. Words are lowercased;
// numbers keep their raw digits because digit count distinguishes military
// times and two-digit years.
type item struct {
	kind itemKind
	text string
}

func lex(token string) ([]item, *ParseError) {
	var items []item
	runes := []rune(token)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && unicode.IsLetter(runes[i]) {
				i++
			}
			items = append(items, item{kind: itemWord, text: strings.ToLower(string(runes[start:i]))})
		case unicode.IsDigit(r):
			start := i
			for i < len(runes) && unicode.IsDigit(runes[i]) {
				i++
			}
			items = append(items, item{kind: itemNumber, text: string(runes[start:i])})
		case r == ':':
			items = append(items, item{kind: itemColon, text: ":"})
			i++
		case r == '/':
			items = append(items, item{kind: itemSlash, text: "/"})
			i++
		case r == '-':
			items = append(items, item{kind: itemDash, text: "-"})
			i++
		default:
			return nil, errorf(token, "unexpected character %q", string(r))
		}
	}

	return items, nil
}
