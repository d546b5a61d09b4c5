package pagenum

import "strings"

// romanTokens are roman numeral tokens in greedy matching order, covering
// the subtractive forms. Front matter often uses lowercase numerals, so
// matching is case-insensitive.
var romanTokens = []struct {
	text  string
	value int
}{
	{"m", 1000},
	{"cm", 900},
	{"d", 500},
	{"cd", 400},
	{"c", 100},
	{"xc", 90},
	{"l", 50},
	{"xl", 40},
	{"x", 10},
	{"ix", 9},
	{"v", 5},
	{"iv", 4},
	{"i", 1},
}

// ParseRoman parses a roman numeral. The whole string must be consumed;
// anything left over, or an empty or non-roman string, fails the parse.
func ParseRoman(text string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	result := 0
	for _, tok := range romanTokens {
		for strings.HasPrefix(s, tok.text) {
			result += tok.value
			s = s[len(tok.text):]
		}
	}
	if s != "" || result == 0 {
		return 0, false
	}
	return result, true
}
