package css

import "strings"

var legacyPseudoElements = map[string]bool{
	"before":       true,
	"after":        true,
	"first-line":   true,
	"first-letter": true,
	"selection":    true,
}

// ComputeSpecificity runs a small DFA over selector, counting id (a),
// class/attribute/pseudo-class (b), and element/pseudo-element (c)
// components. `:not(...)` recurses over its inner selector and contributes
// its a/b/c; the `:not` wrapper itself adds nothing. Selectors-Level-4
// combinators inside `:not()` are not supported (Level 3 only).
func ComputeSpecificity(selector string) int {
	a, b, c := specificityComponents(selector)
	return 100*a + 10*b + c
}

func specificityComponents(selector string) (a, b, c int) {
	s := []rune(selector)
	i, n := 0, len(s)
	for i < n {
		ch := s[i]
		switch {
		case ch == '#':
			i++
			i = skipIdent(s, i)
			a++
		case ch == '.':
			i++
			i = skipIdent(s, i)
			b++
		case ch == '[':
			j := i + 1
			depth := 1
			for j < n && depth > 0 {
				if s[j] == '[' {
					depth++
				} else if s[j] == ']' {
					depth--
				}
				j++
			}
			i = j
			b++
		case ch == ':':
			if i+1 < n && s[i+1] == ':' {
				i += 2
				i = skipIdent(s, i)
				c++
				break
			}
			start := i + 1
			j := skipIdent(s, start)
			name := strings.ToLower(string(s[start:j]))
			if j < n && s[j] == '(' {
				depth := 1
				k := j + 1
				argStart := k
				for k < n && depth > 0 {
					if s[k] == '(' {
						depth++
					} else if s[k] == ')' {
						depth--
					}
					k++
				}
				argEnd := k - 1
				if name == "not" {
					ia, ib, ic := specificityComponents(string(s[argStart:argEnd]))
					a += ia
					b += ib
					c += ic
				} else {
					b++
				}
				i = k
			} else {
				if legacyPseudoElements[name] {
					c++
				} else {
					b++
				}
				i = j
			}
		case ch == '*':
			i++
		case ch == '>' || ch == '+' || ch == '~':
			i++
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == ',':
			i++
		case isIdentStart(ch):
			j := skipIdent(s, i)
			c++
			i = j
		default:
			i++
		}
	}
	return a, b, c
}

func isIdentStart(ch rune) bool {
	return ch == '-' || ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch > 127
}

func isIdentChar(ch rune) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

func skipIdent(s []rune, i int) int {
	n := len(s)
	for i < n && isIdentChar(s[i]) {
		i++
	}
	return i
}
