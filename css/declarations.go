package css

import "strings"

// ParseDeclarations converts a declaration-block substring (outer braces
// already stripped) into an ordered list of Declaration records. Malformed
// entries — empty value, missing colon, oversized name/value — are
// silently dropped; parsing continues with the next declaration.
func ParseDeclarations(body string, limits Limits) []Declaration {
	var out []Declaration
	i, n := 0, len(body)
	for i < n {
		// Skip separators.
		for i < n && (body[i] == ' ' || body[i] == '\t' || body[i] == '\n' || body[i] == '\r' || body[i] == ';') {
			i++
		}
		if i >= n {
			break
		}
		// Read property up to ':'.
		propStart := i
		for i < n && body[i] != ':' && body[i] != ';' {
			i++
		}
		if i >= n {
			break
		}
		if body[i] == ';' {
			// Missing colon: drop this entry and go on with the next.
			i++
			continue
		}
		prop := strings.TrimSpace(body[propStart:i])
		i++ // skip ':'

		// Read value up to ';' outside parentheses.
		valStart := i
		depth := 0
		for i < n {
			switch body[i] {
			case '(':
				depth++
			case ')':
				if depth > 0 {
					depth--
				}
			case ';':
				if depth == 0 {
					goto valueDone
				}
			}
			i++
		}
	valueDone:
		value := strings.TrimSpace(body[valStart:i])
		if i < n && body[i] == ';' {
			i++
		}

		if prop == "" || value == "" {
			continue
		}

		important := false
		if idx := findImportant(value); idx >= 0 {
			important = true
			value = strings.TrimSpace(value[:idx])
		}
		if value == "" {
			continue
		}

		if len(prop) > limits.MaxPropertyNameLength {
			continue
		}
		if len(value) > limits.MaxPropertyValueLength {
			continue
		}

		out = append(out, Declaration{
			Property:  strings.ToLower(prop),
			Value:     value,
			Important: important,
		})
	}
	return out
}

// findImportant locates a trailing "!important" (tolerating whitespace
// around the '!' and between the words), returning the index at which the
// value proper ends, or -1 if not present.
func findImportant(value string) int {
	lower := strings.ToLower(value)
	idx := strings.LastIndex(lower, "!")
	if idx < 0 {
		return -1
	}
	rest := strings.TrimSpace(lower[idx+1:])
	if rest != "important" {
		return -1
	}
	return idx
}
