// Package extract isolates the loose-JSON scraping step applied to raw model
// output. Both scanners return the matched fragment and an ok flag instead of
// an error, so callers with native structured output can swap the strategy
// without touching their control flow.
package extract

// FirstObject returns the first balanced brace-delimited substring of text.
func FirstObject(text string) (string, bool) {
	return firstBalanced(text, '{', '}')
}

// FirstArray returns the first balanced bracket-delimited substring of text.
func FirstArray(text string) (string, bool) {
	return firstBalanced(text, '[', ']')
}

// firstBalanced scans for the first open delimiter and returns the substring
// up to its matching close. String literals and escapes are honored so that
// braces inside JSON strings do not unbalance the scan.
func firstBalanced(text string, open, closing byte) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			if start >= 0 {
				inString = true
			}
		case open:
			if start < 0 {
				start = i
			}
			depth++
		case closing:
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
