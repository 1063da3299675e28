package mathx

import "strings"

// ColumnName converts a 1-based spreadsheet column number to its letters
// (1 → A, 27 → AA). Non-positive numbers yield "".
func ColumnName(n int) string {
	if n <= 0 {
		return ""
	}
	var letters []byte
	for n > 0 {
		n--
		letters = append(letters, byte('A'+n%26))
		n /= 26
	}
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters)
}

// ColumnNumber converts spreadsheet column letters to the 1-based number.
// Letters are case-insensitive; any other character yields 0.
func ColumnNumber(name string) int {
	if name == "" {
		return 0
	}
	n := 0
	for _, r := range strings.ToUpper(name) {
		if r < 'A' || r > 'Z' {
			return 0
		}
		n = n*26 + int(r-'A'+1)
	}
	return n
}
