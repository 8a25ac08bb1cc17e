// Package naming converts Go identifiers into index field names.
package naming

// ToFieldName converts an identifier such as "UserId" into the snake_case
// field name "user_id".
//
// The first character is always lower-cased. Every later upper-case ASCII
// letter is lower-cased and preceded by '_' only when the input byte before it
// is a lower-case ASCII letter, so a run of capitals stays one block:
//
//	"UserID"     -> "user_id"
//	"HTTPStatus" -> "httpstatus"
//	"aB"         -> "a_b"
//
// All other bytes, including digits, underscores and non-ASCII runes, are
// copied unchanged. An empty string is returned as is.
func ToFieldName(s string) string {
	if s == "" {
		return s
	}

	buf := make([]byte, 0, 2*len(s))
	buf = append(buf, toLower(s[0]))

	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isUpper(c) {
			buf = append(buf, c)
			continue
		}

		if isLower(s[i-1]) {
			buf = append(buf, '_')
		}

		buf = append(buf, toLower(c))
	}

	return string(buf)
}

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }

func isLower(c byte) bool { return 'a' <= c && c <= 'z' }

func toLower(c byte) byte {
	if isUpper(c) {
		return c | 0x20
	}

	return c
}
