package node

import (
	"fmt"
	"strings"
)

// Pointer token escaping per RFC 6901: "~" encodes as "~0" and "/" as "~1".
// Locations throughout the library are pointer strings built from these
// tokens (e.g. "/paths/~1pets/get").

// EscapeToken escapes one pointer token for embedding in a pointer string.
func EscapeToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// UnescapeToken reverses EscapeToken. It fails on invalid escape sequences
// ("~" followed by anything other than "0" or "1", or a trailing "~").
func UnescapeToken(token string) (string, error) {
	if !strings.Contains(token, "~") {
		return token, nil
	}
	var b strings.Builder
	b.Grow(len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(token) {
			return "", fmt.Errorf("trailing ~")
		}
		i++
		switch token[i] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", fmt.Errorf("invalid escape ~%c", token[i])
		}
	}
	return b.String(), nil
}

// JoinPointer builds a pointer string from unescaped tokens. An empty token
// list yields "", the whole-document pointer.
func JoinPointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, token := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapeToken(token))
	}
	return b.String()
}

// SplitPointer parses a pointer string into unescaped tokens. The pointer
// must be empty (whole document) or start with "/".
func SplitPointer(ptr string) ([]string, error) {
	if ptr == "" {
		return nil, nil
	}
	if ptr[0] != '/' {
		return nil, fmt.Errorf("pointer must start with /")
	}
	raw := strings.Split(ptr[1:], "/")
	tokens := make([]string, len(raw))
	for i, token := range raw {
		unescaped, err := UnescapeToken(token)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		tokens[i] = unescaped
	}
	return tokens, nil
}
