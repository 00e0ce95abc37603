package query

import "fmt"

// SortKey selects the ordering of a listing.
type SortKey int

const (
	// DocumentOrder lists entries in the order they appear in the document.
	DocumentOrder SortKey = iota
	// Lexicographic lists paths and types by identifier, and operations by
	// path template then canonical method precedence.
	Lexicographic
)

// String returns a string representation of the sort key.
func (k SortKey) String() string {
	switch k {
	case DocumentOrder:
		return "doc"
	case Lexicographic:
		return "lex"
	default:
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
}

// ParseSortKey parses a sort key name as accepted on the command line.
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "doc", "document":
		return DocumentOrder, nil
	case "lex", "lexicographic":
		return Lexicographic, nil
	default:
		return DocumentOrder, fmt.Errorf("unknown sort key %q (want doc or lex)", s)
	}
}
