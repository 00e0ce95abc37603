package skeleton

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Use golang.org/x/text/cases for proper title casing (strings.Title is deprecated)
var titleCaser = cases.Title(language.English)

// OperationID derives a camelCase operationId from a method and a path
// template.
//
// Static segments are title-cased and concatenated after the lowercase
// method; parameter segments contribute "By" plus the parameter name.
//
//	OperationID("get", "/pets")          -> "getPets"
//	OperationID("get", "/pets/{id}")     -> "getPetsById"
//	OperationID("post", "/pet-owners")   -> "postPetOwners"
func OperationID(method, template string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, segment := range strings.Split(template, "/") {
		if segment == "" {
			continue
		}
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			b.WriteString("By")
			b.WriteString(pascalWords(segment[1 : len(segment)-1]))
			continue
		}
		b.WriteString(pascalWords(segment))
	}
	if b.Len() == len(method) {
		b.WriteString("Root")
	}
	return b.String()
}

// pascalWords title-cases each word of a segment, splitting on the
// separators that appear in path templates. Words that already carry
// interior capitals (camelCase parameter names like petId) keep them;
// only the first rune changes.
func pascalWords(segment string) string {
	words := strings.FieldsFunc(segment, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || !unicode.IsPrint(r)
	})
	var b strings.Builder
	for _, w := range words {
		if w == strings.ToLower(w) {
			b.WriteString(titleCaser.String(w))
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[size:])
	}
	return b.String()
}
