// Package oaserrors provides structured error types for the oasedit library.
//
// Import path: github.com/erraggy/oasedit/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and
// [errors.As], allowing callers to distinguish between different categories of
// errors and implement appropriate recovery strategies.
//
// # Error Types
//
// The package provides five core error types:
//
//   - [ParseError]: syntax failures and duplicate mapping keys at load time
//   - [ReferenceError]: malformed $ref pointer syntax
//   - [ViewError]: one malformed entity found while projecting the document
//   - [DuplicateError]: an insert that would collide with an existing entry
//   - [NotFoundError]: a removal or lookup whose target does not exist
//
// Note that dangling and cyclic references are deliberately not errors: they
// are first-class resolution results returned by the refs package, because
// callers may legitimately want to know about them (a recursive schema is
// valid; a dangling reference is reportable but not fatal to a listing).
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel for use with errors.Is():
//
//   - [ErrParse]: matches any [ParseError]
//   - [ErrDuplicateKey]: matches [ParseError] with Kind=ParseDuplicateKey
//   - [ErrMalformedRef]: matches any [ReferenceError]
//   - [ErrView]: matches any [ViewError]
//   - [ErrDuplicate]: matches any [DuplicateError]
//   - [ErrDuplicatePath], [ErrDuplicateOperation], [ErrDuplicateType]:
//     match [DuplicateError] with the corresponding entry kind
//   - [ErrNotFound]: matches any [NotFoundError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	doc, err := node.Parse(data, node.FormatAuto)
//	if errors.Is(err, oaserrors.ErrDuplicateKey) {
//	    // The document declares the same mapping key twice.
//	}
//
// Extract error details with errors.As():
//
//	var dup *oaserrors.DuplicateError
//	if errors.As(err, &dup) {
//	    fmt.Printf("already defined: %s\n", dup.Identifier())
//	}
package oaserrors
