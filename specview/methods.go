package specview

// CanonicalMethods lists the HTTP methods recognized as operation keys
// within a path item, in canonical precedence order.
var CanonicalMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

var methodRank = func() map[string]int {
	m := make(map[string]int, len(CanonicalMethods))
	for i, method := range CanonicalMethods {
		m[method] = i
	}
	return m
}()

// IsMethod returns true if key is a recognized operation method.
func IsMethod(key string) bool {
	_, ok := methodRank[key]
	return ok
}

// MethodRank returns a method's position in the canonical precedence order.
// Unrecognized methods rank after every recognized one, so comparisons fall
// back to document order among themselves.
func MethodRank(method string) int {
	if rank, ok := methodRank[method]; ok {
		return rank
	}
	return len(CanonicalMethods)
}
