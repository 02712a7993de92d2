package slices

// Map returns the result of applying fn to every element of list, preserving order.
func Map[T any, U any](list []T, fn func(T) U) []U {
	out := make([]U, len(list))
	for i, v := range list {
		out[i] = fn(v)
	}
	return out
}

// Filter returns the elements of list for which predicate returns true.
func Filter[T any](list []T, predicate func(T) bool) []T {
	var out []T
	for _, v := range list {
		if predicate(v) {
			out = append(out, v)
		}
	}
	return out
}

// Flatten merges a slice of slices into a single slice.
func Flatten[S ~[]E, E any](s []S) S {
	n := 0
	allNil := true
	for _, si := range s {
		n += len(si)
		allNil = allNil && si == nil
	}
	if allNil {
		return nil
	}
	rv := make(S, 0, n)
	for _, si := range s {
		rv = append(rv, si...)
	}
	return rv
}

// Unique returns a copy of s with duplicate elements removed, keeping only the first occurrence.
func Unique[S ~[]E, E comparable](s S) S {
	if s == nil {
		return nil
	}
	rv := make(S, 0)
	seen := make(map[E]bool)
	for _, v := range s {
		if !seen[v] {
			rv = append(rv, v)
			seen[v] = true
		}
	}
	return rv
}

// GroupByFuncOrdered groups the elements of s by keyFunc(e).
// Keys are returned in the order in which they were first encountered.
func GroupByFuncOrdered[S ~[]E, E any, K comparable](s S, keyFunc func(E) K) ([]K, map[K]S) {
	var keys []K
	groups := make(map[K]S)
	for _, e := range s {
		k := keyFunc(e)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], e)
	}
	return keys, groups
}
