// Package patch resolves partial updates where a nil pointer means "keep the stored value".
package patch

// Coalesce returns *ptr when set, otherwise fallback.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Map converts *ptr when set and returns fallback untouched otherwise.
func Map[T, U any](ptr *T, convert func(T) U, fallback U) U {
	if ptr == nil {
		return fallback
	}
	return convert(*ptr)
}
