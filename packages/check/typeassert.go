package check

// ReturnType asserts at compile time that v has exactly the type T and passes
// the value through unchanged:
//
//	n := check.ReturnType[int](queue.Size())
//
// A mismatched expression is a build error, not a test failure; the compiler's
// own diagnostic names both types. There is no run-time cost and no run-time
// failure mode.
func ReturnType[T any](v T) T {
	return v
}
