package ring

// Cap returns the length of the slice backing b.
func Cap[T any](b *Buffer[T]) int {
	return len(b.buf)
}
